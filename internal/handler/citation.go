package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/empleora/recruiting/internal/domain"
	"github.com/empleora/recruiting/internal/service"
)

// CitationHandler exposes the interview citation endpoints.
type CitationHandler struct {
	citations *service.CitationService
}

// NewCitationHandler creates a new CitationHandler.
func NewCitationHandler(citations *service.CitationService) *CitationHandler {
	return &CitationHandler{citations: citations}
}

// Register mounts the citation routes on an authenticated group.
func (h *CitationHandler) Register(g *echo.Group) {
	g.POST("/applications/:id/citations", h.Schedule)
	g.GET("/applications/:id/citations", h.ListByApplication)
	g.POST("/citations/batch", h.ScheduleBatch)
	g.POST("/citations/:id/send", h.Send)
	g.PATCH("/citations/:id/status", h.ChangeStatus)
	g.DELETE("/citations/:id", h.Cancel)
}

type scheduleRequest struct {
	RecruiterID int64   `json:"recruiter_id" validate:"required,gt=0"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string  `json:"time" validate:"required,datetime=15:04"`
	MeetingLink *string `json:"meeting_link,omitempty" validate:"omitempty,url"`
	Details     *string `json:"details,omitempty"`
}

func (r scheduleRequest) toService() service.ScheduleRequest {
	return service.ScheduleRequest{
		RecruiterID: r.RecruiterID,
		Date:        r.Date,
		Time:        r.Time,
		MeetingLink: r.MeetingLink,
		Details:     r.Details,
	}
}

// Schedule creates a citation for one application.
func (h *CitationHandler) Schedule(c echo.Context) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	applicationID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req scheduleRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cit, err := h.citations.Schedule(c.Request().Context(), applicationID, req.toService(), p)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, cit)
}

type scheduleBatchRequest struct {
	ApplicationIDs []int64 `json:"application_ids" validate:"required,min=1,dive,gt=0"`
	scheduleRequest
}

// ScheduleBatch creates and sends citations for several applications,
// reporting created/notified counts and per-item errors.
func (h *CitationHandler) ScheduleBatch(c echo.Context) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req scheduleBatchRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	report := h.citations.ScheduleBatch(c.Request().Context(), req.ApplicationIDs, req.toService(), p)
	return JSON(c, http.StatusOK, report)
}

// Send marks the citation message as sent and notifies the aspirant.
func (h *CitationHandler) Send(c echo.Context) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	result, err := h.citations.Send(c.Request().Context(), id, p)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, result)
}

type citationStatusRequest struct {
	Status domain.CitationStatus `json:"status" validate:"required"`
}

// ChangeStatus sets the citation status.
func (h *CitationHandler) ChangeStatus(c echo.Context) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req citationStatusRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.citations.ChangeStatus(c.Request().Context(), id, req.Status, p); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Cancel soft-deletes a citation.
func (h *CitationHandler) Cancel(c echo.Context) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.citations.Cancel(c.Request().Context(), id, p); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListByApplication returns an application's citations.
func (h *CitationHandler) ListByApplication(c echo.Context) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	applicationID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cits, err := h.citations.ListByApplication(c.Request().Context(), applicationID, p)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, cits)
}
