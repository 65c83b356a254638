package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/empleora/recruiting/internal/domain"
	"github.com/empleora/recruiting/internal/service"
)

// ApplicationHandler exposes the application lifecycle endpoints.
type ApplicationHandler struct {
	apps *service.ApplicationService
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(apps *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{apps: apps}
}

// Register mounts the application routes on an authenticated group.
func (h *ApplicationHandler) Register(g *echo.Group) {
	g.POST("/offers/:offerID/applications", h.Apply)
	g.GET("/applications/mine", h.ListMine)
	g.GET("/applications/:id/transitions", h.AvailableTransitions)
	g.PATCH("/applications/:id/status", h.ChangeStatus)
	g.POST("/applications/:id/revert", h.Revert)
	g.POST("/applications/status/batch", h.BatchChangeStatus)
	g.DELETE("/applications/:id", h.Delete)
}

type applyRequest struct {
	AspirantID int64 `json:"aspirant_id" validate:"required,gt=0"`
}

// Apply creates an application for the aspirant on the offer.
func (h *ApplicationHandler) Apply(c echo.Context) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	offerID, err := pathID(c, "offerID")
	if err != nil {
		return err
	}

	var req applyRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	app, err := h.apps.Apply(c.Request().Context(), req.AspirantID, offerID, p)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, app)
}

// ListMine returns the caller's applications.
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	apps, err := h.apps.ListMine(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, apps)
}

// AvailableTransitions returns the legal next states for an application.
func (h *ApplicationHandler) AvailableTransitions(c echo.Context) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	transitions, err := h.apps.AvailableTransitions(c.Request().Context(), id, p)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, transitions)
}

type changeStatusRequest struct {
	Status domain.ApplicationStatus `json:"status" validate:"required"`
}

// ChangeStatus moves an application to a target status.
func (h *ApplicationHandler) ChangeStatus(c echo.Context) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req changeStatusRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	app, err := h.apps.ChangeStatus(c.Request().Context(), id, req.Status, p)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, app)
}

// Revert steps an application one state back.
func (h *ApplicationHandler) Revert(c echo.Context) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	app, err := h.apps.Revert(c.Request().Context(), id, p)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, app)
}

type batchChangeStatusRequest struct {
	ApplicationIDs []int64                  `json:"application_ids" validate:"required,min=1,dive,gt=0"`
	Status         domain.ApplicationStatus `json:"status" validate:"required"`
}

// BatchChangeStatus applies a status change per application, reporting each
// outcome independently.
func (h *ApplicationHandler) BatchChangeStatus(c echo.Context) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req batchChangeStatusRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	results := h.apps.BatchChangeStatus(c.Request().Context(), req.ApplicationIDs, req.Status, p)
	return JSON(c, http.StatusOK, results)
}

// Delete soft-deletes an application.
func (h *ApplicationHandler) Delete(c echo.Context) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.apps.Delete(c.Request().Context(), id, p); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: name, Message: "must be a positive integer"}
	}
	return id, nil
}
