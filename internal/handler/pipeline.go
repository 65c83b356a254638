package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/empleora/recruiting/internal/domain"
	"github.com/empleora/recruiting/internal/service"
)

// PipelineHandler exposes the recruiter-facing pipeline views for one offer.
type PipelineHandler struct {
	pipeline *service.PipelineService
}

// NewPipelineHandler creates a new PipelineHandler.
func NewPipelineHandler(pipeline *service.PipelineService) *PipelineHandler {
	return &PipelineHandler{pipeline: pipeline}
}

// Register mounts the pipeline routes on an authenticated group.
func (h *PipelineHandler) Register(g *echo.Group) {
	g.GET("/offers/:offerID/applications", h.FilterCandidates)
	g.GET("/offers/:offerID/pipeline/summary", h.StageSummary)
	g.GET("/offers/:offerID/pipeline/statistics", h.ProcessStatistics)
	g.GET("/offers/:offerID/pipeline/funnel", h.ConversionFunnel)
}

// FilterCandidates lists an offer's candidates matching the query criteria.
// Every criterion is optional; absent criteria exclude nothing.
func (h *PipelineHandler) FilterCandidates(c echo.Context) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	offerID, err := pathID(c, "offerID")
	if err != nil {
		return err
	}

	criteria, err := parseCriteria(c)
	if err != nil {
		return err
	}

	candidates, err := h.pipeline.FilterCandidates(c.Request().Context(), offerID, p, criteria)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, candidates)
}

// StageSummary returns per-status counts and shares for the offer.
func (h *PipelineHandler) StageSummary(c echo.Context) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	offerID, err := pathID(c, "offerID")
	if err != nil {
		return err
	}

	summary, err := h.pipeline.StageSummary(c.Request().Context(), offerID, p)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, summary)
}

// ProcessStatistics returns the offer's hiring rates and dwell times.
func (h *PipelineHandler) ProcessStatistics(c echo.Context) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	offerID, err := pathID(c, "offerID")
	if err != nil {
		return err
	}

	stats, err := h.pipeline.ProcessStatistics(c.Request().Context(), offerID, p)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, stats)
}

// ConversionFunnel returns the three-stage conversion funnel.
func (h *PipelineHandler) ConversionFunnel(c echo.Context) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	offerID, err := pathID(c, "offerID")
	if err != nil {
		return err
	}

	funnel, err := h.pipeline.ConversionFunnel(c.Request().Context(), offerID, p)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, funnel)
}

func parseCriteria(c echo.Context) (service.FilterCriteria, error) {
	criteria := service.FilterCriteria{
		ExperienceTitle: c.QueryParam("experience_title"),
		JobTitle:        c.QueryParam("job_title"),
		Municipality:    c.QueryParam("municipality"),
		Skill:           c.QueryParam("skill"),
	}

	if v := c.QueryParam("min_education"); v != "" {
		level := domain.EducationLevel(v)
		if !level.Valid() {
			return criteria, &domain.ValidationError{Field: "min_education", Message: "unknown education level " + v}
		}
		criteria.MinEducation = &level
	}

	if v := c.QueryParam("min_experience_years"); v != "" {
		years, err := strconv.ParseFloat(v, 64)
		if err != nil || years < 0 {
			return criteria, &domain.ValidationError{Field: "min_experience_years", Message: "must be a non-negative number"}
		}
		criteria.MinExperienceYears = years
	}

	return criteria, nil
}
