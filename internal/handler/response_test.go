package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/empleora/recruiting/internal/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"wrapped not found", fmt.Errorf("load application: %w", domain.ErrNotFound), http.StatusNotFound, "not_found"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"invalid input", fmt.Errorf("%w: offer is not open", domain.ErrInvalidInput), http.StatusBadRequest, "invalid_input"},
		{"conflict", fmt.Errorf("%w: already applied", domain.ErrConflict), http.StatusConflict, "conflict"},
		{"dependency failure", fmt.Errorf("%w: insert notification", domain.ErrDependency), http.StatusBadGateway, "dependency_failure"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, apiErr := mapError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestMapError_InvalidTransition(t *testing.T) {
	err := &domain.InvalidTransitionError{
		From: domain.ApplicationStatusAccepted,
		To:   domain.ApplicationStatusInterviewScheduled,
	}

	status, apiErr := mapError(err)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "invalid_transition", apiErr.Code)
	require.Len(t, apiErr.Details, 2)
	assert.Equal(t, FieldError{Field: "current_status", Message: "accepted"}, apiErr.Details[0])
	assert.Equal(t, FieldError{Field: "target_status", Message: "interview_scheduled"}, apiErr.Details[1])
}

func TestMapError_Validation(t *testing.T) {
	err := &domain.ValidationError{Field: "status", Message: "unknown application status archived"}

	status, apiErr := mapError(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", apiErr.Code)
	require.Len(t, apiErr.Details, 1)
	assert.Equal(t, "status", apiErr.Details[0].Field)
}
