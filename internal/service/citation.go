package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/empleora/recruiting/internal/domain"
)

// CitationStore defines the citation data access interface consumed by
// CitationService.
type CitationStore interface {
	FindByID(ctx context.Context, id int64) (*domain.Citation, error)
	ListByApplication(ctx context.Context, applicationID int64) ([]domain.Citation, error)
	Insert(ctx context.Context, cit domain.Citation) (*domain.Citation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.CitationStatus) error
	MarkSent(ctx context.Context, id int64, sentAt time.Time) error
	SoftDelete(ctx context.Context, id int64) error
}

// ScheduleRequest carries the interview details for one or many citations.
type ScheduleRequest struct {
	RecruiterID int64
	Date        string
	Time        string
	MeetingLink *string
	Details     *string
}

// BatchScheduleReport summarizes a batch scheduling run. Errors keeps one
// message per failed item, including notification failures of otherwise
// created citations.
type BatchScheduleReport struct {
	Created  int      `json:"created"`
	Notified int      `json:"notified"`
	Errors   []string `json:"errors,omitempty"`
}

// CitationService schedules interviews for applications and drives the
// citation's own, deliberately loose, status lifecycle.
type CitationService struct {
	citations CitationStore
	apps      ApplicationStore
	offers    OfferStore
	notifier  Emitter
	guard     OwnershipGuard

	now func() time.Time
}

// NewCitationService creates a new CitationService.
func NewCitationService(citations CitationStore, apps ApplicationStore, offers OfferStore, notifier Emitter) *CitationService {
	return &CitationService{citations: citations, apps: apps, offers: offers, notifier: notifier, now: time.Now}
}

// Schedule creates a pending citation for an application. A recruiter may
// only assign themself, never a peer; admins may assign anyone. The assignee
// must belong to the company owning the application's offer.
func (s *CitationService) Schedule(ctx context.Context, applicationID int64, req ScheduleRequest, p domain.Principal) (*domain.Citation, error) {
	if !p.IsAdmin() {
		if p.Role != domain.RoleRecruiter || p.ID != req.RecruiterID {
			return nil, fmt.Errorf("%w: recruiters may only schedule citations for themselves", domain.ErrForbidden)
		}
	}

	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	offer, err := s.offers.FindByID(ctx, app.OfferID)
	if err != nil {
		return nil, err
	}
	if !s.guard.CanMutateApplication(p, *app, *offer) {
		return nil, domain.ErrForbidden
	}
	if app.Status.Terminal() {
		return nil, &domain.ValidationError{Field: "application_id", Message: "application is already finalized"}
	}

	cit, err := s.citations.Insert(ctx, domain.Citation{
		ApplicationID: applicationID,
		RecruiterID:   req.RecruiterID,
		Date:          req.Date,
		Time:          req.Time,
		MeetingLink:   req.MeetingLink,
		Details:       req.Details,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDependency, err)
	}

	slog.Info("citation scheduled",
		"citation_id", cit.ID,
		"application_id", applicationID,
		"recruiter_id", req.RecruiterID,
	)
	return cit, nil
}

// ScheduleBatch schedules one citation per application id, in input order,
// continuing past per-item failures. Each created citation is sent
// immediately; a send failure is folded into that item's errors without
// undoing the creation.
func (s *CitationService) ScheduleBatch(ctx context.Context, applicationIDs []int64, req ScheduleRequest, p domain.Principal) BatchScheduleReport {
	var report BatchScheduleReport
	for _, appID := range applicationIDs {
		cit, err := s.Schedule(ctx, appID, req, p)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("application %d: %v", appID, err))
			continue
		}
		report.Created++

		if _, err := s.Send(ctx, cit.ID, p); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("application %d: notify: %v", appID, err))
			continue
		}
		report.Notified++
	}
	return report
}

// SendResult reports a completed citation send.
type SendResult struct {
	CitationID int64     `json:"citation_id"`
	SentAt     time.Time `json:"sent_at"`
}

// Send marks the citation message as sent and notifies the aspirant. Only
// the assigned recruiter or an admin may trigger it.
func (s *CitationService) Send(ctx context.Context, citationID int64, p domain.Principal) (*SendResult, error) {
	cit, app, err := s.loadForMutate(ctx, citationID, p)
	if err != nil {
		return nil, err
	}

	sentAt := s.now()
	if err := s.citations.MarkSent(ctx, citationID, sentAt); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Tienes una entrevista programada para el %s a las %s.", cit.Date, cit.Time)
	if err := s.notifier.Emit(ctx, domain.ReceiverAspirant, app.AspirantID,
		domain.NotificationCitation,
		"Citación a entrevista",
		message,
		cit.MeetingLink,
	); err != nil {
		return nil, err
	}

	return &SendResult{CitationID: citationID, SentAt: sentAt}, nil
}

// ChangeStatus sets the citation status. Beyond enum membership there is no
// transition table here; any move between defined values is allowed. That is
// intentionally weaker than the application state machine.
func (s *CitationService) ChangeStatus(ctx context.Context, citationID int64, status domain.CitationStatus, p domain.Principal) error {
	if !status.Valid() {
		return &domain.ValidationError{Field: "status", Message: "unknown citation status " + string(status)}
	}
	if _, _, err := s.loadForMutate(ctx, citationID, p); err != nil {
		return err
	}
	return s.citations.UpdateStatus(ctx, citationID, status)
}

// Cancel soft-deletes the citation.
func (s *CitationService) Cancel(ctx context.Context, citationID int64, p domain.Principal) error {
	if _, _, err := s.loadForMutate(ctx, citationID, p); err != nil {
		return err
	}
	return s.citations.SoftDelete(ctx, citationID)
}

// ListByApplication returns an application's citations to anyone who may
// view the application.
func (s *CitationService) ListByApplication(ctx context.Context, applicationID int64, p domain.Principal) ([]domain.Citation, error) {
	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	offer, err := s.offers.FindByID(ctx, app.OfferID)
	if err != nil {
		return nil, err
	}
	if !s.guard.CanViewApplication(p, *app, *offer) {
		return nil, domain.ErrForbidden
	}
	return s.citations.ListByApplication(ctx, applicationID)
}

// loadForMutate resolves the citation and its application and checks that
// the principal is its assigned recruiter or an admin.
func (s *CitationService) loadForMutate(ctx context.Context, citationID int64, p domain.Principal) (*domain.Citation, *domain.Application, error) {
	cit, err := s.citations.FindByID(ctx, citationID)
	if err != nil {
		return nil, nil, err
	}
	if !s.guard.CanMutateCitation(p, *cit) {
		return nil, nil, domain.ErrForbidden
	}
	app, err := s.apps.FindByID(ctx, cit.ApplicationID)
	if err != nil {
		return nil, nil, err
	}
	return cit, app, nil
}
