package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/empleora/recruiting/internal/domain"
)

// ApplicationStore defines the application data access interface consumed by
// ApplicationService.
type ApplicationStore interface {
	FindByID(ctx context.Context, id int64) (*domain.Application, error)
	ListByOffer(ctx context.Context, offerID int64) ([]domain.Application, error)
	ListByAspirant(ctx context.Context, aspirantID int64) ([]domain.Application, error)
	Insert(ctx context.Context, aspirantID, offerID int64) (*domain.Application, error)
	UpdateStatusFrom(ctx context.Context, id int64, from, to domain.ApplicationStatus) (bool, error)
	SoftDelete(ctx context.Context, id int64) error
}

// OfferStore defines the read-only offer access interface.
type OfferStore interface {
	FindByID(ctx context.Context, id int64) (*domain.Offer, error)
}

// Emitter is the notification contract consumed by the pipeline services.
type Emitter interface {
	Emit(ctx context.Context, kind domain.ReceiverKind, receiverID int64, typ domain.NotificationType, title, message string, link *string) error
}

// BatchItemStatus marks one item's outcome in a batch operation.
type BatchItemStatus string

const (
	BatchItemSuccess BatchItemStatus = "SUCCESS"
	BatchItemError   BatchItemStatus = "ERROR"
)

// BatchItemResult is the per-application outcome of a batch status change.
type BatchItemResult struct {
	ApplicationID int64           `json:"application_id"`
	Status        BatchItemStatus `json:"status"`
	Message       string          `json:"message,omitempty"`
}

// ApplicationService owns the application lifecycle: creation, the status
// state machine, and soft deletion.
type ApplicationService struct {
	apps     ApplicationStore
	offers   OfferStore
	notifier Emitter
	guard    OwnershipGuard
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(apps ApplicationStore, offers OfferStore, notifier Emitter) *ApplicationService {
	return &ApplicationService{apps: apps, offers: offers, notifier: notifier}
}

// Apply creates a pending application for an aspirant on an open offer. Only
// the aspirant themself (or an admin acting for them) may apply.
func (s *ApplicationService) Apply(ctx context.Context, aspirantID, offerID int64, p domain.Principal) (*domain.Application, error) {
	if !p.IsAdmin() && (p.Role != domain.RoleAspirant || p.ID != aspirantID) {
		return nil, fmt.Errorf("%w: cannot apply on behalf of another aspirant", domain.ErrForbidden)
	}

	offer, err := s.offers.FindByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if !offer.Open() {
		return nil, fmt.Errorf("%w: offer %d is not open for applications", domain.ErrInvalidInput, offerID)
	}

	// The store's partial unique index holds the one-active-application
	// invariant even under concurrent applies.
	app, err := s.apps.Insert(ctx, aspirantID, offerID)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: already applied to offer %d", domain.ErrConflict, offerID)
		}
		return nil, err
	}

	if err := s.notifier.Emit(ctx, domain.ReceiverAspirant, aspirantID,
		domain.NotificationApplication,
		"Postulación registrada",
		fmt.Sprintf("Tu postulación a %q fue registrada.", offer.Title),
		nil,
	); err != nil {
		return nil, err
	}

	return app, nil
}

// ChangeStatus moves an application to a target status through the fixed
// transition table. Transitions are a recruiter action: the principal must be
// a recruiter of the offer's company or an admin. The status write is
// check-then-set against the status read here, so two concurrent transitions
// from the same prior state cannot both succeed.
func (s *ApplicationService) ChangeStatus(ctx context.Context, id int64, target domain.ApplicationStatus, p domain.Principal) (*domain.Application, error) {
	if !target.Valid() {
		return nil, &domain.ValidationError{Field: "status", Message: "unknown application status " + string(target)}
	}

	app, offer, err := s.loadForMutate(ctx, id, p)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() && p.Role != domain.RoleRecruiter {
		return nil, fmt.Errorf("%w: only recruiters may change application status", domain.ErrForbidden)
	}

	if !domain.CanTransition(app.Status, target) {
		return nil, &domain.InvalidTransitionError{From: app.Status, To: target}
	}

	return s.commitTransition(ctx, *app, *offer, target)
}

// Revert steps an application one state back: interview_scheduled→pending,
// accepted→interview_scheduled, rejected→pending. Unlike the forward table
// this deliberately allows leaving a terminal state.
func (s *ApplicationService) Revert(ctx context.Context, id int64, p domain.Principal) (*domain.Application, error) {
	app, offer, err := s.loadForMutate(ctx, id, p)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() && p.Role != domain.RoleRecruiter {
		return nil, fmt.Errorf("%w: only recruiters may revert application status", domain.ErrForbidden)
	}

	target, ok := domain.RevertTarget(app.Status)
	if !ok {
		return nil, &domain.InvalidTransitionError{From: app.Status, To: domain.ApplicationStatusPending}
	}

	return s.commitTransition(ctx, *app, *offer, target)
}

// BatchChangeStatus applies ChangeStatus to each id independently, in input
// order. One item's failure never rolls back another's success; the caller
// always gets a per-id outcome list.
func (s *ApplicationService) BatchChangeStatus(ctx context.Context, ids []int64, target domain.ApplicationStatus, p domain.Principal) []BatchItemResult {
	results := make([]BatchItemResult, 0, len(ids))
	for _, id := range ids {
		if _, err := s.ChangeStatus(ctx, id, target, p); err != nil {
			results = append(results, BatchItemResult{
				ApplicationID: id,
				Status:        BatchItemError,
				Message:       err.Error(),
			})
			continue
		}
		results = append(results, BatchItemResult{ApplicationID: id, Status: BatchItemSuccess})
	}
	return results
}

// AvailableTransitions returns the legal next states for an application. It
// never mutates anything.
func (s *ApplicationService) AvailableTransitions(ctx context.Context, id int64, p domain.Principal) ([]domain.ApplicationStatus, error) {
	app, err := s.apps.FindByID(ctx, id)
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
	return domain.AvailableTransitions(app.Status), nil
}

// ListByOffer returns an offer's active applications for a recruiter of the
// owning company or an admin.
func (s *ApplicationService) ListByOffer(ctx context.Context, offerID int64, p domain.Principal) ([]domain.Application, error) {
	offer, err := s.offers.FindByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() && !(p.Role == domain.RoleRecruiter && p.CompanyID == offer.CompanyID) {
		return nil, domain.ErrForbidden
	}
	return s.apps.ListByOffer(ctx, offerID)
}

// ListMine returns the caller's own applications.
func (s *ApplicationService) ListMine(ctx context.Context, p domain.Principal) ([]domain.Application, error) {
	return s.apps.ListByAspirant(ctx, p.ID)
}

// Delete soft-deletes an application. Only the owning aspirant or an admin
// may; recruiters manage status, not existence.
func (s *ApplicationService) Delete(ctx context.Context, id int64, p domain.Principal) error {
	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !p.IsAdmin() && !(p.Role == domain.RoleAspirant && p.ID == app.AspirantID) {
		return domain.ErrForbidden
	}
	return s.apps.SoftDelete(ctx, id)
}

// loadForMutate resolves the application and its offer and runs the
// ownership guard for mutation.
func (s *ApplicationService) loadForMutate(ctx context.Context, id int64, p domain.Principal) (*domain.Application, *domain.Offer, error) {
	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	offer, err := s.offers.FindByID(ctx, app.OfferID)
	if err != nil {
		return nil, nil, err
	}
	if !s.guard.CanMutateApplication(p, *app, *offer) {
		return nil, nil, domain.ErrForbidden
	}
	return app, offer, nil
}

// commitTransition persists the status change with a check against the prior
// status, then notifies the aspirant. A lost race surfaces as an invalid
// transition from the now-current status.
func (s *ApplicationService) commitTransition(ctx context.Context, app domain.Application, offer domain.Offer, target domain.ApplicationStatus) (*domain.Application, error) {
	ok, err := s.apps.UpdateStatusFrom(ctx, app.ID, app.Status, target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDependency, err)
	}
	if !ok {
		current, err := s.apps.FindByID(ctx, app.ID)
		if err != nil {
			return nil, err
		}
		return nil, &domain.InvalidTransitionError{From: current.Status, To: target}
	}

	slog.Info("application status changed",
		"application_id", app.ID,
		"from", app.Status,
		"to", target,
	)

	if err := s.notifier.Emit(ctx, domain.ReceiverAspirant, app.AspirantID,
		domain.NotificationStatusChange,
		"Tu postulación cambió de estado",
		fmt.Sprintf("Tu postulación a %q ahora está en estado: %s.", offer.Title, target.Label()),
		nil,
	); err != nil {
		return nil, err
	}

	updated := app.WithStatus(target)
	return &updated, nil
}
