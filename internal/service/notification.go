package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/empleora/recruiting/internal/domain"
)

// NotificationStore defines the notification persistence interface consumed
// by the emitter.
type NotificationStore interface {
	Insert(ctx context.Context, n domain.Notification) (*domain.Notification, error)
}

// NotificationService creates notifications on behalf of the pipeline.
// Delivery and the read/delete lifecycle live outside this core.
type NotificationService struct {
	store NotificationStore
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(store NotificationStore) *NotificationService {
	return &NotificationService{store: store}
}

// Emit creates a notification for exactly one receiver. An unknown receiver
// kind or a zero receiver id fails loudly; silently dropping a notification
// would hide a pipeline bug.
func (s *NotificationService) Emit(ctx context.Context, kind domain.ReceiverKind, receiverID int64, typ domain.NotificationType, title, message string, link *string) error {
	if receiverID == 0 {
		return &domain.ValidationError{Field: "receiver_id", Message: "must not be zero"}
	}

	n := domain.Notification{Type: typ, Title: title, Message: message, Link: link}
	switch kind {
	case domain.ReceiverAspirant:
		n.AspirantID = &receiverID
	case domain.ReceiverRecruiter:
		n.RecruiterID = &receiverID
	default:
		return &domain.ValidationError{Field: "receiver_kind", Message: "must be aspirant or recruiter"}
	}

	if _, err := s.store.Insert(ctx, n); err != nil {
		return fmt.Errorf("%w: emit notification: %v", domain.ErrDependency, err)
	}

	slog.Info("notification emitted",
		"receiver_kind", kind,
		"receiver_id", receiverID,
		"type", typ,
	)
	return nil
}
