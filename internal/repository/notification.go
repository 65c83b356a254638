package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/empleora/recruiting/internal/domain"
)

// NotificationRepository persists notifications. Reading and deleting them
// belongs to the notification inbox, outside this core.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Insert creates a notification row.
func (r *NotificationRepository) Insert(ctx context.Context, n domain.Notification) (*domain.Notification, error) {
	var result domain.Notification
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO notifications (aspirant_id, recruiter_id, type, title, message, link, read, active)
		 VALUES ($1, $2, $3, $4, $5, $6, FALSE, TRUE)
		 RETURNING id, aspirant_id, recruiter_id, type, title, message, link, read, active, created_at`,
		n.AspirantID, n.RecruiterID, n.Type, n.Title, n.Message, n.Link,
	).StructScan(&result)
	if err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	return &result, nil
}
