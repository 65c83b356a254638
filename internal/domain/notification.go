package domain

import "time"

// NotificationType represents the kind of notification. The wire values are
// the product's historical Spanish codes.
type NotificationType string

const (
	NotificationStatusChange NotificationType = "CAMBIO_ESTADO"
	NotificationCitation     NotificationType = "CITACION"
	NotificationApplication  NotificationType = "POSTULACION"
)

// ReceiverKind selects which side of the hiring process a notification
// targets. Exactly one receiver must be set, never both, never neither.
type ReceiverKind string

const (
	ReceiverAspirant  ReceiverKind = "aspirant"
	ReceiverRecruiter ReceiverKind = "recruiter"
)

// Notification represents an in-app notification. Exactly one of AspirantID
// and RecruiterID is non-nil; creation fails otherwise.
type Notification struct {
	ID          int64            `json:"id" db:"id"`
	AspirantID  *int64           `json:"aspirant_id,omitempty" db:"aspirant_id"`
	RecruiterID *int64           `json:"recruiter_id,omitempty" db:"recruiter_id"`
	Type        NotificationType `json:"type" db:"type"`
	Title       string           `json:"title" db:"title"`
	Message     string           `json:"message" db:"message"`
	Link        *string          `json:"link,omitempty" db:"link"`
	Read        bool             `json:"read" db:"read"`
	Active      bool             `json:"active" db:"active"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}
