package domain

import "time"

// ApplicationStatus represents the lifecycle state of an application.
type ApplicationStatus string

const (
	ApplicationStatusPending            ApplicationStatus = "pending"
	ApplicationStatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	ApplicationStatusAccepted           ApplicationStatus = "accepted"
	ApplicationStatusRejected           ApplicationStatus = "rejected"
)

// ApplicationStatuses lists every valid status in pipeline order.
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusInterviewScheduled,
	ApplicationStatusAccepted,
	ApplicationStatusRejected,
}

// Valid reports whether the status is one of the defined values.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusInterviewScheduled,
		ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether the status has no outgoing forward transitions.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

// Label returns the human-readable description used in notifications.
func (s ApplicationStatus) Label() string {
	switch s {
	case ApplicationStatusPending:
		return "Pendiente de revisión"
	case ApplicationStatusInterviewScheduled:
		return "Entrevista programada"
	case ApplicationStatusAccepted:
		return "Aceptada"
	case ApplicationStatusRejected:
		return "Rechazada"
	}
	return string(s)
}

// applicationTransitions is the fixed forward transition table. Accepted and
// rejected are terminal.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusPending: {
		ApplicationStatusInterviewScheduled,
		ApplicationStatusAccepted,
		ApplicationStatusRejected,
	},
	ApplicationStatusInterviewScheduled: {
		ApplicationStatusAccepted,
		ApplicationStatusRejected,
	},
	ApplicationStatusAccepted: {},
	ApplicationStatusRejected: {},
}

// applicationReverts is the one-step-back table. It is intentionally not the
// inverse of the forward table: terminal states can be reverted.
var applicationReverts = map[ApplicationStatus]ApplicationStatus{
	ApplicationStatusInterviewScheduled: ApplicationStatusPending,
	ApplicationStatusAccepted:           ApplicationStatusInterviewScheduled,
	ApplicationStatusRejected:           ApplicationStatusPending,
}

// AvailableTransitions returns the legal next states for the given status.
// The result is a copy; callers may not mutate the table through it.
func AvailableTransitions(from ApplicationStatus) []ApplicationStatus {
	next := applicationTransitions[from]
	out := make([]ApplicationStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether from→to is in the transition table.
func CanTransition(from, to ApplicationStatus) bool {
	for _, s := range applicationTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// RevertTarget returns the one-step-back status for the given status. The
// second result is false for pending, which has nothing to revert to.
func RevertTarget(from ApplicationStatus) (ApplicationStatus, bool) {
	to, ok := applicationReverts[from]
	return to, ok
}

// Application represents one aspirant's application to one offer. At most one
// active application may exist per (aspirant, offer) pair.
type Application struct {
	ID         int64             `json:"id" db:"id"`
	AspirantID int64             `json:"aspirant_id" db:"aspirant_id"`
	OfferID    int64             `json:"offer_id" db:"offer_id"`
	Status     ApplicationStatus `json:"status" db:"status"`
	Active     bool              `json:"active" db:"active"`
	CreatedAt  time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at" db:"updated_at"`
}

// WithStatus returns a new Application with the given status.
func (a Application) WithStatus(status ApplicationStatus) Application {
	return Application{
		ID:         a.ID,
		AspirantID: a.AspirantID,
		OfferID:    a.OfferID,
		Status:     status,
		Active:     a.Active,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  time.Now(),
	}
}
