package domain

import "time"

// CitationStatus represents the state of an interview citation. Unlike
// application statuses there is no transition table: any status may move to
// any other, only enum membership is checked.
type CitationStatus string

const (
	CitationStatusPending     CitationStatus = "pending"
	CitationStatusConfirmed   CitationStatus = "confirmed"
	CitationStatusAttended    CitationStatus = "attended"
	CitationStatusNotAttended CitationStatus = "not_attended"
	CitationStatusCancelled   CitationStatus = "cancelled"
)

// Valid reports whether the status is one of the defined values.
func (s CitationStatus) Valid() bool {
	switch s {
	case CitationStatusPending, CitationStatusConfirmed, CitationStatusAttended,
		CitationStatusNotAttended, CitationStatusCancelled:
		return true
	}
	return false
}

// Citation is a scheduled interview tied to exactly one application. The
// assigned recruiter must belong to the company owning the application's
// offer.
type Citation struct {
	ID            int64          `json:"id" db:"id"`
	ApplicationID int64          `json:"application_id" db:"application_id"`
	RecruiterID   int64          `json:"recruiter_id" db:"recruiter_id"`
	Date          string         `json:"date" db:"date"`
	Time          string         `json:"time" db:"time"`
	MeetingLink   *string        `json:"meeting_link,omitempty" db:"meeting_link"`
	Details       *string        `json:"details,omitempty" db:"details"`
	Status        CitationStatus `json:"status" db:"status"`
	MessageSent   bool           `json:"message_sent" db:"message_sent"`
	SentAt        *time.Time     `json:"sent_at,omitempty" db:"sent_at"`
	Active        bool           `json:"active" db:"active"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}
