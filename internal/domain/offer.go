package domain

import "time"

// OfferStatus represents the publication state of a job offer.
type OfferStatus string

const (
	OfferStatusOpen   OfferStatus = "open"
	OfferStatusClosed OfferStatus = "closed"
	OfferStatusPaused OfferStatus = "paused"
)

// Offer represents a job offer owned by exactly one company. This core only
// consults offers, it never mutates them: an offer gates new applications
// (must be open) and resolves which recruiters may act on them.
type Offer struct {
	ID          int64       `json:"id" db:"id"`
	CompanyID   int64       `json:"company_id" db:"company_id"`
	Title       string      `json:"title" db:"title"`
	Description *string     `json:"description,omitempty" db:"description"`
	Status      OfferStatus `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// Open reports whether the offer accepts new applications.
func (o Offer) Open() bool {
	return o.Status == OfferStatusOpen
}
