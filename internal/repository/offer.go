package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/empleora/recruiting/internal/domain"
)

// OfferRepository reads offers. This core never mutates them.
type OfferRepository struct {
	db *sqlx.DB
}

// NewOfferRepository creates a new OfferRepository.
func NewOfferRepository(db *sqlx.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

// FindByID retrieves an offer by its ID.
func (r *OfferRepository) FindByID(ctx context.Context, id int64) (*domain.Offer, error) {
	var offer domain.Offer
	err := r.db.GetContext(ctx, &offer,
		`SELECT id, company_id, title, description, status, created_at, updated_at
		 FROM offers WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find offer by id %d: %w", id, err)
	}
	return &offer, nil
}
