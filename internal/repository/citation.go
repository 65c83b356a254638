package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/empleora/recruiting/internal/domain"
)

const citationColumns = `id, application_id, recruiter_id, date, time, meeting_link, details,
	status, message_sent, sent_at, active, created_at, updated_at`

// CitationRepository handles citation data access operations.
type CitationRepository struct {
	db *sqlx.DB
}

// NewCitationRepository creates a new CitationRepository.
func NewCitationRepository(db *sqlx.DB) *CitationRepository {
	return &CitationRepository{db: db}
}

// FindByID retrieves an active citation by its ID.
func (r *CitationRepository) FindByID(ctx context.Context, id int64) (*domain.Citation, error) {
	var cit domain.Citation
	err := r.db.GetContext(ctx, &cit,
		`SELECT `+citationColumns+` FROM citations WHERE id = $1 AND active = TRUE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find citation by id %d: %w", id, err)
	}
	return &cit, nil
}

// ListByApplication retrieves all active citations for one application,
// newest first.
func (r *CitationRepository) ListByApplication(ctx context.Context, applicationID int64) ([]domain.Citation, error) {
	var cits []domain.Citation
	err := r.db.SelectContext(ctx, &cits,
		`SELECT `+citationColumns+` FROM citations
		 WHERE application_id = $1 AND active = TRUE ORDER BY created_at DESC, id DESC`, applicationID)
	if err != nil {
		return nil, fmt.Errorf("list citations for application %d: %w", applicationID, err)
	}
	return cits, nil
}

// Insert creates a new pending citation.
func (r *CitationRepository) Insert(ctx context.Context, cit domain.Citation) (*domain.Citation, error) {
	var result domain.Citation
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO citations (application_id, recruiter_id, date, time, meeting_link, details, status, message_sent, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, TRUE)
		 RETURNING `+citationColumns,
		cit.ApplicationID, cit.RecruiterID, cit.Date, cit.Time, cit.MeetingLink, cit.Details, domain.CitationStatusPending,
	).StructScan(&result)
	if err != nil {
		return nil, fmt.Errorf("insert citation: %w", err)
	}
	return &result, nil
}

// UpdateStatus sets the citation status.
func (r *CitationRepository) UpdateStatus(ctx context.Context, id int64, status domain.CitationStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE citations SET status = $1, updated_at = NOW()
		 WHERE id = $2 AND active = TRUE`, status, id)
	if err != nil {
		return fmt.Errorf("update citation %d status: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkSent records that the citation message went out.
func (r *CitationRepository) MarkSent(ctx context.Context, id int64, sentAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE citations SET message_sent = TRUE, sent_at = $1, updated_at = NOW()
		 WHERE id = $2 AND active = TRUE`, sentAt, id)
	if err != nil {
		return fmt.Errorf("mark citation %d sent: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marks a citation inactive.
func (r *CitationRepository) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE citations SET active = FALSE, updated_at = NOW()
		 WHERE id = $1 AND active = TRUE`, id)
	if err != nil {
		return fmt.Errorf("soft delete citation %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
