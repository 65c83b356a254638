package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/empleora/recruiting/internal/domain"
)

const applicationColumns = `id, aspirant_id, offer_id, status, active, created_at, updated_at`

// ApplicationRepository handles application data access operations.
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository creates a new ApplicationRepository.
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// FindByID retrieves an active application by its ID.
func (r *ApplicationRepository) FindByID(ctx context.Context, id int64) (*domain.Application, error) {
	var app domain.Application
	err := r.db.GetContext(ctx, &app,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1 AND active = TRUE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find application by id %d: %w", id, err)
	}
	return &app, nil
}

// ListByOffer retrieves all active applications for an offer, oldest first.
func (r *ApplicationRepository) ListByOffer(ctx context.Context, offerID int64) ([]domain.Application, error) {
	var apps []domain.Application
	err := r.db.SelectContext(ctx, &apps,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE offer_id = $1 AND active = TRUE ORDER BY created_at, id`, offerID)
	if err != nil {
		return nil, fmt.Errorf("list applications for offer %d: %w", offerID, err)
	}
	return apps, nil
}

// ListByAspirant retrieves all active applications created by an aspirant,
// newest first.
func (r *ApplicationRepository) ListByAspirant(ctx context.Context, aspirantID int64) ([]domain.Application, error) {
	var apps []domain.Application
	err := r.db.SelectContext(ctx, &apps,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE aspirant_id = $1 AND active = TRUE ORDER BY created_at DESC, id DESC`, aspirantID)
	if err != nil {
		return nil, fmt.Errorf("list applications for aspirant %d: %w", aspirantID, err)
	}
	return apps, nil
}

// Insert creates a new pending application. A partial unique index on
// (aspirant_id, offer_id) WHERE active guards the one-active-application
// invariant; violations map to ErrConflict.
func (r *ApplicationRepository) Insert(ctx context.Context, aspirantID, offerID int64) (*domain.Application, error) {
	var app domain.Application
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO applications (aspirant_id, offer_id, status, active)
		 VALUES ($1, $2, $3, TRUE)
		 RETURNING `+applicationColumns,
		aspirantID, offerID, domain.ApplicationStatusPending,
	).StructScan(&app)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("insert application: %w", err)
	}
	return &app, nil
}

// UpdateStatusFrom moves an application from one status to another only if it
// still holds the expected prior status. Returns false when the row was not
// updated, meaning a concurrent transition won or the application is gone.
func (r *ApplicationRepository) UpdateStatusFrom(ctx context.Context, id int64, from, to domain.ApplicationStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE applications SET status = $1, updated_at = NOW()
		 WHERE id = $2 AND status = $3 AND active = TRUE`, to, id, from)
	if err != nil {
		return false, fmt.Errorf("update application %d status: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update application %d status: %w", id, err)
	}
	return n == 1, nil
}

// SoftDelete marks an application inactive.
func (r *ApplicationRepository) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE applications SET active = FALSE, updated_at = NOW()
		 WHERE id = $1 AND active = TRUE`, id)
	if err != nil {
		return fmt.Errorf("soft delete application %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
