package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/empleora/recruiting/internal/domain"
)

// ProfileRepository reads aspirant profiles for candidate filtering. Profile
// editing is handled elsewhere.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// FindByAspirant assembles the filterable profile slice for one aspirant. A
// missing profile row maps to ErrNotFound; missing experiences or skills are
// just empty lists.
func (r *ProfileRepository) FindByAspirant(ctx context.Context, aspirantID int64) (*domain.AspirantProfile, error) {
	var profile domain.AspirantProfile
	err := r.db.GetContext(ctx, &profile,
		`SELECT aspirant_id, education, municipality
		 FROM aspirant_profiles WHERE aspirant_id = $1`, aspirantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find profile for aspirant %d: %w", aspirantID, err)
	}

	err = r.db.SelectContext(ctx, &profile.Experiences,
		`SELECT job_title, start_date, end_date
		 FROM work_experiences WHERE aspirant_id = $1 ORDER BY start_date`, aspirantID)
	if err != nil {
		return nil, fmt.Errorf("list experiences for aspirant %d: %w", aspirantID, err)
	}

	err = r.db.SelectContext(ctx, &profile.Skills,
		`SELECT name FROM aspirant_skills WHERE aspirant_id = $1 ORDER BY name`, aspirantID)
	if err != nil {
		return nil, fmt.Errorf("list skills for aspirant %d: %w", aspirantID, err)
	}

	return &profile, nil
}
