package domain

import (
	"strings"
	"time"
)

// EducationLevel is an ordered ladder of academic attainment used by the
// candidate filter. Comparison is by rank, not by string.
type EducationLevel string

const (
	EducationNone           EducationLevel = "none"
	EducationPrimary        EducationLevel = "primary"
	EducationSecondary      EducationLevel = "secondary"
	EducationTechnical      EducationLevel = "technical"
	EducationTechnologist   EducationLevel = "technologist"
	EducationProfessional   EducationLevel = "professional"
	EducationSpecialization EducationLevel = "specialization"
	EducationMaster         EducationLevel = "master"
	EducationDoctorate      EducationLevel = "doctorate"
)

var educationRank = map[EducationLevel]int{
	EducationNone:           0,
	EducationPrimary:        1,
	EducationSecondary:      2,
	EducationTechnical:      3,
	EducationTechnologist:   4,
	EducationProfessional:   5,
	EducationSpecialization: 6,
	EducationMaster:         7,
	EducationDoctorate:      8,
}

// Valid reports whether the level is one of the defined values.
func (l EducationLevel) Valid() bool {
	_, ok := educationRank[l]
	return ok
}

// AtLeast reports whether the level meets the given minimum.
func (l EducationLevel) AtLeast(min EducationLevel) bool {
	return educationRank[l] >= educationRank[min]
}

// Experience is one work-history entry on an aspirant profile. EndDate is
// nil while the position is still held.
type Experience struct {
	JobTitle  string     `json:"job_title" db:"job_title"`
	StartDate time.Time  `json:"start_date" db:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty" db:"end_date"`
}

// Years returns the duration of the experience in fractional years, measured
// to now for ongoing positions.
func (e Experience) Years(now time.Time) float64 {
	end := now
	if e.EndDate != nil {
		end = *e.EndDate
	}
	if end.Before(e.StartDate) {
		return 0
	}
	return end.Sub(e.StartDate).Hours() / (24 * 365)
}

// AspirantProfile is the read-only slice of an aspirant's profile consumed by
// the candidate filter. Profile editing lives outside this core.
type AspirantProfile struct {
	AspirantID   int64          `json:"aspirant_id" db:"aspirant_id"`
	Education    EducationLevel `json:"education" db:"education"`
	Municipality string         `json:"municipality" db:"municipality"`
	Experiences  []Experience   `json:"experiences"`
	Skills       []string       `json:"skills"`
}

// HasSkill reports whether any skill contains the given substring,
// case-insensitively.
func (p AspirantProfile) HasSkill(sub string) bool {
	for _, s := range p.Skills {
		if ContainsFold(s, sub) {
			return true
		}
	}
	return false
}

// HeldJobTitle reports whether any experience's job title contains the given
// substring, case-insensitively.
func (p AspirantProfile) HeldJobTitle(sub string) bool {
	for _, e := range p.Experiences {
		if ContainsFold(e.JobTitle, sub) {
			return true
		}
	}
	return false
}

// ContainsFold is a case-insensitive substring match.
func ContainsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
