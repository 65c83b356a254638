package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEducationLevelAtLeast(t *testing.T) {
	assert.True(t, EducationMaster.AtLeast(EducationProfessional))
	assert.True(t, EducationProfessional.AtLeast(EducationProfessional))
	assert.False(t, EducationSecondary.AtLeast(EducationTechnical))
	assert.True(t, EducationPrimary.AtLeast(EducationNone))

	// Unknown levels rank at the bottom.
	assert.False(t, EducationLevel("bootcamp").AtLeast(EducationPrimary))
	assert.True(t, EducationLevel("bootcamp").AtLeast(EducationNone))
}

func TestExperienceYears(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("ended experience measures start to end", func(t *testing.T) {
		end := now.AddDate(-1, 0, 0)
		e := Experience{StartDate: now.AddDate(-4, 0, 0), EndDate: &end}
		assert.InDelta(t, 3.0, e.Years(now), 0.05)
	})

	t.Run("ongoing experience measures to now", func(t *testing.T) {
		e := Experience{StartDate: now.AddDate(-2, 0, 0)}
		assert.InDelta(t, 2.0, e.Years(now), 0.05)
	})

	t.Run("inverted dates yield zero", func(t *testing.T) {
		end := now.AddDate(-3, 0, 0)
		e := Experience{StartDate: now, EndDate: &end}
		assert.Zero(t, e.Years(now))
	})
}

func TestProfileMatching(t *testing.T) {
	p := AspirantProfile{
		Municipality: "Medellín",
		Experiences: []Experience{
			{JobTitle: "Backend Developer"},
			{JobTitle: "SRE"},
		},
		Skills: []string{"Go", "PostgreSQL"},
	}

	assert.True(t, p.HasSkill("postgre"))
	assert.True(t, p.HasSkill("GO"))
	assert.False(t, p.HasSkill("java"))

	assert.True(t, p.HeldJobTitle("backend"))
	assert.True(t, p.HeldJobTitle("sre"))
	assert.False(t, p.HeldJobTitle("designer"))
}
