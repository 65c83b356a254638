package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/empleora/recruiting/internal/domain"
)

func pipelineFixture(t *testing.T, statuses []domain.ApplicationStatus, profiles ...domain.AspirantProfile) *PipelineService {
	t.Helper()

	offers := newMemOffers(domain.Offer{ID: 10, CompanyID: 100, Status: domain.OfferStatusOpen})
	apps := newMemApps()
	for i, status := range statuses {
		apps.nextID++
		apps.apps[apps.nextID] = domain.Application{
			ID:         apps.nextID,
			AspirantID: int64(i + 1),
			OfferID:    10,
			Status:     status,
			Active:     true,
			CreatedAt:  time.Now(),
		}
	}
	return NewPipelineService(apps, offers, newMemProfiles(profiles...))
}

func TestStageSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("counts, buckets and floor percentages", func(t *testing.T) {
		svc := pipelineFixture(t, []domain.ApplicationStatus{
			domain.ApplicationStatusPending,
			domain.ApplicationStatusPending,
			domain.ApplicationStatusPending,
			domain.ApplicationStatusInterviewScheduled,
			domain.ApplicationStatusAccepted,
			domain.ApplicationStatusRejected,
		})

		summary, err := svc.StageSummary(ctx, 10, recruiter)
		require.NoError(t, err)

		assert.Equal(t, 6, summary.Total)
		assert.Equal(t, StageCount{Count: 3, Percent: 50}, summary.ByStatus[domain.ApplicationStatusPending])
		assert.Equal(t, StageCount{Count: 1, Percent: 16}, summary.ByStatus[domain.ApplicationStatusInterviewScheduled])
		assert.Equal(t, StageCount{Count: 1, Percent: 16}, summary.ByStatus[domain.ApplicationStatusAccepted])
		assert.Equal(t, StageCount{Count: 1, Percent: 16}, summary.ByStatus[domain.ApplicationStatusRejected])
		assert.Equal(t, StageCount{Count: 4, Percent: 66}, summary.InProcess)
		assert.Equal(t, StageCount{Count: 2, Percent: 33}, summary.Finalized)

		// Floor division keeps the status shares within one point of 100.
		sum := 0
		for _, status := range domain.ApplicationStatuses {
			sum += summary.ByStatus[status].Percent
		}
		assert.GreaterOrEqual(t, sum, 96)
		assert.LessOrEqual(t, sum, 100)
	})

	t.Run("empty pipeline yields zero everywhere", func(t *testing.T) {
		svc := pipelineFixture(t, nil)

		summary, err := svc.StageSummary(ctx, 10, recruiter)
		require.NoError(t, err)

		assert.Equal(t, 0, summary.Total)
		for _, status := range domain.ApplicationStatuses {
			assert.Equal(t, StageCount{}, summary.ByStatus[status])
		}
		assert.Equal(t, StageCount{}, summary.InProcess)
		assert.Equal(t, StageCount{}, summary.Finalized)
	})

	t.Run("strangers are forbidden", func(t *testing.T) {
		svc := pipelineFixture(t, nil)

		_, err := svc.StageSummary(ctx, 10, otherRecruiter)
		assert.ErrorIs(t, err, domain.ErrForbidden)

		_, err = svc.StageSummary(ctx, 10, aspirant)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestProcessStatistics(t *testing.T) {
	ctx := context.Background()

	t.Run("rates and dwell times", func(t *testing.T) {
		svc := pipelineFixture(t, nil)
		now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return now }

		apps := svc.apps.(*memApps)
		seed := []struct {
			status domain.ApplicationStatus
			age    time.Duration
		}{
			{domain.ApplicationStatusPending, 48 * time.Hour},
			{domain.ApplicationStatusPending, 96 * time.Hour},
			{domain.ApplicationStatusInterviewScheduled, 240 * time.Hour},
			{domain.ApplicationStatusAccepted, 300 * time.Hour},
		}
		for i, s := range seed {
			apps.nextID++
			apps.apps[apps.nextID] = domain.Application{
				ID: apps.nextID, AspirantID: int64(i + 1), OfferID: 10,
				Status: s.status, Active: true, CreatedAt: now.Add(-s.age),
			}
		}

		stats, err := svc.ProcessStatistics(ctx, 10, recruiter)
		require.NoError(t, err)

		assert.Equal(t, 4, stats.Total)
		assert.Equal(t, 25, stats.AcceptanceRate)
		assert.Equal(t, 0, stats.RejectionRate)
		assert.Equal(t, 75, stats.InProcessRate)
		assert.Equal(t, 3, stats.AvgDaysPending)         // mean of 2 and 4 days
		assert.Equal(t, 10, stats.AvgDaysInterviewStage) // single 10-day application
	})

	t.Run("zero applications never divide by zero", func(t *testing.T) {
		svc := pipelineFixture(t, nil)

		stats, err := svc.ProcessStatistics(ctx, 10, recruiter)
		require.NoError(t, err)
		assert.Equal(t, &ProcessStats{}, stats)
	})
}

func TestConversionFunnel(t *testing.T) {
	ctx := context.Background()

	t.Run("three ordered stages as shares of initial review", func(t *testing.T) {
		svc := pipelineFixture(t, []domain.ApplicationStatus{
			domain.ApplicationStatusPending,
			domain.ApplicationStatusPending,
			domain.ApplicationStatusInterviewScheduled,
			domain.ApplicationStatusAccepted,
			domain.ApplicationStatusRejected,
		})

		funnel, err := svc.ConversionFunnel(ctx, 10, recruiter)
		require.NoError(t, err)

		require.Len(t, funnel, 3)
		assert.Equal(t, FunnelStage{Name: "Initial Review", Count: 5, Percent: 100}, funnel[0])
		assert.Equal(t, FunnelStage{Name: "Interview", Count: 2, Percent: 40}, funnel[1])
		assert.Equal(t, FunnelStage{Name: "Selection", Count: 1, Percent: 20}, funnel[2])
	})

	t.Run("empty funnel is all zero", func(t *testing.T) {
		svc := pipelineFixture(t, nil)

		funnel, err := svc.ConversionFunnel(ctx, 10, recruiter)
		require.NoError(t, err)
		for _, stage := range funnel {
			assert.Zero(t, stage.Count)
			assert.Zero(t, stage.Percent)
		}
	})
}

func TestFilterCandidates(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	ended := now.AddDate(-1, 0, 0)
	profiles := []domain.AspirantProfile{
		{
			AspirantID:   1,
			Education:    domain.EducationProfessional,
			Municipality: "Medellín",
			Experiences: []domain.Experience{
				{JobTitle: "Backend Developer", StartDate: now.AddDate(-5, 0, 0), EndDate: &ended},
			},
			Skills: []string{"Go", "PostgreSQL"},
		},
		{
			AspirantID:   2,
			Education:    domain.EducationSecondary,
			Municipality: "Bogotá",
			Experiences: []domain.Experience{
				{JobTitle: "Sales Assistant", StartDate: now.AddDate(-1, 0, 0)},
			},
			Skills: []string{"Excel"},
		},
	}

	newSvc := func() *PipelineService {
		svc := pipelineFixture(t, []domain.ApplicationStatus{
			domain.ApplicationStatusPending,
			domain.ApplicationStatusPending,
			domain.ApplicationStatusPending, // aspirant 3 has no profile
		}, profiles...)
		svc.now = func() time.Time { return now }
		return svc
	}

	t.Run("no criteria matches everyone", func(t *testing.T) {
		candidates, err := newSvc().FilterCandidates(ctx, 10, recruiter, FilterCriteria{})
		require.NoError(t, err)
		assert.Len(t, candidates, 3)
	})

	t.Run("criteria are AND-combined", func(t *testing.T) {
		minEd := domain.EducationTechnical
		candidates, err := newSvc().FilterCandidates(ctx, 10, recruiter, FilterCriteria{
			MinEducation: &minEd,
			Skill:        "go",
			Municipality: "medel",
		})
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, int64(1), candidates[0].Profile.AspirantID)
	})

	t.Run("minimum years of a named experience", func(t *testing.T) {
		candidates, err := newSvc().FilterCandidates(ctx, 10, recruiter, FilterCriteria{
			ExperienceTitle:    "backend",
			MinExperienceYears: 3,
		})
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, int64(1), candidates[0].Profile.AspirantID)

		// The ended experience spans 4 years, not 5.
		candidates, err = newSvc().FilterCandidates(ctx, 10, recruiter, FilterCriteria{
			ExperienceTitle:    "backend",
			MinExperienceYears: 4.5,
		})
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("ongoing experience measures to today", func(t *testing.T) {
		candidates, err := newSvc().FilterCandidates(ctx, 10, recruiter, FilterCriteria{
			ExperienceTitle:    "sales",
			MinExperienceYears: 0.5,
		})
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, int64(2), candidates[0].Profile.AspirantID)
	})

	t.Run("job title substring", func(t *testing.T) {
		candidates, err := newSvc().FilterCandidates(ctx, 10, recruiter, FilterCriteria{JobTitle: "developer"})
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, int64(1), candidates[0].Profile.AspirantID)
	})

	t.Run("profileless aspirants only match empty criteria", func(t *testing.T) {
		minEd := domain.EducationNone
		candidates, err := newSvc().FilterCandidates(ctx, 10, recruiter, FilterCriteria{MinEducation: &minEd})
		require.NoError(t, err)
		// Aspirant 3 has the zero-value profile, whose empty education still
		// satisfies the "none" floor.
		assert.Len(t, candidates, 3)

		candidates, err = newSvc().FilterCandidates(ctx, 10, recruiter, FilterCriteria{Skill: "go"})
		require.NoError(t, err)
		assert.Len(t, candidates, 1)
	})
}
