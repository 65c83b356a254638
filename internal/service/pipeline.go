package service

import (
	"context"
	"errors"
	"time"

	"github.com/empleora/recruiting/internal/domain"
)

// ProfileStore defines the read-only aspirant profile access used by
// candidate filtering.
type ProfileStore interface {
	FindByAspirant(ctx context.Context, aspirantID int64) (*domain.AspirantProfile, error)
}

// FilterCriteria are the optional, AND-combined candidate filters. A nil or
// empty criterion excludes nothing.
type FilterCriteria struct {
	MinEducation       *domain.EducationLevel
	ExperienceTitle    string // names the experience MinExperienceYears applies to
	MinExperienceYears float64
	JobTitle           string // substring on any job title held
	Municipality       string // substring
	Skill              string // substring
}

// Candidate pairs an application with the profile of its aspirant for
// recruiter-facing listings.
type Candidate struct {
	Application domain.Application     `json:"application"`
	Profile     domain.AspirantProfile `json:"profile"`
}

// StageCount is one status bucket of the stage summary.
type StageCount struct {
	Count   int `json:"count"`
	Percent int `json:"percent"`
}

// StageSummary breaks an offer's applications down by status, with an
// in-process (pending + interview) and finalized (accepted + rejected)
// aggregate.
type StageSummary struct {
	Total     int                                     `json:"total"`
	ByStatus  map[domain.ApplicationStatus]StageCount `json:"by_status"`
	InProcess StageCount                              `json:"in_process"`
	Finalized StageCount                              `json:"finalized"`
}

// ProcessStats carries the headline hiring rates and the mean days
// applications have been sitting in the two live stages. Dwell time is
// measured from CreatedAt because no per-transition timestamps are retained;
// it approximates time in the current stage.
type ProcessStats struct {
	Total                 int `json:"total"`
	AcceptanceRate        int `json:"acceptance_rate"`
	RejectionRate         int `json:"rejection_rate"`
	InProcessRate         int `json:"in_process_rate"`
	AvgDaysPending        int `json:"avg_days_pending"`
	AvgDaysInterviewStage int `json:"avg_days_interview_stage"`
}

// FunnelStage is one step of the conversion funnel.
type FunnelStage struct {
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"` // of the initial review total
}

// PipelineService derives recruiter-facing views over an offer's
// applications. It is strictly read-only.
type PipelineService struct {
	apps     ApplicationStore
	offers   OfferStore
	profiles ProfileStore

	now func() time.Time
}

// NewPipelineService creates a new PipelineService.
func NewPipelineService(apps ApplicationStore, offers OfferStore, profiles ProfileStore) *PipelineService {
	return &PipelineService{apps: apps, offers: offers, profiles: profiles, now: time.Now}
}

// FilterCandidates returns the offer's candidates matching every present
// criterion. Aspirants without a stored profile match only an empty
// criteria set.
func (s *PipelineService) FilterCandidates(ctx context.Context, offerID int64, p domain.Principal, criteria FilterCriteria) ([]Candidate, error) {
	apps, err := s.visibleApplications(ctx, offerID, p)
	if err != nil {
		return nil, err
	}

	now := s.now()
	candidates := make([]Candidate, 0, len(apps))
	for _, app := range apps {
		profile, err := s.profiles.FindByAspirant(ctx, app.AspirantID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				profile = &domain.AspirantProfile{AspirantID: app.AspirantID}
			} else {
				return nil, err
			}
		}
		if matchesCriteria(*profile, criteria, now) {
			candidates = append(candidates, Candidate{Application: app, Profile: *profile})
		}
	}
	return candidates, nil
}

// StageSummary counts an offer's applications per status. Percentages are
// floor-divided integers; an empty pipeline yields zero everywhere.
func (s *PipelineService) StageSummary(ctx context.Context, offerID int64, p domain.Principal) (*StageSummary, error) {
	apps, err := s.visibleApplications(ctx, offerID, p)
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.ApplicationStatus]int, len(domain.ApplicationStatuses))
	for _, app := range apps {
		counts[app.Status]++
	}

	total := len(apps)
	summary := &StageSummary{
		Total:    total,
		ByStatus: make(map[domain.ApplicationStatus]StageCount, len(domain.ApplicationStatuses)),
	}
	for _, status := range domain.ApplicationStatuses {
		summary.ByStatus[status] = StageCount{
			Count:   counts[status],
			Percent: percent(counts[status], total),
		}
	}

	inProcess := counts[domain.ApplicationStatusPending] + counts[domain.ApplicationStatusInterviewScheduled]
	finalized := counts[domain.ApplicationStatusAccepted] + counts[domain.ApplicationStatusRejected]
	summary.InProcess = StageCount{Count: inProcess, Percent: percent(inProcess, total)}
	summary.Finalized = StageCount{Count: finalized, Percent: percent(finalized, total)}
	return summary, nil
}

// ProcessStatistics returns acceptance, rejection and in-process rates plus
// the mean dwell time of the live stages.
func (s *PipelineService) ProcessStatistics(ctx context.Context, offerID int64, p domain.Principal) (*ProcessStats, error) {
	apps, err := s.visibleApplications(ctx, offerID, p)
	if err != nil {
		return nil, err
	}

	now := s.now()
	total := len(apps)
	var accepted, rejected, inProcess int
	var pendingDays, pendingN, interviewDays, interviewN int

	for _, app := range apps {
		switch app.Status {
		case domain.ApplicationStatusAccepted:
			accepted++
		case domain.ApplicationStatusRejected:
			rejected++
		case domain.ApplicationStatusPending:
			inProcess++
			pendingDays += daysSince(app.CreatedAt, now)
			pendingN++
		case domain.ApplicationStatusInterviewScheduled:
			inProcess++
			interviewDays += daysSince(app.CreatedAt, now)
			interviewN++
		}
	}

	stats := &ProcessStats{
		Total:          total,
		AcceptanceRate: percent(accepted, total),
		RejectionRate:  percent(rejected, total),
		InProcessRate:  percent(inProcess, total),
	}
	if pendingN > 0 {
		stats.AvgDaysPending = pendingDays / pendingN
	}
	if interviewN > 0 {
		stats.AvgDaysInterviewStage = interviewDays / interviewN
	}
	return stats, nil
}

// ConversionFunnel reports the three-stage hiring funnel. Every application
// enters initial review; the interview stage counts applications that
// reached an interview and are not rejected; selection counts acceptances.
// Percentages are shares of the initial review total.
func (s *PipelineService) ConversionFunnel(ctx context.Context, offerID int64, p domain.Principal) ([]FunnelStage, error) {
	apps, err := s.visibleApplications(ctx, offerID, p)
	if err != nil {
		return nil, err
	}

	total := len(apps)
	var interview, selected int
	for _, app := range apps {
		switch app.Status {
		case domain.ApplicationStatusInterviewScheduled:
			interview++
		case domain.ApplicationStatusAccepted:
			interview++
			selected++
		}
	}

	return []FunnelStage{
		{Name: "Initial Review", Count: total, Percent: percent(total, total)},
		{Name: "Interview", Count: interview, Percent: percent(interview, total)},
		{Name: "Selection", Count: selected, Percent: percent(selected, total)},
	}, nil
}

// visibleApplications resolves the offer, checks that the principal may see
// its pipeline, and loads the active applications.
func (s *PipelineService) visibleApplications(ctx context.Context, offerID int64, p domain.Principal) ([]domain.Application, error) {
	offer, err := s.offers.FindByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() && !(p.Role == domain.RoleRecruiter && p.CompanyID == offer.CompanyID) {
		return nil, domain.ErrForbidden
	}
	return s.apps.ListByOffer(ctx, offerID)
}

func matchesCriteria(profile domain.AspirantProfile, c FilterCriteria, now time.Time) bool {
	if c.MinEducation != nil && !profile.Education.AtLeast(*c.MinEducation) {
		return false
	}
	if c.ExperienceTitle != "" {
		var years float64
		for _, e := range profile.Experiences {
			if domain.ContainsFold(e.JobTitle, c.ExperienceTitle) {
				years += e.Years(now)
			}
		}
		if years < c.MinExperienceYears {
			return false
		}
	}
	if c.JobTitle != "" && !profile.HeldJobTitle(c.JobTitle) {
		return false
	}
	if c.Municipality != "" && !domain.ContainsFold(profile.Municipality, c.Municipality) {
		return false
	}
	if c.Skill != "" && !profile.HasSkill(c.Skill) {
		return false
	}
	return true
}

// percent is a floor-divided integer share; a zero total yields zero rather
// than dividing by zero.
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return part * 100 / total
}

func daysSince(t, now time.Time) int {
	if now.Before(t) {
		return 0
	}
	return int(now.Sub(t).Hours() / 24)
}
