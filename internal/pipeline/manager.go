// Package pipeline holds the recruitment-flow logic above the repositories:
// status transition enforcement, candidate promotion and the dashboard
// aggregates.
package pipeline

import (
	"context"

	"go.uber.org/zap"

	"selectiq/internal/apperr"
	"selectiq/internal/domain"
)

// Manager validates and applies state changes for applications and
// interviews, and drives candidate creation when an applicant is promoted.
type Manager struct {
	apps       domain.ApplicationRepository
	candidates domain.CandidateRepository
	interviews domain.InterviewRepository
	log        *zap.Logger
}

func NewManager(
	apps domain.ApplicationRepository,
	candidates domain.CandidateRepository,
	interviews domain.InterviewRepository,
	log *zap.Logger,
) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{apps: apps, candidates: candidates, interviews: interviews, log: log}
}

var applicationStatuses = map[string]bool{
	domain.AppStatusPending:   true,
	domain.AppStatusInterview: true,
	domain.AppStatusHired:     true,
	domain.AppStatusRejected:  true,
	domain.AppStatusCompleted: true,
}

var interviewStatuses = map[string]bool{
	domain.InterviewStatusScheduled: true,
	domain.InterviewStatusCompleted: true,
	domain.InterviewStatusCancelled: true,
}

// SubmitApplication records a new application. "completed" is reserved for
// the form-submission collaborator and cannot be set here.
func (m *Manager) SubmitApplication(ctx context.Context, a *domain.JobApplication) error {
	a.Normalize()
	if !applicationStatuses[a.Status] || a.Status == domain.AppStatusCompleted {
		return apperr.ValidationMsg("status", "unknown application status "+a.Status)
	}
	if err := m.apps.Create(ctx, a); err != nil {
		return err
	}
	m.log.Info("application submitted",
		zap.Uint("id", a.ID), zap.String("job_title", a.JobTitle))
	return nil
}

// UpdateApplication patches an application. A status change must follow
// pending -> interview -> hired|rejected (pending -> rejected direct);
// terminal states admit no further transition.
func (m *Manager) UpdateApplication(ctx context.Context, id uint, patch domain.ApplicationPatch) (*domain.JobApplication, error) {
	if patch.Status != nil {
		current, err := m.apps.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !applicationStatuses[*patch.Status] {
			return nil, apperr.ValidationMsg("status", "unknown application status "+*patch.Status)
		}
		if err := checkTransition(domain.ApplicationTransitions, current.Status, *patch.Status); err != nil {
			return nil, err
		}
	}
	return m.apps.Update(ctx, id, patch)
}

// CompleteFromForm is the external form-submission collaborator path: the
// only way an application reaches the terminal "completed" status. With a
// zero appID it creates a fresh completed application, otherwise it
// overwrites the identified one.
func (m *Manager) CompleteFromForm(ctx context.Context, appID uint, a *domain.JobApplication) (*domain.JobApplication, error) {
	a.Status = domain.AppStatusCompleted
	if appID == 0 {
		a.Normalize()
		if err := m.apps.Create(ctx, a); err != nil {
			return nil, err
		}
		m.log.Info("form submission recorded", zap.Uint("id", a.ID))
		return a, nil
	}
	status := domain.AppStatusCompleted
	patch := domain.ApplicationPatch{
		FullName:       &a.FullName,
		Email:          &a.Email,
		EducationLevel: &a.EducationLevel,
		CVURL:          &a.CVURL,
		Status:         &status,
	}
	if a.JobTitle != "" {
		patch.JobTitle = &a.JobTitle
	}
	updated, err := m.apps.Update(ctx, appID, patch)
	if err != nil {
		return nil, err
	}
	m.log.Info("form submission applied", zap.Uint("id", updated.ID))
	return updated, nil
}

// PromoteCandidate moves an applicant into the tracked candidate pool.
// Idempotent: resubmitting the same (email, job_title) returns the existing
// candidate with existed=true.
func (m *Manager) PromoteCandidate(ctx context.Context, c *domain.JobCandidate) (existed bool, err error) {
	existed, err = m.candidates.CreateOrGet(ctx, c)
	if err == nil && !existed {
		m.log.Info("candidate created", zap.Uint("id", c.ID), zap.String("email", c.Email))
	}
	return existed, err
}

// ScheduleInterview records a new interview; date and time must be valid
// calendar values (validated by the repository's entity checks).
func (m *Manager) ScheduleInterview(ctx context.Context, iv *domain.Interview) error {
	iv.Normalize()
	if !interviewStatuses[iv.Status] {
		return apperr.ValidationMsg("status", "unknown interview status "+iv.Status)
	}
	return m.interviews.Create(ctx, iv)
}

// UpdateInterview patches an interview. Scheduled may move to Completed or
// Cancelled; both are terminal.
func (m *Manager) UpdateInterview(ctx context.Context, id uint, patch domain.InterviewPatch) (*domain.Interview, error) {
	if patch.Status != nil {
		current, err := m.interviews.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !interviewStatuses[*patch.Status] {
			return nil, apperr.ValidationMsg("status", "unknown interview status "+*patch.Status)
		}
		if err := checkTransition(domain.InterviewTransitions, current.Status, *patch.Status); err != nil {
			return nil, err
		}
	}
	return m.interviews.Update(ctx, id, patch)
}

// checkTransition allows same-state no-ops and moves listed in the table.
func checkTransition(table map[string][]string, from, to string) error {
	if from == to {
		return nil
	}
	for _, allowed := range table[from] {
		if allowed == to {
			return nil
		}
	}
	return apperr.InvalidTransition(from, to)
}
