package domain

import (
	"context"
	"strings"
	"time"

	"selectiq/internal/apperr"
)

// Application statuses. "completed" is terminal and reachable only through
// the external form-submission callback, never through a status update.
const (
	AppStatusPending   = "pending"
	AppStatusInterview = "interview"
	AppStatusHired     = "hired"
	AppStatusRejected  = "rejected"
	AppStatusCompleted = "completed"
)

// ApplicationTransitions is the allowed state machine for status updates.
var ApplicationTransitions = map[string][]string{
	AppStatusPending:   {AppStatusInterview, AppStatusRejected},
	AppStatusInterview: {AppStatusHired, AppStatusRejected},
}

type JobApplication struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	FullName       string    `gorm:"size:200;not null" json:"full_name"`
	Email          string    `gorm:"size:200;not null" json:"email"`
	JobTitle       string    `gorm:"size:200;not null" json:"job_title"`
	EducationLevel string    `gorm:"size:200" json:"education_level"`
	Status         string    `gorm:"size:50;default:pending" json:"status"`
	CVURL          string    `gorm:"column:cv_url;size:500" json:"cv_url"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (JobApplication) TableName() string { return "job_application" }

func (a *JobApplication) Normalize() {
	a.FullName = strings.TrimSpace(a.FullName)
	a.Email = strings.TrimSpace(a.Email)
	a.JobTitle = strings.TrimSpace(a.JobTitle)
	a.EducationLevel = strings.TrimSpace(a.EducationLevel)
	a.CVURL = strings.TrimSpace(a.CVURL)
	if a.Status == "" {
		a.Status = AppStatusPending
	}
}

func (a *JobApplication) Validate() error {
	var missing []string
	if a.FullName == "" {
		missing = append(missing, "full_name")
	}
	if a.Email == "" {
		missing = append(missing, "email")
	}
	if a.JobTitle == "" {
		missing = append(missing, "job_title")
	}
	if len(missing) > 0 {
		return apperr.Validation(missing...)
	}
	return nil
}

// ApplicationPatch carries optional field updates; nil means leave unchanged.
// Status changes are validated by the pipeline manager, not here.
type ApplicationPatch struct {
	FullName       *string `json:"full_name"`
	Email          *string `json:"email"`
	JobTitle       *string `json:"job_title"`
	EducationLevel *string `json:"education_level"`
	Status         *string `json:"status"`
	CVURL          *string `json:"cv_url"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, a *JobApplication) error
	GetByID(ctx context.Context, id uint) (*JobApplication, error)
	List(ctx context.Context) ([]JobApplication, error)
	Update(ctx context.Context, id uint, patch ApplicationPatch) (*JobApplication, error)
	// DeleteByIDOrEmail deletes by numeric id when ident is all digits,
	// otherwise by the first row matching ident as an email.
	DeleteByIDOrEmail(ctx context.Context, ident string) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}
