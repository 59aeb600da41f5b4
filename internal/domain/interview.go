package domain

import (
	"context"
	"strings"
	"time"

	"selectiq/internal/apperr"
)

// Interview statuses. Completed and Cancelled are terminal.
const (
	InterviewStatusScheduled = "Scheduled"
	InterviewStatusCompleted = "Completed"
	InterviewStatusCancelled = "Cancelled"
)

var InterviewTransitions = map[string][]string{
	InterviewStatusScheduled: {InterviewStatusCompleted, InterviewStatusCancelled},
}

// Wire formats for the two calendar fields.
const (
	InterviewDateLayout = "2006-01-02"
	InterviewTimeLayout = "15:04"
)

type Interview struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CandidateName string    `gorm:"size:200;not null" json:"candidate_name"`
	InterviewDate string    `gorm:"size:10;not null" json:"interview_date"`
	InterviewTime string    `gorm:"size:5;not null" json:"interview_time"`
	Interviewer   string    `gorm:"size:200;not null" json:"interviewer"`
	InterviewType string    `gorm:"size:50;not null" json:"interview_type"`
	Status        string    `gorm:"size:50;default:Scheduled" json:"status"`
	Comments      string    `gorm:"type:text" json:"comments"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Interview) TableName() string { return "interview" }

func (iv *Interview) Normalize() {
	iv.CandidateName = strings.TrimSpace(iv.CandidateName)
	iv.InterviewDate = strings.TrimSpace(iv.InterviewDate)
	iv.InterviewTime = strings.TrimSpace(iv.InterviewTime)
	iv.Interviewer = strings.TrimSpace(iv.Interviewer)
	iv.InterviewType = strings.TrimSpace(iv.InterviewType)
	if iv.Status == "" {
		iv.Status = InterviewStatusScheduled
	}
}

// Validate checks required fields, then that the date and time parse to
// valid calendar values, naming the offending field.
func (iv *Interview) Validate() error {
	var missing []string
	if iv.CandidateName == "" {
		missing = append(missing, "candidate_name")
	}
	if iv.InterviewDate == "" {
		missing = append(missing, "interview_date")
	}
	if iv.InterviewTime == "" {
		missing = append(missing, "interview_time")
	}
	if iv.Interviewer == "" {
		missing = append(missing, "interviewer")
	}
	if iv.InterviewType == "" {
		missing = append(missing, "interview_type")
	}
	if len(missing) > 0 {
		return apperr.Validation(missing...)
	}
	if _, err := time.Parse(InterviewDateLayout, iv.InterviewDate); err != nil {
		return apperr.ValidationMsg("interview_date", "interview_date must be YYYY-MM-DD")
	}
	if _, err := time.Parse(InterviewTimeLayout, iv.InterviewTime); err != nil {
		return apperr.ValidationMsg("interview_time", "interview_time must be 24-hour HH:MM")
	}
	return nil
}

type InterviewPatch struct {
	CandidateName *string `json:"candidate_name"`
	InterviewDate *string `json:"interview_date"`
	InterviewTime *string `json:"interview_time"`
	Interviewer   *string `json:"interviewer"`
	InterviewType *string `json:"interview_type"`
	Status        *string `json:"status"`
}

type InterviewRepository interface {
	Create(ctx context.Context, iv *Interview) error
	GetByID(ctx context.Context, id uint) (*Interview, error)
	// List returns interviews by date descending. It degrades to an empty
	// slice when the table is absent or the query fails; it never errors.
	List(ctx context.Context) []Interview
	Update(ctx context.Context, id uint, patch InterviewPatch) (*Interview, error)
	Delete(ctx context.Context, id uint) error
	AppendComment(ctx context.Context, id uint, comment string) error
	DeleteCommentAt(ctx context.Context, id uint, index int) error
}
