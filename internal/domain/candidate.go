package domain

import (
	"context"
	"strings"
	"time"

	"selectiq/internal/apperr"
)

// JobCandidate is the deduplicated candidate pool. The (email, job_title)
// pair is unique; duplicate submissions return the existing row.
type JobCandidate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"size:200;not null" json:"full_name"`
	Email     string    `gorm:"size:200;not null;uniqueIndex:idx_candidate_email_job" json:"email"`
	JobTitle  string    `gorm:"size:200;not null;uniqueIndex:idx_candidate_email_job" json:"job_title"`
	Status    string    `gorm:"size:50;default:pending" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (JobCandidate) TableName() string { return "job_candidates" }

func (c *JobCandidate) Normalize() {
	c.FullName = strings.TrimSpace(c.FullName)
	c.Email = strings.TrimSpace(c.Email)
	c.JobTitle = strings.TrimSpace(c.JobTitle)
	if c.Status == "" {
		c.Status = AppStatusPending
	}
}

func (c *JobCandidate) Validate() error {
	var missing []string
	if c.FullName == "" {
		missing = append(missing, "full_name")
	}
	if c.Email == "" {
		missing = append(missing, "email")
	}
	if c.JobTitle == "" {
		missing = append(missing, "job_title")
	}
	if len(missing) > 0 {
		return apperr.Validation(missing...)
	}
	return nil
}

type CandidateRepository interface {
	// CreateOrGet inserts c, or when a row with the same (email, job_title)
	// already exists, loads it into c and reports existed=true. Idempotent
	// under retried client submissions.
	CreateOrGet(ctx context.Context, c *JobCandidate) (existed bool, err error)
	List(ctx context.Context) ([]JobCandidate, error)
}
