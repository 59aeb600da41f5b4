package domain

import (
	"context"
	"strings"
	"time"

	"selectiq/internal/apperr"
)

type JobOffer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Company     string    `gorm:"size:200;not null" json:"company"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
}

func (JobOffer) TableName() string { return "job_offer" }

// Normalize trims every client-supplied string field.
func (o *JobOffer) Normalize() {
	o.Title = strings.TrimSpace(o.Title)
	o.Company = strings.TrimSpace(o.Company)
	o.Description = strings.TrimSpace(o.Description)
}

// Validate reports every empty required field at once.
func (o *JobOffer) Validate() error {
	var missing []string
	if o.Title == "" {
		missing = append(missing, "title")
	}
	if o.Company == "" {
		missing = append(missing, "company")
	}
	if o.Description == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return apperr.Validation(missing...)
	}
	return nil
}

// OfferPatch carries optional field updates; nil means leave unchanged.
type OfferPatch struct {
	Title       *string `json:"title"`
	Company     *string `json:"company"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type OfferRepository interface {
	Create(ctx context.Context, o *JobOffer) error
	GetByID(ctx context.Context, id uint) (*JobOffer, error)
	ListActive(ctx context.Context) ([]JobOffer, error)
	Update(ctx context.Context, id uint, patch OfferPatch) (*JobOffer, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}
