package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"selectiq/internal/core/database"
	"selectiq/internal/domain"
)

type CandidateRepo struct {
	gw *database.Gateway
}

func NewCandidateRepo(gw *database.Gateway) *CandidateRepo {
	return &CandidateRepo{gw: gw}
}

// CreateOrGet inserts c, or loads the existing row for the same
// (email, job_title) pair into c and reports existed=true. Lookup and
// insert run in one transaction; a concurrent insert that slips between
// them trips the unique index and is resolved by re-reading.
func (r *CandidateRepo) CreateOrGet(ctx context.Context, c *domain.JobCandidate) (bool, error) {
	c.Normalize()
	if err := c.Validate(); err != nil {
		return false, err
	}
	existed := false
	err := r.gw.Execute(ctx, func(tx *gorm.DB) error {
		var found domain.JobCandidate
		err := tx.Where("email = ? AND job_title = ?", c.Email, c.JobTitle).First(&found).Error
		switch {
		case err == nil:
			*c = found
			existed = true
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		if err := tx.Create(c).Error; err != nil {
			if isDupKey(err) {
				if err2 := tx.Where("email = ? AND job_title = ?", c.Email, c.JobTitle).First(&found).Error; err2 != nil {
					return err2
				}
				*c = found
				existed = true
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		return false, translate(err, "candidate")
	}
	return existed, nil
}

func (r *CandidateRepo) List(ctx context.Context) ([]domain.JobCandidate, error) {
	var candidates []domain.JobCandidate
	err := r.gw.View(ctx, func(tx *gorm.DB) error {
		return tx.Order("created_at DESC, id DESC").Find(&candidates).Error
	})
	if err != nil {
		return nil, translate(err, "candidates")
	}
	return candidates, nil
}
