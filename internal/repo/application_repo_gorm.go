package repo

import (
	"context"
	"strconv"

	"gorm.io/gorm"

	"selectiq/internal/core/database"
	"selectiq/internal/domain"
)

type ApplicationRepo struct {
	gw *database.Gateway
}

func NewApplicationRepo(gw *database.Gateway) *ApplicationRepo {
	return &ApplicationRepo{gw: gw}
}

func (r *ApplicationRepo) Create(ctx context.Context, a *domain.JobApplication) error {
	a.Normalize()
	if err := a.Validate(); err != nil {
		return err
	}
	return translate(r.gw.Execute(ctx, func(tx *gorm.DB) error {
		return tx.Create(a).Error
	}), "application")
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id uint) (*domain.JobApplication, error) {
	var a domain.JobApplication
	err := r.gw.View(ctx, func(tx *gorm.DB) error {
		return tx.First(&a, id).Error
	})
	if err != nil {
		return nil, translate(err, "application")
	}
	return &a, nil
}

func (r *ApplicationRepo) List(ctx context.Context) ([]domain.JobApplication, error) {
	var apps []domain.JobApplication
	err := r.gw.View(ctx, func(tx *gorm.DB) error {
		return tx.Order("created_at DESC, id DESC").Find(&apps).Error
	})
	if err != nil {
		return nil, translate(err, "applications")
	}
	return apps, nil
}

// Update patches the application; it never inserts. Status values are
// assumed already validated by the pipeline manager.
func (r *ApplicationRepo) Update(ctx context.Context, id uint, patch domain.ApplicationPatch) (*domain.JobApplication, error) {
	var a domain.JobApplication
	err := r.gw.Execute(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&a, id).Error; err != nil {
			return err
		}
		if patch.FullName != nil {
			a.FullName = *patch.FullName
		}
		if patch.Email != nil {
			a.Email = *patch.Email
		}
		if patch.JobTitle != nil {
			a.JobTitle = *patch.JobTitle
		}
		if patch.EducationLevel != nil {
			a.EducationLevel = *patch.EducationLevel
		}
		if patch.Status != nil {
			a.Status = *patch.Status
		}
		if patch.CVURL != nil {
			a.CVURL = *patch.CVURL
		}
		a.Normalize()
		if err := a.Validate(); err != nil {
			return err
		}
		return tx.Save(&a).Error
	})
	if err != nil {
		return nil, translate(err, "application")
	}
	return &a, nil
}

// DeleteByIDOrEmail deletes by numeric id, or when ident is not numeric by
// the first row matching it as an email. Either miss is a not-found.
func (r *ApplicationRepo) DeleteByIDOrEmail(ctx context.Context, ident string) error {
	return translate(r.gw.Execute(ctx, func(tx *gorm.DB) error {
		if id, err := strconv.ParseUint(ident, 10, 64); err == nil {
			res := tx.Delete(&domain.JobApplication{}, uint(id))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil
		}
		var a domain.JobApplication
		if err := tx.First(&a, "email = ?", ident).Error; err != nil {
			return err
		}
		return tx.Delete(&a).Error
	}), "application")
}

func (r *ApplicationRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.gw.View(ctx, func(tx *gorm.DB) error {
		return tx.Model(&domain.JobApplication{}).Count(&n).Error
	})
	return n, translate(err, "applications")
}

func (r *ApplicationRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.gw.View(ctx, func(tx *gorm.DB) error {
		return tx.Model(&domain.JobApplication{}).Where("status = ?", status).Count(&n).Error
	})
	return n, translate(err, "applications")
}
