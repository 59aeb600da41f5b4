package repo

import (
	"context"

	"gorm.io/gorm"

	"selectiq/internal/core/database"
	"selectiq/internal/domain"
)

type OfferRepo struct {
	gw *database.Gateway
}

func NewOfferRepo(gw *database.Gateway) *OfferRepo { return &OfferRepo{gw: gw} }

func (r *OfferRepo) Create(ctx context.Context, o *domain.JobOffer) error {
	o.Normalize()
	if err := o.Validate(); err != nil {
		return err
	}
	o.IsActive = true
	return translate(r.gw.Execute(ctx, func(tx *gorm.DB) error {
		return tx.Create(o).Error
	}), "job offer")
}

func (r *OfferRepo) GetByID(ctx context.Context, id uint) (*domain.JobOffer, error) {
	var o domain.JobOffer
	err := r.gw.View(ctx, func(tx *gorm.DB) error {
		return tx.First(&o, id).Error
	})
	if err != nil {
		return nil, translate(err, "job offer")
	}
	return &o, nil
}

// ListActive returns active offers newest first. Deactivated offers stay in
// the table but never list.
func (r *OfferRepo) ListActive(ctx context.Context) ([]domain.JobOffer, error) {
	var offers []domain.JobOffer
	err := r.gw.View(ctx, func(tx *gorm.DB) error {
		return tx.Where("is_active = ?", true).
			Order("created_at DESC, id DESC").
			Find(&offers).Error
	})
	if err != nil {
		return nil, translate(err, "job offers")
	}
	return offers, nil
}

// Update patches the offer in place; it never inserts.
func (r *OfferRepo) Update(ctx context.Context, id uint, patch domain.OfferPatch) (*domain.JobOffer, error) {
	var o domain.JobOffer
	err := r.gw.Execute(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&o, id).Error; err != nil {
			return err
		}
		if patch.Title != nil {
			o.Title = *patch.Title
		}
		if patch.Company != nil {
			o.Company = *patch.Company
		}
		if patch.Description != nil {
			o.Description = *patch.Description
		}
		if patch.IsActive != nil {
			o.IsActive = *patch.IsActive
		}
		o.Normalize()
		if err := o.Validate(); err != nil {
			return err
		}
		return tx.Save(&o).Error
	})
	if err != nil {
		return nil, translate(err, "job offer")
	}
	return &o, nil
}

func (r *OfferRepo) Delete(ctx context.Context, id uint) error {
	return translate(r.gw.Execute(ctx, func(tx *gorm.DB) error {
		res := tx.Delete(&domain.JobOffer{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}), "job offer")
}

func (r *OfferRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.gw.View(ctx, func(tx *gorm.DB) error {
		return tx.Model(&domain.JobOffer{}).Count(&n).Error
	})
	return n, translate(err, "job offers")
}
