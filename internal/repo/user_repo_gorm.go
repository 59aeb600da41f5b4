package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"selectiq/internal/core/database"
	"selectiq/internal/domain"
)

type UserRepo struct {
	gw *database.Gateway
}

func NewUserRepo(gw *database.Gateway) *UserRepo { return &UserRepo{gw: gw} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	return translate(r.gw.Execute(ctx, func(tx *gorm.DB) error {
		return tx.Create(u).Error
	}), "user")
}

func (r *UserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	err := r.gw.View(ctx, func(tx *gorm.DB) error {
		return tx.First(&u, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.gw.View(ctx, func(tx *gorm.DB) error {
		return tx.First(&u, "email = ?", email).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	return translate(r.gw.Execute(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&domain.User{}).Where("id = ?", id).Update("password_hash", passwordHash)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}), "user")
}
