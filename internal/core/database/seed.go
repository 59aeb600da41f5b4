package database

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"selectiq/internal/domain"
)

type SeedOpts struct {
	AdminEmail    string
	AdminPassword string
}

// Seed provisions the default data the dashboard expects on a fresh store:
// the admin account, a starter set of job offers and one sample interview.
// Every block is idempotent; re-running against a populated store is a no-op.
func Seed(ctx context.Context, gw *Gateway, opts SeedOpts, log *zap.Logger) error {
	if opts.AdminEmail != "" && opts.AdminPassword != "" {
		if err := seedAdmin(ctx, gw, opts); err != nil {
			return err
		}
		log.Info("admin user ensured", zap.String("email", opts.AdminEmail))
	}
	if err := seedOffers(ctx, gw, log); err != nil {
		return err
	}
	return seedSampleInterview(ctx, gw, log)
}

func seedAdmin(ctx context.Context, gw *Gateway, opts SeedOpts) error {
	return gw.Execute(ctx, func(tx *gorm.DB) error {
		var u domain.User
		err := tx.First(&u, "email = ?", opts.AdminEmail).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			hash, herr := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
			if herr != nil {
				return herr
			}
			return tx.Create(&domain.User{
				Username:     "admin",
				Email:        opts.AdminEmail,
				PasswordHash: string(hash),
			}).Error
		case err != nil:
			return err
		}
		// Existing admin whose configured password no longer verifies gets
		// the hash reset, matching first-boot recovery behavior.
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(opts.AdminPassword)) != nil {
			hash, herr := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
			if herr != nil {
				return herr
			}
			return tx.Model(&u).Update("password_hash", string(hash)).Error
		}
		return nil
	})
}

func seedOffers(ctx context.Context, gw *Gateway, log *zap.Logger) error {
	return gw.Execute(ctx, func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.JobOffer{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		offers := []domain.JobOffer{
			{Title: "Développeur Frontend React", Company: "CodingCity Inc.",
				Description: "Opportunité pour un développeur frontend passionné par React et les interfaces modernes."},
			{Title: "Data Analyst Junior", Company: "DataLab",
				Description: "Poste pour analyste débutant avec compétences en Python et visualisation de données."},
			{Title: "Ingénieur IA", Company: "AI Corp",
				Description: "Recherche ingénieur en intelligence artificielle avec expérience en machine learning."},
		}
		if err := tx.Create(&offers).Error; err != nil {
			return err
		}
		log.Info("default job offers created", zap.Int("count", len(offers)))
		return nil
	})
}

func seedSampleInterview(ctx context.Context, gw *Gateway, log *zap.Logger) error {
	return gw.Execute(ctx, func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.Interview{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		iv := domain.Interview{
			CandidateName: "John Doe",
			InterviewDate: time.Now().Format(domain.InterviewDateLayout),
			InterviewTime: "14:30",
			Interviewer:   "Sarah Johnson",
			InterviewType: "Online",
			Status:        domain.InterviewStatusScheduled,
		}
		if err := tx.Create(&iv).Error; err != nil {
			return err
		}
		log.Info("sample interview created", zap.Uint("id", iv.ID))
		return nil
	})
}
