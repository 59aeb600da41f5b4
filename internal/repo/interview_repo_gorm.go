package repo

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"selectiq/internal/core/database"
	"selectiq/internal/domain"
)

type InterviewRepo struct {
	gw  *database.Gateway
	log *zap.Logger
}

func NewInterviewRepo(gw *database.Gateway, log *zap.Logger) *InterviewRepo {
	if log == nil {
		log = zap.NewNop()
	}
	return &InterviewRepo{gw: gw, log: log}
}

func (r *InterviewRepo) Create(ctx context.Context, iv *domain.Interview) error {
	iv.Normalize()
	if err := iv.Validate(); err != nil {
		return err
	}
	return translate(r.gw.Execute(ctx, func(tx *gorm.DB) error {
		return tx.Create(iv).Error
	}), "interview")
}

func (r *InterviewRepo) GetByID(ctx context.Context, id uint) (*domain.Interview, error) {
	var iv domain.Interview
	err := r.gw.View(ctx, func(tx *gorm.DB) error {
		return tx.First(&iv, id).Error
	})
	if err != nil {
		return nil, translate(err, "interview")
	}
	return &iv, nil
}

// List returns interviews by date descending. A missing table or a failed
// query degrades to an empty slice so the dependent dashboard never blocks
// on this listing.
func (r *InterviewRepo) List(ctx context.Context) []domain.Interview {
	interviews := []domain.Interview{}
	err := r.gw.View(ctx, func(tx *gorm.DB) error {
		if !tx.Migrator().HasTable(&domain.Interview{}) {
			return nil
		}
		return tx.Order("interview_date DESC, id DESC").Find(&interviews).Error
	})
	if err != nil {
		r.log.Warn("interview listing degraded to empty", zap.Error(err))
		return []domain.Interview{}
	}
	return interviews
}

// Update patches the interview; the date and time formats are re-validated
// after the patch is applied. It never inserts.
func (r *InterviewRepo) Update(ctx context.Context, id uint, patch domain.InterviewPatch) (*domain.Interview, error) {
	var iv domain.Interview
	err := r.gw.Execute(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&iv, id).Error; err != nil {
			return err
		}
		if patch.CandidateName != nil {
			iv.CandidateName = *patch.CandidateName
		}
		if patch.InterviewDate != nil {
			iv.InterviewDate = *patch.InterviewDate
		}
		if patch.InterviewTime != nil {
			iv.InterviewTime = *patch.InterviewTime
		}
		if patch.Interviewer != nil {
			iv.Interviewer = *patch.Interviewer
		}
		if patch.InterviewType != nil {
			iv.InterviewType = *patch.InterviewType
		}
		if patch.Status != nil {
			iv.Status = *patch.Status
		}
		iv.Normalize()
		if err := iv.Validate(); err != nil {
			return err
		}
		return tx.Save(&iv).Error
	})
	if err != nil {
		return nil, translate(err, "interview")
	}
	return &iv, nil
}

func (r *InterviewRepo) Delete(ctx context.Context, id uint) error {
	return translate(r.gw.Execute(ctx, func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Interview{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}), "interview")
}

// AppendComment adds a comment to the interview's thread inside one
// transaction, so concurrent appends cannot drop each other.
func (r *InterviewRepo) AppendComment(ctx context.Context, id uint, comment string) error {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return domain.ErrEmptyComment
	}
	return translate(r.gw.Execute(ctx, func(tx *gorm.DB) error {
		var iv domain.Interview
		if err := tx.First(&iv, id).Error; err != nil {
			return err
		}
		iv.AppendComment(comment)
		return tx.Model(&iv).Update("comments", iv.Comments).Error
	}), "interview")
}

// DeleteCommentAt removes the comment at index. A thread that has no
// comments at all is a not-found; an index outside the thread's bounds is
// an index error.
func (r *InterviewRepo) DeleteCommentAt(ctx context.Context, id uint, index int) error {
	return translate(r.gw.Execute(ctx, func(tx *gorm.DB) error {
		var iv domain.Interview
		if err := tx.First(&iv, id).Error; err != nil {
			return err
		}
		if iv.Comments == "" {
			return domain.ErrNoComments
		}
		if err := iv.RemoveCommentAt(index); err != nil {
			return err
		}
		return tx.Model(&iv).Update("comments", iv.Comments).Error
	}), "interview")
}
