package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shuaibahmad12/mirai/internal/admission/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindCounter(ctx context.Context, db *gorm.DB, collegeID, sessionID snowflake.ID) (*domain.AdmissionCounter, error) {
	var counter domain.AdmissionCounter
	err := db.WithContext(ctx).
		Where("college_id = ? AND session_id = ?", collegeID, sessionID).
		First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &counter, nil
}

func (r *repo) InsertCounter(ctx context.Context, db *gorm.DB, counter *domain.AdmissionCounter) error {
	return db.WithContext(ctx).Create(counter).Error
}

func (r *repo) AdvanceCounter(ctx context.Context, db *gorm.DB, counter *domain.AdmissionCounter) error {
	res := db.WithContext(ctx).
		Model(&domain.AdmissionCounter{}).
		Where("id = ? AND next_seq = ?", counter.ID, counter.NextSeq).
		Updates(map[string]any{
			"next_seq":   gorm.Expr("next_seq + 1"),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStaleCounter
	}
	return nil
}
