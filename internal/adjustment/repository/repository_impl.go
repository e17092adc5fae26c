package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shuaibahmad12/mirai/internal/adjustment/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, adjustment *domain.FeeAdjustment) error {
	return db.WithContext(ctx).Create(adjustment).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, adjustment *domain.FeeAdjustment) error {
	return db.WithContext(ctx).Save(adjustment).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, studentID, id snowflake.ID) (*domain.FeeAdjustment, error) {
	var adjustment domain.FeeAdjustment
	err := db.WithContext(ctx).
		First(&adjustment, "student_id = ? AND id = ?", studentID, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &adjustment, nil
}

func (r *repo) ListByStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID) ([]*domain.FeeAdjustment, error) {
	var adjustments []*domain.FeeAdjustment
	err := db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at desc, id desc").
		Find(&adjustments).Error
	if err != nil {
		return nil, err
	}
	return adjustments, nil
}
