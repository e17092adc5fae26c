package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shuaibahmad12/mirai/internal/override/domain"
	studentdomain "github.com/shuaibahmad12/mirai/internal/student/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, override *domain.FeeOverride) error {
	return db.WithContext(ctx).Save(override).Error
}

func (r *repo) FindByKey(ctx context.Context, db *gorm.DB, studentID, feePlanItemID snowflake.ID, yearNumber int) (*domain.FeeOverride, error) {
	var override domain.FeeOverride
	err := db.WithContext(ctx).
		Where("student_id = ? AND fee_plan_item_id = ? AND year_number = ?", studentID, feePlanItemID, yearNumber).
		First(&override).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &override, nil
}

func (r *repo) ListByStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID) ([]*domain.FeeOverride, error) {
	var overrides []*domain.FeeOverride
	err := db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("year_number asc, component_code asc").
		Find(&overrides).Error
	if err != nil {
		return nil, err
	}
	return overrides, nil
}

func (r *repo) FindFeeLine(ctx context.Context, db *gorm.DB, studentID, feePlanItemID snowflake.ID, yearNumber int) (*studentdomain.StudentFeeLine, error) {
	var line studentdomain.StudentFeeLine
	err := db.WithContext(ctx).
		Where("student_id = ? AND fee_plan_item_id = ? AND year_number = ?", studentID, feePlanItemID, yearNumber).
		First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrFeeLineNotFound
	}
	if err != nil {
		return nil, err
	}
	return &line, nil
}
