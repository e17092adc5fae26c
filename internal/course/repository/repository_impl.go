package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shuaibahmad12/mirai/internal/course/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, course *domain.Course) error {
	return db.WithContext(ctx).Create(course).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, course *domain.Course) error {
	return db.WithContext(ctx).Save(course).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Course, error) {
	var course domain.Course
	err := db.WithContext(ctx).First(&course, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *repo) ListByCollege(ctx context.Context, db *gorm.DB, collegeID snowflake.ID) ([]*domain.Course, error) {
	var courses []*domain.Course
	stmt := db.WithContext(ctx).Model(&domain.Course{})
	if collegeID != 0 {
		stmt = stmt.Where("college_id = ?", collegeID)
	}
	err := stmt.Order("code asc").Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}
