package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shuaibahmad12/mirai/internal/college/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, college *domain.College) error {
	return db.WithContext(ctx).Create(college).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, college *domain.College) error {
	return db.WithContext(ctx).Save(college).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.College, error) {
	var college domain.College
	err := db.WithContext(ctx).First(&college, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &college, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.College, error) {
	var colleges []*domain.College
	err := db.WithContext(ctx).
		Order("code asc").
		Find(&colleges).Error
	if err != nil {
		return nil, err
	}
	return colleges, nil
}
