package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shuaibahmad12/mirai/internal/academicsession/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, session *domain.AcademicSession) error {
	return db.WithContext(ctx).Create(session).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, session *domain.AcademicSession) error {
	return db.WithContext(ctx).Save(session).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.AcademicSession, error) {
	var session domain.AcademicSession
	err := db.WithContext(ctx).First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.AcademicSession, error) {
	var sessions []*domain.AcademicSession
	err := db.WithContext(ctx).
		Order("start_date desc").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
