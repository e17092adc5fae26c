package agent

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shuaibahmad12/mirai/internal/agent/domain"
	"gorm.io/gorm"
)

type repo struct{}

func ProvideRepository() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, agent *domain.Agent) error {
	return db.WithContext(ctx).Create(agent).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Agent, error) {
	var agent domain.Agent
	err := db.WithContext(ctx).First(&agent, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.Agent, error) {
	var agents []*domain.Agent
	err := db.WithContext(ctx).
		Order("name asc").
		Find(&agents).Error
	if err != nil {
		return nil, err
	}
	return agents, nil
}
