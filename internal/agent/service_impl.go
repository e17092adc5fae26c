package agent

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shuaibahmad12/mirai/internal/agent/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("agent.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateAgentRequest) (domain.Agent, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Agent{}, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	agent := domain.Agent{
		ID:        s.genID.Generate(),
		Name:      name,
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		Status:    domain.AgentStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &agent); err != nil {
		return domain.Agent{}, err
	}

	return agent, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Agent, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(rawID))
	if err != nil || id == 0 {
		return domain.Agent{}, domain.ErrInvalidID
	}

	agent, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Agent{}, err
	}
	if agent == nil {
		return domain.Agent{}, domain.ErrNotFound
	}
	return *agent, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Agent, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	agents := make([]domain.Agent, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		agents = append(agents, *item)
	}
	return agents, nil
}
