package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shuaibahmad12/mirai/internal/college/domain"
	pkgdb "github.com/shuaibahmad12/mirai/pkg/db"
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

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("college.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCollegeRequest) (domain.College, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return domain.College{}, domain.ErrInvalidCode
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.College{}, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	college := domain.College{
		ID:        s.genID.Generate(),
		Code:      code,
		Name:      name,
		Address:   strings.TrimSpace(req.Address),
		Status:    domain.CollegeStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &college); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.College{}, domain.ErrCodeTaken
		}
		return domain.College{}, err
	}

	return college, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateCollegeRequest) (domain.College, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.College{}, err
	}

	college, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.College{}, err
	}
	if college == nil {
		return domain.College{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.College{}, domain.ErrInvalidName
		}
		college.Name = name
	}
	if req.Address != nil {
		college.Address = strings.TrimSpace(*req.Address)
	}
	if req.Status != nil {
		switch domain.CollegeStatus(strings.TrimSpace(*req.Status)) {
		case domain.CollegeStatusActive:
			college.Status = domain.CollegeStatusActive
		case domain.CollegeStatusInactive:
			college.Status = domain.CollegeStatusInactive
		default:
			return domain.College{}, domain.ErrInvalidStatus
		}
	}
	college.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, college); err != nil {
		return domain.College{}, err
	}

	return *college, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.College, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return domain.College{}, err
	}

	college, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.College{}, err
	}
	if college == nil {
		return domain.College{}, domain.ErrNotFound
	}
	return *college, nil
}

func (s *Service) List(ctx context.Context) ([]domain.College, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	colleges := make([]domain.College, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		colleges = append(colleges, *item)
	}
	return colleges, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
