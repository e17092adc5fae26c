package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shuaibahmad12/mirai/internal/academicsession/domain"
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
		log:   p.Log.Named("academicsession.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateSessionRequest) (domain.AcademicSession, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return domain.AcademicSession{}, domain.ErrInvalidCode
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.AcademicSession{}, domain.ErrInvalidTitle
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() || !req.EndDate.After(req.StartDate) {
		return domain.AcademicSession{}, domain.ErrInvalidDateRange
	}

	now := time.Now().UTC()
	session := domain.AcademicSession{
		ID:        s.genID.Generate(),
		Code:      code,
		Title:     title,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    domain.SessionStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &session); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.AcademicSession{}, domain.ErrCodeTaken
		}
		return domain.AcademicSession{}, err
	}

	return session, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateSessionRequest) (domain.AcademicSession, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.AcademicSession{}, err
	}

	session, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.AcademicSession{}, err
	}
	if session == nil {
		return domain.AcademicSession{}, domain.ErrNotFound
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.AcademicSession{}, domain.ErrInvalidTitle
		}
		session.Title = title
	}
	if req.Status != nil {
		switch domain.SessionStatus(strings.TrimSpace(*req.Status)) {
		case domain.SessionStatusActive:
			session.Status = domain.SessionStatusActive
		case domain.SessionStatusInactive:
			session.Status = domain.SessionStatusInactive
		default:
			return domain.AcademicSession{}, domain.ErrInvalidStatus
		}
	}
	session.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, session); err != nil {
		return domain.AcademicSession{}, err
	}

	return *session, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.AcademicSession, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return domain.AcademicSession{}, err
	}

	session, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.AcademicSession{}, err
	}
	if session == nil {
		return domain.AcademicSession{}, domain.ErrNotFound
	}
	return *session, nil
}

func (s *Service) List(ctx context.Context) ([]domain.AcademicSession, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	sessions := make([]domain.AcademicSession, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		sessions = append(sessions, *item)
	}
	return sessions, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
