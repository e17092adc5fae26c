package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shuaibahmad12/mirai/internal/course/domain"
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
		log:   p.Log.Named("course.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCourseRequest) (domain.Course, error) {
	collegeID, err := snowflake.ParseString(strings.TrimSpace(req.CollegeID))
	if err != nil || collegeID == 0 {
		return domain.Course{}, domain.ErrInvalidCollege
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return domain.Course{}, domain.ErrInvalidCode
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Course{}, domain.ErrInvalidName
	}
	if req.DurationYears < 1 || req.DurationYears > 6 {
		return domain.Course{}, domain.ErrInvalidDuration
	}

	now := time.Now().UTC()
	course := domain.Course{
		ID:            s.genID.Generate(),
		CollegeID:     collegeID,
		Code:          code,
		Name:          name,
		DurationYears: req.DurationYears,
		Status:        domain.CourseStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &course); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.Course{}, domain.ErrCodeTaken
		}
		return domain.Course{}, err
	}

	return course, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateCourseRequest) (domain.Course, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Course{}, err
	}

	course, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Course{}, err
	}
	if course == nil {
		return domain.Course{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Course{}, domain.ErrInvalidName
		}
		course.Name = name
	}
	if req.DurationYears != nil {
		if *req.DurationYears < 1 || *req.DurationYears > 6 {
			return domain.Course{}, domain.ErrInvalidDuration
		}
		course.DurationYears = *req.DurationYears
	}
	if req.Status != nil {
		switch domain.CourseStatus(strings.TrimSpace(*req.Status)) {
		case domain.CourseStatusActive:
			course.Status = domain.CourseStatusActive
		case domain.CourseStatusInactive:
			course.Status = domain.CourseStatusInactive
		default:
			return domain.Course{}, domain.ErrInvalidStatus
		}
	}
	course.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, course); err != nil {
		return domain.Course{}, err
	}

	return *course, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Course, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return domain.Course{}, err
	}

	course, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Course{}, err
	}
	if course == nil {
		return domain.Course{}, domain.ErrNotFound
	}
	return *course, nil
}

func (s *Service) ListByCollege(ctx context.Context, rawCollegeID string) ([]domain.Course, error) {
	var collegeID snowflake.ID
	if trimmed := strings.TrimSpace(rawCollegeID); trimmed != "" {
		parsed, err := snowflake.ParseString(trimmed)
		if err != nil {
			return nil, domain.ErrInvalidCollege
		}
		collegeID = parsed
	}

	items, err := s.repo.ListByCollege(ctx, s.db, collegeID)
	if err != nil {
		return nil, err
	}
	courses := make([]domain.Course, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		courses = append(courses, *item)
	}
	return courses, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
