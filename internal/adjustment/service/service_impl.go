package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shuaibahmad12/mirai/internal/actorcontext"
	"github.com/shuaibahmad12/mirai/internal/adjustment/domain"
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
		log:   p.Log.Named("adjustment.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateAdjustmentRequest) (domain.FeeAdjustment, error) {
	studentID, err := parseID(req.StudentID)
	if err != nil {
		return domain.FeeAdjustment{}, domain.ErrInvalidStudent
	}

	adjustmentType := domain.AdjustmentType(strings.ToUpper(strings.TrimSpace(req.AdjustmentType)))
	if !domain.ValidType(adjustmentType) {
		return domain.FeeAdjustment{}, domain.ErrInvalidType
	}
	if !req.Amount.IsPositive() {
		return domain.FeeAdjustment{}, domain.ErrInvalidAmount
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.FeeAdjustment{}, domain.ErrInvalidTitle
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return domain.FeeAdjustment{}, domain.ErrInvalidReason
	}

	componentCode := strings.ToUpper(strings.TrimSpace(req.FeeComponentCode))
	if componentCode == "" {
		return domain.FeeAdjustment{}, domain.ErrInvalidComponent
	}

	effectiveDate := req.EffectiveDate
	if effectiveDate.IsZero() {
		effectiveDate = time.Now().UTC()
	}

	adjustment := domain.FeeAdjustment{
		ID:               s.genID.Generate(),
		StudentID:        studentID,
		AdjustmentType:   adjustmentType,
		Amount:           req.Amount,
		Title:            title,
		Reason:           reason,
		FeeComponentCode: componentCode,
		EffectiveDate:    effectiveDate,
		Status:           domain.StatusActive,
		CreatedBy:        actorcontext.ActorOrDefault(ctx),
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, &adjustment); err != nil {
		return domain.FeeAdjustment{}, err
	}

	s.log.Info("fee adjustment created",
		zap.String("student_id", studentID.String()),
		zap.String("adjustment_id", adjustment.ID.String()),
		zap.String("type", string(adjustmentType)),
		zap.String("amount", req.Amount.String()),
	)

	return adjustment, nil
}

func (s *Service) Cancel(ctx context.Context, req domain.CancelAdjustmentRequest) (domain.FeeAdjustment, error) {
	studentID, err := parseID(req.StudentID)
	if err != nil {
		return domain.FeeAdjustment{}, domain.ErrInvalidStudent
	}
	adjustmentID, err := parseID(req.AdjustmentID)
	if err != nil {
		return domain.FeeAdjustment{}, domain.ErrInvalidID
	}

	reason := strings.TrimSpace(req.CancellationReason)
	if reason == "" {
		return domain.FeeAdjustment{}, domain.ErrInvalidReason
	}

	adjustment, err := s.repo.FindByID(ctx, s.db, studentID, adjustmentID)
	if err != nil {
		return domain.FeeAdjustment{}, err
	}
	if adjustment == nil {
		return domain.FeeAdjustment{}, domain.ErrNotFound
	}

	// A second cancel is a stale-state conflict the caller must see, not a no-op.
	if adjustment.Status == domain.StatusCancelled {
		return domain.FeeAdjustment{}, domain.ErrAlreadyCancelled
	}

	now := time.Now().UTC()
	cancelledBy := actorcontext.ActorOrDefault(ctx)
	adjustment.Status = domain.StatusCancelled
	adjustment.CancelledBy = &cancelledBy
	adjustment.CancellationReason = &reason
	adjustment.CancelledAt = &now

	if err := s.repo.Update(ctx, s.db, adjustment); err != nil {
		return domain.FeeAdjustment{}, err
	}

	s.log.Info("fee adjustment cancelled",
		zap.String("student_id", studentID.String()),
		zap.String("adjustment_id", adjustmentID.String()),
	)

	return *adjustment, nil
}

func (s *Service) ListByStudent(ctx context.Context, rawStudentID string) ([]domain.FeeAdjustment, error) {
	studentID, err := parseID(rawStudentID)
	if err != nil {
		return nil, domain.ErrInvalidStudent
	}

	items, err := s.repo.ListByStudent(ctx, s.db, studentID)
	if err != nil {
		return nil, err
	}
	adjustments := make([]domain.FeeAdjustment, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		adjustments = append(adjustments, *item)
	}
	return adjustments, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
