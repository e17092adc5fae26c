package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/shuaibahmad12/mirai/internal/actorcontext"
	"github.com/shuaibahmad12/mirai/internal/feeline"
	"github.com/shuaibahmad12/mirai/internal/money"
	"github.com/shuaibahmad12/mirai/internal/override/domain"
	receiptdomain "github.com/shuaibahmad12/mirai/internal/receipt/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	ReceiptRepo receiptdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	receiptRepo receiptdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("override.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		receiptRepo: p.ReceiptRepo,
	}
}

func (s *Service) Apply(ctx context.Context, rawStudentID string, req domain.ApplyOverrideRequest) (domain.FeeOverride, error) {
	studentID, err := snowflake.ParseString(strings.TrimSpace(rawStudentID))
	if err != nil || studentID == 0 {
		return domain.FeeOverride{}, domain.ErrInvalidStudent
	}
	itemID, err := snowflake.ParseString(strings.TrimSpace(req.FeePlanItemID))
	if err != nil || itemID == 0 {
		return domain.FeeOverride{}, domain.ErrInvalidItem
	}
	if req.YearNumber < 1 {
		return domain.FeeOverride{}, domain.ErrInvalidYear
	}
	if !money.NonNegative(req.NewAmount) {
		return domain.FeeOverride{}, domain.ErrInvalidAmount
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return domain.FeeOverride{}, domain.ErrReasonRequired
	}

	line, err := s.repo.FindFeeLine(ctx, s.db, studentID, itemID, req.YearNumber)
	if err != nil {
		return domain.FeeOverride{}, err
	}
	if line.Locked {
		return domain.FeeOverride{}, domain.ErrLineLocked
	}

	// Security deposits and sundry charges are collected ad hoc, so the
	// paid floor does not bind them. Everything else may not be overridden
	// below what the student has already paid against the line.
	if !feeline.IsAdditive(line.ComponentCode) {
		paid, err := s.receiptRepo.SumAllocations(ctx, s.db, studentID, itemID, req.YearNumber)
		if err != nil {
			return domain.FeeOverride{}, err
		}
		if req.NewAmount.LessThan(paid) {
			return domain.FeeOverride{}, &domain.BelowPaidFloorError{
				Attempted:  req.NewAmount,
				MinAllowed: paid,
			}
		}
	}

	actor := actorcontext.ActorOrDefault(ctx)
	now := time.Now().UTC()

	discount := line.ActualFee.Sub(req.NewAmount)
	if discount.IsNegative() {
		discount = decimal.Zero
	}

	existing, err := s.repo.FindByKey(ctx, s.db, studentID, itemID, req.YearNumber)
	if err != nil {
		return domain.FeeOverride{}, err
	}

	override := domain.FeeOverride{
		ID:             s.genID.Generate(),
		StudentID:      studentID,
		EnrollmentID:   line.EnrollmentID,
		FeePlanItemID:  itemID,
		YearNumber:     req.YearNumber,
		ComponentCode:  line.ComponentCode,
		OverrideAmount: req.NewAmount,
		DiscountAmount: discount,
		Reason:         reason,
		CreatedBy:      actor,
		UpdatedBy:      actor,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if existing != nil {
		override.ID = existing.ID
		override.CreatedBy = existing.CreatedBy
		override.CreatedAt = existing.CreatedAt
	}

	if err := s.repo.Upsert(ctx, s.db, &override); err != nil {
		return domain.FeeOverride{}, err
	}

	s.log.Info("fee override applied",
		zap.String("student_id", studentID.String()),
		zap.String("fee_plan_item_id", itemID.String()),
		zap.Int("year_number", req.YearNumber),
		zap.String("component_code", override.ComponentCode),
		zap.String("override_amount", override.OverrideAmount.String()),
	)

	return override, nil
}

func (s *Service) ListByStudent(ctx context.Context, rawStudentID string) ([]domain.FeeOverride, error) {
	studentID, err := snowflake.ParseString(strings.TrimSpace(rawStudentID))
	if err != nil || studentID == 0 {
		return nil, domain.ErrInvalidStudent
	}

	items, err := s.repo.ListByStudent(ctx, s.db, studentID)
	if err != nil {
		return nil, err
	}
	overrides := make([]domain.FeeOverride, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		overrides = append(overrides, *item)
	}
	return overrides, nil
}
