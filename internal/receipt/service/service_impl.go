package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/shuaibahmad12/mirai/internal/actorcontext"
	"github.com/shuaibahmad12/mirai/internal/receipt/domain"
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
		log:   p.Log.Named("receipt.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateReceiptRequest) (domain.FeeReceipt, error) {
	studentID, err := snowflake.ParseString(strings.TrimSpace(req.StudentID))
	if err != nil || studentID == 0 {
		return domain.FeeReceipt{}, domain.ErrInvalidStudent
	}
	enrollmentID, err := snowflake.ParseString(strings.TrimSpace(req.EnrollmentID))
	if err != nil || enrollmentID == 0 {
		return domain.FeeReceipt{}, domain.ErrInvalidEnrollment
	}

	method := domain.PaymentMethod(strings.ToUpper(strings.TrimSpace(req.Method)))
	if !domain.ValidMethod(method) {
		return domain.FeeReceipt{}, domain.ErrInvalidMethod
	}
	if len(req.Allocations) == 0 {
		return domain.FeeReceipt{}, domain.ErrInvalidAllocations
	}

	paidAt := req.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}

	total := decimal.Zero
	allocations := make([]domain.FeeReceiptAllocation, 0, len(req.Allocations))
	for _, input := range req.Allocations {
		itemID, err := snowflake.ParseString(strings.TrimSpace(input.FeePlanItemID))
		if err != nil || itemID == 0 {
			return domain.FeeReceipt{}, domain.ErrInvalidAllocations
		}
		if input.YearNumber < 1 {
			return domain.FeeReceipt{}, domain.ErrInvalidAllocations
		}
		if !input.Amount.IsPositive() {
			return domain.FeeReceipt{}, domain.ErrInvalidAmount
		}
		allocations = append(allocations, domain.FeeReceiptAllocation{
			ID:            s.genID.Generate(),
			FeePlanItemID: itemID,
			YearNumber:    input.YearNumber,
			ComponentCode: strings.ToUpper(strings.TrimSpace(input.ComponentCode)),
			Amount:        input.Amount,
			CreatedAt:     time.Now().UTC(),
		})
		total = total.Add(input.Amount)
	}

	var receipt domain.FeeReceipt
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := s.repo.CountForStudent(ctx, tx, studentID)
		if err != nil {
			return err
		}

		receipt = domain.FeeReceipt{
			ID:            s.genID.Generate(),
			StudentID:     studentID,
			EnrollmentID:  enrollmentID,
			ReceiptNumber: formatReceiptNumber(paidAt, studentID, seq+1),
			Method:        method,
			TotalAmount:   total,
			Remarks:       strings.TrimSpace(req.Remarks),
			PaidAt:        paidAt,
			CreatedBy:     actorcontext.ActorOrDefault(ctx),
			CreatedAt:     time.Now().UTC(),
		}
		for i := range allocations {
			allocations[i].ReceiptID = receipt.ID
		}
		receipt.Allocations = allocations

		return s.repo.Insert(ctx, tx, &receipt)
	})
	if err != nil {
		return domain.FeeReceipt{}, err
	}

	s.log.Info("fee receipt created",
		zap.String("student_id", studentID.String()),
		zap.String("receipt_number", receipt.ReceiptNumber),
		zap.String("total", total.String()),
	)

	return receipt, nil
}

func (s *Service) ListByStudent(ctx context.Context, rawStudentID string) ([]domain.FeeReceipt, error) {
	studentID, err := snowflake.ParseString(strings.TrimSpace(rawStudentID))
	if err != nil || studentID == 0 {
		return nil, domain.ErrInvalidStudent
	}

	items, err := s.repo.ListByStudent(ctx, s.db, studentID)
	if err != nil {
		return nil, err
	}
	receipts := make([]domain.FeeReceipt, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		receipts = append(receipts, *item)
	}
	return receipts, nil
}

func (s *Service) PaidAmountForLine(ctx context.Context, rawStudentID, rawItemID string, yearNumber int) (decimal.Decimal, error) {
	studentID, err := snowflake.ParseString(strings.TrimSpace(rawStudentID))
	if err != nil || studentID == 0 {
		return decimal.Zero, domain.ErrInvalidStudent
	}
	itemID, err := snowflake.ParseString(strings.TrimSpace(rawItemID))
	if err != nil || itemID == 0 {
		return decimal.Zero, domain.ErrInvalidID
	}
	return s.repo.SumAllocations(ctx, s.db, studentID, itemID, yearNumber)
}

func formatReceiptNumber(paidAt time.Time, studentID snowflake.ID, seq int64) string {
	return fmt.Sprintf("RCPT-%s-%s-%04d", paidAt.Format("200601"), studentID.String(), seq)
}
