package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AllocationInput struct {
	FeePlanItemID string
	YearNumber    int
	ComponentCode string
	Amount        decimal.Decimal
}

type CreateReceiptRequest struct {
	StudentID    string
	EnrollmentID string
	Method       string
	Remarks      string
	PaidAt       time.Time
	Allocations  []AllocationInput
}

type Service interface {
	Create(ctx context.Context, req CreateReceiptRequest) (FeeReceipt, error)
	ListByStudent(ctx context.Context, studentID string) ([]FeeReceipt, error)
	// PaidAmountForLine is the total collected from one student against one
	// (fee_plan_item, year) line; the override floor depends on it.
	PaidAmountForLine(ctx context.Context, studentID, feePlanItemID string, yearNumber int) (decimal.Decimal, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, receipt *FeeReceipt) error
	ListByStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID) ([]*FeeReceipt, error)
	CountForStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID) (int64, error)
	SumAllocations(ctx context.Context, db *gorm.DB, studentID, feePlanItemID snowflake.ID, yearNumber int) (decimal.Decimal, error)
	SumPaidByStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID) (decimal.Decimal, error)
}

var (
	ErrInvalidStudent     = errors.New("invalid_student")
	ErrInvalidEnrollment  = errors.New("invalid_enrollment")
	ErrInvalidMethod      = errors.New("invalid_method")
	ErrInvalidAmount      = errors.New("invalid_amount")
	ErrInvalidAllocations = errors.New("invalid_allocations")
	ErrInvalidID          = errors.New("invalid_id")
	ErrNotFound           = errors.New("not_found")
)
