package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateAdjustmentRequest struct {
	StudentID        string
	AdjustmentType   string
	Amount           decimal.Decimal
	Title            string
	Reason           string
	FeeComponentCode string
	EffectiveDate    time.Time
}

type CancelAdjustmentRequest struct {
	StudentID          string
	AdjustmentID       string
	CancellationReason string
}

type Service interface {
	Create(ctx context.Context, req CreateAdjustmentRequest) (FeeAdjustment, error)
	Cancel(ctx context.Context, req CancelAdjustmentRequest) (FeeAdjustment, error)
	ListByStudent(ctx context.Context, studentID string) ([]FeeAdjustment, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, adjustment *FeeAdjustment) error
	Update(ctx context.Context, db *gorm.DB, adjustment *FeeAdjustment) error
	FindByID(ctx context.Context, db *gorm.DB, studentID, id snowflake.ID) (*FeeAdjustment, error)
	ListByStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID) ([]*FeeAdjustment, error)
}

var (
	ErrInvalidStudent   = errors.New("invalid_student")
	ErrInvalidType      = errors.New("invalid_adjustment_type")
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrInvalidTitle     = errors.New("invalid_title")
	ErrInvalidReason    = errors.New("invalid_reason")
	ErrInvalidComponent = errors.New("invalid_component")
	ErrInvalidID        = errors.New("invalid_id")
	ErrAlreadyCancelled = errors.New("adjustment_already_cancelled")
	ErrNotFound         = errors.New("not_found")
)
