package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	studentdomain "github.com/shuaibahmad12/mirai/internal/student/domain"
	"gorm.io/gorm"
)

type ApplyOverrideRequest struct {
	FeePlanItemID string
	YearNumber    int
	NewAmount     decimal.Decimal
	Reason        string
}

type Service interface {
	Apply(ctx context.Context, studentID string, req ApplyOverrideRequest) (FeeOverride, error)
	ListByStudent(ctx context.Context, studentID string) ([]FeeOverride, error)
}

type Repository interface {
	Upsert(ctx context.Context, db *gorm.DB, override *FeeOverride) error
	FindByKey(ctx context.Context, db *gorm.DB, studentID, feePlanItemID snowflake.ID, yearNumber int) (*FeeOverride, error)
	ListByStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID) ([]*FeeOverride, error)
	FindFeeLine(ctx context.Context, db *gorm.DB, studentID, feePlanItemID snowflake.ID, yearNumber int) (*studentdomain.StudentFeeLine, error)
}
