package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/shuaibahmad12/mirai/internal/receipt/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, receipt *domain.FeeReceipt) error {
	return db.WithContext(ctx).Create(receipt).Error
}

func (r *repo) ListByStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID) ([]*domain.FeeReceipt, error) {
	var receipts []*domain.FeeReceipt
	err := db.WithContext(ctx).
		Preload("Allocations").
		Where("student_id = ?", studentID).
		Order("paid_at desc, id desc").
		Find(&receipts).Error
	if err != nil {
		return nil, err
	}
	return receipts, nil
}

func (r *repo) CountForStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.FeeReceipt{}).
		Where("student_id = ?", studentID).
		Count(&count).Error
	return count, err
}

func (r *repo) SumAllocations(ctx context.Context, db *gorm.DB, studentID, feePlanItemID snowflake.ID, yearNumber int) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := db.WithContext(ctx).
		Model(&domain.FeeReceiptAllocation{}).
		Select("SUM(fee_receipt_allocations.amount)").
		Joins("JOIN fee_receipts ON fee_receipts.id = fee_receipt_allocations.receipt_id").
		Where("fee_receipts.student_id = ?", studentID).
		Where("fee_receipt_allocations.fee_plan_item_id = ? AND fee_receipt_allocations.year_number = ?", feePlanItemID, yearNumber).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *repo) SumPaidByStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := db.WithContext(ctx).
		Model(&domain.FeeReceipt{}).
		Select("SUM(total_amount)").
		Where("student_id = ?", studentID).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
