package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/shuaibahmad12/mirai/internal/money"
)

// FeeOverride replaces the computed actual fee for one student fee line.
// One row per (student, fee plan item, year); re-applying rewrites it.
type FeeOverride struct {
	ID             snowflake.ID    `gorm:"primaryKey" json:"id"`
	StudentID      snowflake.ID    `gorm:"not null;uniqueIndex:ux_fee_overrides_key,priority:1" json:"student_id"`
	EnrollmentID   snowflake.ID    `gorm:"not null;index" json:"enrollment_id"`
	FeePlanItemID  snowflake.ID    `gorm:"not null;uniqueIndex:ux_fee_overrides_key,priority:2" json:"fee_plan_item_id"`
	YearNumber     int             `gorm:"not null;uniqueIndex:ux_fee_overrides_key,priority:3" json:"year_number"`
	ComponentCode  string          `gorm:"type:text;not null" json:"component_code"`
	OverrideAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"override_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"discount_amount"`
	Reason         string          `gorm:"type:text;not null" json:"reason"`
	CreatedBy      string          `gorm:"type:text;not null" json:"created_by"`
	UpdatedBy      string          `gorm:"type:text;not null" json:"updated_by"`
	CreatedAt      time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (FeeOverride) TableName() string { return "fee_overrides" }

var (
	ErrInvalidStudent  = errors.New("invalid_student")
	ErrInvalidItem     = errors.New("invalid_fee_plan_item")
	ErrInvalidYear     = errors.New("invalid_year_number")
	ErrInvalidAmount   = errors.New("invalid_amount")
	ErrReasonRequired  = errors.New("reason_required")
	ErrFeeLineNotFound = errors.New("fee_line_not_found")
	ErrLineLocked      = errors.New("fee_line_locked")
)

// BelowPaidFloorError rejects an override amount lower than what the
// student has already paid against the line. The message carries both
// amounts because the front office relays it to the user verbatim.
type BelowPaidFloorError struct {
	Attempted  decimal.Decimal
	MinAllowed decimal.Decimal
}

func (e *BelowPaidFloorError) Error() string {
	return fmt.Sprintf("override amount %s is below the amount already collected for this fee line. Minimum allowed: %s",
		money.FormatINR(e.Attempted), money.FormatINR(e.MinAllowed))
}
