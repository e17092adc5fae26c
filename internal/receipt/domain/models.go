package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	MethodCash   PaymentMethod = "CASH"
	MethodCheque PaymentMethod = "CHEQUE"
	MethodOnline PaymentMethod = "ONLINE"
	MethodDD     PaymentMethod = "DD"
	MethodOther  PaymentMethod = "OTHER"
)

// ValidMethod reports whether the value is a known payment method.
func ValidMethod(m PaymentMethod) bool {
	switch m {
	case MethodCash, MethodCheque, MethodOnline, MethodDD, MethodOther:
		return true
	default:
		return false
	}
}

// FeeReceipt records one payment collected from a student, allocated across
// fee components.
type FeeReceipt struct {
	ID            snowflake.ID    `gorm:"primaryKey" json:"id"`
	StudentID     snowflake.ID    `gorm:"not null;index" json:"student_id"`
	EnrollmentID  snowflake.ID    `gorm:"not null;index" json:"enrollment_id"`
	ReceiptNumber string          `gorm:"type:text;not null;uniqueIndex:ux_fee_receipts_number" json:"receipt_number"`
	Method        PaymentMethod   `gorm:"type:text;not null" json:"method"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Remarks       string          `gorm:"type:text" json:"remarks,omitempty"`
	PaidAt        time.Time       `gorm:"not null" json:"paid_at"`
	CreatedBy     string          `gorm:"type:text;not null" json:"created_by"`
	CreatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	Allocations []FeeReceiptAllocation `gorm:"foreignKey:ReceiptID" json:"allocations,omitempty"`
}

// TableName sets the database table name.
func (FeeReceipt) TableName() string { return "fee_receipts" }

// FeeReceiptAllocation apportions a receipt across fee lines.
type FeeReceiptAllocation struct {
	ID            snowflake.ID    `gorm:"primaryKey" json:"id"`
	ReceiptID     snowflake.ID    `gorm:"not null;index" json:"receipt_id"`
	FeePlanItemID snowflake.ID    `gorm:"not null;index" json:"fee_plan_item_id"`
	YearNumber    int             `gorm:"not null" json:"year_number"`
	ComponentCode string          `gorm:"type:text;not null" json:"component_code"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	CreatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (FeeReceiptAllocation) TableName() string { return "fee_receipt_allocations" }
