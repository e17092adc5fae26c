package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// AdjustmentType classifies a discretionary fee adjustment. PENALTY
// increases the amount owed; every other type decreases it.
type AdjustmentType string

const (
	TypeDiscount    AdjustmentType = "DISCOUNT"
	TypePenalty     AdjustmentType = "PENALTY"
	TypeScholarship AdjustmentType = "SCHOLARSHIP"
	TypeWaiver      AdjustmentType = "WAIVER"
	TypeOther       AdjustmentType = "OTHER"
)

// ValidType reports whether the value is a known adjustment type.
func ValidType(t AdjustmentType) bool {
	switch t {
	case TypeDiscount, TypePenalty, TypeScholarship, TypeWaiver, TypeOther:
		return true
	default:
		return false
	}
}

type AdjustmentStatus string

const (
	StatusActive    AdjustmentStatus = "ACTIVE"
	StatusCancelled AdjustmentStatus = "CANCELLED"
)

// FeeAdjustment is one append-only ledger record against a student's fee
// component. Records are cancelled, never deleted; cancellation is terminal.
type FeeAdjustment struct {
	ID                 snowflake.ID     `gorm:"primaryKey" json:"id"`
	StudentID          snowflake.ID     `gorm:"not null;index" json:"student_id"`
	AdjustmentType     AdjustmentType   `gorm:"type:text;not null" json:"adjustment_type"`
	Amount             decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"amount"`
	Title              string           `gorm:"type:text;not null" json:"title"`
	Reason             string           `gorm:"type:text;not null" json:"reason"`
	FeeComponentCode   string           `gorm:"type:text;not null" json:"fee_component_code"`
	EffectiveDate      time.Time        `gorm:"not null" json:"effective_date"`
	Status             AdjustmentStatus `gorm:"type:text;not null;default:'ACTIVE'" json:"status"`
	CreatedBy          string           `gorm:"type:text;not null" json:"created_by"`
	CreatedAt          time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CancelledBy        *string          `gorm:"type:text" json:"cancelled_by,omitempty"`
	CancellationReason *string          `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time       `json:"cancelled_at,omitempty"`
}

// TableName sets the database table name.
func (FeeAdjustment) TableName() string { return "fee_adjustments" }

// BalanceDelta is the adjustment's signed impact on the outstanding
// balance while ACTIVE: positive for PENALTY, negative otherwise.
func (a FeeAdjustment) BalanceDelta() decimal.Decimal {
	if a.AdjustmentType == TypePenalty {
		return a.Amount
	}
	return a.Amount.Neg()
}
