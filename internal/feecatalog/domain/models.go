package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// ComponentFrequency is how often a fee component recurs.
type ComponentFrequency string

const (
	FrequencyOneTime     ComponentFrequency = "one_time"
	FrequencyAnnual      ComponentFrequency = "annual"
	FrequencySemester    ComponentFrequency = "semester"
	FrequencyMonthly     ComponentFrequency = "monthly"
	FrequencyOnAdmission ComponentFrequency = "on_admission"
)

// ValidFrequency reports whether the value is a known frequency.
func ValidFrequency(f ComponentFrequency) bool {
	switch f {
	case FrequencyOneTime, FrequencyAnnual, FrequencySemester, FrequencyMonthly, FrequencyOnAdmission:
		return true
	default:
		return false
	}
}

// FeeComponent is one catalog charge category (TUITION, SECURITY, ...).
// Components are treated as immutable once a plan item references them.
type FeeComponent struct {
	ID        snowflake.ID       `gorm:"primaryKey" json:"id"`
	Code      string             `gorm:"type:text;not null;uniqueIndex:ux_fee_components_code" json:"code"`
	Label     string             `gorm:"type:text;not null" json:"label"`
	Frequency ComponentFrequency `gorm:"type:text;not null" json:"frequency"`
	CreatedAt time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (FeeComponent) TableName() string { return "fee_components" }

type PlanStatus string

const (
	PlanStatusActive   PlanStatus = "active"
	PlanStatusInactive PlanStatus = "inactive"
)

// FeePlan bundles component amounts for a course, optionally pinned to a
// session. The currency column is stored as entered; computation and display
// remain INR throughout.
type FeePlan struct {
	ID             snowflake.ID  `gorm:"primaryKey" json:"id"`
	CourseID       snowflake.ID  `gorm:"not null;index" json:"course_id"`
	SessionID      *snowflake.ID `gorm:"index" json:"session_id,omitempty"`
	Name           string        `gorm:"type:text;not null" json:"name"`
	Currency       string        `gorm:"type:text;not null;default:'INR'" json:"currency"`
	Status         PlanStatus    `gorm:"type:text;not null;default:'active'" json:"status"`
	EffectiveStart *time.Time    `json:"effective_start,omitempty"`
	EffectiveEnd   *time.Time    `json:"effective_end,omitempty"`
	CreatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Items []FeePlanItem `gorm:"foreignKey:FeePlanID" json:"items,omitempty"`
}

// TableName sets the database table name.
func (FeePlan) TableName() string { return "fee_plans" }

// FeePlanItem is one amount inside a plan. YearNumber nil means the amount
// applies to every year of the course. At most one item may exist per
// (plan, component, year, admission phase) tuple.
type FeePlanItem struct {
	ID               snowflake.ID    `gorm:"primaryKey" json:"id"`
	FeePlanID        snowflake.ID    `gorm:"not null;index;uniqueIndex:ux_fee_plan_items_key,priority:1" json:"fee_plan_id"`
	ComponentID      snowflake.ID    `gorm:"not null;uniqueIndex:ux_fee_plan_items_key,priority:2" json:"component_id"`
	YearNumber       *int            `gorm:"uniqueIndex:ux_fee_plan_items_key,priority:3" json:"year_number,omitempty"`
	IsAdmissionPhase bool            `gorm:"not null;default:false;uniqueIndex:ux_fee_plan_items_key,priority:4" json:"is_admission_phase"`
	Amount           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Notes            string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt        time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Component *FeeComponent `gorm:"foreignKey:ComponentID" json:"component,omitempty"`
}

// TableName sets the database table name.
func (FeePlanItem) TableName() string { return "fee_plan_items" }
