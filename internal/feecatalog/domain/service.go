package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type CreateComponentRequest struct {
	Code      string
	Label     string
	Frequency string
}

type UpdateComponentRequest struct {
	ID        string
	Label     *string
	Frequency *string
}

type CreatePlanRequest struct {
	CourseID       string
	SessionID      string
	Name           string
	Currency       string
	EffectiveStart *time.Time
	EffectiveEnd   *time.Time
}

type UpdatePlanRequest struct {
	ID     string
	Name   *string
	Status *string
}

type AddPlanItemRequest struct {
	FeePlanID        string
	ComponentID      string
	YearNumber       *int
	IsAdmissionPhase bool
	Amount           decimal.Decimal
	Notes            string
}

type UpdatePlanItemRequest struct {
	ItemID string
	Amount *decimal.Decimal
	Notes  *string
}

type Service interface {
	CreateComponent(ctx context.Context, req CreateComponentRequest) (FeeComponent, error)
	UpdateComponent(ctx context.Context, req UpdateComponentRequest) (FeeComponent, error)
	DeleteComponent(ctx context.Context, id string) error
	ListComponents(ctx context.Context) ([]FeeComponent, error)

	CreatePlan(ctx context.Context, req CreatePlanRequest) (FeePlan, error)
	UpdatePlan(ctx context.Context, req UpdatePlanRequest) (FeePlan, error)
	GetPlan(ctx context.Context, id string) (FeePlan, error)
	ListPlans(ctx context.Context, courseID, sessionID string) ([]FeePlan, error)

	AddPlanItem(ctx context.Context, req AddPlanItemRequest) (FeePlanItem, error)
	UpdatePlanItem(ctx context.Context, req UpdatePlanItemRequest) (FeePlanItem, error)
	RemovePlanItem(ctx context.Context, itemID string) error
}

var (
	ErrInvalidCode       = errors.New("invalid_code")
	ErrInvalidLabel      = errors.New("invalid_label")
	ErrInvalidFrequency  = errors.New("invalid_frequency")
	ErrInvalidCourse     = errors.New("invalid_course")
	ErrInvalidSession    = errors.New("invalid_session")
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrInvalidYear       = errors.New("invalid_year")
	ErrInvalidAmount     = errors.New("invalid_amount")
	ErrInvalidID         = errors.New("invalid_id")
	ErrCodeTaken         = errors.New("code_taken")
	ErrDuplicateItem     = errors.New("duplicate_plan_item")
	ErrComponentInUse    = errors.New("component_in_use")
	ErrNotFound          = errors.New("not_found")
	ErrComponentNotFound = errors.New("component_not_found")
)
