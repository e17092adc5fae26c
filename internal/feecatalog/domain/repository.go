package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertComponent(ctx context.Context, db *gorm.DB, component *FeeComponent) error
	UpdateComponent(ctx context.Context, db *gorm.DB, component *FeeComponent) error
	DeleteComponent(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindComponentByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*FeeComponent, error)
	FindComponentByCode(ctx context.Context, db *gorm.DB, code string) (*FeeComponent, error)
	ListComponents(ctx context.Context, db *gorm.DB) ([]*FeeComponent, error)
	CountItemsForComponent(ctx context.Context, db *gorm.DB, componentID snowflake.ID) (int64, error)

	InsertPlan(ctx context.Context, db *gorm.DB, plan *FeePlan) error
	UpdatePlan(ctx context.Context, db *gorm.DB, plan *FeePlan) error
	FindPlanByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*FeePlan, error)
	ListPlans(ctx context.Context, db *gorm.DB, courseID, sessionID snowflake.ID) ([]*FeePlan, error)

	InsertItem(ctx context.Context, db *gorm.DB, item *FeePlanItem) error
	UpdateItem(ctx context.Context, db *gorm.DB, item *FeePlanItem) error
	DeleteItem(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindItemByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*FeePlanItem, error)
	FindItemByKey(ctx context.Context, db *gorm.DB, planID, componentID snowflake.ID, yearNumber *int, isAdmissionPhase bool) (*FeePlanItem, error)
	ListItems(ctx context.Context, db *gorm.DB, planID snowflake.ID) ([]*FeePlanItem, error)
}
