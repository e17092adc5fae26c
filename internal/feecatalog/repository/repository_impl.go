package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shuaibahmad12/mirai/internal/feecatalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertComponent(ctx context.Context, db *gorm.DB, component *domain.FeeComponent) error {
	return db.WithContext(ctx).Create(component).Error
}

func (r *repo) UpdateComponent(ctx context.Context, db *gorm.DB, component *domain.FeeComponent) error {
	return db.WithContext(ctx).Save(component).Error
}

func (r *repo) DeleteComponent(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.FeeComponent{}, "id = ?", id).Error
}

func (r *repo) FindComponentByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.FeeComponent, error) {
	var component domain.FeeComponent
	err := db.WithContext(ctx).First(&component, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &component, nil
}

func (r *repo) FindComponentByCode(ctx context.Context, db *gorm.DB, code string) (*domain.FeeComponent, error) {
	var component domain.FeeComponent
	err := db.WithContext(ctx).First(&component, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &component, nil
}

func (r *repo) ListComponents(ctx context.Context, db *gorm.DB) ([]*domain.FeeComponent, error) {
	var components []*domain.FeeComponent
	err := db.WithContext(ctx).
		Order("code asc").
		Find(&components).Error
	if err != nil {
		return nil, err
	}
	return components, nil
}

func (r *repo) CountItemsForComponent(ctx context.Context, db *gorm.DB, componentID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.FeePlanItem{}).
		Where("component_id = ?", componentID).
		Count(&count).Error
	return count, err
}

func (r *repo) InsertPlan(ctx context.Context, db *gorm.DB, plan *domain.FeePlan) error {
	return db.WithContext(ctx).Create(plan).Error
}

func (r *repo) UpdatePlan(ctx context.Context, db *gorm.DB, plan *domain.FeePlan) error {
	return db.WithContext(ctx).Save(plan).Error
}

func (r *repo) FindPlanByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.FeePlan, error) {
	var plan domain.FeePlan
	err := db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Component").
		First(&plan, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *repo) ListPlans(ctx context.Context, db *gorm.DB, courseID, sessionID snowflake.ID) ([]*domain.FeePlan, error) {
	var plans []*domain.FeePlan
	stmt := db.WithContext(ctx).Model(&domain.FeePlan{})
	if courseID != 0 {
		stmt = stmt.Where("course_id = ?", courseID)
	}
	if sessionID != 0 {
		stmt = stmt.Where("session_id = ?", sessionID)
	}
	err := stmt.
		Order("created_at desc, id desc").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *repo) InsertItem(ctx context.Context, db *gorm.DB, item *domain.FeePlanItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) UpdateItem(ctx context.Context, db *gorm.DB, item *domain.FeePlanItem) error {
	return db.WithContext(ctx).Save(item).Error
}

func (r *repo) DeleteItem(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.FeePlanItem{}, "id = ?", id).Error
}

func (r *repo) FindItemByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.FeePlanItem, error) {
	var item domain.FeePlanItem
	err := db.WithContext(ctx).
		Preload("Component").
		First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repo) FindItemByKey(ctx context.Context, db *gorm.DB, planID, componentID snowflake.ID, yearNumber *int, isAdmissionPhase bool) (*domain.FeePlanItem, error) {
	stmt := db.WithContext(ctx).
		Where("fee_plan_id = ? AND component_id = ? AND is_admission_phase = ?", planID, componentID, isAdmissionPhase)
	if yearNumber == nil {
		stmt = stmt.Where("year_number IS NULL")
	} else {
		stmt = stmt.Where("year_number = ?", *yearNumber)
	}

	var item domain.FeePlanItem
	err := stmt.First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repo) ListItems(ctx context.Context, db *gorm.DB, planID snowflake.ID) ([]*domain.FeePlanItem, error) {
	var items []*domain.FeePlanItem
	err := db.WithContext(ctx).
		Preload("Component").
		Where("fee_plan_id = ?", planID).
		Order("year_number asc, component_id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
