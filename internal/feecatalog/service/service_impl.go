package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shuaibahmad12/mirai/internal/feecatalog/domain"
	pkgdb "github.com/shuaibahmad12/mirai/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("feecatalog.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) CreateComponent(ctx context.Context, req domain.CreateComponentRequest) (domain.FeeComponent, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return domain.FeeComponent{}, domain.ErrInvalidCode
	}
	label := strings.TrimSpace(req.Label)
	if label == "" {
		return domain.FeeComponent{}, domain.ErrInvalidLabel
	}
	frequency := domain.ComponentFrequency(strings.TrimSpace(req.Frequency))
	if !domain.ValidFrequency(frequency) {
		return domain.FeeComponent{}, domain.ErrInvalidFrequency
	}

	now := time.Now().UTC()
	component := domain.FeeComponent{
		ID:        s.genID.Generate(),
		Code:      code,
		Label:     label,
		Frequency: frequency,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.InsertComponent(ctx, s.db, &component); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.FeeComponent{}, domain.ErrCodeTaken
		}
		return domain.FeeComponent{}, err
	}

	return component, nil
}

func (s *Service) UpdateComponent(ctx context.Context, req domain.UpdateComponentRequest) (domain.FeeComponent, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.FeeComponent{}, err
	}

	component, err := s.repo.FindComponentByID(ctx, s.db, id)
	if err != nil {
		return domain.FeeComponent{}, err
	}
	if component == nil {
		return domain.FeeComponent{}, domain.ErrNotFound
	}

	if req.Label != nil {
		label := strings.TrimSpace(*req.Label)
		if label == "" {
			return domain.FeeComponent{}, domain.ErrInvalidLabel
		}
		component.Label = label
	}
	if req.Frequency != nil {
		frequency := domain.ComponentFrequency(strings.TrimSpace(*req.Frequency))
		if !domain.ValidFrequency(frequency) {
			return domain.FeeComponent{}, domain.ErrInvalidFrequency
		}
		component.Frequency = frequency
	}
	component.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateComponent(ctx, s.db, component); err != nil {
		return domain.FeeComponent{}, err
	}

	return *component, nil
}

func (s *Service) DeleteComponent(ctx context.Context, rawID string) error {
	id, err := s.parseID(rawID)
	if err != nil {
		return err
	}

	component, err := s.repo.FindComponentByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if component == nil {
		return domain.ErrNotFound
	}

	// A component referenced by any plan item stays; catalog history depends on it.
	count, err := s.repo.CountItemsForComponent(ctx, s.db, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrComponentInUse
	}

	return s.repo.DeleteComponent(ctx, s.db, id)
}

func (s *Service) ListComponents(ctx context.Context) ([]domain.FeeComponent, error) {
	items, err := s.repo.ListComponents(ctx, s.db)
	if err != nil {
		return nil, err
	}
	components := make([]domain.FeeComponent, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		components = append(components, *item)
	}
	return components, nil
}

func (s *Service) CreatePlan(ctx context.Context, req domain.CreatePlanRequest) (domain.FeePlan, error) {
	courseID, err := snowflake.ParseString(strings.TrimSpace(req.CourseID))
	if err != nil || courseID == 0 {
		return domain.FeePlan{}, domain.ErrInvalidCourse
	}

	var sessionID *snowflake.ID
	if trimmed := strings.TrimSpace(req.SessionID); trimmed != "" {
		parsed, err := snowflake.ParseString(trimmed)
		if err != nil || parsed == 0 {
			return domain.FeePlan{}, domain.ErrInvalidSession
		}
		sessionID = &parsed
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.FeePlan{}, domain.ErrInvalidName
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "INR"
	}

	now := time.Now().UTC()
	plan := domain.FeePlan{
		ID:             s.genID.Generate(),
		CourseID:       courseID,
		SessionID:      sessionID,
		Name:           name,
		Currency:       currency,
		Status:         domain.PlanStatusActive,
		EffectiveStart: req.EffectiveStart,
		EffectiveEnd:   req.EffectiveEnd,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.InsertPlan(ctx, s.db, &plan); err != nil {
		return domain.FeePlan{}, err
	}

	return plan, nil
}

func (s *Service) UpdatePlan(ctx context.Context, req domain.UpdatePlanRequest) (domain.FeePlan, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.FeePlan{}, err
	}

	plan, err := s.repo.FindPlanByID(ctx, s.db, id)
	if err != nil {
		return domain.FeePlan{}, err
	}
	if plan == nil {
		return domain.FeePlan{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.FeePlan{}, domain.ErrInvalidName
		}
		plan.Name = name
	}
	if req.Status != nil {
		switch domain.PlanStatus(strings.TrimSpace(*req.Status)) {
		case domain.PlanStatusActive:
			plan.Status = domain.PlanStatusActive
		case domain.PlanStatusInactive:
			plan.Status = domain.PlanStatusInactive
		default:
			return domain.FeePlan{}, domain.ErrInvalidStatus
		}
	}
	plan.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdatePlan(ctx, s.db, plan); err != nil {
		return domain.FeePlan{}, err
	}

	return *plan, nil
}

func (s *Service) GetPlan(ctx context.Context, rawID string) (domain.FeePlan, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return domain.FeePlan{}, err
	}

	plan, err := s.repo.FindPlanByID(ctx, s.db, id)
	if err != nil {
		return domain.FeePlan{}, err
	}
	if plan == nil {
		return domain.FeePlan{}, domain.ErrNotFound
	}
	return *plan, nil
}

func (s *Service) ListPlans(ctx context.Context, rawCourseID, rawSessionID string) ([]domain.FeePlan, error) {
	var courseID, sessionID snowflake.ID
	if trimmed := strings.TrimSpace(rawCourseID); trimmed != "" {
		parsed, err := snowflake.ParseString(trimmed)
		if err != nil {
			return nil, domain.ErrInvalidCourse
		}
		courseID = parsed
	}
	if trimmed := strings.TrimSpace(rawSessionID); trimmed != "" {
		parsed, err := snowflake.ParseString(trimmed)
		if err != nil {
			return nil, domain.ErrInvalidSession
		}
		sessionID = parsed
	}

	items, err := s.repo.ListPlans(ctx, s.db, courseID, sessionID)
	if err != nil {
		return nil, err
	}
	plans := make([]domain.FeePlan, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		plans = append(plans, *item)
	}
	return plans, nil
}

func (s *Service) AddPlanItem(ctx context.Context, req domain.AddPlanItemRequest) (domain.FeePlanItem, error) {
	planID, err := s.parseID(req.FeePlanID)
	if err != nil {
		return domain.FeePlanItem{}, err
	}
	componentID, err := snowflake.ParseString(strings.TrimSpace(req.ComponentID))
	if err != nil || componentID == 0 {
		return domain.FeePlanItem{}, domain.ErrComponentNotFound
	}
	if req.YearNumber != nil && *req.YearNumber < 1 {
		return domain.FeePlanItem{}, domain.ErrInvalidYear
	}
	if req.Amount.IsNegative() {
		return domain.FeePlanItem{}, domain.ErrInvalidAmount
	}

	plan, err := s.repo.FindPlanByID(ctx, s.db, planID)
	if err != nil {
		return domain.FeePlanItem{}, err
	}
	if plan == nil {
		return domain.FeePlanItem{}, domain.ErrNotFound
	}

	component, err := s.repo.FindComponentByID(ctx, s.db, componentID)
	if err != nil {
		return domain.FeePlanItem{}, err
	}
	if component == nil {
		return domain.FeePlanItem{}, domain.ErrComponentNotFound
	}

	// The unique index is the backstop; the pre-check gives the caller a
	// clean conflict instead of a driver error string.
	existing, err := s.repo.FindItemByKey(ctx, s.db, planID, componentID, req.YearNumber, req.IsAdmissionPhase)
	if err != nil {
		return domain.FeePlanItem{}, err
	}
	if existing != nil {
		return domain.FeePlanItem{}, domain.ErrDuplicateItem
	}

	now := time.Now().UTC()
	item := domain.FeePlanItem{
		ID:               s.genID.Generate(),
		FeePlanID:        planID,
		ComponentID:      componentID,
		YearNumber:       req.YearNumber,
		IsAdmissionPhase: req.IsAdmissionPhase,
		Amount:           req.Amount,
		Notes:            strings.TrimSpace(req.Notes),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.InsertItem(ctx, s.db, &item); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.FeePlanItem{}, domain.ErrDuplicateItem
		}
		return domain.FeePlanItem{}, err
	}

	item.Component = component
	return item, nil
}

func (s *Service) UpdatePlanItem(ctx context.Context, req domain.UpdatePlanItemRequest) (domain.FeePlanItem, error) {
	id, err := s.parseID(req.ItemID)
	if err != nil {
		return domain.FeePlanItem{}, err
	}

	item, err := s.repo.FindItemByID(ctx, s.db, id)
	if err != nil {
		return domain.FeePlanItem{}, err
	}
	if item == nil {
		return domain.FeePlanItem{}, domain.ErrNotFound
	}

	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return domain.FeePlanItem{}, domain.ErrInvalidAmount
		}
		item.Amount = *req.Amount
	}
	if req.Notes != nil {
		item.Notes = strings.TrimSpace(*req.Notes)
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateItem(ctx, s.db, item); err != nil {
		return domain.FeePlanItem{}, err
	}

	return *item, nil
}

func (s *Service) RemovePlanItem(ctx context.Context, rawID string) error {
	id, err := s.parseID(rawID)
	if err != nil {
		return err
	}

	item, err := s.repo.FindItemByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	return s.repo.DeleteItem(ctx, s.db, id)
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
