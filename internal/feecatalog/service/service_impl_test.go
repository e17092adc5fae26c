package service_test

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	catalogdomain "github.com/shuaibahmad12/mirai/internal/feecatalog/domain"
	catalogrepo "github.com/shuaibahmad12/mirai/internal/feecatalog/repository"
	catalogservice "github.com/shuaibahmad12/mirai/internal/feecatalog/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db   *gorm.DB
	node *snowflake.Node
	svc  catalogdomain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&catalogdomain.FeeComponent{},
		&catalogdomain.FeePlan{},
		&catalogdomain.FeePlanItem{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(26)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	svc := catalogservice.New(catalogservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  catalogrepo.Provide(),
	})
	return &fixture{db: db, node: node, svc: svc}
}

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func intPtr(v int) *int { return &v }

func (f *fixture) createComponent(t *testing.T, code string) catalogdomain.FeeComponent {
	t.Helper()
	component, err := f.svc.CreateComponent(context.Background(), catalogdomain.CreateComponentRequest{
		Code:      code,
		Label:     code + " fee",
		Frequency: string(catalogdomain.FrequencyAnnual),
	})
	require.NoError(t, err)
	return component
}

func (f *fixture) createPlan(t *testing.T) catalogdomain.FeePlan {
	t.Helper()
	plan, err := f.svc.CreatePlan(context.Background(), catalogdomain.CreatePlanRequest{
		CourseID: f.node.Generate().String(),
		Name:     "BSC 2025-26",
	})
	require.NoError(t, err)
	return plan
}

func TestCreateComponentNormalizesAndRejectsDuplicates(t *testing.T) {
	f := newFixture(t)

	component, err := f.svc.CreateComponent(context.Background(), catalogdomain.CreateComponentRequest{
		Code:      "  tuition ",
		Label:     "Tuition Fee",
		Frequency: string(catalogdomain.FrequencyAnnual),
	})
	require.NoError(t, err)
	require.Equal(t, "TUITION", component.Code)

	_, err = f.svc.CreateComponent(context.Background(), catalogdomain.CreateComponentRequest{
		Code:      "TUITION",
		Label:     "Tuition again",
		Frequency: string(catalogdomain.FrequencyAnnual),
	})
	require.ErrorIs(t, err, catalogdomain.ErrCodeTaken)
}

func TestPlanDefaultsCurrencyToINR(t *testing.T) {
	f := newFixture(t)
	plan := f.createPlan(t)
	require.Equal(t, "INR", plan.Currency)
	require.Equal(t, catalogdomain.PlanStatusActive, plan.Status)
}

func TestAddPlanItemRejectsDuplicateKey(t *testing.T) {
	f := newFixture(t)
	component := f.createComponent(t, "TUITION")
	plan := f.createPlan(t)

	_, err := f.svc.AddPlanItem(context.Background(), catalogdomain.AddPlanItemRequest{
		FeePlanID:   plan.ID.String(),
		ComponentID: component.ID.String(),
		YearNumber:  intPtr(1),
		Amount:      d("50000"),
	})
	require.NoError(t, err)

	_, err = f.svc.AddPlanItem(context.Background(), catalogdomain.AddPlanItemRequest{
		FeePlanID:   plan.ID.String(),
		ComponentID: component.ID.String(),
		YearNumber:  intPtr(1),
		Amount:      d("45000"),
	})
	require.ErrorIs(t, err, catalogdomain.ErrDuplicateItem)

	// A different year is a different line.
	_, err = f.svc.AddPlanItem(context.Background(), catalogdomain.AddPlanItemRequest{
		FeePlanID:   plan.ID.String(),
		ComponentID: component.ID.String(),
		YearNumber:  intPtr(2),
		Amount:      d("50000"),
	})
	require.NoError(t, err)
}

func TestAllYearsAndAdmissionPhaseItemsCoexist(t *testing.T) {
	f := newFixture(t)
	component := f.createComponent(t, "ADMISSION")
	plan := f.createPlan(t)

	_, err := f.svc.AddPlanItem(context.Background(), catalogdomain.AddPlanItemRequest{
		FeePlanID:        plan.ID.String(),
		ComponentID:      component.ID.String(),
		IsAdmissionPhase: true,
		Amount:           d("5000"),
	})
	require.NoError(t, err)

	_, err = f.svc.AddPlanItem(context.Background(), catalogdomain.AddPlanItemRequest{
		FeePlanID:   plan.ID.String(),
		ComponentID: component.ID.String(),
		Amount:      d("1000"),
	})
	require.NoError(t, err)
}

func TestDeleteComponentInUseIsRejected(t *testing.T) {
	f := newFixture(t)
	component := f.createComponent(t, "SECURITY")
	plan := f.createPlan(t)

	_, err := f.svc.AddPlanItem(context.Background(), catalogdomain.AddPlanItemRequest{
		FeePlanID:   plan.ID.String(),
		ComponentID: component.ID.String(),
		YearNumber:  intPtr(1),
		Amount:      d("10000"),
	})
	require.NoError(t, err)

	err = f.svc.DeleteComponent(context.Background(), component.ID.String())
	require.ErrorIs(t, err, catalogdomain.ErrComponentInUse)

	unused := f.createComponent(t, "OTHER")
	require.NoError(t, f.svc.DeleteComponent(context.Background(), unused.ID.String()))
}

func TestUpdatePlanItemAmount(t *testing.T) {
	f := newFixture(t)
	component := f.createComponent(t, "TUITION")
	plan := f.createPlan(t)

	item, err := f.svc.AddPlanItem(context.Background(), catalogdomain.AddPlanItemRequest{
		FeePlanID:   plan.ID.String(),
		ComponentID: component.ID.String(),
		YearNumber:  intPtr(1),
		Amount:      d("50000"),
	})
	require.NoError(t, err)

	newAmount := d("52000")
	updated, err := f.svc.UpdatePlanItem(context.Background(), catalogdomain.UpdatePlanItemRequest{
		ItemID: item.ID.String(),
		Amount: &newAmount,
	})
	require.NoError(t, err)
	require.True(t, updated.Amount.Equal(newAmount))

	negative := d("-1")
	_, err = f.svc.UpdatePlanItem(context.Background(), catalogdomain.UpdatePlanItemRequest{
		ItemID: item.ID.String(),
		Amount: &negative,
	})
	require.ErrorIs(t, err, catalogdomain.ErrInvalidAmount)
}
