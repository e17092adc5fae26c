package service_test

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/shuaibahmad12/mirai/internal/actorcontext"
	adjustmentdomain "github.com/shuaibahmad12/mirai/internal/adjustment/domain"
	adjustmentrepo "github.com/shuaibahmad12/mirai/internal/adjustment/repository"
	adjustmentservice "github.com/shuaibahmad12/mirai/internal/adjustment/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db   *gorm.DB
	node *snowflake.Node
	svc  adjustmentdomain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&adjustmentdomain.FeeAdjustment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(24)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	svc := adjustmentservice.New(adjustmentservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  adjustmentrepo.Provide(),
	})
	return &fixture{db: db, node: node, svc: svc}
}

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestCreateRecordsActiveEntry(t *testing.T) {
	f := newFixture(t)
	studentID := f.node.Generate()

	ctx := actorcontext.WithActor(context.Background(), "clerk.meena")
	created, err := f.svc.Create(ctx, adjustmentdomain.CreateAdjustmentRequest{
		StudentID:        studentID.String(),
		AdjustmentType:   "scholarship",
		Amount:           d("2500"),
		Title:            "Merit scholarship",
		Reason:           "Topper of 2024 batch",
		FeeComponentCode: "TUITION",
	})
	require.NoError(t, err)
	require.Equal(t, adjustmentdomain.TypeScholarship, created.AdjustmentType)
	require.Equal(t, adjustmentdomain.StatusActive, created.Status)
	require.Equal(t, "clerk.meena", created.CreatedBy)
	require.False(t, created.EffectiveDate.IsZero())

	// Non-penalty entries reduce the balance.
	require.True(t, created.BalanceDelta().Equal(d("-2500")))
}

func TestPenaltyIncreasesBalance(t *testing.T) {
	f := newFixture(t)
	studentID := f.node.Generate()

	created, err := f.svc.Create(context.Background(), adjustmentdomain.CreateAdjustmentRequest{
		StudentID:        studentID.String(),
		AdjustmentType:   "PENALTY",
		Amount:           d("500"),
		Title:            "Late fee",
		Reason:           "Paid after due date",
		FeeComponentCode: "TUITION",
	})
	require.NoError(t, err)
	require.True(t, created.BalanceDelta().Equal(d("500")))
}

func TestCancelIsTerminal(t *testing.T) {
	f := newFixture(t)
	studentID := f.node.Generate()

	created, err := f.svc.Create(context.Background(), adjustmentdomain.CreateAdjustmentRequest{
		StudentID:        studentID.String(),
		AdjustmentType:   "DISCOUNT",
		Amount:           d("1000"),
		Title:            "Sibling discount",
		Reason:           "Second child enrolled",
		FeeComponentCode: "TUITION",
	})
	require.NoError(t, err)

	ctx := actorcontext.WithActor(context.Background(), "registrar")
	cancelled, err := f.svc.Cancel(ctx, adjustmentdomain.CancelAdjustmentRequest{
		StudentID:          studentID.String(),
		AdjustmentID:       created.ID.String(),
		CancellationReason: "Entered against the wrong student",
	})
	require.NoError(t, err)
	require.Equal(t, adjustmentdomain.StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledBy)
	require.Equal(t, "registrar", *cancelled.CancelledBy)
	require.NotNil(t, cancelled.CancelledAt)

	_, err = f.svc.Cancel(ctx, adjustmentdomain.CancelAdjustmentRequest{
		StudentID:          studentID.String(),
		AdjustmentID:       created.ID.String(),
		CancellationReason: "Cancelling again",
	})
	require.ErrorIs(t, err, adjustmentdomain.ErrAlreadyCancelled)

	// The record survives cancellation; nothing is deleted.
	listed, err := f.svc.ListByStudent(context.Background(), studentID.String())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, adjustmentdomain.StatusCancelled, listed[0].Status)
}

func TestCancelRequiresReasonAndExistingRecord(t *testing.T) {
	f := newFixture(t)
	studentID := f.node.Generate()

	_, err := f.svc.Cancel(context.Background(), adjustmentdomain.CancelAdjustmentRequest{
		StudentID:          studentID.String(),
		AdjustmentID:       f.node.Generate().String(),
		CancellationReason: "  ",
	})
	require.ErrorIs(t, err, adjustmentdomain.ErrInvalidReason)

	_, err = f.svc.Cancel(context.Background(), adjustmentdomain.CancelAdjustmentRequest{
		StudentID:          studentID.String(),
		AdjustmentID:       f.node.Generate().String(),
		CancellationReason: "No such record",
	})
	require.ErrorIs(t, err, adjustmentdomain.ErrNotFound)
}

func TestCreateValidatesInput(t *testing.T) {
	f := newFixture(t)
	studentID := f.node.Generate().String()

	_, err := f.svc.Create(context.Background(), adjustmentdomain.CreateAdjustmentRequest{
		StudentID: studentID, AdjustmentType: "REBATE", Amount: d("100"),
		Title: "x", Reason: "y", FeeComponentCode: "TUITION",
	})
	require.ErrorIs(t, err, adjustmentdomain.ErrInvalidType)

	_, err = f.svc.Create(context.Background(), adjustmentdomain.CreateAdjustmentRequest{
		StudentID: studentID, AdjustmentType: "DISCOUNT", Amount: d("0"),
		Title: "x", Reason: "y", FeeComponentCode: "TUITION",
	})
	require.ErrorIs(t, err, adjustmentdomain.ErrInvalidAmount)

	_, err = f.svc.Create(context.Background(), adjustmentdomain.CreateAdjustmentRequest{
		StudentID: studentID, AdjustmentType: "DISCOUNT", Amount: d("100"),
		Title: "  ", Reason: "y", FeeComponentCode: "TUITION",
	})
	require.ErrorIs(t, err, adjustmentdomain.ErrInvalidTitle)

	_, err = f.svc.Create(context.Background(), adjustmentdomain.CreateAdjustmentRequest{
		StudentID: "not-a-snowflake", AdjustmentType: "DISCOUNT", Amount: d("100"),
		Title: "x", Reason: "y", FeeComponentCode: "TUITION",
	})
	require.ErrorIs(t, err, adjustmentdomain.ErrInvalidStudent)
}
