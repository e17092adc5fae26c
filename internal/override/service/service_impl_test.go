package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	overridedomain "github.com/shuaibahmad12/mirai/internal/override/domain"
	overriderepo "github.com/shuaibahmad12/mirai/internal/override/repository"
	overrideservice "github.com/shuaibahmad12/mirai/internal/override/service"
	receiptdomain "github.com/shuaibahmad12/mirai/internal/receipt/domain"
	receiptrepo "github.com/shuaibahmad12/mirai/internal/receipt/repository"
	studentdomain "github.com/shuaibahmad12/mirai/internal/student/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&studentdomain.StudentFeeLine{},
		&receiptdomain.FeeReceipt{},
		&receiptdomain.FeeReceiptAllocation{},
		&overridedomain.FeeOverride{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	db   *gorm.DB
	node *snowflake.Node
	svc  overridedomain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := setupTestDB(t)
	node, err := snowflake.NewNode(21)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	svc := overrideservice.New(overrideservice.Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        overriderepo.Provide(),
		ReceiptRepo: receiptrepo.Provide(),
	})
	return &fixture{db: db, node: node, svc: svc}
}

func (f *fixture) seedFeeLine(t *testing.T, componentCode string, actual int64, locked bool) studentdomain.StudentFeeLine {
	t.Helper()

	line := studentdomain.StudentFeeLine{
		ID:            f.node.Generate(),
		StudentID:     f.node.Generate(),
		EnrollmentID:  f.node.Generate(),
		FeePlanItemID: f.node.Generate(),
		YearNumber:    1,
		ComponentCode: componentCode,
		PlanAmount:    decimal.NewFromInt(actual),
		CourseFee:     decimal.NewFromInt(actual),
		ActualFee:     decimal.NewFromInt(actual),
		Locked:        locked,
	}
	require.NoError(t, f.db.Create(&line).Error)
	return line
}

func (f *fixture) seedPayment(t *testing.T, line studentdomain.StudentFeeLine, amount int64) {
	t.Helper()

	receipt := receiptdomain.FeeReceipt{
		ID:            f.node.Generate(),
		StudentID:     line.StudentID,
		EnrollmentID:  line.EnrollmentID,
		ReceiptNumber: "RCPT-TEST-" + f.node.Generate().String(),
		Method:        receiptdomain.MethodCash,
		TotalAmount:   decimal.NewFromInt(amount),
		PaidAt:        time.Now().UTC(),
		CreatedBy:     "tester",
		Allocations: []receiptdomain.FeeReceiptAllocation{{
			ID:            f.node.Generate(),
			FeePlanItemID: line.FeePlanItemID,
			YearNumber:    line.YearNumber,
			ComponentCode: line.ComponentCode,
			Amount:        decimal.NewFromInt(amount),
		}},
	}
	require.NoError(t, f.db.Create(&receipt).Error)
}

func TestApplyRejectsAmountBelowPaid(t *testing.T) {
	f := newFixture(t)
	line := f.seedFeeLine(t, "TUITION", 50000, false)
	f.seedPayment(t, line, 1500)

	_, err := f.svc.Apply(context.Background(), line.StudentID.String(), overridedomain.ApplyOverrideRequest{
		FeePlanItemID: line.FeePlanItemID.String(),
		YearNumber:    1,
		NewAmount:     decimal.NewFromInt(1000),
		Reason:        "scholarship",
	})

	var floorErr *overridedomain.BelowPaidFloorError
	require.ErrorAs(t, err, &floorErr)
	require.True(t, floorErr.MinAllowed.Equal(decimal.NewFromInt(1500)))
	require.Contains(t, err.Error(), "₹1000.00")
	require.Contains(t, err.Error(), "Minimum allowed: ₹1500.00")
}

func TestApplyAllowsAmountEqualToPaid(t *testing.T) {
	f := newFixture(t)
	line := f.seedFeeLine(t, "TUITION", 50000, false)
	f.seedPayment(t, line, 1500)

	override, err := f.svc.Apply(context.Background(), line.StudentID.String(), overridedomain.ApplyOverrideRequest{
		FeePlanItemID: line.FeePlanItemID.String(),
		YearNumber:    1,
		NewAmount:     decimal.NewFromInt(1500),
		Reason:        "hardship waiver",
	})

	require.NoError(t, err)
	require.True(t, override.OverrideAmount.Equal(decimal.NewFromInt(1500)))
	require.True(t, override.DiscountAmount.Equal(decimal.NewFromInt(48500)))
}

func TestApplySkipsFloorForSecurityDeposit(t *testing.T) {
	f := newFixture(t)
	line := f.seedFeeLine(t, "SECURITY", 10000, false)
	f.seedPayment(t, line, 5000)

	override, err := f.svc.Apply(context.Background(), line.StudentID.String(), overridedomain.ApplyOverrideRequest{
		FeePlanItemID: line.FeePlanItemID.String(),
		YearNumber:    1,
		NewAmount:     decimal.NewFromInt(2000),
		Reason:        "deposit reduced",
	})

	require.NoError(t, err)
	require.True(t, override.OverrideAmount.Equal(decimal.NewFromInt(2000)))
}

func TestApplyIgnoresOtherStudentsPayments(t *testing.T) {
	f := newFixture(t)
	line := f.seedFeeLine(t, "TUITION", 50000, false)

	// Same catalog item, different student.
	other := line
	other.ID = f.node.Generate()
	other.StudentID = f.node.Generate()
	other.EnrollmentID = f.node.Generate()
	require.NoError(t, f.db.Create(&other).Error)
	f.seedPayment(t, other, 40000)

	override, err := f.svc.Apply(context.Background(), line.StudentID.String(), overridedomain.ApplyOverrideRequest{
		FeePlanItemID: line.FeePlanItemID.String(),
		YearNumber:    1,
		NewAmount:     decimal.NewFromInt(100),
		Reason:        "full scholarship",
	})

	require.NoError(t, err)
	require.True(t, override.OverrideAmount.Equal(decimal.NewFromInt(100)))
}

func TestApplyRewritesExistingOverride(t *testing.T) {
	f := newFixture(t)
	line := f.seedFeeLine(t, "TUITION", 50000, false)

	first, err := f.svc.Apply(context.Background(), line.StudentID.String(), overridedomain.ApplyOverrideRequest{
		FeePlanItemID: line.FeePlanItemID.String(),
		YearNumber:    1,
		NewAmount:     decimal.NewFromInt(45000),
		Reason:        "initial concession",
	})
	require.NoError(t, err)

	second, err := f.svc.Apply(context.Background(), line.StudentID.String(), overridedomain.ApplyOverrideRequest{
		FeePlanItemID: line.FeePlanItemID.String(),
		YearNumber:    1,
		NewAmount:     decimal.NewFromInt(40000),
		Reason:        "revised concession",
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "revised concession", second.Reason)

	var count int64
	require.NoError(t, f.db.Model(&overridedomain.FeeOverride{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestApplyRejectsLockedLine(t *testing.T) {
	f := newFixture(t)
	line := f.seedFeeLine(t, "TUITION", 0, true)

	_, err := f.svc.Apply(context.Background(), line.StudentID.String(), overridedomain.ApplyOverrideRequest{
		FeePlanItemID: line.FeePlanItemID.String(),
		YearNumber:    1,
		NewAmount:     decimal.NewFromInt(100),
		Reason:        "should not apply",
	})
	require.ErrorIs(t, err, overridedomain.ErrLineLocked)
}

func TestApplyRejectsUnknownFeeLine(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Apply(context.Background(), f.node.Generate().String(), overridedomain.ApplyOverrideRequest{
		FeePlanItemID: f.node.Generate().String(),
		YearNumber:    1,
		NewAmount:     decimal.NewFromInt(100),
		Reason:        "no line",
	})
	require.ErrorIs(t, err, overridedomain.ErrFeeLineNotFound)
}

func TestApplyValidatesInput(t *testing.T) {
	f := newFixture(t)
	line := f.seedFeeLine(t, "TUITION", 50000, false)

	_, err := f.svc.Apply(context.Background(), line.StudentID.String(), overridedomain.ApplyOverrideRequest{
		FeePlanItemID: line.FeePlanItemID.String(),
		YearNumber:    1,
		NewAmount:     decimal.NewFromInt(-5),
		Reason:        "negative",
	})
	require.ErrorIs(t, err, overridedomain.ErrInvalidAmount)

	_, err = f.svc.Apply(context.Background(), line.StudentID.String(), overridedomain.ApplyOverrideRequest{
		FeePlanItemID: line.FeePlanItemID.String(),
		YearNumber:    1,
		NewAmount:     decimal.NewFromInt(100),
		Reason:        "   ",
	})
	require.ErrorIs(t, err, overridedomain.ErrReasonRequired)

	_, err = f.svc.Apply(context.Background(), line.StudentID.String(), overridedomain.ApplyOverrideRequest{
		FeePlanItemID: line.FeePlanItemID.String(),
		YearNumber:    0,
		NewAmount:     decimal.NewFromInt(100),
		Reason:        "bad year",
	})
	require.ErrorIs(t, err, overridedomain.ErrInvalidYear)
}
