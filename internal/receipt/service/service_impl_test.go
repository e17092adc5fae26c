package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	receiptdomain "github.com/shuaibahmad12/mirai/internal/receipt/domain"
	receiptrepo "github.com/shuaibahmad12/mirai/internal/receipt/repository"
	receiptservice "github.com/shuaibahmad12/mirai/internal/receipt/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db   *gorm.DB
	node *snowflake.Node
	svc  receiptdomain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&receiptdomain.FeeReceipt{},
		&receiptdomain.FeeReceiptAllocation{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(25)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	svc := receiptservice.New(receiptservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  receiptrepo.Provide(),
	})
	return &fixture{db: db, node: node, svc: svc}
}

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func (f *fixture) createReceipt(t *testing.T, studentID, enrollmentID snowflake.ID, itemID snowflake.ID, year int, amount string, paidAt time.Time) receiptdomain.FeeReceipt {
	t.Helper()

	receipt, err := f.svc.Create(context.Background(), receiptdomain.CreateReceiptRequest{
		StudentID:    studentID.String(),
		EnrollmentID: enrollmentID.String(),
		Method:       "cash",
		PaidAt:       paidAt,
		Allocations: []receiptdomain.AllocationInput{
			{FeePlanItemID: itemID.String(), YearNumber: year, ComponentCode: "TUITION", Amount: d(amount)},
		},
	})
	require.NoError(t, err)
	return receipt
}

func TestCreateNumbersReceiptsPerStudent(t *testing.T) {
	f := newFixture(t)
	student := f.node.Generate()
	enrollment := f.node.Generate()
	item := f.node.Generate()
	paidAt := time.Date(2025, time.July, 14, 11, 0, 0, 0, time.UTC)

	first := f.createReceipt(t, student, enrollment, item, 1, "10000", paidAt)
	second := f.createReceipt(t, student, enrollment, item, 1, "5000", paidAt)

	require.Equal(t, fmt.Sprintf("RCPT-202507-%s-0001", student), first.ReceiptNumber)
	require.Equal(t, fmt.Sprintf("RCPT-202507-%s-0002", student), second.ReceiptNumber)

	// Another student's sequence starts over.
	other := f.node.Generate()
	otherReceipt := f.createReceipt(t, other, f.node.Generate(), item, 1, "2000", paidAt)
	require.Equal(t, fmt.Sprintf("RCPT-202507-%s-0001", other), otherReceipt.ReceiptNumber)
}

func TestCreateTotalsAllocations(t *testing.T) {
	f := newFixture(t)
	student := f.node.Generate()
	tuitionItem := f.node.Generate()
	securityItem := f.node.Generate()

	receipt, err := f.svc.Create(context.Background(), receiptdomain.CreateReceiptRequest{
		StudentID:    student.String(),
		EnrollmentID: f.node.Generate().String(),
		Method:       "ONLINE",
		Allocations: []receiptdomain.AllocationInput{
			{FeePlanItemID: tuitionItem.String(), YearNumber: 1, ComponentCode: "TUITION", Amount: d("12000")},
			{FeePlanItemID: securityItem.String(), YearNumber: 1, ComponentCode: "SECURITY", Amount: d("3000")},
		},
	})
	require.NoError(t, err)
	require.True(t, receipt.TotalAmount.Equal(d("15000")))
	require.Len(t, receipt.Allocations, 2)
	for _, alloc := range receipt.Allocations {
		require.Equal(t, receipt.ID, alloc.ReceiptID)
	}
}

func TestPaidAmountForLineSumsOnlyThatLine(t *testing.T) {
	f := newFixture(t)
	student := f.node.Generate()
	enrollment := f.node.Generate()
	item := f.node.Generate()
	otherItem := f.node.Generate()
	paidAt := time.Date(2025, time.August, 1, 9, 0, 0, 0, time.UTC)

	f.createReceipt(t, student, enrollment, item, 1, "8000", paidAt)
	f.createReceipt(t, student, enrollment, item, 1, "4000", paidAt)
	f.createReceipt(t, student, enrollment, item, 2, "6000", paidAt)
	f.createReceipt(t, student, enrollment, otherItem, 1, "999", paidAt)

	paid, err := f.svc.PaidAmountForLine(context.Background(), student.String(), item.String(), 1)
	require.NoError(t, err)
	require.True(t, paid.Equal(d("12000")))

	// A student with no receipts against the line owes from zero.
	none, err := f.svc.PaidAmountForLine(context.Background(), f.node.Generate().String(), item.String(), 1)
	require.NoError(t, err)
	require.True(t, none.IsZero())
}

func TestCreateValidatesInput(t *testing.T) {
	f := newFixture(t)
	student := f.node.Generate()
	item := f.node.Generate()

	_, err := f.svc.Create(context.Background(), receiptdomain.CreateReceiptRequest{
		StudentID:    student.String(),
		EnrollmentID: f.node.Generate().String(),
		Method:       "BARTER",
		Allocations: []receiptdomain.AllocationInput{
			{FeePlanItemID: item.String(), YearNumber: 1, Amount: d("100")},
		},
	})
	require.ErrorIs(t, err, receiptdomain.ErrInvalidMethod)

	_, err = f.svc.Create(context.Background(), receiptdomain.CreateReceiptRequest{
		StudentID:    student.String(),
		EnrollmentID: f.node.Generate().String(),
		Method:       "CASH",
	})
	require.ErrorIs(t, err, receiptdomain.ErrInvalidAllocations)

	_, err = f.svc.Create(context.Background(), receiptdomain.CreateReceiptRequest{
		StudentID:    student.String(),
		EnrollmentID: f.node.Generate().String(),
		Method:       "CASH",
		Allocations: []receiptdomain.AllocationInput{
			{FeePlanItemID: item.String(), YearNumber: 1, Amount: d("0")},
		},
	})
	require.ErrorIs(t, err, receiptdomain.ErrInvalidAmount)
}
