package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	adjustmentdomain "github.com/shuaibahmad12/mirai/internal/adjustment/domain"
	adjustmentrepo "github.com/shuaibahmad12/mirai/internal/adjustment/repository"
	overridedomain "github.com/shuaibahmad12/mirai/internal/override/domain"
	overriderepo "github.com/shuaibahmad12/mirai/internal/override/repository"
	receiptdomain "github.com/shuaibahmad12/mirai/internal/receipt/domain"
	receiptrepo "github.com/shuaibahmad12/mirai/internal/receipt/repository"
	studentdomain "github.com/shuaibahmad12/mirai/internal/student/domain"
	studentrepo "github.com/shuaibahmad12/mirai/internal/student/repository"
	studentservice "github.com/shuaibahmad12/mirai/internal/student/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&studentdomain.Student{},
		&studentdomain.StudentDocument{},
		&studentdomain.Enrollment{},
		&studentdomain.StudentFeeLine{},
		&overridedomain.FeeOverride{},
		&adjustmentdomain.FeeAdjustment{},
		&receiptdomain.FeeReceipt{},
		&receiptdomain.FeeReceiptAllocation{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	db   *gorm.DB
	node *snowflake.Node
	svc  studentdomain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := setupTestDB(t)
	node, err := snowflake.NewNode(22)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	svc := studentservice.New(studentservice.Params{
		DB:             db,
		Log:            zap.NewNop(),
		GenID:          node,
		Repo:           studentrepo.Provide(),
		OverrideRepo:   overriderepo.Provide(),
		AdjustmentRepo: adjustmentrepo.Provide(),
		ReceiptRepo:    receiptrepo.Provide(),
	})
	return &fixture{db: db, node: node, svc: svc}
}

func (f *fixture) seedStudent(t *testing.T) (studentdomain.Student, studentdomain.Enrollment) {
	t.Helper()

	student := studentdomain.Student{
		ID:           f.node.Generate(),
		Name:         "Asha Verma",
		Phone:        "9876500001",
		AcademicInfo: datatypes.JSONMap{},
		InternalRefs: datatypes.JSONMap{},
	}
	require.NoError(t, f.db.Create(&student).Error)

	enrollment := studentdomain.Enrollment{
		ID:             f.node.Generate(),
		StudentID:      student.ID,
		CollegeID:      f.node.Generate(),
		CourseID:       f.node.Generate(),
		SessionID:      f.node.Generate(),
		FeePlanID:      f.node.Generate(),
		EnrollmentCode: "GIC/2025-26/0001",
		EntryType:      "regular",
		EnrollmentDate: time.Now().UTC(),
		Status:         studentdomain.EnrollmentStatusEnrolled,
	}
	require.NoError(t, f.db.Create(&enrollment).Error)
	return student, enrollment
}

func (f *fixture) seedFeeLine(t *testing.T, student studentdomain.Student, enrollment studentdomain.Enrollment, code string, year int, actual int64) studentdomain.StudentFeeLine {
	t.Helper()

	line := studentdomain.StudentFeeLine{
		ID:            f.node.Generate(),
		StudentID:     student.ID,
		EnrollmentID:  enrollment.ID,
		FeePlanItemID: f.node.Generate(),
		YearNumber:    year,
		ComponentCode: code,
		PlanAmount:    decimal.NewFromInt(actual),
		CourseFee:     decimal.NewFromInt(actual),
		ActualFee:     decimal.NewFromInt(actual),
	}
	require.NoError(t, f.db.Create(&line).Error)
	return line
}

func TestFeeSummaryResolvesOverridesAndAdjustments(t *testing.T) {
	f := newFixture(t)
	student, enrollment := f.seedStudent(t)
	tuition := f.seedFeeLine(t, student, enrollment, "TUITION", 1, 50000)
	f.seedFeeLine(t, student, enrollment, "SECURITY", 1, 10000)

	require.NoError(t, f.db.Create(&overridedomain.FeeOverride{
		ID:             f.node.Generate(),
		StudentID:      student.ID,
		EnrollmentID:   enrollment.ID,
		FeePlanItemID:  tuition.FeePlanItemID,
		YearNumber:     1,
		ComponentCode:  "TUITION",
		OverrideAmount: decimal.NewFromInt(45000),
		DiscountAmount: decimal.NewFromInt(5000),
		Reason:         "merit concession",
		CreatedBy:      "tester",
		UpdatedBy:      "tester",
	}).Error)

	require.NoError(t, f.db.Create(&adjustmentdomain.FeeAdjustment{
		ID:               f.node.Generate(),
		StudentID:        student.ID,
		AdjustmentType:   adjustmentdomain.TypePenalty,
		Amount:           decimal.NewFromInt(500),
		Title:            "late fee",
		Reason:           "paid after due date",
		FeeComponentCode: "TUITION",
		EffectiveDate:    time.Now().UTC(),
		Status:           adjustmentdomain.StatusActive,
		CreatedBy:        "tester",
	}).Error)
	require.NoError(t, f.db.Create(&adjustmentdomain.FeeAdjustment{
		ID:               f.node.Generate(),
		StudentID:        student.ID,
		AdjustmentType:   adjustmentdomain.TypeScholarship,
		Amount:           decimal.NewFromInt(2000),
		Title:            "state scholarship",
		Reason:           "board order",
		FeeComponentCode: "TUITION",
		EffectiveDate:    time.Now().UTC(),
		Status:           adjustmentdomain.StatusActive,
		CreatedBy:        "tester",
	}).Error)
	// Cancelled records must not move the balance.
	require.NoError(t, f.db.Create(&adjustmentdomain.FeeAdjustment{
		ID:               f.node.Generate(),
		StudentID:        student.ID,
		AdjustmentType:   adjustmentdomain.TypeDiscount,
		Amount:           decimal.NewFromInt(9999),
		Title:            "entry error",
		Reason:           "typo",
		FeeComponentCode: "TUITION",
		EffectiveDate:    time.Now().UTC(),
		Status:           adjustmentdomain.StatusCancelled,
		CreatedBy:        "tester",
	}).Error)

	require.NoError(t, f.db.Create(&receiptdomain.FeeReceipt{
		ID:            f.node.Generate(),
		StudentID:     student.ID,
		EnrollmentID:  enrollment.ID,
		ReceiptNumber: "RCPT-202508-X-0001",
		Method:        receiptdomain.MethodCash,
		TotalAmount:   decimal.NewFromInt(20000),
		PaidAt:        time.Now().UTC(),
		CreatedBy:     "tester",
	}).Error)

	summary, err := f.svc.FeeSummary(context.Background(), student.ID.String())
	require.NoError(t, err)

	require.Equal(t, enrollment.EnrollmentCode, summary.EnrollmentCode)
	require.Len(t, summary.Lines, 2)
	// Course components come before deposits.
	require.Equal(t, "TUITION", summary.Lines[0].ComponentCode)
	require.Equal(t, "SECURITY", summary.Lines[1].ComponentCode)
	require.NotNil(t, summary.Lines[0].OverrideAmount)
	require.True(t, summary.Lines[0].EffectiveFee.Equal(decimal.NewFromInt(45000)))
	require.Nil(t, summary.Lines[1].OverrideAmount)

	require.True(t, summary.TotalFee.Equal(decimal.NewFromInt(55000)))
	require.True(t, summary.AdjustmentsNet.Equal(decimal.NewFromInt(-1500)))
	require.True(t, summary.TotalPaid.Equal(decimal.NewFromInt(20000)))
	require.True(t, summary.Balance.Equal(decimal.NewFromInt(33500)))
}

func TestApplyPatchSetContinuesAfterFailedOp(t *testing.T) {
	f := newFixture(t)
	student, _ := f.seedStudent(t)

	phone := "9999900000"
	results, err := f.svc.ApplyPatchSet(context.Background(), student.ID.String(), []studentdomain.PatchOp{
		{Target: studentdomain.PatchTargetContact, Contact: &studentdomain.UpdateContactRequest{Phone: &phone}},
		{Target: "unknown-target"},
		{Target: studentdomain.PatchTargetDocument, DocumentID: f.node.Generate().String(), Document: &studentdomain.UpdateDocumentRequest{Verified: boolPtr(true)}},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	require.True(t, results[0].Applied)
	require.False(t, results[1].Applied)
	require.NotEmpty(t, results[1].Error)
	require.False(t, results[2].Applied)

	var got studentdomain.Student
	require.NoError(t, f.db.First(&got, "id = ?", student.ID).Error)
	require.Equal(t, phone, got.Phone)
}

func TestUpdateAcademicMergesAndDeletesKeys(t *testing.T) {
	f := newFixture(t)
	student, _ := f.seedStudent(t)

	_, err := f.svc.UpdateAcademic(context.Background(), student.ID.String(), studentdomain.UpdateAcademicRequest{
		AcademicInfo: map[string]any{"board": "CBSE", "tenth_percent": 88.4},
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdateAcademic(context.Background(), student.ID.String(), studentdomain.UpdateAcademicRequest{
		AcademicInfo: map[string]any{"board": "ISC", "tenth_percent": nil},
	})
	require.NoError(t, err)
	require.Equal(t, "ISC", updated.AcademicInfo["board"])
	require.NotContains(t, updated.AcademicInfo, "tenth_percent")
}

func TestUpdateProfileRejectsEmptyName(t *testing.T) {
	f := newFixture(t)
	student, _ := f.seedStudent(t)

	empty := "  "
	_, err := f.svc.UpdateProfile(context.Background(), student.ID.String(), studentdomain.UpdateProfileRequest{Name: &empty})
	require.ErrorIs(t, err, studentdomain.ErrEmptyName)
}

func TestUpdateEnrollmentValidatesStatus(t *testing.T) {
	f := newFixture(t)
	student, _ := f.seedStudent(t)

	bad := "expelled"
	_, err := f.svc.UpdateEnrollment(context.Background(), student.ID.String(), studentdomain.UpdateEnrollmentRequest{Status: &bad})
	require.ErrorIs(t, err, studentdomain.ErrInvalidStatus)

	good := "completed"
	enrollment, err := f.svc.UpdateEnrollment(context.Background(), student.ID.String(), studentdomain.UpdateEnrollmentRequest{Status: &good})
	require.NoError(t, err)
	require.Equal(t, studentdomain.EnrollmentStatusCompleted, enrollment.Status)
}

func boolPtr(b bool) *bool { return &b }
