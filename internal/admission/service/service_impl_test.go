package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	sessiondomain "github.com/shuaibahmad12/mirai/internal/academicsession/domain"
	sessionrepo "github.com/shuaibahmad12/mirai/internal/academicsession/repository"
	admissiondomain "github.com/shuaibahmad12/mirai/internal/admission/domain"
	admissionrepo "github.com/shuaibahmad12/mirai/internal/admission/repository"
	admissionservice "github.com/shuaibahmad12/mirai/internal/admission/service"
	collegedomain "github.com/shuaibahmad12/mirai/internal/college/domain"
	collegerepo "github.com/shuaibahmad12/mirai/internal/college/repository"
	coursedomain "github.com/shuaibahmad12/mirai/internal/course/domain"
	courserepo "github.com/shuaibahmad12/mirai/internal/course/repository"
	catalogdomain "github.com/shuaibahmad12/mirai/internal/feecatalog/domain"
	catalogrepo "github.com/shuaibahmad12/mirai/internal/feecatalog/repository"
	studentdomain "github.com/shuaibahmad12/mirai/internal/student/domain"
	studentrepo "github.com/shuaibahmad12/mirai/internal/student/repository"
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
		&collegedomain.College{},
		&coursedomain.Course{},
		&sessiondomain.AcademicSession{},
		&catalogdomain.FeeComponent{},
		&catalogdomain.FeePlan{},
		&catalogdomain.FeePlanItem{},
		&admissiondomain.AdmissionCounter{},
		&studentdomain.Student{},
		&studentdomain.StudentDocument{},
		&studentdomain.Enrollment{},
		&studentdomain.StudentFeeLine{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	db      *gorm.DB
	node    *snowflake.Node
	svc     admissiondomain.Service
	college collegedomain.College
	course  coursedomain.Course
	session sessiondomain.AcademicSession
	plan    catalogdomain.FeePlan
	tuition catalogdomain.FeePlanItem
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := setupTestDB(t)
	node, err := snowflake.NewNode(23)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	f := &fixture{db: db, node: node}
	f.svc = admissionservice.New(admissionservice.Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        admissionrepo.Provide(),
		CollegeRepo: collegerepo.Provide(),
		SessionRepo: sessionrepo.Provide(),
		CourseRepo:  courserepo.Provide(),
		CatalogRepo: catalogrepo.Provide(),
		StudentRepo: studentrepo.Provide(),
	})

	f.college = collegedomain.College{ID: node.Generate(), Code: "GIC", Name: "Ganga Institute"}
	require.NoError(t, db.Create(&f.college).Error)

	f.course = coursedomain.Course{ID: node.Generate(), CollegeID: f.college.ID, Code: "BSC", Name: "B.Sc.", DurationYears: 3}
	require.NoError(t, db.Create(&f.course).Error)

	f.session = sessiondomain.AcademicSession{
		ID:        node.Generate(),
		Code:      "2025-26",
		Title:     "Session 2025-26",
		StartDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&f.session).Error)

	tuitionComp := catalogdomain.FeeComponent{ID: node.Generate(), Code: "TUITION", Label: "Tuition Fee", Frequency: catalogdomain.FrequencyAnnual}
	admissionComp := catalogdomain.FeeComponent{ID: node.Generate(), Code: "ADMISSION", Label: "Admission Fee", Frequency: catalogdomain.FrequencyOnAdmission}
	securityComp := catalogdomain.FeeComponent{ID: node.Generate(), Code: "SECURITY", Label: "Security Deposit", Frequency: catalogdomain.FrequencyOneTime}
	require.NoError(t, db.Create(&tuitionComp).Error)
	require.NoError(t, db.Create(&admissionComp).Error)
	require.NoError(t, db.Create(&securityComp).Error)

	f.plan = catalogdomain.FeePlan{ID: node.Generate(), CourseID: f.course.ID, SessionID: &f.session.ID, Name: "B.Sc. 2025-26"}
	require.NoError(t, db.Create(&f.plan).Error)

	yearOne := 1
	f.tuition = catalogdomain.FeePlanItem{ID: node.Generate(), FeePlanID: f.plan.ID, ComponentID: tuitionComp.ID, Amount: decimal.NewFromInt(50000)}
	items := []catalogdomain.FeePlanItem{
		f.tuition,
		{ID: node.Generate(), FeePlanID: f.plan.ID, ComponentID: admissionComp.ID, IsAdmissionPhase: true, Amount: decimal.NewFromInt(5000)},
		{ID: node.Generate(), FeePlanID: f.plan.ID, ComponentID: securityComp.ID, YearNumber: &yearOne, Amount: decimal.NewFromInt(10000)},
	}
	require.NoError(t, db.Create(&items).Error)

	return f
}

func (f *fixture) issueRequest(entryType string) admissiondomain.IssueRequest {
	return admissiondomain.IssueRequest{
		CollegeID: f.college.ID.String(),
		CourseID:  f.course.ID.String(),
		SessionID: f.session.ID.String(),
		FeePlanID: f.plan.ID.String(),
		EntryType: entryType,
		Student:   admissiondomain.StudentInput{Name: "Ravi Kumar", Phone: "9876500002"},
		Documents: []admissiondomain.DocumentInput{{DocType: "AADHAAR", DocNumber: "XXXX-1234"}},
	}
}

func TestPreviewDoesNotConsumeSequence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := admissiondomain.PreviewRequest{CollegeID: f.college.ID.String(), SessionID: f.session.ID.String()}

	code, err := f.svc.Preview(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "GIC/2025-26/0001", code)

	// A second preview sees the same code.
	code, err = f.svc.Preview(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "GIC/2025-26/0001", code)
}

func TestIssueAssignsSequentialCodes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Issue(ctx, f.issueRequest("regular"))
	require.NoError(t, err)
	require.Equal(t, "GIC/2025-26/0001", first.EnrollmentCode)

	second, err := f.svc.Issue(ctx, f.issueRequest("regular"))
	require.NoError(t, err)
	require.Equal(t, "GIC/2025-26/0002", second.EnrollmentCode)

	code, err := f.svc.Preview(ctx, admissiondomain.PreviewRequest{CollegeID: f.college.ID.String(), SessionID: f.session.ID.String()})
	require.NoError(t, err)
	require.Equal(t, "GIC/2025-26/0003", code)
}

func TestIssueExpandsFeeLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.issueRequest("regular")
	req.Adjustments = []admissiondomain.LineAdjustmentInput{{
		FeePlanItemID: f.tuition.ID.String(),
		YearNumber:    1,
		Amount:        decimal.NewFromInt(5000),
	}}

	result, err := f.svc.Issue(ctx, req)
	require.NoError(t, err)

	var lines []studentdomain.StudentFeeLine
	require.NoError(t, f.db.Where("student_id = ?", result.StudentID).
		Order("component_code asc, year_number asc").Find(&lines).Error)

	// Tuition expands to 3 years, admission and security to one line each.
	require.Len(t, lines, 5)

	byKey := map[string]studentdomain.StudentFeeLine{}
	for _, line := range lines {
		byKey[line.ComponentCode+string(rune('0'+line.YearNumber))] = line
	}
	require.True(t, byKey["TUITION1"].ActualFee.Equal(decimal.NewFromInt(45000)))
	require.True(t, byKey["TUITION2"].ActualFee.Equal(decimal.NewFromInt(50000)))
	require.True(t, byKey["TUITION3"].ActualFee.Equal(decimal.NewFromInt(50000)))
	require.True(t, byKey["ADMISSION1"].ActualFee.Equal(decimal.NewFromInt(5000)))
	require.True(t, byKey["SECURITY1"].ActualFee.Equal(decimal.NewFromInt(10000)))

	var docs []studentdomain.StudentDocument
	require.NoError(t, f.db.Where("student_id = ?", result.StudentID).Find(&docs).Error)
	require.Len(t, docs, 1)
	require.Equal(t, "AADHAAR", docs[0].DocType)
}

func TestIssueWaivesFirstYearForLateralEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.svc.Issue(ctx, f.issueRequest("lateral"))
	require.NoError(t, err)

	var lines []studentdomain.StudentFeeLine
	require.NoError(t, f.db.Where("student_id = ?", result.StudentID).Find(&lines).Error)

	for _, line := range lines {
		switch {
		case line.YearNumber == 1 && (line.ComponentCode == "TUITION" || line.ComponentCode == "ADMISSION"):
			require.True(t, line.ActualFee.IsZero(), "%s year 1 must be waived", line.ComponentCode)
			require.True(t, line.Locked)
		case line.ComponentCode == "TUITION":
			require.True(t, line.ActualFee.Equal(decimal.NewFromInt(50000)))
			require.False(t, line.Locked)
		case line.ComponentCode == "SECURITY":
			require.True(t, line.ActualFee.Equal(decimal.NewFromInt(10000)))
			require.False(t, line.Locked)
		}
	}
}

func TestIssueRejectsPlanFromAnotherCourse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other := coursedomain.Course{ID: f.node.Generate(), CollegeID: f.college.ID, Code: "BA", Name: "B.A.", DurationYears: 3}
	require.NoError(t, f.db.Create(&other).Error)

	req := f.issueRequest("regular")
	req.CourseID = other.ID.String()

	_, err := f.svc.Issue(ctx, req)
	require.ErrorIs(t, err, admissiondomain.ErrPlanMismatch)
}

func TestIssueRejectsUnknownEntryType(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Issue(context.Background(), f.issueRequest("sideways"))
	require.ErrorIs(t, err, admissiondomain.ErrInvalidEntryType)
}
