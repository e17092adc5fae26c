package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	sessiondomain "github.com/shuaibahmad12/mirai/internal/academicsession/domain"
	"github.com/shuaibahmad12/mirai/internal/admission/domain"
	"github.com/shuaibahmad12/mirai/internal/admission/lock"
	collegedomain "github.com/shuaibahmad12/mirai/internal/college/domain"
	coursedomain "github.com/shuaibahmad12/mirai/internal/course/domain"
	catalogdomain "github.com/shuaibahmad12/mirai/internal/feecatalog/domain"
	"github.com/shuaibahmad12/mirai/internal/feeline"
	studentdomain "github.com/shuaibahmad12/mirai/internal/student/domain"
	"github.com/shuaibahmad12/mirai/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const issueLockTTL = 5 * time.Second

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	CollegeRepo collegedomain.Repository
	SessionRepo sessiondomain.Repository
	CourseRepo  coursedomain.Repository
	CatalogRepo catalogdomain.Repository
	StudentRepo studentdomain.Repository
	Locker      *lock.Locker `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	collegeRepo collegedomain.Repository
	sessionRepo sessiondomain.Repository
	courseRepo  coursedomain.Repository
	catalogRepo catalogdomain.Repository
	studentRepo studentdomain.Repository
	locker      *lock.Locker
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("admission.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		collegeRepo: p.CollegeRepo,
		sessionRepo: p.SessionRepo,
		courseRepo:  p.CourseRepo,
		catalogRepo: p.CatalogRepo,
		studentRepo: p.StudentRepo,
		locker:      p.Locker,
	}
}

func (s *Service) Preview(ctx context.Context, req domain.PreviewRequest) (string, error) {
	collegeID, err := snowflake.ParseString(strings.TrimSpace(req.CollegeID))
	if err != nil || collegeID == 0 {
		return "", domain.ErrInvalidCollege
	}
	sessionID, err := snowflake.ParseString(strings.TrimSpace(req.SessionID))
	if err != nil || sessionID == 0 {
		return "", domain.ErrInvalidSession
	}

	college, err := s.collegeRepo.FindByID(ctx, s.db, collegeID)
	if err != nil {
		return "", err
	}
	if college == nil {
		return "", domain.ErrInvalidCollege
	}
	session, err := s.sessionRepo.FindByID(ctx, s.db, sessionID)
	if err != nil {
		return "", err
	}
	if session == nil {
		return "", domain.ErrInvalidSession
	}

	seq := int64(1)
	counter, err := s.repo.FindCounter(ctx, s.db, collegeID, sessionID)
	if err != nil {
		return "", err
	}
	if counter != nil {
		seq = counter.NextSeq
	}

	return formatEnrollmentCode(college.Code, session.Code, seq), nil
}

func (s *Service) Issue(ctx context.Context, req domain.IssueRequest) (domain.IssueResult, error) {
	collegeID, err := snowflake.ParseString(strings.TrimSpace(req.CollegeID))
	if err != nil || collegeID == 0 {
		return domain.IssueResult{}, domain.ErrInvalidCollege
	}
	courseID, err := snowflake.ParseString(strings.TrimSpace(req.CourseID))
	if err != nil || courseID == 0 {
		return domain.IssueResult{}, domain.ErrInvalidCourse
	}
	sessionID, err := snowflake.ParseString(strings.TrimSpace(req.SessionID))
	if err != nil || sessionID == 0 {
		return domain.IssueResult{}, domain.ErrInvalidSession
	}
	planID, err := snowflake.ParseString(strings.TrimSpace(req.FeePlanID))
	if err != nil || planID == 0 {
		return domain.IssueResult{}, domain.ErrInvalidPlan
	}

	var agentID *snowflake.ID
	if raw := strings.TrimSpace(req.AgentID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil || id == 0 {
			return domain.IssueResult{}, domain.ErrInvalidAgent
		}
		agentID = &id
	}

	entryType := feeline.EntryType(strings.ToLower(strings.TrimSpace(req.EntryType)))
	if entryType != feeline.EntryRegular && entryType != feeline.EntryLateral {
		return domain.IssueResult{}, domain.ErrInvalidEntryType
	}

	name := strings.TrimSpace(req.Student.Name)
	if name == "" {
		return domain.IssueResult{}, domain.ErrStudentName
	}

	college, err := s.collegeRepo.FindByID(ctx, s.db, collegeID)
	if err != nil {
		return domain.IssueResult{}, err
	}
	if college == nil {
		return domain.IssueResult{}, domain.ErrInvalidCollege
	}
	session, err := s.sessionRepo.FindByID(ctx, s.db, sessionID)
	if err != nil {
		return domain.IssueResult{}, err
	}
	if session == nil {
		return domain.IssueResult{}, domain.ErrInvalidSession
	}
	course, err := s.courseRepo.FindByID(ctx, s.db, courseID)
	if err != nil {
		return domain.IssueResult{}, err
	}
	if course == nil {
		return domain.IssueResult{}, domain.ErrInvalidCourse
	}
	if entryType == feeline.EntryLateral && course.DurationYears < 2 {
		return domain.IssueResult{}, domain.ErrInvalidEntryType
	}
	plan, err := s.catalogRepo.FindPlanByID(ctx, s.db, planID)
	if err != nil {
		return domain.IssueResult{}, err
	}
	if plan == nil {
		return domain.IssueResult{}, domain.ErrInvalidPlan
	}
	if plan.CourseID != courseID {
		return domain.IssueResult{}, domain.ErrPlanMismatch
	}

	adjustments, err := adjustmentIndex(req.Adjustments)
	if err != nil {
		return domain.IssueResult{}, err
	}

	lockKey := fmt.Sprintf("admission:issue:%s:%s", collegeID, sessionID)
	token, acquired, err := s.locker.TryLock(ctx, lockKey, issueLockTTL)
	if err != nil {
		return domain.IssueResult{}, err
	}
	if !acquired {
		return domain.IssueResult{}, domain.ErrIssueInProgress
	}
	defer func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), lockKey, token); err != nil {
			s.log.Warn("release issue lock", zap.String("key", lockKey), zap.Error(err))
		}
	}()

	now := time.Now().UTC()
	var result domain.IssueResult

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		counter, err := s.repo.FindCounter(ctx, tx, collegeID, sessionID)
		if err != nil {
			return err
		}
		if counter == nil {
			counter = &domain.AdmissionCounter{
				ID:        s.genID.Generate(),
				CollegeID: collegeID,
				SessionID: sessionID,
				NextSeq:   1,
				UpdatedAt: now,
			}
			if err := s.repo.InsertCounter(ctx, tx, counter); err != nil {
				if !db.IsDuplicateKeyErr(err) {
					return err
				}
				counter, err = s.repo.FindCounter(ctx, tx, collegeID, sessionID)
				if err != nil {
					return err
				}
				if counter == nil {
					return domain.ErrStaleCounter
				}
			}
		}
		seq := counter.NextSeq
		if err := s.repo.AdvanceCounter(ctx, tx, counter); err != nil {
			return err
		}

		student := studentdomain.Student{
			ID:           s.genID.Generate(),
			Name:         name,
			FatherName:   strings.TrimSpace(req.Student.FatherName),
			MotherName:   strings.TrimSpace(req.Student.MotherName),
			DateOfBirth:  req.Student.DateOfBirth,
			Phone:        strings.TrimSpace(req.Student.Phone),
			Email:        strings.TrimSpace(req.Student.Email),
			Address:      strings.TrimSpace(req.Student.Address),
			AcademicInfo: toJSONMap(req.Student.AcademicInfo),
			InternalRefs: datatypes.JSONMap{},
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.studentRepo.InsertStudent(ctx, tx, &student); err != nil {
			return err
		}

		enrollment := studentdomain.Enrollment{
			ID:              s.genID.Generate(),
			StudentID:       student.ID,
			CollegeID:       collegeID,
			CourseID:        courseID,
			SessionID:       sessionID,
			AgentID:         agentID,
			FeePlanID:       planID,
			EnrollmentCode:  formatEnrollmentCode(college.Code, session.Code, seq),
			EntryType:       string(entryType),
			EnrollmentDate:  now,
			JoiningDate:     req.JoiningDate,
			AgentPaidChoice: strings.TrimSpace(req.AgentPaidChoice),
			AgentPaidRemark: strings.TrimSpace(req.AgentPaidRemark),
			Status:          studentdomain.EnrollmentStatusEnrolled,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := s.studentRepo.InsertEnrollment(ctx, tx, &enrollment); err != nil {
			return err
		}

		lines, err := s.expandFeeLines(plan, course, entryType, adjustments, student.ID, enrollment.ID, now)
		if err != nil {
			return err
		}
		if err := s.studentRepo.InsertFeeLines(ctx, tx, lines); err != nil {
			return err
		}

		for _, input := range req.Documents {
			docType := strings.TrimSpace(input.DocType)
			if docType == "" {
				continue
			}
			doc := studentdomain.StudentDocument{
				ID:        s.genID.Generate(),
				StudentID: student.ID,
				DocType:   docType,
				DocNumber: strings.TrimSpace(input.DocNumber),
				Meta:      datatypes.JSONMap{},
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.studentRepo.InsertDocument(ctx, tx, &doc); err != nil {
				return err
			}
		}

		result = domain.IssueResult{
			StudentID:      student.ID,
			EnrollmentID:   enrollment.ID,
			EnrollmentCode: enrollment.EnrollmentCode,
		}
		return nil
	})
	if err != nil {
		return domain.IssueResult{}, err
	}

	s.log.Info("admission issued",
		zap.String("student_id", result.StudentID.String()),
		zap.String("enrollment_code", result.EnrollmentCode),
		zap.String("entry_type", string(entryType)),
	)

	return result, nil
}

// expandFeeLines turns the catalog plan into per-year student fee lines.
// An item with no year applies to every course year; admission-phase items
// are charged once in year 1.
func (s *Service) expandFeeLines(
	plan *catalogdomain.FeePlan,
	course *coursedomain.Course,
	entryType feeline.EntryType,
	adjustments map[adjustmentKey]decimal.Decimal,
	studentID, enrollmentID snowflake.ID,
	now time.Time,
) ([]*studentdomain.StudentFeeLine, error) {
	lines := make([]*studentdomain.StudentFeeLine, 0, len(plan.Items)*course.DurationYears)
	for _, item := range plan.Items {
		if item.Component == nil {
			return nil, domain.ErrInvalidPlan
		}
		code := item.Component.Code

		var years []int
		switch {
		case item.YearNumber != nil:
			years = []int{*item.YearNumber}
		case item.IsAdmissionPhase:
			years = []int{1}
		default:
			for y := 1; y <= course.DurationYears; y++ {
				years = append(years, y)
			}
		}

		for _, year := range years {
			adj := adjustments[adjustmentKey{item.ID, year}]
			computed, err := feeline.Compute(item.Amount, entryType, year, code, adj)
			if err != nil {
				return nil, err
			}
			lines = append(lines, &studentdomain.StudentFeeLine{
				ID:            s.genID.Generate(),
				StudentID:     studentID,
				EnrollmentID:  enrollmentID,
				FeePlanItemID: item.ID,
				YearNumber:    year,
				ComponentCode: code,
				PlanAmount:    computed.PlanAmount,
				CourseFee:     computed.CourseFee,
				Adjustment:    computed.Adjustment,
				ActualFee:     computed.ActualFee,
				Locked:        computed.Locked,
				CreatedAt:     now,
				UpdatedAt:     now,
			})
		}
	}
	return lines, nil
}

type adjustmentKey struct {
	itemID snowflake.ID
	year   int
}

func adjustmentIndex(inputs []domain.LineAdjustmentInput) (map[adjustmentKey]decimal.Decimal, error) {
	index := make(map[adjustmentKey]decimal.Decimal, len(inputs))
	for _, input := range inputs {
		itemID, err := snowflake.ParseString(strings.TrimSpace(input.FeePlanItemID))
		if err != nil || itemID == 0 || input.YearNumber < 1 {
			return nil, domain.ErrInvalidPlan
		}
		if input.Amount.IsNegative() {
			return nil, feeline.ErrNegativeAdjustment
		}
		index[adjustmentKey{itemID, input.YearNumber}] = input.Amount
	}
	return index, nil
}

func toJSONMap(m map[string]any) datatypes.JSONMap {
	out := datatypes.JSONMap{}
	for k, v := range m {
		out[k] = v
	}
	return out
}

func formatEnrollmentCode(collegeCode, sessionCode string, seq int64) string {
	return fmt.Sprintf("%s/%s/%04d", collegeCode, sessionCode, seq)
}
