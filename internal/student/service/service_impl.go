package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	adjustmentdomain "github.com/shuaibahmad12/mirai/internal/adjustment/domain"
	"github.com/shuaibahmad12/mirai/internal/feeline"
	overridedomain "github.com/shuaibahmad12/mirai/internal/override/domain"
	receiptdomain "github.com/shuaibahmad12/mirai/internal/receipt/domain"
	"github.com/shuaibahmad12/mirai/internal/student/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultSearchLimit = 50

type Params struct {
	fx.In

	DB             *gorm.DB
	Log            *zap.Logger
	GenID          *snowflake.Node
	Repo           domain.Repository
	OverrideRepo   overridedomain.Repository
	AdjustmentRepo adjustmentdomain.Repository
	ReceiptRepo    receiptdomain.Repository
}

type Service struct {
	db             *gorm.DB
	log            *zap.Logger
	genID          *snowflake.Node
	repo           domain.Repository
	overrideRepo   overridedomain.Repository
	adjustmentRepo adjustmentdomain.Repository
	receiptRepo    receiptdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:             p.DB,
		log:            p.Log.Named("student.service"),
		genID:          p.GenID,
		repo:           p.Repo,
		overrideRepo:   p.OverrideRepo,
		adjustmentRepo: p.AdjustmentRepo,
		receiptRepo:    p.ReceiptRepo,
	}
}

func parseStudentID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidStudent
	}
	return id, nil
}

func (s *Service) Get(ctx context.Context, rawStudentID string) (domain.Profile, error) {
	studentID, err := parseStudentID(rawStudentID)
	if err != nil {
		return domain.Profile{}, err
	}

	student, err := s.repo.FindStudentByID(ctx, s.db, studentID)
	if err != nil {
		return domain.Profile{}, err
	}

	profile := domain.Profile{Student: *student, Documents: []domain.StudentDocument{}}

	enrollment, err := s.repo.FindEnrollmentByStudent(ctx, s.db, studentID)
	if err == nil {
		profile.Enrollment = enrollment
	} else if err != domain.ErrNoEnrollment {
		return domain.Profile{}, err
	}

	docs, err := s.repo.ListDocuments(ctx, s.db, studentID)
	if err != nil {
		return domain.Profile{}, err
	}
	profile.Documents = docs

	return profile, nil
}

func (s *Service) List(ctx context.Context, query string, limit int) ([]domain.Student, error) {
	if limit <= 0 || limit > defaultSearchLimit {
		limit = defaultSearchLimit
	}
	items, err := s.repo.SearchStudents(ctx, s.db, strings.TrimSpace(query), limit)
	if err != nil {
		return nil, err
	}
	students := make([]domain.Student, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		students = append(students, *item)
	}
	return students, nil
}

func (s *Service) UpdateProfile(ctx context.Context, rawStudentID string, req domain.UpdateProfileRequest) (domain.Student, error) {
	studentID, err := parseStudentID(rawStudentID)
	if err != nil {
		return domain.Student{}, err
	}
	student, err := s.repo.FindStudentByID(ctx, s.db, studentID)
	if err != nil {
		return domain.Student{}, err
	}

	if req.Name == nil && req.FatherName == nil && req.MotherName == nil && req.DateOfBirth == nil {
		return domain.Student{}, domain.ErrNothingToUpdate
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Student{}, domain.ErrEmptyName
		}
		student.Name = name
	}
	if req.FatherName != nil {
		student.FatherName = strings.TrimSpace(*req.FatherName)
	}
	if req.MotherName != nil {
		student.MotherName = strings.TrimSpace(*req.MotherName)
	}
	if req.DateOfBirth != nil {
		student.DateOfBirth = req.DateOfBirth
	}
	student.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateStudent(ctx, s.db, student); err != nil {
		return domain.Student{}, err
	}
	return *student, nil
}

func (s *Service) UpdateContact(ctx context.Context, rawStudentID string, req domain.UpdateContactRequest) (domain.Student, error) {
	studentID, err := parseStudentID(rawStudentID)
	if err != nil {
		return domain.Student{}, err
	}
	student, err := s.repo.FindStudentByID(ctx, s.db, studentID)
	if err != nil {
		return domain.Student{}, err
	}

	if req.Phone == nil && req.Email == nil && req.Address == nil {
		return domain.Student{}, domain.ErrNothingToUpdate
	}
	if req.Phone != nil {
		student.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		student.Email = strings.TrimSpace(*req.Email)
	}
	if req.Address != nil {
		student.Address = strings.TrimSpace(*req.Address)
	}
	student.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateStudent(ctx, s.db, student); err != nil {
		return domain.Student{}, err
	}
	return *student, nil
}

func (s *Service) UpdateAcademic(ctx context.Context, rawStudentID string, req domain.UpdateAcademicRequest) (domain.Student, error) {
	studentID, err := parseStudentID(rawStudentID)
	if err != nil {
		return domain.Student{}, err
	}
	if len(req.AcademicInfo) == 0 {
		return domain.Student{}, domain.ErrNothingToUpdate
	}
	student, err := s.repo.FindStudentByID(ctx, s.db, studentID)
	if err != nil {
		return domain.Student{}, err
	}

	student.AcademicInfo = mergeJSON(student.AcademicInfo, req.AcademicInfo)
	student.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateStudent(ctx, s.db, student); err != nil {
		return domain.Student{}, err
	}
	return *student, nil
}

func (s *Service) UpdateEnrollment(ctx context.Context, rawStudentID string, req domain.UpdateEnrollmentRequest) (domain.Enrollment, error) {
	studentID, err := parseStudentID(rawStudentID)
	if err != nil {
		return domain.Enrollment{}, err
	}
	if req.JoiningDate == nil && req.AgentPaidChoice == nil && req.AgentPaidRemark == nil && req.Status == nil {
		return domain.Enrollment{}, domain.ErrNothingToUpdate
	}
	enrollment, err := s.repo.FindEnrollmentByStudent(ctx, s.db, studentID)
	if err != nil {
		return domain.Enrollment{}, err
	}

	if req.JoiningDate != nil {
		enrollment.JoiningDate = req.JoiningDate
	}
	if req.AgentPaidChoice != nil {
		enrollment.AgentPaidChoice = strings.TrimSpace(*req.AgentPaidChoice)
	}
	if req.AgentPaidRemark != nil {
		enrollment.AgentPaidRemark = strings.TrimSpace(*req.AgentPaidRemark)
	}
	if req.Status != nil {
		status := domain.EnrollmentStatus(strings.ToLower(strings.TrimSpace(*req.Status)))
		switch status {
		case domain.EnrollmentStatusEnrolled, domain.EnrollmentStatusCompleted, domain.EnrollmentStatusWithdrawn:
			enrollment.Status = status
		default:
			return domain.Enrollment{}, domain.ErrInvalidStatus
		}
	}
	enrollment.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateEnrollment(ctx, s.db, enrollment); err != nil {
		return domain.Enrollment{}, err
	}
	return *enrollment, nil
}

func (s *Service) UpdateDocument(ctx context.Context, rawStudentID, rawDocumentID string, req domain.UpdateDocumentRequest) (domain.StudentDocument, error) {
	studentID, err := parseStudentID(rawStudentID)
	if err != nil {
		return domain.StudentDocument{}, err
	}
	documentID, err := snowflake.ParseString(strings.TrimSpace(rawDocumentID))
	if err != nil || documentID == 0 {
		return domain.StudentDocument{}, domain.ErrInvalidDocument
	}
	if req.DocType == nil && req.DocNumber == nil && req.Verified == nil && len(req.Meta) == 0 {
		return domain.StudentDocument{}, domain.ErrNothingToUpdate
	}

	doc, err := s.repo.FindDocumentByID(ctx, s.db, studentID, documentID)
	if err != nil {
		return domain.StudentDocument{}, err
	}

	if req.DocType != nil {
		docType := strings.TrimSpace(*req.DocType)
		if docType == "" {
			return domain.StudentDocument{}, domain.ErrInvalidDocument
		}
		doc.DocType = docType
	}
	if req.DocNumber != nil {
		doc.DocNumber = strings.TrimSpace(*req.DocNumber)
	}
	if req.Verified != nil {
		doc.Verified = *req.Verified
	}
	if len(req.Meta) > 0 {
		doc.Meta = mergeJSON(doc.Meta, req.Meta)
	}
	doc.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateDocument(ctx, s.db, doc); err != nil {
		return domain.StudentDocument{}, err
	}
	return *doc, nil
}

func (s *Service) UpdateInternalRefs(ctx context.Context, rawStudentID string, req domain.UpdateInternalRefsRequest) (domain.Student, error) {
	studentID, err := parseStudentID(rawStudentID)
	if err != nil {
		return domain.Student{}, err
	}
	if len(req.Refs) == 0 {
		return domain.Student{}, domain.ErrNothingToUpdate
	}
	student, err := s.repo.FindStudentByID(ctx, s.db, studentID)
	if err != nil {
		return domain.Student{}, err
	}

	student.InternalRefs = mergeJSON(student.InternalRefs, req.Refs)
	student.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateStudent(ctx, s.db, student); err != nil {
		return domain.Student{}, err
	}
	return *student, nil
}

// ApplyPatchSet applies each op on its own. A failed op is reported in
// its result and does not undo or block the others.
func (s *Service) ApplyPatchSet(ctx context.Context, rawStudentID string, ops []domain.PatchOp) ([]domain.PatchOpResult, error) {
	studentID, err := parseStudentID(rawStudentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindStudentByID(ctx, s.db, studentID); err != nil {
		return nil, err
	}

	results := make([]domain.PatchOpResult, 0, len(ops))
	for _, op := range ops {
		result := domain.PatchOpResult{Target: op.Target, DocumentID: op.DocumentID}
		err := s.applyPatchOp(ctx, rawStudentID, op)
		if err != nil {
			result.Error = err.Error()
			s.log.Warn("patch op failed",
				zap.String("student_id", studentID.String()),
				zap.String("target", op.Target),
				zap.Error(err),
			)
		} else {
			result.Applied = true
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *Service) applyPatchOp(ctx context.Context, studentID string, op domain.PatchOp) error {
	switch op.Target {
	case domain.PatchTargetProfile:
		if op.Profile == nil {
			return domain.ErrInvalidPatchOp
		}
		_, err := s.UpdateProfile(ctx, studentID, *op.Profile)
		return err
	case domain.PatchTargetContact:
		if op.Contact == nil {
			return domain.ErrInvalidPatchOp
		}
		_, err := s.UpdateContact(ctx, studentID, *op.Contact)
		return err
	case domain.PatchTargetAcademic:
		if op.Academic == nil {
			return domain.ErrInvalidPatchOp
		}
		_, err := s.UpdateAcademic(ctx, studentID, *op.Academic)
		return err
	case domain.PatchTargetEnrollment:
		if op.Enrollment == nil {
			return domain.ErrInvalidPatchOp
		}
		_, err := s.UpdateEnrollment(ctx, studentID, *op.Enrollment)
		return err
	case domain.PatchTargetDocument:
		if op.Document == nil || op.DocumentID == "" {
			return domain.ErrInvalidPatchOp
		}
		_, err := s.UpdateDocument(ctx, studentID, op.DocumentID, *op.Document)
		return err
	case domain.PatchTargetInternalRefs:
		if op.InternalRefs == nil {
			return domain.ErrInvalidPatchOp
		}
		_, err := s.UpdateInternalRefs(ctx, studentID, *op.InternalRefs)
		return err
	default:
		return fmt.Errorf("%w: unknown target %q", domain.ErrInvalidPatchOp, op.Target)
	}
}

func (s *Service) FeeSummary(ctx context.Context, rawStudentID string) (domain.FeeSummary, error) {
	studentID, err := parseStudentID(rawStudentID)
	if err != nil {
		return domain.FeeSummary{}, err
	}

	enrollment, err := s.repo.FindEnrollmentByStudent(ctx, s.db, studentID)
	if err != nil {
		return domain.FeeSummary{}, err
	}

	lines, err := s.repo.ListFeeLines(ctx, s.db, studentID)
	if err != nil {
		return domain.FeeSummary{}, err
	}

	overrides, err := s.overrideRepo.ListByStudent(ctx, s.db, studentID)
	if err != nil {
		return domain.FeeSummary{}, err
	}
	type overrideKey struct {
		itemID snowflake.ID
		year   int
	}
	overrideByKey := make(map[overrideKey]*overridedomain.FeeOverride, len(overrides))
	for _, o := range overrides {
		if o == nil {
			continue
		}
		overrideByKey[overrideKey{o.FeePlanItemID, o.YearNumber}] = o
	}

	summary := domain.FeeSummary{
		StudentID:      studentID,
		EnrollmentID:   enrollment.ID,
		EnrollmentCode: enrollment.EnrollmentCode,
		Lines:          make([]domain.FeeSummaryLine, 0, len(lines)),
		TotalFee:       decimal.Zero,
		AdjustmentsNet: decimal.Zero,
		TotalPaid:      decimal.Zero,
	}

	for _, line := range lines {
		if line == nil {
			continue
		}
		out := domain.FeeSummaryLine{
			FeePlanItemID: line.FeePlanItemID,
			YearNumber:    line.YearNumber,
			ComponentCode: line.ComponentCode,
			CourseFee:     line.CourseFee,
			Adjustment:    line.Adjustment,
			ActualFee:     line.ActualFee,
			EffectiveFee:  line.ActualFee,
			Locked:        line.Locked,
		}
		if o, ok := overrideByKey[overrideKey{line.FeePlanItemID, line.YearNumber}]; ok {
			amount := o.OverrideAmount
			out.OverrideAmount = &amount
			out.EffectiveFee = amount
		}
		summary.TotalFee = summary.TotalFee.Add(out.EffectiveFee)
		summary.Lines = append(summary.Lines, out)
	}

	sort.SliceStable(summary.Lines, func(i, j int) bool {
		a, b := summary.Lines[i], summary.Lines[j]
		if aAdd, bAdd := feeline.IsAdditive(a.ComponentCode), feeline.IsAdditive(b.ComponentCode); aAdd != bAdd {
			return !aAdd
		}
		if a.ComponentCode != b.ComponentCode {
			return a.ComponentCode < b.ComponentCode
		}
		return a.YearNumber < b.YearNumber
	})

	adjustments, err := s.adjustmentRepo.ListByStudent(ctx, s.db, studentID)
	if err != nil {
		return domain.FeeSummary{}, err
	}
	for _, adj := range adjustments {
		if adj == nil || adj.Status != adjustmentdomain.StatusActive {
			continue
		}
		summary.AdjustmentsNet = summary.AdjustmentsNet.Add(adj.BalanceDelta())
	}

	paid, err := s.receiptRepo.SumPaidByStudent(ctx, s.db, studentID)
	if err != nil {
		return domain.FeeSummary{}, err
	}
	summary.TotalPaid = paid
	summary.Balance = summary.TotalFee.Add(summary.AdjustmentsNet).Sub(paid)

	return summary, nil
}

// mergeJSON overlays patch onto base; a nil patch value deletes the key.
func mergeJSON(base datatypes.JSONMap, patch map[string]any) datatypes.JSONMap {
	merged := datatypes.JSONMap{}
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range patch {
		if v == nil {
			delete(merged, k)
			continue
		}
		merged[k] = v
	}
	return merged
}
