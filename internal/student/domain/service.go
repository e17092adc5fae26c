package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Patch requests use pointer fields; nil means "leave unchanged".

type UpdateProfileRequest struct {
	Name        *string
	FatherName  *string
	MotherName  *string
	DateOfBirth *time.Time
}

type UpdateContactRequest struct {
	Phone   *string
	Email   *string
	Address *string
}

// UpdateAcademicRequest merges the given keys into academic_info; a nil
// value removes the key.
type UpdateAcademicRequest struct {
	AcademicInfo map[string]any
}

type UpdateEnrollmentRequest struct {
	JoiningDate     *time.Time
	AgentPaidChoice *string
	AgentPaidRemark *string
	Status          *string
}

type UpdateDocumentRequest struct {
	DocType   *string
	DocNumber *string
	Verified  *bool
	Meta      map[string]any
}

// UpdateInternalRefsRequest merges the given keys into internal_refs; a
// nil value removes the key.
type UpdateInternalRefsRequest struct {
	Refs map[string]any
}

// Patch-set targets.
const (
	PatchTargetProfile      = "profile"
	PatchTargetContact      = "contact"
	PatchTargetAcademic     = "academic"
	PatchTargetEnrollment   = "enrollment"
	PatchTargetDocument     = "document"
	PatchTargetInternalRefs = "internal-refs"
)

// PatchOp is one entry in a batched update. Exactly one of the request
// fields matching Target is consulted.
type PatchOp struct {
	Target       string
	DocumentID   string
	Profile      *UpdateProfileRequest
	Contact      *UpdateContactRequest
	Academic     *UpdateAcademicRequest
	Enrollment   *UpdateEnrollmentRequest
	Document     *UpdateDocumentRequest
	InternalRefs *UpdateInternalRefsRequest
}

// PatchOpResult reports one op's outcome. Ops are applied independently;
// a failed op never rolls back the ones before it.
type PatchOpResult struct {
	Target     string `json:"target"`
	DocumentID string `json:"document_id,omitempty"`
	Applied    bool   `json:"applied"`
	Error      string `json:"error,omitempty"`
}

// Profile is the student with their enrollment and documents.
type Profile struct {
	Student    Student           `json:"student"`
	Enrollment *Enrollment       `json:"enrollment,omitempty"`
	Documents  []StudentDocument `json:"documents"`
}

// FeeSummaryLine is one fee line with the override, if any, resolved.
type FeeSummaryLine struct {
	FeePlanItemID  snowflake.ID     `json:"fee_plan_item_id"`
	YearNumber     int              `json:"year_number"`
	ComponentCode  string           `json:"component_code"`
	CourseFee      decimal.Decimal  `json:"course_fee"`
	Adjustment     decimal.Decimal  `json:"adjustment"`
	ActualFee      decimal.Decimal  `json:"actual_fee"`
	OverrideAmount *decimal.Decimal `json:"override_amount,omitempty"`
	EffectiveFee   decimal.Decimal  `json:"effective_fee"`
	Locked         bool             `json:"locked"`
}

// FeeSummary is the student's money position: effective fee lines, the
// net impact of active ledger adjustments, collections, and the balance.
type FeeSummary struct {
	StudentID      snowflake.ID     `json:"student_id"`
	EnrollmentID   snowflake.ID     `json:"enrollment_id"`
	EnrollmentCode string           `json:"enrollment_code"`
	Lines          []FeeSummaryLine `json:"lines"`
	TotalFee       decimal.Decimal  `json:"total_fee"`
	AdjustmentsNet decimal.Decimal  `json:"adjustments_net"`
	TotalPaid      decimal.Decimal  `json:"total_paid"`
	Balance        decimal.Decimal  `json:"balance"`
}

type Service interface {
	Get(ctx context.Context, studentID string) (Profile, error)
	List(ctx context.Context, query string, limit int) ([]Student, error)
	UpdateProfile(ctx context.Context, studentID string, req UpdateProfileRequest) (Student, error)
	UpdateContact(ctx context.Context, studentID string, req UpdateContactRequest) (Student, error)
	UpdateAcademic(ctx context.Context, studentID string, req UpdateAcademicRequest) (Student, error)
	UpdateEnrollment(ctx context.Context, studentID string, req UpdateEnrollmentRequest) (Enrollment, error)
	UpdateDocument(ctx context.Context, studentID, documentID string, req UpdateDocumentRequest) (StudentDocument, error)
	UpdateInternalRefs(ctx context.Context, studentID string, req UpdateInternalRefsRequest) (Student, error)
	ApplyPatchSet(ctx context.Context, studentID string, ops []PatchOp) ([]PatchOpResult, error)
	FeeSummary(ctx context.Context, studentID string) (FeeSummary, error)
}

type Repository interface {
	InsertStudent(ctx context.Context, db *gorm.DB, student *Student) error
	UpdateStudent(ctx context.Context, db *gorm.DB, student *Student) error
	FindStudentByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Student, error)
	SearchStudents(ctx context.Context, db *gorm.DB, query string, limit int) ([]*Student, error)

	InsertEnrollment(ctx context.Context, db *gorm.DB, enrollment *Enrollment) error
	UpdateEnrollment(ctx context.Context, db *gorm.DB, enrollment *Enrollment) error
	FindEnrollmentByStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID) (*Enrollment, error)
	FindEnrollmentByCode(ctx context.Context, db *gorm.DB, code string) (*Enrollment, error)

	InsertDocument(ctx context.Context, db *gorm.DB, doc *StudentDocument) error
	UpdateDocument(ctx context.Context, db *gorm.DB, doc *StudentDocument) error
	FindDocumentByID(ctx context.Context, db *gorm.DB, studentID, id snowflake.ID) (*StudentDocument, error)
	ListDocuments(ctx context.Context, db *gorm.DB, studentID snowflake.ID) ([]StudentDocument, error)

	InsertFeeLines(ctx context.Context, db *gorm.DB, lines []*StudentFeeLine) error
	ListFeeLines(ctx context.Context, db *gorm.DB, studentID snowflake.ID) ([]*StudentFeeLine, error)
}

var (
	ErrInvalidStudent    = errors.New("invalid_student")
	ErrInvalidDocument   = errors.New("invalid_document")
	ErrInvalidStatus     = errors.New("invalid_enrollment_status")
	ErrInvalidPatchOp    = errors.New("invalid_patch_op")
	ErrStudentNotFound   = errors.New("student_not_found")
	ErrDocumentNotFound  = errors.New("document_not_found")
	ErrNoEnrollment      = errors.New("enrollment_not_found")
	ErrEmptyName         = errors.New("empty_name")
	ErrNothingToUpdate   = errors.New("nothing_to_update")
	ErrDuplicateDocument = errors.New("duplicate_document")
)
