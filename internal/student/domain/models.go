package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Student is the admitted person; enrollment and fee rows hang off it.
type Student struct {
	ID           snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name         string            `gorm:"type:text;not null" json:"name"`
	FatherName   string            `gorm:"type:text" json:"father_name,omitempty"`
	MotherName   string            `gorm:"type:text" json:"mother_name,omitempty"`
	DateOfBirth  *time.Time        `json:"date_of_birth,omitempty"`
	Phone        string            `gorm:"type:text" json:"phone,omitempty"`
	Email        string            `gorm:"type:text" json:"email,omitempty"`
	Address      string            `gorm:"type:text" json:"address,omitempty"`
	AcademicInfo datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"academic_info,omitempty"`
	InternalRefs datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"internal_refs,omitempty"`
	CreatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Student) TableName() string { return "students" }

// StudentDocument is one uploaded/recorded document reference.
type StudentDocument struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	StudentID snowflake.ID      `gorm:"not null;index" json:"student_id"`
	DocType   string            `gorm:"type:text;not null" json:"doc_type"`
	DocNumber string            `gorm:"type:text" json:"doc_number,omitempty"`
	Verified  bool              `gorm:"not null;default:false" json:"verified"`
	Meta      datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"meta,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (StudentDocument) TableName() string { return "student_documents" }

type EnrollmentStatus string

const (
	EnrollmentStatusEnrolled  EnrollmentStatus = "enrolled"
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
	EnrollmentStatusWithdrawn EnrollmentStatus = "withdrawn"
)

// Enrollment ties a student to a course/session with the issued code and
// the entry-type that drives the year-1 waiver.
type Enrollment struct {
	ID              snowflake.ID     `gorm:"primaryKey" json:"id"`
	StudentID       snowflake.ID     `gorm:"not null;index" json:"student_id"`
	CollegeID       snowflake.ID     `gorm:"not null;index" json:"college_id"`
	CourseID        snowflake.ID     `gorm:"not null;index" json:"course_id"`
	SessionID       snowflake.ID     `gorm:"not null;index" json:"session_id"`
	AgentID         *snowflake.ID    `gorm:"index" json:"agent_id,omitempty"`
	FeePlanID       snowflake.ID     `gorm:"not null" json:"fee_plan_id"`
	EnrollmentCode  string           `gorm:"type:text;not null;uniqueIndex:ux_enrollments_code" json:"enrollment_code"`
	EntryType       string           `gorm:"type:text;not null;default:'regular'" json:"entry_type"`
	EnrollmentDate  time.Time        `gorm:"not null" json:"enrollment_date"`
	JoiningDate     *time.Time       `json:"joining_date,omitempty"`
	AgentPaidChoice string           `gorm:"type:text" json:"agent_paid_choice,omitempty"`
	AgentPaidRemark string           `gorm:"type:text" json:"agent_paid_remark,omitempty"`
	Status          EnrollmentStatus `gorm:"type:text;not null;default:'enrolled'" json:"status"`
	CreatedAt       time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Enrollment) TableName() string { return "enrollments" }

// StudentFeeLine is the fee structure snapshot persisted when the admission
// is issued. Plan amount and the computed actual fee are both kept so the
// profile can show the original charge next to the effective one.
type StudentFeeLine struct {
	ID            snowflake.ID    `gorm:"primaryKey" json:"id"`
	StudentID     snowflake.ID    `gorm:"not null;index" json:"student_id"`
	EnrollmentID  snowflake.ID    `gorm:"not null;index;uniqueIndex:ux_student_fee_lines_key,priority:1" json:"enrollment_id"`
	FeePlanItemID snowflake.ID    `gorm:"not null;uniqueIndex:ux_student_fee_lines_key,priority:2" json:"fee_plan_item_id"`
	YearNumber    int             `gorm:"not null;uniqueIndex:ux_student_fee_lines_key,priority:3" json:"year_number"`
	ComponentCode string          `gorm:"type:text;not null" json:"component_code"`
	PlanAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"plan_amount"`
	CourseFee     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"course_fee"`
	Adjustment    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"adjustment"`
	ActualFee     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"actual_fee"`
	Locked        bool            `gorm:"not null;default:false" json:"locked"`
	CreatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (StudentFeeLine) TableName() string { return "student_fee_lines" }
