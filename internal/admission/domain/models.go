package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// AdmissionCounter tracks the next enrollment sequence for a college
// within a session. The sequence is consumed only when an admission is
// issued; previews read it without advancing.
type AdmissionCounter struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	CollegeID snowflake.ID `gorm:"not null;uniqueIndex:ux_admission_counters_key,priority:1" json:"college_id"`
	SessionID snowflake.ID `gorm:"not null;uniqueIndex:ux_admission_counters_key,priority:2" json:"session_id"`
	NextSeq   int64        `gorm:"not null;default:1" json:"next_seq"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (AdmissionCounter) TableName() string { return "admission_counters" }

type StudentInput struct {
	Name         string
	FatherName   string
	MotherName   string
	DateOfBirth  *time.Time
	Phone        string
	Email        string
	Address      string
	AcademicInfo map[string]any
}

type DocumentInput struct {
	DocType   string
	DocNumber string
}

// LineAdjustmentInput is the ad-hoc amount entered against one catalog
// line on the admission form.
type LineAdjustmentInput struct {
	FeePlanItemID string
	YearNumber    int
	Amount        decimal.Decimal
}

type PreviewRequest struct {
	CollegeID string
	SessionID string
}

type IssueRequest struct {
	CollegeID       string
	CourseID        string
	SessionID       string
	FeePlanID       string
	AgentID         string
	EntryType       string
	Student         StudentInput
	Documents       []DocumentInput
	JoiningDate     *time.Time
	AgentPaidChoice string
	AgentPaidRemark string
	Adjustments     []LineAdjustmentInput
}

type IssueResult struct {
	StudentID      snowflake.ID
	EnrollmentID   snowflake.ID
	EnrollmentCode string
}

var (
	ErrInvalidCollege   = errors.New("invalid_college")
	ErrInvalidSession   = errors.New("invalid_session")
	ErrInvalidCourse    = errors.New("invalid_course")
	ErrInvalidPlan      = errors.New("invalid_fee_plan")
	ErrInvalidAgent     = errors.New("invalid_agent")
	ErrInvalidEntryType = errors.New("invalid_entry_type")
	ErrStudentName      = errors.New("student_name_required")
	ErrPlanMismatch     = errors.New("fee_plan_course_mismatch")
	ErrStaleCounter     = errors.New("admission_counter_conflict")
	ErrIssueInProgress  = errors.New("admission_issue_in_progress")
)
