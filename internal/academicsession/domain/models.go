package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type SessionStatus string

const (
	SessionStatusActive   SessionStatus = "active"
	SessionStatusInactive SessionStatus = "inactive"
)

// AcademicSession is one admission year, e.g. code "2025-26".
type AcademicSession struct {
	ID        snowflake.ID  `gorm:"primaryKey" json:"id"`
	Code      string        `gorm:"type:text;not null;uniqueIndex:ux_academic_sessions_code" json:"code"`
	Title     string        `gorm:"type:text;not null" json:"title"`
	StartDate time.Time     `gorm:"not null" json:"start_date"`
	EndDate   time.Time     `gorm:"not null" json:"end_date"`
	Status    SessionStatus `gorm:"type:text;not null;default:'active'" json:"status"`
	CreatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (AcademicSession) TableName() string { return "academic_sessions" }

type CreateSessionRequest struct {
	Code      string
	Title     string
	StartDate time.Time
	EndDate   time.Time
}

type UpdateSessionRequest struct {
	ID     string
	Title  *string
	Status *string
}

type Service interface {
	Create(ctx context.Context, req CreateSessionRequest) (AcademicSession, error)
	Update(ctx context.Context, req UpdateSessionRequest) (AcademicSession, error)
	GetByID(ctx context.Context, id string) (AcademicSession, error)
	List(ctx context.Context) ([]AcademicSession, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, session *AcademicSession) error
	Update(ctx context.Context, db *gorm.DB, session *AcademicSession) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*AcademicSession, error)
	List(ctx context.Context, db *gorm.DB) ([]*AcademicSession, error)
}

var (
	ErrInvalidCode      = errors.New("invalid_code")
	ErrInvalidTitle     = errors.New("invalid_title")
	ErrInvalidDateRange = errors.New("invalid_date_range")
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidStatus    = errors.New("invalid_status")
	ErrCodeTaken        = errors.New("code_taken")
	ErrNotFound         = errors.New("not_found")
)
