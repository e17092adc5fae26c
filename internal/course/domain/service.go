package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type CreateCourseRequest struct {
	CollegeID     string
	Code          string
	Name          string
	DurationYears int
}

type UpdateCourseRequest struct {
	ID            string
	Name          *string
	DurationYears *int
	Status        *string
}

type Service interface {
	Create(ctx context.Context, req CreateCourseRequest) (Course, error)
	Update(ctx context.Context, req UpdateCourseRequest) (Course, error)
	GetByID(ctx context.Context, id string) (Course, error)
	ListByCollege(ctx context.Context, collegeID string) ([]Course, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, course *Course) error
	Update(ctx context.Context, db *gorm.DB, course *Course) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Course, error)
	ListByCollege(ctx context.Context, db *gorm.DB, collegeID snowflake.ID) ([]*Course, error)
}

var (
	ErrInvalidCollege  = errors.New("invalid_college")
	ErrInvalidCode     = errors.New("invalid_code")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidDuration = errors.New("invalid_duration")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrCodeTaken       = errors.New("code_taken")
	ErrNotFound        = errors.New("not_found")
)
