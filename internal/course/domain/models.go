package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type CourseStatus string

const (
	CourseStatusActive   CourseStatus = "active"
	CourseStatusInactive CourseStatus = "inactive"
)

type Course struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	CollegeID     snowflake.ID `gorm:"not null;index;uniqueIndex:ux_courses_college_code,priority:1" json:"college_id"`
	Code          string       `gorm:"type:text;not null;uniqueIndex:ux_courses_college_code,priority:2" json:"code"`
	Name          string       `gorm:"type:text;not null" json:"name"`
	DurationYears int          `gorm:"not null" json:"duration_years"`
	Status        CourseStatus `gorm:"type:text;not null;default:'active'" json:"status"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Course) TableName() string { return "courses" }
