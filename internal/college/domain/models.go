package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type CollegeStatus string

const (
	CollegeStatusActive   CollegeStatus = "active"
	CollegeStatusInactive CollegeStatus = "inactive"
)

type College struct {
	ID        snowflake.ID  `gorm:"primaryKey" json:"id"`
	Code      string        `gorm:"type:text;not null;uniqueIndex:ux_colleges_code" json:"code"`
	Name      string        `gorm:"type:text;not null" json:"name"`
	Address   string        `gorm:"type:text" json:"address,omitempty"`
	Status    CollegeStatus `gorm:"type:text;not null;default:'active'" json:"status"`
	CreatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (College) TableName() string { return "colleges" }
