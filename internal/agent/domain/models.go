package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type AgentStatus string

const (
	AgentStatusActive   AgentStatus = "active"
	AgentStatusInactive AgentStatus = "inactive"
)

// Agent is an admission referral agent.
type Agent struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Phone     string       `gorm:"type:text" json:"phone,omitempty"`
	Email     string       `gorm:"type:text" json:"email,omitempty"`
	Status    AgentStatus  `gorm:"type:text;not null;default:'active'" json:"status"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Agent) TableName() string { return "agents" }

type CreateAgentRequest struct {
	Name  string
	Phone string
	Email string
}

type Service interface {
	Create(ctx context.Context, req CreateAgentRequest) (Agent, error)
	GetByID(ctx context.Context, id string) (Agent, error)
	List(ctx context.Context) ([]Agent, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, agent *Agent) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Agent, error)
	List(ctx context.Context, db *gorm.DB) ([]*Agent, error)
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")
)
