package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, college *College) error
	Update(ctx context.Context, db *gorm.DB, college *College) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*College, error)
	List(ctx context.Context, db *gorm.DB) ([]*College, error)
}
