package domain

import (
	"context"
	"errors"
)

type CreateCollegeRequest struct {
	Code    string
	Name    string
	Address string
}

type UpdateCollegeRequest struct {
	ID      string
	Name    *string
	Address *string
	Status  *string
}

type Service interface {
	Create(ctx context.Context, req CreateCollegeRequest) (College, error)
	Update(ctx context.Context, req UpdateCollegeRequest) (College, error)
	GetByID(ctx context.Context, id string) (College, error)
	List(ctx context.Context) ([]College, error)
}

var (
	ErrInvalidCode   = errors.New("invalid_code")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidStatus = errors.New("invalid_status")
	ErrCodeTaken     = errors.New("code_taken")
	ErrNotFound      = errors.New("not_found")
)
