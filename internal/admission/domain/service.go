package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Service interface {
	// Preview returns the enrollment code the next issued admission would
	// receive without consuming the sequence.
	Preview(ctx context.Context, req PreviewRequest) (string, error)
	// Issue admits the student: it consumes the sequence, creates the
	// student, enrollment, documents, and the computed fee lines in one
	// transaction.
	Issue(ctx context.Context, req IssueRequest) (IssueResult, error)
}

type Repository interface {
	FindCounter(ctx context.Context, db *gorm.DB, collegeID, sessionID snowflake.ID) (*AdmissionCounter, error)
	InsertCounter(ctx context.Context, db *gorm.DB, counter *AdmissionCounter) error
	// AdvanceCounter bumps next_seq by one, guarded by the value the
	// caller read. ErrStaleCounter means another issue won the race.
	AdvanceCounter(ctx context.Context, db *gorm.DB, counter *AdmissionCounter) error
}
