package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shuaibahmad12/mirai/internal/student/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertStudent(ctx context.Context, db *gorm.DB, student *domain.Student) error {
	return db.WithContext(ctx).Create(student).Error
}

func (r *repo) UpdateStudent(ctx context.Context, db *gorm.DB, student *domain.Student) error {
	return db.WithContext(ctx).Save(student).Error
}

func (r *repo) FindStudentByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Student, error) {
	var student domain.Student
	err := db.WithContext(ctx).Where("id = ?", id).First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *repo) SearchStudents(ctx context.Context, db *gorm.DB, query string, limit int) ([]*domain.Student, error) {
	tx := db.WithContext(ctx).Model(&domain.Student{})
	if query != "" {
		like := "%" + query + "%"
		tx = tx.Where("name LIKE ? OR phone LIKE ? OR email LIKE ?", like, like, like)
	}
	var students []*domain.Student
	err := tx.Order("name asc, id asc").Limit(limit).Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

func (r *repo) InsertEnrollment(ctx context.Context, db *gorm.DB, enrollment *domain.Enrollment) error {
	return db.WithContext(ctx).Create(enrollment).Error
}

func (r *repo) UpdateEnrollment(ctx context.Context, db *gorm.DB, enrollment *domain.Enrollment) error {
	return db.WithContext(ctx).Save(enrollment).Error
}

func (r *repo) FindEnrollmentByStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID) (*domain.Enrollment, error) {
	var enrollment domain.Enrollment
	err := db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at desc, id desc").
		First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNoEnrollment
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *repo) FindEnrollmentByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Enrollment, error) {
	var enrollment domain.Enrollment
	err := db.WithContext(ctx).Where("enrollment_code = ?", code).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNoEnrollment
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *repo) InsertDocument(ctx context.Context, db *gorm.DB, doc *domain.StudentDocument) error {
	return db.WithContext(ctx).Create(doc).Error
}

func (r *repo) UpdateDocument(ctx context.Context, db *gorm.DB, doc *domain.StudentDocument) error {
	return db.WithContext(ctx).Save(doc).Error
}

func (r *repo) FindDocumentByID(ctx context.Context, db *gorm.DB, studentID, id snowflake.ID) (*domain.StudentDocument, error) {
	var doc domain.StudentDocument
	err := db.WithContext(ctx).
		Where("id = ? AND student_id = ?", id, studentID).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *repo) ListDocuments(ctx context.Context, db *gorm.DB, studentID snowflake.ID) ([]domain.StudentDocument, error) {
	var docs []domain.StudentDocument
	err := db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("doc_type asc, id asc").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *repo) InsertFeeLines(ctx context.Context, db *gorm.DB, lines []*domain.StudentFeeLine) error {
	if len(lines) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(lines).Error
}

func (r *repo) ListFeeLines(ctx context.Context, db *gorm.DB, studentID snowflake.ID) ([]*domain.StudentFeeLine, error) {
	var lines []*domain.StudentFeeLine
	err := db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}
