package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/tpdash/tp-dashboard-backend/internal/logger"
	"github.com/tpdash/tp-dashboard-backend/internal/types"
)

type StudentRepo interface {
	GetAll(ctx context.Context, tx *gorm.DB) ([]types.Student, error)
	GetByID(ctx context.Context, tx *gorm.DB, studentID string) (*types.Student, error)
	Create(ctx context.Context, tx *gorm.DB, students []*types.Student) error
	UpdateFields(ctx context.Context, tx *gorm.DB, studentID string, fields map[string]any) error
}

type studentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudentRepo(db *gorm.DB, baseLog *logger.Logger) StudentRepo {
	return &studentRepo{db: db, log: baseLog.With("repo", "StudentRepo")}
}

func (sr *studentRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []types.Student
	if err := transaction.WithContext(ctx).
		Order("student_id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *studentRepo) GetByID(ctx context.Context, tx *gorm.DB, studentID string) (*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var result types.Student
	if err := transaction.WithContext(ctx).
		Where("student_id = ?", studentID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *studentRepo) Create(ctx context.Context, tx *gorm.DB, students []*types.Student) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(students) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&students).Error
}

func (sr *studentRepo) UpdateFields(ctx context.Context, tx *gorm.DB, studentID string, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Student{}).
		Where("student_id = ?", studentID).
		Updates(fields).Error
}
