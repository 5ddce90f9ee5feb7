package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/tpdash/tp-dashboard-backend/internal/logger"
	"github.com/tpdash/tp-dashboard-backend/internal/types"
)

type AssessmentRepo interface {
	DeleteByStudentRounds(ctx context.Context, tx *gorm.DB, studentIDs []string, roundLabels []string) error
	Create(ctx context.Context, tx *gorm.DB, facts []*types.AssessmentRound) error
	ListByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]types.AssessmentRound, error)
}

type assessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
	return &assessmentRepo{db: db, log: baseLog.With("repo", "AssessmentRepo")}
}

func (ar *assessmentRepo) DeleteByStudentRounds(ctx context.Context, tx *gorm.DB, studentIDs []string, roundLabels []string) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(studentIDs) == 0 || len(roundLabels) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("student_id IN ? AND round_label IN ?", studentIDs, roundLabels).
		Delete(&types.AssessmentRound{}).Error
}

func (ar *assessmentRepo) Create(ctx context.Context, tx *gorm.DB, facts []*types.AssessmentRound) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(facts) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).CreateInBatches(&facts, 500).Error
}

func (ar *assessmentRepo) ListByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]types.AssessmentRound, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []types.AssessmentRound
	if err := transaction.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("round_label").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
