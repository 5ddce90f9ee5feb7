package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/tpdash/tp-dashboard-backend/internal/logger"
	"github.com/tpdash/tp-dashboard-backend/internal/types"
)

type RiskRepo interface {
	DeleteByStudentPeriods(ctx context.Context, tx *gorm.DB, studentIDs []string, periodNames []string) error
	Create(ctx context.Context, tx *gorm.DB, facts []*types.RiskLog) error
	ListByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]types.RiskLog, error)
}

type riskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRiskRepo(db *gorm.DB, baseLog *logger.Logger) RiskRepo {
	return &riskRepo{db: db, log: baseLog.With("repo", "RiskRepo")}
}

func (rr *riskRepo) DeleteByStudentPeriods(ctx context.Context, tx *gorm.DB, studentIDs []string, periodNames []string) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if len(studentIDs) == 0 || len(periodNames) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("student_id IN ? AND period_name IN ?", studentIDs, periodNames).
		Delete(&types.RiskLog{}).Error
}

func (rr *riskRepo) Create(ctx context.Context, tx *gorm.DB, facts []*types.RiskLog) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if len(facts) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).CreateInBatches(&facts, 500).Error
}

func (rr *riskRepo) ListByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]types.RiskLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []types.RiskLog
	if err := transaction.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
