package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/tpdash/tp-dashboard-backend/internal/logger"
	"github.com/tpdash/tp-dashboard-backend/internal/types"
)

type ScheduleRepo interface {
	ReplaceLectures(ctx context.Context, tx *gorm.DB, lectures []*types.Lecture) error
	ReplaceAgenda(ctx context.Context, tx *gorm.DB, units []*types.AgendaUnit) error
	ListLectures(ctx context.Context, tx *gorm.DB) ([]types.Lecture, error)
	ListAgenda(ctx context.Context, tx *gorm.DB) ([]types.AgendaUnit, error)
}

type scheduleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScheduleRepo(db *gorm.DB, baseLog *logger.Logger) ScheduleRepo {
	return &scheduleRepo{db: db, log: baseLog.With("repo", "ScheduleRepo")}
}

// ReplaceLectures is a sector-wide refresh: schedule sheets always
// carry the full timetable, so prior rows are dropped first.
func (sr *scheduleRepo) ReplaceLectures(ctx context.Context, tx *gorm.DB, lectures []*types.Lecture) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if err := transaction.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.Lecture{}).Error; err != nil {
		return err
	}
	if len(lectures) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).CreateInBatches(&lectures, 500).Error
}

func (sr *scheduleRepo) ReplaceAgenda(ctx context.Context, tx *gorm.DB, units []*types.AgendaUnit) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if err := transaction.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.AgendaUnit{}).Error; err != nil {
		return err
	}
	if len(units) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).CreateInBatches(&units, 500).Error
}

func (sr *scheduleRepo) ListLectures(ctx context.Context, tx *gorm.DB) ([]types.Lecture, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []types.Lecture
	if err := transaction.WithContext(ctx).
		Order("date, start_time").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *scheduleRepo) ListAgenda(ctx context.Context, tx *gorm.DB) ([]types.AgendaUnit, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []types.AgendaUnit
	if err := transaction.WithContext(ctx).
		Order("unit_number").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
