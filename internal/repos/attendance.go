package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tpdash/tp-dashboard-backend/internal/logger"
	"github.com/tpdash/tp-dashboard-backend/internal/types"
)

type AttendanceRepo interface {
	DeleteByStudentDates(ctx context.Context, tx *gorm.DB, studentIDs []string, dates []time.Time) error
	Create(ctx context.Context, tx *gorm.DB, facts []*types.AttendanceLog) error
	ListByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]types.AttendanceLog, error)
}

type attendanceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAttendanceRepo(db *gorm.DB, baseLog *logger.Logger) AttendanceRepo {
	return &attendanceRepo{db: db, log: baseLog.With("repo", "AttendanceRepo")}
}

// DeleteByStudentDates clears the (students x dates) window covered by
// the current upload so re-ingestion replays cleanly. Rows outside the
// window are never touched.
func (ar *attendanceRepo) DeleteByStudentDates(ctx context.Context, tx *gorm.DB, studentIDs []string, dates []time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(studentIDs) == 0 || len(dates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("student_id IN ? AND date IN ?", studentIDs, dates).
		Delete(&types.AttendanceLog{}).Error
}

func (ar *attendanceRepo) Create(ctx context.Context, tx *gorm.DB, facts []*types.AttendanceLog) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(facts) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).CreateInBatches(&facts, 500).Error
}

func (ar *attendanceRepo) ListByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]types.AttendanceLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []types.AttendanceLog
	if err := transaction.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
