package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tpdash/tp-dashboard-backend/internal/logger"
	"github.com/tpdash/tp-dashboard-backend/internal/repos"
	"github.com/tpdash/tp-dashboard-backend/internal/types"
)

type ScheduleService interface {
	ListLectures(ctx context.Context) ([]types.Lecture, error)
	ListAgenda(ctx context.Context) ([]types.AgendaUnit, error)
}

type scheduleService struct {
	db           *gorm.DB
	log          *logger.Logger
	scheduleRepo repos.ScheduleRepo
}

func NewScheduleService(db *gorm.DB, log *logger.Logger, scheduleRepo repos.ScheduleRepo) ScheduleService {
	return &scheduleService{
		db:           db,
		log:          log.With("service", "ScheduleService"),
		scheduleRepo: scheduleRepo,
	}
}

func (ss *scheduleService) ListLectures(ctx context.Context) ([]types.Lecture, error) {
	lectures, err := ss.scheduleRepo.ListLectures(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list lectures: %w", err)
	}
	return lectures, nil
}

func (ss *scheduleService) ListAgenda(ctx context.Context) ([]types.AgendaUnit, error) {
	units, err := ss.scheduleRepo.ListAgenda(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list agenda: %w", err)
	}
	return units, nil
}
