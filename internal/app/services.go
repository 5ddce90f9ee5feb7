package app

import (
	"gorm.io/gorm"

	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/pipeline"
	"github.com/tpdash/tp-dashboard-backend/internal/logger"
	"github.com/tpdash/tp-dashboard-backend/internal/services"
)

type Services struct {
	Ingest   services.IngestService
	Dataset  services.DatasetService
	Student  services.StudentService
	Schedule services.ScheduleService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) Services {
	log.Info("Wiring services...")
	pipe := pipeline.New(db, log,
		r.Student, r.Attendance, r.Assessment, r.Risk, r.Schedule, r.Dataset,
		pipeline.Config{
			RefYear:  cfg.AttendanceRefYear,
			RefMonth: cfg.AttendanceRefMonth,
		})
	return Services{
		Ingest:   services.NewIngestService(log, pipe),
		Dataset:  services.NewDatasetService(db, log, r.Dataset),
		Student:  services.NewStudentService(db, log, r.Student, r.Attendance, r.Assessment, r.Risk),
		Schedule: services.NewScheduleService(db, log, r.Schedule),
	}
}
