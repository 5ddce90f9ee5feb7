package app

import (
	"github.com/gin-gonic/gin"

	"github.com/tpdash/tp-dashboard-backend/internal/handlers"
	"github.com/tpdash/tp-dashboard-backend/internal/logger"
	"github.com/tpdash/tp-dashboard-backend/internal/server"
)

type Handlers struct {
	Ingest   *handlers.IngestHandler
	Dataset  *handlers.DatasetHandler
	Student  *handlers.StudentHandler
	Schedule *handlers.ScheduleHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Ingest:   handlers.NewIngestHandler(s.Ingest),
		Dataset:  handlers.NewDatasetHandler(s.Dataset),
		Student:  handlers.NewStudentHandler(s.Student),
		Schedule: handlers.NewScheduleHandler(s.Schedule),
	}
}

func wireRouter(cfg Config, h Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AllowOrigins:    cfg.AllowOrigins,
		IngestHandler:   h.Ingest,
		DatasetHandler:  h.Dataset,
		StudentHandler:  h.Student,
		ScheduleHandler: h.Schedule,
	})
}
