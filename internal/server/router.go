package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tpdash/tp-dashboard-backend/internal/handlers"
)

type RouterConfig struct {
	AllowOrigins    []string
	IngestHandler   *handlers.IngestHandler
	DatasetHandler  *handlers.DatasetHandler
	StudentHandler  *handlers.StudentHandler
	ScheduleHandler *handlers.ScheduleHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthz", handlers.HealthCheck)

	api := router.Group("/api/v1")
	{
		api.POST("/ingest/bulk-upload", cfg.IngestHandler.BulkUpload)
		api.GET("/datasets", cfg.DatasetHandler.ListUploads)
		api.GET("/datasets/:category/latest", cfg.DatasetHandler.LatestByCategory)
		api.GET("/students", cfg.StudentHandler.List)
		api.GET("/students/:id", cfg.StudentHandler.Get)
		api.GET("/schedule", cfg.ScheduleHandler.ListLectures)
		api.GET("/agenda", cfg.ScheduleHandler.ListAgenda)
	}

	return router
}
