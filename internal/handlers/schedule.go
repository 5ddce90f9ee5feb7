package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tpdash/tp-dashboard-backend/internal/http/response"
	"github.com/tpdash/tp-dashboard-backend/internal/services"
)

type ScheduleHandler struct {
	scheduleService services.ScheduleService
}

func NewScheduleHandler(scheduleService services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

func (sh *ScheduleHandler) ListLectures(c *gin.Context) {
	lectures, err := sh.scheduleService.ListLectures(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "list_lectures_failed", err)
		return
	}
	response.OK(c, gin.H{"lectures": lectures})
}

func (sh *ScheduleHandler) ListAgenda(c *gin.Context) {
	units, err := sh.scheduleService.ListAgenda(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "list_agenda_failed", err)
		return
	}
	response.OK(c, gin.H{"agenda": units})
}
