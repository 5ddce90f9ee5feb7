package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tpdash/tp-dashboard-backend/internal/http/response"
	"github.com/tpdash/tp-dashboard-backend/internal/services"
)

type StudentHandler struct {
	studentService services.StudentService
}

func NewStudentHandler(studentService services.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

func (sh *StudentHandler) List(c *gin.Context) {
	students, err := sh.studentService.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "list_students_failed", err)
		return
	}
	response.OK(c, gin.H{"students": students})
}

// Get returns one entity snapshot. ?include=attendance,assessments,risk
// attaches the requested fact series.
func (sh *StudentHandler) Get(c *gin.Context) {
	studentID := c.Param("id")
	var include []string
	if raw := c.Query("include"); raw != "" {
		include = strings.Split(raw, ",")
	}

	snapshot, err := sh.studentService.Snapshot(c.Request.Context(), studentID, include)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "student_not_found", err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "student_snapshot_failed", err)
		return
	}
	response.OK(c, snapshot)
}
