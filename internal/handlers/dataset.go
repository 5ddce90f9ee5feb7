package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tpdash/tp-dashboard-backend/internal/http/response"
	"github.com/tpdash/tp-dashboard-backend/internal/services"
)

type DatasetHandler struct {
	datasetService services.DatasetService
}

func NewDatasetHandler(datasetService services.DatasetService) *DatasetHandler {
	return &DatasetHandler{datasetService: datasetService}
}

func (dh *DatasetHandler) ListUploads(c *gin.Context) {
	uploads, err := dh.datasetService.ListUploads(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "list_uploads_failed", err)
		return
	}
	response.OK(c, gin.H{"uploads": uploads})
}

func (dh *DatasetHandler) LatestByCategory(c *gin.Context) {
	category := c.Param("category")
	upload, rows, err := dh.datasetService.LatestWithRows(c.Request.Context(), category)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "no_uploads", err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "latest_upload_failed", err)
		return
	}
	response.OK(c, gin.H{"upload": upload, "rows": rows})
}
