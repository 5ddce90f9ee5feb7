package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tpdash/tp-dashboard-backend/internal/http/response"
	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/pipeline"
	"github.com/tpdash/tp-dashboard-backend/internal/services"
)

// maxUploadBytes caps one spreadsheet; exports of this size are
// already hundreds of thousands of rows.
const maxUploadBytes = 25 << 20

type IngestHandler struct {
	ingestService services.IngestService
}

func NewIngestHandler(ingestService services.IngestService) *IngestHandler {
	return &IngestHandler{ingestService: ingestService}
}

// BulkUpload accepts a multipart batch under the "files" field, reads
// every part into memory and hands the batch to the ingestion service.
func (ih *IngestHandler) BulkUpload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "bad_multipart", err)
		return
	}
	parts := form.File["files"]
	if len(parts) == 0 {
		response.Error(c, http.StatusBadRequest, "no_files", errors.New("no files supplied under 'files'"))
		return
	}

	files := make([]pipeline.SourceFile, 0, len(parts))
	for _, part := range parts {
		if part.Size > maxUploadBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, "file_too_large",
				fmt.Errorf("%s exceeds the %d byte limit", part.Filename, maxUploadBytes))
			return
		}
		f, err := part.Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "unreadable_file",
				fmt.Errorf("open %s: %w", part.Filename, err))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "unreadable_file",
				fmt.Errorf("read %s: %w", part.Filename, err))
			return
		}
		files = append(files, pipeline.SourceFile{Filename: part.Filename, Data: data})
	}

	summary, err := ih.ingestService.BulkUpload(c.Request.Context(), files)
	if err != nil {
		if errors.Is(err, services.ErrIngestBusy) {
			response.Error(c, http.StatusConflict, "ingest_busy", err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "ingest_failed", err)
		return
	}
	response.OK(c, summary)
}
