package services

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/tpdash/tp-dashboard-backend/internal/logger"
	"github.com/tpdash/tp-dashboard-backend/internal/repos"
	"github.com/tpdash/tp-dashboard-backend/internal/types"
)

type DatasetService interface {
	ListUploads(ctx context.Context) ([]types.DatasetUpload, error)
	LatestWithRows(ctx context.Context, category string) (*types.DatasetUpload, []map[string]any, error)
}

type datasetService struct {
	db          *gorm.DB
	log         *logger.Logger
	datasetRepo repos.DatasetRepo
}

func NewDatasetService(db *gorm.DB, log *logger.Logger, datasetRepo repos.DatasetRepo) DatasetService {
	return &datasetService{
		db:          db,
		log:         log.With("service", "DatasetService"),
		datasetRepo: datasetRepo,
	}
}

func (ds *datasetService) ListUploads(ctx context.Context) ([]types.DatasetUpload, error) {
	uploads, err := ds.datasetRepo.ListUploads(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	return uploads, nil
}

// LatestWithRows returns the newest upload record for a category along
// with its decoded raw rows. Categories with no upload yet surface as
// gorm.ErrRecordNotFound for the handler to map to 404.
func (ds *datasetService) LatestWithRows(ctx context.Context, category string) (*types.DatasetUpload, []map[string]any, error) {
	upload, err := ds.datasetRepo.LatestByCategory(ctx, nil, category)
	if err != nil {
		return nil, nil, err
	}
	raw, err := ds.datasetRepo.RowsByUploadID(ctx, nil, upload.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("load rows for upload %s: %w", upload.ID, err)
	}

	rows := make([]map[string]any, 0, len(raw))
	for _, r := range raw {
		fields := map[string]any{}
		if len(r.Fields) > 0 {
			if err := json.Unmarshal(r.Fields, &fields); err != nil {
				ds.log.Warn("corrupt dataset row skipped", "upload_id", upload.ID, "row_index", r.RowIndex, "error", err)
				continue
			}
		}
		rows = append(rows, fields)
	}
	return upload, rows, nil
}
