package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tpdash/tp-dashboard-backend/internal/logger"
	"github.com/tpdash/tp-dashboard-backend/internal/types"
)

type DatasetRepo interface {
	CreateUpload(ctx context.Context, tx *gorm.DB, upload *types.DatasetUpload) error
	CreateRows(ctx context.Context, tx *gorm.DB, rows []*types.DatasetRow) error
	ListUploads(ctx context.Context, tx *gorm.DB) ([]types.DatasetUpload, error)
	LatestByCategory(ctx context.Context, tx *gorm.DB, category string) (*types.DatasetUpload, error)
	RowsByUploadID(ctx context.Context, tx *gorm.DB, uploadID uuid.UUID) ([]types.DatasetRow, error)
}

type datasetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDatasetRepo(db *gorm.DB, baseLog *logger.Logger) DatasetRepo {
	return &datasetRepo{db: db, log: baseLog.With("repo", "DatasetRepo")}
}

func (dr *datasetRepo) CreateUpload(ctx context.Context, tx *gorm.DB, upload *types.DatasetUpload) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	return transaction.WithContext(ctx).Create(upload).Error
}

func (dr *datasetRepo) CreateRows(ctx context.Context, tx *gorm.DB, rows []*types.DatasetRow) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	if len(rows) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).CreateInBatches(&rows, 500).Error
}

func (dr *datasetRepo) ListUploads(ctx context.Context, tx *gorm.DB) ([]types.DatasetUpload, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []types.DatasetUpload
	if err := transaction.WithContext(ctx).
		Order("uploaded_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// LatestByCategory is the read path analytics use: the newest upload
// record for a category is the category's current table.
func (dr *datasetRepo) LatestByCategory(ctx context.Context, tx *gorm.DB, category string) (*types.DatasetUpload, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var result types.DatasetUpload
	if err := transaction.WithContext(ctx).
		Where("category = ?", category).
		Order("uploaded_at DESC").
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (dr *datasetRepo) RowsByUploadID(ctx context.Context, tx *gorm.DB, uploadID uuid.UUID) ([]types.DatasetRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []types.DatasetRow
	if err := transaction.WithContext(ctx).
		Where("upload_id = ?", uploadID).
		Order("row_index").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
