package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DatasetUpload is the append-only audit record for one accepted file.
// The "current" table for a category is simply the newest row with
// that category; nothing ever mutates these.
type DatasetUpload struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	Category         string    `gorm:"not null;index;column:category" json:"category"`
	StorageTable     string    `gorm:"not null;column:table_name" json:"table_name"`
	OriginalFilename string    `gorm:"not null;column:original_filename" json:"original_filename"`
	RowCount         int       `gorm:"not null;default:0;column:row_count" json:"row_count"`
	RejectedRows     int       `gorm:"not null;default:0;column:rejected_rows" json:"rejected_rows"`
	Status           string    `gorm:"not null;column:status" json:"status"`
	UploadedAt       time.Time `gorm:"not null;index;autoCreateTime;column:uploaded_at" json:"uploaded_at"`
}

func (DatasetUpload) TableName() string {
	return "dataset_uploads"
}

// DatasetRow stores one sanitized source row of an upload as JSON,
// keyed by the upload it arrived with. Analytics read the rows of the
// latest upload per category through DatasetRepo.
type DatasetRow struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	UploadID uuid.UUID      `gorm:"type:uuid;not null;index;column:upload_id" json:"upload_id"`
	RowIndex int            `gorm:"not null;column:row_index" json:"row_index"`
	Fields   datatypes.JSON `gorm:"column:fields" json:"fields"`
}

func (DatasetRow) TableName() string {
	return "dataset_rows"
}
