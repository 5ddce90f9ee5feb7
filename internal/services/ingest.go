package services

import (
	"context"
	"errors"

	"golang.org/x/sync/semaphore"

	"github.com/tpdash/tp-dashboard-backend/internal/ingestion/pipeline"
	"github.com/tpdash/tp-dashboard-backend/internal/logger"
)

// ErrIngestBusy is returned while another batch holds the gate.
// Batches rewrite overlapping fact windows, so only one runs at a time.
var ErrIngestBusy = errors.New("an ingestion batch is already running")

type IngestService interface {
	BulkUpload(ctx context.Context, files []pipeline.SourceFile) (*pipeline.BatchSummary, error)
}

type ingestService struct {
	log  *logger.Logger
	pipe *pipeline.Pipeline
	gate *semaphore.Weighted
}

func NewIngestService(log *logger.Logger, pipe *pipeline.Pipeline) IngestService {
	return &ingestService{
		log:  log.With("service", "IngestService"),
		pipe: pipe,
		gate: semaphore.NewWeighted(1),
	}
}

func (is *ingestService) BulkUpload(ctx context.Context, files []pipeline.SourceFile) (*pipeline.BatchSummary, error) {
	if !is.gate.TryAcquire(1) {
		is.log.Warn("bulk upload rejected, batch in flight")
		return nil, ErrIngestBusy
	}
	defer is.gate.Release(1)

	is.log.Info("bulk upload accepted", "files", len(files))
	summary, err := is.pipe.Run(ctx, files)
	if err != nil {
		is.log.Error("batch failed", "error", err)
		return nil, err
	}
	return summary, nil
}
