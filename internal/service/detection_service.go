package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/jengzang/stopdetect-backend-go/internal/batch"
	"github.com/jengzang/stopdetect-backend-go/internal/classifier"
	"github.com/jengzang/stopdetect-backend-go/internal/database"
	"github.com/jengzang/stopdetect-backend-go/internal/models"
	"github.com/jengzang/stopdetect-backend-go/internal/pipeline"
	"github.com/jengzang/stopdetect-backend-go/internal/repository"
)

// DetectionService runs the upload-to-segments pipeline: parse traces, fan
// them out over the batch runner with the loaded classifier, persist points,
// predictions and segments.
type DetectionService struct {
	adapter     *classifier.ModelAdapter
	runner      *batch.Runner
	traceRepo   *repository.TraceRepository
	segmentRepo *repository.SegmentRepository
}

// NewDetectionService creates a new detection service
func NewDetectionService(adapter *classifier.ModelAdapter, workers int,
	traceRepo *repository.TraceRepository, segmentRepo *repository.SegmentRepository) *DetectionService {
	return &DetectionService{
		adapter:     adapter,
		runner:      batch.NewRunner(adapter, workers),
		traceRepo:   traceRepo,
		segmentRepo: segmentRepo,
	}
}

// ProcessUpload parses a CSV upload, classifies every trace and persists the
// results. Parse errors fail the whole upload (the file is broken); pipeline
// errors inside one trace only fail that trace.
func (s *DetectionService) ProcessUpload(ctx context.Context, r io.Reader, source string) (*models.BatchSummary, error) {
	traces, err := pipeline.ParseTraces(r, source)
	if err != nil {
		return nil, err
	}

	batchID := uuid.NewString()
	log.Printf("[Detection] Batch %s: %d traces from %s", batchID, len(traces), source)

	results := s.runner.Run(ctx, traces)

	summary := &models.BatchSummary{
		BatchID:    batchID,
		TraceCount: len(results),
		Results:    results,
	}

	err = database.Transaction(func(tx *sql.Tx) error {
		for _, res := range results {
			if res.Status != models.TraceStatusOK {
				continue
			}
			if err := s.traceRepo.InsertPredictions(tx, batchID, res.Predictions); err != nil {
				return fmt.Errorf("trace %s: %w", res.Key, err)
			}
			if err := s.segmentRepo.InsertSegments(tx, batchID, res.Segments); err != nil {
				return fmt.Errorf("trace %s: %w", res.Key, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist batch %s: %w", batchID, err)
	}

	for _, res := range results {
		if res.Status == models.TraceStatusFailed {
			summary.FailedTraces++
		}
		summary.SegmentCount += len(res.Segments)
	}

	log.Printf("[Detection] Batch %s done: %d traces, %d failed, %d segments",
		batchID, summary.TraceCount, summary.FailedTraces, summary.SegmentCount)

	return summary, nil
}

// GetPredictions returns the stored per-point sequence of one trace
func (s *DetectionService) GetPredictions(deviceID string, traceNumber int) ([]models.PointPrediction, error) {
	return s.traceRepo.GetPredictions(deviceID, traceNumber)
}

// ModelInfo describes the loaded classifier artifact
func (s *DetectionService) ModelInfo() models.ModelInfo {
	return s.adapter.Info()
}
