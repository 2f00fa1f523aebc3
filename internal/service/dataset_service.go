package service

import (
	"database/sql"
	"fmt"
	"io"
	"log"

	"github.com/jengzang/stopdetect-backend-go/internal/database"
	"github.com/jengzang/stopdetect-backend-go/internal/models"
	"github.com/jengzang/stopdetect-backend-go/internal/pipeline"
	"github.com/jengzang/stopdetect-backend-go/internal/repository"
)

// splitSeed keeps the trace-to-split assignment reproducible across runs
const splitSeed = 42

// DatasetService prepares training data: it runs the rule-based labeler over
// an uploaded file and stores the labeled records with a per-trace
// train/val/test assignment.
type DatasetService struct {
	repo *repository.DatasetRepository
}

// NewDatasetService creates a new dataset service
func NewDatasetService(repo *repository.DatasetRepository) *DatasetService {
	return &DatasetService{repo: repo}
}

// DatasetReport summarizes one dataset-preparation run
type DatasetReport struct {
	TraceCount   int                  `json:"traceCount"`
	RecordCount  int                  `json:"recordCount"`
	StoppedCount int                  `json:"stoppedCount"`
	FailedTraces []models.TraceResult `json:"failedTraces,omitempty"`
	SplitCounts  map[string]int64     `json:"splitCounts"`
}

// BuildDataset labels an uploaded file and persists the result. Traces whose
// feature building fails are reported and skipped; they never abort the rest
// of the file.
func (s *DatasetService) BuildDataset(r io.Reader, source string) (*DatasetReport, error) {
	traces, err := pipeline.ParseTraces(r, source)
	if err != nil {
		return nil, err
	}

	keys := make([]models.TraceKey, len(traces))
	for i, t := range traces {
		keys[i] = t.Key
	}
	splits := pipeline.AssignSplits(keys, pipeline.DefaultValFraction, pipeline.DefaultTestFraction, splitSeed)

	report := &DatasetReport{TraceCount: len(traces)}
	var labeled []models.LabeledRecord

	for _, trace := range traces {
		records, err := pipeline.BuildFeatures(trace)
		if err != nil {
			log.Printf("[Dataset] Trace %s failed: %v", trace.Key, err)
			report.FailedTraces = append(report.FailedTraces, models.TraceResult{
				Key:        trace.Key,
				Status:     models.TraceStatusFailed,
				Error:      err.Error(),
				PointCount: trace.Len(),
			})
			continue
		}

		for _, rec := range pipeline.ApplyLabels(records) {
			rec.Split = splits[trace.Key]
			labeled = append(labeled, rec)
			if rec.Stopped {
				report.StoppedCount++
			}
		}
	}

	report.RecordCount = len(labeled)

	err = database.Transaction(func(tx *sql.Tx) error {
		return s.repo.InsertLabeledRecords(tx, labeled)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist labeled records: %w", err)
	}

	report.SplitCounts, err = s.repo.CountBySplit()
	if err != nil {
		return nil, err
	}

	log.Printf("[Dataset] %s: %d records labeled (%d stopped), %d traces failed",
		source, report.RecordCount, report.StoppedCount, len(report.FailedTraces))

	return report, nil
}
