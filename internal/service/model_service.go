package service

import (
	"context"
	"fmt"

	"github.com/jengzang/stopdetect-backend-go/internal/classifier"
	"github.com/jengzang/stopdetect-backend-go/internal/models"
	"github.com/jengzang/stopdetect-backend-go/internal/repository"
	"github.com/jengzang/stopdetect-backend-go/internal/stats"
)

// ModelService evaluates the loaded classifier against the labeled holdout
type ModelService struct {
	adapter     *classifier.ModelAdapter
	datasetRepo *repository.DatasetRepository
}

// NewModelService creates a new model service
func NewModelService(adapter *classifier.ModelAdapter, datasetRepo *repository.DatasetRepository) *ModelService {
	return &ModelService{adapter: adapter, datasetRepo: datasetRepo}
}

// Info describes the loaded classifier artifact
func (s *ModelService) Info() models.ModelInfo {
	return s.adapter.Info()
}

// Evaluate runs the model over a labeled split and reports classification
// metrics. Splits are assigned per trace, so the holdout shares no trace with
// the training data.
func (s *ModelService) Evaluate(ctx context.Context, split string) (*stats.Classification, error) {
	labeled, err := s.datasetRepo.GetBySplit(split)
	if err != nil {
		return nil, err
	}
	if len(labeled) == 0 {
		return nil, fmt.Errorf("no labeled records in split %s", split)
	}

	records := make([]models.FeatureRecord, len(labeled))
	actual := make([]bool, len(labeled))
	for i, rec := range labeled {
		records[i] = rec.FeatureRecord
		actual[i] = rec.Stopped
	}

	preds, err := s.adapter.Predict(ctx, records)
	if err != nil {
		return nil, err
	}

	predicted := make([]bool, len(preds))
	for i, p := range preds {
		predicted[i] = p.Stopped
	}

	report := stats.Evaluate(predicted, actual)
	return &report, nil
}
