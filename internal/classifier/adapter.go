package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jengzang/stopdetect-backend-go/internal/models"
	"github.com/jengzang/stopdetect-backend-go/internal/pipeline"
)

// DecisionThreshold converts P(stopped) into the boolean verdict
const DecisionThreshold = 0.5

// ModelAdapter wraps a persisted forest artifact behind the Predictor
// interface. It is read-only after LoadModel and safe for concurrent use by
// multiple trace workers.
type ModelAdapter struct {
	forest *ForestArtifact
	path   string
}

// LoadModel reads a forest artifact from disk and verifies its feature
// contract against the feature builder's inference set. A mismatch fails
// here, at startup, rather than producing silently wrong predictions later.
func LoadModel(path string) (*ModelAdapter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact %s: %w", path, err)
	}

	var forest ForestArtifact
	if err := json.Unmarshal(data, &forest); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact %s: %w", path, err)
	}

	if err := checkFeatureContract(forest.FeatureNames); err != nil {
		return nil, err
	}
	if len(forest.Trees) == 0 {
		return nil, fmt.Errorf("model artifact %s contains no trees", path)
	}

	log.Printf("[Classifier] Loaded model %s (version %s, %d trees, features %v)",
		path, forest.Version, len(forest.Trees), forest.FeatureNames)

	return &ModelAdapter{forest: &forest, path: path}, nil
}

// checkFeatureContract requires the artifact's ordered feature names to equal
// the pipeline's inference feature names exactly.
func checkFeatureContract(artifactNames []string) error {
	expected := models.InferenceFeatureNames
	if len(artifactNames) != len(expected) {
		return &pipeline.FeatureContractMismatchError{Expected: expected, Actual: artifactNames}
	}
	for i, name := range expected {
		if artifactNames[i] != name {
			return &pipeline.FeatureContractMismatchError{Expected: expected, Actual: artifactNames}
		}
	}
	return nil
}

// Predict classifies each record from its inference feature vector. Context
// cancellation is honored between records so a discarded batch stops burning
// CPU.
func (a *ModelAdapter) Predict(ctx context.Context, records []models.FeatureRecord) ([]models.Prediction, error) {
	preds := make([]models.Prediction, len(records))
	for i := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		features := records[i].InferenceVector()
		prob, contrib, err := a.forest.Predict(features)
		if err != nil {
			return nil, fmt.Errorf("prediction failed for record %d of trace %s: %w", records[i].Index, records[i].Key, err)
		}

		contributions := make(map[string]float64, len(contrib))
		for j, name := range models.InferenceFeatureNames {
			contributions[name] = contrib[j]
		}

		preds[i] = models.Prediction{
			Index:         records[i].Index,
			Stopped:       prob >= DecisionThreshold,
			Probability:   prob,
			DistanceM:     records[i].DistanceM,
			Contributions: contributions,
		}
	}
	return preds, nil
}

// Info describes the loaded artifact
func (a *ModelAdapter) Info() models.ModelInfo {
	return models.ModelInfo{
		Version:      a.forest.Version,
		FeatureNames: append([]string(nil), a.forest.FeatureNames...),
		TreeCount:    len(a.forest.Trees),
		TrainedAt:    a.forest.TrainedAt,
	}
}
