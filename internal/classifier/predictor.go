package classifier

import (
	"context"

	"github.com/jengzang/stopdetect-backend-go/internal/models"
	"github.com/jengzang/stopdetect-backend-go/internal/pipeline"
)

// Predictor turns one trace's feature records into per-record stop verdicts.
// The rule evaluator and the model-backed adapter both implement it, so the
// dataset-preparation path and the inference path share one contract instead
// of special-casing each other.
type Predictor interface {
	Predict(ctx context.Context, records []models.FeatureRecord) ([]models.Prediction, error)
}

// RuleEvaluator is the rule-based strategy: the same pass used to produce
// ground-truth labels, exposed behind the Predictor interface. It sees
// speed_kmh and delta_t_s, which is exactly why it is only ever used at
// dataset-preparation time.
type RuleEvaluator struct{}

// NewRuleEvaluator creates a new rule evaluator
func NewRuleEvaluator() *RuleEvaluator {
	return &RuleEvaluator{}
}

// Predict applies the stationary-duration rule over the records
func (e *RuleEvaluator) Predict(_ context.Context, records []models.FeatureRecord) ([]models.Prediction, error) {
	labels := pipeline.LabelRecords(records)
	preds := make([]models.Prediction, len(records))
	for i, rec := range records {
		prob := 0.0
		if labels[i] {
			prob = 1.0
		}
		preds[i] = models.Prediction{
			Index:       rec.Index,
			Stopped:     labels[i],
			Probability: prob,
			DistanceM:   rec.DistanceM,
		}
	}
	return preds, nil
}

// PointSequence expands per-record predictions into the per-point sequence
// consumed by the segment aggregator and the path renderer, carrying each
// verdict's feature values and contribution scores along. The first point of
// a trace has no feature record and is reported as not stopped.
func PointSequence(trace models.Trace, predictions []models.Prediction) []models.PointPrediction {
	if trace.Len() == 0 {
		return nil
	}

	out := make([]models.PointPrediction, trace.Len())
	for i, p := range trace.Points {
		out[i] = models.PointPrediction{
			Key:       trace.Key,
			Index:     i,
			Timestamp: p.Timestamp,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
		}
	}
	for _, pred := range predictions {
		if pred.Index >= 1 && pred.Index < len(out) {
			out[pred.Index].Stopped = pred.Stopped
			out[pred.Index].Probability = pred.Probability
			out[pred.Index].DistanceM = pred.DistanceM
			out[pred.Index].Contributions = pred.Contributions
		}
	}
	return out
}
