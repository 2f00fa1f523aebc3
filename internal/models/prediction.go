package models

import "time"

// Prediction is the classifier verdict for one FeatureRecord
type Prediction struct {
	Index         int                `json:"index"` // matches FeatureRecord.Index
	Stopped       bool               `json:"stopped"`
	Probability   float64            `json:"probability"`             // P(stopped)
	DistanceM     float64            `json:"distanceM"`               // the distance feature the verdict was made on
	Contributions map[string]float64 `json:"contributions,omitempty"` // per-feature decision evidence
}

// PointPrediction is the per-point sequence handed to the segment aggregator
// and to the path-rendering collaborator. Together with Latitude/Longitude,
// DistanceM completes the exact inference feature vector, and Contributions
// carries the classifier decision evidence for explainability. The first
// point of a trace carries no FeatureRecord and is reported as not stopped
// with no evidence.
type PointPrediction struct {
	Key           TraceKey           `json:"key"`
	Index         int                `json:"index"`
	Timestamp     time.Time          `json:"timestamp"`
	Latitude      float64            `json:"latitude"`
	Longitude     float64            `json:"longitude"`
	Stopped       bool               `json:"stopped"`
	Probability   float64            `json:"probability"`
	DistanceM     float64            `json:"distanceM"`
	Contributions map[string]float64 `json:"contributions,omitempty"`
}

// ModelInfo describes the loaded classifier artifact
type ModelInfo struct {
	Version      string   `json:"version"`
	FeatureNames []string `json:"featureNames"`
	TreeCount    int      `json:"treeCount"`
	TrainedAt    string   `json:"trainedAt,omitempty"`
}
