package models

import "time"

// Feature column names. InferenceFeatureNames is the single source of truth
// for what the classifier is allowed to see: spatial and distance-derived
// values only. delta_t_s and speed_kmh exist for labeling and must never
// enter this list -- elapsed time maps near one-to-one onto the stop rule and
// would leak the label.
const (
	FeatureDistanceM = "distance_m"
	FeatureLat       = "lat"
	FeatureLon       = "lon"
)

// InferenceFeatureNames is the fixed, ordered feature contract shared by
// dataset preparation and prediction.
var InferenceFeatureNames = []string{FeatureDistanceM, FeatureLat, FeatureLon}

// FeatureRecord holds the engineered features for one consecutive point pair
// (p[i-1], p[i]) of a trace. It is keyed by the position of p[i]: the first
// point of a trace has no predecessor and therefore no record.
type FeatureRecord struct {
	Key       TraceKey  `json:"key"`
	Index     int       `json:"index"` // index of p[i] within the trace, >= 1
	Timestamp time.Time `json:"timestamp"`

	PrevLat float64 `json:"prevLat"`
	PrevLon float64 `json:"prevLon"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`

	DistanceM float64 `json:"distanceM"`
	DeltaTS   float64 `json:"deltaTS"`  // elapsed seconds since p[i-1], labeling only
	SpeedKmh  float64 `json:"speedKmh"` // labeling only, never a model input
}

// InferenceVector returns the feature values in InferenceFeatureNames order.
func (r *FeatureRecord) InferenceVector() []float64 {
	return []float64{r.DistanceM, r.Lat, r.Lon}
}

// LabeledRecord is a FeatureRecord with its rule-derived ground truth,
// produced at dataset-preparation time only.
type LabeledRecord struct {
	FeatureRecord
	Stopped bool   `json:"stopped"`
	Split   string `json:"split,omitempty" db:"split"` // TRAIN, VAL or TEST
}

// Dataset split constants
const (
	SplitTrain = "TRAIN"
	SplitVal   = "VAL"
	SplitTest  = "TEST"
)
