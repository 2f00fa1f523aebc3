package models

// Batch processing status constants
const (
	TraceStatusOK     = "ok"
	TraceStatusFailed = "failed"
)

// TraceResult is the outcome of running the pipeline over one trace. Exactly
// one of Error or the result fields is meaningful: a failing trace never
// discards results from its siblings.
type TraceResult struct {
	Key         TraceKey          `json:"key"`
	Status      string            `json:"status"`
	Error       string            `json:"error,omitempty"`
	PointCount  int               `json:"pointCount"`
	Predictions []PointPrediction `json:"predictions,omitempty"`
	Segments    []StopSegment     `json:"segments,omitempty"`
}

// BatchSummary reports an upload batch as a whole
type BatchSummary struct {
	BatchID      string        `json:"batchId"`
	TraceCount   int           `json:"traceCount"`
	FailedTraces int           `json:"failedTraces"`
	SegmentCount int           `json:"segmentCount"`
	Results      []TraceResult `json:"results"`
}
