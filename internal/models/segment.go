package models

// StopSegment represents a maximal run of consecutive stopped points
type StopSegment struct {
	ID          int64  `json:"id,omitempty" db:"id"`
	DeviceID    string `json:"deviceId" db:"device_id"`
	TraceNumber int    `json:"traceNumber" db:"trace_number"`

	// Millisecond epoch timestamps: GPS fixes carry sub-second precision and
	// whole seconds would shift segment bounds
	StartTime       int64   `json:"startTime" db:"start_time"`
	EndTime         int64   `json:"endTime" db:"end_time"`
	DurationSeconds float64 `json:"durationSeconds" db:"duration_seconds"`

	// Representative location: the run's first point, chosen over a centroid so
	// re-aggregation is reproducible without re-averaging
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`

	PointCount int    `json:"pointCount" db:"point_count"`
	BatchID    string `json:"batchId,omitempty" db:"batch_id"`

	CreatedAt string `json:"createdAt,omitempty" db:"created_at"`
}

// SegmentsResponse represents a paginated response of stop segments
type SegmentsResponse struct {
	Data       []StopSegment `json:"data"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

// SegmentFilter represents filter parameters for querying stop segments
type SegmentFilter struct {
	DeviceID    string  `form:"deviceId"`
	TraceNumber int     `form:"traceNumber"`
	StartTime   int64   `form:"startTime"` // Unix milliseconds
	EndTime     int64   `form:"endTime"`   // Unix milliseconds
	MinDuration float64 `form:"minDuration"`
	BatchID     string  `form:"batchId"`
	Page        int     `form:"page"`
	PageSize    int     `form:"pageSize"`
}
