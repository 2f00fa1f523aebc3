package models

import (
	"fmt"
	"time"
)

// RawRecord is one parsed CSV row before grouping into traces
type RawRecord struct {
	DeviceID    string
	TraceNumber int
	Timestamp   time.Time
	Longitude   float64
	Latitude    float64
	Row         int // 1-based row number in the source file, for error reporting
}

// Point represents a single GPS fix within a trace
type Point struct {
	DeviceID    string    `json:"deviceId" db:"device_id"`
	TraceNumber int       `json:"traceNumber" db:"trace_number"`
	Timestamp   time.Time `json:"timestamp" db:"ts"`
	Longitude   float64   `json:"longitude" db:"longitude"`
	Latitude    float64   `json:"latitude" db:"latitude"`
}

// TraceKey identifies a trace: one continuous recording of one device
type TraceKey struct {
	DeviceID    string `json:"deviceId"`
	TraceNumber int    `json:"traceNumber"`
}

// String returns the canonical "device/trace" form used in logs and errors
func (k TraceKey) String() string {
	return fmt.Sprintf("%s/%d", k.DeviceID, k.TraceNumber)
}

// Trace is the time-ordered sequence of points sharing a TraceKey.
// It is constructed once by the parser and never mutated afterwards.
type Trace struct {
	Key    TraceKey `json:"key"`
	Points []Point  `json:"points"`
}

// Len returns the number of points in the trace
func (t *Trace) Len() int {
	return len(t.Points)
}
