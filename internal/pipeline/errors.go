package pipeline

import (
	"fmt"
	"time"

	"github.com/jengzang/stopdetect-backend-go/internal/models"
)

// MalformedRecordError reports an unparseable input row (timestamp or geometry).
// The parser never drops a bad row silently; it fails the whole upload with the
// row number so the caller can fix the file.
type MalformedRecordError struct {
	Row    int    // 1-based row number including the header
	Field  string // the column that failed to parse
	Value  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at row %d: field %q value %q: %s", e.Row, e.Field, e.Value, e.Reason)
}

// NonMonotonicTimeError reports a duplicate or decreasing timestamp between
// consecutive points of the same trace. This is a data-quality defect and is
// surfaced rather than coerced.
type NonMonotonicTimeError struct {
	Key   models.TraceKey
	Index int // index of the offending point within the trace
	Prev  time.Time
	Curr  time.Time
}

func (e *NonMonotonicTimeError) Error() string {
	return fmt.Sprintf("non-monotonic timestamp in trace %s at point %d: %s -> %s",
		e.Key, e.Index, e.Prev.Format(time.RFC3339), e.Curr.Format(time.RFC3339))
}

// EmptyTraceError reports an input with zero usable points after parsing
type EmptyTraceError struct {
	Source string
}

func (e *EmptyTraceError) Error() string {
	return fmt.Sprintf("no usable GPS points in %s", e.Source)
}

// FeatureContractMismatchError reports a classifier artifact whose expected
// feature set differs from the one the feature builder produces. Predicting
// through a mismatched model would be silently wrong, so loading fails fast.
type FeatureContractMismatchError struct {
	Expected []string
	Actual   []string
}

func (e *FeatureContractMismatchError) Error() string {
	return fmt.Sprintf("feature contract mismatch: pipeline produces %v, model expects %v", e.Expected, e.Actual)
}
