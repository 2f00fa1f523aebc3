package pipeline

import (
	"github.com/jengzang/stopdetect-backend-go/internal/models"
)

// AggregateSegments collapses a per-point prediction sequence, in timestamp
// order, into stop segments: one StopSegment per maximal run of stopped
// points. Start and end are the run's first and last point timestamps; the
// representative location is the run's first point. Single-point runs are
// emitted with duration 0 -- filtering short stops is a presentation concern,
// not the aggregator's.
func AggregateSegments(predictions []models.PointPrediction) []models.StopSegment {
	var segments []models.StopSegment

	runStart := -1
	flush := func(end int) {
		if runStart < 0 {
			return
		}
		first := predictions[runStart]
		last := predictions[end-1]
		segments = append(segments, models.StopSegment{
			DeviceID:        first.Key.DeviceID,
			TraceNumber:     first.Key.TraceNumber,
			StartTime:       first.Timestamp.UnixMilli(),
			EndTime:         last.Timestamp.UnixMilli(),
			DurationSeconds: last.Timestamp.Sub(first.Timestamp).Seconds(),
			Latitude:        first.Latitude,
			Longitude:       first.Longitude,
			PointCount:      end - runStart,
		})
		runStart = -1
	}

	for i, p := range predictions {
		if p.Stopped {
			if runStart < 0 {
				runStart = i
			}
		} else {
			flush(i)
		}
	}
	flush(len(predictions))

	return segments
}
