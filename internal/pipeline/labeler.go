package pipeline

import (
	"github.com/jengzang/stopdetect-backend-go/internal/models"
)

// Labeling rule thresholds
const (
	// StopSpeedKmh marks a record as candidate-stopped when its speed is below it
	StopSpeedKmh = 1.0
	// MinStopDurationS is the elapsed time a candidate run must cover to confirm
	MinStopDurationS = 5.0
)

// LabelRecords applies the rule-based stop detection over one trace's feature
// records, in timestamp order, and returns one label per record.
//
// A record is candidate-stopped when speed_kmh < 1. Consecutive candidates
// form a run; the run confirms as stopped only when the elapsed time it covers
// (the sum of its records' delta_t_s, i.e. last point timestamp minus the
// timestamp preceding the run) is at least 5 seconds. A single record whose
// own delta_t_s is >= 5s therefore confirms alone. A run still open at the end
// of a trace is judged on its observed elapsed time only.
//
// Dataset preparation runs this once over historical data; inference never
// calls it.
func LabelRecords(records []models.FeatureRecord) []bool {
	labels := make([]bool, len(records))

	runStart := -1
	runElapsed := 0.0

	confirm := func(end int) {
		if runStart < 0 {
			return
		}
		if runElapsed >= MinStopDurationS {
			for i := runStart; i < end; i++ {
				labels[i] = true
			}
		}
		runStart = -1
		runElapsed = 0
	}

	for i, rec := range records {
		if rec.SpeedKmh < StopSpeedKmh {
			if runStart < 0 {
				runStart = i
			}
			runElapsed += rec.DeltaTS
		} else {
			confirm(i)
		}
	}
	confirm(len(records))

	return labels
}

// ApplyLabels pairs records with their rule labels
func ApplyLabels(records []models.FeatureRecord) []models.LabeledRecord {
	labels := LabelRecords(records)
	labeled := make([]models.LabeledRecord, len(records))
	for i, rec := range records {
		labeled[i] = models.LabeledRecord{FeatureRecord: rec, Stopped: labels[i]}
	}
	return labeled
}
