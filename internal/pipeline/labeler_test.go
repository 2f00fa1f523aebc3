package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/stopdetect-backend-go/internal/models"
)

func stationaryTrace(t *testing.T, gaps ...time.Duration) []models.FeatureRecord {
	t.Helper()
	key := models.TraceKey{DeviceID: "dev-1", TraceNumber: 1}
	t0 := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	trace := models.Trace{Key: key, Points: []models.Point{{Timestamp: t0, Latitude: 41.15, Longitude: -8.61}}}
	ts := t0
	for _, gap := range gaps {
		ts = ts.Add(gap)
		trace.Points = append(trace.Points, models.Point{Timestamp: ts, Latitude: 41.15, Longitude: -8.61})
	}

	records, err := BuildFeatures(trace)
	require.NoError(t, err)
	return records
}

func TestLabelRecordsConfirmedStop(t *testing.T) {
	// Three points at the same coordinate, 0s, 3s and 6s: the run covers 6
	// seconds, above the 5s threshold, so every record confirms.
	records := stationaryTrace(t, 3*time.Second, 3*time.Second)
	labels := LabelRecords(records)
	assert.Equal(t, []bool{true, true}, labels)
}

func TestLabelRecordsShortStopRejected(t *testing.T) {
	// Same points but only 0s and 3s apart: run covers 3 seconds, below
	// threshold, nothing confirms.
	records := stationaryTrace(t, 3*time.Second)
	labels := LabelRecords(records)
	assert.Equal(t, []bool{false}, labels)
}

func TestLabelRecordsSingleLongGapConfirms(t *testing.T) {
	// A run of length 1 whose own delta_t_s is already >= 5s confirms alone
	records := stationaryTrace(t, 6*time.Second)
	labels := LabelRecords(records)
	assert.Equal(t, []bool{true}, labels)
}

func TestLabelRecordsMovingPointsNeverStop(t *testing.T) {
	key := models.TraceKey{DeviceID: "dev-1", TraceNumber: 1}
	t0 := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	// ~111m per 10s is about 40 km/h, far above the 1 km/h threshold
	trace := models.Trace{Key: key}
	for i := 0; i < 5; i++ {
		trace.Points = append(trace.Points, models.Point{
			Timestamp: t0.Add(time.Duration(i*10) * time.Second),
			Latitude:  41.15 + float64(i)*0.001,
			Longitude: -8.61,
		})
	}

	records, err := BuildFeatures(trace)
	require.NoError(t, err)

	labels := LabelRecords(records)
	for i, stopped := range labels {
		assert.False(t, stopped, "record %d should not be stopped", i)
	}
}

func TestLabelRecordsTrailingOpenRun(t *testing.T) {
	key := models.TraceKey{DeviceID: "dev-1", TraceNumber: 1}
	t0 := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	// Movement, then stationary until the trace simply ends. The open run is
	// judged on its observed elapsed time only.
	trace := models.Trace{Key: key, Points: []models.Point{
		{Timestamp: t0, Latitude: 41.1500, Longitude: -8.61},
		{Timestamp: t0.Add(10 * time.Second), Latitude: 41.1510, Longitude: -8.61},
		{Timestamp: t0.Add(13 * time.Second), Latitude: 41.1510, Longitude: -8.61},
		{Timestamp: t0.Add(16 * time.Second), Latitude: 41.1510, Longitude: -8.61},
	}}

	records, err := BuildFeatures(trace)
	require.NoError(t, err)

	labels := LabelRecords(records)
	assert.Equal(t, []bool{false, true, true}, labels)
}

func TestLabelRecordsIdempotent(t *testing.T) {
	records := stationaryTrace(t, 3*time.Second, 3*time.Second, 20*time.Second, 2*time.Second)
	first := LabelRecords(records)
	second := LabelRecords(records)
	assert.Equal(t, first, second)
}

func TestApplyLabels(t *testing.T) {
	records := stationaryTrace(t, 3*time.Second, 3*time.Second)
	labeled := ApplyLabels(records)
	require.Len(t, labeled, len(records))
	for i := range labeled {
		assert.Equal(t, records[i].Index, labeled[i].Index)
		assert.True(t, labeled[i].Stopped)
	}
}
