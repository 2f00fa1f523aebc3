package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/stopdetect-backend-go/internal/models"
)

func makeTrace(key models.TraceKey, fixes ...[3]interface{}) models.Trace {
	trace := models.Trace{Key: key}
	for _, f := range fixes {
		trace.Points = append(trace.Points, models.Point{
			DeviceID:    key.DeviceID,
			TraceNumber: key.TraceNumber,
			Timestamp:   f[0].(time.Time),
			Latitude:    f[1].(float64),
			Longitude:   f[2].(float64),
		})
	}
	return trace
}

func TestBuildFeaturesRecordCount(t *testing.T) {
	key := models.TraceKey{DeviceID: "dev-1", TraceNumber: 1}
	t0 := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	for _, n := range []int{2, 3, 10} {
		trace := models.Trace{Key: key}
		for i := 0; i < n; i++ {
			trace.Points = append(trace.Points, models.Point{
				Timestamp: t0.Add(time.Duration(i) * time.Second),
				Latitude:  41.15 + float64(i)*0.0001,
				Longitude: -8.61,
			})
		}

		records, err := BuildFeatures(trace)
		require.NoError(t, err)
		assert.Len(t, records, n-1, "n points must yield n-1 records")
	}
}

func TestBuildFeaturesShortTraces(t *testing.T) {
	key := models.TraceKey{DeviceID: "dev-1", TraceNumber: 1}
	t0 := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	records, err := BuildFeatures(models.Trace{Key: key})
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = BuildFeatures(makeTrace(key, [3]interface{}{t0, 41.15, -8.61}))
	require.NoError(t, err)
	assert.Empty(t, records, "single point has no predecessor and no records")
}

func TestBuildFeaturesValues(t *testing.T) {
	key := models.TraceKey{DeviceID: "dev-1", TraceNumber: 1}
	t0 := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	// Second point roughly 111m north of the first, 10 seconds later
	trace := makeTrace(key,
		[3]interface{}{t0, 41.1500, -8.6100},
		[3]interface{}{t0.Add(10 * time.Second), 41.1510, -8.6100},
	)

	records, err := BuildFeatures(trace)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, 1, rec.Index)
	assert.InDelta(t, 111.2, rec.DistanceM, 1.0)
	assert.InDelta(t, 10.0, rec.DeltaTS, 1e-9)
	assert.InDelta(t, rec.DistanceM/10*3.6, rec.SpeedKmh, 1e-9)
	assert.InDelta(t, 41.1510, rec.Lat, 1e-9)
	assert.InDelta(t, 41.1500, rec.PrevLat, 1e-9)
}

func TestBuildFeaturesNonMonotonicTime(t *testing.T) {
	key := models.TraceKey{DeviceID: "dev-1", TraceNumber: 1}
	t0 := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		second time.Time
	}{
		{"decreasing", t0.Add(-time.Second)},
		{"duplicate", t0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trace := makeTrace(key,
				[3]interface{}{t0, 41.15, -8.61},
				[3]interface{}{tt.second, 41.151, -8.61},
			)

			_, err := BuildFeatures(trace)
			var nonMono *NonMonotonicTimeError
			require.ErrorAs(t, err, &nonMono)
			assert.Equal(t, key, nonMono.Key)
			assert.Equal(t, 1, nonMono.Index)
		})
	}
}

// The inference vector must stay free of wall-clock-derived features: the
// training set minus {speed_kmh, delta_t_s} equals the inference set.
func TestInferenceVectorExcludesTimeFeatures(t *testing.T) {
	assert.Equal(t, []string{"distance_m", "lat", "lon"}, models.InferenceFeatureNames)

	rec := models.FeatureRecord{DistanceM: 12.5, Lat: 41.15, Lon: -8.61, DeltaTS: 4, SpeedKmh: 11.25}
	vec := rec.InferenceVector()
	require.Len(t, vec, len(models.InferenceFeatureNames))
	assert.Equal(t, []float64{12.5, 41.15, -8.61}, vec)
}
