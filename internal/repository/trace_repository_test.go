package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/jengzang/stopdetect-backend-go/internal/database"
	"github.com/jengzang/stopdetect-backend-go/internal/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.ApplySchema(db))
	return db
}

func TestTraceRepositoryRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewTraceRepository(db)

	key := models.TraceKey{DeviceID: "dev-1", TraceNumber: 7}
	t0 := time.Date(2024, 3, 1, 8, 0, 0, 250*int(time.Millisecond), time.UTC)
	points := []models.PointPrediction{
		{
			Key: key, Index: 0, Timestamp: t0,
			Latitude: 41.15, Longitude: -8.61,
		},
		{
			Key: key, Index: 1, Timestamp: t0.Add(1500 * time.Millisecond),
			Latitude: 41.15, Longitude: -8.61,
			Stopped: true, Probability: 0.87, DistanceM: 0.6,
			Contributions: map[string]float64{"distance_m": 0.37, "lat": 0.0, "lon": 0.0},
		},
	}

	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, repo.InsertPredictions(tx, "batch-1", points))
	require.NoError(t, tx.Commit())

	got, err := repo.GetPredictions("dev-1", 7)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Sub-second timestamps survive storage
	assert.True(t, got[0].Timestamp.Equal(t0))
	assert.True(t, got[1].Timestamp.Equal(t0.Add(1500*time.Millisecond)))
	assert.Equal(t, t0.UnixMilli()+1500, got[1].Timestamp.UnixMilli())

	assert.False(t, got[0].Stopped)
	assert.Nil(t, got[0].Contributions)

	assert.True(t, got[1].Stopped)
	assert.InDelta(t, 0.87, got[1].Probability, 1e-9)
	assert.InDelta(t, 0.6, got[1].DistanceM, 1e-9)
	require.NotNil(t, got[1].Contributions)
	assert.InDelta(t, 0.37, got[1].Contributions["distance_m"], 1e-9)

	assert.Equal(t, key, got[0].Key)
	assert.Equal(t, 0, got[0].Index)
	assert.Equal(t, 1, got[1].Index)
}

func TestTraceRepositoryGetPredictionsEmpty(t *testing.T) {
	repo := NewTraceRepository(newTestDB(t))

	got, err := repo.GetPredictions("missing", 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}
