package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jengzang/stopdetect-backend-go/internal/models"
)

// TraceRepository handles database operations for trace points and their
// predictions
type TraceRepository struct {
	db *sql.DB
}

// NewTraceRepository creates a new trace repository
func NewTraceRepository(db *sql.DB) *TraceRepository {
	return &TraceRepository{db: db}
}

// InsertPredictions persists the per-point prediction sequence of one trace,
// including each verdict's distance feature and contribution scores so the
// reporting layer can explain decisions without re-running the classifier
func (r *TraceRepository) InsertPredictions(tx *sql.Tx, batchID string, points []models.PointPrediction) error {
	if len(points) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(`
		INSERT INTO trace_points
			(batch_id, device_id, trace_number, ts, latitude, longitude, stopped, probability, distance_m, contributions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare point insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		stopped := 0
		if p.Stopped {
			stopped = 1
		}

		var contributions interface{}
		if len(p.Contributions) > 0 {
			data, err := json.Marshal(p.Contributions)
			if err != nil {
				return fmt.Errorf("failed to encode contributions: %w", err)
			}
			contributions = string(data)
		}

		_, err := stmt.Exec(batchID, p.Key.DeviceID, p.Key.TraceNumber, p.Timestamp.UnixMilli(),
			p.Latitude, p.Longitude, stopped, p.Probability, p.DistanceM, contributions)
		if err != nil {
			return fmt.Errorf("failed to insert trace point: %w", err)
		}
	}

	return nil
}

// GetPredictions returns the stored per-point sequence for one trace in
// timestamp order
func (r *TraceRepository) GetPredictions(deviceID string, traceNumber int) ([]models.PointPrediction, error) {
	rows, err := r.db.Query(`
		SELECT ts, latitude, longitude, stopped, probability, distance_m, contributions
		FROM trace_points
		WHERE device_id = ? AND trace_number = ?
		ORDER BY ts ASC
	`, deviceID, traceNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query trace points: %w", err)
	}
	defer rows.Close()

	key := models.TraceKey{DeviceID: deviceID, TraceNumber: traceNumber}
	var points []models.PointPrediction
	idx := 0
	for rows.Next() {
		var (
			ts            int64
			lat, lon      float64
			stopped       int
			probability   sql.NullFloat64
			distanceM     sql.NullFloat64
			contributions sql.NullString
		)
		if err := rows.Scan(&ts, &lat, &lon, &stopped, &probability, &distanceM, &contributions); err != nil {
			return nil, fmt.Errorf("failed to scan trace point: %w", err)
		}

		point := models.PointPrediction{
			Key:         key,
			Index:       idx,
			Timestamp:   time.UnixMilli(ts).UTC(),
			Latitude:    lat,
			Longitude:   lon,
			Stopped:     stopped == 1,
			Probability: probability.Float64,
			DistanceM:   distanceM.Float64,
		}
		if contributions.Valid && contributions.String != "" {
			if err := json.Unmarshal([]byte(contributions.String), &point.Contributions); err != nil {
				return nil, fmt.Errorf("failed to decode contributions: %w", err)
			}
		}

		points = append(points, point)
		idx++
	}

	return points, rows.Err()
}
