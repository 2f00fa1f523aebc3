package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jengzang/stopdetect-backend-go/internal/models"
)

// DatasetRepository handles database operations for labeled feature records
type DatasetRepository struct {
	db *sql.DB
}

// NewDatasetRepository creates a new dataset repository
func NewDatasetRepository(db *sql.DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

// InsertLabeledRecords persists one trace's rule-labeled records
func (r *DatasetRepository) InsertLabeledRecords(tx *sql.Tx, records []models.LabeledRecord) error {
	if len(records) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(`
		INSERT INTO labeled_records
			(device_id, trace_number, point_index, ts, latitude, longitude,
			 distance_m, delta_t_s, speed_kmh, stopped, split)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare labeled record insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		stopped := 0
		if rec.Stopped {
			stopped = 1
		}
		_, err := stmt.Exec(rec.Key.DeviceID, rec.Key.TraceNumber, rec.Index, rec.Timestamp.UnixMilli(),
			rec.Lat, rec.Lon, rec.DistanceM, rec.DeltaTS, rec.SpeedKmh, stopped, rec.Split)
		if err != nil {
			return fmt.Errorf("failed to insert labeled record: %w", err)
		}
	}

	return nil
}

// GetBySplit returns all labeled records of one dataset split
func (r *DatasetRepository) GetBySplit(split string) ([]models.LabeledRecord, error) {
	rows, err := r.db.Query(`
		SELECT device_id, trace_number, point_index, ts, latitude, longitude,
			distance_m, delta_t_s, speed_kmh, stopped, split
		FROM labeled_records
		WHERE split = ?
		ORDER BY device_id, trace_number, point_index
	`, split)
	if err != nil {
		return nil, fmt.Errorf("failed to query labeled records: %w", err)
	}
	defer rows.Close()

	var records []models.LabeledRecord
	for rows.Next() {
		var (
			rec     models.LabeledRecord
			ts      int64
			stopped int
		)
		if err := rows.Scan(&rec.Key.DeviceID, &rec.Key.TraceNumber, &rec.Index, &ts,
			&rec.Lat, &rec.Lon, &rec.DistanceM, &rec.DeltaTS, &rec.SpeedKmh, &stopped, &rec.Split); err != nil {
			return nil, fmt.Errorf("failed to scan labeled record: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts).UTC()
		rec.Stopped = stopped == 1
		records = append(records, rec)
	}

	return records, rows.Err()
}

// CountBySplit returns record counts per dataset split
func (r *DatasetRepository) CountBySplit() (map[string]int64, error) {
	rows, err := r.db.Query("SELECT split, COUNT(*) FROM labeled_records GROUP BY split")
	if err != nil {
		return nil, fmt.Errorf("failed to count labeled records: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var split string
		var count int64
		if err := rows.Scan(&split, &count); err != nil {
			return nil, fmt.Errorf("failed to scan split count: %w", err)
		}
		counts[split] = count
	}

	return counts, rows.Err()
}
