package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jengzang/stopdetect-backend-go/internal/models"
)

// SegmentRepository handles database operations for stop segments
type SegmentRepository struct {
	db *sql.DB
}

// NewSegmentRepository creates a new segment repository
func NewSegmentRepository(db *sql.DB) *SegmentRepository {
	return &SegmentRepository{db: db}
}

// InsertSegments persists the stop segments of one processed trace
func (r *SegmentRepository) InsertSegments(tx *sql.Tx, batchID string, segments []models.StopSegment) error {
	if len(segments) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(`
		INSERT INTO stop_segments
			(batch_id, device_id, trace_number, start_time, end_time, duration_seconds, latitude, longitude, point_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare segment insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range segments {
		_, err := stmt.Exec(batchID, s.DeviceID, s.TraceNumber, s.StartTime, s.EndTime,
			s.DurationSeconds, s.Latitude, s.Longitude, s.PointCount)
		if err != nil {
			return fmt.Errorf("failed to insert segment: %w", err)
		}
	}

	return nil
}

// GetSegments retrieves stop segments with filtering and pagination
func (r *SegmentRepository) GetSegments(filter models.SegmentFilter) ([]models.StopSegment, int64, error) {
	query := `SELECT id, batch_id, device_id, trace_number, start_time, end_time,
		duration_seconds, latitude, longitude, point_count, created_at
		FROM stop_segments`

	var conditions []string
	var args []interface{}

	if filter.DeviceID != "" {
		conditions = append(conditions, "device_id = ?")
		args = append(args, filter.DeviceID)
	}
	if filter.TraceNumber > 0 {
		conditions = append(conditions, "trace_number = ?")
		args = append(args, filter.TraceNumber)
	}
	if filter.BatchID != "" {
		conditions = append(conditions, "batch_id = ?")
		args = append(args, filter.BatchID)
	}
	if filter.MinDuration > 0 {
		conditions = append(conditions, "duration_seconds >= ?")
		args = append(args, filter.MinDuration)
	}
	if filter.StartTime > 0 {
		conditions = append(conditions, "start_time >= ?")
		args = append(args, filter.StartTime)
	}
	if filter.EndTime > 0 {
		conditions = append(conditions, "end_time <= ?")
		args = append(args, filter.EndTime)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM stop_segments"
	if len(conditions) > 0 {
		countQuery += " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	err := r.db.QueryRow(countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count stop segments: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	offset := (filter.Page - 1) * filter.PageSize
	query += " ORDER BY start_time ASC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query stop segments: %w", err)
	}
	defer rows.Close()

	var segments []models.StopSegment
	for rows.Next() {
		var s models.StopSegment
		err := rows.Scan(&s.ID, &s.BatchID, &s.DeviceID, &s.TraceNumber, &s.StartTime,
			&s.EndTime, &s.DurationSeconds, &s.Latitude, &s.Longitude, &s.PointCount, &s.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan stop segment: %w", err)
		}
		segments = append(segments, s)
	}

	return segments, total, rows.Err()
}

// GetDurations returns all segment durations in seconds matching the filter,
// for distribution summaries
func (r *SegmentRepository) GetDurations(filter models.SegmentFilter) ([]float64, error) {
	query := "SELECT duration_seconds FROM stop_segments"
	var conditions []string
	var args []interface{}

	if filter.DeviceID != "" {
		conditions = append(conditions, "device_id = ?")
		args = append(args, filter.DeviceID)
	}
	if filter.TraceNumber > 0 {
		conditions = append(conditions, "trace_number = ?")
		args = append(args, filter.TraceNumber)
	}
	if filter.BatchID != "" {
		conditions = append(conditions, "batch_id = ?")
		args = append(args, filter.BatchID)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query segment durations: %w", err)
	}
	defer rows.Close()

	var durations []float64
	for rows.Next() {
		var d float64
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan duration: %w", err)
		}
		durations = append(durations, d)
	}

	return durations, rows.Err()
}
