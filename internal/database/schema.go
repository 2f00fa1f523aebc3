package database

import (
	"database/sql"
	"fmt"
)

// Schema migrations, applied in order. Versions already recorded in the
// migrations table are skipped, so adding a new statement at the end is the
// only way to change the schema.
var migrations = []struct {
	Version int
	Name    string
	SQL     string
}{
	{
		Version: 1,
		Name:    "create_trace_points",
		SQL: `
			CREATE TABLE IF NOT EXISTS trace_points (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				batch_id TEXT NOT NULL,
				device_id TEXT NOT NULL,
				trace_number INTEGER NOT NULL,
				ts INTEGER NOT NULL, -- Unix milliseconds
				latitude REAL NOT NULL,
				longitude REAL NOT NULL,
				stopped INTEGER,
				probability REAL,
				distance_m REAL,
				contributions TEXT, -- JSON feature -> score
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_trace_points_trace
				ON trace_points(device_id, trace_number, ts);
			CREATE INDEX IF NOT EXISTS idx_trace_points_batch
				ON trace_points(batch_id);
		`,
	},
	{
		Version: 2,
		Name:    "create_stop_segments",
		SQL: `
			CREATE TABLE IF NOT EXISTS stop_segments (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				batch_id TEXT NOT NULL,
				device_id TEXT NOT NULL,
				trace_number INTEGER NOT NULL,
				start_time INTEGER NOT NULL, -- Unix milliseconds
				end_time INTEGER NOT NULL,   -- Unix milliseconds
				duration_seconds REAL NOT NULL,
				latitude REAL NOT NULL,
				longitude REAL NOT NULL,
				point_count INTEGER NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_stop_segments_trace
				ON stop_segments(device_id, trace_number, start_time);
			CREATE INDEX IF NOT EXISTS idx_stop_segments_duration
				ON stop_segments(duration_seconds);
		`,
	},
	{
		Version: 3,
		Name:    "create_labeled_records",
		SQL: `
			CREATE TABLE IF NOT EXISTS labeled_records (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				device_id TEXT NOT NULL,
				trace_number INTEGER NOT NULL,
				point_index INTEGER NOT NULL,
				ts INTEGER NOT NULL, -- Unix milliseconds
				latitude REAL NOT NULL,
				longitude REAL NOT NULL,
				distance_m REAL NOT NULL,
				delta_t_s REAL NOT NULL,
				speed_kmh REAL NOT NULL,
				stopped INTEGER NOT NULL,
				split TEXT NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_labeled_records_trace
				ON labeled_records(device_id, trace_number);
			CREATE INDEX IF NOT EXISTS idx_labeled_records_split
				ON labeled_records(split);
		`,
	},
}

// ApplySchema creates the migrations table and applies pending migrations
func ApplySchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied := make(map[int]bool)
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if _, err := db.Exec(m.SQL); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := db.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}

	return nil
}
