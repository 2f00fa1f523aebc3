package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jengzang/stopdetect-backend-go/internal/models"
)

// Required CSV columns. Matching is by header name; extra columns are ignored.
var requiredColumns = []string{"device_id", "trace_number", "ts", "geom_wkt"}

// ParseTraces reads CSV rows of GPS fixes and returns them grouped by
// (device_id, trace_number) and sorted by timestamp ascending within each
// group. The source name only appears in error messages.
func ParseTraces(r io.Reader, source string) ([]models.Trace, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &EmptyTraceError{Source: source}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q in %s", name, source)
		}
	}

	groups := make(map[models.TraceKey][]models.Point)
	var order []models.TraceKey

	row := 1
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", row, err)
		}

		rec, perr := parseRecord(fields, cols, row)
		if perr != nil {
			return nil, perr
		}

		key := models.TraceKey{DeviceID: rec.DeviceID, TraceNumber: rec.TraceNumber}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], models.Point{
			DeviceID:    rec.DeviceID,
			TraceNumber: rec.TraceNumber,
			Timestamp:   rec.Timestamp,
			Longitude:   rec.Longitude,
			Latitude:    rec.Latitude,
		})
	}

	if len(groups) == 0 {
		return nil, &EmptyTraceError{Source: source}
	}

	traces := make([]models.Trace, 0, len(groups))
	for _, key := range order {
		points := groups[key]
		sort.SliceStable(points, func(i, j int) bool {
			return points[i].Timestamp.Before(points[j].Timestamp)
		})
		traces = append(traces, models.Trace{Key: key, Points: points})
	}

	return traces, nil
}

// parseRecord converts one CSV row into a RawRecord
func parseRecord(fields []string, cols map[string]int, row int) (*models.RawRecord, error) {
	get := func(name string) string {
		idx := cols[name]
		if idx >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[idx])
	}

	deviceID := get("device_id")
	if deviceID == "" {
		return nil, &MalformedRecordError{Row: row, Field: "device_id", Value: "", Reason: "empty device id"}
	}

	traceStr := get("trace_number")
	traceNumber, err := strconv.Atoi(traceStr)
	if err != nil {
		return nil, &MalformedRecordError{Row: row, Field: "trace_number", Value: traceStr, Reason: "not an integer"}
	}

	tsStr := get("ts")
	ts, err := parseTimestamp(tsStr)
	if err != nil {
		return nil, &MalformedRecordError{Row: row, Field: "ts", Value: tsStr, Reason: err.Error()}
	}

	wkt := get("geom_wkt")
	lon, lat, err := parseWKTPoint(wkt)
	if err != nil {
		return nil, &MalformedRecordError{Row: row, Field: "geom_wkt", Value: wkt, Reason: err.Error()}
	}

	return &models.RawRecord{
		DeviceID:    deviceID,
		TraceNumber: traceNumber,
		Timestamp:   ts,
		Longitude:   lon,
		Latitude:    lat,
		Row:         row,
	}, nil
}

// Accepted timestamp layouts, tried in order. The upload collaborator emits
// ISO 8601; space-separated datetimes show up in hand-exported files.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO 8601 timestamp")
}

// parseWKTPoint parses "POINT(lon lat)" into its two coordinates
func parseWKTPoint(s string) (lon, lat float64, err error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(upper, "POINT") {
		return 0, 0, fmt.Errorf("not a WKT POINT")
	}

	open := strings.Index(s, "(")
	end := strings.LastIndex(s, ")")
	if open < 0 || end < open {
		return 0, 0, fmt.Errorf("unbalanced parentheses in WKT")
	}

	parts := strings.Fields(s[open+1 : end])
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected two coordinates, got %d", len(parts))
	}

	lon, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q", parts[0])
	}
	lat, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q", parts[1])
	}

	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return 0, 0, fmt.Errorf("coordinates out of WGS84 range")
	}

	return lon, lat, nil
}
