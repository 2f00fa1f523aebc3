package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/stopdetect-backend-go/internal/models"
)

const validCSV = `device_id,trace_number,ts,geom_wkt
dev-1,1,2024-03-01T08:00:02Z,POINT(-8.611 41.150)
dev-1,1,2024-03-01T08:00:00Z,POINT(-8.610 41.149)
dev-2,7,2024-03-01T09:00:00Z,POINT(2.352 48.856)
dev-1,1,2024-03-01T08:00:01Z,POINT(-8.6105 41.1495)
`

func TestParseTracesGroupsAndSorts(t *testing.T) {
	traces, err := ParseTraces(strings.NewReader(validCSV), "test.csv")
	require.NoError(t, err)
	require.Len(t, traces, 2)

	var byKey = map[models.TraceKey]models.Trace{}
	for _, tr := range traces {
		byKey[tr.Key] = tr
	}

	first := byKey[models.TraceKey{DeviceID: "dev-1", TraceNumber: 1}]
	require.Equal(t, 3, first.Len())
	// Sorted by timestamp regardless of input order
	for i := 1; i < first.Len(); i++ {
		assert.True(t, first.Points[i-1].Timestamp.Before(first.Points[i].Timestamp))
	}
	assert.InDelta(t, 41.149, first.Points[0].Latitude, 1e-9)
	assert.InDelta(t, -8.610, first.Points[0].Longitude, 1e-9)

	second := byKey[models.TraceKey{DeviceID: "dev-2", TraceNumber: 7}]
	assert.Equal(t, 1, second.Len())
}

func TestParseTracesIgnoresExtraColumns(t *testing.T) {
	csv := `speed,device_id,trace_number,ts,geom_wkt,comment
3.2,dev-1,1,2024-03-01T08:00:00Z,POINT(-8.61 41.15),hello
`
	traces, err := ParseTraces(strings.NewReader(csv), "test.csv")
	require.NoError(t, err)
	require.Len(t, traces, 1)
	assert.Equal(t, "dev-1", traces[0].Key.DeviceID)
}

func TestParseTracesMalformedRows(t *testing.T) {
	tests := []struct {
		name  string
		row   string
		field string
	}{
		{"bad WKT", `dev-1,1,2024-03-01T08:00:00Z,LINESTRING(0 0)`, "geom_wkt"},
		{"unbalanced WKT", `dev-1,1,2024-03-01T08:00:00Z,POINT(-8.61 41.15`, "geom_wkt"},
		{"one coordinate", `dev-1,1,2024-03-01T08:00:00Z,POINT(-8.61)`, "geom_wkt"},
		{"out of range", `dev-1,1,2024-03-01T08:00:00Z,POINT(-8.61 99.15)`, "geom_wkt"},
		{"bad timestamp", `dev-1,1,yesterday,POINT(-8.61 41.15)`, "ts"},
		{"bad trace number", `dev-1,one,2024-03-01T08:00:00Z,POINT(-8.61 41.15)`, "trace_number"},
		{"empty device", `,1,2024-03-01T08:00:00Z,POINT(-8.61 41.15)`, "device_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csv := "device_id,trace_number,ts,geom_wkt\n" + tt.row + "\n"
			_, err := ParseTraces(strings.NewReader(csv), "test.csv")

			var malformed *MalformedRecordError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, 2, malformed.Row, "error should name the offending row")
			assert.Equal(t, tt.field, malformed.Field)
		})
	}
}

func TestParseTracesQuotedWKT(t *testing.T) {
	csv := "device_id,trace_number,ts,geom_wkt\n" +
		`dev-1,1,2024-03-01T08:00:00Z,"POINT(-8.61 41.15)"` + "\n"
	traces, err := ParseTraces(strings.NewReader(csv), "test.csv")
	require.NoError(t, err)
	assert.InDelta(t, 41.15, traces[0].Points[0].Latitude, 1e-9)
}

func TestParseTracesMissingColumn(t *testing.T) {
	csv := "device_id,ts,geom_wkt\ndev-1,2024-03-01T08:00:00Z,POINT(-8.61 41.15)\n"
	_, err := ParseTraces(strings.NewReader(csv), "test.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trace_number")
}

func TestParseTracesEmptyInput(t *testing.T) {
	for _, input := range []string{"", "device_id,trace_number,ts,geom_wkt\n"} {
		_, err := ParseTraces(strings.NewReader(input), "empty.csv")
		var empty *EmptyTraceError
		assert.True(t, errors.As(err, &empty), "expected EmptyTraceError, got %v", err)
	}
}
