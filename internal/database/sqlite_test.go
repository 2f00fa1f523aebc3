package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCreatesDataDirectory(t *testing.T) {
	// The default DB path points at a directory that does not exist on a
	// fresh checkout; Init must create it rather than fail to open
	path := filepath.Join(t.TempDir(), "data", "stops", "stops.db")

	require.NoError(t, Init(Config{Path: path}))
	defer Close()

	conn := GetDB()
	require.NotNil(t, conn)
	assert.NoError(t, conn.Ping())

	// The schema is applied as part of Init
	var count int
	require.NoError(t, conn.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'trace_points'").Scan(&count))
	assert.Equal(t, 1, count)
}
