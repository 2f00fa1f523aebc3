package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/stopdetect-backend-go/internal/models"
)

func TestAssignSplitsCoversEveryTrace(t *testing.T) {
	var keys []models.TraceKey
	for i := 0; i < 20; i++ {
		keys = append(keys, models.TraceKey{DeviceID: fmt.Sprintf("dev-%d", i%4), TraceNumber: i})
	}

	assignment := AssignSplits(keys, DefaultValFraction, DefaultTestFraction, 42)
	require.Len(t, assignment, len(keys))

	counts := map[string]int{}
	for _, key := range keys {
		split, ok := assignment[key]
		require.True(t, ok, "trace %s has no split", key)
		counts[split]++
	}

	assert.Equal(t, 3, counts[models.SplitTest], "15%% of 20 traces")
	assert.Equal(t, 3, counts[models.SplitVal])
	assert.Equal(t, 14, counts[models.SplitTrain])
}

func TestAssignSplitsDeterministic(t *testing.T) {
	var keys []models.TraceKey
	for i := 0; i < 10; i++ {
		keys = append(keys, models.TraceKey{DeviceID: "dev-1", TraceNumber: i})
	}

	first := AssignSplits(keys, DefaultValFraction, DefaultTestFraction, 42)
	// Same seed and keys in a different order must give the same assignment
	reversed := make([]models.TraceKey, len(keys))
	for i, k := range keys {
		reversed[len(keys)-1-i] = k
	}
	second := AssignSplits(reversed, DefaultValFraction, DefaultTestFraction, 42)

	assert.Equal(t, first, second)
}
