package pipeline

import (
	"math/rand"
	"sort"

	"github.com/jengzang/stopdetect-backend-go/internal/models"
)

// Default split fractions; the remainder goes to TRAIN
const (
	DefaultValFraction  = 0.15
	DefaultTestFraction = 0.15
)

// AssignSplits partitions whole traces into train/val/test so that no trace
// straddles two splits -- points of one trace are heavily correlated and
// splitting within a trace would inflate evaluation scores. The shuffle is
// seeded, so the same trace set always maps to the same assignment.
func AssignSplits(keys []models.TraceKey, valFraction, testFraction float64, seed int64) map[models.TraceKey]string {
	shuffled := make([]models.TraceKey, len(keys))
	copy(shuffled, keys)
	sort.Slice(shuffled, func(i, j int) bool {
		if shuffled[i].DeviceID != shuffled[j].DeviceID {
			return shuffled[i].DeviceID < shuffled[j].DeviceID
		}
		return shuffled[i].TraceNumber < shuffled[j].TraceNumber
	})

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := len(shuffled)
	testCount := int(float64(n) * testFraction)
	valCount := int(float64(n) * valFraction)

	assignment := make(map[models.TraceKey]string, n)
	for i, key := range shuffled {
		switch {
		case i < testCount:
			assignment[key] = models.SplitTest
		case i < testCount+valCount:
			assignment[key] = models.SplitVal
		default:
			assignment[key] = models.SplitTrain
		}
	}
	return assignment
}
