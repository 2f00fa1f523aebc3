package batch

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/jengzang/stopdetect-backend-go/internal/classifier"
	"github.com/jengzang/stopdetect-backend-go/internal/models"
	"github.com/jengzang/stopdetect-backend-go/internal/pipeline"
)

// Runner fans traces out over a fixed worker pool. Traces are independent
// units of work with no shared mutable state, so the only synchronization is
// the task and result channels; a failing trace is recorded as a failed
// result and never aborts its siblings.
type Runner struct {
	predictor classifier.Predictor
	workers   int
}

// NewRunner creates a runner with the given pool size
func NewRunner(predictor classifier.Predictor, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{predictor: predictor, workers: workers}
}

// Run processes every trace through feature building, prediction and segment
// aggregation, and returns one result per trace in the input order. Context
// cancellation stops dispatching new traces; already-dispatched traces finish.
func (r *Runner) Run(ctx context.Context, traces []models.Trace) []models.TraceResult {
	tasks := make(chan int)
	results := make(chan models.TraceResult, len(traces))

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range tasks {
				results <- r.processTrace(ctx, traces[idx])
			}
		}()
	}

	dispatched := 0
dispatch:
	for idx := range traces {
		select {
		case <-ctx.Done():
			break dispatch
		case tasks <- idx:
			dispatched++
		}
	}
	close(tasks)
	wg.Wait()
	close(results)

	collected := make([]models.TraceResult, 0, dispatched)
	for res := range results {
		collected = append(collected, res)
	}
	sort.SliceStable(collected, func(i, j int) bool {
		if collected[i].Key.DeviceID != collected[j].Key.DeviceID {
			return collected[i].Key.DeviceID < collected[j].Key.DeviceID
		}
		return collected[i].Key.TraceNumber < collected[j].Key.TraceNumber
	})
	return collected
}

// processTrace runs the full per-trace pipeline
func (r *Runner) processTrace(ctx context.Context, trace models.Trace) models.TraceResult {
	result := models.TraceResult{
		Key:        trace.Key,
		PointCount: trace.Len(),
	}

	records, err := pipeline.BuildFeatures(trace)
	if err != nil {
		log.Printf("[Batch] Trace %s failed: %v", trace.Key, err)
		result.Status = models.TraceStatusFailed
		result.Error = err.Error()
		return result
	}

	// Single-point traces have no feature records: no predictions, no
	// segments, still a success.
	var preds []models.Prediction
	if len(records) > 0 {
		preds, err = r.predictor.Predict(ctx, records)
		if err != nil {
			log.Printf("[Batch] Trace %s prediction failed: %v", trace.Key, err)
			result.Status = models.TraceStatusFailed
			result.Error = err.Error()
			return result
		}
	}

	points := classifier.PointSequence(trace, preds)
	result.Status = models.TraceStatusOK
	result.Predictions = points
	result.Segments = pipeline.AggregateSegments(points)
	return result
}
