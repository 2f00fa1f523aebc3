package service

import (
	"github.com/jengzang/stopdetect-backend-go/internal/models"
	"github.com/jengzang/stopdetect-backend-go/internal/repository"
	"github.com/jengzang/stopdetect-backend-go/internal/stats"
)

// SegmentService handles business logic for stop segments
type SegmentService struct {
	repo *repository.SegmentRepository
}

// NewSegmentService creates a new segment service
func NewSegmentService(repo *repository.SegmentRepository) *SegmentService {
	return &SegmentService{repo: repo}
}

// GetSegments retrieves stop segments with filtering and pagination
func (s *SegmentService) GetSegments(filter models.SegmentFilter) ([]models.StopSegment, int64, error) {
	return s.repo.GetSegments(filter)
}

// GetDurationSummary computes distribution statistics over matching segment
// durations
func (s *SegmentService) GetDurationSummary(filter models.SegmentFilter) (stats.DurationSummary, error) {
	durations, err := s.repo.GetDurations(filter)
	if err != nil {
		return stats.DurationSummary{}, err
	}
	return stats.SummarizeDurations(durations), nil
}
