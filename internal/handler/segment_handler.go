package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/stopdetect-backend-go/internal/models"
	"github.com/jengzang/stopdetect-backend-go/internal/service"
	"github.com/jengzang/stopdetect-backend-go/pkg/response"
)

// SegmentHandler handles HTTP requests for stop segments
type SegmentHandler struct {
	service *service.SegmentService
}

// NewSegmentHandler creates a new segment handler
func NewSegmentHandler(service *service.SegmentService) *SegmentHandler {
	return &SegmentHandler{service: service}
}

// GetSegments handles GET /api/v1/segments
func (h *SegmentHandler) GetSegments(c *gin.Context) {
	var filter models.SegmentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	segments, total, err := h.service.GetSegments(filter)
	if err != nil {
		response.InternalError(c, "Failed to get stop segments")
		return
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}

	response.Success(c, models.SegmentsResponse{
		Data:       segments,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	})
}

// GetDurationSummary handles GET /api/v1/segments/summary
func (h *SegmentHandler) GetDurationSummary(c *gin.Context) {
	var filter models.SegmentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	summary, err := h.service.GetDurationSummary(filter)
	if err != nil {
		response.InternalError(c, "Failed to summarize segment durations")
		return
	}

	response.Success(c, summary)
}
