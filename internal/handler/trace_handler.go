package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/stopdetect-backend-go/internal/service"
	"github.com/jengzang/stopdetect-backend-go/pkg/response"
)

// TraceHandler handles HTTP requests for per-trace prediction sequences
type TraceHandler struct {
	service *service.DetectionService
}

// NewTraceHandler creates a new trace handler
func NewTraceHandler(service *service.DetectionService) *TraceHandler {
	return &TraceHandler{service: service}
}

// GetPredictions handles GET /api/v1/traces/:device/:trace/predictions
// Returns the stored per-point sequence for path rendering.
func (h *TraceHandler) GetPredictions(c *gin.Context) {
	deviceID := c.Param("device")
	traceStr := c.Param("trace")

	traceNumber, err := strconv.Atoi(traceStr)
	if err != nil {
		response.BadRequest(c, "Invalid trace number")
		return
	}

	points, err := h.service.GetPredictions(deviceID, traceNumber)
	if err != nil {
		response.InternalError(c, "Failed to get trace predictions")
		return
	}
	if len(points) == 0 {
		response.NotFound(c, "Trace not found")
		return
	}

	response.Success(c, points)
}
