package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/stopdetect-backend-go/internal/models"
	"github.com/jengzang/stopdetect-backend-go/internal/service"
	"github.com/jengzang/stopdetect-backend-go/pkg/response"
)

// ModelHandler handles HTTP requests for classifier artifact info and
// evaluation
type ModelHandler struct {
	service *service.ModelService
}

// NewModelHandler creates a new model handler
func NewModelHandler(service *service.ModelService) *ModelHandler {
	return &ModelHandler{service: service}
}

// GetModel handles GET /api/v1/models/current
func (h *ModelHandler) GetModel(c *gin.Context) {
	response.Success(c, h.service.Info())
}

// Evaluate handles GET /api/v1/models/current/evaluation
// Evaluates the loaded model against a labeled split (default TEST).
func (h *ModelHandler) Evaluate(c *gin.Context) {
	split := strings.ToUpper(c.DefaultQuery("split", models.SplitTest))
	if split != models.SplitTrain && split != models.SplitVal && split != models.SplitTest {
		response.BadRequest(c, "Unknown split "+split)
		return
	}

	report, err := h.service.Evaluate(c.Request.Context(), split)
	if err != nil {
		response.InternalError(c, "Failed to evaluate model: "+err.Error())
		return
	}

	response.Success(c, report)
}
