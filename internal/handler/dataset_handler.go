package handler

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/stopdetect-backend-go/internal/pipeline"
	"github.com/jengzang/stopdetect-backend-go/internal/service"
	"github.com/jengzang/stopdetect-backend-go/pkg/response"
)

// DatasetHandler handles HTTP requests for dataset preparation
type DatasetHandler struct {
	service       *service.DatasetService
	maxUploadSize int64
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(service *service.DatasetService, maxUploadSize int64) *DatasetHandler {
	return &DatasetHandler{service: service, maxUploadSize: maxUploadSize}
}

// BuildDataset handles POST /api/v1/datasets
// Labels an uploaded file with the stationary-duration rule and stores the
// records with their train/val/test split.
func (h *DatasetHandler) BuildDataset(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Missing upload file")
		return
	}

	if fileHeader.Size > h.maxUploadSize {
		response.BadRequest(c, "File too large")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != "" && !allowedExtensions[ext] {
		response.BadRequest(c, "Unsupported file type "+ext)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, "Failed to open upload")
		return
	}
	defer file.Close()

	report, err := h.service.BuildDataset(file, fileHeader.Filename)
	if err != nil {
		var malformed *pipeline.MalformedRecordError
		var empty *pipeline.EmptyTraceError
		switch {
		case errors.As(err, &malformed):
			response.UnprocessableEntity(c, err.Error())
		case errors.As(err, &empty):
			response.UnprocessableEntity(c, err.Error())
		default:
			response.InternalError(c, "Failed to build dataset: "+err.Error())
		}
		return
	}

	response.Success(c, report)
}
