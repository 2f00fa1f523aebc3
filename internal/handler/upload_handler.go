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

// Accepted upload extensions. CSV is the canonical format; txt shows up when
// exports get renamed by mail clients.
var allowedExtensions = map[string]bool{
	".csv": true,
	".txt": true,
}

// UploadHandler handles HTTP requests for GPS trace uploads
type UploadHandler struct {
	service       *service.DetectionService
	maxUploadSize int64
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(service *service.DetectionService, maxUploadSize int64) *UploadHandler {
	return &UploadHandler{service: service, maxUploadSize: maxUploadSize}
}

// Upload handles POST /api/v1/uploads
// Accepts a multipart CSV file, runs the detection pipeline and returns
// per-trace outcomes.
func (h *UploadHandler) Upload(c *gin.Context) {
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

	summary, err := h.service.ProcessUpload(c.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		var malformed *pipeline.MalformedRecordError
		var empty *pipeline.EmptyTraceError
		switch {
		case errors.As(err, &malformed):
			response.UnprocessableEntity(c, err.Error())
		case errors.As(err, &empty):
			response.UnprocessableEntity(c, err.Error())
		default:
			response.InternalError(c, "Failed to process upload: "+err.Error())
		}
		return
	}

	response.Success(c, summary)
}
