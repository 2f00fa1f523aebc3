package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/stopdetect-backend-go/internal/config"
	"github.com/jengzang/stopdetect-backend-go/internal/handler"
	"github.com/jengzang/stopdetect-backend-go/internal/middleware"
	"github.com/jengzang/stopdetect-backend-go/internal/service"
)

// Services groups everything the router wires into handlers
type Services struct {
	Detection *service.DetectionService
	Segments  *service.SegmentService
	Datasets  *service.DatasetService
	Models    *service.ModelService
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, svc Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Stop Detection API is running",
		})
	})

	uploadHandler := handler.NewUploadHandler(svc.Detection, cfg.MaxUploadSize)
	segmentHandler := handler.NewSegmentHandler(svc.Segments)
	traceHandler := handler.NewTraceHandler(svc.Detection)
	datasetHandler := handler.NewDatasetHandler(svc.Datasets, cfg.MaxUploadSize)
	modelHandler := handler.NewModelHandler(svc.Models)

	// API 路由组
	api := r.Group("/api/v1")
	{
		// 上传与检测接口
		uploads := api.Group("/uploads")
		uploads.Use(middleware.RateLimit(10, time.Minute))
		{
			uploads.POST("", uploadHandler.Upload)
		}

		// 停留段查询接口
		segments := api.Group("/segments")
		{
			segments.GET("", segmentHandler.GetSegments)
			segments.GET("/summary", segmentHandler.GetDurationSummary)
		}

		// 轨迹预测序列接口
		traces := api.Group("/traces")
		{
			traces.GET("/:device/:trace/predictions", traceHandler.GetPredictions)
		}

		// 数据集准备接口（需要认证）
		datasets := api.Group("/datasets")
		datasets.Use(middleware.Auth(cfg.JWTSecret))
		{
			datasets.POST("", datasetHandler.BuildDataset)
		}

		// 模型信息与评估接口
		models := api.Group("/models")
		{
			models.GET("/current", modelHandler.GetModel)
			models.GET("/current/evaluation", middleware.Auth(cfg.JWTSecret), modelHandler.Evaluate)
		}
	}

	return r
}
