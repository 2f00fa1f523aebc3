package main

import (
	"log"

	"github.com/jengzang/stopdetect-backend-go/internal/api"
	"github.com/jengzang/stopdetect-backend-go/internal/classifier"
	"github.com/jengzang/stopdetect-backend-go/internal/config"
	"github.com/jengzang/stopdetect-backend-go/internal/database"
	"github.com/jengzang/stopdetect-backend-go/internal/repository"
	"github.com/jengzang/stopdetect-backend-go/internal/service"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化数据库
	dbConfig := database.Config{
		Path: cfg.DBPath,
	}
	if err := database.Init(dbConfig); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	// 加载分类器模型（特征契约不匹配时直接失败）
	adapter, err := classifier.LoadModel(cfg.ModelPath)
	if err != nil {
		log.Fatal("Failed to load classifier model:", err)
	}

	db := database.GetDB()
	traceRepo := repository.NewTraceRepository(db)
	segmentRepo := repository.NewSegmentRepository(db)
	datasetRepo := repository.NewDatasetRepository(db)

	services := api.Services{
		Detection: service.NewDetectionService(adapter, cfg.Workers, traceRepo, segmentRepo),
		Segments:  service.NewSegmentService(segmentRepo),
		Datasets:  service.NewDatasetService(datasetRepo),
		Models:    service.NewModelService(adapter, datasetRepo),
	}

	// 初始化路由
	router := api.SetupRouter(cfg, services)

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
