package config

import (
	"os"
	"runtime"
	"strconv"
)

// Config 应用配置
type Config struct {
	Port          string
	DBPath        string
	ModelPath     string
	JWTSecret     string
	MaxUploadSize int64 // 单个上传文件的最大字节数
	Workers       int   // 批处理 worker 数量
}

// Load 加载配置
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/stops/stops.db"
	}

	modelPath := os.Getenv("MODEL_PATH")
	if modelPath == "" {
		modelPath = "./models/stop_model_rfc.json"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	workers := runtime.NumCPU()
	if v := os.Getenv("BATCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			workers = n
		}
	}

	return &Config{
		Port:          port,
		DBPath:        dbPath,
		ModelPath:     modelPath,
		JWTSecret:     jwtSecret,
		MaxUploadSize: 50 * 1024 * 1024, // 50MB 单文件上限
		Workers:       workers,
	}
}
