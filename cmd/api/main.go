package main

import (
	"log"
	"log/slog"
	"os"
	"strconv"

	"promptsep/db"
	"promptsep/internal/handler"
	"promptsep/internal/metrics"
	"promptsep/internal/repository"
	"promptsep/pkg/llm"
	"promptsep/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {

	godotenv.Load()

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("error applying schema: %v", err)
	}

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	separator, err := llm.NewFromEnv()
	if err != nil {
		log.Fatalf("error configuring LLM provider: %v", err)
	}

	separationRepo := repository.NewSeparationRepository(db.DB)
	batchRepo := repository.NewBatchRepository(db.DB)

	separateHandler := handler.NewSeparateHandler(separator, separationRepo, envInt("MAX_INPUT_CHARS", 50000))
	historyHandler := handler.NewHistoryHandler(separationRepo)
	batchHandler := handler.NewBatchHandler(batchRepo, db.NewBatchQueue(), envInt("MAX_BATCH_ROWS", 500))

	r := gin.Default()
	r.Use(metrics.Middleware())

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	web.Register(r)

	r.POST("/api/separate", separateHandler.Separate)
	r.GET("/api/history", historyHandler.GetHistory)
	r.DELETE("/api/history", historyHandler.ClearHistory)
	r.POST("/api/batches", batchHandler.CreateBatch)
	r.GET("/api/batches/:id", batchHandler.GetBatch)
	r.GET("/api/batches/:id/download", batchHandler.DownloadBatch)
	r.GET("/health", historyHandler.GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	err = r.Run(":" + port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

func envInt(name string, defaultValue int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid env value, using default", "name", name, "value", raw, "default", defaultValue)
		return defaultValue
	}
	return value
}
