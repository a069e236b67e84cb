package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"time"

	"strokesense/database"
	"strokesense/docs"
	"strokesense/internal/artifacts"
	"strokesense/internal/cache"
	"strokesense/internal/controllers"
	"strokesense/internal/ingest"
	"strokesense/internal/registry"
	"strokesense/internal/repository"
	"strokesense/internal/services"
	"strokesense/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment as-is")
	}

	// Swagger Documentation
	docs.SwaggerInfo.Title = "Strokesense API"
	docs.SwaggerInfo.Description = "Combined heart-disease and stroke-risk prediction from stored ECG readings and demographic attributes."
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	database.MonitorDBConnections()

	modelDir := os.Getenv("MODEL_DIR")
	if modelDir == "" {
		modelDir = "./models"
	}

	// Pull model artifacts from object storage when a bucket is configured;
	// otherwise MODEL_DIR must already hold them.
	if bucket := os.Getenv("ARTIFACT_BUCKET"); bucket != "" {
		syncer, err := artifacts.NewSyncer(
			os.Getenv("ARTIFACT_ENDPOINT"),
			os.Getenv("ARTIFACT_ACCESS_KEY"),
			os.Getenv("ARTIFACT_SECRET_KEY"),
			bucket,
			os.Getenv("ARTIFACT_SECURE") == "true",
		)
		if err != nil {
			log.Fatalf("Failed to create artifact syncer: %v", err)
		}

		syncCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		if err := syncer.Sync(syncCtx, modelDir); err != nil {
			log.Fatalf("Failed to sync model artifacts: %v", err)
		}
		cancel()
	}

	// A partially loaded registry must never serve.
	reg, err := registry.Load(modelDir)
	if err != nil {
		log.Fatalf("Failed to load model registry: %v", err)
	}
	log.Printf("Model registry loaded: ECG classifier, heart-disease sub-classifier, %d stroke models, feature transformer",
		len(reg.StrokeEnsemble))

	readingRepo := repository.NewReadingRepository(database.DB)
	userRepo := repository.NewUserAttributesRepository(database.DB)
	predictionRepo := repository.NewPredictionRepository(database.DB)

	storeTimeout := services.DefaultStoreTimeout
	if s := os.Getenv("STORE_TIMEOUT_SECONDS"); s != "" {
		if seconds, err := strconv.Atoi(s); err == nil && seconds > 0 {
			storeTimeout = time.Duration(seconds) * time.Second
		}
	}
	orchestrator := services.NewOrchestrator(readingRepo, predictionRepo, reg, storeTimeout)

	var resultCache *cache.RedisClient
	if os.Getenv("REDIS_URL") != "" {
		resultCache, err = cache.NewRedisClient()
		if err != nil {
			log.Printf("Warning: result cache unavailable: %v", err)
		} else {
			defer resultCache.Close()
			log.Println("Result cache connected")
		}
	}

	if broker := os.Getenv("MQTT_BROKER"); broker != "" {
		listener, err := ingest.NewListener(broker, readingRepo)
		if err != nil {
			log.Printf("Warning: MQTT ingest unavailable: %v", err)
		} else {
			defer listener.Close()
		}
	}

	predictionController := controllers.NewPredictionController(orchestrator, userRepo, predictionRepo, resultCache)
	userController := controllers.NewUserController(userRepo)
	readingController := controllers.NewReadingController(readingRepo)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message":       "Strokesense API is running",
			"version":       "1.0.0",
			"status":        "healthy",
			"stroke_models": len(reg.StrokeEnsemble),
			"database":      "PostgreSQL",
		})
	})

	routes.RegisterPredictionRoutes(router, predictionController)
	routes.RegisterUserRoutes(router, userController)
	routes.RegisterReadingRoutes(router, readingController)
	routes.RegisterSwaggerRoutes(router)

	// Debug endpoints
	router.GET("/debug/stats", func(c *gin.Context) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		c.JSON(200, gin.H{
			"goroutines":    runtime.NumGoroutine(),
			"memory_mb":     m.Alloc / 1024 / 1024,
			"stroke_models": len(reg.StrokeEnsemble),
		})
	})

	router.GET("/debug/database", func(c *gin.Context) {
		sqlDB, err := database.DB.DB()
		if err != nil {
			c.JSON(500, gin.H{
				"database_health": false,
				"error":           err.Error(),
			})
			return
		}

		var result int
		row := sqlDB.QueryRowContext(c.Request.Context(), "SELECT 1")
		err = row.Scan(&result)
		c.JSON(200, gin.H{
			"database_health": err == nil && result == 1,
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Printf("API Documentation: http://localhost:%s/swagger/index.html", port)
	log.Printf("Health Check: http://localhost:%s/prediction/health", port)

	server := &http.Server{
		Addr:           ":" + port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	if err := server.ListenAndServe(); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
