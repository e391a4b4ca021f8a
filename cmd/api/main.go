package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/arabianblog/backend/internal/config"
	"github.com/arabianblog/backend/internal/handlers"
	"github.com/arabianblog/backend/internal/intake"
	"github.com/arabianblog/backend/internal/middleware"
	"github.com/arabianblog/backend/internal/models"
	"github.com/arabianblog/backend/internal/pkg/audio"
	"github.com/arabianblog/backend/internal/repository/postgres"
	"github.com/arabianblog/backend/internal/services"
	"github.com/arabianblog/backend/internal/storage"
	memorystore "github.com/arabianblog/backend/internal/storage/memory"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.New()

	// Initialize database
	db, err := models.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Run migrations
	if err := models.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis
	redisClient := models.InitRedis(cfg)
	defer redisClient.Close()

	// Initialize blob storage
	store, err := buildStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize blob storage: %v", err)
	}

	// Initialize repositories
	accountRepo := postgres.NewAccountRepository(db)
	mediaRepo := postgres.NewMediaRepository(db)
	articleRepo := postgres.NewArticleRepository(db)

	// Initialize services
	authService := services.NewAuthService(accountRepo, cfg)
	adminService := services.NewAdminService(accountRepo, cfg)
	mediaService := services.NewMediaService(mediaRepo, store)
	if audio.Available() {
		mediaService.WithDurationProbe(func(ctx context.Context, audioData []byte) (int, error) {
			return audio.ProbeDuration(ctx, audioData, ".mp3")
		})
	} else {
		log.Println("WARN: ffprobe not found, track durations rely on the upload form")
	}
	articleService := services.NewArticleService(articleRepo, store)

	if err := authService.EnsureDefaultAdmin(context.Background()); err != nil {
		log.Fatalf("Failed to ensure default admin: %v", err)
	}

	// Initialize upload intake
	uploads := intake.New(cfg.UploadMaxMediaSize, cfg.UploadMaxImageSize)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(adminService)
	mediaHandler := handlers.NewMediaHandler(mediaService, uploads)
	newsHandler := handlers.NewNewsHandler(articleService, uploads)

	// Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.RateLimiter(redisClient, cfg))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Locally stored blobs are served straight from the upload dir
	if cfg.StorageDriver == "local" {
		router.Static("/api/files", cfg.UploadDir)
	}

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		news := api.Group("/news")
		{
			news.GET("", newsHandler.List)
			news.GET("/:id", newsHandler.Get)

			protected := news.Group("")
			protected.Use(middleware.Auth(authService))
			protected.Use(middleware.UploadRateLimit(redisClient, cfg))
			{
				protected.POST("", newsHandler.Create)
				protected.PUT("/:id", newsHandler.Update)
				protected.DELETE("/:id", newsHandler.Delete)
			}
		}

		media := api.Group("/media")
		{
			media.GET("", mediaHandler.List)
			media.GET("/download/:id", mediaHandler.Download)

			protected := media.Group("")
			protected.Use(middleware.Auth(authService))
			protected.Use(middleware.UploadRateLimit(redisClient, cfg))
			{
				protected.POST("", mediaHandler.Upload)
				protected.PUT("/:id", mediaHandler.Update)
				protected.DELETE("/:id", mediaHandler.Delete)
			}
		}

		admins := api.Group("/admins")
		admins.Use(middleware.Auth(authService))
		{
			admins.GET("", adminHandler.List)
			admins.POST("", adminHandler.Create)
			admins.DELETE("/:id", adminHandler.Delete)
		}
	}

	// Setup server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  120 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s (storage driver: %s)", cfg.Port, cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// buildStore selects the blob backend once at startup
func buildStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case "s3":
		return storage.NewS3Store(cfg)
	case "memory":
		log.Println("WARN: memory storage driver selected, blobs will not survive a restart")
		return memorystore.New(), nil
	default:
		return storage.NewLocalStore(cfg.UploadDir, cfg.APIUrl)
	}
}
