package main

import (
	"context"
	"database/sql"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/madson-lima/totalfilter-backend/internal/application"
	"github.com/madson-lima/totalfilter-backend/internal/config"
	"github.com/madson-lima/totalfilter-backend/internal/email"
	"github.com/madson-lima/totalfilter-backend/internal/infrastructure/repository"
	handlers "github.com/madson-lima/totalfilter-backend/internal/interfaces/http"
	"github.com/madson-lima/totalfilter-backend/internal/scheduler"
	services "github.com/madson-lima/totalfilter-backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Sync()

	db, err := sql.Open("postgres", cfg.GetDBConnString())
	if err != nil {
		logger.Fatal("Error connecting to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("Error pinging database", zap.Error(err))
	}

	// Body limit above the 5 MiB upload cap so the handler, not the
	// framework, rejects oversized images with a clear message.
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})

	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Requested-With",
		MaxAge:       86400,
	}))
	app.Use(handlers.NewMetricsMiddleware())

	limiter := application.NewRateLimiter(cfg.RateLimitWindow, cfg.RateLimitMax)
	app.Use(handlers.NewRateLimitMiddleware(limiter))

	requireAuth := handlers.NewAuthMiddleware([]byte(cfg.JWTSecret))

	// Storage (uploads + asset existence checks)
	storageService, err := services.NewStorageService(context.Background(), cfg.AWSRegion, cfg.S3Bucket)
	if err != nil {
		logger.Fatal("Error initializing S3 storage", zap.Error(err))
	}
	uploadHandler := handlers.NewUploadHandler(storageService, logger)

	// Carousel
	carouselRepo := repository.NewCarouselRepository(db)
	listCache := application.NewListCache(cfg.CarouselCacheTTL)
	carouselService := application.NewCarouselService(carouselRepo, storageService, listCache, logger)
	carouselHandler := handlers.NewCarouselHandler(carouselService, logger)

	// Email client
	emailClient, err := email.NewClient(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.SMTPFromName,
		cfg.SMTPFromEmail,
	)
	if err != nil {
		logger.Warn("Email client initialization failed, notifications disabled", zap.Error(err))
		emailClient = nil
	}

	// Contact
	contactRepo := repository.NewContactRepository(db)
	contactService := application.NewContactService(contactRepo, emailClient, cfg.ContactEmail, logger)
	contactHandler := handlers.NewContactHandler(contactService, logger)

	// Health
	healthHandler := handlers.NewHealthHandler(db, logger)

	app.Get("/health", healthHandler.Check)
	app.Get("/metrics", handlers.NewMetricsHandler())
	app.Static("/imagens", "./public/imagens")

	api := app.Group("/api")

	carousel := api.Group("/carousel")
	carousel.Get("/", carouselHandler.GetImages)
	carousel.Post("/", requireAuth, carouselHandler.AddImage)
	carousel.Post("/reorder", requireAuth, carouselHandler.Reorder)
	carousel.Delete("/:id", requireAuth, carouselHandler.DeleteImage)

	upload := api.Group("/upload")
	upload.Post("/imagens", requireAuth, uploadHandler.HandleUploadImage)

	contact := api.Group("/contact")
	contact.Post("/", contactHandler.Create)
	contact.Get("/", requireAuth, contactHandler.List)
	contact.Patch("/:id/estado", requireAuth, contactHandler.UpdateStatus)

	repairScheduler := scheduler.NewCarouselScheduler(carouselService, cfg.CarouselRepairInterval, logger)
	repairScheduler.Start()
	defer repairScheduler.Stop()

	logger.Info("Server starting", zap.String("port", cfg.ServerPort))
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logger.Fatal("Error starting server", zap.Error(err))
	}
}
