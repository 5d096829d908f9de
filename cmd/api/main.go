package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"codequest/resume-validator/internal/config"
	"codequest/resume-validator/internal/handlers"
	"codequest/resume-validator/internal/repositories"
	"codequest/resume-validator/internal/services"
)

func main() {
	// Load configuration once; every component receives it explicitly.
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize Redis (job queue broker)
	ctx := context.Background()
	redisClient, err := config.InitRedis(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Redis: %v", err)
	}
	log.Println("✅ Redis connected successfully")

	// Initialize repositories
	regRepo := repositories.NewRegistrationRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Server.BaseURL)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractor := services.NewTextExtractor()
	classifier := services.NewClassifierService(cfg.Ollama.Host, cfg.Ollama.Model, cfg.Ollama.Timeout)
	validator := services.NewValidatorService(regRepo, extractor, classifier)

	queue := services.NewValidationQueue(redisClient, cfg.Worker.ReceiveTimeout, cfg.Worker.MaxDeliveries)
	log.Println("✅ Services initialized successfully")

	mailer, err := services.NewMailerService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize mailer: %v", err)
	}

	// Start worker
	worker := services.NewWorker(queue, validator, cfg.Worker.Concurrency)
	worker.Start(ctx)

	// Start reconciliation reaper
	reaper := services.NewReaper(regRepo, cfg.Reaper.Interval, cfg.Reaper.MaxAge, cfg.Reaper.Batch)
	reaper.Start(ctx)

	// Initialize handlers
	validationHandler := handlers.NewValidationHandler(queue, regRepo)
	uploadHandler := handlers.NewUploadHandler(
		regRepo,
		storageService,
		queue,
		cfg.Storage.MaxFileSize,
		cfg.Validation.MaxUploadAttempts,
	)
	registrationHandler := handlers.NewRegistrationHandler(regRepo)
	emailHandler := handlers.NewEmailHandler(mailer)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Validation API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/queue-validation", validationHandler.HandleQueueValidation)
	api.Post("/upload", uploadHandler.HandleUpload)
	api.Get("/registrations/:id", registrationHandler.HandleGetStatus)
	api.Post("/send-approval-email", emailHandler.HandleSendApprovalEmail)

	// Uploaded resumes are served back so the worker can fetch them by URL.
	app.Static("/uploads", cfg.Storage.UploadPath)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		reaper.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
