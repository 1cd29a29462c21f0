package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"sdgeval/proposal-evaluator/internal/config"
	"sdgeval/proposal-evaluator/internal/handlers"
	"sdgeval/proposal-evaluator/internal/repositories"
	"sdgeval/proposal-evaluator/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	if cfg.ChatGen.APIKey == "" && cfg.Evaluation.Provider == "chatgen" {
		log.Println("⚠️  CHATGEN_API_KEY is not set; evaluations will fail to authenticate")
	}

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initializes repositories
	docRepo := repositories.NewDocumentRepository(db)
	evalRepo := repositories.NewEvaluationRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	// Extraction cache is optional: without redis, every extraction is
	// done from scratch.
	var extractionCache services.ExtractionCache
	if cfg.Redis.Addr != "" {
		extractionCache, err = services.NewRedisExtractionCache(
			cfg.Redis.Addr,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.CacheTTL,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize extraction cache: %v", err)
		}
		defer extractionCache.Close()
		log.Println("✅ Redis extraction cache initialized")
	} else {
		extractionCache = services.NewNoopExtractionCache()
		log.Println("ℹ️  No REDIS_ADDR configured, extraction cache disabled")
	}

	extractor := services.NewTextExtractor(extractionCache)
	log.Println("✅ Services initialized successfully")

	// Gemini doubles as the embedding provider for reference retrieval, so
	// initialize it whenever a key is present.
	var geminiService services.GeminiService
	if cfg.Gemini.APIKey != "" {
		geminiService, err = services.NewGeminiService(cfg.Gemini.APIKey)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini: %v", err)
		}
		log.Println("✅ Gemini initialized successfully")
	}

	// Pick the completion provider
	var completionModel services.CompletionClient
	switch strings.ToLower(cfg.Evaluation.Provider) {
	case "gemini":
		if geminiService == nil {
			log.Fatalf("❌ LLM_PROVIDER=gemini requires GEMINI_API_KEY")
		}
		completionModel = geminiService
	default:
		completionModel = services.NewChatGenService(
			cfg.ChatGen.APIKey,
			cfg.ChatGen.BaseURL,
			cfg.ChatGen.Model,
		)
	}
	log.Printf("✅ Completion provider: %s\n", cfg.Evaluation.Provider)

	// Initialize Qdrant (optional, powers SDG reference retrieval)
	var qdrantService services.QdrantService
	if cfg.Qdrant.URL != "" {
		qdrantService, err = services.NewQdrantService(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}

		if err := qdrantService.InitCollection(); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		log.Println("✅ Qdrant initialized successfully")
	} else {
		log.Println("ℹ️  No QDRANT_URL configured, reference retrieval disabled")
	}

	// Initialize evaluator
	evaluatorService := services.NewEvaluatorService(
		evalRepo,
		docRepo,
		extractor,
		completionModel,
		geminiService,
		qdrantService,
		cfg.Evaluation.Language,
	)
	log.Println("✅ Evaluator service initialized")

	// Initialize worker
	worker := services.NewWorker(
		evalRepo,
		evaluatorService,
		cfg.Worker.Concurrency,
	)

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize Handlers
	uploadHandler := handlers.NewUploadHandler(
		docRepo,
		storageService,
		cfg.Storage.MaxFileSize,
	)
	previewHandler := handlers.NewPreviewHandler(docRepo, extractor)
	evaluateHandler := handlers.NewEvaluationHandler(
		evalRepo,
		docRepo,
		worker,
		cfg.Evaluation.Language,
	)
	resultHandler := handlers.NewResultHandler(evalRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "SDG Proposal Evaluator API",
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
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/upload", uploadHandler.HandleUpload)
	api.Get("/documents/:id/preview", previewHandler.HandlePreview)
	api.Post("/evaluate", evaluateHandler.HandleEvaluate)
	api.Get("/result/:id", resultHandler.HandleGetResult)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "SDG Proposal Evaluator API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/upload",
				"GET /api/v1/documents/:id/preview",
				"POST /api/v1/evaluate",
				"GET /api/v1/result/:id",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
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
