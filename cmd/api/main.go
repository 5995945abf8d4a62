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
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"resumatch/resume-analyzer/internal/config"
	"resumatch/resume-analyzer/internal/handlers"
	"resumatch/resume-analyzer/internal/logger"
	"resumatch/resume-analyzer/internal/repositories"
	"resumatch/resume-analyzer/internal/services"
)

func main() {
	cfg := config.Load()

	zapLogger, err := logger.New(cfg.Server.Env == "production", cfg.Server.Env != "production")
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		zapLogger.Fatal("failed to initialize database", zap.Error(err))
	}

	documentRepo := repositories.NewDocumentRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)

	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.MaxFileSize)
	if err := storageService.EnsureUploadDir(); err != nil {
		zapLogger.Fatal("failed to create upload directory", zap.Error(err))
	}

	generator, embedder, err := services.NewProviders(cfg.LLM)
	if err != nil {
		zapLogger.Fatal("failed to initialize LLM provider", zap.Error(err))
	}
	zapLogger.Info("LLM provider initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.GeminiModel))

	jobIndex, err := services.NewJobIndexService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to initialize qdrant", zap.Error(err))
	}
	if err := jobIndex.InitCollection(); err != nil {
		zapLogger.Fatal("failed to initialize qdrant collection", zap.Error(err))
	}

	similarity := services.NewSimilarityEngine(embedder)
	skillMatcher := services.NewSkillMatcher(generator, zapLogger)
	qualityScorer := services.NewQualityScorer(generator, cfg.Limits, zapLogger)
	suggestionGenerator := services.NewSuggestionGenerator(generator, cfg.Limits, zapLogger)
	verdictComposer := services.NewVerdictComposer(generator, zapLogger)
	aggregator := services.NewScoreAggregator(cfg.Scoring)

	analyzer := services.NewResumeAnalyzer(
		similarity,
		skillMatcher,
		qualityScorer,
		suggestionGenerator,
		verdictComposer,
		aggregator,
		zapLogger,
	)

	pdfParser := services.NewPDFParserService()
	resumeParser := services.NewResumeParser(generator, cfg.LLM.MaxRetries, zapLogger)
	jobParser := services.NewJobParser(generator, cfg.LLM.MaxRetries, zapLogger)

	jobService := services.NewAnalysisJobService(
		analysisRepo,
		documentRepo,
		pdfParser,
		resumeParser,
		jobParser,
		analyzer,
		similarity,
		jobIndex,
		zapLogger,
	)

	worker := services.NewWorker(analysisRepo, jobService, cfg.Worker.Concurrency, zapLogger)
	worker.Start(context.Background())

	analyzeHandler := handlers.NewAnalyzeHandler(analysisRepo, documentRepo, storageService, jobService, worker)
	resultHandler := handlers.NewResultHandler(analysisRepo)
	similarHandler := handlers.NewSimilarJobsHandler(similarity, jobIndex)

	app := fiber.New(fiber.Config{
		AppName:      "Resume Analyzer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Get("/config", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"llm_provider":    cfg.LLM.Provider,
			"llm_model":       cfg.LLM.GeminiModel,
			"embedding_model": cfg.LLM.EmbedModel,
			"weights": fiber.Map{
				"skills_match":        cfg.Scoring.WeightSkillsMatch,
				"experience_relevance": cfg.Scoring.WeightExperienceRelevance,
				"semantic_similarity": cfg.Scoring.WeightSemanticSimilarity,
				"resume_quality":      cfg.Scoring.WeightResumeQuality,
			},
		})
	})

	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Post("/analyze-text", analyzeHandler.HandleAnalyzeText)
	api.Get("/result/:id", resultHandler.HandleGetResult)
	api.Get("/jobs/similar", similarHandler.HandleSimilarJobs)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Analyzer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/analyze",
				"POST /api/v1/analyze-text",
				"GET /api/v1/result/:id",
				"GET /api/v1/jobs/similar",
				"GET /api/v1/health",
				"GET /api/v1/config",
			},
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zapLogger.Info("shutting down server")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			zapLogger.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zapLogger.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zapLogger.Fatal("failed to start server", zap.Error(err))
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
