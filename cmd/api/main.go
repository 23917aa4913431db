// @title Career Quiz Scoring API
// @version 1.0
// @description Scores career-orientation quiz attempts into trait scores and profession recommendations.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "career-quiz/cmd/api/docs"
	"career-quiz/internal/adapter"
	"career-quiz/internal/adapter/llm"
	"career-quiz/internal/adapter/mlclient"
	"career-quiz/internal/cache"
	"career-quiz/internal/config"
	"career-quiz/internal/database"
	"career-quiz/internal/domain"
	"career-quiz/internal/handler"
	"career-quiz/internal/logger"
	"career-quiz/internal/metrics"
	"career-quiz/internal/middleware"
	"career-quiz/internal/repository"
	"career-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	metricsManager := metrics.NewManager()

	// Repositories
	answerRepository := repository.NewSQLXAnswerRepository(db)
	attemptRepository := repository.NewSQLXAttemptRepository(db)
	traitRepository := repository.NewSQLXTraitRepository(db)
	traitWeightRepository := repository.NewSQLXTraitWeightRepository(db)
	professionRepository := repository.NewSQLXProfessionRepository(db)

	// Outbound clients
	classifier := mlclient.NewClient(cfg.ML.BaseURL, cfg.ML.Timeout)
	transport, err := llm.NewTransportFromConfig(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create LLM transport", zap.Error(err))
	}
	appLogger.Info("Outbound clients initialized",
		zap.String("ml_base_url", cfg.ML.BaseURL),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("llm_model", cfg.LLM.Model))

	// Engines
	mapper := service.NewMLResultMapper(professionRepository, metricsManager)
	if cfg.Scoring.EnrichExplanations {
		mapper = service.NewEnrichedMLResultMapper(professionRepository, service.NewLLMExplanationGenerator(transport), metricsManager)
		appLogger.Info("ML explanations will be enriched by the LLM")
	}
	mlEngine := service.NewMLScoringEngine(answerRepository, service.NewTraitScoreCalculator(traitWeightRepository), classifier, mapper)
	llmEngine := service.NewLLMScoringEngine(answerRepository, traitRepository, professionRepository, transport, metricsManager)
	factory := service.NewScoringEngineFactory(domain.NormalizeProcessingMode(cfg.Scoring.MLMode), mlEngine, llmEngine)

	resultCache := service.NewResultCacheService(cacheAdapter, cfg.Scoring.ResultTTL, metricsManager)
	evaluationService := service.NewEvaluationService(attemptRepository, factory, resultCache, metricsManager)

	scoringHandler := handler.NewScoringHandler(evaluationService)
	healthHandler := handler.NewHealthHandler(map[string]handler.Pinger{
		"database": db,
		"cache":    handler.PingerFunc(cacheAdapter.Ping),
	})
	validationMiddleware := middleware.NewValidationMiddleware()

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", metricsManager.Handler())
	app.Get("/health", healthHandler.Health)

	apiGroup := app.Group("/api")
	scoringGroup := apiGroup.Group("/scoring")
	if cfg.Auth.JWTSecret != "" {
		scoringGroup.Use(middleware.Protected(middleware.NewTokenVerifier(cfg.Auth.JWTSecret)))
	} else {
		appLogger.Warn("auth.jwt_secret is empty; scoring endpoints are unauthenticated")
	}
	scoringGroup.Post("/attempts/:attemptId/evaluate", validationMiddleware.ValidateAttemptID(), scoringHandler.EvaluateAttempt)
	scoringGroup.Post("/evaluate", scoringHandler.EvaluateRaw)
	scoringGroup.Get("/results/:resultId", validationMiddleware.ValidateResultID(), scoringHandler.GetResult)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
