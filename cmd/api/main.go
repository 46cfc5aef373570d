// @title QuizForge API
// @version 1.0
// @description LLM-backed quiz generation and tutoring chat service.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quizforge/internal/cache"
	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/handler"
	"quizforge/internal/logger"
	"quizforge/internal/middleware"
	"quizforge/internal/normalizer"
	"quizforge/internal/orchestrator"
	"quizforge/internal/provider"
	"quizforge/internal/ratelimit"
	"quizforge/internal/registry"
	"quizforge/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
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

	// Redis is optional: without it every request hits the providers.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Warn("Redis unavailable, continuing without quiz cache", zap.Error(err))
		} else {
			cacheAdapter = cache.NewRedisCacheAdapter(redisClient)
			appLogger.Info("Successfully connected to Redis")
		}
	}

	// Provider enrollment is fixed at startup from configured credentials.
	reg := registry.Build(cfg, appLogger)
	providers, err := provider.Build(reg.Enrolled(), cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to build providers", zap.Error(err))
	}

	limiters := make(map[string]*ratelimit.Limiter, len(providers))
	for name := range providers {
		desc, ok := reg.Descriptor(name)
		if !ok {
			continue
		}
		limiters[name] = ratelimit.New(name, desc.RateLimit)
	}

	norm := normalizer.New(cfg.Validation.Strict, appLogger)
	orch := orchestrator.New(reg, providers, limiters, norm, cfg.LLM.EnableFallback, appLogger)

	quizService := service.NewQuizService(orch, cacheAdapter, cfg)
	chatService := service.NewChatService(orch)

	quizHandler := handler.NewQuizHandler(quizService)
	chatHandler := handler.NewChatHandler(chatService)
	healthHandler := handler.NewHealthHandler(cacheAdapter, reg)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/healthz", healthHandler.Health)

	vm := middleware.NewValidationMiddleware()
	apiGroup := app.Group("/api")
	apiGroup.Post("/quizzes/generate", vm.ValidateGenerateQuizRequest(), quizHandler.GenerateQuiz)
	apiGroup.Post("/chat", vm.ValidateChatRequest(), chatHandler.Chat)

	go func() {
		appLogger.Info("Starting server",
			zap.Int("port", cfg.Server.Port),
			zap.Strings("providers", reg.Enrolled()),
			zap.Bool("fallback", cfg.LLM.EnableFallback))
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
