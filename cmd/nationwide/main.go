package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"nationwide/internal/api"
	"nationwide/internal/api/handlers"
	"nationwide/internal/media"
	"nationwide/internal/repository"
	"nationwide/internal/service"
	"nationwide/pkg/auth"
	"nationwide/pkg/config"
	"nationwide/pkg/logger"
	"nationwide/pkg/middleware"

	"go.uber.org/zap"
)

// @title Nationwide API
// @version 1.0
// @description Chat assistant, student achievements and review videos for the Nationwide site

// @contact.name Nationwide

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Nationwide service", zap.String("driver", cfg.Database.Driver), zap.String("media", cfg.Media.Provider))

	// Initialize storage
	ctx := context.Background()
	stores, err := repository.Open(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer stores.Close()

	mediaStore, err := media.New(&cfg.Media, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize media store", zap.Error(err))
	}

	knowledgeRepo := repository.NewKnowledgeRepository(cfg.Knowledge.Path, appLogger)
	if _, err := knowledgeRepo.Get(ctx); err != nil {
		appLogger.Warn("Knowledge base is not readable, chat will report a configuration issue", zap.Error(err))
	}
	if cfg.Gemini.APIKey == "" {
		appLogger.Warn("GOOGLE_API_KEY is not set, chat will report the service as unavailable")
	}
	if cfg.Admin.PasswordHash == "" {
		appLogger.Warn("ADMIN_PASSWORD_HASH is not set, admin login is disabled")
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.Admin.JWTSecret, cfg.Admin.TokenExp, cfg.Admin.RefreshExp)

	// Initialize services
	llmService := service.NewLLMService(&cfg.Gemini, nil, appLogger)
	chatService := service.NewChatService(knowledgeRepo, llmService, &cfg.Gemini, appLogger)
	authService := service.NewAuthService(&cfg.Admin, jwtManager, appLogger)
	achievementService := service.NewAchievementService(stores.Achievements, mediaStore, appLogger)
	videoService := service.NewVideoService(stores.Videos, mediaStore, appLogger)

	// Initialize handlers
	h := api.Handlers{
		Auth:         handlers.NewAuthHandler(authService, appLogger),
		Chat:         handlers.NewChatHandler(chatService, knowledgeRepo, appLogger),
		Achievements: handlers.NewAchievementHandler(achievementService, appLogger),
		Videos:       handlers.NewVideoHandler(videoService, appLogger),
	}
	chatLimiter := middleware.NewIPRateLimiter(cfg.RateLimit.ChatPerSecond, cfg.RateLimit.ChatBurst)

	// Setup router
	app := api.SetupRouter(h, jwtManager, chatLimiter, cfg, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
