package api

import (
	"errors"
	"os"
	"path/filepath"

	"nationwide/docs"
	"nationwide/internal/api/handlers"
	"nationwide/pkg/auth"
	"nationwide/pkg/config"
	"nationwide/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Chat         *handlers.ChatHandler
	Achievements *handlers.AchievementHandler
	Videos       *handlers.VideoHandler
}

func SetupRouter(
	h Handlers,
	jwtManager *auth.JWTManager,
	chatLimiter *middleware.IPRateLimiter,
	cfg *config.Config,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			if code == fiber.StatusRequestEntityTooLarge {
				return c.Status(code).JSON(fiber.Map{
					"error": "File too large. Maximum size is 50MB",
				})
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Chat proxy
	chat := chatLimiter.Handler(h.Chat.RateLimited)
	app.Post("/chat", chat, h.Chat.Chat)

	api := app.Group("/api")
	api.Post("/chat", chat, h.Chat.Chat)
	api.Get("/knowledge", h.Chat.Knowledge)
	api.Get("/achievements", h.Achievements.ListPublic)
	api.Get("/videos", h.Videos.ListPublic)

	// Admin
	admin := api.Group("/admin")
	admin.Post("/login", h.Auth.Login)
	admin.Post("/refresh", h.Auth.RefreshToken)

	protected := admin.Group("", middleware.AdminAuth(jwtManager, appLogger))

	achievements := protected.Group("/achievements")
	achievements.Get("", h.Achievements.ListAdmin)
	achievements.Post("", h.Achievements.Create)
	achievements.Put("/:id", h.Achievements.Update)
	achievements.Delete("/:id", h.Achievements.Delete)

	videos := protected.Group("/videos")
	videos.Get("", h.Videos.ListAdmin)
	videos.Post("/upload", h.Videos.Upload)
	videos.Put("/:id", h.Videos.Update)
	videos.Delete("/:id", h.Videos.Delete)

	// Uploaded media for the local provider
	if cfg.Media.Provider == config.MediaLocal {
		appLogger.Info("Serving uploads", zap.String("path", cfg.Media.LocalDir))
		app.Static("/uploads", cfg.Media.LocalDir)
	}

	// Static site
	webStaticPath := cfg.Server.StaticDir
	if webStaticPath == "" {
		webStaticPath = findWebStaticPath(appLogger)
	}
	if webStaticPath != "" {
		appLogger.Info("Serving static files", zap.String("path", webStaticPath))
		app.Static("/", webStaticPath)
	} else {
		appLogger.Warn("Web static directory not found, static files will not be served")
	}

	return app
}

// findWebStaticPath looks for web/static/index.html relative to the working directory.
func findWebStaticPath(logger *zap.Logger) string {
	cwd, _ := os.Getwd()

	paths := []string{
		"./web/static",
		"../web/static",
		"../../web/static",
	}

	for _, path := range paths {
		if fileExists(filepath.Join(path, "index.html")) {
			logger.Info("Found web static path", zap.String("path", path), zap.String("cwd", cwd))
			return path
		}
	}

	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
