package main

import (
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/example/stylemart/internal/catalog"
	"github.com/example/stylemart/internal/config"
	"github.com/example/stylemart/internal/database"
	"github.com/example/stylemart/internal/logger"
	"github.com/example/stylemart/internal/otp"
	"github.com/example/stylemart/internal/response"
	"github.com/example/stylemart/internal/routes"
	"github.com/example/stylemart/internal/services"
)

func main() {
	defer logger.Sync()

	cfg := config.Load()

	resolver, err := catalog.NewResolver(catalog.DefaultAliases)
	if err != nil {
		logger.Fatal("invalid category alias table", zap.Error(err))
	}

	db := database.Connect(cfg.DatabaseURL, resolver)

	var codes otp.Store = otp.NewMemoryStore()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal("invalid REDIS_URL", zap.Error(err))
		}
		codes = otp.NewRedisStore(redis.NewClient(opts))
		logger.Info("otp codes stored in redis")
	}

	var sms services.SMSSender = services.LogSMSSender{}
	if cfg.SMSAPIKey != "" {
		sms = services.NewFast2SMSSender(cfg.SMSAPIKey)
	} else if cfg.IsProduction() {
		logger.Fatal("FAST2SMS_API_KEY must be set in production")
	}

	app := fiber.New(fiber.Config{
		AppName:      "Stylemart Backend",
		ErrorHandler: response.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())

	routes.Register(app, db, cfg, resolver, codes, sms)

	logger.Info("starting server", zap.String("port", cfg.AppPort))
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		logger.Fatal("fiber.Listen error", zap.Error(err))
	}
}
