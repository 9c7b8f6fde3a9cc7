package main

import (
	"context"
	"log"
	"time"

	"account-service/cmd"
	"account-service/internal/data/repository"
	"account-service/internal/notify"
	"account-service/internal/wire"
	"account-service/pkg/database"
	"account-service/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using zap production logger.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("env", config.App.Env),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("mail_driver", config.Email.Driver),
	)
	if config.App.ExposeOTP {
		logger.Warn("EXPOSE_OTP is on, registration responses include the verification code")
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Connect to database
	db, err := database.InitDB(startCtx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.EnsureSchema(startCtx, db); err != nil {
		logger.Fatal("Failed to apply schema", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	// Redis is optional; it only backs recovery tickets
	var rdb redis.UniversalClient
	if config.Redis.Addr != "" {
		client, err := database.InitRedis(startCtx, config.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		rdb = client
		logger.Info("Redis connected successfully", zap.String("addr", config.Redis.Addr))
	}

	sender, err := notify.NewSender(config.Email, config.OTP.ExpiryMinutes, logger)
	if err != nil {
		logger.Fatal("Failed to init mail sender", zap.Error(err))
	}

	repos := repository.NewRepository(db, rdb, logger)

	app := wire.Wiring(repos, sender, config, logger)

	if err := app.Service.Role.EnsureDefaults(startCtx); err != nil {
		logger.Fatal("Failed to seed roles", zap.Error(err))
	}

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
