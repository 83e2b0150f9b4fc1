package main

import (
	"context"
	"log"

	"cinebook/cmd"
	"cinebook/internal/jobs"
	"cinebook/internal/wire"
	"cinebook/pkg/cache"
	"cinebook/pkg/database"
	"cinebook/pkg/messaging"
	"cinebook/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.Log, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx := context.Background()

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Redis backs drafts and the catalog cache; without it both are off.
	rdb, err := cache.NewRedisClient(ctx, config.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, drafts and cache disabled", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
		logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
	}

	// Booking events go to RabbitMQ when configured.
	var publisher messaging.Publisher = messaging.NopPublisher{}
	if config.RabbitMQ.URL != "" {
		rp, err := messaging.NewRabbitPublisher(config.RabbitMQ.URL, config.RabbitMQ.Exchange, logger)
		if err != nil {
			logger.Warn("RabbitMQ unavailable, booking events disabled", zap.Error(err))
		} else {
			publisher = rp
			logger.Info("RabbitMQ connected", zap.String("exchange", config.RabbitMQ.Exchange))
		}
	}
	defer publisher.Close()

	// Wire all dependencies
	app := wire.Wiring(db, rdb, publisher, config, logger)

	if config.Scheduler.Enabled {
		scheduler, err := jobs.NewScheduler(app.Service.Maintenance, config.Scheduler, logger)
		if err != nil {
			logger.Fatal("Failed to create scheduler", zap.Error(err))
		}
		scheduler.Start()
		defer func() {
			if err := scheduler.Shutdown(); err != nil {
				logger.Warn("Scheduler shutdown failed", zap.Error(err))
			}
		}()
	}

	if err := cmd.APIServer(app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}

	logger.Info("Server stopped")
}
