package main

import (
	"context"
	"log"

	"covid-booking/internal/data/remote"
	"covid-booking/internal/menu"
	"covid-booking/internal/usecase"
	"covid-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting booking client", zap.String("baseURL", config.Remote.BaseURL))

	client := remote.NewClient(config.Remote.BaseURL, config.Remote.APIKey, logger)
	stores := remote.NewStores(client, logger)
	service := usecase.NewService(stores, logger)

	ctx := context.Background()

	// Warm the local caches. A failure here is not fatal: the menus resync
	// on demand and the user may still want to see the error interactively.
	if err := service.User.Populate(ctx); err != nil {
		logger.Warn("Failed to populate users", zap.Error(err))
	}
	if err := service.Booking.Populate(ctx); err != nil {
		logger.Warn("Failed to populate bookings", zap.Error(err))
	}

	m := menu.New(service, logger)
	m.Run(ctx)
}
