package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"covid-booking/internal/recordstore"
	"covid-booking/pkg/database"
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

	logger.Info("Starting record store",
		zap.String("backend", config.Store.Backend),
		zap.String("port", config.Store.Port),
	)

	var store recordstore.Store
	switch config.Store.Backend {
	case "postgres":
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		pg := recordstore.NewPostgresStore(db, logger)
		if err := pg.Init(context.Background()); err != nil {
			logger.Fatal("Failed to prepare records table", zap.Error(err))
		}
		store = pg
	default:
		store = recordstore.NewMemoryStore()
	}

	handler := recordstore.NewHandler(store, config, logger)
	router := recordstore.NewRouter(handler, config.Store.APIKey, logger)

	addr := fmt.Sprintf(":%s", config.Store.Port)
	logger.Info("Record store listening", zap.String("addr", addr))

	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
