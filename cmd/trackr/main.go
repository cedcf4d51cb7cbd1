package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/vitos/cryptotrackr/internal/infrastructure/logger"
	"github.com/vitos/cryptotrackr/internal/infrastructure/marketdata"
	"github.com/vitos/cryptotrackr/internal/infrastructure/storage"
	"github.com/vitos/cryptotrackr/internal/usecase"
	"github.com/vitos/cryptotrackr/internal/web"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Config
	godotenv.Load()
	cfg, err := loadConfig("config/config.yaml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		fmt.Printf("Invalid environment: %v\n", err)
		os.Exit(1)
	}

	// 2. Init Logger
	var log *zap.Logger
	if cfg.Logging.File != "" {
		log, err = logger.NewFileLogger(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Encoding)
	} else {
		log, err = logger.NewLogger(cfg.Logging.Level, cfg.Logging.Encoding)
	}
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// 3. Init Storage
	store, err := storage.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		log.Fatal("Failed to init sqlite", zap.String("path", cfg.Storage.Path), zap.Error(err))
	}
	defer store.Close()

	// 4. Init Market Data
	client := marketdata.NewDexScreenerClient(
		cfg.DexScreener.BaseURL,
		time.Duration(cfg.DexScreener.TimeoutMs)*time.Millisecond,
		log,
	)
	marketService := usecase.NewMarketService(client, log)

	// 5. Init Services
	hub := web.NewHub(log)
	watchlist := usecase.NewWatchlistService(store, marketService, hub, log)
	wallets := usecase.NewWalletService(store, marketService, hub, log)

	// 6. Init Web Server
	setup := web.SetupInfo{Schema: storage.SchemaSQL, Location: store.Path()}
	server := web.NewServer(cfg.Server.Port, watchlist, wallets, marketService, hub, setup, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// 7. Wait for Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Shutdown failed", zap.Error(err))
	}
}
