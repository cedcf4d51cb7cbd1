package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/vitos/cryptotrackr/internal/infrastructure/logger"
	"github.com/vitos/cryptotrackr/internal/infrastructure/marketdata"
	"github.com/vitos/cryptotrackr/internal/usecase"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: check_lookup <symbol|address|dexscreener url>")
		os.Exit(1)
	}

	// Load .env
	godotenv.Load()

	log, err := logger.NewLogger("warn", "console")
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	baseURL := os.Getenv("DEXSCREENER_BASE_URL")
	client := marketdata.NewDexScreenerClient(baseURL, 0, log)
	svc := usecase.NewMarketService(client, log)

	query := os.Args[1]
	fmt.Printf("Looking up %q (search key %q)...\n", query, usecase.ExtractSearchKey(query))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	summary, err := svc.Lookup(ctx, query)
	if err != nil {
		fmt.Printf("❌ Lookup failed: %v\n", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Printf("✅ %s\n", out)
}
