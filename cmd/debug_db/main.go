package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/vitos/cryptotrackr/internal/infrastructure/storage"
	"github.com/vitos/cryptotrackr/internal/usecase"
)

func main() {
	godotenv.Load()

	path := os.Getenv("TRACKR_DB_PATH")
	if path == "" {
		path = "trackr.db"
	}

	store, err := storage.NewSQLiteStore(path)
	if err != nil {
		fmt.Printf("Failed to init sqlite: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	coins, err := store.ListCoins(ctx)
	if err != nil {
		fmt.Printf("Failed to list coins: %v\n", err)
		os.Exit(1)
	}
	wallets, err := store.ListWallets(ctx)
	if err != nil {
		fmt.Printf("Failed to list wallets: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Database: %s\n", store.Path())
	fmt.Printf("Found %d coins:\n", len(coins))
	for _, c := range coins {
		fav := ""
		if c.IsFavorite {
			fav = " ★"
		}
		fmt.Printf("- %s%s [%s/%s] MC=%s Liq=%s Age=%s 24h=%s added %s (ID: %s)\n",
			c.Name, fav, c.Network, c.Status, c.MarketCap, c.Liquidity, c.Age, c.PriceChange, c.DateAdded, c.ID)
	}

	fmt.Printf("Found %d wallets:\n", len(wallets))
	for _, w := range wallets {
		fav := ""
		if w.IsFavorite {
			fav = " ★"
		}
		fmt.Printf("- %s%s [%s/%s] buy=%s sell=%s pnl=%s %s win=%d%% source=%s (ID: %s)\n",
			w.Address, fav, w.Network, w.Status, w.BuyVolume, w.SellVolume, w.Profit, w.Multiplier, w.WinRate, w.Source, w.ID)
	}

	stats := usecase.ComputeStats(coins, wallets)
	fmt.Printf("Favorites: %d, dominant network: %s\n", stats.FavoriteCount, stats.DominantNetwork)
}
