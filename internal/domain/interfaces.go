package domain

import "context"

// PairSearcher queries the market-data search API.
type PairSearcher interface {
	SearchPairs(ctx context.Context, key string) ([]Pair, error)
}

// CoinRepository defines storage operations for watchlist entries.
// ListCoins returns the most recently added entries first.
type CoinRepository interface {
	ListCoins(ctx context.Context) ([]*Coin, error)
	GetCoin(ctx context.Context, id string) (*Coin, error)
	InsertCoin(ctx context.Context, coin *Coin) error
	UpdateCoin(ctx context.Context, coin *Coin) error
	SetCoinFavorite(ctx context.Context, id string, favorite bool) error
	DeleteCoin(ctx context.Context, id string) error
}

// WalletRepository defines storage operations for tracked wallets.
type WalletRepository interface {
	ListWallets(ctx context.Context) ([]*Wallet, error)
	GetWallet(ctx context.Context, id string) (*Wallet, error)
	InsertWallet(ctx context.Context, wallet *Wallet) error
	UpdateWallet(ctx context.Context, wallet *Wallet) error
	SetWalletFavorite(ctx context.Context, id string, favorite bool) error
	DeleteWallet(ctx context.Context, id string) error
}

// ChangeNotifier is told about every successful mutation so open dashboards can refresh.
type ChangeNotifier interface {
	Notify(kind, action, id string)
}
