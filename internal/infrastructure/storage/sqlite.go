package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/vitos/cryptotrackr/internal/domain"
)

var schemaQueries = []string{
	`CREATE TABLE IF NOT EXISTS tokens (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	market_cap TEXT,
	liquidity TEXT,
	age TEXT,
	price_change TEXT,
	date_added TEXT NOT NULL DEFAULT (date('now', 'localtime')),
	network TEXT,
	status TEXT,
	custom_link TEXT,
	is_favorite BOOLEAN NOT NULL DEFAULT 0,
	dex_screener_url TEXT,
	notes TEXT
);`,
	`CREATE INDEX IF NOT EXISTS idx_tokens_date_added ON tokens(date_added);`,
	`CREATE TABLE IF NOT EXISTS wallets (
	id TEXT PRIMARY KEY,
	address TEXT NOT NULL,
	buy_volume TEXT,
	sell_volume TEXT,
	profit TEXT,
	source TEXT,
	network TEXT,
	age TEXT,
	date_added TEXT NOT NULL DEFAULT (date('now', 'localtime')),
	status TEXT,
	multiplier TEXT,
	win_rate INTEGER,
	custom_link TEXT,
	is_favorite BOOLEAN NOT NULL DEFAULT 0,
	notes TEXT
);`,
	`CREATE INDEX IF NOT EXISTS idx_wallets_date_added ON wallets(date_added);`,
}

// SchemaSQL is the provisioning script for the tokens and wallets tables.
var SchemaSQL = strings.Join(schemaQueries, "\n\n")

type SQLiteStore struct {
	db   *sql.DB
	path string
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	// One connection: SQLite has a single writer and ":memory:" databases are per connection.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db, path: dbPath}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	for _, q := range schemaQueries {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("failed to exec query %s: %w", q, err)
		}
	}
	return nil
}

// Path is the database location shown on the setup page.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CoinRepository Implementation

const coinColumns = `id, name, COALESCE(market_cap, ''), COALESCE(liquidity, ''), COALESCE(age, ''),
	COALESCE(price_change, ''), date_added, COALESCE(network, ''), COALESCE(status, ''),
	COALESCE(custom_link, ''), is_favorite, COALESCE(dex_screener_url, ''), COALESCE(notes, '')`

type scanner interface {
	Scan(dest ...any) error
}

func scanCoin(row scanner) (*domain.Coin, error) {
	var c domain.Coin
	var network, status string
	err := row.Scan(&c.ID, &c.Name, &c.MarketCap, &c.Liquidity, &c.Age, &c.PriceChange, &c.DateAdded,
		&network, &status, &c.CustomLink, &c.IsFavorite, &c.DexScreenerURL, &c.Notes)
	if err != nil {
		return nil, err
	}
	c.Network = domain.ParseNetwork(network)
	c.Status = domain.ParseStatus(status)
	return &c, nil
}

func (s *SQLiteStore) ListCoins(ctx context.Context) ([]*domain.Coin, error) {
	query := `SELECT ` + coinColumns + ` FROM tokens ORDER BY date_added DESC, rowid DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coins []*domain.Coin
	for rows.Next() {
		c, err := scanCoin(rows)
		if err != nil {
			return nil, err
		}
		coins = append(coins, c)
	}
	return coins, rows.Err()
}

func (s *SQLiteStore) GetCoin(ctx context.Context, id string) (*domain.Coin, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+coinColumns+` FROM tokens WHERE id = ?`, id)
	c, err := scanCoin(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return c, err
}

func (s *SQLiteStore) InsertCoin(ctx context.Context, c *domain.Coin) error {
	query := `INSERT INTO tokens (id, name, market_cap, liquidity, age, price_change, date_added, network, status, custom_link, is_favorite, dex_screener_url, notes)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		c.ID, c.Name, c.MarketCap, c.Liquidity, c.Age, c.PriceChange, c.DateAdded,
		string(c.Network), string(c.Status), c.CustomLink, c.IsFavorite, c.DexScreenerURL, c.Notes)
	return err
}

// UpdateCoin replaces every column except id and date_added.
func (s *SQLiteStore) UpdateCoin(ctx context.Context, c *domain.Coin) error {
	query := `UPDATE tokens SET name = ?, market_cap = ?, liquidity = ?, age = ?, price_change = ?, network = ?,
			  status = ?, custom_link = ?, is_favorite = ?, dex_screener_url = ?, notes = ?
			  WHERE id = ?`
	res, err := s.db.ExecContext(ctx, query,
		c.Name, c.MarketCap, c.Liquidity, c.Age, c.PriceChange, string(c.Network),
		string(c.Status), c.CustomLink, c.IsFavorite, c.DexScreenerURL, c.Notes, c.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *SQLiteStore) SetCoinFavorite(ctx context.Context, id string, favorite bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE tokens SET is_favorite = ? WHERE id = ?`, favorite, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *SQLiteStore) DeleteCoin(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM tokens WHERE id = ?", id)
	return err
}

// WalletRepository Implementation

const walletColumns = `id, address, COALESCE(buy_volume, ''), COALESCE(sell_volume, ''), COALESCE(profit, ''),
	COALESCE(source, ''), COALESCE(network, ''), COALESCE(age, ''), date_added, COALESCE(status, ''),
	COALESCE(multiplier, ''), COALESCE(win_rate, 0), COALESCE(custom_link, ''), is_favorite, COALESCE(notes, '')`

func scanWallet(row scanner) (*domain.Wallet, error) {
	var w domain.Wallet
	var network, status string
	err := row.Scan(&w.ID, &w.Address, &w.BuyVolume, &w.SellVolume, &w.Profit, &w.Source, &network,
		&w.Age, &w.DateAdded, &status, &w.Multiplier, &w.WinRate, &w.CustomLink, &w.IsFavorite, &w.Notes)
	if err != nil {
		return nil, err
	}
	w.Network = domain.ParseNetwork(network)
	w.Status = domain.ParseStatus(status)
	return &w, nil
}

func (s *SQLiteStore) ListWallets(ctx context.Context) ([]*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets ORDER BY date_added DESC, rowid DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wallets []*domain.Wallet
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

func (s *SQLiteStore) GetWallet(ctx context.Context, id string) (*domain.Wallet, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+walletColumns+` FROM wallets WHERE id = ?`, id)
	w, err := scanWallet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return w, err
}

func (s *SQLiteStore) InsertWallet(ctx context.Context, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, address, buy_volume, sell_volume, profit, source, network, age, date_added, status, multiplier, win_rate, custom_link, is_favorite, notes)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		w.ID, w.Address, w.BuyVolume, w.SellVolume, w.Profit, w.Source, string(w.Network), w.Age,
		w.DateAdded, string(w.Status), w.Multiplier, w.WinRate, w.CustomLink, w.IsFavorite, w.Notes)
	return err
}

func (s *SQLiteStore) UpdateWallet(ctx context.Context, w *domain.Wallet) error {
	query := `UPDATE wallets SET address = ?, buy_volume = ?, sell_volume = ?, profit = ?, source = ?, network = ?,
			  age = ?, status = ?, multiplier = ?, win_rate = ?, custom_link = ?, is_favorite = ?, notes = ?
			  WHERE id = ?`
	res, err := s.db.ExecContext(ctx, query,
		w.Address, w.BuyVolume, w.SellVolume, w.Profit, w.Source, string(w.Network),
		w.Age, string(w.Status), w.Multiplier, w.WinRate, w.CustomLink, w.IsFavorite, w.Notes, w.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *SQLiteStore) SetWalletFavorite(ctx context.Context, id string, favorite bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE wallets SET is_favorite = ? WHERE id = ?`, favorite, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *SQLiteStore) DeleteWallet(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM wallets WHERE id = ?", id)
	return err
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
