package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vitos/cryptotrackr/internal/domain"
	"go.uber.org/zap"
)

const (
	KindCoins   = "coins"
	KindWallets = "wallets"

	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionFavorite = "favorite"
	ActionDeleted  = "deleted"
)

// dateLayout matches the store's date_added column.
const dateLayout = "2006-01-02"

// WatchlistService manages watchlist coins.
type WatchlistService struct {
	repo     domain.CoinRepository
	market   *MarketService
	notifier domain.ChangeNotifier
	logger   *zap.Logger
	timeNow  func() time.Time
	newID    func() string
}

func NewWatchlistService(repo domain.CoinRepository, market *MarketService, notifier domain.ChangeNotifier, logger *zap.Logger) *WatchlistService {
	return &WatchlistService{
		repo:     repo,
		market:   market,
		notifier: notifier,
		logger:   logger,
		timeNow:  time.Now,
		newID:    uuid.NewString,
	}
}

// List returns every coin, most recently added first.
func (s *WatchlistService) List(ctx context.Context) ([]*domain.Coin, error) {
	coins, err := s.repo.ListCoins(ctx)
	if err != nil {
		return nil, storeError("list coins", err)
	}
	return coins, nil
}

func (s *WatchlistService) Get(ctx context.Context, id string) (*domain.Coin, error) {
	coin, err := s.repo.GetCoin(ctx, id)
	if err != nil {
		return nil, storeError("get coin", err)
	}
	return coin, nil
}

// Preview looks query up and returns an unsaved coin pre-filled from the result.
func (s *WatchlistService) Preview(ctx context.Context, query string) (*domain.Coin, error) {
	summary, err := s.market.Lookup(ctx, query)
	if err != nil {
		return nil, err
	}

	link := summary.URL
	if link == "" {
		link = strings.TrimSpace(query)
	}

	return &domain.Coin{
		Name:           summary.Name,
		MarketCap:      summary.MarketCap,
		Liquidity:      summary.Liquidity,
		Age:            summary.Age,
		PriceChange:    summary.PriceChange,
		Network:        summary.Network,
		Status:         summary.Status,
		CustomLink:     link,
		DexScreenerURL: link,
	}, nil
}

// Create stores a new coin and returns the stored record.
func (s *WatchlistService) Create(ctx context.Context, coin *domain.Coin) (*domain.Coin, error) {
	if err := s.validate(coin); err != nil {
		return nil, err
	}

	coin.ID = s.newID()
	coin.DateAdded = s.timeNow().Format(dateLayout)

	if err := s.repo.InsertCoin(ctx, coin); err != nil {
		s.logger.Error("Failed to insert coin", zap.String("name", coin.Name), zap.Error(err))
		return nil, storeError("insert coin", err)
	}

	stored, err := s.Get(ctx, coin.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Coin added", zap.String("id", stored.ID), zap.String("name", stored.Name))
	s.notify(ActionCreated, stored.ID)
	return stored, nil
}

// Update replaces every editable field of an existing coin.
func (s *WatchlistService) Update(ctx context.Context, coin *domain.Coin) (*domain.Coin, error) {
	if coin.ID == "" {
		return nil, fmt.Errorf("%w: coin id is required", domain.ErrInvalidInput)
	}
	if err := s.validate(coin); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateCoin(ctx, coin); err != nil {
		s.logger.Error("Failed to update coin", zap.String("id", coin.ID), zap.Error(err))
		return nil, storeError("update coin", err)
	}

	stored, err := s.Get(ctx, coin.ID)
	if err != nil {
		return nil, err
	}
	s.notify(ActionUpdated, stored.ID)
	return stored, nil
}

// ToggleFavorite flips the favorite flag and returns the updated coin.
func (s *WatchlistService) ToggleFavorite(ctx context.Context, id string) (*domain.Coin, error) {
	coin, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	coin.IsFavorite = !coin.IsFavorite
	if err := s.repo.SetCoinFavorite(ctx, id, coin.IsFavorite); err != nil {
		return nil, storeError("toggle coin favorite", err)
	}

	s.notify(ActionFavorite, id)
	return coin, nil
}

func (s *WatchlistService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteCoin(ctx, id); err != nil {
		s.logger.Error("Failed to delete coin", zap.String("id", id), zap.Error(err))
		return storeError("delete coin", err)
	}
	s.logger.Info("Coin removed", zap.String("id", id))
	s.notify(ActionDeleted, id)
	return nil
}

func (s *WatchlistService) validate(coin *domain.Coin) error {
	coin.Name = strings.TrimSpace(coin.Name)
	if coin.Name == "" {
		return fmt.Errorf("%w: coin name is required", domain.ErrInvalidInput)
	}
	coin.Network = domain.ParseNetwork(string(coin.Network))
	coin.Status = domain.ParseStatus(string(coin.Status))
	return nil
}

func (s *WatchlistService) notify(action, id string) {
	if s.notifier != nil {
		s.notifier.Notify(KindCoins, action, id)
	}
}

// storeError tags repository failures with ErrStore, leaving not-found as is.
func storeError(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrStore, op, err)
}
