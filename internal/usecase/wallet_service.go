package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vitos/cryptotrackr/internal/domain"
	"go.uber.org/zap"
)

// WalletService manages tracked wallets.
type WalletService struct {
	repo     domain.WalletRepository
	market   *MarketService
	notifier domain.ChangeNotifier
	logger   *zap.Logger
	timeNow  func() time.Time
	newID    func() string
}

func NewWalletService(repo domain.WalletRepository, market *MarketService, notifier domain.ChangeNotifier, logger *zap.Logger) *WalletService {
	return &WalletService{
		repo:     repo,
		market:   market,
		notifier: notifier,
		logger:   logger,
		timeNow:  time.Now,
		newID:    uuid.NewString,
	}
}

func (s *WalletService) List(ctx context.Context) ([]*domain.Wallet, error) {
	wallets, err := s.repo.ListWallets(ctx)
	if err != nil {
		return nil, storeError("list wallets", err)
	}
	return wallets, nil
}

func (s *WalletService) Get(ctx context.Context, id string) (*domain.Wallet, error) {
	wallet, err := s.repo.GetWallet(ctx, id)
	if err != nil {
		return nil, storeError("get wallet", err)
	}
	return wallet, nil
}

// ApplySnippet fills the volume, profit and multiplier fields from pasted text.
// Blank text leaves the wallet untouched.
func (s *WalletService) ApplySnippet(wallet *domain.Wallet, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	res := ParseWalletSnippet(text)
	wallet.BuyVolume = res.Buy
	wallet.SellVolume = res.Sell
	wallet.Profit = res.Profit
	wallet.Multiplier = res.Multiplier
}

// ResolveSource replaces a pair URL in the source field with the token symbol,
// keeping the URL as the wallet link and adopting the pair's network.
// A failed lookup is logged and the raw source kept.
func (s *WalletService) ResolveSource(ctx context.Context, wallet *domain.Wallet) {
	if !IsMarketURL(wallet.Source) {
		return
	}

	summary, err := s.market.Lookup(ctx, wallet.Source)
	if err != nil {
		s.logger.Warn("Auto-fetch of wallet source failed", zap.String("source", wallet.Source), zap.Error(err))
		return
	}

	wallet.Source = summary.Name
	wallet.CustomLink = summary.URL
	if summary.Network != "" {
		wallet.Network = summary.Network
	}
}

// Create stores a new wallet and returns the stored record.
func (s *WalletService) Create(ctx context.Context, wallet *domain.Wallet) (*domain.Wallet, error) {
	if err := s.prepare(ctx, wallet); err != nil {
		return nil, err
	}

	wallet.ID = s.newID()
	wallet.DateAdded = s.timeNow().Format(dateLayout)

	if err := s.repo.InsertWallet(ctx, wallet); err != nil {
		s.logger.Error("Failed to insert wallet", zap.String("address", wallet.Address), zap.Error(err))
		return nil, storeError("insert wallet", err)
	}

	stored, err := s.Get(ctx, wallet.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Wallet added", zap.String("id", stored.ID), zap.String("address", stored.Address))
	s.notify(ActionCreated, stored.ID)
	return stored, nil
}

// Update replaces every editable field of an existing wallet.
func (s *WalletService) Update(ctx context.Context, wallet *domain.Wallet) (*domain.Wallet, error) {
	if wallet.ID == "" {
		return nil, fmt.Errorf("%w: wallet id is required", domain.ErrInvalidInput)
	}
	if err := s.prepare(ctx, wallet); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateWallet(ctx, wallet); err != nil {
		s.logger.Error("Failed to update wallet", zap.String("id", wallet.ID), zap.Error(err))
		return nil, storeError("update wallet", err)
	}

	stored, err := s.Get(ctx, wallet.ID)
	if err != nil {
		return nil, err
	}
	s.notify(ActionUpdated, stored.ID)
	return stored, nil
}

func (s *WalletService) ToggleFavorite(ctx context.Context, id string) (*domain.Wallet, error) {
	wallet, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	wallet.IsFavorite = !wallet.IsFavorite
	if err := s.repo.SetWalletFavorite(ctx, id, wallet.IsFavorite); err != nil {
		return nil, storeError("toggle wallet favorite", err)
	}

	s.notify(ActionFavorite, id)
	return wallet, nil
}

func (s *WalletService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteWallet(ctx, id); err != nil {
		s.logger.Error("Failed to delete wallet", zap.String("id", id), zap.Error(err))
		return storeError("delete wallet", err)
	}
	s.logger.Info("Wallet removed", zap.String("id", id))
	s.notify(ActionDeleted, id)
	return nil
}

func (s *WalletService) prepare(ctx context.Context, wallet *domain.Wallet) error {
	wallet.Address = strings.TrimSpace(wallet.Address)
	if wallet.Address == "" {
		return fmt.Errorf("%w: wallet address is required", domain.ErrInvalidInput)
	}

	s.ResolveSource(ctx, wallet)

	wallet.Network = domain.ParseNetwork(string(wallet.Network))
	wallet.Status = domain.ParseStatus(string(wallet.Status))
	if wallet.WinRate < 0 {
		wallet.WinRate = 0
	} else if wallet.WinRate > 100 {
		wallet.WinRate = 100
	}
	if wallet.Multiplier == "" {
		wallet.Multiplier = "1x"
	}
	return nil
}

func (s *WalletService) notify(action, id string) {
	if s.notifier != nil {
		s.notifier.Notify(KindWallets, action, id)
	}
}
