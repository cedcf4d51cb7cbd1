package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/vitos/cryptotrackr/internal/usecase"
	"go.uber.org/zap"
)

// SetupInfo is shown on the one-time setup page.
type SetupInfo struct {
	Schema   string `json:"schema"`
	Location string `json:"location"`
}

type Server struct {
	router    *http.ServeMux
	server    *http.Server
	watchlist *usecase.WatchlistService
	wallets   *usecase.WalletService
	market    *usecase.MarketService
	hub       *Hub
	setup     SetupInfo
	logger    *zap.Logger
}

func NewServer(
	port int,
	watchlist *usecase.WatchlistService,
	wallets *usecase.WalletService,
	market *usecase.MarketService,
	hub *Hub,
	setup SetupInfo,
	logger *zap.Logger,
) *Server {
	s := &Server{
		router:    http.NewServeMux(),
		watchlist: watchlist,
		wallets:   wallets,
		market:    market,
		hub:       hub,
		setup:     setup,
		logger:    logger,
	}
	s.routes()
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	// Dashboard
	s.router.HandleFunc("GET /{$}", s.handleDashboard)
	s.router.HandleFunc("GET /setup", s.handleSetup)

	// Watchlist
	s.router.HandleFunc("GET /coins", s.handleCoinsTable)
	s.router.HandleFunc("POST /coins", s.handleAddCoin)
	s.router.HandleFunc("POST /coins/preview", s.handlePreviewCoin)
	s.router.HandleFunc("GET /coins/{id}/edit", s.handleEditCoinForm)
	s.router.HandleFunc("POST /coins/{id}", s.handleUpdateCoin)
	s.router.HandleFunc("POST /coins/{id}/favorite", s.handleToggleCoinFavorite)
	s.router.HandleFunc("DELETE /coins/{id}", s.handleDeleteCoin)

	// Wallets
	s.router.HandleFunc("GET /wallets", s.handleWalletsTable)
	s.router.HandleFunc("POST /wallets", s.handleAddWallet)
	s.router.HandleFunc("POST /wallets/parse", s.handleParseWalletForm)
	s.router.HandleFunc("GET /wallets/{id}/edit", s.handleEditWalletForm)
	s.router.HandleFunc("POST /wallets/{id}", s.handleUpdateWallet)
	s.router.HandleFunc("POST /wallets/{id}/favorite", s.handleToggleWalletFavorite)
	s.router.HandleFunc("DELETE /wallets/{id}", s.handleDeleteWallet)

	// Stats
	s.router.HandleFunc("GET /stats", s.handleStatsRow)

	// JSON API
	s.router.HandleFunc("GET /api/coins", s.handleListCoinsJSON)
	s.router.HandleFunc("POST /api/coins", s.handleCreateCoinJSON)
	s.router.HandleFunc("PUT /api/coins/{id}", s.handleUpdateCoinJSON)
	s.router.HandleFunc("POST /api/coins/{id}/favorite", s.handleToggleCoinFavoriteJSON)
	s.router.HandleFunc("DELETE /api/coins/{id}", s.handleDeleteCoinJSON)

	s.router.HandleFunc("GET /api/wallets", s.handleListWalletsJSON)
	s.router.HandleFunc("POST /api/wallets", s.handleCreateWalletJSON)
	s.router.HandleFunc("PUT /api/wallets/{id}", s.handleUpdateWalletJSON)
	s.router.HandleFunc("POST /api/wallets/{id}/favorite", s.handleToggleWalletFavoriteJSON)
	s.router.HandleFunc("DELETE /api/wallets/{id}", s.handleDeleteWalletJSON)

	s.router.HandleFunc("GET /api/lookup", s.handleLookupJSON)
	s.router.HandleFunc("POST /api/parse", s.handleParseJSON)
	s.router.HandleFunc("GET /api/stats", s.handleStatsJSON)
	s.router.HandleFunc("GET /api/setup", s.handleSetupJSON)

	// Change feed
	if s.hub != nil {
		s.router.Handle("GET /ws", s.hub)
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("Starting web server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.hub != nil {
		s.hub.Close()
	}
	return s.server.Shutdown(ctx)
}
