package web

import (
	"encoding/json"
	"net/http"

	"github.com/vitos/cryptotrackr/internal/domain"
	"github.com/vitos/cryptotrackr/internal/usecase"
	"go.uber.org/zap"
)

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) failJSON(w http.ResponseWriter, op string, err error) {
	code, msg := classify(err)
	s.logger.Error(op, zap.Int("status", code), zap.Error(err))
	s.writeJSON(w, code, map[string]string{"error": msg})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return false
	}
	return true
}

// Watchlist

func (s *Server) handleListCoinsJSON(w http.ResponseWriter, r *http.Request) {
	coins, err := s.watchlist.List(r.Context())
	if err != nil {
		s.failJSON(w, "Failed to list coins", err)
		return
	}
	coins = usecase.FilterCoins(coins, filterFromRequest(r))
	if coins == nil {
		coins = []*domain.Coin{}
	}
	s.writeJSON(w, http.StatusOK, coins)
}

func (s *Server) handleCreateCoinJSON(w http.ResponseWriter, r *http.Request) {
	var coin domain.Coin
	if !s.decode(w, r, &coin) {
		return
	}
	stored, err := s.watchlist.Create(r.Context(), &coin)
	if err != nil {
		s.failJSON(w, "Failed to save coin", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleUpdateCoinJSON(w http.ResponseWriter, r *http.Request) {
	var coin domain.Coin
	if !s.decode(w, r, &coin) {
		return
	}
	coin.ID = r.PathValue("id")
	stored, err := s.watchlist.Update(r.Context(), &coin)
	if err != nil {
		s.failJSON(w, "Failed to update coin", err)
		return
	}
	s.writeJSON(w, http.StatusOK, stored)
}

func (s *Server) handleToggleCoinFavoriteJSON(w http.ResponseWriter, r *http.Request) {
	coin, err := s.watchlist.ToggleFavorite(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failJSON(w, "Failed to toggle favorite", err)
		return
	}
	s.writeJSON(w, http.StatusOK, coin)
}

func (s *Server) handleDeleteCoinJSON(w http.ResponseWriter, r *http.Request) {
	if err := s.watchlist.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.failJSON(w, "Failed to delete coin", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Wallets

type walletRequest struct {
	domain.Wallet
	Snippet string `json:"snippet,omitempty"`
}

func (s *Server) decodeWallet(w http.ResponseWriter, r *http.Request) (*domain.Wallet, bool) {
	req := walletRequest{Wallet: *domain.NewWallet()}
	if !s.decode(w, r, &req) {
		return nil, false
	}
	wallet := req.Wallet
	s.wallets.ApplySnippet(&wallet, req.Snippet)
	return &wallet, true
}

func (s *Server) handleListWalletsJSON(w http.ResponseWriter, r *http.Request) {
	wallets, err := s.wallets.List(r.Context())
	if err != nil {
		s.failJSON(w, "Failed to list wallets", err)
		return
	}
	wallets = usecase.FilterWallets(wallets, filterFromRequest(r))
	if wallets == nil {
		wallets = []*domain.Wallet{}
	}
	s.writeJSON(w, http.StatusOK, wallets)
}

func (s *Server) handleCreateWalletJSON(w http.ResponseWriter, r *http.Request) {
	wallet, ok := s.decodeWallet(w, r)
	if !ok {
		return
	}
	stored, err := s.wallets.Create(r.Context(), wallet)
	if err != nil {
		s.failJSON(w, "Failed to save wallet", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleUpdateWalletJSON(w http.ResponseWriter, r *http.Request) {
	wallet, ok := s.decodeWallet(w, r)
	if !ok {
		return
	}
	wallet.ID = r.PathValue("id")
	stored, err := s.wallets.Update(r.Context(), wallet)
	if err != nil {
		s.failJSON(w, "Failed to update wallet", err)
		return
	}
	s.writeJSON(w, http.StatusOK, stored)
}

func (s *Server) handleToggleWalletFavoriteJSON(w http.ResponseWriter, r *http.Request) {
	wallet, err := s.wallets.ToggleFavorite(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failJSON(w, "Failed to toggle favorite", err)
		return
	}
	s.writeJSON(w, http.StatusOK, wallet)
}

func (s *Server) handleDeleteWalletJSON(w http.ResponseWriter, r *http.Request) {
	if err := s.wallets.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.failJSON(w, "Failed to delete wallet", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Tools

func (s *Server) handleLookupJSON(w http.ResponseWriter, r *http.Request) {
	summary, err := s.market.Lookup(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.failJSON(w, "Lookup failed", err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleParseJSON(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	s.writeJSON(w, http.StatusOK, usecase.ParseWalletSnippet(req.Text))
}

func (s *Server) handleStatsJSON(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats(r)
	if err != nil {
		s.failJSON(w, "Failed to compute stats", err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleSetupJSON(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.setup)
}
