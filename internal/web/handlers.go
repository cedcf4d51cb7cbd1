package web

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/vitos/cryptotrackr/internal/domain"
	"github.com/vitos/cryptotrackr/internal/usecase"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates
var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"winRateClass": winRateClass,
	"profitClass":  profitClass,
}).ParseFS(templateFS, "templates/*.html"))

func winRateClass(rate int) string {
	switch {
	case rate >= 70:
		return "rate-high"
	case rate >= 45:
		return "rate-mid"
	}
	return "rate-low"
}

func profitClass(amount string) string {
	if usecase.ParseCurrency(amount).IsNegative() {
		return "negative"
	}
	return "positive"
}

type dashboardView struct {
	Stats    domain.Stats
	Coins    []*domain.Coin
	Wallets  []*domain.Wallet
	Filter   usecase.ListFilter
	Networks []domain.Network
	Statuses []domain.Status
}

type coinFormView struct {
	Coin     *domain.Coin
	Networks []domain.Network
	Statuses []domain.Status
}

type walletFormView struct {
	Wallet   *domain.Wallet
	Networks []domain.Network
	Statuses []domain.Status
}

// filterFromRequest reads list filters from the query string only, so form
// fields posted alongside a mutation never narrow the re-rendered table.
func filterFromRequest(r *http.Request) usecase.ListFilter {
	q := r.URL.Query()
	return usecase.ListFilter{
		Query:   q.Get("q"),
		Network: q.Get("network"),
		Status:  q.Get("status"),
	}
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("Template error", zap.String("template", name), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	code, msg := classify(err)
	s.logger.Error(op, zap.Int("status", code), zap.Error(err))
	http.Error(w, msg, code)
}

// listChanged answers a mutation with no body and tells htmx to re-fetch the
// list and the stats row. The lists re-read the active filters themselves.
func listChanged(w http.ResponseWriter, event string) {
	w.Header().Set("HX-Trigger", event+", refresh")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	coins, err := s.watchlist.List(r.Context())
	if err != nil {
		s.fail(w, "Failed to list coins", err)
		return
	}
	wallets, err := s.wallets.List(r.Context())
	if err != nil {
		s.fail(w, "Failed to list wallets", err)
		return
	}

	filter := filterFromRequest(r)
	s.render(w, "index.html", dashboardView{
		Stats:    usecase.ComputeStats(coins, wallets),
		Coins:    usecase.FilterCoins(coins, filter),
		Wallets:  usecase.FilterWallets(wallets, filter),
		Filter:   filter,
		Networks: domain.Networks,
		Statuses: domain.Statuses,
	})
}

func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	s.render(w, "setup.html", s.setup)
}

func (s *Server) handleStatsRow(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats(r)
	if err != nil {
		s.fail(w, "Failed to compute stats", err)
		return
	}
	s.render(w, "stats_row", stats)
}

func (s *Server) stats(r *http.Request) (domain.Stats, error) {
	coins, err := s.watchlist.List(r.Context())
	if err != nil {
		return domain.Stats{}, err
	}
	wallets, err := s.wallets.List(r.Context())
	if err != nil {
		return domain.Stats{}, err
	}
	return usecase.ComputeStats(coins, wallets), nil
}

// Watchlist

func (s *Server) handleCoinsTable(w http.ResponseWriter, r *http.Request) {
	coins, err := s.watchlist.List(r.Context())
	if err != nil {
		s.fail(w, "Failed to list coins", err)
		return
	}
	s.render(w, "coins_table", usecase.FilterCoins(coins, filterFromRequest(r)))
}

func (s *Server) handlePreviewCoin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	query := r.FormValue("query")
	if strings.TrimSpace(query) == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	coin, err := s.watchlist.Preview(r.Context(), query)
	if err != nil {
		s.fail(w, "Failed to preview coin", err)
		return
	}
	s.render(w, "coin_form", coinFormView{Coin: coin, Networks: domain.Networks, Statuses: domain.Statuses})
}

func (s *Server) handleEditCoinForm(w http.ResponseWriter, r *http.Request) {
	coin, err := s.watchlist.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, "Failed to load coin", err)
		return
	}
	s.render(w, "coin_form", coinFormView{Coin: coin, Networks: domain.Networks, Statuses: domain.Statuses})
}

func coinFromForm(r *http.Request) *domain.Coin {
	return &domain.Coin{
		Name:           r.FormValue("name"),
		MarketCap:      r.FormValue("market_cap"),
		Liquidity:      r.FormValue("liquidity"),
		Age:            r.FormValue("age"),
		PriceChange:    r.FormValue("price_change"),
		Network:        domain.Network(r.FormValue("network")),
		Status:         domain.Status(r.FormValue("status")),
		CustomLink:     r.FormValue("custom_link"),
		DexScreenerURL: r.FormValue("dex_screener_url"),
		Notes:          r.FormValue("notes"),
		IsFavorite:     r.FormValue("is_favorite") == "on" || r.FormValue("is_favorite") == "true",
	}
}

func (s *Server) handleAddCoin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if _, err := s.watchlist.Create(r.Context(), coinFromForm(r)); err != nil {
		s.fail(w, "Failed to save coin", err)
		return
	}
	listChanged(w, "refresh-coins")
}

func (s *Server) handleUpdateCoin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	coin := coinFromForm(r)
	coin.ID = r.PathValue("id")
	if _, err := s.watchlist.Update(r.Context(), coin); err != nil {
		s.fail(w, "Failed to update coin", err)
		return
	}
	listChanged(w, "refresh-coins")
}

func (s *Server) handleToggleCoinFavorite(w http.ResponseWriter, r *http.Request) {
	if _, err := s.watchlist.ToggleFavorite(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, "Failed to toggle favorite", err)
		return
	}
	listChanged(w, "refresh-coins")
}

func (s *Server) handleDeleteCoin(w http.ResponseWriter, r *http.Request) {
	if err := s.watchlist.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, "Failed to delete coin", err)
		return
	}
	listChanged(w, "refresh-coins")
}

// Wallets

func (s *Server) handleWalletsTable(w http.ResponseWriter, r *http.Request) {
	wallets, err := s.wallets.List(r.Context())
	if err != nil {
		s.fail(w, "Failed to list wallets", err)
		return
	}
	s.render(w, "wallets_table", usecase.FilterWallets(wallets, filterFromRequest(r)))
}

func walletFromForm(r *http.Request) *domain.Wallet {
	wallet := domain.NewWallet()
	wallet.Address = r.FormValue("address")
	wallet.BuyVolume = r.FormValue("buy_volume")
	wallet.SellVolume = r.FormValue("sell_volume")
	wallet.Profit = r.FormValue("profit")
	wallet.Source = r.FormValue("source")
	wallet.Age = r.FormValue("age")
	wallet.CustomLink = r.FormValue("custom_link")
	wallet.Notes = r.FormValue("notes")
	wallet.IsFavorite = r.FormValue("is_favorite") == "on" || r.FormValue("is_favorite") == "true"
	if v := r.FormValue("network"); v != "" {
		wallet.Network = domain.Network(v)
	}
	if v := r.FormValue("status"); v != "" {
		wallet.Status = domain.Status(v)
	}
	if v := r.FormValue("multiplier"); v != "" {
		wallet.Multiplier = v
	}
	if v, err := strconv.Atoi(r.FormValue("win_rate")); err == nil {
		wallet.WinRate = v
	}
	return wallet
}

// handleParseWalletForm runs the snippet parser and re-renders the form with
// the extracted fields filled in.
func (s *Server) handleParseWalletForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	wallet := walletFromForm(r)
	wallet.ID = r.FormValue("id")
	s.wallets.ApplySnippet(wallet, r.FormValue("snippet"))
	s.wallets.ResolveSource(r.Context(), wallet)
	s.render(w, "wallet_form", walletFormView{Wallet: wallet, Networks: domain.Networks, Statuses: domain.Statuses})
}

func (s *Server) handleEditWalletForm(w http.ResponseWriter, r *http.Request) {
	wallet, err := s.wallets.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, "Failed to load wallet", err)
		return
	}
	s.render(w, "wallet_form", walletFormView{Wallet: wallet, Networks: domain.Networks, Statuses: domain.Statuses})
}

func (s *Server) handleAddWallet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	wallet := walletFromForm(r)
	s.wallets.ApplySnippet(wallet, r.FormValue("snippet"))
	if _, err := s.wallets.Create(r.Context(), wallet); err != nil {
		s.fail(w, "Failed to save wallet", err)
		return
	}
	listChanged(w, "refresh-wallets")
}

func (s *Server) handleUpdateWallet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	wallet := walletFromForm(r)
	wallet.ID = r.PathValue("id")
	s.wallets.ApplySnippet(wallet, r.FormValue("snippet"))
	if _, err := s.wallets.Update(r.Context(), wallet); err != nil {
		s.fail(w, "Failed to update wallet", err)
		return
	}
	listChanged(w, "refresh-wallets")
}

func (s *Server) handleToggleWalletFavorite(w http.ResponseWriter, r *http.Request) {
	if _, err := s.wallets.ToggleFavorite(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, "Failed to toggle favorite", err)
		return
	}
	listChanged(w, "refresh-wallets")
}

func (s *Server) handleDeleteWallet(w http.ResponseWriter, r *http.Request) {
	if err := s.wallets.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, "Failed to delete wallet", err)
		return
	}
	listChanged(w, "refresh-wallets")
}
