package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitos/cryptotrackr/internal/domain"
	"github.com/vitos/cryptotrackr/internal/infrastructure/storage"
	"github.com/vitos/cryptotrackr/internal/usecase"
	"go.uber.org/zap"
)

type stubSearcher struct {
	pairs []domain.Pair
	err   error
}

func (s *stubSearcher) SearchPairs(ctx context.Context, key string) ([]domain.Pair, error) {
	return s.pairs, s.err
}

func bonkPair() domain.Pair {
	liq := 1843220.5
	mc := 1500000000.0
	return domain.Pair{
		ChainID:   "solana",
		URL:       "https://dexscreener.com/solana/8slbnzoa1cfnvmjlpfp98zlanfsycfapfjkmbixnlwxj",
		BaseToken: &domain.PairToken{Symbol: "Bonk"},
		Liquidity: &domain.Liquidity{USD: &liq},
		MarketCap: &mc,
	}
}

type testEnv struct {
	server   *Server
	hub      *Hub
	searcher *stubSearcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "trackr.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	log := zap.NewNop()
	searcher := &stubSearcher{pairs: []domain.Pair{bonkPair()}}
	hub := NewHub(log)
	market := usecase.NewMarketService(searcher, log)
	watchlist := usecase.NewWatchlistService(store, market, hub, log)
	wallets := usecase.NewWalletService(store, market, hub, log)

	srv := NewServer(0, watchlist, wallets, market, hub, SetupInfo{Schema: storage.SchemaSQL, Location: store.Path()}, log)
	return &testEnv{server: srv, hub: hub, searcher: searcher}
}

func (e *testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) postForm(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func TestServer_CoinLifecycleJSON(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/coins", `{"name":"PEPE","network":"Ethereum"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Newest first, so WIF wins the network tie below.
	rec = env.do(t, http.MethodPost, "/api/coins", `{"name":"WIF","marketCap":"$2.10B","network":"Solana","status":"Excellent"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[domain.Coin](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.DateAdded)

	rec = env.do(t, http.MethodGet, "/api/coins?network=Solana", "")
	require.Equal(t, http.StatusOK, rec.Code)
	coins := decodeBody[[]domain.Coin](t, rec)
	require.Len(t, coins, 1)
	assert.Equal(t, "WIF", coins[0].Name)

	rec = env.do(t, http.MethodPut, "/api/coins/"+created.ID, `{"name":"dogwifhat","marketCap":"$2.20B","network":"Solana","status":"Excellent"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dogwifhat", decodeBody[domain.Coin](t, rec).Name)

	rec = env.do(t, http.MethodPost, "/api/coins/"+created.ID+"/favorite", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeBody[domain.Coin](t, rec).IsFavorite)

	rec = env.do(t, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Stats{TotalCoins: 2, FavoriteCount: 1, DominantNetwork: "Solana"}, decodeBody[domain.Stats](t, rec))

	rec = env.do(t, http.MethodDelete, "/api/coins/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/coins", "")
	assert.Len(t, decodeBody[[]domain.Coin](t, rec), 1)
}

func TestServer_EmptyListIsArray(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/wallets", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestServer_Errors(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/coins/missing/favorite", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/coins", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/coins", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/wallets", `{"source":"BONK"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Lookup(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/lookup?q="+url.QueryEscape("https://dexscreener.com/solana/8sLbNZoA1cfnvMJLPfp98ZLAnFSYCFApfJKMbiXNLwxj"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decodeBody[domain.TokenSummary](t, rec)
	assert.Equal(t, "Bonk", summary.Name)
	assert.Equal(t, "$1.50B", summary.MarketCap)
	assert.Equal(t, "$1.84M", summary.Liquidity)
	assert.Equal(t, domain.StatusExcellent, summary.Status)

	env.searcher.pairs = nil
	rec = env.do(t, http.MethodGet, "/api/lookup?q=nothing", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to parse data"}`, rec.Body.String())

	// A pair URL without an address is a lookup failure, not bad input.
	rec = env.do(t, http.MethodGet, "/api/lookup?q="+url.QueryEscape("https://dexscreener.com/solana/"), "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to parse data"}`, rec.Body.String())
}

func TestServer_Parse(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/parse", `{"text":"Buy $100 Sell $250 PnL +$150"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"buyVolume":"$100","sellVolume":"$250","profit":"+$150","multiplier":"2.5x"}`, rec.Body.String())
}

func TestServer_CreateWalletJSON(t *testing.T) {
	env := newTestEnv(t)

	body := `{"address":"7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU",
		"source":"https://dexscreener.com/solana/8sLbNZoA1cfnvMJLPfp98ZLAnFSYCFApfJKMbiXNLwxj",
		"snippet":"Bought $1.2K sold $3K profit $1.8K"}`
	rec := env.do(t, http.MethodPost, "/api/wallets", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	w := decodeBody[domain.Wallet](t, rec)
	assert.Equal(t, "Bonk", w.Source)
	assert.Equal(t, bonkPair().URL, w.CustomLink)
	assert.Equal(t, domain.NetworkSolana, w.Network)
	assert.Equal(t, "$1.2K", w.BuyVolume)
	assert.Equal(t, "$3K", w.SellVolume)
	assert.Equal(t, "+$1.8K", w.Profit)
	assert.Equal(t, "2.5x", w.Multiplier)
	assert.Equal(t, 50, w.WinRate, "form default")
}

func TestServer_Dashboard(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/coins", `{"name":"WIF","network":"Solana"}`)
	env.do(t, http.MethodPost, "/api/wallets", `{"address":"0xabc","network":"Ethereum"}`)
	env.do(t, http.MethodPost, "/api/wallets", `{"address":"7xKXtg","source":"BONK","network":"Solana"}`)

	rec := env.do(t, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "WIF")
	assert.Contains(t, body, "0xabc")
	assert.Contains(t, body, "Dominant Network")
	assert.Contains(t, body, "htmx.trigger(document.body, 'refresh-wallets')", "filter bar refreshes wallets too")

	rec = env.do(t, http.MethodGet, "/coins?q=nothing", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No tokens tracked yet.")

	rec = env.do(t, http.MethodGet, "/wallets?q=bonk&network=Solana", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "7xKXtg")
	assert.NotContains(t, rec.Body.String(), "0xabc")

	rec = env.do(t, http.MethodGet, "/wallets?q=0x&network=Solana", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No wallets tracked yet.")
}

func TestServer_CoinForms(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postForm(t, "/coins/preview", url.Values{"query": {"bonk"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Bonk"`)
	assert.Contains(t, rec.Body.String(), `value="$1.50B"`)

	rec = env.postForm(t, "/coins", url.Values{"name": {"Bonk"}, "network": {"Solana"}, "status": {"Excellent"}})
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "refresh-coins, refresh", rec.Header().Get("HX-Trigger"))

	rec = env.postForm(t, "/coins", url.Values{"name": {"PEPE"}, "network": {"Ethereum"}})
	require.Equal(t, http.StatusNoContent, rec.Code)

	// The list re-fetch carries the filter bar, not the posted form.
	rec = env.do(t, http.MethodGet, "/coins?network=Ethereum", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "PEPE")
	assert.NotContains(t, rec.Body.String(), "Bonk")

	env.searcher.pairs = nil
	rec = env.postForm(t, "/coins/preview", url.Values{"query": {"nothing"}})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to parse data")
}

func TestServer_WalletFormMutations(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postForm(t, "/wallets", url.Values{"address": {"0xabc"}, "snippet": {"Buy $55 Sell $52.25 PnL -$2.75"}})
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "refresh-wallets, refresh", rec.Header().Get("HX-Trigger"))

	rec = env.do(t, http.MethodGet, "/api/wallets", "")
	wallets := decodeBody[[]domain.Wallet](t, rec)
	require.Len(t, wallets, 1)
	assert.Equal(t, "0.9x", wallets[0].Multiplier)
	id := wallets[0].ID

	rec = env.postForm(t, "/wallets/"+id+"/favorite", url.Values{})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodDelete, "/wallets/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "refresh-wallets, refresh", rec.Header().Get("HX-Trigger"))

	rec = env.postForm(t, "/wallets/missing/favorite", url.Values{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfitClass(t *testing.T) {
	assert.Equal(t, "negative", profitClass("-$2.75"))
	assert.Equal(t, "negative", profitClass("$-40"))
	assert.Equal(t, "negative", profitClass("-5.20%"))
	assert.Equal(t, "positive", profitClass("+$150"))
	assert.Equal(t, "positive", profitClass(""))
}

func TestServer_WalletParseForm(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postForm(t, "/wallets/parse", url.Values{"address": {"0xabc"}, "snippet": {"100 250 150"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `value="$100"`)
	assert.Contains(t, body, `value="$250"`)
	assert.Contains(t, body, `value="&#43;$150"`)
	assert.Contains(t, body, `value="2.5x"`)
}

func TestServer_Setup(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/setup", "")
	require.Equal(t, http.StatusOK, rec.Code)
	setup := decodeBody[SetupInfo](t, rec)
	assert.Contains(t, setup.Schema, "CREATE TABLE IF NOT EXISTS wallets")
	assert.True(t, strings.HasSuffix(setup.Location, "trackr.db"))

	rec = env.do(t, http.MethodGet, "/setup", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "CREATE TABLE IF NOT EXISTS tokens")
}
