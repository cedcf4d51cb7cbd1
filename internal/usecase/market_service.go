package usecase

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/vitos/cryptotrackr/internal/domain"
	"go.uber.org/zap"
)

// ExcellentLiquidityUSD is the liquidity above which a pair is rated Excellent.
const ExcellentLiquidityUSD = 500000.0

var dexScreenerURLPattern = regexp.MustCompile(`dexscreener\.com/[^/]+/([a-zA-Z0-9]+)`)

// MarketService resolves user queries into token summaries using the market-data search API.
type MarketService struct {
	searcher domain.PairSearcher
	logger   *zap.Logger
	timeNow  func() time.Time // For testing
}

func NewMarketService(searcher domain.PairSearcher, logger *zap.Logger) *MarketService {
	return &MarketService{
		searcher: searcher,
		logger:   logger,
		timeNow:  time.Now,
	}
}

// Lookup searches for query (a pair URL or a plain search term) and normalizes the
// best match. Transport failures, non-2xx responses, an empty result set and a
// malformed first record all come back as errors; nothing is retried.
func (s *MarketService) Lookup(ctx context.Context, query string) (*domain.TokenSummary, error) {
	key := ExtractSearchKey(query)
	if key == "" {
		s.logger.Warn("Empty search key", zap.String("query", query))
		return nil, fmt.Errorf("%w: empty search key in %q", domain.ErrNoMatch, query)
	}

	pairs, err := s.searcher.SearchPairs(ctx, key)
	if err != nil {
		s.logger.Error("Market data lookup failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	if len(pairs) == 0 {
		s.logger.Warn("No pairs found", zap.String("key", key))
		return nil, fmt.Errorf("%w: %s", domain.ErrNoMatch, key)
	}

	summary, err := s.Normalize(pairs[0])
	if err != nil {
		s.logger.Error("Failed to normalize pair", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	s.logger.Debug("Lookup resolved",
		zap.String("key", key),
		zap.String("name", summary.Name),
		zap.String("network", string(summary.Network)),
	)
	return summary, nil
}

// Normalize maps one pair record onto a TokenSummary.
func (s *MarketService) Normalize(pair domain.Pair) (*domain.TokenSummary, error) {
	if pair.BaseToken == nil || pair.BaseToken.Symbol == "" {
		return nil, fmt.Errorf("%w: pair %q has no base token symbol", domain.ErrMalformedResponse, pair.PairAddress)
	}

	liquidity := 0.0
	if pair.Liquidity != nil && pair.Liquidity.USD != nil {
		liquidity = *pair.Liquidity.USD
	}

	// A zero market cap counts as missing.
	marketCap := 0.0
	if pair.MarketCap != nil && *pair.MarketCap != 0 {
		marketCap = *pair.MarketCap
	} else if pair.FDV != nil {
		marketCap = *pair.FDV
	}

	priceChange := ""
	if pair.PriceChange != nil && pair.PriceChange.H24 != nil {
		priceChange = fmt.Sprintf("%+.2f%%", *pair.PriceChange.H24)
	}

	return &domain.TokenSummary{
		Name:        pair.BaseToken.Symbol,
		MarketCap:   FormatMagnitude(marketCap),
		Liquidity:   FormatMagnitude(liquidity),
		Age:         AgeLabel(pair.PairCreatedAt, s.timeNow()),
		PriceChange: priceChange,
		Network:     ClassifyNetwork(pair.ChainID),
		Status:      ClassifyStatus(liquidity),
		URL:         pair.URL,
	}, nil
}

// ExtractSearchKey turns a pair URL into the search key the API expects.
// Plain search terms pass through trimmed.
func ExtractSearchKey(query string) string {
	term := strings.TrimSpace(query)
	if m := dexScreenerURLPattern.FindStringSubmatch(term); len(m) == 2 && m[1] != "" {
		return m[1]
	}
	if strings.Contains(term, "/") {
		parts := strings.Split(term, "/")
		return parts[len(parts)-1]
	}
	return term
}

// IsMarketURL reports whether s looks like a pair link the lookup understands.
func IsMarketURL(s string) bool {
	return strings.Contains(s, "dexscreener.com")
}

// ClassifyNetwork maps a chain identifier onto a Network. Checks run in the
// order sol, eth, base, bsc; the first substring hit wins.
func ClassifyNetwork(chainID string) domain.Network {
	id := strings.ToLower(chainID)
	switch {
	case strings.Contains(id, "sol"):
		return domain.NetworkSolana
	case strings.Contains(id, "eth"):
		return domain.NetworkEthereum
	case strings.Contains(id, "base"):
		return domain.NetworkBase
	case strings.Contains(id, "bsc"):
		return domain.NetworkBSC
	}
	return domain.NetworkOther
}

func ClassifyStatus(liquidityUSD float64) domain.Status {
	if liquidityUSD > ExcellentLiquidityUSD {
		return domain.StatusExcellent
	}
	return domain.StatusGood
}

// AgeLabel buckets the time since createdAtMs (unix ms) into the coarsest unit:
// "45m", "5h", "10d", "2mo". A missing timestamp gives "New".
func AgeLabel(createdAtMs *int64, now time.Time) string {
	if createdAtMs == nil || *createdAtMs == 0 {
		return "New"
	}

	diff := now.Sub(time.UnixMilli(*createdAtMs))
	minutes := int64(math.Floor(diff.Minutes()))
	hours := int64(math.Floor(diff.Hours()))
	days := int64(math.Floor(diff.Hours() / 24))

	switch {
	case minutes < 60:
		return fmt.Sprintf("%dm", minutes)
	case hours < 24:
		return fmt.Sprintf("%dh", hours)
	case days < 30:
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dmo", days/30)
}
