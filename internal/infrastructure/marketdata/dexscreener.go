package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vitos/cryptotrackr/internal/domain"
	"go.uber.org/zap"
)

const (
	DexScreenerBaseURL = "https://api.dexscreener.com"
	defaultTimeout     = 10 * time.Second
)

// DexScreenerClient talks to the public DexScreener REST API.
type DexScreenerClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewDexScreenerClient(baseURL string, timeout time.Duration, logger *zap.Logger) *DexScreenerClient {
	if baseURL == "" {
		baseURL = DexScreenerBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &DexScreenerClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type searchResponse struct {
	SchemaVersion string        `json:"schemaVersion"`
	Pairs         []domain.Pair `json:"pairs"`
}

// SearchPairs runs a free-text pair search. Pairs come back in the API's own
// ranking; a missing "pairs" field yields an empty slice.
func (c *DexScreenerClient) SearchPairs(ctx context.Context, key string) ([]domain.Pair, error) {
	path := "/latest/dex/search?" + url.Values{"q": {key}}.Encode()

	body, err := c.sendRequest(ctx, path)
	if err != nil {
		return nil, err
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	c.logger.Debug("DexScreener search",
		zap.String("q", key),
		zap.Int("pairs", len(result.Pairs)),
	)
	return result.Pairs, nil
}

func (c *DexScreenerClient) sendRequest(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: API request failed with status %d", domain.ErrLookupFailed, resp.StatusCode)
	}

	return respBody, nil
}
