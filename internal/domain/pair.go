package domain

// Pair is one trading-pair record as returned by the market-data search API.
// Optional values are pointers so the normalizer can tell "absent" from zero.
type Pair struct {
	ChainID       string      `json:"chainId"`
	DexID         string      `json:"dexId"`
	URL           string      `json:"url"`
	PairAddress   string      `json:"pairAddress"`
	BaseToken     *PairToken  `json:"baseToken"`
	QuoteToken    *PairToken  `json:"quoteToken"`
	PriceUSD      string      `json:"priceUsd"`
	PriceChange   *PairChange `json:"priceChange"`
	Liquidity     *Liquidity  `json:"liquidity"`
	FDV           *float64    `json:"fdv"`
	MarketCap     *float64    `json:"marketCap"`
	PairCreatedAt *int64      `json:"pairCreatedAt"` // unix ms
}

type PairToken struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

type PairChange struct {
	H24 *float64 `json:"h24"`
}

type Liquidity struct {
	USD   *float64 `json:"usd"`
	Base  *float64 `json:"base"`
	Quote *float64 `json:"quote"`
}
