package domain

// Network identifies the chain a token or wallet lives on.
type Network string

const (
	NetworkSolana   Network = "Solana"
	NetworkEthereum Network = "Ethereum"
	NetworkBase     Network = "Base"
	NetworkBSC      Network = "BSC"
	NetworkOther    Network = "Other"
)

// Networks lists every network in display order.
var Networks = []Network{NetworkSolana, NetworkEthereum, NetworkBase, NetworkBSC, NetworkOther}

// ParseNetwork maps a stored or submitted value onto the closed set.
// Anything unknown becomes NetworkOther.
func ParseNetwork(s string) Network {
	for _, n := range Networks {
		if string(n) == s {
			return n
		}
	}
	return NetworkOther
}

// Status is the health tier of a token or wallet.
type Status string

const (
	StatusGood      Status = "Good"
	StatusExcellent Status = "Excellent"
)

var Statuses = []Status{StatusGood, StatusExcellent}

// ParseStatus maps a stored or submitted value onto the closed set, defaulting to Good.
func ParseStatus(s string) Status {
	if s == string(StatusExcellent) {
		return StatusExcellent
	}
	return StatusGood
}

// Coin is a watchlist entry. MarketCap, Liquidity and Age are display
// strings formatted once when the entry is ingested.
type Coin struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	MarketCap      string  `json:"marketCap"`
	Liquidity      string  `json:"liquidity"`
	Age            string  `json:"age"`
	PriceChange    string  `json:"priceChange"`
	DateAdded      string  `json:"dateAdded"` // YYYY-MM-DD
	Network        Network `json:"network"`
	Status         Status  `json:"status"`
	CustomLink     string  `json:"customLink,omitempty"`
	DexScreenerURL string  `json:"dexScreenerUrl,omitempty"`
	Notes          string  `json:"notes,omitempty"`
	IsFavorite     bool    `json:"isFavorite"`
}

// TokenSummary is the normalized view of one market-data pair record.
type TokenSummary struct {
	Name        string  `json:"name"`
	MarketCap   string  `json:"marketCap"`
	Liquidity   string  `json:"liquidity"`
	Age         string  `json:"age"`
	PriceChange string  `json:"priceChange,omitempty"`
	Network     Network `json:"network"`
	Status      Status  `json:"status"`
	URL         string  `json:"url"`
}
