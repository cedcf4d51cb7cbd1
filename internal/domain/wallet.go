package domain

// Wallet is a tracked trader wallet.
type Wallet struct {
	ID         string  `json:"id"`
	Address    string  `json:"address"`
	BuyVolume  string  `json:"buyVolume"`
	SellVolume string  `json:"sellVolume"`
	Profit     string  `json:"profit"` // signed, "+$150" / "-$20"
	Source     string  `json:"source"`
	Network    Network `json:"network"`
	Age        string  `json:"age"`
	DateAdded  string  `json:"dateAdded"`
	Multiplier string  `json:"multiplier"` // "2.5x"
	WinRate    int     `json:"winRate"`    // 0-100
	Status     Status  `json:"status"`
	CustomLink string  `json:"customLink,omitempty"`
	Notes      string  `json:"notes,omitempty"`
	IsFavorite bool    `json:"isFavorite"`
}

// NewWallet returns a wallet carrying the form defaults.
func NewWallet() *Wallet {
	return &Wallet{
		Network:    NetworkSolana,
		Status:     StatusGood,
		WinRate:    50,
		Multiplier: "1x",
	}
}
