package domain

// Stats is the dashboard summary row.
type Stats struct {
	TotalCoins      int    `json:"totalCoins"`
	TotalWallets    int    `json:"totalWallets"`
	FavoriteCount   int    `json:"favoriteCount"`
	DominantNetwork string `json:"dominantNetwork"`
}
