package usecase

import (
	"strings"

	"github.com/vitos/cryptotrackr/internal/domain"
)

// FilterAll disables a network or status filter.
const FilterAll = "All"

// ListFilter narrows a list view. Empty fields match everything.
type ListFilter struct {
	Query   string
	Network string
	Status  string
}

func (f ListFilter) matchesEnums(network domain.Network, status domain.Status) bool {
	if f.Network != "" && f.Network != FilterAll && string(network) != f.Network {
		return false
	}
	if f.Status != "" && f.Status != FilterAll && string(status) != f.Status {
		return false
	}
	return true
}

// FilterCoins keeps coins whose name contains the query (case-insensitive)
// and that match the network and status filters.
func FilterCoins(coins []*domain.Coin, f ListFilter) []*domain.Coin {
	q := strings.ToLower(f.Query)
	var out []*domain.Coin
	for _, c := range coins {
		if !strings.Contains(strings.ToLower(c.Name), q) {
			continue
		}
		if !f.matchesEnums(c.Network, c.Status) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// FilterWallets matches the query against address or source.
func FilterWallets(wallets []*domain.Wallet, f ListFilter) []*domain.Wallet {
	q := strings.ToLower(f.Query)
	var out []*domain.Wallet
	for _, w := range wallets {
		if !strings.Contains(strings.ToLower(w.Address), q) && !strings.Contains(strings.ToLower(w.Source), q) {
			continue
		}
		if !f.matchesEnums(w.Network, w.Status) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// ComputeStats builds the summary row. The dominant network is the most
// frequent one across coins then wallets; ties go to the first seen.
func ComputeStats(coins []*domain.Coin, wallets []*domain.Wallet) domain.Stats {
	stats := domain.Stats{
		TotalCoins:      len(coins),
		TotalWallets:    len(wallets),
		DominantNetwork: "N/A",
	}

	counts := make(map[domain.Network]int)
	var order []domain.Network
	count := func(n domain.Network) {
		if _, seen := counts[n]; !seen {
			order = append(order, n)
		}
		counts[n]++
	}

	for _, c := range coins {
		if c.IsFavorite {
			stats.FavoriteCount++
		}
		count(c.Network)
	}
	for _, w := range wallets {
		if w.IsFavorite {
			stats.FavoriteCount++
		}
		count(w.Network)
	}

	best := 0
	for _, n := range order {
		if counts[n] > best {
			best = counts[n]
			stats.DominantNetwork = string(n)
		}
	}
	return stats
}
