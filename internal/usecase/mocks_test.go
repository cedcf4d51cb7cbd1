package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/vitos/cryptotrackr/internal/domain"
)

// MockSearcher returns canned pairs or an error.
type MockSearcher struct {
	Pairs   []domain.Pair
	Err     error
	LastKey string
	Calls   int
}

func (m *MockSearcher) SearchPairs(ctx context.Context, key string) ([]domain.Pair, error) {
	m.Calls++
	m.LastKey = key
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Pairs, nil
}

// MockRepo is an in-memory coin and wallet repository. Insertion order is kept
// and lists come back newest first.
type MockRepo struct {
	mu      sync.Mutex
	coins   []*domain.Coin
	wallets []*domain.Wallet
	FailAll error
}

func (m *MockRepo) ListCoins(ctx context.Context) ([]*domain.Coin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll != nil {
		return nil, m.FailAll
	}
	out := make([]*domain.Coin, 0, len(m.coins))
	for i := len(m.coins) - 1; i >= 0; i-- {
		c := *m.coins[i]
		out = append(out, &c)
	}
	return out, nil
}

func (m *MockRepo) GetCoin(ctx context.Context, id string) (*domain.Coin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll != nil {
		return nil, m.FailAll
	}
	for _, c := range m.coins {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockRepo) InsertCoin(ctx context.Context, coin *domain.Coin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll != nil {
		return m.FailAll
	}
	c := *coin
	m.coins = append(m.coins, &c)
	return nil
}

func (m *MockRepo) UpdateCoin(ctx context.Context, coin *domain.Coin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll != nil {
		return m.FailAll
	}
	for i, c := range m.coins {
		if c.ID == coin.ID {
			updated := *coin
			updated.DateAdded = c.DateAdded
			m.coins[i] = &updated
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *MockRepo) SetCoinFavorite(ctx context.Context, id string, favorite bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.coins {
		if c.ID == id {
			c.IsFavorite = favorite
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *MockRepo) DeleteCoin(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll != nil {
		return m.FailAll
	}
	for i, c := range m.coins {
		if c.ID == id {
			m.coins = append(m.coins[:i], m.coins[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MockRepo) ListWallets(ctx context.Context) ([]*domain.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll != nil {
		return nil, m.FailAll
	}
	out := make([]*domain.Wallet, 0, len(m.wallets))
	for i := len(m.wallets) - 1; i >= 0; i-- {
		w := *m.wallets[i]
		out = append(out, &w)
	}
	return out, nil
}

func (m *MockRepo) GetWallet(ctx context.Context, id string) (*domain.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll != nil {
		return nil, m.FailAll
	}
	for _, w := range m.wallets {
		if w.ID == id {
			cp := *w
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockRepo) InsertWallet(ctx context.Context, wallet *domain.Wallet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll != nil {
		return m.FailAll
	}
	w := *wallet
	m.wallets = append(m.wallets, &w)
	return nil
}

func (m *MockRepo) UpdateWallet(ctx context.Context, wallet *domain.Wallet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll != nil {
		return m.FailAll
	}
	for i, w := range m.wallets {
		if w.ID == wallet.ID {
			updated := *wallet
			updated.DateAdded = w.DateAdded
			m.wallets[i] = &updated
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *MockRepo) SetWalletFavorite(ctx context.Context, id string, favorite bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.wallets {
		if w.ID == id {
			w.IsFavorite = favorite
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *MockRepo) DeleteWallet(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll != nil {
		return m.FailAll
	}
	for i, w := range m.wallets {
		if w.ID == id {
			m.wallets = append(m.wallets[:i], m.wallets[i+1:]...)
			break
		}
	}
	return nil
}

// MockNotifier records change events.
type MockNotifier struct {
	Events []string
}

func (m *MockNotifier) Notify(kind, action, id string) {
	m.Events = append(m.Events, kind+":"+action)
}

var errDBDown = errors.New("database is locked")

func ptrF(v float64) *float64 { return &v }
func ptrI(v int64) *int64     { return &v }
