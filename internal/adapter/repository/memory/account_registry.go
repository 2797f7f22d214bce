package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/iho/gobank/internal/domain"
)

// AccountRegistry is an in-memory implementation of usecase.AccountRegistry.
// Accounts are never deleted, only marked closed, so the map only grows.
type AccountRegistry struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

// NewAccountRegistry creates an empty registry.
func NewAccountRegistry() *AccountRegistry {
	return &AccountRegistry{
		accounts: make(map[string]*domain.Account),
	}
}

// Create registers a new account.
func (r *AccountRegistry) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; ok {
		return domain.ErrAccountExists
	}

	r.accounts[account.ID] = account

	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRegistry) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	return account, nil
}

// List returns accounts ordered by ID with pagination.
func (r *AccountRegistry) List(_ context.Context, limit, offset int) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.accounts))
	for id := range r.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if offset >= len(ids) {
		return nil, nil
	}

	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}

	accounts := make([]*domain.Account, 0, end-offset)
	for _, id := range ids[offset:end] {
		accounts = append(accounts, r.accounts[id])
	}

	return accounts, nil
}
