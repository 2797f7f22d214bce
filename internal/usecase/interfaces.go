package usecase

import (
	"context"

	"github.com/iho/gobank/internal/domain"
)

// AccountRegistry holds the live accounts. Accounts exist in memory only;
// the registry never persists anything.
type AccountRegistry interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
