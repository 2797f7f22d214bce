package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// AccountUseCase handles account lifecycle and status transitions.
type AccountUseCase struct {
	registry AccountRegistry
	idGen    IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(registry AccountRegistry, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		registry: registry,
		idGen:    idGen,
	}
}

// OpenAccountInput represents input for opening an account.
type OpenAccountInput struct {
	ID             string
	OpeningBalance decimal.Decimal
}

// OpenAccount opens a new account. An empty ID is generated.
func (uc *AccountUseCase) OpenAccount(ctx context.Context, input OpenAccountInput) (*domain.Account, error) {
	id := input.ID
	if id == "" {
		id = uc.idGen.Generate()
	}

	account, err := domain.NewAccount(id, input.OpeningBalance)
	if err != nil {
		return nil, err
	}

	if err := uc.registry.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.registry.GetByID(ctx, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.registry.List(ctx, input.Limit, input.Offset)
}

// SetFraud flips an account's fraud flag. Operator-only at the API boundary.
func (uc *AccountUseCase) SetFraud(ctx context.Context, id string, flag bool) (*domain.Account, error) {
	account, err := uc.registry.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := account.SetFraud(flag); err != nil {
		return nil, err
	}

	return account, nil
}

// CloseAccount marks an account closed. Operator-only at the API boundary.
func (uc *AccountUseCase) CloseAccount(ctx context.Context, id string) (*domain.Account, error) {
	account, err := uc.registry.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := account.Close(); err != nil {
		return nil, err
	}

	return account, nil
}
