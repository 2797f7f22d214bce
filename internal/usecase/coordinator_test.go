package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rs/zerolog"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
	"github.com/iho/gobank/internal/usecase/mocks"
)

func newCoordinator(t *testing.T, accounts ...*domain.Account) *usecase.TransferCoordinator {
	t.Helper()

	ctrl := gomock.NewController(t)

	byID := make(map[string]*domain.Account)
	for _, a := range accounts {
		byID[a.ID] = a
	}

	registry := mocks.NewMockAccountRegistry(ctrl)
	registry.EXPECT().GetByID(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(
		func(_ context.Context, id string) (*domain.Account, error) {
			account, ok := byID[id]
			if !ok {
				return nil, domain.ErrAccountNotFound
			}
			return account, nil
		})

	var seq int64
	idGen := mocks.NewMockIDGenerator(ctrl)
	idGen.EXPECT().Generate().AnyTimes().DoAndReturn(func() string {
		return fmt.Sprintf("tx-%d", atomic.AddInt64(&seq, 1))
	})

	return usecase.NewTransferCoordinator(registry, idGen, domain.NopJournal{}, nil, zerolog.Nop())
}

func mustAccount(t *testing.T, id string, balance int64) *domain.Account {
	t.Helper()

	account, err := domain.NewAccount(id, decimal.NewFromInt(balance))
	require.NoError(t, err)

	return account
}

func TestTransferCoordinator_Validation(t *testing.T) {
	sender := mustAccount(t, "acc-1", 100)
	receiver := mustAccount(t, "acc-2", 100)
	uc := newCoordinator(t, sender, receiver)

	tests := []struct {
		name        string
		input       usecase.TransferInput
		expectError error
	}{
		{
			name:        "same account",
			input:       usecase.TransferInput{SenderID: "acc-1", ReceiverID: "acc-1", Amount: decimal.NewFromInt(10)},
			expectError: domain.ErrSameAccount,
		},
		{
			name:        "zero amount",
			input:       usecase.TransferInput{SenderID: "acc-1", ReceiverID: "acc-2", Amount: decimal.Zero},
			expectError: domain.ErrInvalidAmount,
		},
		{
			name:        "negative amount",
			input:       usecase.TransferInput{SenderID: "acc-1", ReceiverID: "acc-2", Amount: decimal.NewFromInt(-5)},
			expectError: domain.ErrInvalidAmount,
		},
		{
			name:        "unknown sender",
			input:       usecase.TransferInput{SenderID: "nope", ReceiverID: "acc-2", Amount: decimal.NewFromInt(10)},
			expectError: domain.ErrAccountNotFound,
		},
		{
			name:        "unknown receiver",
			input:       usecase.TransferInput{SenderID: "acc-1", ReceiverID: "nope", Amount: decimal.NewFromInt(10)},
			expectError: domain.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := uc.Transfer(context.Background(), tt.input)
			require.ErrorIs(t, err, tt.expectError)
			require.Nil(t, tx)

			// Validation happens before any state mutation.
			require.True(t, sender.Balance().Equal(decimal.NewFromInt(100)))
			require.True(t, receiver.Balance().Equal(decimal.NewFromInt(100)))
		})
	}
}

func TestTransferCoordinator_SuccessfulTransferThenOverdraft(t *testing.T) {
	sender := mustAccount(t, "acc-1", 100)
	receiver := mustAccount(t, "acc-2", 100)
	uc := newCoordinator(t, sender, receiver)

	tx, err := uc.Transfer(context.Background(), usecase.TransferInput{
		SenderID:   "acc-1",
		ReceiverID: "acc-2",
		Amount:     decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeSucceeded, tx.Outcome())
	require.True(t, sender.Balance().IsZero())
	require.True(t, receiver.Balance().Equal(decimal.NewFromInt(200)))

	// Overdraft attempt afterwards fails and changes nothing.
	tx, err = uc.Transfer(context.Background(), usecase.TransferInput{
		SenderID:   "acc-1",
		ReceiverID: "acc-2",
		Amount:     decimal.NewFromInt(200),
	})
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeFailed, tx.Outcome())
	require.True(t, sender.Balance().IsZero())
	require.True(t, receiver.Balance().Equal(decimal.NewFromInt(200)))
}

func TestTransferCoordinator_ClosedReceiver(t *testing.T) {
	sender := mustAccount(t, "acc-1", 200)
	receiver := mustAccount(t, "acc-2", 0)
	require.NoError(t, receiver.Close())
	uc := newCoordinator(t, sender, receiver)

	tx, err := uc.Transfer(context.Background(), usecase.TransferInput{
		SenderID:   "acc-1",
		ReceiverID: "acc-2",
		Amount:     decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeFailed, tx.Outcome())
	require.True(t, tx.Compensated())
	require.True(t, sender.Balance().Equal(decimal.NewFromInt(200)))
	require.True(t, receiver.Balance().IsZero())
}

func TestTransferCoordinator_FraudSender(t *testing.T) {
	sender := mustAccount(t, "acc-1", 200)
	require.NoError(t, sender.SetFraud(true))
	receiver := mustAccount(t, "acc-2", 100)
	uc := newCoordinator(t, sender, receiver)

	tx, err := uc.Transfer(context.Background(), usecase.TransferInput{
		SenderID:   "acc-1",
		ReceiverID: "acc-2",
		Amount:     decimal.NewFromInt(200),
	})
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeFailed, tx.Outcome())
	require.True(t, sender.Balance().Equal(decimal.NewFromInt(200)))
	require.True(t, receiver.Balance().Equal(decimal.NewFromInt(100)))
}

func TestTransferCoordinator_ConcurrentDisjointPairs(t *testing.T) {
	const pairs = 16

	accounts := make([]*domain.Account, 0, pairs*2)
	for i := 0; i < pairs*2; i++ {
		accounts = append(accounts, mustAccount(t, fmt.Sprintf("acc-%d", i), 1000))
	}

	uc := newCoordinator(t, accounts...)

	var wg sync.WaitGroup
	wg.Add(pairs)

	for i := 0; i < pairs; i++ {
		go func(i int) {
			defer wg.Done()

			_, err := uc.Transfer(context.Background(), usecase.TransferInput{
				SenderID:   fmt.Sprintf("acc-%d", i*2),
				ReceiverID: fmt.Sprintf("acc-%d", i*2+1),
				Amount:     decimal.NewFromInt(250),
			})
			require.NoError(t, err)
		}(i)
	}

	wg.Wait()

	// Each pair's final balances match the sequential result.
	for i := 0; i < pairs; i++ {
		require.True(t, accounts[i*2].Balance().Equal(decimal.NewFromInt(750)),
			"sender %d balance = %s", i*2, accounts[i*2].Balance())
		require.True(t, accounts[i*2+1].Balance().Equal(decimal.NewFromInt(1250)),
			"receiver %d balance = %s", i*2+1, accounts[i*2+1].Balance())
	}
}

func TestTransferCoordinator_ConcurrentFanIn(t *testing.T) {
	const senders = 9
	const transfersEach = 200

	accounts := make([]*domain.Account, 0, senders+1)
	for i := 0; i < senders; i++ {
		accounts = append(accounts, mustAccount(t, fmt.Sprintf("acc-%d", i), transfersEach))
	}
	sink := mustAccount(t, "sink", 0)
	accounts = append(accounts, sink)

	uc := newCoordinator(t, accounts...)

	var wg sync.WaitGroup
	wg.Add(senders)

	for i := 0; i < senders; i++ {
		go func(i int) {
			defer wg.Done()

			for j := 0; j < transfersEach; j++ {
				_, err := uc.Transfer(context.Background(), usecase.TransferInput{
					SenderID:   fmt.Sprintf("acc-%d", i),
					ReceiverID: "sink",
					Amount:     decimal.NewFromInt(1),
				})
				require.NoError(t, err)
			}
		}(i)
	}

	wg.Wait()

	// Some credits may still be pending in a drain owned by another
	// goroutine at the moment its Transfer returned; all Transfer calls
	// have returned here, so every queue has been fully drained.
	require.True(t, sink.Balance().Equal(decimal.NewFromInt(senders*transfersEach)),
		"sink balance = %s", sink.Balance())

	total := sink.Balance()
	for i := 0; i < senders; i++ {
		require.True(t, accounts[i].Balance().IsZero(), "sender %d balance = %s", i, accounts[i].Balance())
		total = total.Add(accounts[i].Balance())
	}
	require.True(t, total.Equal(decimal.NewFromInt(senders*transfersEach)))
}
