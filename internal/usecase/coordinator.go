package usecase

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// TransferCoordinator validates transfer requests and drives the two legs of
// each transaction through the per-account operation queues.
type TransferCoordinator struct {
	registry AccountRegistry
	idGen    IDGenerator
	journal  domain.Journal
	retrier  domain.Retrier
	logger   zerolog.Logger
}

// NewTransferCoordinator creates a new TransferCoordinator.
func NewTransferCoordinator(
	registry AccountRegistry,
	idGen IDGenerator,
	journal domain.Journal,
	retrier domain.Retrier,
	logger zerolog.Logger,
) *TransferCoordinator {
	return &TransferCoordinator{
		registry: registry,
		idGen:    idGen,
		journal:  journal,
		retrier:  retrier,
		logger:   logger,
	}
}

// TransferInput represents a transfer request.
type TransferInput struct {
	SenderID   string
	ReceiverID string
	Amount     decimal.Decimal
}

// Transfer moves funds between two accounts. Validation failures are
// returned before any state mutation. Once the legs are enqueued the call
// never errors: operation-level failures (frozen account, closed account,
// insufficient funds) resolve through reconciliation and compensation, and
// the caller observes them on the returned transaction and in the journal.
//
// The debit is enqueued and drained on the sender's queue before the credit
// touches the receiver's queue, so the debit outcome is always known to the
// transaction by the time the credit applies.
func (uc *TransferCoordinator) Transfer(ctx context.Context, input TransferInput) (*domain.Transaction, error) {
	if input.SenderID == input.ReceiverID {
		return nil, domain.ErrSameAccount
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	sender, err := uc.registry.GetByID(ctx, input.SenderID)
	if err != nil {
		return nil, err
	}

	receiver, err := uc.registry.GetByID(ctx, input.ReceiverID)
	if err != nil {
		return nil, err
	}

	tx := domain.NewTransaction(uc.idGen.Generate(), sender, receiver, input.Amount, uc.journal, uc.retrier)

	sender.Queue().Enqueue(tx.Debit())
	sender.Queue().Drain()

	receiver.Queue().Enqueue(tx.Credit())
	receiver.Queue().Drain()

	uc.logger.Debug().
		Str("transaction_id", tx.ID()).
		Str("sender_id", input.SenderID).
		Str("receiver_id", input.ReceiverID).
		Str("amount", input.Amount.StringFixed(2)).
		Str("outcome", tx.Outcome().String()).
		Msg("transfer processed")

	return tx, nil
}
