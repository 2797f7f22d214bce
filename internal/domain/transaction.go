package domain

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Retrier re-runs an operation that failed with a retryable error.
// Implementations decide which errors are retryable and how long to wait.
type Retrier interface {
	Retry(op func() error) error
}

// Transaction pairs the debit and credit legs of one transfer and reconciles
// their outcomes. When exactly one leg succeeds the transaction issues a
// compensating correction undoing it, so no transfer is ever left
// half-applied.
type Transaction struct {
	id       string
	sender   *Account
	receiver *Account
	amount   decimal.Decimal
	debit    *Operation
	credit   *Operation
	journal  Journal
	retrier  Retrier

	mu          sync.Mutex
	outcome     Outcome
	compensated bool
	lost        bool
}

// NewTransaction builds a transaction with its two legs. The debit leg
// carries the negated amount, the credit leg the positive amount. A nil
// journal falls back to NopJournal; a nil retrier applies compensations
// exactly once without retrying.
func NewTransaction(id string, sender, receiver *Account, amount decimal.Decimal, journal Journal, retrier Retrier) *Transaction {
	if journal == nil {
		journal = NopJournal{}
	}

	t := &Transaction{
		id:       id,
		sender:   sender,
		receiver: receiver,
		amount:   amount,
		journal:  journal,
		retrier:  retrier,
	}
	t.debit = newOperation(Debit, sender, amount.Neg(), t)
	t.credit = newOperation(Credit, receiver, amount, t)

	return t
}

// ID returns the transaction id.
func (t *Transaction) ID() string {
	return t.id
}

// SenderID returns the sender account id.
func (t *Transaction) SenderID() string {
	return t.sender.ID
}

// ReceiverID returns the receiver account id.
func (t *Transaction) ReceiverID() string {
	return t.receiver.ID
}

// Amount returns the transfer amount.
func (t *Transaction) Amount() decimal.Decimal {
	return t.amount
}

// Debit returns the debit leg.
func (t *Transaction) Debit() *Operation {
	return t.debit
}

// Credit returns the credit leg.
func (t *Transaction) Credit() *Operation {
	return t.credit
}

// Outcome returns the overall transaction outcome.
func (t *Transaction) Outcome() Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.outcome
}

// Compensated reports whether a compensating correction was issued.
func (t *Transaction) Compensated() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.compensated
}

// onLegComplete reconciles the leg outcomes into the overall outcome. Each
// leg triggers it once after applying; it resolves the transaction only when
// both legs are final, and further calls after that are no-ops. The overall
// outcome is a pure function of the two leg outcomes.
func (t *Transaction) onLegComplete() {
	t.mu.Lock()

	if t.outcome != OutcomePending {
		t.mu.Unlock()
		return
	}

	d := t.debit.Outcome()
	c := t.credit.Outcome()

	switch {
	case d == OutcomeSucceeded && c == OutcomeSucceeded:
		t.outcome = OutcomeSucceeded
		t.mu.Unlock()
		t.record()

	case d == OutcomeFailed && c == OutcomeSucceeded:
		// The credit applied without its sibling: take it back from
		// the receiver.
		t.outcome = OutcomeFailed
		t.compensated = true
		t.mu.Unlock()
		t.undo(t.receiver, t.amount.Neg())

	case d == OutcomeSucceeded && c == OutcomeFailed:
		// The debit applied without its sibling: return the funds to
		// the sender.
		t.outcome = OutcomeFailed
		t.compensated = true
		t.mu.Unlock()
		t.undo(t.sender, t.amount)

	case d == OutcomeFailed && c == OutcomeFailed:
		t.outcome = OutcomeFailed
		t.mu.Unlock()
		t.record()

	default:
		// The other leg has not applied yet.
		t.mu.Unlock()
	}
}

// undo issues the compensating correction. The write bypasses the operation
// queue but shares the account's balance lock. A frozen account is retried
// through the injected retrier since an operator may lift the flag; a closed
// account, or exhausted retries, turn the amount into a journaled loss.
func (t *Transaction) undo(account *Account, amount decimal.Decimal) {
	op := func() error {
		return account.compensate(amount)
	}

	var err error
	if t.retrier != nil {
		err = t.retrier.Retry(op)
	} else {
		err = op()
	}

	if err != nil {
		t.mu.Lock()
		t.lost = true
		t.mu.Unlock()

		t.journal.RecordLoss(LossRecord{
			TransactionID: t.id,
			AccountID:     account.ID,
			Amount:        amount,
			Reason:        err.Error(),
			At:            time.Now().UTC(),
		})
	}

	t.record()
}

func (t *Transaction) record() {
	t.mu.Lock()
	rec := TransferRecord{
		TransactionID: t.id,
		SenderID:      t.sender.ID,
		ReceiverID:    t.receiver.ID,
		Amount:        t.amount,
		Succeeded:     t.outcome == OutcomeSucceeded,
		Compensated:   t.compensated,
		At:            time.Now().UTC(),
	}
	t.mu.Unlock()

	t.journal.Record(rec)
}
