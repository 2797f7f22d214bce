package domain

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a customer account that can hold a balance.
// The balance and status flags are guarded by a single mutex; every
// read-modify-write of the balance happens under one lock acquisition and
// never spans more than one account.
type Account struct {
	ID        string
	CreatedAt time.Time

	mu      sync.Mutex
	balance decimal.Decimal
	fraud   bool
	closed  bool

	queue *OperationQueue
}

// NewAccount opens an account with the given opening balance.
func NewAccount(id string, opening decimal.Decimal) (*Account, error) {
	if opening.IsNegative() {
		return nil, ErrNegativeBalance
	}

	return &Account{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		balance:   opening,
		queue:     NewOperationQueue(),
	}, nil
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.balance
}

// IsFraud reports whether the account is flagged as fraudulent.
func (a *Account) IsFraud() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.fraud
}

// IsClosed reports whether the account is closed.
func (a *Account) IsClosed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.closed
}

// Queue returns the account's operation queue.
func (a *Account) Queue() *OperationQueue {
	return a.queue
}

// SetFraud flips the fraud flag. A closed account cannot be edited, and
// setting the flag to its current value is rejected. While the flag is set
// all operations against the account fail validation.
func (a *Account) SetFraud(flag bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrAccountClosed
	}

	if a.fraud == flag {
		if flag {
			return ErrAlreadyFraud
		}

		return ErrAlreadyNotFraud
	}

	a.fraud = flag

	return nil
}

// Close marks the account closed. Only an account with a zero balance can be
// closed, and a closed account can never be reopened.
func (a *Account) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrAlreadyClosed
	}

	if !a.balance.IsZero() {
		return ErrNonZeroBalance
	}

	a.closed = true

	return nil
}

// apply validates the account status and adds the signed amount to the
// balance. All checks and the mutation happen under one lock acquisition so
// a concurrent operation on the same account cannot interleave. requireFunds
// additionally demands the balance covers the (negated) amount.
func (a *Account) apply(amount decimal.Decimal, requireFunds bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.fraud {
		return ErrAccountFrozen
	}

	if a.closed {
		return ErrAccountClosed
	}

	if requireFunds && a.balance.LessThan(amount.Neg()) {
		return ErrInsufficientFunds
	}

	a.balance = a.balance.Add(amount)

	return nil
}

// compensate reverses a previously applied leg. It bypasses the operation
// queue but shares the balance lock, so it is mutually exclusive with any
// concurrent operation on the account. A closed account can never absorb a
// correction; a frozen account rejects it with a retryable error.
func (a *Account) compensate(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrAccountClosed
	}

	if a.fraud {
		return ErrAccountFrozen
	}

	a.balance = a.balance.Add(amount)

	return nil
}
