package domain

import (
	"sync"

	"github.com/shopspring/decimal"
)

// OperationKind tags an operation as the debit or credit leg of a transaction.
type OperationKind int8

const (
	// Debit withdraws funds from the sender account.
	Debit OperationKind = iota
	// Credit deposits funds onto the receiver account.
	Credit
)

// String returns the kind name.
func (k OperationKind) String() string {
	switch k {
	case Debit:
		return "debit"
	case Credit:
		return "credit"
	default:
		return "unknown"
	}
}

// Outcome is the state of an operation or transaction.
// It transitions from Pending to Succeeded or Failed exactly once.
type Outcome int8

const (
	OutcomePending Outcome = iota
	OutcomeSucceeded
	OutcomeFailed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Operation applies a signed amount to a single account. The debit leg
// carries the negated transfer amount, the credit leg the positive amount.
type Operation struct {
	kind    OperationKind
	account *Account
	amount  decimal.Decimal
	tx      *Transaction

	mu      sync.Mutex
	outcome Outcome
	reason  error
}

func newOperation(kind OperationKind, account *Account, amount decimal.Decimal, tx *Transaction) *Operation {
	return &Operation{
		kind:    kind,
		account: account,
		amount:  amount,
		tx:      tx,
	}
}

// Kind returns the operation kind.
func (o *Operation) Kind() OperationKind {
	return o.kind
}

// AccountID returns the id of the target account.
func (o *Operation) AccountID() string {
	return o.account.ID
}

// Amount returns the signed amount the operation applies.
func (o *Operation) Amount() decimal.Decimal {
	return o.amount
}

// Outcome returns the recorded outcome.
func (o *Operation) Outcome() Outcome {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.outcome
}

// FailureReason returns why the operation failed, or nil.
func (o *Operation) FailureReason() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.reason
}

// Apply executes the operation against its account and notifies the owning
// transaction exactly once. The account performs the fraud, closed and
// (for debits) insufficient-funds checks together with the balance mutation
// under its own lock. A failed check records a Failed outcome instead of
// surfacing an error; reconciliation handles the rest.
func (o *Operation) Apply() {
	err := o.account.apply(o.amount, o.kind == Debit)
	if err != nil {
		o.finish(OutcomeFailed, err)
	} else {
		o.finish(OutcomeSucceeded, nil)
	}

	o.tx.onLegComplete()
}

// finish records the outcome. Once set it never reverses.
func (o *Operation) finish(outcome Outcome, reason error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.outcome != OutcomePending {
		return
	}

	o.outcome = outcome
	o.reason = reason
}
