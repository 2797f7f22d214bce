package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferRecord is the audit trail entry a transaction emits once
// reconciliation settles its final outcome.
type TransferRecord struct {
	TransactionID string
	SenderID      string
	ReceiverID    string
	Amount        decimal.Decimal
	Succeeded     bool
	Compensated   bool
	At            time.Time
}

// LossRecord is written when a compensating correction could not be applied
// because the target account was closed or stayed frozen through all
// retries. The amount is permanently unaccounted for and needs an operator.
type LossRecord struct {
	TransactionID string
	AccountID     string
	Amount        decimal.Decimal
	Reason        string
	At            time.Time
}

// Journal is the sink transactions report to. Implementations decide the
// output medium; the core never writes to the console directly.
type Journal interface {
	Record(rec TransferRecord)
	RecordLoss(rec LossRecord)
}

// NopJournal discards all records.
type NopJournal struct{}

func (NopJournal) Record(TransferRecord) {}

func (NopJournal) RecordLoss(LossRecord) {}
