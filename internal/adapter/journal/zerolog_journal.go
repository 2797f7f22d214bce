// Package journal writes the transaction audit trail. The core reports
// through the domain.Journal interface and never touches the output medium
// itself.
package journal

import (
	"github.com/rs/zerolog"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/infrastructure/metrics"
)

// ZerologJournal emits one structured log line per settled transaction and
// per unrecoverable compensation, and keeps the transfer metrics current.
// Amounts are formatted to two decimal places.
type ZerologJournal struct {
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// New creates a journal writing to the given logger. metrics may be nil.
func New(logger zerolog.Logger, m *metrics.Metrics) *ZerologJournal {
	return &ZerologJournal{
		logger:  logger,
		metrics: m,
	}
}

// Record writes the final state of a settled transaction.
func (j *ZerologJournal) Record(rec domain.TransferRecord) {
	j.logger.Info().
		Str("transaction_id", rec.TransactionID).
		Str("sender_id", rec.SenderID).
		Str("receiver_id", rec.ReceiverID).
		Str("amount", rec.Amount.StringFixed(2)).
		Bool("success", rec.Succeeded).
		Bool("compensated", rec.Compensated).
		Time("at", rec.At).
		Msg("transaction settled")

	if j.metrics == nil {
		return
	}

	if rec.Succeeded {
		j.metrics.TransfersSucceeded.Inc()
	} else {
		j.metrics.TransfersFailed.Inc()
	}

	if rec.Compensated {
		j.metrics.Compensations.Inc()
	}

	amount, _ := rec.Amount.Float64()
	j.metrics.TransferAmount.Observe(amount)
}

// RecordLoss writes a permanent loss entry for an operator to pick up.
func (j *ZerologJournal) RecordLoss(rec domain.LossRecord) {
	j.logger.Error().
		Str("transaction_id", rec.TransactionID).
		Str("account_id", rec.AccountID).
		Str("amount", rec.Amount.StringFixed(2)).
		Str("reason", rec.Reason).
		Time("at", rec.At).
		Msg("compensation could not be applied")

	if j.metrics != nil {
		j.metrics.CompensationLosses.Inc()
	}
}
