package dto

import (
	"time"

	"github.com/iho/gobank/internal/domain"
)

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AccountResponse represents an account in API responses.
// The balance is formatted to two decimal places.
type AccountResponse struct {
	ID        string    `json:"id"`
	Balance   string    `json:"balance"`
	Fraud     bool      `json:"fraud"`
	Closed    bool      `json:"closed"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountFromDomain converts a domain account.
func AccountFromDomain(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Balance:   a.Balance().StringFixed(2),
		Fraud:     a.IsFraud(),
		Closed:    a.IsClosed(),
		CreatedAt: a.CreatedAt,
	}
}

// AccountsFromDomain converts a slice of domain accounts.
func AccountsFromDomain(accounts []*domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = AccountFromDomain(a)
	}
	return out
}

// ListAccountsResponse represents a paginated list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Total    int64             `json:"total"`
}

// BalanceResponse represents a balance lookup.
type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   string `json:"balance"`
}

// TransferResponse represents a settled transfer.
type TransferResponse struct {
	TransactionID string `json:"transaction_id"`
	SenderID      string `json:"sender_id"`
	ReceiverID    string `json:"receiver_id"`
	Amount        string `json:"amount"`
	Outcome       string `json:"outcome"`
	Compensated   bool   `json:"compensated"`
}

// TransferFromDomain converts a domain transaction.
func TransferFromDomain(tx *domain.Transaction) TransferResponse {
	return TransferResponse{
		TransactionID: tx.ID(),
		SenderID:      tx.SenderID(),
		ReceiverID:    tx.ReceiverID(),
		Amount:        tx.Amount().StringFixed(2),
		Outcome:       tx.Outcome().String(),
		Compensated:   tx.Compensated(),
	}
}
