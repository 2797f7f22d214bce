package domain

import "errors"

var (
	// Account lifecycle errors
	ErrNegativeBalance = errors.New("cannot open account with negative balance")
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account already exists")

	// Status transition errors
	ErrAlreadyClosed   = errors.New("account is already closed")
	ErrNonZeroBalance  = errors.New("cannot close account with non-zero balance")
	ErrAccountClosed   = errors.New("account is closed")
	ErrAlreadyFraud    = errors.New("account is already flagged as fraudulent")
	ErrAlreadyNotFraud = errors.New("account is already not flagged as fraudulent")

	// Operation failures
	ErrAccountFrozen     = errors.New("account is frozen on suspicion of fraud")
	ErrInsufficientFunds = errors.New("insufficient funds on account")

	// Transfer validation errors
	ErrSameAccount   = errors.New("cannot transfer to same account")
	ErrInvalidAmount = errors.New("amount must be positive")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
