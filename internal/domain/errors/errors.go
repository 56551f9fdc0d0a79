package errors

import "errors"

var (
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountBanned       = errors.New("account banned")
	ErrCoinUnavailable     = errors.New("coin not available")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidEmail        = errors.New("invalid email")
	ErrAmountOutOfRange    = errors.New("amount out of withdrawal bounds")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrPayoutUnavailable   = errors.New("payout provider unavailable")
)
