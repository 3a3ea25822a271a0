package errors

import "errors"

var (
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrUnknownAccount     = errors.New("account not found")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrEscrowExists       = errors.New("escrow hold already exists")
	ErrEscrowNotFound     = errors.New("escrow hold not found")
	ErrEscrowInsufficient = errors.New("escrow hold cannot cover the release")
	ErrFundsMismatch      = errors.New("supplied funds do not match the requested amount")
)
