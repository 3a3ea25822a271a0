package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type DepositRequest struct {
	Amount int64 `json:"amount"`
}

type BalanceResponse struct {
	AccountID string    `json:"account_id"`
	Balance   int64     `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EscrowHoldResponse struct {
	EscrowRef string    `json:"escrow_ref"`
	OwnerID   string    `json:"owner_id"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TransferResponse struct {
	TransferID string    `json:"transfer_id"`
	Kind       string    `json:"kind"`
	EscrowRef  string    `json:"escrow_ref,omitempty"`
	FromID     string    `json:"from_id,omitempty"`
	ToID       string    `json:"to_id,omitempty"`
	Amount     int64     `json:"amount"`
	At         time.Time `json:"at"`
}

type TransfersResponse struct {
	Transfers []TransferResponse `json:"transfers"`
}
