package entities

import "time"

// Account holds a participant balance in base units. Balances never go
// negative; every movement is checked against the current balance first.
type Account struct {
	AccountID string
	Balance   int64
	UpdatedAt time.Time
}

// EscrowHold is the custodied remainder of one event's prize pool.
type EscrowHold struct {
	EscrowRef string
	OwnerID   string
	Amount    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TransferKind string

const (
	TransferKindDeposit TransferKind = "deposit"
	TransferKindEscrow  TransferKind = "escrow"
	TransferKindRelease TransferKind = "release"
)

// Transfer is the append-only record of every fund movement.
type Transfer struct {
	TransferID string
	Kind       TransferKind
	EscrowRef  string
	FromID     string
	ToID       string
	Amount     int64
	At         time.Time
}
