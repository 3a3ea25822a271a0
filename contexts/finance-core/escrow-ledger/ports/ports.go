package ports

import (
	"context"
	"time"

	"eventx/contexts/finance-core/escrow-ledger/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for transfer records.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// LedgerRepository owns accounts, escrow holds, and the transfer log.
// Mutating methods debit, credit, and append the transfer record in one
// atomic step; a failed check leaves every balance untouched.
type LedgerRepository interface {
	Deposit(ctx context.Context, accountID string, amount int64, transfer entities.Transfer) (entities.Account, error)
	HoldEscrow(ctx context.Context, hold entities.EscrowHold, transfer entities.Transfer) error
	ReleaseFromEscrow(ctx context.Context, escrowRef string, toAccountID string, amount int64, transfer entities.Transfer) error
	Balance(ctx context.Context, accountID string) (entities.Account, error)
	EscrowHold(ctx context.Context, escrowRef string) (entities.EscrowHold, error)
	ListTransfers(ctx context.Context, escrowRef string) ([]entities.Transfer, error)
}
