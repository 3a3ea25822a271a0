package queries

import (
	"context"
	"strings"

	"eventx/contexts/finance-core/escrow-ledger/domain/entities"
	"eventx/contexts/finance-core/escrow-ledger/ports"
)

type QueryUseCase struct {
	Ledger ports.LedgerRepository
}

func (q QueryUseCase) Balance(ctx context.Context, accountID string) (entities.Account, error) {
	return q.Ledger.Balance(ctx, strings.TrimSpace(accountID))
}

func (q QueryUseCase) EscrowHold(ctx context.Context, escrowRef string) (entities.EscrowHold, error) {
	return q.Ledger.EscrowHold(ctx, strings.TrimSpace(escrowRef))
}

func (q QueryUseCase) ListTransfers(ctx context.Context, escrowRef string) ([]entities.Transfer, error) {
	return q.Ledger.ListTransfers(ctx, strings.TrimSpace(escrowRef))
}
