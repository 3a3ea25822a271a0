package unit

import (
	"context"
	"errors"
	"testing"

	ledgererrors "eventx/contexts/finance-core/escrow-ledger/domain/errors"
	ledgerhttp "eventx/contexts/finance-core/escrow-ledger/transport/http"
)

func TestDepositAndBalance(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	w.deposit(t, "user-1", 40)
	w.deposit(t, "user-1", 10)
	if got := w.balance(t, "user-1"); got != 50 {
		t.Fatalf("expected balance 50, got %d", got)
	}

	_, err := w.ledger.Handler.DepositHandler(ctx, "user-1", ledgerhttp.DepositRequest{Amount: 0})
	if !errors.Is(err, ledgererrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero deposit, got %v", err)
	}
	_, err = w.ledger.Handler.BalanceHandler(ctx, "ghost")
	if !errors.Is(err, ledgererrors.ErrUnknownAccount) {
		t.Fatalf("expected ErrUnknownAccount, got %v", err)
	}
}

func TestEscrowHoldLifecycle(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	w.deposit(t, "owner-1", 30)

	if err := w.ledger.Funds.EscrowFunds(ctx, "owner-1", "hold-1", 20, 20); err != nil {
		t.Fatalf("escrow funds failed: %v", err)
	}
	if got := w.balance(t, "owner-1"); got != 10 {
		t.Fatalf("expected 10 left after hold, got %d", got)
	}

	// A hold reference is single use.
	if err := w.ledger.Funds.EscrowFunds(ctx, "owner-1", "hold-1", 5, 5); !errors.Is(err, ledgererrors.ErrEscrowExists) {
		t.Fatalf("expected ErrEscrowExists, got %v", err)
	}
	if err := w.ledger.Funds.EscrowFunds(ctx, "owner-1", "hold-2", 50, 50); !errors.Is(err, ledgererrors.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if err := w.ledger.Funds.EscrowFunds(ctx, "owner-1", "hold-3", 5, 4); !errors.Is(err, ledgererrors.ErrFundsMismatch) {
		t.Fatalf("expected ErrFundsMismatch, got %v", err)
	}

	if err := w.ledger.Funds.ReleaseEscrow(ctx, "hold-1", "payee-1", 15); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if got := w.balance(t, "payee-1"); got != 15 {
		t.Fatalf("expected payee balance 15, got %d", got)
	}
	remainder, err := w.ledger.Funds.EscrowBalance(ctx, "hold-1")
	if err != nil {
		t.Fatalf("escrow balance failed: %v", err)
	}
	if remainder != 5 {
		t.Fatalf("expected remainder 5, got %d", remainder)
	}

	if err := w.ledger.Funds.ReleaseEscrow(ctx, "hold-1", "payee-1", 6); !errors.Is(err, ledgererrors.ErrEscrowInsufficient) {
		t.Fatalf("expected ErrEscrowInsufficient, got %v", err)
	}
	if err := w.ledger.Funds.ReleaseEscrow(ctx, "missing", "payee-1", 1); !errors.Is(err, ledgererrors.ErrEscrowNotFound) {
		t.Fatalf("expected ErrEscrowNotFound, got %v", err)
	}
}

func TestTransferLogTracksEveryMovement(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	w.deposit(t, "owner-1", 30)
	if err := w.ledger.Funds.EscrowFunds(ctx, "owner-1", "hold-1", 20, 20); err != nil {
		t.Fatalf("escrow funds failed: %v", err)
	}
	if err := w.ledger.Funds.ReleaseEscrow(ctx, "hold-1", "payee-1", 20); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	transfers, err := w.ledger.Handler.TransfersHandler(ctx, "hold-1")
	if err != nil {
		t.Fatalf("list transfers failed: %v", err)
	}
	if len(transfers.Transfers) != 2 {
		t.Fatalf("expected escrow and release transfers, got %d", len(transfers.Transfers))
	}
	if transfers.Transfers[0].Kind != "escrow" || transfers.Transfers[1].Kind != "release" {
		t.Fatalf("unexpected transfer kinds: %+v", transfers.Transfers)
	}
}
