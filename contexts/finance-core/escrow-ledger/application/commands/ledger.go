package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "eventx/contexts/finance-core/escrow-ledger/application"
	"eventx/contexts/finance-core/escrow-ledger/domain/entities"
	domainerrors "eventx/contexts/finance-core/escrow-ledger/domain/errors"
	"eventx/contexts/finance-core/escrow-ledger/ports"
)

const moduleTag = "finance-core/escrow-ledger"

// UseCase moves funds between accounts and escrow holds. It satisfies the
// lifecycle service's EscrowService port.
type UseCase struct {
	Ledger ports.LedgerRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// Deposit credits an account. This is the seeding entry used by admin
// tooling and tests; production balances arrive through the payments edge.
func (uc UseCase) Deposit(ctx context.Context, accountID string, amount int64) (entities.Account, error) {
	logger := application.ResolveLogger(uc.Logger)
	accountID = strings.TrimSpace(accountID)
	if accountID == "" || amount <= 0 {
		return entities.Account{}, domainerrors.ErrInvalidAmount
	}
	transferID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Account{}, err
	}
	account, err := uc.Ledger.Deposit(ctx, accountID, amount, entities.Transfer{
		TransferID: transferID,
		Kind:       entities.TransferKindDeposit,
		ToID:       accountID,
		Amount:     amount,
		At:         uc.now(),
	})
	if err != nil {
		return entities.Account{}, err
	}
	logger.Info("deposit recorded",
		"event", "ledger_deposit_recorded",
		"module", moduleTag,
		"layer", "application",
		"account_id", accountID,
		"amount", amount,
	)
	return account, nil
}

// EscrowFunds moves the supplied amount from the owner's balance into a new
// hold. The caller states both the requested amount and what it actually
// supplied; a mismatch is rejected before any balance changes.
func (uc UseCase) EscrowFunds(ctx context.Context, ownerID string, escrowRef string, amount int64, supplied int64) error {
	logger := application.ResolveLogger(uc.Logger)
	ownerID = strings.TrimSpace(ownerID)
	escrowRef = strings.TrimSpace(escrowRef)
	if ownerID == "" || escrowRef == "" || amount <= 0 {
		return domainerrors.ErrInvalidAmount
	}
	if supplied != amount {
		return domainerrors.ErrFundsMismatch
	}
	transferID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	now := uc.now()
	err = uc.Ledger.HoldEscrow(ctx, entities.EscrowHold{
		EscrowRef: escrowRef,
		OwnerID:   ownerID,
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	}, entities.Transfer{
		TransferID: transferID,
		Kind:       entities.TransferKindEscrow,
		EscrowRef:  escrowRef,
		FromID:     ownerID,
		Amount:     amount,
		At:         now,
	})
	if err != nil {
		logger.Warn("escrow hold rejected",
			"event", "ledger_escrow_rejected",
			"module", moduleTag,
			"layer", "application",
			"owner_id", ownerID,
			"escrow_ref", escrowRef,
			"amount", amount,
			"error", err.Error(),
		)
		return err
	}
	logger.Info("escrow hold created",
		"event", "ledger_escrow_created",
		"module", moduleTag,
		"layer", "application",
		"owner_id", ownerID,
		"escrow_ref", escrowRef,
		"amount", amount,
	)
	return nil
}

// ReleaseEscrow moves funds out of a hold into the target account. Both
// payouts and cancellation refunds come through here.
func (uc UseCase) ReleaseEscrow(ctx context.Context, escrowRef string, toAccountID string, amount int64) error {
	logger := application.ResolveLogger(uc.Logger)
	escrowRef = strings.TrimSpace(escrowRef)
	toAccountID = strings.TrimSpace(toAccountID)
	if escrowRef == "" || toAccountID == "" || amount <= 0 {
		return domainerrors.ErrInvalidAmount
	}
	transferID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	err = uc.Ledger.ReleaseFromEscrow(ctx, escrowRef, toAccountID, amount, entities.Transfer{
		TransferID: transferID,
		Kind:       entities.TransferKindRelease,
		EscrowRef:  escrowRef,
		ToID:       toAccountID,
		Amount:     amount,
		At:         uc.now(),
	})
	if err != nil {
		logger.Warn("escrow release rejected",
			"event", "ledger_release_rejected",
			"module", moduleTag,
			"layer", "application",
			"escrow_ref", escrowRef,
			"to_account", toAccountID,
			"amount", amount,
			"error", err.Error(),
		)
		return err
	}
	logger.Info("escrow release completed",
		"event", "ledger_release_completed",
		"module", moduleTag,
		"layer", "application",
		"escrow_ref", escrowRef,
		"to_account", toAccountID,
		"amount", amount,
	)
	return nil
}

// EscrowBalance reports the hold remainder, zero once fully released.
func (uc UseCase) EscrowBalance(ctx context.Context, escrowRef string) (int64, error) {
	hold, err := uc.Ledger.EscrowHold(ctx, strings.TrimSpace(escrowRef))
	if err != nil {
		return 0, err
	}
	return hold.Amount, nil
}

func (uc UseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
