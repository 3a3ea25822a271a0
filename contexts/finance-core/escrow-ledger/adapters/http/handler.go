package httpadapter

import (
	"context"
	"log/slog"

	"eventx/contexts/finance-core/escrow-ledger/application/commands"
	"eventx/contexts/finance-core/escrow-ledger/application/queries"
	"eventx/contexts/finance-core/escrow-ledger/domain/entities"
	httptransport "eventx/contexts/finance-core/escrow-ledger/transport/http"
)

type Handler struct {
	Ledger  commands.UseCase
	Queries queries.QueryUseCase
	Logger  *slog.Logger
}

func (h Handler) DepositHandler(ctx context.Context, accountID string, req httptransport.DepositRequest) (httptransport.BalanceResponse, error) {
	account, err := h.Ledger.Deposit(ctx, accountID, req.Amount)
	if err != nil {
		return httptransport.BalanceResponse{}, err
	}
	return mapAccount(account), nil
}

func (h Handler) BalanceHandler(ctx context.Context, accountID string) (httptransport.BalanceResponse, error) {
	account, err := h.Queries.Balance(ctx, accountID)
	if err != nil {
		return httptransport.BalanceResponse{}, err
	}
	return mapAccount(account), nil
}

func (h Handler) EscrowHoldHandler(ctx context.Context, escrowRef string) (httptransport.EscrowHoldResponse, error) {
	hold, err := h.Queries.EscrowHold(ctx, escrowRef)
	if err != nil {
		return httptransport.EscrowHoldResponse{}, err
	}
	return httptransport.EscrowHoldResponse{
		EscrowRef: hold.EscrowRef,
		OwnerID:   hold.OwnerID,
		Amount:    hold.Amount,
		CreatedAt: hold.CreatedAt,
		UpdatedAt: hold.UpdatedAt,
	}, nil
}

func (h Handler) TransfersHandler(ctx context.Context, escrowRef string) (httptransport.TransfersResponse, error) {
	transfers, err := h.Queries.ListTransfers(ctx, escrowRef)
	if err != nil {
		return httptransport.TransfersResponse{}, err
	}
	resp := httptransport.TransfersResponse{Transfers: make([]httptransport.TransferResponse, 0, len(transfers))}
	for _, transfer := range transfers {
		resp.Transfers = append(resp.Transfers, httptransport.TransferResponse{
			TransferID: transfer.TransferID,
			Kind:       string(transfer.Kind),
			EscrowRef:  transfer.EscrowRef,
			FromID:     transfer.FromID,
			ToID:       transfer.ToID,
			Amount:     transfer.Amount,
			At:         transfer.At,
		})
	}
	return resp, nil
}

func mapAccount(account entities.Account) httptransport.BalanceResponse {
	return httptransport.BalanceResponse{
		AccountID: account.AccountID,
		Balance:   account.Balance,
		UpdatedAt: account.UpdatedAt,
	}
}
