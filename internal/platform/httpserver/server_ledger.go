package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	ledgererrors "eventx/contexts/finance-core/escrow-ledger/domain/errors"
	ledgerhttp "eventx/contexts/finance-core/escrow-ledger/transport/http"
)

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	if identityHeader(r) == "" {
		writeLedgerError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req ledgerhttp.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.ledger.Handler.DepositHandler(r.Context(), r.PathValue("account_id"), req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ledger.Handler.BalanceHandler(r.Context(), r.PathValue("account_id"))
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEscrowHold(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ledger.Handler.EscrowHoldHandler(r.Context(), r.PathValue("escrow_ref"))
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTransfers(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ledger.Handler.TransfersHandler(r.Context(), r.PathValue("escrow_ref"))
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeLedgerDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledgererrors.ErrInvalidAmount):
		writeLedgerError(w, http.StatusBadRequest, "invalid_amount", err.Error())
	case errors.Is(err, ledgererrors.ErrUnknownAccount),
		errors.Is(err, ledgererrors.ErrEscrowNotFound):
		writeLedgerError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ledgererrors.ErrInsufficientFunds),
		errors.Is(err, ledgererrors.ErrEscrowInsufficient):
		writeLedgerError(w, http.StatusUnprocessableEntity, "insufficient_funds", err.Error())
	case errors.Is(err, ledgererrors.ErrFundsMismatch):
		writeLedgerError(w, http.StatusUnprocessableEntity, "funds_mismatch", err.Error())
	case errors.Is(err, ledgererrors.ErrEscrowExists):
		writeLedgerError(w, http.StatusConflict, "escrow_exists", err.Error())
	default:
		writeLedgerError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeLedgerError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ledgerhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
