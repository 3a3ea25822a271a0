package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	accesserrors "eventx/contexts/identity-access/access-control-service/domain/errors"
	accesshttp "eventx/contexts/identity-access/access-control-service/transport/http"
)

func (s *Server) handleGrantOrganizer(w http.ResponseWriter, r *http.Request) {
	actorID := identityHeader(r)
	if actorID == "" {
		writeAccessError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req accesshttp.RoleMutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccessError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.access.Handler.GrantOrganizerHandler(r.Context(), actorID, req)
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRevokeOrganizer(w http.ResponseWriter, r *http.Request) {
	actorID := identityHeader(r)
	if actorID == "" {
		writeAccessError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req accesshttp.RoleMutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccessError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	if err := s.access.Handler.RevokeOrganizerHandler(r.Context(), actorID, req); err != nil {
		writeAccessDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUserRoles(w http.ResponseWriter, r *http.Request) {
	resp, err := s.access.Handler.UserRolesHandler(r.Context(), r.PathValue("user_id"))
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAuditTrail(w http.ResponseWriter, r *http.Request) {
	actorID := identityHeader(r)
	if actorID == "" {
		writeAccessError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			writeAccessError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
			return
		}
		limit = value
	}

	resp, err := s.access.Handler.AuditTrailHandler(r.Context(), actorID, limit)
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeAccessDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accesserrors.ErrUnauthorized):
		writeAccessError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, accesserrors.ErrInvalidUserID):
		writeAccessError(w, http.StatusBadRequest, "invalid_user_id", err.Error())
	case errors.Is(err, accesserrors.ErrRoleAlreadyGranted),
		errors.Is(err, accesserrors.ErrRoleNotGranted),
		errors.Is(err, accesserrors.ErrAdministratorFixed):
		writeAccessError(w, http.StatusConflict, "conflict", err.Error())
	default:
		writeAccessError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAccessError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, accesshttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
