package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	competitionerrors "eventx/contexts/competition/event-lifecycle-service/domain/errors"
	competitionhttp "eventx/contexts/competition/event-lifecycle-service/transport/http"
	ledgererrors "eventx/contexts/finance-core/escrow-ledger/domain/errors"
	accesserrors "eventx/contexts/identity-access/access-control-service/domain/errors"
)

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	callerID := identityHeader(r)
	if callerID == "" {
		writeCompetitionError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req competitionhttp.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCompetitionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.competition.Handler.CreateEventHandler(r.Context(), callerID, req)
	if err != nil {
		writeCompetitionDomainError(w, err)
		return
	}
	if s.metrics != nil {
		s.metrics.EventCreated()
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	resp, err := s.competition.Handler.ListEventsHandler(r.Context())
	if err != nil {
		writeCompetitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEventDetails(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(r, "event_id")
	if !ok {
		writeCompetitionError(w, http.StatusBadRequest, "invalid_event_id", "event_id must be a non-negative integer")
		return
	}
	resp, err := s.competition.Handler.EventDetailsHandler(r.Context(), eventID)
	if err != nil {
		writeCompetitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePublishEvent(w http.ResponseWriter, r *http.Request) {
	callerID, eventID, ok := s.eventCall(w, r)
	if !ok {
		return
	}
	resp, err := s.competition.Handler.PublishEventHandler(r.Context(), callerID, eventID)
	if err != nil {
		writeCompetitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCancelEvent(w http.ResponseWriter, r *http.Request) {
	callerID, eventID, ok := s.eventCall(w, r)
	if !ok {
		return
	}
	resp, err := s.competition.Handler.CancelEventHandler(r.Context(), callerID, eventID)
	if err != nil {
		writeCompetitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegisterTeam(w http.ResponseWriter, r *http.Request) {
	callerID, eventID, ok := s.eventCall(w, r)
	if !ok {
		return
	}

	var req competitionhttp.RegisterTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCompetitionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.competition.Handler.RegisterTeamHandler(r.Context(), callerID, eventID, req)
	if err != nil {
		writeCompetitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleJoinTeam(w http.ResponseWriter, r *http.Request) {
	callerID, eventID, ok := s.eventCall(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(r, "team_id")
	if !ok {
		writeCompetitionError(w, http.StatusBadRequest, "invalid_team_id", "team_id must be a non-negative integer")
		return
	}

	resp, err := s.competition.Handler.JoinTeamHandler(r.Context(), callerID, eventID, teamID)
	if err != nil {
		writeCompetitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetVotingState(w http.ResponseWriter, r *http.Request) {
	callerID, eventID, ok := s.eventCall(w, r)
	if !ok {
		return
	}

	var req competitionhttp.SetVotingStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCompetitionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.competition.Handler.SetVotingStateHandler(r.Context(), callerID, eventID, req)
	if err != nil {
		writeCompetitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	callerID, eventID, ok := s.eventCall(w, r)
	if !ok {
		return
	}

	var req competitionhttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCompetitionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.competition.Handler.CastVoteHandler(r.Context(), callerID, eventID, req)
	if err != nil {
		writeCompetitionDomainError(w, err)
		return
	}
	if s.metrics != nil {
		s.metrics.VoteCast()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFinalizeResults(w http.ResponseWriter, r *http.Request) {
	callerID, eventID, ok := s.eventCall(w, r)
	if !ok {
		return
	}

	var req competitionhttp.FinalizeResultsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCompetitionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.competition.Handler.FinalizeResultsHandler(r.Context(), callerID, eventID, req)
	if err != nil {
		writeCompetitionDomainError(w, err)
		return
	}
	if s.metrics != nil {
		s.metrics.ResultsFinalized()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDistributePrize(w http.ResponseWriter, r *http.Request) {
	callerID, eventID, ok := s.eventCall(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(r, "team_id")
	if !ok {
		writeCompetitionError(w, http.StatusBadRequest, "invalid_team_id", "team_id must be a non-negative integer")
		return
	}

	resp, err := s.competition.Handler.DistributePrizeHandler(r.Context(), callerID, eventID, teamID)
	if err != nil {
		writeCompetitionDomainError(w, err)
		return
	}
	if s.metrics != nil {
		s.metrics.PrizeReleased()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTeamDetails(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(r, "event_id")
	if !ok {
		writeCompetitionError(w, http.StatusBadRequest, "invalid_event_id", "event_id must be a non-negative integer")
		return
	}
	teamID, ok := pathID(r, "team_id")
	if !ok {
		writeCompetitionError(w, http.StatusBadRequest, "invalid_team_id", "team_id must be a non-negative integer")
		return
	}

	resp, err := s.competition.Handler.TeamDetailsHandler(r.Context(), eventID, teamID)
	if err != nil {
		writeCompetitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTeamMembers(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(r, "event_id")
	if !ok {
		writeCompetitionError(w, http.StatusBadRequest, "invalid_event_id", "event_id must be a non-negative integer")
		return
	}
	teamID, ok := pathID(r, "team_id")
	if !ok {
		writeCompetitionError(w, http.StatusBadRequest, "invalid_team_id", "team_id must be a non-negative integer")
		return
	}

	resp, err := s.competition.Handler.TeamMembersHandler(r.Context(), eventID, teamID)
	if err != nil {
		writeCompetitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEventRankings(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(r, "event_id")
	if !ok {
		writeCompetitionError(w, http.StatusBadRequest, "invalid_event_id", "event_id must be a non-negative integer")
		return
	}
	resp, err := s.competition.Handler.EventRankingsHandler(r.Context(), eventID)
	if err != nil {
		writeCompetitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHasVoted(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(r, "event_id")
	if !ok {
		writeCompetitionError(w, http.StatusBadRequest, "invalid_event_id", "event_id must be a non-negative integer")
		return
	}
	resp, err := s.competition.Handler.HasVotedHandler(r.Context(), eventID, r.PathValue("participant_id"))
	if err != nil {
		writeCompetitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// eventCall pulls the caller identity and the event id shared by every
// competition command route.
func (s *Server) eventCall(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	callerID := identityHeader(r)
	if callerID == "" {
		writeCompetitionError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", 0, false
	}
	eventID, ok := pathID(r, "event_id")
	if !ok {
		writeCompetitionError(w, http.StatusBadRequest, "invalid_event_id", "event_id must be a non-negative integer")
		return "", 0, false
	}
	return callerID, eventID, true
}

func writeCompetitionDomainError(w http.ResponseWriter, err error) {
	switch {
	// Role denials surface either as the lifecycle sentinel or as the
	// access-control one, depending on which layer refused the caller.
	case errors.Is(err, competitionerrors.ErrUnauthorized),
		errors.Is(err, accesserrors.ErrUnauthorized):
		writeCompetitionError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, competitionerrors.ErrInvalidEventInput),
		errors.Is(err, competitionerrors.ErrInvalidSplit),
		errors.Is(err, competitionerrors.ErrInvalidWindow),
		errors.Is(err, competitionerrors.ErrInvalidRankingMode):
		writeCompetitionError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, competitionerrors.ErrFundsMismatch):
		writeCompetitionError(w, http.StatusUnprocessableEntity, "funds_mismatch", err.Error())
	case errors.Is(err, competitionerrors.ErrUnknownEvent),
		errors.Is(err, competitionerrors.ErrUnknownTeam):
		writeCompetitionError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, competitionerrors.ErrEventCancelled),
		errors.Is(err, competitionerrors.ErrNotPublished),
		errors.Is(err, competitionerrors.ErrAlreadyPublished),
		errors.Is(err, competitionerrors.ErrMaxTeamsReached),
		errors.Is(err, competitionerrors.ErrAlreadyRegistered),
		errors.Is(err, competitionerrors.ErrTeamFull),
		errors.Is(err, competitionerrors.ErrVotingClosed),
		errors.Is(err, competitionerrors.ErrSelfVote),
		errors.Is(err, competitionerrors.ErrAlreadyVoted),
		errors.Is(err, competitionerrors.ErrAlreadyFinalized),
		errors.Is(err, competitionerrors.ErrNotFinalized),
		errors.Is(err, competitionerrors.ErrAlreadyDistributed):
		writeCompetitionError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, competitionerrors.ErrNotRegistered):
		writeCompetitionError(w, http.StatusForbidden, "not_registered", err.Error())
	case errors.Is(err, competitionerrors.ErrInvalidTeamID),
		errors.Is(err, competitionerrors.ErrDuplicateTeam):
		writeCompetitionError(w, http.StatusUnprocessableEntity, "invalid_ranking", err.Error())
	// Ledger sentinels reach here through the escrow calls inside
	// CreateEvent, CancelEvent and DistributePrize.
	case errors.Is(err, ledgererrors.ErrInsufficientFunds):
		writeCompetitionError(w, http.StatusUnprocessableEntity, "insufficient_funds", err.Error())
	case errors.Is(err, ledgererrors.ErrEscrowNotFound),
		errors.Is(err, ledgererrors.ErrEscrowInsufficient),
		errors.Is(err, ledgererrors.ErrEscrowExists):
		writeCompetitionError(w, http.StatusConflict, "escrow_conflict", err.Error())
	default:
		writeCompetitionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeCompetitionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, competitionhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
