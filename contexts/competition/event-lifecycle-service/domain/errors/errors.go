package errors

import "errors"

var (
	ErrUnauthorized       = errors.New("caller lacks the required role")
	ErrInvalidEventInput  = errors.New("invalid event input")
	ErrInvalidSplit       = errors.New("prize percentages must sum to 100")
	ErrFundsMismatch      = errors.New("supplied funds do not match the prize pool")
	ErrInvalidWindow      = errors.New("voting window end must be after start")
	ErrUnknownEvent       = errors.New("event not found")
	ErrEventCancelled     = errors.New("event is cancelled")
	ErrNotPublished       = errors.New("event is not published")
	ErrAlreadyPublished   = errors.New("event is already published")
	ErrMaxTeamsReached    = errors.New("event team limit reached")
	ErrAlreadyRegistered  = errors.New("already registered for this event")
	ErrTeamFull           = errors.New("team is full")
	ErrUnknownTeam        = errors.New("team not found")
	ErrVotingClosed       = errors.New("voting is not open")
	ErrNotRegistered      = errors.New("not registered for this event")
	ErrSelfVote           = errors.New("cannot vote for your own team")
	ErrAlreadyVoted       = errors.New("already voted")
	ErrInvalidRankingMode = errors.New("invalid ranking mode")
	ErrInvalidTeamID      = errors.New("manual ranking references an unknown team")
	ErrDuplicateTeam      = errors.New("manual ranking is not an exact permutation")
	ErrAlreadyFinalized   = errors.New("results are already finalized")
	ErrNotFinalized       = errors.New("results are not finalized")
	ErrAlreadyDistributed = errors.New("prize already distributed")
)
