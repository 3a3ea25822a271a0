package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateEventRequest struct {
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	PoolAmount     int64     `json:"pool_amount"`
	FirstPercent   int       `json:"first_percent"`
	SecondPercent  int       `json:"second_percent"`
	ThirdPercent   int       `json:"third_percent"`
	MaxTeamSize    int       `json:"max_team_size"`
	MaxTeams       int       `json:"max_teams"`
	VotingStartsAt time.Time `json:"voting_starts_at"`
	VotingEndsAt   time.Time `json:"voting_ends_at"`
	SuppliedFunds  int64     `json:"supplied_funds"`
}

type EventResponse struct {
	EventID          int64     `json:"event_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	CreatorID        string    `json:"creator_id"`
	EscrowRef        string    `json:"escrow_ref"`
	PoolAmount       int64     `json:"pool_amount"`
	FirstPercent     int       `json:"first_percent"`
	SecondPercent    int       `json:"second_percent"`
	ThirdPercent     int       `json:"third_percent"`
	MaxTeamSize      int       `json:"max_team_size"`
	MaxTeams         int       `json:"max_teams"`
	VotingStartsAt   time.Time `json:"voting_starts_at"`
	VotingEndsAt     time.Time `json:"voting_ends_at"`
	Status           string    `json:"status"`
	Published        bool      `json:"published"`
	VotingOpen       bool      `json:"voting_open"`
	ResultsFinalized bool      `json:"results_finalized"`
}

type EventListResponse struct {
	Items []EventResponse `json:"items"`
}

type RegisterTeamRequest struct {
	Name string `json:"name"`
}

type TeamResponse struct {
	EventID          int64    `json:"event_id"`
	TeamID           int64    `json:"team_id"`
	Name             string   `json:"name"`
	LeaderID         string   `json:"leader_id"`
	Members          []string `json:"members"`
	VoteCount        int      `json:"vote_count"`
	Rank             int      `json:"rank"`
	PrizeAmount      int64    `json:"prize_amount"`
	PrizeDistributed bool     `json:"prize_distributed"`
}

type TeamMembersResponse struct {
	EventID int64    `json:"event_id"`
	TeamID  int64    `json:"team_id"`
	Members []string `json:"members"`
}

type SetVotingStateRequest struct {
	Open bool `json:"open"`
}

type CastVoteRequest struct {
	TeamID int64 `json:"team_id"`
}

type FinalizeResultsRequest struct {
	UseManualRanking bool    `json:"use_manual_ranking"`
	ManualOrder      []int64 `json:"manual_order,omitempty"`
}

type RankingsResponse struct {
	EventID   int64          `json:"event_id"`
	Finalized bool           `json:"finalized"`
	Items     []TeamResponse `json:"items"`
}

type HasVotedResponse struct {
	EventID       int64  `json:"event_id"`
	ParticipantID string `json:"participant_id"`
	HasVoted      bool   `json:"has_voted"`
}
