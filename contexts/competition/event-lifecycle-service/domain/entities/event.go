package entities

import "time"

type EventStatus string

const (
	EventStatusActive    EventStatus = "active"
	EventStatusCancelled EventStatus = "cancelled"
)

type Event struct {
	EventID          int64
	Name             string
	Description      string
	CreatorID        string
	EscrowRef        string
	PoolAmount       int64
	FirstPercent     int
	SecondPercent    int
	ThirdPercent     int
	MaxTeamSize      int
	MaxTeams         int
	VotingStartsAt   time.Time
	VotingEndsAt     time.Time
	Status           EventStatus
	Published        bool
	VotingOpen       bool
	ResultsFinalized bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (e Event) Cancelled() bool {
	return e.Status == EventStatusCancelled
}

// PrizeForRank returns the amount owed to a rank, floor division of the pool.
// Ranks outside the paid top three owe nothing.
func (e Event) PrizeForRank(rank int) int64 {
	switch rank {
	case 1:
		return e.PoolAmount * int64(e.FirstPercent) / 100
	case 2:
		return e.PoolAmount * int64(e.SecondPercent) / 100
	case 3:
		return e.PoolAmount * int64(e.ThirdPercent) / 100
	default:
		return 0
	}
}

type Team struct {
	EventID          int64
	TeamID           int64
	Name             string
	LeaderID         string
	Members          []string
	VoteCount        int
	Rank             int
	PrizeAmount      int64
	PrizeDistributed bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (t Team) HasMember(participantID string) bool {
	for _, member := range t.Members {
		if member == participantID {
			return true
		}
	}
	return false
}

// TeamOf resolves the team a participant leads or belongs to, if any.
func TeamOf(teams []Team, participantID string) (int64, bool) {
	for _, team := range teams {
		if team.HasMember(participantID) {
			return team.TeamID, true
		}
	}
	return 0, false
}
