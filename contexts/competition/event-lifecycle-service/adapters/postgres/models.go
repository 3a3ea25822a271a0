package postgresadapter

import (
	"encoding/json"
	"time"

	"eventx/contexts/competition/event-lifecycle-service/domain/entities"
)

type eventModel struct {
	ID               int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name             string    `gorm:"column:name"`
	Description      string    `gorm:"column:description"`
	CreatorID        string    `gorm:"column:creator_id"`
	EscrowRef        string    `gorm:"column:escrow_ref;uniqueIndex"`
	PoolAmount       int64     `gorm:"column:pool_amount"`
	FirstPercent     int       `gorm:"column:first_percent"`
	SecondPercent    int       `gorm:"column:second_percent"`
	ThirdPercent     int       `gorm:"column:third_percent"`
	MaxTeamSize      int       `gorm:"column:max_team_size"`
	MaxTeams         int       `gorm:"column:max_teams"`
	VotingStartsAt   time.Time `gorm:"column:voting_starts_at"`
	VotingEndsAt     time.Time `gorm:"column:voting_ends_at"`
	Status           string    `gorm:"column:status"`
	Published        bool      `gorm:"column:published"`
	VotingOpen       bool      `gorm:"column:voting_open"`
	ResultsFinalized bool      `gorm:"column:results_finalized"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (eventModel) TableName() string {
	return "competition_events"
}

func eventModelFromEntity(event entities.Event) eventModel {
	return eventModel{
		ID:               event.EventID,
		Name:             event.Name,
		Description:      event.Description,
		CreatorID:        event.CreatorID,
		EscrowRef:        event.EscrowRef,
		PoolAmount:       event.PoolAmount,
		FirstPercent:     event.FirstPercent,
		SecondPercent:    event.SecondPercent,
		ThirdPercent:     event.ThirdPercent,
		MaxTeamSize:      event.MaxTeamSize,
		MaxTeams:         event.MaxTeams,
		VotingStartsAt:   event.VotingStartsAt,
		VotingEndsAt:     event.VotingEndsAt,
		Status:           string(event.Status),
		Published:        event.Published,
		VotingOpen:       event.VotingOpen,
		ResultsFinalized: event.ResultsFinalized,
		CreatedAt:        event.CreatedAt,
		UpdatedAt:        event.UpdatedAt,
	}
}

func (m eventModel) toEntity() entities.Event {
	return entities.Event{
		EventID:          m.ID,
		Name:             m.Name,
		Description:      m.Description,
		CreatorID:        m.CreatorID,
		EscrowRef:        m.EscrowRef,
		PoolAmount:       m.PoolAmount,
		FirstPercent:     m.FirstPercent,
		SecondPercent:    m.SecondPercent,
		ThirdPercent:     m.ThirdPercent,
		MaxTeamSize:      m.MaxTeamSize,
		MaxTeams:         m.MaxTeams,
		VotingStartsAt:   m.VotingStartsAt,
		VotingEndsAt:     m.VotingEndsAt,
		Status:           entities.EventStatus(m.Status),
		Published:        m.Published,
		VotingOpen:       m.VotingOpen,
		ResultsFinalized: m.ResultsFinalized,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

type teamModel struct {
	EventID          int64     `gorm:"column:event_id;primaryKey"`
	TeamID           int64     `gorm:"column:team_id;primaryKey"`
	Name             string    `gorm:"column:name"`
	LeaderID         string    `gorm:"column:leader_id"`
	Members          []byte    `gorm:"column:members;type:jsonb"`
	VoteCount        int       `gorm:"column:vote_count"`
	Rank             int       `gorm:"column:rank"`
	PrizeAmount      int64     `gorm:"column:prize_amount"`
	PrizeDistributed bool      `gorm:"column:prize_distributed"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (teamModel) TableName() string {
	return "competition_teams"
}

func teamModelFromEntity(team entities.Team) teamModel {
	members, _ := json.Marshal(team.Members)
	return teamModel{
		EventID:          team.EventID,
		TeamID:           team.TeamID,
		Name:             team.Name,
		LeaderID:         team.LeaderID,
		Members:          members,
		VoteCount:        team.VoteCount,
		Rank:             team.Rank,
		PrizeAmount:      team.PrizeAmount,
		PrizeDistributed: team.PrizeDistributed,
		CreatedAt:        team.CreatedAt,
		UpdatedAt:        team.UpdatedAt,
	}
}

func (m teamModel) toEntity() entities.Team {
	var members []string
	_ = json.Unmarshal(m.Members, &members)
	return entities.Team{
		EventID:          m.EventID,
		TeamID:           m.TeamID,
		Name:             m.Name,
		LeaderID:         m.LeaderID,
		Members:          members,
		VoteCount:        m.VoteCount,
		Rank:             m.Rank,
		PrizeAmount:      m.PrizeAmount,
		PrizeDistributed: m.PrizeDistributed,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

type ballotModel struct {
	EventID       int64     `gorm:"column:event_id;primaryKey"`
	ParticipantID string    `gorm:"column:participant_id;primaryKey"`
	CastAt        time.Time `gorm:"column:cast_at"`
}

func (ballotModel) TableName() string {
	return "competition_ballots"
}

type outboxModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload;type:jsonb"`
	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "competition_outbox"
}

// Models lists every table owned by this adapter for schema migration.
func Models() []any {
	return []any{&eventModel{}, &teamModel{}, &ballotModel{}, &outboxModel{}}
}
