package ports

import (
	"context"
	"time"

	"eventx/contexts/competition/event-lifecycle-service/domain/entities"
	"eventx/internal/shared/events"
	"eventx/internal/shared/outbox"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for outbox rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// AccessChecker is the capability gate consulted by every mutating command.
type AccessChecker interface {
	RequireOrganizer(ctx context.Context, userID string) error
	IsAdministrator(ctx context.Context, userID string) (bool, error)
}

// EscrowService moves funds between participant accounts and event escrow.
// The lifecycle service never touches balances directly.
type EscrowService interface {
	EscrowFunds(ctx context.Context, ownerID string, escrowRef string, amount int64, supplied int64) error
	ReleaseEscrow(ctx context.Context, escrowRef string, toAccountID string, amount int64) error
	EscrowBalance(ctx context.Context, escrowRef string) (int64, error)
}

// EventRepository owns the event aggregate (event, teams, ballots).
//
// Every mutating method is an atomic commit point: it reads and writes the
// aggregate under the event's single-writer lock (memory) or inside a
// transaction holding the event row lock (postgres), enforcing the
// multi-field invariants with no interleaving. Methods fail with domain
// errors and leave no partial state.
type EventRepository interface {
	CreateEvent(ctx context.Context, event entities.Event) (entities.Event, error)
	GetEvent(ctx context.Context, eventID int64) (entities.Event, error)
	ListEvents(ctx context.Context) ([]entities.Event, error)
	GetTeam(ctx context.Context, eventID int64, teamID int64) (entities.Team, error)
	ListTeams(ctx context.Context, eventID int64) ([]entities.Team, error)
	HasVoted(ctx context.Context, eventID int64, participantID string) (bool, error)

	MarkPublished(ctx context.Context, eventID int64, now time.Time) (entities.Event, error)
	MarkCancelled(ctx context.Context, eventID int64, now time.Time) (entities.Event, error)
	SetVotingOpen(ctx context.Context, eventID int64, open bool, now time.Time) (entities.Event, error)
	AddTeam(ctx context.Context, eventID int64, name string, leaderID string, now time.Time) (entities.Team, error)
	AddMember(ctx context.Context, eventID int64, teamID int64, participantID string, now time.Time) (entities.Team, error)
	RecordVote(ctx context.Context, eventID int64, teamID int64, voterID string, now time.Time) (entities.Team, error)
	FinalizeRanking(ctx context.Context, eventID int64, input entities.RankingInput, now time.Time) ([]entities.Team, error)
	MarkDistributed(ctx context.Context, eventID int64, teamID int64, now time.Time) (entities.Team, error)
	RevertDistribution(ctx context.Context, eventID int64, teamID int64, now time.Time) error
}

// OutboxRepository persists lifecycle facts for post-commit publication.
type OutboxRepository interface {
	AppendOutbox(ctx context.Context, message outbox.Message) error
	ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

// EventPublisher is the bus side of the outbox relay.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, envelope events.Envelope) error
}
