package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	application "eventx/contexts/competition/event-lifecycle-service/application"
	"eventx/contexts/competition/event-lifecycle-service/domain/entities"
	domainerrors "eventx/contexts/competition/event-lifecycle-service/domain/errors"
	"eventx/contexts/competition/event-lifecycle-service/ports"
	"eventx/internal/shared/events"
	"eventx/internal/shared/outbox"
)

const (
	moduleTag     = "competition/event-lifecycle-service"
	sourceService = "event-lifecycle-service"

	topicEventPublished = "competition.event.published"
	topicEventCancelled = "competition.event.cancelled"
	topicEventFinalized = "competition.event.finalized"
	topicPrizeReleased  = "competition.prize.released"
)

// CreateEventCommand carries the full event definition plus the funds the
// caller supplies for escrow.
type CreateEventCommand struct {
	CallerID       string
	Name           string
	Description    string
	PoolAmount     int64
	FirstPercent   int
	SecondPercent  int
	ThirdPercent   int
	MaxTeamSize    int
	MaxTeams       int
	VotingStartsAt time.Time
	VotingEndsAt   time.Time
	SuppliedFunds  int64
}

type PublishEventCommand struct {
	CallerID string
	EventID  int64
}

type CancelEventCommand struct {
	CallerID string
	EventID  int64
}

// UseCase orchestrates every lifecycle mutation. Role checks and input
// validation happen here; the repository methods are the atomic commit
// points for aggregate invariants.
type UseCase struct {
	Events ports.EventRepository
	Access ports.AccessChecker
	Escrow ports.EscrowService
	Outbox ports.OutboxRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// CreateEvent escrows the supplied funds and allocates a new active,
// unpublished event. Funds move before the record is allocated; a failed
// allocation releases the hold back to the caller.
func (uc UseCase) CreateEvent(ctx context.Context, cmd CreateEventCommand) (entities.Event, error) {
	logger := application.ResolveLogger(uc.Logger)
	callerID := strings.TrimSpace(cmd.CallerID)
	logger.Info("event create started",
		"event", "lifecycle_event_create_started",
		"module", moduleTag,
		"layer", "application",
		"caller_id", callerID,
		"pool_amount", cmd.PoolAmount,
	)

	if err := uc.Access.RequireOrganizer(ctx, callerID); err != nil {
		logger.Warn("event create unauthorized",
			"event", "lifecycle_event_create_unauthorized",
			"module", moduleTag,
			"layer", "application",
			"caller_id", callerID,
		)
		return entities.Event{}, err
	}
	if strings.TrimSpace(cmd.Name) == "" || cmd.PoolAmount <= 0 || cmd.MaxTeamSize < 1 || cmd.MaxTeams < 1 {
		return entities.Event{}, domainerrors.ErrInvalidEventInput
	}
	if cmd.FirstPercent+cmd.SecondPercent+cmd.ThirdPercent != 100 ||
		cmd.FirstPercent < 0 || cmd.SecondPercent < 0 || cmd.ThirdPercent < 0 {
		return entities.Event{}, domainerrors.ErrInvalidSplit
	}
	if cmd.SuppliedFunds != cmd.PoolAmount {
		return entities.Event{}, domainerrors.ErrFundsMismatch
	}
	if !cmd.VotingEndsAt.After(cmd.VotingStartsAt) {
		return entities.Event{}, domainerrors.ErrInvalidWindow
	}

	escrowRef, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Event{}, err
	}
	now := uc.now()
	if err := uc.Escrow.EscrowFunds(ctx, callerID, escrowRef, cmd.PoolAmount, cmd.SuppliedFunds); err != nil {
		logger.Warn("event create escrow failed",
			"event", "lifecycle_event_create_escrow_failed",
			"module", moduleTag,
			"layer", "application",
			"caller_id", callerID,
			"pool_amount", cmd.PoolAmount,
			"error", err.Error(),
		)
		return entities.Event{}, err
	}

	created, err := uc.Events.CreateEvent(ctx, entities.Event{
		Name:           strings.TrimSpace(cmd.Name),
		Description:    strings.TrimSpace(cmd.Description),
		CreatorID:      callerID,
		EscrowRef:      escrowRef,
		PoolAmount:     cmd.PoolAmount,
		FirstPercent:   cmd.FirstPercent,
		SecondPercent:  cmd.SecondPercent,
		ThirdPercent:   cmd.ThirdPercent,
		MaxTeamSize:    cmd.MaxTeamSize,
		MaxTeams:       cmd.MaxTeams,
		VotingStartsAt: cmd.VotingStartsAt.UTC(),
		VotingEndsAt:   cmd.VotingEndsAt.UTC(),
		Status:         entities.EventStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		// The hold was taken before allocation; hand it back.
		if releaseErr := uc.Escrow.ReleaseEscrow(ctx, escrowRef, callerID, cmd.PoolAmount); releaseErr != nil {
			logger.Error("event create escrow compensation failed",
				"event", "lifecycle_event_create_escrow_compensation_failed",
				"module", moduleTag,
				"layer", "application",
				"caller_id", callerID,
				"escrow_ref", escrowRef,
				"error", releaseErr.Error(),
			)
		}
		return entities.Event{}, err
	}

	logger.Info("event created",
		"event", "lifecycle_event_created",
		"module", moduleTag,
		"layer", "application",
		"event_id", created.EventID,
		"caller_id", callerID,
		"pool_amount", created.PoolAmount,
	)
	return created, nil
}

// PublishEvent opens the event for team registration.
func (uc UseCase) PublishEvent(ctx context.Context, cmd PublishEventCommand) (entities.Event, error) {
	logger := application.ResolveLogger(uc.Logger)
	callerID := strings.TrimSpace(cmd.CallerID)

	event, err := uc.Events.GetEvent(ctx, cmd.EventID)
	if err != nil {
		return entities.Event{}, err
	}
	if err := uc.requireCreatorOrAdmin(ctx, callerID, event); err != nil {
		logger.Warn("event publish unauthorized",
			"event", "lifecycle_event_publish_unauthorized",
			"module", moduleTag,
			"layer", "application",
			"event_id", cmd.EventID,
			"caller_id", callerID,
		)
		return entities.Event{}, err
	}

	published, err := uc.Events.MarkPublished(ctx, cmd.EventID, uc.now())
	if err != nil {
		return entities.Event{}, err
	}
	uc.appendOutbox(ctx, logger, topicEventPublished, published.EventID, map[string]any{
		"event_id": published.EventID,
		"name":     published.Name,
	})
	logger.Info("event published",
		"event", "lifecycle_event_published",
		"module", moduleTag,
		"layer", "application",
		"event_id", published.EventID,
		"caller_id", callerID,
	)
	return published, nil
}

// CancelEvent marks the event cancelled and refunds the escrow remainder to
// the creator. Every other command refuses cancelled events afterwards.
func (uc UseCase) CancelEvent(ctx context.Context, cmd CancelEventCommand) (entities.Event, error) {
	logger := application.ResolveLogger(uc.Logger)
	callerID := strings.TrimSpace(cmd.CallerID)

	event, err := uc.Events.GetEvent(ctx, cmd.EventID)
	if err != nil {
		return entities.Event{}, err
	}
	if err := uc.requireCreatorOrAdmin(ctx, callerID, event); err != nil {
		logger.Warn("event cancel unauthorized",
			"event", "lifecycle_event_cancel_unauthorized",
			"module", moduleTag,
			"layer", "application",
			"event_id", cmd.EventID,
			"caller_id", callerID,
		)
		return entities.Event{}, err
	}

	cancelled, err := uc.Events.MarkCancelled(ctx, cmd.EventID, uc.now())
	if err != nil {
		logger.Warn("event cancel rejected",
			"event", "lifecycle_event_cancel_rejected",
			"module", moduleTag,
			"layer", "application",
			"event_id", cmd.EventID,
			"caller_id", callerID,
			"error", err.Error(),
		)
		return entities.Event{}, err
	}

	remainder, err := uc.Escrow.EscrowBalance(ctx, cancelled.EscrowRef)
	if err != nil {
		return entities.Event{}, err
	}
	if remainder > 0 {
		if err := uc.Escrow.ReleaseEscrow(ctx, cancelled.EscrowRef, cancelled.CreatorID, remainder); err != nil {
			logger.Error("event cancel refund failed",
				"event", "lifecycle_event_cancel_refund_failed",
				"module", moduleTag,
				"layer", "application",
				"event_id", cmd.EventID,
				"creator_id", cancelled.CreatorID,
				"amount", remainder,
				"error", err.Error(),
			)
			return entities.Event{}, err
		}
	}
	uc.appendOutbox(ctx, logger, topicEventCancelled, cancelled.EventID, map[string]any{
		"event_id": cancelled.EventID,
		"refunded": remainder,
	})
	logger.Info("event cancelled",
		"event", "lifecycle_event_cancelled",
		"module", moduleTag,
		"layer", "application",
		"event_id", cancelled.EventID,
		"caller_id", callerID,
		"refunded", remainder,
	)
	return cancelled, nil
}

// requireCreatorOrAdmin gates creator-scoped organizer actions. The creator
// must still hold the organizer role; any administrator may act instead.
func (uc UseCase) requireCreatorOrAdmin(ctx context.Context, callerID string, event entities.Event) error {
	if callerID == event.CreatorID {
		return uc.Access.RequireOrganizer(ctx, callerID)
	}
	admin, err := uc.Access.IsAdministrator(ctx, callerID)
	if err != nil {
		return err
	}
	if !admin {
		return domainerrors.ErrUnauthorized
	}
	return nil
}

func formatEventID(eventID int64) string {
	return strconv.FormatInt(eventID, 10)
}

func (uc UseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}

// appendOutbox records a lifecycle fact for the relay worker. Outbox failures
// are logged, not surfaced: the state mutation already committed.
func (uc UseCase) appendOutbox(ctx context.Context, logger *slog.Logger, topic string, eventID int64, payload map[string]any) {
	if uc.Outbox == nil {
		return
	}
	outboxID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		logger.Error("outbox id generation failed",
			"event", "lifecycle_outbox_id_failed",
			"module", moduleTag,
			"layer", "application",
			"topic", topic,
			"error", err.Error(),
		)
		return
	}
	envelopeID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return
	}
	body, err := json.Marshal(events.Envelope{
		EventID:        envelopeID,
		EventType:      topic,
		SourceService:  sourceService,
		OccurredAtUTC:  uc.now(),
		EntityType:     "event",
		EntityID:       formatEventID(eventID),
		PayloadVersion: 1,
		Payload:        payload,
	})
	if err != nil {
		return
	}
	if err := uc.Outbox.AppendOutbox(ctx, outbox.Message{
		ID:        outboxID,
		EventType: topic,
		Payload:   body,
		Status:    "pending",
	}); err != nil {
		logger.Error("outbox append failed",
			"event", "lifecycle_outbox_append_failed",
			"module", moduleTag,
			"layer", "application",
			"topic", topic,
			"error", err.Error(),
		)
	}
}
