package commands

import (
	"context"
	"strings"

	application "eventx/contexts/competition/event-lifecycle-service/application"
	"eventx/contexts/competition/event-lifecycle-service/domain/entities"
	domainerrors "eventx/contexts/competition/event-lifecycle-service/domain/errors"
)

type SetVotingStateCommand struct {
	CallerID string
	EventID  int64
	Open     bool
}

type CastVoteCommand struct {
	CallerID string
	EventID  int64
	TeamID   int64
}

// SetVotingState flips the voting-open flag. The flag is the authoritative
// gate for CastVote; the window timestamps recorded at creation are
// descriptive metadata only.
func (uc UseCase) SetVotingState(ctx context.Context, cmd SetVotingStateCommand) (entities.Event, error) {
	logger := application.ResolveLogger(uc.Logger)
	callerID := strings.TrimSpace(cmd.CallerID)

	if err := uc.Access.RequireOrganizer(ctx, callerID); err != nil {
		logger.Warn("voting state change unauthorized",
			"event", "lifecycle_voting_state_unauthorized",
			"module", moduleTag,
			"layer", "application",
			"event_id", cmd.EventID,
			"caller_id", callerID,
		)
		return entities.Event{}, err
	}

	event, err := uc.Events.SetVotingOpen(ctx, cmd.EventID, cmd.Open, uc.now())
	if err != nil {
		logger.Warn("voting state change rejected",
			"event", "lifecycle_voting_state_rejected",
			"module", moduleTag,
			"layer", "application",
			"event_id", cmd.EventID,
			"caller_id", callerID,
			"open", cmd.Open,
			"error", err.Error(),
		)
		return entities.Event{}, err
	}

	logger.Info("voting state changed",
		"event", "lifecycle_voting_state_changed",
		"module", moduleTag,
		"layer", "application",
		"event_id", event.EventID,
		"caller_id", callerID,
		"open", event.VotingOpen,
	)
	return event, nil
}

// CastVote records one ballot for a team the caller does not belong to. The
// tally increment and ballot-set insertion commit atomically in the
// repository, so the total count always equals the number of accepted
// ballots.
func (uc UseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (entities.Team, error) {
	logger := application.ResolveLogger(uc.Logger)
	callerID := strings.TrimSpace(cmd.CallerID)
	if callerID == "" {
		return entities.Team{}, domainerrors.ErrNotRegistered
	}

	team, err := uc.Events.RecordVote(ctx, cmd.EventID, cmd.TeamID, callerID, uc.now())
	if err != nil {
		logger.Warn("vote rejected",
			"event", "lifecycle_vote_rejected",
			"module", moduleTag,
			"layer", "application",
			"event_id", cmd.EventID,
			"team_id", cmd.TeamID,
			"caller_id", callerID,
			"error", err.Error(),
		)
		return entities.Team{}, err
	}

	logger.Info("vote accepted",
		"event", "lifecycle_vote_accepted",
		"module", moduleTag,
		"layer", "application",
		"event_id", cmd.EventID,
		"team_id", team.TeamID,
		"caller_id", callerID,
		"vote_count", team.VoteCount,
	)
	return team, nil
}
