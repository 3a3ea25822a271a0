package commands

import (
	"context"
	"strings"

	application "eventx/contexts/competition/event-lifecycle-service/application"
	"eventx/contexts/competition/event-lifecycle-service/domain/entities"
)

type DistributePrizeCommand struct {
	CallerID string
	EventID  int64
	TeamID   int64
}

// DistributePrize releases a team's owed prize to its leader exactly once.
//
// Checks-effects-interactions: the distributed flag commits in the
// repository before any funds move, so a duplicate or reentrant call
// observes the flag and is rejected with ErrAlreadyDistributed. If the
// ledger release itself fails, the flag flip is compensated and the error
// surfaced; no funds have moved at that point.
func (uc UseCase) DistributePrize(ctx context.Context, cmd DistributePrizeCommand) (entities.Team, error) {
	logger := application.ResolveLogger(uc.Logger)
	callerID := strings.TrimSpace(cmd.CallerID)
	logger.Info("prize distribution started",
		"event", "lifecycle_distribute_started",
		"module", moduleTag,
		"layer", "application",
		"event_id", cmd.EventID,
		"team_id", cmd.TeamID,
		"caller_id", callerID,
	)

	if err := uc.Access.RequireOrganizer(ctx, callerID); err != nil {
		logger.Warn("prize distribution unauthorized",
			"event", "lifecycle_distribute_unauthorized",
			"module", moduleTag,
			"layer", "application",
			"event_id", cmd.EventID,
			"team_id", cmd.TeamID,
			"caller_id", callerID,
		)
		return entities.Team{}, err
	}

	event, err := uc.Events.GetEvent(ctx, cmd.EventID)
	if err != nil {
		return entities.Team{}, err
	}

	team, err := uc.Events.MarkDistributed(ctx, cmd.EventID, cmd.TeamID, uc.now())
	if err != nil {
		logger.Warn("prize distribution rejected",
			"event", "lifecycle_distribute_rejected",
			"module", moduleTag,
			"layer", "application",
			"event_id", cmd.EventID,
			"team_id", cmd.TeamID,
			"caller_id", callerID,
			"error", err.Error(),
		)
		return entities.Team{}, err
	}

	if team.PrizeAmount > 0 {
		if err := uc.Escrow.ReleaseEscrow(ctx, event.EscrowRef, team.LeaderID, team.PrizeAmount); err != nil {
			logger.Error("prize release failed",
				"event", "lifecycle_distribute_release_failed",
				"module", moduleTag,
				"layer", "application",
				"event_id", cmd.EventID,
				"team_id", cmd.TeamID,
				"leader_id", team.LeaderID,
				"amount", team.PrizeAmount,
				"error", err.Error(),
			)
			if revertErr := uc.Events.RevertDistribution(ctx, cmd.EventID, cmd.TeamID, uc.now()); revertErr != nil {
				logger.Error("prize distribution revert failed",
					"event", "lifecycle_distribute_revert_failed",
					"module", moduleTag,
					"layer", "application",
					"event_id", cmd.EventID,
					"team_id", cmd.TeamID,
					"error", revertErr.Error(),
				)
			}
			return entities.Team{}, err
		}
	}

	uc.appendOutbox(ctx, logger, topicPrizeReleased, cmd.EventID, map[string]any{
		"event_id":  cmd.EventID,
		"team_id":   cmd.TeamID,
		"leader_id": team.LeaderID,
		"amount":    team.PrizeAmount,
		"rank":      team.Rank,
	})
	logger.Info("prize distributed",
		"event", "lifecycle_prize_distributed",
		"module", moduleTag,
		"layer", "application",
		"event_id", cmd.EventID,
		"team_id", cmd.TeamID,
		"leader_id", team.LeaderID,
		"amount", team.PrizeAmount,
	)
	return team, nil
}
