package commands

import (
	"context"
	"strings"

	application "eventx/contexts/competition/event-lifecycle-service/application"
	"eventx/contexts/competition/event-lifecycle-service/domain/entities"
)

type FinalizeResultsCommand struct {
	CallerID string
	EventID  int64
	Ranking  entities.RankingInput
}

// FinalizeResults fixes each team's rank and owed prize amount. The call is
// terminal: voting, registration, and re-finalization are rejected once the
// finalized flag is set.
func (uc UseCase) FinalizeResults(ctx context.Context, cmd FinalizeResultsCommand) ([]entities.Team, error) {
	logger := application.ResolveLogger(uc.Logger)
	callerID := strings.TrimSpace(cmd.CallerID)
	logger.Info("finalize started",
		"event", "lifecycle_finalize_started",
		"module", moduleTag,
		"layer", "application",
		"event_id", cmd.EventID,
		"caller_id", callerID,
		"mode", string(cmd.Ranking.Mode),
	)

	if err := uc.Access.RequireOrganizer(ctx, callerID); err != nil {
		logger.Warn("finalize unauthorized",
			"event", "lifecycle_finalize_unauthorized",
			"module", moduleTag,
			"layer", "application",
			"event_id", cmd.EventID,
			"caller_id", callerID,
		)
		return nil, err
	}

	ranked, err := uc.Events.FinalizeRanking(ctx, cmd.EventID, cmd.Ranking, uc.now())
	if err != nil {
		logger.Warn("finalize rejected",
			"event", "lifecycle_finalize_rejected",
			"module", moduleTag,
			"layer", "application",
			"event_id", cmd.EventID,
			"caller_id", callerID,
			"mode", string(cmd.Ranking.Mode),
			"error", err.Error(),
		)
		return nil, err
	}

	uc.appendOutbox(ctx, logger, topicEventFinalized, cmd.EventID, map[string]any{
		"event_id":   cmd.EventID,
		"team_count": len(ranked),
		"mode":       string(cmd.Ranking.Mode),
	})
	logger.Info("finalize completed",
		"event", "lifecycle_finalize_completed",
		"module", moduleTag,
		"layer", "application",
		"event_id", cmd.EventID,
		"caller_id", callerID,
		"team_count", len(ranked),
	)
	return ranked, nil
}
