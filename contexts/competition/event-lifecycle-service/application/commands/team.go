package commands

import (
	"context"
	"strings"

	application "eventx/contexts/competition/event-lifecycle-service/application"
	"eventx/contexts/competition/event-lifecycle-service/domain/entities"
	domainerrors "eventx/contexts/competition/event-lifecycle-service/domain/errors"
)

type RegisterTeamCommand struct {
	CallerID string
	EventID  int64
	TeamName string
}

type JoinTeamCommand struct {
	CallerID string
	EventID  int64
	TeamID   int64
}

// RegisterTeam allocates a team with the caller as leader and first member.
// Team ids are dense and assigned in creation order.
func (uc UseCase) RegisterTeam(ctx context.Context, cmd RegisterTeamCommand) (entities.Team, error) {
	logger := application.ResolveLogger(uc.Logger)
	callerID := strings.TrimSpace(cmd.CallerID)
	teamName := strings.TrimSpace(cmd.TeamName)
	if callerID == "" || teamName == "" {
		return entities.Team{}, domainerrors.ErrInvalidEventInput
	}

	team, err := uc.Events.AddTeam(ctx, cmd.EventID, teamName, callerID, uc.now())
	if err != nil {
		logger.Warn("team registration rejected",
			"event", "lifecycle_team_register_rejected",
			"module", moduleTag,
			"layer", "application",
			"event_id", cmd.EventID,
			"caller_id", callerID,
			"error", err.Error(),
		)
		return entities.Team{}, err
	}

	logger.Info("team registered",
		"event", "lifecycle_team_registered",
		"module", moduleTag,
		"layer", "application",
		"event_id", cmd.EventID,
		"team_id", team.TeamID,
		"leader_id", callerID,
	)
	return team, nil
}

// JoinTeam appends the caller to an existing team's roster.
func (uc UseCase) JoinTeam(ctx context.Context, cmd JoinTeamCommand) (entities.Team, error) {
	logger := application.ResolveLogger(uc.Logger)
	callerID := strings.TrimSpace(cmd.CallerID)
	if callerID == "" {
		return entities.Team{}, domainerrors.ErrInvalidEventInput
	}

	team, err := uc.Events.AddMember(ctx, cmd.EventID, cmd.TeamID, callerID, uc.now())
	if err != nil {
		logger.Warn("team join rejected",
			"event", "lifecycle_team_join_rejected",
			"module", moduleTag,
			"layer", "application",
			"event_id", cmd.EventID,
			"team_id", cmd.TeamID,
			"caller_id", callerID,
			"error", err.Error(),
		)
		return entities.Team{}, err
	}

	logger.Info("team joined",
		"event", "lifecycle_team_joined",
		"module", moduleTag,
		"layer", "application",
		"event_id", cmd.EventID,
		"team_id", team.TeamID,
		"caller_id", callerID,
		"member_count", len(team.Members),
	)
	return team, nil
}
