package queries

import (
	"context"
	"sort"
	"strings"

	"eventx/contexts/competition/event-lifecycle-service/domain/entities"
	"eventx/contexts/competition/event-lifecycle-service/ports"
)

// QueryUseCase serves the read side consumed by the CRUD API and front end.
// None of these mutate state; invariant checks stay in the command path.
type QueryUseCase struct {
	Events ports.EventRepository
}

func (q QueryUseCase) EventDetails(ctx context.Context, eventID int64) (entities.Event, error) {
	return q.Events.GetEvent(ctx, eventID)
}

func (q QueryUseCase) ListEvents(ctx context.Context) ([]entities.Event, error) {
	return q.Events.ListEvents(ctx)
}

func (q QueryUseCase) TeamDetails(ctx context.Context, eventID int64, teamID int64) (entities.Team, error) {
	return q.Events.GetTeam(ctx, eventID, teamID)
}

func (q QueryUseCase) TeamMembers(ctx context.Context, eventID int64, teamID int64) ([]string, error) {
	team, err := q.Events.GetTeam(ctx, eventID, teamID)
	if err != nil {
		return nil, err
	}
	members := make([]string, len(team.Members))
	copy(members, team.Members)
	return members, nil
}

// EventRankings returns teams in rank order after finalization and in
// registration order before it (ranks are still zero at that point).
func (q QueryUseCase) EventRankings(ctx context.Context, eventID int64) ([]entities.Team, error) {
	event, err := q.Events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	teams, err := q.Events.ListTeams(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.ResultsFinalized {
		sort.Slice(teams, func(i, j int) bool { return teams[i].Rank < teams[j].Rank })
	}
	return teams, nil
}

func (q QueryUseCase) HasParticipantVoted(ctx context.Context, eventID int64, participantID string) (bool, error) {
	return q.Events.HasVoted(ctx, eventID, strings.TrimSpace(participantID))
}
