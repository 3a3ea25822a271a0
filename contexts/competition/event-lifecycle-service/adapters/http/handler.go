package httpadapter

import (
	"context"
	"log/slog"

	"eventx/contexts/competition/event-lifecycle-service/application/commands"
	"eventx/contexts/competition/event-lifecycle-service/application/queries"
	"eventx/contexts/competition/event-lifecycle-service/domain/entities"
	httptransport "eventx/contexts/competition/event-lifecycle-service/transport/http"
)

type Handler struct {
	Lifecycle commands.UseCase
	Queries   queries.QueryUseCase
	Logger    *slog.Logger
}

func (h Handler) CreateEventHandler(ctx context.Context, callerID string, req httptransport.CreateEventRequest) (httptransport.EventResponse, error) {
	event, err := h.Lifecycle.CreateEvent(ctx, commands.CreateEventCommand{
		CallerID:       callerID,
		Name:           req.Name,
		Description:    req.Description,
		PoolAmount:     req.PoolAmount,
		FirstPercent:   req.FirstPercent,
		SecondPercent:  req.SecondPercent,
		ThirdPercent:   req.ThirdPercent,
		MaxTeamSize:    req.MaxTeamSize,
		MaxTeams:       req.MaxTeams,
		VotingStartsAt: req.VotingStartsAt,
		VotingEndsAt:   req.VotingEndsAt,
		SuppliedFunds:  req.SuppliedFunds,
	})
	if err != nil {
		return httptransport.EventResponse{}, err
	}
	return mapEvent(event), nil
}

func (h Handler) PublishEventHandler(ctx context.Context, callerID string, eventID int64) (httptransport.EventResponse, error) {
	event, err := h.Lifecycle.PublishEvent(ctx, commands.PublishEventCommand{CallerID: callerID, EventID: eventID})
	if err != nil {
		return httptransport.EventResponse{}, err
	}
	return mapEvent(event), nil
}

func (h Handler) CancelEventHandler(ctx context.Context, callerID string, eventID int64) (httptransport.EventResponse, error) {
	event, err := h.Lifecycle.CancelEvent(ctx, commands.CancelEventCommand{CallerID: callerID, EventID: eventID})
	if err != nil {
		return httptransport.EventResponse{}, err
	}
	return mapEvent(event), nil
}

func (h Handler) RegisterTeamHandler(ctx context.Context, callerID string, eventID int64, req httptransport.RegisterTeamRequest) (httptransport.TeamResponse, error) {
	team, err := h.Lifecycle.RegisterTeam(ctx, commands.RegisterTeamCommand{
		CallerID: callerID,
		EventID:  eventID,
		TeamName: req.Name,
	})
	if err != nil {
		return httptransport.TeamResponse{}, err
	}
	return mapTeam(team), nil
}

func (h Handler) JoinTeamHandler(ctx context.Context, callerID string, eventID int64, teamID int64) (httptransport.TeamResponse, error) {
	team, err := h.Lifecycle.JoinTeam(ctx, commands.JoinTeamCommand{
		CallerID: callerID,
		EventID:  eventID,
		TeamID:   teamID,
	})
	if err != nil {
		return httptransport.TeamResponse{}, err
	}
	return mapTeam(team), nil
}

func (h Handler) SetVotingStateHandler(ctx context.Context, callerID string, eventID int64, req httptransport.SetVotingStateRequest) (httptransport.EventResponse, error) {
	event, err := h.Lifecycle.SetVotingState(ctx, commands.SetVotingStateCommand{
		CallerID: callerID,
		EventID:  eventID,
		Open:     req.Open,
	})
	if err != nil {
		return httptransport.EventResponse{}, err
	}
	return mapEvent(event), nil
}

func (h Handler) CastVoteHandler(ctx context.Context, callerID string, eventID int64, req httptransport.CastVoteRequest) (httptransport.TeamResponse, error) {
	team, err := h.Lifecycle.CastVote(ctx, commands.CastVoteCommand{
		CallerID: callerID,
		EventID:  eventID,
		TeamID:   req.TeamID,
	})
	if err != nil {
		return httptransport.TeamResponse{}, err
	}
	return mapTeam(team), nil
}

func (h Handler) FinalizeResultsHandler(ctx context.Context, callerID string, eventID int64, req httptransport.FinalizeResultsRequest) (httptransport.RankingsResponse, error) {
	ranking := entities.RankingInput{Mode: entities.RankingAutomatic}
	if req.UseManualRanking {
		ranking = entities.RankingInput{Mode: entities.RankingManual, ManualOrder: req.ManualOrder}
	}
	ranked, err := h.Lifecycle.FinalizeResults(ctx, commands.FinalizeResultsCommand{
		CallerID: callerID,
		EventID:  eventID,
		Ranking:  ranking,
	})
	if err != nil {
		return httptransport.RankingsResponse{}, err
	}
	return httptransport.RankingsResponse{
		EventID:   eventID,
		Finalized: true,
		Items:     mapTeams(ranked),
	}, nil
}

func (h Handler) DistributePrizeHandler(ctx context.Context, callerID string, eventID int64, teamID int64) (httptransport.TeamResponse, error) {
	team, err := h.Lifecycle.DistributePrize(ctx, commands.DistributePrizeCommand{
		CallerID: callerID,
		EventID:  eventID,
		TeamID:   teamID,
	})
	if err != nil {
		return httptransport.TeamResponse{}, err
	}
	return mapTeam(team), nil
}

func (h Handler) EventDetailsHandler(ctx context.Context, eventID int64) (httptransport.EventResponse, error) {
	event, err := h.Queries.EventDetails(ctx, eventID)
	if err != nil {
		return httptransport.EventResponse{}, err
	}
	return mapEvent(event), nil
}

func (h Handler) ListEventsHandler(ctx context.Context) (httptransport.EventListResponse, error) {
	events, err := h.Queries.ListEvents(ctx)
	if err != nil {
		return httptransport.EventListResponse{}, err
	}
	items := make([]httptransport.EventResponse, 0, len(events))
	for _, event := range events {
		items = append(items, mapEvent(event))
	}
	return httptransport.EventListResponse{Items: items}, nil
}

func (h Handler) TeamDetailsHandler(ctx context.Context, eventID int64, teamID int64) (httptransport.TeamResponse, error) {
	team, err := h.Queries.TeamDetails(ctx, eventID, teamID)
	if err != nil {
		return httptransport.TeamResponse{}, err
	}
	return mapTeam(team), nil
}

func (h Handler) TeamMembersHandler(ctx context.Context, eventID int64, teamID int64) (httptransport.TeamMembersResponse, error) {
	members, err := h.Queries.TeamMembers(ctx, eventID, teamID)
	if err != nil {
		return httptransport.TeamMembersResponse{}, err
	}
	return httptransport.TeamMembersResponse{
		EventID: eventID,
		TeamID:  teamID,
		Members: members,
	}, nil
}

func (h Handler) EventRankingsHandler(ctx context.Context, eventID int64) (httptransport.RankingsResponse, error) {
	event, err := h.Queries.EventDetails(ctx, eventID)
	if err != nil {
		return httptransport.RankingsResponse{}, err
	}
	teams, err := h.Queries.EventRankings(ctx, eventID)
	if err != nil {
		return httptransport.RankingsResponse{}, err
	}
	return httptransport.RankingsResponse{
		EventID:   eventID,
		Finalized: event.ResultsFinalized,
		Items:     mapTeams(teams),
	}, nil
}

func (h Handler) HasVotedHandler(ctx context.Context, eventID int64, participantID string) (httptransport.HasVotedResponse, error) {
	voted, err := h.Queries.HasParticipantVoted(ctx, eventID, participantID)
	if err != nil {
		return httptransport.HasVotedResponse{}, err
	}
	return httptransport.HasVotedResponse{
		EventID:       eventID,
		ParticipantID: participantID,
		HasVoted:      voted,
	}, nil
}

func mapEvent(event entities.Event) httptransport.EventResponse {
	return httptransport.EventResponse{
		EventID:          event.EventID,
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
	}
}

func mapTeam(team entities.Team) httptransport.TeamResponse {
	return httptransport.TeamResponse{
		EventID:          team.EventID,
		TeamID:           team.TeamID,
		Name:             team.Name,
		LeaderID:         team.LeaderID,
		Members:          team.Members,
		VoteCount:        team.VoteCount,
		Rank:             team.Rank,
		PrizeAmount:      team.PrizeAmount,
		PrizeDistributed: team.PrizeDistributed,
	}
}

func mapTeams(teams []entities.Team) []httptransport.TeamResponse {
	items := make([]httptransport.TeamResponse, 0, len(teams))
	for _, team := range teams {
		items = append(items, mapTeam(team))
	}
	return items
}
