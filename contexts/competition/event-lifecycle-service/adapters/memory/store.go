package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"eventx/contexts/competition/event-lifecycle-service/domain/entities"
	domainerrors "eventx/contexts/competition/event-lifecycle-service/domain/errors"
	"eventx/internal/shared/outbox"

	"github.com/google/uuid"
)

// aggregate is one event with its teams and ballot set behind a single
// mutex: every invariant here spans multiple fields, so mutations take the
// whole aggregate or nothing.
type aggregate struct {
	mu      sync.Mutex
	event   entities.Event
	teams   []entities.Team
	ballots map[string]bool
}

// Store is the in-memory EventRepository. Operations on different events
// proceed in parallel; operations on the same event serialize on the
// aggregate mutex.
type Store struct {
	mu         sync.RWMutex
	nextID     int64
	aggregates map[int64]*aggregate

	outboxMu sync.Mutex
	outbox   []outbox.Message
}

func NewStore() *Store {
	return &Store{
		nextID:     1,
		aggregates: make(map[int64]*aggregate),
	}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) CreateEvent(_ context.Context, event entities.Event) (entities.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event.EventID = s.nextID
	s.nextID++
	s.aggregates[event.EventID] = &aggregate{
		event:   event,
		ballots: make(map[string]bool),
	}
	return event, nil
}

func (s *Store) GetEvent(_ context.Context, eventID int64) (entities.Event, error) {
	agg, err := s.aggregate(eventID)
	if err != nil {
		return entities.Event{}, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	return agg.event, nil
}

func (s *Store) ListEvents(_ context.Context) ([]entities.Event, error) {
	s.mu.RLock()
	aggs := make([]*aggregate, 0, len(s.aggregates))
	for _, agg := range s.aggregates {
		aggs = append(aggs, agg)
	}
	s.mu.RUnlock()

	events := make([]entities.Event, 0, len(aggs))
	for _, agg := range aggs {
		agg.mu.Lock()
		events = append(events, agg.event)
		agg.mu.Unlock()
	}
	sort.Slice(events, func(i, j int) bool { return events[i].EventID < events[j].EventID })
	return events, nil
}

func (s *Store) GetTeam(_ context.Context, eventID int64, teamID int64) (entities.Team, error) {
	agg, err := s.aggregate(eventID)
	if err != nil {
		return entities.Team{}, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	if teamID < 0 || teamID >= int64(len(agg.teams)) {
		return entities.Team{}, domainerrors.ErrUnknownTeam
	}
	return copyTeam(agg.teams[teamID]), nil
}

func (s *Store) ListTeams(_ context.Context, eventID int64) ([]entities.Team, error) {
	agg, err := s.aggregate(eventID)
	if err != nil {
		return nil, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	teams := make([]entities.Team, len(agg.teams))
	for i, team := range agg.teams {
		teams[i] = copyTeam(team)
	}
	return teams, nil
}

func (s *Store) HasVoted(_ context.Context, eventID int64, participantID string) (bool, error) {
	agg, err := s.aggregate(eventID)
	if err != nil {
		return false, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	return agg.ballots[participantID], nil
}

func (s *Store) MarkPublished(_ context.Context, eventID int64, now time.Time) (entities.Event, error) {
	agg, err := s.aggregate(eventID)
	if err != nil {
		return entities.Event{}, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	if agg.event.Cancelled() {
		return entities.Event{}, domainerrors.ErrEventCancelled
	}
	if agg.event.Published {
		return entities.Event{}, domainerrors.ErrAlreadyPublished
	}
	agg.event.Published = true
	agg.event.UpdatedAt = now
	return agg.event, nil
}

func (s *Store) MarkCancelled(_ context.Context, eventID int64, now time.Time) (entities.Event, error) {
	agg, err := s.aggregate(eventID)
	if err != nil {
		return entities.Event{}, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	if agg.event.ResultsFinalized {
		return entities.Event{}, domainerrors.ErrAlreadyFinalized
	}
	if agg.event.Cancelled() {
		return entities.Event{}, domainerrors.ErrEventCancelled
	}
	agg.event.Status = entities.EventStatusCancelled
	agg.event.VotingOpen = false
	agg.event.UpdatedAt = now
	return agg.event, nil
}

func (s *Store) SetVotingOpen(_ context.Context, eventID int64, open bool, now time.Time) (entities.Event, error) {
	agg, err := s.aggregate(eventID)
	if err != nil {
		return entities.Event{}, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	if agg.event.Cancelled() {
		return entities.Event{}, domainerrors.ErrEventCancelled
	}
	if agg.event.ResultsFinalized {
		return entities.Event{}, domainerrors.ErrAlreadyFinalized
	}
	agg.event.VotingOpen = open
	agg.event.UpdatedAt = now
	return agg.event, nil
}

func (s *Store) AddTeam(_ context.Context, eventID int64, name string, leaderID string, now time.Time) (entities.Team, error) {
	agg, err := s.aggregate(eventID)
	if err != nil {
		return entities.Team{}, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	if agg.event.Cancelled() {
		return entities.Team{}, domainerrors.ErrEventCancelled
	}
	if agg.event.ResultsFinalized {
		return entities.Team{}, domainerrors.ErrAlreadyFinalized
	}
	if !agg.event.Published {
		return entities.Team{}, domainerrors.ErrNotPublished
	}
	if len(agg.teams) >= agg.event.MaxTeams {
		return entities.Team{}, domainerrors.ErrMaxTeamsReached
	}
	if _, registered := entities.TeamOf(agg.teams, leaderID); registered {
		return entities.Team{}, domainerrors.ErrAlreadyRegistered
	}
	team := entities.Team{
		EventID:   eventID,
		TeamID:    int64(len(agg.teams)),
		Name:      name,
		LeaderID:  leaderID,
		Members:   []string{leaderID},
		CreatedAt: now,
		UpdatedAt: now,
	}
	agg.teams = append(agg.teams, team)
	agg.event.UpdatedAt = now
	return copyTeam(team), nil
}

func (s *Store) AddMember(_ context.Context, eventID int64, teamID int64, participantID string, now time.Time) (entities.Team, error) {
	agg, err := s.aggregate(eventID)
	if err != nil {
		return entities.Team{}, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	if agg.event.Cancelled() {
		return entities.Team{}, domainerrors.ErrEventCancelled
	}
	if agg.event.ResultsFinalized {
		return entities.Team{}, domainerrors.ErrAlreadyFinalized
	}
	if _, registered := entities.TeamOf(agg.teams, participantID); registered {
		return entities.Team{}, domainerrors.ErrAlreadyRegistered
	}
	if teamID < 0 || teamID >= int64(len(agg.teams)) {
		return entities.Team{}, domainerrors.ErrUnknownTeam
	}
	team := &agg.teams[teamID]
	if len(team.Members) >= agg.event.MaxTeamSize {
		return entities.Team{}, domainerrors.ErrTeamFull
	}
	team.Members = append(team.Members, participantID)
	team.UpdatedAt = now
	return copyTeam(*team), nil
}

func (s *Store) RecordVote(_ context.Context, eventID int64, teamID int64, voterID string, now time.Time) (entities.Team, error) {
	agg, err := s.aggregate(eventID)
	if err != nil {
		return entities.Team{}, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	if agg.event.Cancelled() {
		return entities.Team{}, domainerrors.ErrEventCancelled
	}
	if agg.event.ResultsFinalized {
		return entities.Team{}, domainerrors.ErrAlreadyFinalized
	}
	if !agg.event.VotingOpen {
		return entities.Team{}, domainerrors.ErrVotingClosed
	}
	ownTeam, registered := entities.TeamOf(agg.teams, voterID)
	if !registered {
		return entities.Team{}, domainerrors.ErrNotRegistered
	}
	if teamID < 0 || teamID >= int64(len(agg.teams)) {
		return entities.Team{}, domainerrors.ErrUnknownTeam
	}
	if ownTeam == teamID {
		return entities.Team{}, domainerrors.ErrSelfVote
	}
	if agg.ballots[voterID] {
		return entities.Team{}, domainerrors.ErrAlreadyVoted
	}
	team := &agg.teams[teamID]
	team.VoteCount++
	team.UpdatedAt = now
	agg.ballots[voterID] = true
	return copyTeam(*team), nil
}

func (s *Store) FinalizeRanking(_ context.Context, eventID int64, input entities.RankingInput, now time.Time) ([]entities.Team, error) {
	agg, err := s.aggregate(eventID)
	if err != nil {
		return nil, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	if agg.event.Cancelled() {
		return nil, domainerrors.ErrEventCancelled
	}
	if agg.event.ResultsFinalized {
		return nil, domainerrors.ErrAlreadyFinalized
	}

	order, err := entities.RankOrder(agg.teams, input)
	if err != nil {
		return nil, err
	}
	ranked := make([]entities.Team, 0, len(order))
	for i, teamID := range order {
		team := &agg.teams[teamID]
		team.Rank = i + 1
		team.PrizeAmount = agg.event.PrizeForRank(team.Rank)
		team.UpdatedAt = now
		ranked = append(ranked, copyTeam(*team))
	}
	agg.event.ResultsFinalized = true
	agg.event.VotingOpen = false
	agg.event.UpdatedAt = now
	return ranked, nil
}

func (s *Store) MarkDistributed(_ context.Context, eventID int64, teamID int64, now time.Time) (entities.Team, error) {
	agg, err := s.aggregate(eventID)
	if err != nil {
		return entities.Team{}, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	if agg.event.Cancelled() {
		return entities.Team{}, domainerrors.ErrEventCancelled
	}
	if !agg.event.ResultsFinalized {
		return entities.Team{}, domainerrors.ErrNotFinalized
	}
	if teamID < 0 || teamID >= int64(len(agg.teams)) {
		return entities.Team{}, domainerrors.ErrUnknownTeam
	}
	team := &agg.teams[teamID]
	if team.PrizeDistributed {
		return entities.Team{}, domainerrors.ErrAlreadyDistributed
	}
	team.PrizeDistributed = true
	team.UpdatedAt = now
	return copyTeam(*team), nil
}

func (s *Store) RevertDistribution(_ context.Context, eventID int64, teamID int64, now time.Time) error {
	agg, err := s.aggregate(eventID)
	if err != nil {
		return err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	if teamID < 0 || teamID >= int64(len(agg.teams)) {
		return domainerrors.ErrUnknownTeam
	}
	team := &agg.teams[teamID]
	team.PrizeDistributed = false
	team.UpdatedAt = now
	return nil
}

func (s *Store) AppendOutbox(_ context.Context, message outbox.Message) error {
	s.outboxMu.Lock()
	defer s.outboxMu.Unlock()
	s.outbox = append(s.outbox, message)
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]outbox.Message, error) {
	s.outboxMu.Lock()
	defer s.outboxMu.Unlock()
	pending := make([]outbox.Message, 0, limit)
	for _, message := range s.outbox {
		if message.Status != "pending" {
			continue
		}
		pending = append(pending, message)
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.outboxMu.Lock()
	defer s.outboxMu.Unlock()
	for i := range s.outbox {
		if s.outbox[i].ID == outboxID {
			s.outbox[i].Status = "published"
			return nil
		}
	}
	return nil
}

func (s *Store) aggregate(eventID int64) (*aggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	agg, ok := s.aggregates[eventID]
	if !ok {
		return nil, domainerrors.ErrUnknownEvent
	}
	return agg, nil
}

func copyTeam(team entities.Team) entities.Team {
	members := make([]string, len(team.Members))
	copy(members, team.Members)
	team.Members = members
	return team
}
