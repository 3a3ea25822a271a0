package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"eventx/contexts/competition/event-lifecycle-service/domain/entities"
	domainerrors "eventx/contexts/competition/event-lifecycle-service/domain/errors"
)

func seedOpenEvent(t *testing.T, store *Store, teamCount int) entities.Event {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	event, err := store.CreateEvent(ctx, entities.Event{
		Name:        "spring-cup",
		CreatorID:   "organizer-1",
		PoolAmount:  100,
		MaxTeamSize: 3,
		MaxTeams:    teamCount,
		Status:      entities.EventStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("create event failed: %v", err)
	}
	if _, err := store.MarkPublished(ctx, event.EventID, now); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	for i := 0; i < teamCount; i++ {
		if _, err := store.AddTeam(ctx, event.EventID, fmt.Sprintf("team-%d", i), fmt.Sprintf("leader-%d", i), now); err != nil {
			t.Fatalf("add team %d failed: %v", i, err)
		}
	}
	if _, err := store.SetVotingOpen(ctx, event.EventID, true, now); err != nil {
		t.Fatalf("open voting failed: %v", err)
	}
	return event
}

func TestAddTeamAssignsDenseIDs(t *testing.T) {
	store := NewStore()
	event := seedOpenEvent(t, store, 4)

	teams, err := store.ListTeams(context.Background(), event.EventID)
	if err != nil {
		t.Fatalf("list teams failed: %v", err)
	}
	if len(teams) != 4 {
		t.Fatalf("expected 4 teams, got %d", len(teams))
	}
	for i, team := range teams {
		if team.TeamID != int64(i) {
			t.Fatalf("expected team id %d at position %d, got %d", i, i, team.TeamID)
		}
	}
}

func TestConcurrentVotesCountExactlyOnce(t *testing.T) {
	store := NewStore()
	const teamCount = 20
	event := seedOpenEvent(t, store, teamCount)
	ctx := context.Background()
	now := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

	// Every leader votes for the next team, concurrently. Exactly one
	// ballot per voter must survive, so each team ends with one vote.
	var wg sync.WaitGroup
	errCh := make(chan error, teamCount)
	for i := 0; i < teamCount; i++ {
		wg.Add(1)
		go func(voter int) {
			defer wg.Done()
			target := int64((voter + 1) % teamCount)
			if _, err := store.RecordVote(ctx, event.EventID, target, fmt.Sprintf("leader-%d", voter), now); err != nil {
				errCh <- err
			}
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("vote failed: %v", err)
	}

	teams, err := store.ListTeams(ctx, event.EventID)
	if err != nil {
		t.Fatalf("list teams failed: %v", err)
	}
	for _, team := range teams {
		if team.VoteCount != 1 {
			t.Fatalf("team %d expected 1 vote, got %d", team.TeamID, team.VoteCount)
		}
	}
}

func TestConcurrentDuplicateBallotsRejectAllButOne(t *testing.T) {
	store := NewStore()
	event := seedOpenEvent(t, store, 3)
	ctx := context.Background()
	now := time.Date(2026, time.March, 2, 11, 0, 0, 0, time.UTC)

	const attempts = 16
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.RecordVote(ctx, event.EventID, 1, "leader-0", now)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	accepted := 0
	for err := range results {
		switch {
		case err == nil:
			accepted++
		case errors.Is(err, domainerrors.ErrAlreadyVoted):
		default:
			t.Fatalf("unexpected vote error: %v", err)
		}
	}
	if accepted != 1 {
		t.Fatalf("expected exactly one accepted ballot, got %d", accepted)
	}

	team, err := store.GetTeam(ctx, event.EventID, 1)
	if err != nil {
		t.Fatalf("get team failed: %v", err)
	}
	if team.VoteCount != 1 {
		t.Fatalf("expected vote count 1, got %d", team.VoteCount)
	}
}

func TestListTeamsReturnsCopies(t *testing.T) {
	store := NewStore()
	event := seedOpenEvent(t, store, 2)
	ctx := context.Background()

	teams, err := store.ListTeams(ctx, event.EventID)
	if err != nil {
		t.Fatalf("list teams failed: %v", err)
	}
	teams[0].VoteCount = 99
	teams[0].Members[0] = "intruder"

	fresh, err := store.GetTeam(ctx, event.EventID, 0)
	if err != nil {
		t.Fatalf("get team failed: %v", err)
	}
	if fresh.VoteCount != 0 {
		t.Fatalf("stored vote count mutated through returned slice: %d", fresh.VoteCount)
	}
	if fresh.Members[0] != "leader-0" {
		t.Fatalf("stored members mutated through returned slice: %v", fresh.Members)
	}
}
