package entities

import (
	"errors"
	"testing"

	domainerrors "eventx/contexts/competition/event-lifecycle-service/domain/errors"
)

func sampleTeams(votes ...int) []Team {
	teams := make([]Team, len(votes))
	for i, count := range votes {
		teams[i] = Team{TeamID: int64(i), VoteCount: count}
	}
	return teams
}

func TestRankOrderAutomaticSortsByVotesDescending(t *testing.T) {
	order, err := RankOrder(sampleTeams(2, 5, 3), RankingInput{Mode: RankingAutomatic})
	if err != nil {
		t.Fatalf("automatic ranking failed: %v", err)
	}
	want := []int64{1, 2, 0}
	for i, teamID := range want {
		if order[i] != teamID {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}

func TestRankOrderAutomaticBreaksTiesByTeamID(t *testing.T) {
	order, err := RankOrder(sampleTeams(4, 4, 4), RankingInput{Mode: RankingAutomatic})
	if err != nil {
		t.Fatalf("automatic ranking failed: %v", err)
	}
	for i := range order {
		if order[i] != int64(i) {
			t.Fatalf("expected tied teams in registration order, got %v", order)
		}
	}
}

func TestRankOrderAutomaticHandlesEmptyField(t *testing.T) {
	order, err := RankOrder(nil, RankingInput{Mode: RankingAutomatic})
	if err != nil {
		t.Fatalf("automatic ranking failed: %v", err)
	}
	if len(order) != 0 {
		t.Fatalf("expected empty order, got %v", order)
	}
}

func TestRankOrderManualAcceptsExactPermutation(t *testing.T) {
	order, err := RankOrder(sampleTeams(0, 0, 0), RankingInput{Mode: RankingManual, ManualOrder: []int64{2, 0, 1}})
	if err != nil {
		t.Fatalf("manual ranking failed: %v", err)
	}
	want := []int64{2, 0, 1}
	for i, teamID := range want {
		if order[i] != teamID {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}

func TestRankOrderManualRejectsBrokenPermutations(t *testing.T) {
	teams := sampleTeams(0, 0, 0)

	if _, err := RankOrder(teams, RankingInput{Mode: RankingManual, ManualOrder: []int64{0, 1, 3}}); !errors.Is(err, domainerrors.ErrInvalidTeamID) {
		t.Fatalf("expected ErrInvalidTeamID for out-of-range id, got %v", err)
	}
	if _, err := RankOrder(teams, RankingInput{Mode: RankingManual, ManualOrder: []int64{0, 1, 1}}); !errors.Is(err, domainerrors.ErrDuplicateTeam) {
		t.Fatalf("expected ErrDuplicateTeam for repeated id, got %v", err)
	}
	if _, err := RankOrder(teams, RankingInput{Mode: RankingManual, ManualOrder: []int64{0, 1}}); !errors.Is(err, domainerrors.ErrDuplicateTeam) {
		t.Fatalf("expected ErrDuplicateTeam for omitted id, got %v", err)
	}
}

func TestRankOrderRejectsUnknownMode(t *testing.T) {
	if _, err := RankOrder(sampleTeams(1), RankingInput{Mode: RankingMode("hybrid")}); !errors.Is(err, domainerrors.ErrInvalidRankingMode) {
		t.Fatalf("expected ErrInvalidRankingMode, got %v", err)
	}
}
