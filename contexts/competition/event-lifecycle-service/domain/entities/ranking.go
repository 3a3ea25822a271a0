package entities

import (
	"sort"

	domainerrors "eventx/contexts/competition/event-lifecycle-service/domain/errors"
)

type RankingMode string

const (
	RankingAutomatic RankingMode = "automatic"
	RankingManual    RankingMode = "manual"
)

// RankingInput is the tagged variant dispatched once at finalization.
// ManualOrder is consulted only when Mode is RankingManual.
type RankingInput struct {
	Mode        RankingMode
	ManualOrder []int64
}

// RankOrder produces the team ids in rank order (index 0 = rank 1).
//
// Automatic mode sorts by vote count descending and breaks ties by ascending
// team id, so the first-registered team wins a tie and the order is total
// and deterministic. Manual mode accepts only an exact permutation of the
// existing team ids.
func RankOrder(teams []Team, input RankingInput) ([]int64, error) {
	switch input.Mode {
	case RankingManual:
		return validateManualOrder(teams, input.ManualOrder)
	case RankingAutomatic:
		ordered := make([]Team, len(teams))
		copy(ordered, teams)
		sort.SliceStable(ordered, func(i, j int) bool {
			if ordered[i].VoteCount != ordered[j].VoteCount {
				return ordered[i].VoteCount > ordered[j].VoteCount
			}
			return ordered[i].TeamID < ordered[j].TeamID
		})
		order := make([]int64, len(ordered))
		for i, team := range ordered {
			order[i] = team.TeamID
		}
		return order, nil
	default:
		return nil, domainerrors.ErrInvalidRankingMode
	}
}

func validateManualOrder(teams []Team, order []int64) ([]int64, error) {
	seen := make(map[int64]bool, len(order))
	for _, teamID := range order {
		if teamID < 0 || teamID >= int64(len(teams)) {
			return nil, domainerrors.ErrInvalidTeamID
		}
		if seen[teamID] {
			return nil, domainerrors.ErrDuplicateTeam
		}
		seen[teamID] = true
	}
	// Omission of any existing team id invalidates the permutation.
	if len(seen) != len(teams) {
		return nil, domainerrors.ErrDuplicateTeam
	}
	out := make([]int64, len(order))
	copy(out, order)
	return out, nil
}
