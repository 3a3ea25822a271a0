package unit

import (
	"context"
	"errors"
	"testing"

	competitionerrors "eventx/contexts/competition/event-lifecycle-service/domain/errors"
	competitionhttp "eventx/contexts/competition/event-lifecycle-service/transport/http"
	ledgererrors "eventx/contexts/finance-core/escrow-ledger/domain/errors"
)

func TestFullCompetitionFlow(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	event := w.createEvent(t, "org-1", 10)
	if event.EventID != 1 {
		t.Fatalf("expected first event id 1, got %d", event.EventID)
	}
	if w.balance(t, "org-1") != 0 {
		t.Fatalf("expected organizer balance drained into escrow")
	}

	w.publish(t, "org-1", event.EventID)

	alpha := w.registerTeam(t, "p1", event.EventID, "alpha")
	bravo := w.registerTeam(t, "p2", event.EventID, "bravo")
	charlie := w.registerTeam(t, "p3", event.EventID, "charlie")
	if alpha.TeamID != 0 || bravo.TeamID != 1 || charlie.TeamID != 2 {
		t.Fatalf("expected dense team ids 0..2, got %d %d %d", alpha.TeamID, bravo.TeamID, charlie.TeamID)
	}

	if _, err := w.competition.Handler.JoinTeamHandler(ctx, "p4", event.EventID, alpha.TeamID); err != nil {
		t.Fatalf("join team failed: %v", err)
	}
	if _, err := w.competition.Handler.JoinTeamHandler(ctx, "p5", event.EventID, bravo.TeamID); err != nil {
		t.Fatalf("join team failed: %v", err)
	}

	w.openVoting(t, "org-1", event.EventID)

	// alpha collects three ballots, bravo two, charlie none.
	w.vote(t, "p2", event.EventID, alpha.TeamID)
	w.vote(t, "p3", event.EventID, alpha.TeamID)
	w.vote(t, "p5", event.EventID, alpha.TeamID)
	w.vote(t, "p1", event.EventID, bravo.TeamID)
	w.vote(t, "p4", event.EventID, bravo.TeamID)

	voted, err := w.competition.Handler.HasVotedHandler(ctx, event.EventID, "p2")
	if err != nil || !voted.HasVoted {
		t.Fatalf("expected p2 recorded as voted, err=%v", err)
	}

	rankings, err := w.competition.Handler.FinalizeResultsHandler(ctx, "org-1", event.EventID, competitionhttp.FinalizeResultsRequest{})
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if len(rankings.Items) != 3 {
		t.Fatalf("expected 3 ranked teams, got %d", len(rankings.Items))
	}
	first := rankings.Items[0]
	if first.TeamID != alpha.TeamID || first.Rank != 1 || first.PrizeAmount != 6 {
		t.Fatalf("unexpected first place: %+v", first)
	}
	if rankings.Items[1].PrizeAmount != 3 || rankings.Items[2].PrizeAmount != 1 {
		t.Fatalf("unexpected prize split: %+v", rankings.Items)
	}

	for _, teamID := range []int64{0, 1, 2} {
		if _, err := w.competition.Handler.DistributePrizeHandler(ctx, "org-1", event.EventID, teamID); err != nil {
			t.Fatalf("distribute team %d failed: %v", teamID, err)
		}
	}

	if got := w.balance(t, "p1"); got != 6 {
		t.Fatalf("expected alpha leader to hold 6, got %d", got)
	}
	if got := w.balance(t, "p2"); got != 3 {
		t.Fatalf("expected bravo leader to hold 3, got %d", got)
	}
	if got := w.balance(t, "p3"); got != 1 {
		t.Fatalf("expected charlie leader to hold 1, got %d", got)
	}

	hold, err := w.ledger.Handler.EscrowHoldHandler(ctx, event.EscrowRef)
	if err != nil {
		t.Fatalf("escrow hold lookup failed: %v", err)
	}
	if hold.Amount != 0 {
		t.Fatalf("expected drained escrow, got %d", hold.Amount)
	}

	_, err = w.competition.Handler.DistributePrizeHandler(ctx, "org-1", event.EventID, alpha.TeamID)
	if !errors.Is(err, competitionerrors.ErrAlreadyDistributed) {
		t.Fatalf("expected ErrAlreadyDistributed on second distribution, got %v", err)
	}
}

func TestAutomaticRankingTieBreaksByRegistrationOrder(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	event := w.createEvent(t, "org-1", 100)
	w.publish(t, "org-1", event.EventID)

	w.registerTeam(t, "p1", event.EventID, "alpha")
	w.registerTeam(t, "p2", event.EventID, "bravo")
	w.openVoting(t, "org-1", event.EventID)

	// one ballot each, so both teams tie.
	w.vote(t, "p1", event.EventID, 1)
	w.vote(t, "p2", event.EventID, 0)

	rankings, err := w.competition.Handler.FinalizeResultsHandler(ctx, "org-1", event.EventID, competitionhttp.FinalizeResultsRequest{})
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if rankings.Items[0].TeamID != 0 {
		t.Fatalf("expected earlier team to win the tie, got team %d first", rankings.Items[0].TeamID)
	}
}

func TestManualRankingOverridesVotes(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	event := w.createEvent(t, "org-1", 10)
	w.publish(t, "org-1", event.EventID)
	w.registerTeam(t, "p1", event.EventID, "alpha")
	w.registerTeam(t, "p2", event.EventID, "bravo")
	w.openVoting(t, "org-1", event.EventID)
	w.vote(t, "p2", event.EventID, 0)

	rankings, err := w.competition.Handler.FinalizeResultsHandler(ctx, "org-1", event.EventID, competitionhttp.FinalizeResultsRequest{
		UseManualRanking: true,
		ManualOrder:      []int64{1, 0},
	})
	if err != nil {
		t.Fatalf("manual finalize failed: %v", err)
	}
	if rankings.Items[0].TeamID != 1 {
		t.Fatalf("expected manual order to place team 1 first, got %d", rankings.Items[0].TeamID)
	}
}

func TestCancelRefundsEscrowToCreator(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	event := w.createEvent(t, "org-1", 25)
	if w.balance(t, "org-1") != 0 {
		t.Fatalf("expected funds held in escrow before cancel")
	}

	cancelled, err := w.competition.Handler.CancelEventHandler(ctx, "org-1", event.EventID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != "cancelled" {
		t.Fatalf("expected cancelled status, got %s", cancelled.Status)
	}
	if got := w.balance(t, "org-1"); got != 25 {
		t.Fatalf("expected full refund of 25, got %d", got)
	}

	_, err = w.competition.Handler.RegisterTeamHandler(ctx, "p1", event.EventID, competitionhttp.RegisterTeamRequest{Name: "late"})
	if !errors.Is(err, competitionerrors.ErrEventCancelled) {
		t.Fatalf("expected ErrEventCancelled after cancel, got %v", err)
	}
}

func TestAdministratorMayCancelForeignEvent(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	event := w.createEvent(t, "org-1", 10)

	if _, err := w.competition.Handler.CancelEventHandler(ctx, "org-2", event.EventID); !errors.Is(err, competitionerrors.ErrUnauthorized) {
		t.Fatalf("expected stranger cancel to be rejected, got %v", err)
	}
	if _, err := w.competition.Handler.CancelEventHandler(ctx, adminID, event.EventID); err != nil {
		t.Fatalf("admin cancel failed: %v", err)
	}
	if got := w.balance(t, "org-1"); got != 10 {
		t.Fatalf("expected refund to creator, got %d", got)
	}
}

func TestZeroPrizeDistributionMovesNoFunds(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	w.grantOrganizer(t, "org-1")
	w.deposit(t, "org-1", 10)
	event, err := w.competition.Handler.CreateEventHandler(ctx, "org-1", competitionhttp.CreateEventRequest{
		Name:           "all-to-first",
		PoolAmount:     10,
		FirstPercent:   100,
		SecondPercent:  0,
		ThirdPercent:   0,
		MaxTeamSize:    3,
		MaxTeams:       10,
		VotingStartsAt: eventWindowStart(),
		VotingEndsAt:   eventWindowEnd(),
		SuppliedFunds:  10,
	})
	if err != nil {
		t.Fatalf("create event failed: %v", err)
	}
	w.publish(t, "org-1", event.EventID)
	w.registerTeam(t, "p1", event.EventID, "alpha")
	w.registerTeam(t, "p2", event.EventID, "bravo")
	w.openVoting(t, "org-1", event.EventID)
	w.vote(t, "p2", event.EventID, 0)

	if _, err := w.competition.Handler.FinalizeResultsHandler(ctx, "org-1", event.EventID, competitionhttp.FinalizeResultsRequest{}); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	second, err := w.competition.Handler.DistributePrizeHandler(ctx, "org-1", event.EventID, 1)
	if err != nil {
		t.Fatalf("zero prize distribution failed: %v", err)
	}
	if second.PrizeAmount != 0 || !second.PrizeDistributed {
		t.Fatalf("expected distributed zero prize, got %+v", second)
	}
	// No transfer happens for a zero prize, so the leader never gets an
	// account row.
	if _, err := w.ledger.Handler.BalanceHandler(ctx, "p2"); !errors.Is(err, ledgererrors.ErrUnknownAccount) {
		t.Fatalf("expected no account for rank 2, got %v", err)
	}

	hold, err := w.ledger.Handler.EscrowHoldHandler(ctx, event.EscrowRef)
	if err != nil {
		t.Fatalf("escrow lookup failed: %v", err)
	}
	if hold.Amount != 10 {
		t.Fatalf("expected untouched escrow, got %d", hold.Amount)
	}
}
