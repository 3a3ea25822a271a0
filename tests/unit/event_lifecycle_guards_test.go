package unit

import (
	"context"
	"errors"
	"testing"

	competitionerrors "eventx/contexts/competition/event-lifecycle-service/domain/errors"
	competitionhttp "eventx/contexts/competition/event-lifecycle-service/transport/http"
	accesserrors "eventx/contexts/identity-access/access-control-service/domain/errors"
)

func TestCreateEventValidation(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	base := competitionhttp.CreateEventRequest{
		Name:           "guarded",
		PoolAmount:     10,
		FirstPercent:   60,
		SecondPercent:  30,
		ThirdPercent:   10,
		MaxTeamSize:    3,
		MaxTeams:       5,
		VotingStartsAt: eventWindowStart(),
		VotingEndsAt:   eventWindowEnd(),
		SuppliedFunds:  10,
	}

	// Caller without the organizer role is rejected before validation. The
	// denial carries the access-control sentinel because the role check
	// itself refused the caller.
	if _, err := w.competition.Handler.CreateEventHandler(ctx, "nobody", base); !errors.Is(err, accesserrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-organizer, got %v", err)
	}

	w.grantOrganizer(t, "org-1")
	w.deposit(t, "org-1", 100)

	badSplit := base
	badSplit.FirstPercent = 50
	if _, err := w.competition.Handler.CreateEventHandler(ctx, "org-1", badSplit); !errors.Is(err, competitionerrors.ErrInvalidSplit) {
		t.Fatalf("expected ErrInvalidSplit, got %v", err)
	}

	badFunds := base
	badFunds.SuppliedFunds = 9
	if _, err := w.competition.Handler.CreateEventHandler(ctx, "org-1", badFunds); !errors.Is(err, competitionerrors.ErrFundsMismatch) {
		t.Fatalf("expected ErrFundsMismatch, got %v", err)
	}

	badWindow := base
	badWindow.VotingEndsAt = badWindow.VotingStartsAt
	if _, err := w.competition.Handler.CreateEventHandler(ctx, "org-1", badWindow); !errors.Is(err, competitionerrors.ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}

	badName := base
	badName.Name = "  "
	if _, err := w.competition.Handler.CreateEventHandler(ctx, "org-1", badName); !errors.Is(err, competitionerrors.ErrInvalidEventInput) {
		t.Fatalf("expected ErrInvalidEventInput, got %v", err)
	}
}

func TestRegistrationRequiresPublish(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	event := w.createEvent(t, "org-1", 10)

	_, err := w.competition.Handler.RegisterTeamHandler(ctx, "p1", event.EventID, competitionhttp.RegisterTeamRequest{Name: "early"})
	if !errors.Is(err, competitionerrors.ErrNotPublished) {
		t.Fatalf("expected ErrNotPublished before publish, got %v", err)
	}

	w.publish(t, "org-1", event.EventID)
	w.registerTeam(t, "p1", event.EventID, "alpha")

	if _, err := w.competition.Handler.PublishEventHandler(ctx, "org-1", event.EventID); !errors.Is(err, competitionerrors.ErrAlreadyPublished) {
		t.Fatalf("expected ErrAlreadyPublished on second publish, got %v", err)
	}
}

func TestSingleTeamMembership(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	event := w.createEvent(t, "org-1", 10)
	w.publish(t, "org-1", event.EventID)
	alpha := w.registerTeam(t, "p1", event.EventID, "alpha")
	w.registerTeam(t, "p2", event.EventID, "bravo")

	// Leading one team blocks both founding and joining another.
	_, err := w.competition.Handler.RegisterTeamHandler(ctx, "p1", event.EventID, competitionhttp.RegisterTeamRequest{Name: "again"})
	if !errors.Is(err, competitionerrors.ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered for second team, got %v", err)
	}
	_, err = w.competition.Handler.JoinTeamHandler(ctx, "p2", event.EventID, alpha.TeamID)
	if !errors.Is(err, competitionerrors.ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered for cross join, got %v", err)
	}
	_, err = w.competition.Handler.JoinTeamHandler(ctx, "p3", event.EventID, 99)
	if !errors.Is(err, competitionerrors.ErrUnknownTeam) {
		t.Fatalf("expected ErrUnknownTeam, got %v", err)
	}
}

func TestTeamCapacity(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	event := w.createEvent(t, "org-1", 10)
	w.publish(t, "org-1", event.EventID)
	alpha := w.registerTeam(t, "p1", event.EventID, "alpha")

	for _, member := range []string{"p2", "p3"} {
		if _, err := w.competition.Handler.JoinTeamHandler(ctx, member, event.EventID, alpha.TeamID); err != nil {
			t.Fatalf("join by %s failed: %v", member, err)
		}
	}
	_, err := w.competition.Handler.JoinTeamHandler(ctx, "p4", event.EventID, alpha.TeamID)
	if !errors.Is(err, competitionerrors.ErrTeamFull) {
		t.Fatalf("expected ErrTeamFull at capacity 3, got %v", err)
	}
}

func TestMaxTeamsLimit(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	w.grantOrganizer(t, "org-1")
	w.deposit(t, "org-1", 10)
	event, err := w.competition.Handler.CreateEventHandler(ctx, "org-1", competitionhttp.CreateEventRequest{
		Name:           "tiny",
		PoolAmount:     10,
		FirstPercent:   60,
		SecondPercent:  30,
		ThirdPercent:   10,
		MaxTeamSize:    3,
		MaxTeams:       2,
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

	_, err = w.competition.Handler.RegisterTeamHandler(ctx, "p3", event.EventID, competitionhttp.RegisterTeamRequest{Name: "charlie"})
	if !errors.Is(err, competitionerrors.ErrMaxTeamsReached) {
		t.Fatalf("expected ErrMaxTeamsReached, got %v", err)
	}
}

func TestVotingGuards(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	event := w.createEvent(t, "org-1", 10)
	w.publish(t, "org-1", event.EventID)
	alpha := w.registerTeam(t, "p1", event.EventID, "alpha")
	bravo := w.registerTeam(t, "p2", event.EventID, "bravo")

	// The toggle is the only gate; before the organizer opens it every
	// ballot bounces regardless of the recorded window.
	_, err := w.competition.Handler.CastVoteHandler(ctx, "p1", event.EventID, competitionhttp.CastVoteRequest{TeamID: bravo.TeamID})
	if !errors.Is(err, competitionerrors.ErrVotingClosed) {
		t.Fatalf("expected ErrVotingClosed before toggle, got %v", err)
	}

	w.openVoting(t, "org-1", event.EventID)

	_, err = w.competition.Handler.CastVoteHandler(ctx, "outsider", event.EventID, competitionhttp.CastVoteRequest{TeamID: alpha.TeamID})
	if !errors.Is(err, competitionerrors.ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered for outsider, got %v", err)
	}
	_, err = w.competition.Handler.CastVoteHandler(ctx, "p1", event.EventID, competitionhttp.CastVoteRequest{TeamID: alpha.TeamID})
	if !errors.Is(err, competitionerrors.ErrSelfVote) {
		t.Fatalf("expected ErrSelfVote, got %v", err)
	}

	w.vote(t, "p1", event.EventID, bravo.TeamID)
	_, err = w.competition.Handler.CastVoteHandler(ctx, "p1", event.EventID, competitionhttp.CastVoteRequest{TeamID: bravo.TeamID})
	if !errors.Is(err, competitionerrors.ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}

	// Closing the toggle shuts voting again.
	if _, err := w.competition.Handler.SetVotingStateHandler(ctx, "org-1", event.EventID, competitionhttp.SetVotingStateRequest{Open: false}); err != nil {
		t.Fatalf("close voting failed: %v", err)
	}
	_, err = w.competition.Handler.CastVoteHandler(ctx, "p2", event.EventID, competitionhttp.CastVoteRequest{TeamID: alpha.TeamID})
	if !errors.Is(err, competitionerrors.ErrVotingClosed) {
		t.Fatalf("expected ErrVotingClosed after toggle off, got %v", err)
	}
}

func TestFinalizeIsTerminal(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	event := w.createEvent(t, "org-1", 10)
	w.publish(t, "org-1", event.EventID)
	w.registerTeam(t, "p1", event.EventID, "alpha")
	w.registerTeam(t, "p2", event.EventID, "bravo")
	w.openVoting(t, "org-1", event.EventID)
	w.vote(t, "p1", event.EventID, 1)

	if _, err := w.competition.Handler.FinalizeResultsHandler(ctx, "org-1", event.EventID, competitionhttp.FinalizeResultsRequest{}); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	_, err := w.competition.Handler.FinalizeResultsHandler(ctx, "org-1", event.EventID, competitionhttp.FinalizeResultsRequest{})
	if !errors.Is(err, competitionerrors.ErrAlreadyFinalized) {
		t.Fatalf("expected ErrAlreadyFinalized on re-finalize, got %v", err)
	}
	_, err = w.competition.Handler.CastVoteHandler(ctx, "p2", event.EventID, competitionhttp.CastVoteRequest{TeamID: 1})
	if !errors.Is(err, competitionerrors.ErrAlreadyFinalized) {
		t.Fatalf("expected ErrAlreadyFinalized for late vote, got %v", err)
	}
	_, err = w.competition.Handler.RegisterTeamHandler(ctx, "p9", event.EventID, competitionhttp.RegisterTeamRequest{Name: "late"})
	if !errors.Is(err, competitionerrors.ErrAlreadyFinalized) {
		t.Fatalf("expected ErrAlreadyFinalized for late team, got %v", err)
	}
}

func TestCancelAfterFinalizeFailsAndRefundsNothing(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	event := w.createEvent(t, "org-1", 10)
	w.publish(t, "org-1", event.EventID)
	w.registerTeam(t, "p1", event.EventID, "alpha")
	w.registerTeam(t, "p2", event.EventID, "bravo")
	w.openVoting(t, "org-1", event.EventID)
	w.vote(t, "p1", event.EventID, 1)

	if _, err := w.competition.Handler.FinalizeResultsHandler(ctx, "org-1", event.EventID, competitionhttp.FinalizeResultsRequest{}); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	_, err := w.competition.Handler.CancelEventHandler(ctx, "org-1", event.EventID)
	if !errors.Is(err, competitionerrors.ErrAlreadyFinalized) {
		t.Fatalf("expected ErrAlreadyFinalized for cancel after finalize, got %v", err)
	}

	// The failed cancel must not touch the escrow or the creator balance.
	if got := w.balance(t, "org-1"); got != 0 {
		t.Fatalf("expected no refund after rejected cancel, got %d", got)
	}
	hold, err := w.ledger.Handler.EscrowHoldHandler(ctx, event.EscrowRef)
	if err != nil {
		t.Fatalf("escrow lookup failed: %v", err)
	}
	if hold.Amount != 10 {
		t.Fatalf("expected escrow hold intact, got %d", hold.Amount)
	}
}

func TestManualRankingMustBePermutation(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	event := w.createEvent(t, "org-1", 10)
	w.publish(t, "org-1", event.EventID)
	w.registerTeam(t, "p1", event.EventID, "alpha")
	w.registerTeam(t, "p2", event.EventID, "bravo")
	w.registerTeam(t, "p3", event.EventID, "charlie")

	cases := []struct {
		name  string
		order []int64
		want  error
	}{
		{"unknown team", []int64{0, 1, 7}, competitionerrors.ErrInvalidTeamID},
		{"repeated team", []int64{0, 1, 1}, competitionerrors.ErrDuplicateTeam},
		{"omitted team", []int64{0, 1}, competitionerrors.ErrDuplicateTeam},
	}
	for _, tc := range cases {
		_, err := w.competition.Handler.FinalizeResultsHandler(ctx, "org-1", event.EventID, competitionhttp.FinalizeResultsRequest{
			UseManualRanking: true,
			ManualOrder:      tc.order,
		})
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	// A rejected manual order leaves the event open for a valid retry.
	if _, err := w.competition.Handler.FinalizeResultsHandler(ctx, "org-1", event.EventID, competitionhttp.FinalizeResultsRequest{
		UseManualRanking: true,
		ManualOrder:      []int64{2, 0, 1},
	}); err != nil {
		t.Fatalf("valid manual finalize failed: %v", err)
	}
}

func TestDistributionRequiresFinalizedResults(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	event := w.createEvent(t, "org-1", 10)
	w.publish(t, "org-1", event.EventID)
	w.registerTeam(t, "p1", event.EventID, "alpha")

	_, err := w.competition.Handler.DistributePrizeHandler(ctx, "org-1", event.EventID, 0)
	if !errors.Is(err, competitionerrors.ErrNotFinalized) {
		t.Fatalf("expected ErrNotFinalized before finalize, got %v", err)
	}

	_, err = w.competition.Handler.DistributePrizeHandler(ctx, "p1", event.EventID, 0)
	if !errors.Is(err, accesserrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-organizer, got %v", err)
	}
}

func TestUnknownEventLookups(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	if _, err := w.competition.Handler.EventDetailsHandler(ctx, 42); !errors.Is(err, competitionerrors.ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}

	event := w.createEvent(t, "org-1", 10)
	if _, err := w.competition.Handler.TeamDetailsHandler(ctx, event.EventID, 3); !errors.Is(err, competitionerrors.ErrUnknownTeam) {
		t.Fatalf("expected ErrUnknownTeam, got %v", err)
	}
}
