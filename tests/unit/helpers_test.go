package unit

import (
	"context"
	"testing"
	"time"

	eventlifecycle "eventx/contexts/competition/event-lifecycle-service"
	competitionhttp "eventx/contexts/competition/event-lifecycle-service/transport/http"
	escrowledger "eventx/contexts/finance-core/escrow-ledger"
	ledgerhttp "eventx/contexts/finance-core/escrow-ledger/transport/http"
	accesscontrol "eventx/contexts/identity-access/access-control-service"
	accesshttp "eventx/contexts/identity-access/access-control-service/transport/http"
)

const adminID = "admin-1"

// world wires the three services together over their in-memory stores the
// same way bootstrap does for the memory storage mode.
type world struct {
	access      accesscontrol.Module
	ledger      escrowledger.Module
	competition eventlifecycle.Module
}

func newWorld(t *testing.T) world {
	t.Helper()
	access := accesscontrol.NewInMemoryModule(nil)
	if err := accesscontrol.SeedAdministrator(context.Background(), access.Store, access.Store, access.Store, adminID); err != nil {
		t.Fatalf("seed administrator failed: %v", err)
	}
	ledger := escrowledger.NewInMemoryModule(nil)
	competition := eventlifecycle.NewInMemoryModule(access.Checks, ledger.Funds, nil)
	return world{access: access, ledger: ledger, competition: competition}
}

func (w world) grantOrganizer(t *testing.T, userID string) {
	t.Helper()
	_, err := w.access.Handler.GrantOrganizerHandler(context.Background(), adminID, accesshttp.RoleMutationRequest{UserID: userID})
	if err != nil {
		t.Fatalf("grant organizer to %s failed: %v", userID, err)
	}
}

func (w world) deposit(t *testing.T, accountID string, amount int64) {
	t.Helper()
	_, err := w.ledger.Handler.DepositHandler(context.Background(), accountID, ledgerhttp.DepositRequest{Amount: amount})
	if err != nil {
		t.Fatalf("deposit %d to %s failed: %v", amount, accountID, err)
	}
}

func (w world) balance(t *testing.T, accountID string) int64 {
	t.Helper()
	resp, err := w.ledger.Handler.BalanceHandler(context.Background(), accountID)
	if err != nil {
		t.Fatalf("balance of %s failed: %v", accountID, err)
	}
	return resp.Balance
}

// createEvent provisions a funded organizer and returns the created event.
// Pool split is 60/30/10 unless the test builds its own request.
func (w world) createEvent(t *testing.T, organizerID string, pool int64) competitionhttp.EventResponse {
	t.Helper()
	w.grantOrganizer(t, organizerID)
	w.deposit(t, organizerID, pool)
	resp, err := w.competition.Handler.CreateEventHandler(context.Background(), organizerID, competitionhttp.CreateEventRequest{
		Name:           "spring-cup",
		Description:    "seasonal competition",
		PoolAmount:     pool,
		FirstPercent:   60,
		SecondPercent:  30,
		ThirdPercent:   10,
		MaxTeamSize:    3,
		MaxTeams:       10,
		VotingStartsAt: time.Now().UTC(),
		VotingEndsAt:   time.Now().UTC().Add(2 * time.Hour),
		SuppliedFunds:  pool,
	})
	if err != nil {
		t.Fatalf("create event failed: %v", err)
	}
	return resp
}

func (w world) publish(t *testing.T, organizerID string, eventID int64) {
	t.Helper()
	if _, err := w.competition.Handler.PublishEventHandler(context.Background(), organizerID, eventID); err != nil {
		t.Fatalf("publish event %d failed: %v", eventID, err)
	}
}

func (w world) registerTeam(t *testing.T, leaderID string, eventID int64, name string) competitionhttp.TeamResponse {
	t.Helper()
	resp, err := w.competition.Handler.RegisterTeamHandler(context.Background(), leaderID, eventID, competitionhttp.RegisterTeamRequest{Name: name})
	if err != nil {
		t.Fatalf("register team %s failed: %v", name, err)
	}
	return resp
}

func (w world) openVoting(t *testing.T, organizerID string, eventID int64) {
	t.Helper()
	_, err := w.competition.Handler.SetVotingStateHandler(context.Background(), organizerID, eventID, competitionhttp.SetVotingStateRequest{Open: true})
	if err != nil {
		t.Fatalf("open voting failed: %v", err)
	}
}

func eventWindowStart() time.Time {
	return time.Now().UTC()
}

func eventWindowEnd() time.Time {
	return time.Now().UTC().Add(2 * time.Hour)
}

func (w world) vote(t *testing.T, voterID string, eventID int64, teamID int64) {
	t.Helper()
	_, err := w.competition.Handler.CastVoteHandler(context.Background(), voterID, eventID, competitionhttp.CastVoteRequest{TeamID: teamID})
	if err != nil {
		t.Fatalf("vote by %s for team %d failed: %v", voterID, teamID, err)
	}
}
