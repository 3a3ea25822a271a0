package httpserver

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	eventlifecycle "eventx/contexts/competition/event-lifecycle-service"
	escrowledger "eventx/contexts/finance-core/escrow-ledger"
	accesscontrol "eventx/contexts/identity-access/access-control-service"
	"eventx/internal/platform/metrics"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	access := accesscontrol.NewInMemoryModule(nil)
	if err := accesscontrol.SeedAdministrator(context.Background(), access.Store, access.Store, access.Store, "admin-1"); err != nil {
		t.Fatalf("seed administrator failed: %v", err)
	}
	ledger := escrowledger.NewInMemoryModule(nil)
	competition := eventlifecycle.NewInMemoryModule(access.Checks, ledger.Funds, nil)
	return New(competition, access, ledger, metrics.New("eventx_test"), nil, ":0")
}

func TestCreateEventRequiresIdentityHeader(t *testing.T) {
	server := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/competition/v1/events", bytes.NewReader([]byte(`{"name":"cup"}`)))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreateEventRejectsNonOrganizer(t *testing.T) {
	server := newTestServer(t)
	body := []byte(`{"name":"cup","pool_amount":10,"first_percent":60,"second_percent":30,"third_percent":10,"max_team_size":3,"max_teams":5,"voting_starts_at":"2026-09-01T00:00:00Z","voting_ends_at":"2026-09-02T00:00:00Z","supplied_funds":10}`)
	req := httptest.NewRequest(http.MethodPost, "/api/competition/v1/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "stranger-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreateEventWithShortBalanceIsUnprocessable(t *testing.T) {
	server := newTestServer(t)

	grant := httptest.NewRequest(http.MethodPost, "/api/access/v1/roles/organizer/grant", bytes.NewReader([]byte(`{"user_id":"org-1"}`)))
	grant.Header.Set("Content-Type", "application/json")
	grant.Header.Set("X-User-Id", "admin-1")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, grant)
	if rr.Code != http.StatusOK {
		t.Fatalf("grant failed: %d body=%s", rr.Code, rr.Body.String())
	}

	// Organizer never deposited, so escrowing the pool must fail as a
	// business-rule violation, not an internal error.
	body := []byte(`{"name":"cup","pool_amount":10,"first_percent":60,"second_percent":30,"third_percent":10,"max_team_size":3,"max_teams":5,"voting_starts_at":"2026-09-01T00:00:00Z","voting_ends_at":"2026-09-02T00:00:00Z","supplied_funds":10}`)
	req := httptest.NewRequest(http.MethodPost, "/api/competition/v1/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "org-1")

	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "insufficient_funds") {
		t.Fatalf("expected insufficient_funds code, got %s", rr.Body.String())
	}
}

func TestEventRoutesValidatePathIDs(t *testing.T) {
	server := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/competition/v1/events/not-a-number", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestUnknownEventReturnsNotFound(t *testing.T) {
	server := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/competition/v1/events/7", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestGrantOrganizerRejectsNonAdministrator(t *testing.T) {
	server := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/access/v1/roles/organizer/grant", bytes.NewReader([]byte(`{"user_id":"org-1"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "stranger-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAuditTrailRequiresIdentityHeader(t *testing.T) {
	server := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/access/v1/audit", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestDepositRequiresIdentityHeader(t *testing.T) {
	server := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/ledger/v1/accounts/user-1/deposit", bytes.NewReader([]byte(`{"amount":5}`)))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestDepositRejectsNonPositiveAmount(t *testing.T) {
	server := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/ledger/v1/accounts/user-1/deposit", bytes.NewReader([]byte(`{"amount":-1}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "user-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestMetricsEndpointServesRegistry(t *testing.T) {
	server := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}
