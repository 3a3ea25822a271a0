package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	eventlifecycle "eventx/contexts/competition/event-lifecycle-service"
	escrowledger "eventx/contexts/finance-core/escrow-ledger"
	accesscontrol "eventx/contexts/identity-access/access-control-service"
	"eventx/internal/platform/metrics"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "eventx/internal/platform/httpserver/docs"
)

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	addr        string
	metrics     *metrics.Metrics
	competition eventlifecycle.Module
	access      accesscontrol.Module
	ledger      escrowledger.Module
}

func New(
	competition eventlifecycle.Module,
	access accesscontrol.Module,
	ledger escrowledger.Module,
	m *metrics.Metrics,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		addr:        addr,
		metrics:     m,
		competition: competition,
		access:      access,
		ledger:      ledger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routed mux for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics.Handler())
	}

	s.route("POST /api/competition/v1/events", s.handleCreateEvent)
	s.route("GET /api/competition/v1/events", s.handleListEvents)
	s.route("GET /api/competition/v1/events/{event_id}", s.handleEventDetails)
	s.route("POST /api/competition/v1/events/{event_id}/publish", s.handlePublishEvent)
	s.route("POST /api/competition/v1/events/{event_id}/cancel", s.handleCancelEvent)
	s.route("POST /api/competition/v1/events/{event_id}/teams", s.handleRegisterTeam)
	s.route("GET /api/competition/v1/events/{event_id}/teams/{team_id}", s.handleTeamDetails)
	s.route("GET /api/competition/v1/events/{event_id}/teams/{team_id}/members", s.handleTeamMembers)
	s.route("POST /api/competition/v1/events/{event_id}/teams/{team_id}/join", s.handleJoinTeam)
	s.route("POST /api/competition/v1/events/{event_id}/voting", s.handleSetVotingState)
	s.route("POST /api/competition/v1/events/{event_id}/votes", s.handleCastVote)
	s.route("POST /api/competition/v1/events/{event_id}/finalize", s.handleFinalizeResults)
	s.route("POST /api/competition/v1/events/{event_id}/teams/{team_id}/distribute", s.handleDistributePrize)
	s.route("GET /api/competition/v1/events/{event_id}/rankings", s.handleEventRankings)
	s.route("GET /api/competition/v1/events/{event_id}/participants/{participant_id}/voted", s.handleHasVoted)

	s.route("POST /api/access/v1/roles/organizer/grant", s.handleGrantOrganizer)
	s.route("POST /api/access/v1/roles/organizer/revoke", s.handleRevokeOrganizer)
	s.route("GET /api/access/v1/users/{user_id}/roles", s.handleUserRoles)
	s.route("GET /api/access/v1/audit", s.handleAuditTrail)

	s.route("POST /api/ledger/v1/accounts/{account_id}/deposit", s.handleDeposit)
	s.route("GET /api/ledger/v1/accounts/{account_id}/balance", s.handleBalance)
	s.route("GET /api/ledger/v1/escrows/{escrow_ref}", s.handleEscrowHold)
	s.route("GET /api/ledger/v1/escrows/{escrow_ref}/transfers", s.handleTransfers)
}

// route registers a handler behind the request metrics wrapper. The pattern
// (not the concrete path) becomes the route label so cardinality stays flat.
func (s *Server) route(pattern string, handler http.HandlerFunc) {
	if s.metrics == nil {
		s.mux.HandleFunc(pattern, handler)
		return
	}
	method, _, _ := strings.Cut(pattern, " ")
	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		handler(recorder, r)
		s.metrics.ObserveRequest(method, pattern, recorder.status, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func identityHeader(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-Id"))
}

func pathID(r *http.Request, name string) (int64, bool) {
	value, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || value < 0 {
		return 0, false
	}
	return value, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
