package bootstrap

import (
	"context"
	"log/slog"
	"strings"
	"time"

	eventlifecycle "eventx/contexts/competition/event-lifecycle-service"
	competitionpg "eventx/contexts/competition/event-lifecycle-service/adapters/postgres"
	workerapp "eventx/contexts/competition/event-lifecycle-service/application/workers"
	escrowledger "eventx/contexts/finance-core/escrow-ledger"
	ledgerpg "eventx/contexts/finance-core/escrow-ledger/adapters/postgres"
	accesscontrol "eventx/contexts/identity-access/access-control-service"
	accesspg "eventx/contexts/identity-access/access-control-service/adapters/postgres"
	"eventx/internal/platform/config"
	"eventx/internal/platform/db"
	"eventx/internal/platform/httpserver"
	"eventx/internal/platform/messaging"
	"eventx/internal/platform/metrics"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  workerapp.OutboxRelay
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	var pg *db.Postgres
	access, ledger, competition, err := buildModules(cfg, logger, &pg)
	if err != nil {
		return nil, err
	}

	server := httpserver.New(
		competition,
		access,
		ledger,
		metrics.New(cfg.ServiceName),
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	var pg *db.Postgres
	_, _, competition, err := buildModules(cfg, logger, &pg)
	if err != nil {
		return nil, err
	}

	relay := workerapp.OutboxRelay{
		Publisher: kafka,
		BatchSize: cfg.OutboxBatchSize,
		Logger:    logger,
	}
	if pg != nil {
		repo := competitionpg.NewRepository(pg.DB, logger)
		relay.Outbox = repo
		relay.Clock = competitionpg.SystemClock{}
	} else {
		relay.Outbox = competition.Store
		relay.Clock = competition.Store
	}

	return &WorkerApp{
		postgres:     pg,
		outboxRelay:  relay,
		pollInterval: cfg.OutboxPollInterval,
		logger:       logger,
	}, nil
}

// buildModules wires the three services over either the in-memory stores or
// postgres, per cfg.Storage. On the postgres path the shared handle is
// returned through pg so callers can close it.
func buildModules(
	cfg config.Config,
	logger *slog.Logger,
	pg **db.Postgres,
) (accesscontrol.Module, escrowledger.Module, eventlifecycle.Module, error) {
	seedCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if cfg.Storage == config.StorageMemory {
		access := accesscontrol.NewInMemoryModule(logger)
		if err := accesscontrol.SeedAdministrator(seedCtx, access.Store, access.Store, access.Store, cfg.AdministratorID); err != nil {
			return accesscontrol.Module{}, escrowledger.Module{}, eventlifecycle.Module{}, err
		}
		ledger := escrowledger.NewInMemoryModule(logger)
		competition := eventlifecycle.NewInMemoryModule(access.Checks, ledger.Funds, logger)
		return access, ledger, competition, nil
	}

	handle, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return accesscontrol.Module{}, escrowledger.Module{}, eventlifecycle.Module{}, err
	}

	models := append(append(competitionpg.Models(), ledgerpg.Models()...), accesspg.Models()...)
	if err := handle.Migrate(models...); err != nil {
		_ = handle.Close()
		return accesscontrol.Module{}, escrowledger.Module{}, eventlifecycle.Module{}, err
	}

	accessRepo := accesspg.NewRepository(handle.DB, logger)
	if err := accesscontrol.SeedAdministrator(seedCtx, accessRepo, accesspg.SystemClock{}, accesspg.UUIDGenerator{}, cfg.AdministratorID); err != nil {
		_ = handle.Close()
		return accesscontrol.Module{}, escrowledger.Module{}, eventlifecycle.Module{}, err
	}
	access := accesscontrol.NewModule(accesscontrol.Dependencies{
		Repository: accessRepo,
		Clock:      accesspg.SystemClock{},
		IDGen:      accesspg.UUIDGenerator{},
		Logger:     logger,
	})

	ledgerRepo := ledgerpg.NewRepository(handle.DB, logger)
	ledger := escrowledger.NewModule(escrowledger.Dependencies{
		Ledger: ledgerRepo,
		Clock:  ledgerpg.SystemClock{},
		IDGen:  ledgerpg.UUIDGenerator{},
		Logger: logger,
	})

	competitionRepo := competitionpg.NewRepository(handle.DB, logger)
	competition := eventlifecycle.NewModule(eventlifecycle.Dependencies{
		Events: competitionRepo,
		Access: access.Checks,
		Escrow: ledger.Funds,
		Outbox: competitionRepo,
		Clock:  competitionpg.SystemClock{},
		IDGen:  competitionpg.UUIDGenerator{},
		Logger: logger,
	})

	*pg = handle
	return access, ledger, competition, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
