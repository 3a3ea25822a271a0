package eventlifecycle

import (
	"log/slog"

	httpadapter "eventx/contexts/competition/event-lifecycle-service/adapters/http"
	"eventx/contexts/competition/event-lifecycle-service/adapters/memory"
	"eventx/contexts/competition/event-lifecycle-service/application/commands"
	"eventx/contexts/competition/event-lifecycle-service/application/queries"
	"eventx/contexts/competition/event-lifecycle-service/ports"
)

// Module is the event-lifecycle composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Events ports.EventRepository
	Access ports.AccessChecker
	Escrow ports.EscrowService
	Outbox ports.OutboxRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	lifecycle := commands.UseCase{
		Events: deps.Events,
		Access: deps.Access,
		Escrow: deps.Escrow,
		Outbox: deps.Outbox,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	reads := queries.QueryUseCase{
		Events: deps.Events,
	}
	return Module{
		Handler: httpadapter.Handler{
			Lifecycle: lifecycle,
			Queries:   reads,
			Logger:    deps.Logger,
		},
	}
}

// NewInMemoryModule wires the service over the in-memory store, used by
// tests and local runs. Access and escrow collaborators still come from the
// caller so scenarios control roles and balances.
func NewInMemoryModule(access ports.AccessChecker, escrow ports.EscrowService, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Events: store,
		Access: access,
		Escrow: escrow,
		Outbox: store,
		Clock:  store,
		IDGen:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
