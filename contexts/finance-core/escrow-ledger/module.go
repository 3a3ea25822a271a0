package escrowledger

import (
	"log/slog"

	httpadapter "eventx/contexts/finance-core/escrow-ledger/adapters/http"
	"eventx/contexts/finance-core/escrow-ledger/adapters/memory"
	"eventx/contexts/finance-core/escrow-ledger/application/commands"
	"eventx/contexts/finance-core/escrow-ledger/application/queries"
	"eventx/contexts/finance-core/escrow-ledger/ports"
)

// Module is the escrow-ledger composition root. Funds is handed to the
// lifecycle service as its EscrowService.
type Module struct {
	Handler httpadapter.Handler
	Funds   commands.UseCase
	Store   *memory.Store
}

type Dependencies struct {
	Ledger ports.LedgerRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	funds := commands.UseCase{
		Ledger: deps.Ledger,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Ledger:  funds,
			Queries: queries.QueryUseCase{Ledger: deps.Ledger},
			Logger:  deps.Logger,
		},
		Funds: funds,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Ledger: store,
		Clock:  store,
		IDGen:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
