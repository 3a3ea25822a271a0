package accesscontrol

import (
	"context"
	"log/slog"

	httpadapter "eventx/contexts/identity-access/access-control-service/adapters/http"
	"eventx/contexts/identity-access/access-control-service/adapters/memory"
	"eventx/contexts/identity-access/access-control-service/application/commands"
	"eventx/contexts/identity-access/access-control-service/application/queries"
	"eventx/contexts/identity-access/access-control-service/domain/entities"
	"eventx/contexts/identity-access/access-control-service/ports"
)

// Module is the access-control composition root exposed to runtime wiring.
// Checks is handed to the lifecycle service as its AccessChecker.
type Module struct {
	Handler httpadapter.Handler
	Checks  queries.CheckUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.RoleRepository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	roles := commands.UseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	checks := queries.CheckUseCase{
		Repository: deps.Repository,
	}
	return Module{
		Handler: httpadapter.Handler{
			Roles:  roles,
			Checks: checks,
			Logger: deps.Logger,
		},
		Checks: checks,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}

// SeedAdministrator installs the fixed administrator identity at system
// initialization.
func SeedAdministrator(ctx context.Context, repo ports.RoleRepository, clock ports.Clock, idGen ports.IDGenerator, adminID string) error {
	auditID, err := idGen.NewID(ctx)
	if err != nil {
		return err
	}
	return repo.SeedAdministrator(ctx, adminID, entities.AuditEntry{
		AuditID:   auditID,
		ActorID:   adminID,
		SubjectID: adminID,
		Action:    entities.AuditActionSeed,
		Role:      entities.RoleAdministrator,
		At:        clock.Now(),
	})
}
