package queries

import (
	"context"
	"strings"

	"eventx/contexts/identity-access/access-control-service/domain/entities"
	domainerrors "eventx/contexts/identity-access/access-control-service/domain/errors"
	"eventx/contexts/identity-access/access-control-service/ports"
)

// CheckUseCase is the capability predicate consulted by every mutating entry
// point in the engine. It satisfies the lifecycle service's AccessChecker
// port.
type CheckUseCase struct {
	Repository ports.RoleRepository
}

func (q CheckUseCase) RequireOrganizer(ctx context.Context, userID string) error {
	return q.require(ctx, userID, entities.RoleOrganizer)
}

func (q CheckUseCase) RequireAdministrator(ctx context.Context, userID string) error {
	return q.require(ctx, userID, entities.RoleAdministrator)
}

func (q CheckUseCase) IsAdministrator(ctx context.Context, userID string) (bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false, nil
	}
	return q.Repository.HasRole(ctx, userID, entities.RoleAdministrator)
}

func (q CheckUseCase) ListRoles(ctx context.Context, userID string) ([]entities.Role, error) {
	return q.Repository.ListRoles(ctx, strings.TrimSpace(userID))
}

func (q CheckUseCase) ListAuditTrail(ctx context.Context, limit int) ([]entities.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	return q.Repository.ListAudit(ctx, limit)
}

func (q CheckUseCase) require(ctx context.Context, userID string, role entities.Role) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domainerrors.ErrUnauthorized
	}
	ok, err := q.Repository.HasRole(ctx, userID, role)
	if err != nil {
		return err
	}
	if !ok {
		return domainerrors.ErrUnauthorized
	}
	return nil
}
