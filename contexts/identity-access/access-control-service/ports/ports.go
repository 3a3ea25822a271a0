package ports

import (
	"context"
	"time"

	"eventx/contexts/identity-access/access-control-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for audit entries.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// RoleRepository persists role assignments and the audit trail. Grant and
// revoke write the assignment and its audit entry atomically.
type RoleRepository interface {
	SeedAdministrator(ctx context.Context, userID string, audit entities.AuditEntry) error
	HasRole(ctx context.Context, userID string, role entities.Role) (bool, error)
	GrantRole(ctx context.Context, assignment entities.RoleAssignment, audit entities.AuditEntry) error
	RevokeRole(ctx context.Context, userID string, role entities.Role, audit entities.AuditEntry) error
	ListRoles(ctx context.Context, userID string) ([]entities.Role, error)
	ListAudit(ctx context.Context, limit int) ([]entities.AuditEntry, error)
}
