package memory

import (
	"context"
	"sync"
	"time"

	"eventx/contexts/identity-access/access-control-service/domain/entities"
	domainerrors "eventx/contexts/identity-access/access-control-service/domain/errors"

	"github.com/google/uuid"
)

type Store struct {
	mu    sync.RWMutex
	roles map[string]map[entities.Role]entities.RoleAssignment
	audit []entities.AuditEntry
}

func NewStore() *Store {
	return &Store{
		roles: make(map[string]map[entities.Role]entities.RoleAssignment),
	}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) SeedAdministrator(_ context.Context, userID string, audit entities.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roles[userID][entities.RoleAdministrator]; ok {
		return nil
	}
	s.assign(entities.RoleAssignment{
		UserID:    userID,
		Role:      entities.RoleAdministrator,
		GrantedBy: userID,
		GrantedAt: audit.At,
	})
	s.audit = append(s.audit, audit)
	return nil
}

func (s *Store) HasRole(_ context.Context, userID string, role entities.Role) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.roles[userID][role]
	return ok, nil
}

func (s *Store) GrantRole(_ context.Context, assignment entities.RoleAssignment, audit entities.AuditEntry) error {
	if assignment.Role == entities.RoleAdministrator {
		return domainerrors.ErrAdministratorFixed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roles[assignment.UserID][assignment.Role]; ok {
		return domainerrors.ErrRoleAlreadyGranted
	}
	s.assign(assignment)
	s.audit = append(s.audit, audit)
	return nil
}

func (s *Store) RevokeRole(_ context.Context, userID string, role entities.Role, audit entities.AuditEntry) error {
	if role == entities.RoleAdministrator {
		return domainerrors.ErrAdministratorFixed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roles[userID][role]; !ok {
		return domainerrors.ErrRoleNotGranted
	}
	delete(s.roles[userID], role)
	s.audit = append(s.audit, audit)
	return nil
}

func (s *Store) ListRoles(_ context.Context, userID string) ([]entities.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	assignments := s.roles[userID]
	roles := make([]entities.Role, 0, len(assignments))
	// Stable output: administrator first, then organizer.
	if _, ok := assignments[entities.RoleAdministrator]; ok {
		roles = append(roles, entities.RoleAdministrator)
	}
	if _, ok := assignments[entities.RoleOrganizer]; ok {
		roles = append(roles, entities.RoleOrganizer)
	}
	return roles, nil
}

func (s *Store) ListAudit(_ context.Context, limit int) ([]entities.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.audit) {
		limit = len(s.audit)
	}
	entries := make([]entities.AuditEntry, limit)
	copy(entries, s.audit[len(s.audit)-limit:])
	return entries, nil
}

func (s *Store) assign(assignment entities.RoleAssignment) {
	if s.roles[assignment.UserID] == nil {
		s.roles[assignment.UserID] = make(map[entities.Role]entities.RoleAssignment)
	}
	s.roles[assignment.UserID][assignment.Role] = assignment
}
