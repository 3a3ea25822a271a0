package entities

import "time"

type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleOrganizer     Role = "organizer"
)

type RoleAssignment struct {
	UserID    string
	Role      Role
	GrantedBy string
	GrantedAt time.Time
}

// AuditEntry records every administrative role mutation.
type AuditEntry struct {
	AuditID   string
	ActorID   string
	SubjectID string
	Action    string
	Role      Role
	At        time.Time
}

const (
	AuditActionGrant  = "grant"
	AuditActionRevoke = "revoke"
	AuditActionSeed   = "seed"
)
