package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RoleMutationRequest struct {
	UserID string `json:"user_id"`
}

type RoleAssignmentResponse struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	GrantedBy string    `json:"granted_by"`
	GrantedAt time.Time `json:"granted_at"`
}

type UserRolesResponse struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
}

type AuditEntryResponse struct {
	AuditID   string    `json:"audit_id"`
	ActorID   string    `json:"actor_id"`
	SubjectID string    `json:"subject_id"`
	Action    string    `json:"action"`
	Role      string    `json:"role"`
	At        time.Time `json:"at"`
}

type AuditTrailResponse struct {
	Items []AuditEntryResponse `json:"items"`
}
