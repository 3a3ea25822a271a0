package httpadapter

import (
	"context"
	"log/slog"

	"eventx/contexts/identity-access/access-control-service/application/commands"
	"eventx/contexts/identity-access/access-control-service/application/queries"
	httptransport "eventx/contexts/identity-access/access-control-service/transport/http"
)

type Handler struct {
	Roles  commands.UseCase
	Checks queries.CheckUseCase
	Logger *slog.Logger
}

func (h Handler) GrantOrganizerHandler(ctx context.Context, actorID string, req httptransport.RoleMutationRequest) (httptransport.RoleAssignmentResponse, error) {
	assignment, err := h.Roles.GrantOrganizer(ctx, commands.GrantOrganizerCommand{
		ActorID: actorID,
		UserID:  req.UserID,
	})
	if err != nil {
		return httptransport.RoleAssignmentResponse{}, err
	}
	return httptransport.RoleAssignmentResponse{
		UserID:    assignment.UserID,
		Role:      string(assignment.Role),
		GrantedBy: assignment.GrantedBy,
		GrantedAt: assignment.GrantedAt,
	}, nil
}

func (h Handler) RevokeOrganizerHandler(ctx context.Context, actorID string, req httptransport.RoleMutationRequest) error {
	return h.Roles.RevokeOrganizer(ctx, commands.RevokeOrganizerCommand{
		ActorID: actorID,
		UserID:  req.UserID,
	})
}

func (h Handler) UserRolesHandler(ctx context.Context, userID string) (httptransport.UserRolesResponse, error) {
	roles, err := h.Checks.ListRoles(ctx, userID)
	if err != nil {
		return httptransport.UserRolesResponse{}, err
	}
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	return httptransport.UserRolesResponse{
		UserID: userID,
		Roles:  names,
	}, nil
}

func (h Handler) AuditTrailHandler(ctx context.Context, actorID string, limit int) (httptransport.AuditTrailResponse, error) {
	if err := h.Checks.RequireAdministrator(ctx, actorID); err != nil {
		return httptransport.AuditTrailResponse{}, err
	}
	entries, err := h.Checks.ListAuditTrail(ctx, limit)
	if err != nil {
		return httptransport.AuditTrailResponse{}, err
	}
	items := make([]httptransport.AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, httptransport.AuditEntryResponse{
			AuditID:   entry.AuditID,
			ActorID:   entry.ActorID,
			SubjectID: entry.SubjectID,
			Action:    entry.Action,
			Role:      string(entry.Role),
			At:        entry.At,
		})
	}
	return httptransport.AuditTrailResponse{Items: items}, nil
}
