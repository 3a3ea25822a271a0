package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "eventx/contexts/identity-access/access-control-service/application"
	"eventx/contexts/identity-access/access-control-service/domain/entities"
	domainerrors "eventx/contexts/identity-access/access-control-service/domain/errors"
	"eventx/contexts/identity-access/access-control-service/ports"
)

const moduleTag = "identity-access/access-control-service"

type GrantOrganizerCommand struct {
	ActorID string
	UserID  string
}

type RevokeOrganizerCommand struct {
	ActorID string
	UserID  string
}

// UseCase handles the audited administrative role mutations. The
// administrator role itself is fixed at system initialization and can be
// neither granted nor revoked here.
type UseCase struct {
	Repository ports.RoleRepository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc UseCase) GrantOrganizer(ctx context.Context, cmd GrantOrganizerCommand) (entities.RoleAssignment, error) {
	logger := application.ResolveLogger(uc.Logger)
	actorID := strings.TrimSpace(cmd.ActorID)
	userID := strings.TrimSpace(cmd.UserID)
	if userID == "" {
		return entities.RoleAssignment{}, domainerrors.ErrInvalidUserID
	}
	if err := uc.requireAdministrator(ctx, actorID); err != nil {
		logger.Warn("organizer grant unauthorized",
			"event", "access_grant_unauthorized",
			"module", moduleTag,
			"layer", "application",
			"actor_id", actorID,
			"user_id", userID,
		)
		return entities.RoleAssignment{}, err
	}

	now := uc.now()
	auditID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.RoleAssignment{}, err
	}
	assignment := entities.RoleAssignment{
		UserID:    userID,
		Role:      entities.RoleOrganizer,
		GrantedBy: actorID,
		GrantedAt: now,
	}
	err = uc.Repository.GrantRole(ctx, assignment, entities.AuditEntry{
		AuditID:   auditID,
		ActorID:   actorID,
		SubjectID: userID,
		Action:    entities.AuditActionGrant,
		Role:      entities.RoleOrganizer,
		At:        now,
	})
	if err != nil {
		logger.Warn("organizer grant rejected",
			"event", "access_grant_rejected",
			"module", moduleTag,
			"layer", "application",
			"actor_id", actorID,
			"user_id", userID,
			"error", err.Error(),
		)
		return entities.RoleAssignment{}, err
	}

	logger.Info("organizer granted",
		"event", "access_organizer_granted",
		"module", moduleTag,
		"layer", "application",
		"actor_id", actorID,
		"user_id", userID,
	)
	return assignment, nil
}

func (uc UseCase) RevokeOrganizer(ctx context.Context, cmd RevokeOrganizerCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	actorID := strings.TrimSpace(cmd.ActorID)
	userID := strings.TrimSpace(cmd.UserID)
	if userID == "" {
		return domainerrors.ErrInvalidUserID
	}
	if err := uc.requireAdministrator(ctx, actorID); err != nil {
		logger.Warn("organizer revoke unauthorized",
			"event", "access_revoke_unauthorized",
			"module", moduleTag,
			"layer", "application",
			"actor_id", actorID,
			"user_id", userID,
		)
		return err
	}

	now := uc.now()
	auditID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	err = uc.Repository.RevokeRole(ctx, userID, entities.RoleOrganizer, entities.AuditEntry{
		AuditID:   auditID,
		ActorID:   actorID,
		SubjectID: userID,
		Action:    entities.AuditActionRevoke,
		Role:      entities.RoleOrganizer,
		At:        now,
	})
	if err != nil {
		logger.Warn("organizer revoke rejected",
			"event", "access_revoke_rejected",
			"module", moduleTag,
			"layer", "application",
			"actor_id", actorID,
			"user_id", userID,
			"error", err.Error(),
		)
		return err
	}

	logger.Info("organizer revoked",
		"event", "access_organizer_revoked",
		"module", moduleTag,
		"layer", "application",
		"actor_id", actorID,
		"user_id", userID,
	)
	return nil
}

func (uc UseCase) requireAdministrator(ctx context.Context, actorID string) error {
	if actorID == "" {
		return domainerrors.ErrUnauthorized
	}
	isAdmin, err := uc.Repository.HasRole(ctx, actorID, entities.RoleAdministrator)
	if err != nil {
		return err
	}
	if !isAdmin {
		return domainerrors.ErrUnauthorized
	}
	return nil
}

func (uc UseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
