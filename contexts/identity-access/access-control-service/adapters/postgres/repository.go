package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"eventx/contexts/identity-access/access-control-service/domain/entities"
	domainerrors "eventx/contexts/identity-access/access-control-service/domain/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (r *Repository) SeedAdministrator(ctx context.Context, userID string, audit entities.AuditEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&roleModel{}).
			Where("user_id = ? AND role = ?", userID, string(entities.RoleAdministrator)).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		if err := tx.Create(&roleModel{
			UserID:    userID,
			Role:      string(entities.RoleAdministrator),
			GrantedBy: userID,
			GrantedAt: audit.At,
		}).Error; err != nil {
			return err
		}
		return tx.Create(auditModelFromEntity(audit)).Error
	})
}

func (r *Repository) HasRole(ctx context.Context, userID string, role entities.Role) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&roleModel{}).
		Where("user_id = ? AND role = ?", userID, string(role)).
		Count(&count).Error
	if err != nil {
		return false, r.logError("access_repo_has_role_failed", err, "user_id", userID)
	}
	return count > 0, nil
}

func (r *Repository) GrantRole(ctx context.Context, assignment entities.RoleAssignment, audit entities.AuditEntry) error {
	if assignment.Role == entities.RoleAdministrator {
		return domainerrors.ErrAdministratorFixed
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Create(&roleModel{
			UserID:    assignment.UserID,
			Role:      string(assignment.Role),
			GrantedBy: assignment.GrantedBy,
			GrantedAt: assignment.GrantedAt,
		}).Error
		if err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrRoleAlreadyGranted
			}
			return r.logError("access_repo_grant_failed", err, "user_id", assignment.UserID)
		}
		return tx.Create(auditModelFromEntity(audit)).Error
	})
}

func (r *Repository) RevokeRole(ctx context.Context, userID string, role entities.Role, audit entities.AuditEntry) error {
	if role == entities.RoleAdministrator {
		return domainerrors.ErrAdministratorFixed
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND role = ?", userID, string(role)).Delete(&roleModel{})
		if result.Error != nil {
			return r.logError("access_repo_revoke_failed", result.Error, "user_id", userID)
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrRoleNotGranted
		}
		return tx.Create(auditModelFromEntity(audit)).Error
	})
}

func (r *Repository) ListRoles(ctx context.Context, userID string) ([]entities.Role, error) {
	var rows []roleModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("role ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("access_repo_list_roles_failed", err, "user_id", userID)
	}
	roles := make([]entities.Role, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, entities.Role(row.Role))
	}
	return roles, nil
}

func (r *Repository) ListAudit(ctx context.Context, limit int) ([]entities.AuditEntry, error) {
	var rows []auditModel
	err := r.db.WithContext(ctx).
		Order("at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("access_repo_list_audit_failed", err)
	}
	entries := make([]entities.AuditEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toEntity())
	}
	return entries, nil
}

type roleModel struct {
	UserID    string    `gorm:"column:user_id;primaryKey"`
	Role      string    `gorm:"column:role;primaryKey"`
	GrantedBy string    `gorm:"column:granted_by"`
	GrantedAt time.Time `gorm:"column:granted_at"`
}

func (roleModel) TableName() string {
	return "access_roles"
}

type auditModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	ActorID   string    `gorm:"column:actor_id"`
	SubjectID string    `gorm:"column:subject_id"`
	Action    string    `gorm:"column:action"`
	Role      string    `gorm:"column:role"`
	At        time.Time `gorm:"column:at"`
}

func (auditModel) TableName() string {
	return "access_audit"
}

func auditModelFromEntity(audit entities.AuditEntry) *auditModel {
	return &auditModel{
		ID:        audit.AuditID,
		ActorID:   audit.ActorID,
		SubjectID: audit.SubjectID,
		Action:    audit.Action,
		Role:      string(audit.Role),
		At:        audit.At,
	}
}

func (m auditModel) toEntity() entities.AuditEntry {
	return entities.AuditEntry{
		AuditID:   m.ID,
		ActorID:   m.ActorID,
		SubjectID: m.SubjectID,
		Action:    m.Action,
		Role:      entities.Role(m.Role),
		At:        m.At,
	}
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "identity-access/access-control-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("access repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// Models lists every table owned by this adapter for schema migration.
func Models() []any {
	return []any{&roleModel{}, &auditModel{}}
}
