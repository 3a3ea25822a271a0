package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"eventx/contexts/finance-core/escrow-ledger/domain/entities"
	domainerrors "eventx/contexts/finance-core/escrow-ledger/domain/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

func (r *Repository) Deposit(ctx context.Context, accountID string, amount int64, transfer entities.Transfer) (entities.Account, error) {
	var result entities.Account
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := lockAccount(tx, accountID, true)
		if err != nil {
			return err
		}
		account.Balance += amount
		account.UpdatedAt = transfer.At
		if err := tx.Save(&account).Error; err != nil {
			return err
		}
		if err := tx.Create(transferModelFromEntity(transfer)).Error; err != nil {
			return err
		}
		result = account.toEntity()
		return nil
	})
	if err != nil {
		return entities.Account{}, r.logError("ledger_repo_deposit_failed", err, "account_id", accountID)
	}
	return result, nil
}

func (r *Repository) HoldEscrow(ctx context.Context, hold entities.EscrowHold, transfer entities.Transfer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := lockAccount(tx, hold.OwnerID, false)
		if err != nil {
			return err
		}
		if account.Balance < hold.Amount {
			return domainerrors.ErrInsufficientFunds
		}
		account.Balance -= hold.Amount
		account.UpdatedAt = transfer.At
		if err := tx.Save(&account).Error; err != nil {
			return err
		}
		err = tx.Create(&escrowModel{
			EscrowRef: hold.EscrowRef,
			OwnerID:   hold.OwnerID,
			Amount:    hold.Amount,
			CreatedAt: hold.CreatedAt,
			UpdatedAt: hold.UpdatedAt,
		}).Error
		if err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrEscrowExists
			}
			return err
		}
		return tx.Create(transferModelFromEntity(transfer)).Error
	})
}

func (r *Repository) ReleaseFromEscrow(ctx context.Context, escrowRef string, toAccountID string, amount int64, transfer entities.Transfer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var hold escrowModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("escrow_ref = ?", escrowRef).
			First(&hold).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrEscrowNotFound
			}
			return err
		}
		if hold.Amount < amount {
			return domainerrors.ErrEscrowInsufficient
		}
		hold.Amount -= amount
		hold.UpdatedAt = transfer.At
		if err := tx.Save(&hold).Error; err != nil {
			return err
		}
		account, err := lockAccount(tx, toAccountID, true)
		if err != nil {
			return err
		}
		account.Balance += amount
		account.UpdatedAt = transfer.At
		if err := tx.Save(&account).Error; err != nil {
			return err
		}
		return tx.Create(transferModelFromEntity(transfer)).Error
	})
}

func (r *Repository) Balance(ctx context.Context, accountID string) (entities.Account, error) {
	var row accountModel
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Account{}, domainerrors.ErrUnknownAccount
		}
		return entities.Account{}, r.logError("ledger_repo_balance_failed", err, "account_id", accountID)
	}
	return row.toEntity(), nil
}

func (r *Repository) EscrowHold(ctx context.Context, escrowRef string) (entities.EscrowHold, error) {
	var row escrowModel
	err := r.db.WithContext(ctx).Where("escrow_ref = ?", escrowRef).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.EscrowHold{}, domainerrors.ErrEscrowNotFound
		}
		return entities.EscrowHold{}, r.logError("ledger_repo_escrow_failed", err, "escrow_ref", escrowRef)
	}
	return entities.EscrowHold{
		EscrowRef: row.EscrowRef,
		OwnerID:   row.OwnerID,
		Amount:    row.Amount,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (r *Repository) ListTransfers(ctx context.Context, escrowRef string) ([]entities.Transfer, error) {
	tx := r.db.WithContext(ctx).Model(&transferModel{})
	if escrowRef != "" {
		tx = tx.Where("escrow_ref = ?", escrowRef)
	}
	var rows []transferModel
	if err := tx.Order("at ASC").Find(&rows).Error; err != nil {
		return nil, r.logError("ledger_repo_list_transfers_failed", err, "escrow_ref", escrowRef)
	}
	transfers := make([]entities.Transfer, 0, len(rows))
	for _, row := range rows {
		transfers = append(transfers, row.toEntity())
	}
	return transfers, nil
}

// lockAccount loads an account row FOR UPDATE, optionally creating a zero
// balance row when the account is first credited.
func lockAccount(tx *gorm.DB, accountID string, createMissing bool) (accountModel, error) {
	var row accountModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("account_id = ?", accountID).
		First(&row).Error
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return accountModel{}, err
	}
	if !createMissing {
		return accountModel{}, domainerrors.ErrInsufficientFunds
	}
	row = accountModel{AccountID: accountID}
	if err := tx.Create(&row).Error; err != nil {
		return accountModel{}, err
	}
	return row, nil
}

type accountModel struct {
	AccountID string    `gorm:"column:account_id;primaryKey"`
	Balance   int64     `gorm:"column:balance"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (accountModel) TableName() string {
	return "ledger_accounts"
}

func (m accountModel) toEntity() entities.Account {
	return entities.Account{
		AccountID: m.AccountID,
		Balance:   m.Balance,
		UpdatedAt: m.UpdatedAt,
	}
}

type escrowModel struct {
	EscrowRef string    `gorm:"column:escrow_ref;primaryKey"`
	OwnerID   string    `gorm:"column:owner_id"`
	Amount    int64     `gorm:"column:amount"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (escrowModel) TableName() string {
	return "ledger_escrows"
}

type transferModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Kind      string    `gorm:"column:kind"`
	EscrowRef string    `gorm:"column:escrow_ref"`
	FromID    string    `gorm:"column:from_id"`
	ToID      string    `gorm:"column:to_id"`
	Amount    int64     `gorm:"column:amount"`
	At        time.Time `gorm:"column:at"`
}

func (transferModel) TableName() string {
	return "ledger_transfers"
}

func transferModelFromEntity(transfer entities.Transfer) *transferModel {
	return &transferModel{
		ID:        transfer.TransferID,
		Kind:      string(transfer.Kind),
		EscrowRef: transfer.EscrowRef,
		FromID:    transfer.FromID,
		ToID:      transfer.ToID,
		Amount:    transfer.Amount,
		At:        transfer.At,
	}
}

func (m transferModel) toEntity() entities.Transfer {
	return entities.Transfer{
		TransferID: m.ID,
		Kind:       entities.TransferKind(m.Kind),
		EscrowRef:  m.EscrowRef,
		FromID:     m.FromID,
		ToID:       m.ToID,
		Amount:     m.Amount,
		At:         m.At,
	}
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "finance-core/escrow-ledger",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("ledger repository operation failed", fields...)
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
	return []any{&accountModel{}, &escrowModel{}, &transferModel{}}
}
