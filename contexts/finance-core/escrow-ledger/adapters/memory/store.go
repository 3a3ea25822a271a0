package memory

import (
	"context"
	"sync"
	"time"

	"eventx/contexts/finance-core/escrow-ledger/domain/entities"
	domainerrors "eventx/contexts/finance-core/escrow-ledger/domain/errors"

	"github.com/google/uuid"
)

// Store is the in-memory ledger. One mutex guards accounts, holds, and the
// transfer log together: every movement reads and writes at least two of
// them and must commit or fail as a unit.
type Store struct {
	mu        sync.Mutex
	accounts  map[string]entities.Account
	holds     map[string]entities.EscrowHold
	transfers []entities.Transfer
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]entities.Account),
		holds:    make(map[string]entities.EscrowHold),
	}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) Deposit(_ context.Context, accountID string, amount int64, transfer entities.Transfer) (entities.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account := s.accounts[accountID]
	account.AccountID = accountID
	account.Balance += amount
	account.UpdatedAt = transfer.At
	s.accounts[accountID] = account
	s.transfers = append(s.transfers, transfer)
	return account, nil
}

func (s *Store) HoldEscrow(_ context.Context, hold entities.EscrowHold, transfer entities.Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.holds[hold.EscrowRef]; exists {
		return domainerrors.ErrEscrowExists
	}
	account, ok := s.accounts[hold.OwnerID]
	if !ok || account.Balance < hold.Amount {
		return domainerrors.ErrInsufficientFunds
	}
	account.Balance -= hold.Amount
	account.UpdatedAt = transfer.At
	s.accounts[hold.OwnerID] = account
	s.holds[hold.EscrowRef] = hold
	s.transfers = append(s.transfers, transfer)
	return nil
}

func (s *Store) ReleaseFromEscrow(_ context.Context, escrowRef string, toAccountID string, amount int64, transfer entities.Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	hold, ok := s.holds[escrowRef]
	if !ok {
		return domainerrors.ErrEscrowNotFound
	}
	if hold.Amount < amount {
		return domainerrors.ErrEscrowInsufficient
	}
	hold.Amount -= amount
	hold.UpdatedAt = transfer.At
	s.holds[escrowRef] = hold

	account := s.accounts[toAccountID]
	account.AccountID = toAccountID
	account.Balance += amount
	account.UpdatedAt = transfer.At
	s.accounts[toAccountID] = account
	s.transfers = append(s.transfers, transfer)
	return nil
}

func (s *Store) Balance(_ context.Context, accountID string) (entities.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[accountID]
	if !ok {
		return entities.Account{}, domainerrors.ErrUnknownAccount
	}
	return account, nil
}

func (s *Store) EscrowHold(_ context.Context, escrowRef string) (entities.EscrowHold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hold, ok := s.holds[escrowRef]
	if !ok {
		return entities.EscrowHold{}, domainerrors.ErrEscrowNotFound
	}
	return hold, nil
}

func (s *Store) ListTransfers(_ context.Context, escrowRef string) ([]entities.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	transfers := make([]entities.Transfer, 0)
	for _, transfer := range s.transfers {
		if escrowRef == "" || transfer.EscrowRef == escrowRef {
			transfers = append(transfers, transfer)
		}
	}
	return transfers, nil
}
