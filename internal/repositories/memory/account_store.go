package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/neobank_backend/internal/apperrors"
	"github.com/SscSPs/neobank_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// activeAccountsOf returns the owner's active accounts, oldest first. Caller holds the lock.
func (s *Store) activeAccountsOf(ownerID string) []domain.Account {
	accounts := []domain.Account{}
	for _, id := range s.acctSeq {
		acc := s.accounts[id]
		if acc.OwnerID == ownerID && acc.IsActive {
			accounts = append(accounts, acc)
		}
	}
	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
	return accounts
}

func (s *Store) insertAccount(account domain.Account) error {
	if _, exists := s.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, account.AccountID)
	}
	s.accounts[account.AccountID] = account
	s.acctSeq = append(s.acctSeq, account.AccountID)
	return nil
}

func (s *Store) adjust(accountID string, delta decimal.Decimal, now time.Time) error {
	acc, ok := s.accounts[accountID]
	if !ok {
		return apperrors.ErrNotFound
	}
	acc.Balance = acc.Balance.Add(delta)
	acc.LastUpdatedAt = now
	s.accounts[accountID] = acc
	return nil
}

func (s *Store) SaveAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertAccount(account)
}

func (s *Store) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

func (s *Store) FindActiveAccountByNumber(_ context.Context, accountNumber string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found *domain.Account
	for _, id := range s.acctSeq {
		acc := s.accounts[id]
		if !acc.IsActive || acc.AccountNumber != accountNumber {
			continue
		}
		if found == nil || acc.CreatedAt.Before(found.CreatedAt) {
			acc := acc
			found = &acc
		}
	}
	if found == nil {
		return nil, apperrors.ErrNotFound
	}
	return found, nil
}

func (s *Store) ListActiveAccountsByOwner(_ context.Context, ownerID string) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeAccountsOf(ownerID), nil
}

func (s *Store) AdjustBalance(_ context.Context, accountID string, delta decimal.Decimal, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adjust(accountID, delta, now)
}
