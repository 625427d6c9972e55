package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/neobank_backend/internal/apperrors"
	"github.com/SscSPs/neobank_backend/internal/core/domain"
)

// ownerEntries returns the owner's entries accepted by keep, newest first. Caller holds the lock.
func (s *Store) ownerEntries(ownerID string, keep func(domain.Transaction) bool) []domain.Transaction {
	entries := []domain.Transaction{}
	for i := len(s.txnSeq) - 1; i >= 0; i-- {
		txn := s.txns[s.txnSeq[i]]
		if txn.OwnerUserID == ownerID && keep(txn) {
			entries = append(entries, txn)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries
}

func (s *Store) insertEntry(txn domain.Transaction) error {
	if _, exists := s.txns[txn.TransactionID]; exists {
		return fmt.Errorf("%w: transaction %s already exists", apperrors.ErrDuplicate, txn.TransactionID)
	}
	s.txns[txn.TransactionID] = txn
	s.txnSeq = append(s.txnSeq, txn.TransactionID)
	return nil
}

func (s *Store) ListTransactionsByOwner(_ context.Context, ownerID string, limit int, offset int) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.ownerEntries(ownerID, func(domain.Transaction) bool { return true })
	if offset >= len(entries) {
		return []domain.Transaction{}, nil
	}
	end := offset + limit
	if end > len(entries) {
		end = len(entries)
	}
	return entries[offset:end], nil
}

func (s *Store) CountTransactionsByOwner(_ context.Context, ownerID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, txn := range s.txns {
		if txn.OwnerUserID == ownerID {
			count++
		}
	}
	return count, nil
}

func (s *Store) ListTransactionsSince(_ context.Context, ownerID string, since time.Time) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ownerEntries(ownerID, func(t domain.Transaction) bool { return !t.CreatedAt.Before(since) }), nil
}

func (s *Store) UpdateTransactionCategory(_ context.Context, transactionID string, category domain.Category, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	txn, ok := s.txns[transactionID]
	if !ok {
		return apperrors.ErrNotFound
	}
	txn.Category = category
	txn.LastUpdatedAt = now
	s.txns[transactionID] = txn
	return nil
}

// SaveTransfer validates everything before the first write, so a failure
// leaves the store untouched.
func (s *Store) SaveTransfer(_ context.Context, posting domain.TransferPosting) (*domain.TransferReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	senderAccounts := s.activeAccountsOf(posting.SenderID)
	if domain.TotalBalance(senderAccounts).LessThan(posting.Amount) {
		return nil, fmt.Errorf("%w: combined balance no longer covers the transfer", apperrors.ErrInsufficientFunds)
	}
	sourceActive := false
	for _, acc := range senderAccounts {
		if acc.AccountID == posting.SenderAccountID {
			sourceActive = true
			break
		}
	}
	if !sourceActive {
		return nil, fmt.Errorf("%w: source account %s is not active", apperrors.ErrValidation, posting.SenderAccountID)
	}
	for _, id := range []string{posting.SenderEntry.TransactionID, posting.RecipientEntry.TransactionID} {
		if _, exists := s.txns[id]; exists {
			return nil, fmt.Errorf("%w: transaction %s already exists", apperrors.ErrDuplicate, id)
		}
	}

	recipientAccounts := s.activeAccountsOf(posting.RecipientID)
	receipt := &domain.TransferReceipt{}
	if len(recipientAccounts) == 0 {
		if _, exists := s.accounts[posting.FallbackAccount.AccountID]; exists {
			return nil, fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, posting.FallbackAccount.AccountID)
		}
	}

	// The checks above rule out every failure below; an error here is a
	// broken invariant and is reported as internal.
	if err := s.applyTransfer(posting, recipientAccounts, receipt); err != nil {
		return nil, apperrors.NewAppError(500, "transfer failed after validation", err)
	}
	return receipt, nil
}

func (s *Store) applyTransfer(posting domain.TransferPosting, recipientAccounts []domain.Account, receipt *domain.TransferReceipt) error {
	now := posting.SenderEntry.CreatedAt
	if err := s.insertEntry(posting.SenderEntry); err != nil {
		return err
	}
	if err := s.insertEntry(posting.RecipientEntry); err != nil {
		return err
	}
	if err := s.adjust(posting.SenderAccountID, posting.Amount.Neg(), now); err != nil {
		return err
	}

	if len(recipientAccounts) > 0 {
		receipt.RecipientAccountID = recipientAccounts[0].AccountID
		return s.adjust(receipt.RecipientAccountID, posting.Amount, now)
	}
	if err := s.insertAccount(posting.FallbackAccount); err != nil {
		return err
	}
	receipt.RecipientAccountID = posting.FallbackAccount.AccountID
	receipt.RecipientAccountCreated = true
	return nil
}

func (s *Store) SaveDeposit(_ context.Context, deposit domain.DepositPosting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[deposit.AccountID]; !ok {
		return apperrors.ErrNotFound
	}
	if err := s.insertEntry(deposit.Entry); err != nil {
		return err
	}
	return s.adjust(deposit.AccountID, deposit.Entry.Amount, deposit.Entry.CreatedAt)
}
