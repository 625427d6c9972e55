package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/neobank_backend/internal/core/domain"
)

// TransactionReader defines read operations for ledger entries
type TransactionReader interface {
	// ListTransactionsByOwner returns a page of the owner's entries, newest first.
	ListTransactionsByOwner(ctx context.Context, ownerID string, limit int, offset int) ([]domain.Transaction, error)

	// CountTransactionsByOwner returns the total number of the owner's entries.
	CountTransactionsByOwner(ctx context.Context, ownerID string) (int, error)

	// ListTransactionsSince returns the owner's entries created at or after since, newest first.
	ListTransactionsSince(ctx context.Context, ownerID string, since time.Time) ([]domain.Transaction, error)
}

// TransactionWriter defines the only mutation allowed on a stored entry.
type TransactionWriter interface {
	// UpdateTransactionCategory back-fills the category of an existing entry.
	UpdateTransactionCategory(ctx context.Context, transactionID string, category domain.Category, now time.Time) error
}

// LedgerPoster applies ledger entries together with their balance changes in
// one unit of work: either everything is stored or nothing is.
type LedgerPoster interface {
	// SaveTransfer locks the sender's active accounts, re-checks that their
	// combined balance covers the amount (apperrors.ErrInsufficientFunds
	// otherwise), stores both entries, debits the sender account and credits
	// the recipient's first active account or opens posting.FallbackAccount.
	SaveTransfer(ctx context.Context, posting domain.TransferPosting) (*domain.TransferReceipt, error)

	// SaveDeposit stores a received entry and credits the account.
	SaveDeposit(ctx context.Context, deposit domain.DepositPosting) error
}

// TransactionRepositoryFacade combines all ledger repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	LedgerPoster
}
