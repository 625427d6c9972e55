package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/neobank_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindActiveAccountByNumber retrieves the oldest active account with the given number.
	FindActiveAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// ListActiveAccountsByOwner returns the owner's active accounts, oldest first.
	ListActiveAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// AdjustBalance atomically adds delta (which may be negative) to the balance.
	AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
