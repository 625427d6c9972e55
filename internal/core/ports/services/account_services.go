package services

import (
	"context"

	"github.com/SscSPs/neobank_backend/internal/core/domain"
	"github.com/SscSPs/neobank_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for bank accounts
type AccountReaderSvc interface {
	// ListActiveAccounts returns the user's active accounts, oldest first.
	ListActiveAccounts(ctx context.Context, userID string) ([]domain.Account, error)

	// GetBalance returns active accounts and their combined balance.
	GetBalance(ctx context.Context, userID string) (*domain.BalanceSummary, error)
}

// AccountWriterSvc defines write operations for bank accounts
type AccountWriterSvc interface {
	// CreateAccount opens an account for the user with the given opening balance.
	CreateAccount(ctx context.Context, userID string, account domain.Account) (*domain.Account, error)

	// LinkAccount links a mock external account with a random opening balance.
	LinkAccount(ctx context.Context, userID string, req dto.LinkAccountRequest) (*domain.Account, error)

	// AdjustBalance adds delta to the account balance.
	AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal) error
}

// AccountSvcFacade is the Account Directory.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
