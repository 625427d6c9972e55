package services

import (
	"context"

	"github.com/SscSPs/neobank_backend/internal/core/domain"
	"github.com/SscSPs/neobank_backend/internal/dto"
)

// TransactionSvcFacade serves ledger history and account credits.
type TransactionSvcFacade interface {
	// ListTransactions returns a page of the user's entries, newest first.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// GetTransferAnalytics summarises the user's entries over week, month or year.
	GetTransferAnalytics(ctx context.Context, userID string, period string) (*domain.TransferAnalytics, error)

	// SimulateCredit deposits into the user's first active account.
	SimulateCredit(ctx context.Context, userID string, req dto.SimulateCreditRequest) (*domain.Transaction, *domain.BalanceSummary, error)
}

// InsightSvcFacade serves spending insights.
type InsightSvcFacade interface {
	// GetInsights back-fills categories and builds the insight report. A
	// non-empty accountID limits analysis to debits from that account.
	GetInsights(ctx context.Context, userID string, accountID string) (*domain.InsightReport, error)
}
