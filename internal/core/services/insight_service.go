package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/neobank_backend/internal/core/domain"
	"github.com/SscSPs/neobank_backend/internal/core/insights"
	portsrepo "github.com/SscSPs/neobank_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/neobank_backend/internal/core/ports/services"
)

type insightService struct {
	BaseService
	txnRepo        portsrepo.TransactionRepositoryFacade
	accountService portssvc.AccountSvcFacade
	engine         *insights.Engine
	windowMonths   int
}

// NewInsightService creates the insights read service. windowMonths bounds how
// far back ledger entries are loaded.
func NewInsightService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	accountService portssvc.AccountSvcFacade,
	engine *insights.Engine,
	windowMonths int,
	clock Clock,
) portssvc.InsightSvcFacade {
	if windowMonths < 2 {
		windowMonths = 2
	}
	return &insightService{
		BaseService:    BaseService{Clock: clock},
		txnRepo:        txnRepo,
		accountService: accountService,
		engine:         engine,
		windowMonths:   windowMonths,
	}
}

var _ portssvc.InsightSvcFacade = (*insightService)(nil)

func (s *insightService) GetInsights(ctx context.Context, userID string, accountID string) (*domain.InsightReport, error) {
	now := s.Now()
	since := now.AddDate(0, -s.windowMonths, 0)

	txns, err := s.txnRepo.ListTransactionsSince(ctx, userID, since)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for insights", slog.String("user_id", userID))
		return nil, err
	}

	s.backfillCategories(ctx, txns, now)

	if accountID != "" {
		txns = debitsFromAccount(txns, accountID)
	}

	summary, err := s.accountService.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := s.engine.Report(txns, summary.TotalBalance)
	s.LogDebug(ctx, "Insights generated",
		slog.String("user_id", userID),
		slog.Int("transactions", len(txns)),
		slog.Int("suggestions", len(report.Suggestions)))
	return &report, nil
}

// backfillCategories stores a derived category for entries that have none.
// Entries are updated in place so the report sees the new category; a failed
// write is logged and skipped.
func (s *insightService) backfillCategories(ctx context.Context, txns []domain.Transaction, now time.Time) {
	for i := range txns {
		if txns[i].Category.IsExplicit() {
			continue
		}
		derived := insights.Categorize(txns[i])
		if derived == domain.CategoryOther {
			continue
		}
		if err := s.txnRepo.UpdateTransactionCategory(ctx, txns[i].TransactionID, derived, now); err != nil {
			s.LogError(ctx, err, "Failed to back-fill category", slog.String("transaction_id", txns[i].TransactionID))
			continue
		}
		txns[i].Category = derived
	}
}

func debitsFromAccount(txns []domain.Transaction, accountID string) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.Direction == domain.DirectionSent && t.SourceAccountID != nil && *t.SourceAccountID == accountID {
			out = append(out, t)
		}
	}
	return out
}
