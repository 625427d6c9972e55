package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/neobank_backend/internal/apperrors"
	"github.com/SscSPs/neobank_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/neobank_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/neobank_backend/internal/core/ports/services"
	"github.com/SscSPs/neobank_backend/internal/dto"
	"github.com/SscSPs/neobank_backend/internal/utils"
	"github.com/SscSPs/neobank_backend/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// Analytics windows accepted by GetTransferAnalytics.
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

const defaultCreditDescription = "Automated credit"

type transactionService struct {
	BaseService
	txnRepo        portsrepo.TransactionRepositoryFacade
	accountService portssvc.AccountSvcFacade
}

// NewTransactionService creates the ledger history service.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, accountService portssvc.AccountSvcFacade, clock Clock) portssvc.TransactionSvcFacade {
	return &transactionService{
		BaseService:    BaseService{Clock: clock},
		txnRepo:        txnRepo,
		accountService: accountService,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	page := pagination.Normalize(params.Page, params.Limit)

	txns, err := s.txnRepo.ListTransactionsByOwner(ctx, userID, page.Limit, page.Offset())
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("user_id", userID))
		return nil, err
	}
	total, err := s.txnRepo.CountTransactionsByOwner(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count transactions", slog.String("user_id", userID))
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		Pagination: dto.PaginationInfo{
			Page:  page.Page,
			Limit: page.Limit,
			Total: total,
			Pages: pagination.TotalPages(total, page.Limit),
		},
	}, nil
}

// periodStart returns the start of the analytics window: the last seven days,
// or the start of the current calendar month or year.
func periodStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case PeriodWeek:
		return now.Add(-7 * 24 * time.Hour), nil
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	case PeriodYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), nil
	}
	return time.Time{}, fmt.Errorf("%w: period must be week, month or year", apperrors.ErrValidation)
}

func (s *transactionService) GetTransferAnalytics(ctx context.Context, userID string, period string) (*domain.TransferAnalytics, error) {
	period = strings.ToLower(strings.TrimSpace(period))
	if period == "" {
		period = PeriodMonth
	}
	since, err := periodStart(period, s.Now())
	if err != nil {
		return nil, err
	}

	txns, err := s.txnRepo.ListTransactionsSince(ctx, userID, since)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for analytics", slog.String("user_id", userID))
		return nil, err
	}

	a := &domain.TransferAnalytics{
		Period:        period,
		TotalSent:     decimal.Zero,
		TotalReceived: decimal.Zero,
		AverageAmount: decimal.Zero,
		PriorityBreakdown: map[domain.Priority]int{
			domain.PriorityLow: 0, domain.PriorityNormal: 0, domain.PriorityHigh: 0, domain.PriorityUrgent: 0,
		},
		TransferTypes: map[domain.TransactionType]int{
			domain.TypeInstant: 0, domain.TypeScheduled: 0, domain.TypeRecurring: 0,
		},
	}

	sum := decimal.Zero
	for _, t := range txns {
		a.TotalTransfers++
		sum = sum.Add(t.Amount)
		if t.Direction == domain.DirectionSent {
			a.TotalSent = a.TotalSent.Add(t.Amount)
		} else {
			a.TotalReceived = a.TotalReceived.Add(t.Amount)
		}
		if _, ok := a.PriorityBreakdown[t.Priority]; ok {
			a.PriorityBreakdown[t.Priority]++
		}
		if _, ok := a.TransferTypes[t.TransactionType]; ok {
			a.TransferTypes[t.TransactionType]++
		}
	}
	if a.TotalTransfers > 0 {
		a.AverageAmount = sum.Div(decimal.NewFromInt(int64(a.TotalTransfers))).Round(2)
	}
	return a, nil
}

func (s *transactionService) SimulateCredit(ctx context.Context, userID string, req dto.SimulateCreditRequest) (*domain.Transaction, *domain.BalanceSummary, error) {
	accounts, err := s.accountService.ListActiveAccounts(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if len(accounts) == 0 {
		return nil, nil, fmt.Errorf("%w: No active bank accounts found", apperrors.ErrValidation)
	}

	var amount decimal.Decimal
	if req.Amount != nil {
		amount = *req.Amount
		if !amount.IsPositive() {
			return nil, nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
		}
	} else {
		// Random amount between 10.00 and 100.00.
		cents, err := utils.RandomIntInRange(1000, 10000)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to generate credit amount", err)
		}
		amount = decimal.New(cents, -2)
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = defaultCreditDescription
	}

	txnID, err := utils.NewTransactionID()
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to generate transaction ID", err)
	}

	target := accounts[0]
	accountID := target.AccountID
	entry := domain.Transaction{
		TransactionID:      txnID,
		OwnerUserID:        userID,
		CounterpartyUserID: userID,
		Amount:             amount,
		Category:           domain.CategoryIncome,
		Description:        description,
		Status:             domain.StatusCompleted,
		Direction:          domain.DirectionReceived,
		TransactionType:    domain.TypeDeposit,
		Priority:           domain.PriorityNormal,
		ProcessingFee:      decimal.Zero,
		SourceAccountID:    &accountID,
		AuditFields:        domain.NewAuditFields(userID, s.Now()),
	}

	if err := s.txnRepo.SaveDeposit(ctx, domain.DepositPosting{AccountID: accountID, Entry: entry}); err != nil {
		s.LogError(ctx, err, "Failed to record simulated credit", slog.String("account_id", accountID))
		return nil, nil, err
	}
	s.LogInfo(ctx, "Simulated credit posted",
		slog.String("user_id", userID),
		slog.String("account_id", accountID),
		slog.String("amount", amount.String()))

	summary, err := s.accountService.GetBalance(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return &entry, summary, nil
}
