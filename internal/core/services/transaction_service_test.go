package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/neobank_backend/internal/apperrors"
	"github.com/SscSPs/neobank_backend/internal/core/domain"
	"github.com/SscSPs/neobank_backend/internal/core/services"
	"github.com/SscSPs/neobank_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func entry(direction domain.Direction, amount string, priority domain.Priority, typ domain.TransactionType) domain.Transaction {
	return domain.Transaction{
		Amount:          decimal.RequireFromString(amount),
		Direction:       direction,
		Priority:        priority,
		TransactionType: typ,
	}
}

func TestGetTransferAnalytics(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTransactionRepository)
	svc := services.NewTransactionService(repo, services.NewAccountService(new(MockAccountRepository), fixedClock), fixedClock)

	monthStart := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	repo.On("ListTransactionsSince", ctx, "u1", monthStart).Return([]domain.Transaction{
		entry(domain.DirectionSent, "100", domain.PriorityNormal, domain.TypeInstant),
		entry(domain.DirectionSent, "50", domain.PriorityUrgent, domain.TypeScheduled),
		entry(domain.DirectionReceived, "25.50", domain.PriorityNormal, domain.TypeDeposit),
	}, nil).Once()

	got, err := svc.GetTransferAnalytics(ctx, "u1", "")

	require.NoError(t, err)
	assert.Equal(t, services.PeriodMonth, got.Period)
	assert.Equal(t, 3, got.TotalTransfers)
	assert.True(t, decimal.NewFromInt(150).Equal(got.TotalSent))
	assert.True(t, decimal.RequireFromString("25.5").Equal(got.TotalReceived))
	assert.True(t, decimal.RequireFromString("58.5").Equal(got.AverageAmount), "average %s", got.AverageAmount)
	assert.Equal(t, 2, got.PriorityBreakdown[domain.PriorityNormal])
	assert.Equal(t, 1, got.PriorityBreakdown[domain.PriorityUrgent])
	assert.Equal(t, 0, got.PriorityBreakdown[domain.PriorityLow])
	assert.Equal(t, 1, got.TransferTypes[domain.TypeInstant])
	assert.Equal(t, 1, got.TransferTypes[domain.TypeScheduled])
	_, hasDeposit := got.TransferTypes[domain.TypeDeposit]
	assert.False(t, hasDeposit)
	repo.AssertExpectations(t)
}

func TestGetTransferAnalytics_Windows(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		period string
		since  time.Time
	}{
		{"week", fixedNow.Add(-7 * 24 * time.Hour)},
		{"YEAR", time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			repo := new(MockTransactionRepository)
			svc := services.NewTransactionService(repo, nil, fixedClock)
			repo.On("ListTransactionsSince", ctx, "u1", tt.since).Return([]domain.Transaction{}, nil).Once()

			got, err := svc.GetTransferAnalytics(ctx, "u1", tt.period)

			require.NoError(t, err)
			assert.Zero(t, got.TotalTransfers)
			assert.True(t, got.AverageAmount.IsZero())
			repo.AssertExpectations(t)
		})
	}
}

func TestGetTransferAnalytics_UnknownPeriod(t *testing.T) {
	repo := new(MockTransactionRepository)
	svc := services.NewTransactionService(repo, nil, fixedClock)

	_, err := svc.GetTransferAnalytics(context.Background(), "u1", "decade")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "ListTransactionsSince", mock.Anything, mock.Anything, mock.Anything)
}

func TestListTransactions_Paginates(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTransactionRepository)
	svc := services.NewTransactionService(repo, nil, fixedClock)

	repo.On("ListTransactionsByOwner", ctx, "u1", 10, 20).Return([]domain.Transaction{{TransactionID: "TXN_1"}}, nil)
	repo.On("CountTransactionsByOwner", ctx, "u1").Return(21, nil)

	got, err := svc.ListTransactions(ctx, "u1", dto.ListTransactionsParams{Page: 3, Limit: 10})

	require.NoError(t, err)
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, "TXN_1", got.Transactions[0].TransactionID)
	assert.Equal(t, 3, got.Pagination.Page)
	assert.Equal(t, 21, got.Pagination.Total)
	assert.Equal(t, 3, got.Pagination.Pages)
}

func TestSimulateCredit(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTransactionRepository)
	accountRepo := new(MockAccountRepository)
	svc := services.NewTransactionService(repo, services.NewAccountService(accountRepo, fixedClock), fixedClock)

	accountRepo.On("ListActiveAccountsByOwner", ctx, "u1").Return([]domain.Account{
		{AccountID: "acc-1", Balance: decimal.NewFromInt(100), IsActive: true},
	}, nil)
	var deposit domain.DepositPosting
	repo.On("SaveDeposit", ctx, mock.Anything).
		Run(func(args mock.Arguments) { deposit = args.Get(1).(domain.DepositPosting) }).
		Return(nil).Once()

	txn, summary, err := svc.SimulateCredit(ctx, "u1", dto.SimulateCreditRequest{})

	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, "acc-1", deposit.AccountID)
	assert.Equal(t, domain.CategoryIncome, txn.Category)
	assert.Equal(t, domain.DirectionReceived, txn.Direction)
	assert.Equal(t, "Automated credit", txn.Description)
	assert.True(t, txn.Amount.GreaterThanOrEqual(decimal.NewFromInt(10)), "amount %s", txn.Amount)
	assert.True(t, txn.Amount.LessThanOrEqual(decimal.NewFromInt(100)), "amount %s", txn.Amount)
}

func TestSimulateCredit_ExplicitAmountAndNoAccount(t *testing.T) {
	ctx := context.Background()
	accountRepo := new(MockAccountRepository)
	repo := new(MockTransactionRepository)
	svc := services.NewTransactionService(repo, services.NewAccountService(accountRepo, fixedClock), fixedClock)

	accountRepo.On("ListActiveAccountsByOwner", ctx, "empty").Return([]domain.Account{}, nil)
	_, _, err := svc.SimulateCredit(ctx, "empty", dto.SimulateCreditRequest{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	accountRepo.On("ListActiveAccountsByOwner", ctx, "u1").Return([]domain.Account{{AccountID: "a", IsActive: true}}, nil)
	negative := decimal.NewFromInt(-1)
	_, _, err = svc.SimulateCredit(ctx, "u1", dto.SimulateCreditRequest{Amount: &negative})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	amount := decimal.RequireFromString("42.42")
	repo.On("SaveDeposit", ctx, mock.Anything).Return(nil)
	txn, _, err := svc.SimulateCredit(ctx, "u1", dto.SimulateCreditRequest{Amount: &amount, Description: "Salary"})
	require.NoError(t, err)
	assert.True(t, amount.Equal(txn.Amount))
	assert.Equal(t, "Salary", txn.Description)
}
