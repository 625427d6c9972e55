package handlers_test

import (
	"context"

	"github.com/SscSPs/neobank_backend/internal/core/domain"
	portssvc "github.com/SscSPs/neobank_backend/internal/core/ports/services"
	"github.com/SscSPs/neobank_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserSvcFacade ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) SetPIN(ctx context.Context, userID string, pin string) error {
	args := m.Called(ctx, userID, pin)
	return args.Error(0)
}

func (m *MockUserService) VerifyPassword(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) VerifyPIN(ctx context.Context, userID string, pin string) (bool, error) {
	args := m.Called(ctx, userID, pin)
	return args.Bool(0), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenSvcFacade ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock AccountSvcFacade ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) ListActiveAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) GetBalance(ctx context.Context, userID string) (*domain.BalanceSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSummary), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, userID string, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, userID, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) LinkAccount(ctx context.Context, userID string, req dto.LinkAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal) error {
	args := m.Called(ctx, accountID, delta)
	return args.Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock RecipientResolverSvc ---
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, ids domain.RecipientIdentifiers) (*domain.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockResolver) Lookup(ctx context.Context, identifier string) (*domain.RecipientProfile, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecipientProfile), args.Error(1)
}

var _ portssvc.RecipientResolverSvc = (*MockResolver)(nil)

// --- Mock TransferSvcFacade ---
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) Transfer(ctx context.Context, requesterID string, req domain.TransferRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, requesterID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransferService) BulkTransfer(ctx context.Context, requesterID string, req domain.BulkTransferRequest) (*domain.BulkTransferResult, error) {
	args := m.Called(ctx, requesterID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BulkTransferResult), args.Error(1)
}

var _ portssvc.TransferSvcFacade = (*MockTransferService)(nil)

// --- Mock TransactionSvcFacade ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockTransactionService) GetTransferAnalytics(ctx context.Context, userID string, period string) (*domain.TransferAnalytics, error) {
	args := m.Called(ctx, userID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferAnalytics), args.Error(1)
}

func (m *MockTransactionService) SimulateCredit(ctx context.Context, userID string, req dto.SimulateCreditRequest) (*domain.Transaction, *domain.BalanceSummary, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), args.Get(1).(*domain.BalanceSummary), args.Error(2)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock InsightSvcFacade ---
type MockInsightService struct {
	mock.Mock
}

func (m *MockInsightService) GetInsights(ctx context.Context, userID string, accountID string) (*domain.InsightReport, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InsightReport), args.Error(1)
}

var _ portssvc.InsightSvcFacade = (*MockInsightService)(nil)
