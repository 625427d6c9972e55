package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/neobank_backend/internal/core/domain"
	"github.com/SscSPs/neobank_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepositoryFacade ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) userResult(args mock.Arguments) (*domain.User, error) {
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return m.userResult(m.Called(ctx, userID))
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.userResult(m.Called(ctx, email))
}

func (m *MockUserRepository) FindUserByCustomerID(ctx context.Context, customerID string) (*domain.User, error) {
	return m.userResult(m.Called(ctx, customerID))
}

func (m *MockUserRepository) FindUserByProfileURL(ctx context.Context, profileURL string) (*domain.User, error) {
	return m.userResult(m.Called(ctx, profileURL))
}

func (m *MockUserRepository) FindUserByProfileURLFragment(ctx context.Context, fragment string) (*domain.User, error) {
	return m.userResult(m.Called(ctx, fragment))
}

func (m *MockUserRepository) FindUserByPhoneFragment(ctx context.Context, fragment string) (*domain.User, error) {
	return m.userResult(m.Called(ctx, fragment))
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePINHash(ctx context.Context, userID string, pinHash string, now time.Time) error {
	args := m.Called(ctx, userID, pinHash, now)
	return args.Error(0)
}

// --- Mock AccountRepositoryFacade ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	var acc *domain.Account
	if args.Get(0) != nil {
		acc = args.Get(0).(*domain.Account)
	}
	return acc, args.Error(1)
}

func (m *MockAccountRepository) FindActiveAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	var acc *domain.Account
	if args.Get(0) != nil {
		acc = args.Get(0).(*domain.Account)
	}
	return acc, args.Error(1)
}

func (m *MockAccountRepository) ListActiveAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	args := m.Called(ctx, ownerID)
	var accounts []domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, accountID, delta, now)
	return args.Error(0)
}

// --- Mock TransactionRepositoryFacade ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) ListTransactionsByOwner(ctx context.Context, ownerID string, limit int, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) CountTransactionsByOwner(ctx context.Context, ownerID string) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsSince(ctx context.Context, ownerID string, since time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, ownerID, since)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransactionCategory(ctx context.Context, transactionID string, category domain.Category, now time.Time) error {
	args := m.Called(ctx, transactionID, category, now)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransfer(ctx context.Context, posting domain.TransferPosting) (*domain.TransferReceipt, error) {
	args := m.Called(ctx, posting)
	var receipt *domain.TransferReceipt
	if args.Get(0) != nil {
		receipt = args.Get(0).(*domain.TransferReceipt)
	}
	return receipt, args.Error(1)
}

func (m *MockTransactionRepository) SaveDeposit(ctx context.Context, deposit domain.DepositPosting) error {
	args := m.Called(ctx, deposit)
	return args.Error(0)
}

// --- Mock RecipientResolverSvc ---
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, ids domain.RecipientIdentifiers) (*domain.User, error) {
	args := m.Called(ctx, ids)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockResolver) Lookup(ctx context.Context, identifier string) (*domain.RecipientProfile, error) {
	args := m.Called(ctx, identifier)
	var profile *domain.RecipientProfile
	if args.Get(0) != nil {
		profile = args.Get(0).(*domain.RecipientProfile)
	}
	return profile, args.Error(1)
}

// --- Mock UserSvcFacade ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) SetPIN(ctx context.Context, userID string, pin string) error {
	args := m.Called(ctx, userID, pin)
	return args.Error(0)
}

func (m *MockUserService) VerifyPassword(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) VerifyPIN(ctx context.Context, userID string, pin string) (bool, error) {
	args := m.Called(ctx, userID, pin)
	return args.Bool(0), args.Error(1)
}
