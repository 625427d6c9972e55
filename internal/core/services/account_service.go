package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/neobank_backend/internal/apperrors"
	"github.com/SscSPs/neobank_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/neobank_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/neobank_backend/internal/core/ports/services"
	"github.com/SscSPs/neobank_backend/internal/dto"
	"github.com/SscSPs/neobank_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Range of the opening balance given to a mock linked account.
const (
	linkedBalanceMin = 10000
	linkedBalanceMax = 509999
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates the account directory service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade, clock Clock) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: BaseService{Clock: clock},
		accountRepo: repo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) ListActiveAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListActiveAccountsByOwner(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("user_id", userID))
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) GetBalance(ctx context.Context, userID string) (*domain.BalanceSummary, error) {
	accounts, err := s.ListActiveAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.BalanceSummary{
		Accounts:     accounts,
		TotalBalance: domain.TotalBalance(accounts),
	}, nil
}

func (s *accountService) CreateAccount(ctx context.Context, userID string, account domain.Account) (*domain.Account, error) {
	if account.Balance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance cannot be negative", apperrors.ErrValidation)
	}
	if account.AccountNumber == "" {
		number, err := utils.NewMaskedAccountNumber()
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to generate account number", err)
		}
		account.AccountNumber = number
	}
	if account.AccountType == "" {
		account.AccountType = domain.Checking
	}
	if account.BankName == "" {
		account.BankName = domain.DefaultAccountName
	}
	if account.Institution == "" {
		account.Institution = domain.DefaultAccountInstitution
	}

	now := s.Now()
	account.AccountID = uuid.NewString()
	account.OwnerID = userID
	account.IsActive = true
	account.AuditFields = domain.NewAuditFields(userID, now)

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Account created",
		slog.String("user_id", userID),
		slog.String("account_id", account.AccountID),
		slog.String("account_number", account.AccountNumber))
	return &account, nil
}

func (s *accountService) LinkAccount(ctx context.Context, userID string, req dto.LinkAccountRequest) (*domain.Account, error) {
	balance, err := utils.RandomIntInRange(linkedBalanceMin, linkedBalanceMax)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to generate opening balance", err)
	}
	return s.CreateAccount(ctx, userID, domain.Account{
		BankName:    strings.TrimSpace(req.BankName),
		Institution: strings.TrimSpace(req.Institution),
		AccountType: req.AccountType,
		Balance:     decimal.NewFromInt(balance),
	})
}

func (s *accountService) AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal) error {
	if err := s.accountRepo.AdjustBalance(ctx, accountID, delta, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to adjust balance", slog.String("account_id", accountID))
		return err
	}
	return nil
}
