package dto

import (
	"time"

	"github.com/SscSPs/neobank_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LinkAccountRequest links a mock bank account to the caller.
type LinkAccountRequest struct {
	BankName    string             `json:"bankName" binding:"required,max=100"`
	Institution string             `json:"institution" binding:"required,max=100"`
	AccountType domain.AccountType `json:"accountType" binding:"omitempty,oneof=checking savings credit"`
}

// SimulateCreditRequest credits the caller's first active account. Amount is
// random when omitted.
type SimulateCreditRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"omitempty,gte=0.01"`
	Description string           `json:"description" binding:"max=255"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string             `json:"id"`
	BankName      string             `json:"bank_name"`
	Institution   string             `json:"institution"`
	AccountNumber string             `json:"account_number"`
	AccountType   domain.AccountType `json:"account_type"`
	Balance       decimal.Decimal    `json:"balance"`
	IsActive      bool               `json:"is_active"`
	CreatedAt     time.Time          `json:"created_at"`
}

// BalanceResponse lists active accounts with their combined balance.
type BalanceResponse struct {
	Accounts     []AccountResponse `json:"accounts"`
	TotalBalance decimal.Decimal   `json:"totalBalance"`
}

// SimulateCreditResponse returns the deposit entry and the new total.
type SimulateCreditResponse struct {
	Transaction  TransactionResponse `json:"transaction"`
	TotalBalance decimal.Decimal     `json:"totalBalance"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		BankName:      acc.BankName,
		Institution:   acc.Institution,
		AccountNumber: acc.AccountNumber,
		AccountType:   acc.AccountType,
		Balance:       acc.Balance,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
	}
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}

// ToBalanceResponse converts a BalanceSummary.
func ToBalanceResponse(summary *domain.BalanceSummary) BalanceResponse {
	return BalanceResponse{
		Accounts:     ToAccountResponses(summary.Accounts),
		TotalBalance: summary.TotalBalance,
	}
}
