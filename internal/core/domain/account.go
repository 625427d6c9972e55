package domain

import "github.com/shopspring/decimal"

// AccountType represents the kind of linked bank account.
type AccountType string

const (
	Checking AccountType = "checking"
	Savings  AccountType = "savings"
	Credit   AccountType = "credit"
)

// Default values used when an account is opened implicitly for a transfer recipient.
const (
	DefaultAccountName        = "Primary Account"
	DefaultAccountInstitution = "NeoBank"
)

// Account is a user's bank account as tracked by the Account Directory.
type Account struct {
	AccountID     string          `json:"accountID"`
	OwnerID       string          `json:"ownerID"`
	BankName      string          `json:"bankName"`
	Institution   string          `json:"institution"`
	AccountNumber string          `json:"accountNumber"` // masked, e.g. ****1234
	AccountType   AccountType     `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}

// BalanceSummary lists a user's active accounts and their combined balance.
type BalanceSummary struct {
	Accounts     []Account
	TotalBalance decimal.Decimal
}

// TotalBalance sums the balance of every active account in the slice.
func TotalBalance(accounts []Account) decimal.Decimal {
	total := decimal.Zero
	for _, acc := range accounts {
		if acc.IsActive {
			total = total.Add(acc.Balance)
		}
	}
	return total
}
