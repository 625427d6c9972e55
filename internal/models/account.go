package models

import (
	"github.com/shopspring/decimal"
)

// AccountType is the stored kind of a bank account (checking, savings, credit).
type AccountType string

// Account represents a row of the accounts table.
type Account struct {
	AccountID     string          `db:"account_id"`
	OwnerID       string          `db:"owner_id"`
	BankName      string          `db:"bank_name"`
	Institution   string          `db:"institution"`
	AccountNumber string          `db:"account_number"` // masked
	AccountType   AccountType     `db:"account_type"`
	Balance       decimal.Decimal `db:"balance"`
	IsActive      bool            `db:"is_active"`
	AuditFields
}
