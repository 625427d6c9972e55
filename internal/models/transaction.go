package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Transaction represents one ledger entry row. A transfer writes two rows,
// one per party, sharing TransferReference.
type Transaction struct {
	TransactionID      string          `db:"transaction_id"`
	OwnerUserID        string          `db:"owner_user_id"`
	CounterpartyUserID sql.NullString  `db:"counterparty_user_id"`
	Amount             decimal.Decimal `db:"amount"`
	Category           string          `db:"category"`
	Description        string          `db:"description"`
	Status             string          `db:"status"`
	Direction          string          `db:"direction"`
	TransactionType    string          `db:"transaction_type"`
	Priority           string          `db:"priority"`
	ProcessingFee      decimal.Decimal `db:"processing_fee"`
	SourceAccountID    sql.NullString  `db:"source_account_id"`
	ScheduledDate      sql.NullTime    `db:"scheduled_date"`
	RecurringFrequency sql.NullString  `db:"recurring_frequency"`
	RecurringEndDate   sql.NullTime    `db:"recurring_end_date"`
	TransferReference  sql.NullString  `db:"transfer_reference"`
	BatchID            sql.NullString  `db:"batch_id"`
	AuditFields
}
