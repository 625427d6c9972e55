package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransferStage names the points a transfer passes through. Stages are only
// logged, never stored.
type TransferStage string

const (
	StageValidated         TransferStage = "validated"
	StagePinVerified       TransferStage = "pin_verified"
	StageRecipientResolved TransferStage = "recipient_resolved"
	StageFundsChecked      TransferStage = "funds_checked"
	StageFeeComputed       TransferStage = "fee_computed"
	StageRecorded          TransferStage = "recorded"
	StageBalancesAdjusted  TransferStage = "balances_adjusted"
	StageCompleted         TransferStage = "completed"
	StageFailed            TransferStage = "failed"
)

// RecipientIdentifiers are the ways a client may name the recipient. At least
// one must be non-blank.
type RecipientIdentifiers struct {
	CustomerIDOrURL string
	AccountNumber   string
	ProfileURL      string
	MobileNumber    string
}

// IsEmpty is true when every identifier is blank.
func (r RecipientIdentifiers) IsEmpty() bool {
	return strings.TrimSpace(r.CustomerIDOrURL) == "" &&
		strings.TrimSpace(r.AccountNumber) == "" &&
		strings.TrimSpace(r.ProfileURL) == "" &&
		strings.TrimSpace(r.MobileNumber) == ""
}

// TransferRequest is the transient input of a P2P transfer.
type TransferRequest struct {
	Recipient          RecipientIdentifiers
	Amount             decimal.Decimal
	Description        string
	Category           Category
	PIN                string
	SourceAccountID    string
	TransferType       TransactionType
	Priority           Priority
	ScheduledDate      *time.Time
	RecurringFrequency *RecurringFrequency
	RecurringEndDate   *time.Time
	SecurityCode       string
}

// TransferPosting is everything storage needs to apply a transfer as one unit:
// both ledger entries, the sender debit and the recipient credit.
type TransferPosting struct {
	SenderID        string
	SenderAccountID string
	RecipientID     string
	Amount          decimal.Decimal
	SenderEntry     Transaction
	RecipientEntry  Transaction
	// FallbackAccount is opened for the recipient (with Balance = Amount) when
	// they have no active account.
	FallbackAccount Account
}

// TransferReceipt reports where the recipient credit landed.
type TransferReceipt struct {
	RecipientAccountID      string
	RecipientAccountCreated bool
}

// DepositPosting credits a single account and records the matching entry.
type DepositPosting struct {
	AccountID string
	Entry     Transaction
}

// Bulk transfers carry between MinBulkTransfers and MaxBulkTransfers items.
const (
	MinBulkTransfers = 2
	MaxBulkTransfers = 50
)

// BulkTransferItem is one payee of a bulk transfer.
type BulkTransferItem struct {
	Recipient   RecipientIdentifiers
	Amount      decimal.Decimal
	Description string
	Category    Category
}

// BulkTransferRequest pays several recipients under one PIN check and one
// shared priority.
type BulkTransferRequest struct {
	Items           []BulkTransferItem
	Priority        Priority
	PIN             string
	SourceAccountID string
}

// TotalAmount sums every item amount.
func (r BulkTransferRequest) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.Amount)
	}
	return total
}

// BulkItemStatus is the outcome of a single bulk item.
type BulkItemStatus string

const (
	BulkItemCompleted BulkItemStatus = "completed"
	BulkItemFailed    BulkItemStatus = "failed"
)

// BulkTransferItemResult reports one item. TransactionID is set on success,
// Error on failure.
type BulkTransferItemResult struct {
	Recipient     string
	Amount        decimal.Decimal
	Status        BulkItemStatus
	TransactionID string
	Error         string
}

// BulkTransferResult is the outcome of a whole batch, in request order.
type BulkTransferResult struct {
	BatchID        string
	TotalAmount    decimal.Decimal
	TotalTransfers int
	Completed      int
	Failed         int
	Results        []BulkTransferItemResult
}
