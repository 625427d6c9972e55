package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies what a transaction was spent on.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTravel        Category = "Travel"
	CategoryBills         Category = "Bills"
	CategoryShopping      Category = "Shopping"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealth        Category = "Health"
	CategoryTransfers     Category = "Transfers"
	CategoryEducation     Category = "Education"
	CategoryGrocery       Category = "Grocery"
	CategoryRent          Category = "Rent"
	CategoryEMI           Category = "EMI"
	CategoryUtilities     Category = "Utilities"
	CategoryIncome        Category = "Income"
	CategoryOther         Category = "Other"
)

// Categories lists every accepted category in declaration order.
var Categories = []Category{
	CategoryFood, CategoryTravel, CategoryBills, CategoryShopping, CategoryEntertainment,
	CategoryHealth, CategoryTransfers, CategoryEducation, CategoryGrocery, CategoryRent,
	CategoryEMI, CategoryUtilities, CategoryIncome, CategoryOther,
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// IsExplicit is true for a non-blank category other than Other.
func (c Category) IsExplicit() bool {
	return strings.TrimSpace(string(c)) != "" && c != CategoryOther
}

// TransactionStatus is the lifecycle status stored on a ledger entry.
type TransactionStatus string

const (
	StatusPending    TransactionStatus = "pending"
	StatusCompleted  TransactionStatus = "completed"
	StatusFailed     TransactionStatus = "failed"
	StatusCancelled  TransactionStatus = "cancelled"
	StatusScheduled  TransactionStatus = "scheduled"
	StatusRecurring  TransactionStatus = "recurring"
	StatusProcessing TransactionStatus = "processing"
)

// Direction marks an entry as money leaving or entering the owner's accounts.
type Direction string

const (
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
)

// TransactionType describes how a ledger entry came about.
type TransactionType string

const (
	TypeInstant    TransactionType = "instant"
	TypeScheduled  TransactionType = "scheduled"
	TypeRecurring  TransactionType = "recurring"
	TypeDeposit    TransactionType = "deposit"
	TypeWithdrawal TransactionType = "withdrawal"
	TypeTransfer   TransactionType = "transfer"
)

// IsTransferType is true for the types a client may request for a P2P transfer.
func (t TransactionType) IsTransferType() bool {
	return t == TypeInstant || t == TypeScheduled || t == TypeRecurring
}

// Priority of a transfer; drives the processing fee.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// RecurringFrequency for recurring transfers.
type RecurringFrequency string

const (
	FrequencyDaily   RecurringFrequency = "daily"
	FrequencyWeekly  RecurringFrequency = "weekly"
	FrequencyMonthly RecurringFrequency = "monthly"
	FrequencyYearly  RecurringFrequency = "yearly"
)

// IsValid reports whether f is a known frequency.
func (f RecurringFrequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Transaction is one ledger entry, owned by a single user. A P2P transfer
// produces two of them linked by TransferReference.
type Transaction struct {
	TransactionID      string              `json:"transactionID"` // TXN_XXXXXXXXXXXX
	OwnerUserID        string              `json:"ownerUserID"`
	CounterpartyUserID string              `json:"counterpartyUserID"`
	Amount             decimal.Decimal     `json:"amount"`
	Category           Category            `json:"category"`
	Description        string              `json:"description"`
	Status             TransactionStatus   `json:"status"`
	Direction          Direction           `json:"direction"`
	TransactionType    TransactionType     `json:"transactionType"`
	Priority           Priority            `json:"priority"`
	ProcessingFee      decimal.Decimal     `json:"processingFee"`
	SourceAccountID    *string             `json:"sourceAccountID,omitempty"`
	ScheduledDate      *time.Time          `json:"scheduledDate,omitempty"`
	RecurringFrequency *RecurringFrequency `json:"recurringFrequency,omitempty"`
	RecurringEndDate   *time.Time          `json:"recurringEndDate,omitempty"`
	TransferReference  *string             `json:"transferReference,omitempty"`
	BatchID            *string             `json:"batchID,omitempty"` // BATCH_XXXXXXXXXXXX for bulk transfers
	AuditFields
}

// Validate checks the invariants every stored ledger entry must satisfy.
func (t Transaction) Validate() error {
	if t.TransactionID == "" {
		return fmt.Errorf("transaction ID is required")
	}
	if t.OwnerUserID == "" {
		return fmt.Errorf("owner user ID is required")
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	if t.ProcessingFee.IsNegative() {
		return fmt.Errorf("processing fee cannot be negative")
	}
	if t.Direction != DirectionSent && t.Direction != DirectionReceived {
		return fmt.Errorf("direction must be sent or received")
	}
	if t.Category != "" && !t.Category.IsValid() {
		return fmt.Errorf("unknown category %q", t.Category)
	}
	return nil
}

// TransferAnalytics summarises a user's ledger entries over a period.
type TransferAnalytics struct {
	Period            string
	TotalTransfers    int
	TotalSent         decimal.Decimal
	TotalReceived     decimal.Decimal
	AverageAmount     decimal.Decimal
	PriorityBreakdown map[Priority]int
	TransferTypes     map[TransactionType]int
}
