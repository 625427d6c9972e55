package dto

import (
	"time"

	"github.com/SscSPs/neobank_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID      string                     `json:"transaction_id"`
	UserID             string                     `json:"user_id"`
	CounterpartyUserID string                     `json:"counterparty_user_id"`
	Amount             decimal.Decimal            `json:"amount"`
	Category           domain.Category            `json:"category"`
	Description        string                     `json:"description"`
	Status             domain.TransactionStatus   `json:"status"`
	Direction          domain.Direction           `json:"direction"`
	TransactionType    domain.TransactionType     `json:"transaction_type"`
	Priority           domain.Priority            `json:"priority"`
	ProcessingFee      decimal.Decimal            `json:"processing_fee"`
	SenderAccountID    *string                    `json:"sender_account_id,omitempty"`
	ScheduledDate      *time.Time                 `json:"scheduled_date,omitempty"`
	RecurringFrequency *domain.RecurringFrequency `json:"recurring_frequency,omitempty"`
	RecurringEndDate   *time.Time                 `json:"recurring_end_date,omitempty"`
	TransferReference  *string                    `json:"transfer_reference,omitempty"`
	BatchID            *string                    `json:"batch_id,omitempty"`
	CreatedAt          time.Time                  `json:"created_at"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:      t.TransactionID,
		UserID:             t.OwnerUserID,
		CounterpartyUserID: t.CounterpartyUserID,
		Amount:             t.Amount,
		Category:           t.Category,
		Description:        t.Description,
		Status:             t.Status,
		Direction:          t.Direction,
		TransactionType:    t.TransactionType,
		Priority:           t.Priority,
		ProcessingFee:      t.ProcessingFee,
		SenderAccountID:    t.SourceAccountID,
		ScheduledDate:      t.ScheduledDate,
		RecurringFrequency: t.RecurringFrequency,
		RecurringEndDate:   t.RecurringEndDate,
		TransferReference:  t.TransferReference,
		BatchID:            t.BatchID,
		CreatedAt:          t.CreatedAt,
	}
}

// ListTransactionsParams defines query parameters for listing ledger entries.
type ListTransactionsParams struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=20" binding:"min=1,max=100"`
}

// PaginationInfo describes the returned page.
type PaginationInfo struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ListTransactionsResponse wraps a page of entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationInfo        `json:"pagination"`
}

// ToTransactionResponses converts a slice of entries.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}

// TransferAnalyticsParams selects the analytics window.
type TransferAnalyticsParams struct {
	Period string `form:"period,default=month" binding:"oneof=week month year"`
}

// TransferAnalyticsResponse summarises the caller's entries in the window.
type TransferAnalyticsResponse struct {
	Period            string                         `json:"period"`
	TotalTransfers    int                            `json:"total_transfers"`
	TotalSent         decimal.Decimal                `json:"total_sent"`
	TotalReceived     decimal.Decimal                `json:"total_received"`
	AverageAmount     decimal.Decimal                `json:"average_amount"`
	PriorityBreakdown map[domain.Priority]int        `json:"priority_breakdown"`
	TransferTypes     map[domain.TransactionType]int `json:"transfer_types"`
}

// ToTransferAnalyticsResponse converts domain analytics.
func ToTransferAnalyticsResponse(a *domain.TransferAnalytics) TransferAnalyticsResponse {
	return TransferAnalyticsResponse{
		Period:            a.Period,
		TotalTransfers:    a.TotalTransfers,
		TotalSent:         a.TotalSent,
		TotalReceived:     a.TotalReceived,
		AverageAmount:     a.AverageAmount,
		PriorityBreakdown: a.PriorityBreakdown,
		TransferTypes:     a.TransferTypes,
	}
}
