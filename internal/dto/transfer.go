package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/neobank_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferRequest is the body of POST /transfer.
type TransferRequest struct {
	RecipientPublicID      string                     `json:"recipientPublicId" binding:"max=255"`
	RecipientAccountNumber string                     `json:"recipientAccountNumber" binding:"max=64"`
	RecipientProfileURL    string                     `json:"recipientProfileUrl" binding:"max=255"`
	RecipientMobileNumber  string                     `json:"recipientMobileNumber" binding:"max=32"`
	Amount                 decimal.Decimal            `json:"amount" binding:"required,gte=0.01"`
	Description            string                     `json:"description" binding:"max=255"`
	Category               domain.Category            `json:"category" binding:"required,category"`
	PIN                    string                     `json:"pin" binding:"required,pin"`
	SenderAccountID        string                     `json:"senderAccountId"`
	TransferType           domain.TransactionType     `json:"transferType" binding:"omitempty,oneof=instant scheduled recurring"`
	Priority               domain.Priority            `json:"priority" binding:"omitempty,oneof=low normal high urgent"`
	ScheduledDate          *time.Time                 `json:"scheduledDate"`
	RecurringFrequency     *domain.RecurringFrequency `json:"recurringFrequency" binding:"omitempty,oneof=daily weekly monthly yearly"`
	RecurringEndDate       *time.Time                 `json:"recurringEndDate"`
	SecurityCode           string                     `json:"securityCode" binding:"omitempty,min=4,max=6"`
}

// HasRecipient reports whether at least one recipient identifier is set.
func (r TransferRequest) HasRecipient() bool {
	return !r.recipient().IsEmpty()
}

func (r TransferRequest) recipient() domain.RecipientIdentifiers {
	return domain.RecipientIdentifiers{
		CustomerIDOrURL: strings.TrimSpace(r.RecipientPublicID),
		AccountNumber:   strings.TrimSpace(r.RecipientAccountNumber),
		ProfileURL:      strings.TrimSpace(r.RecipientProfileURL),
		MobileNumber:    strings.TrimSpace(r.RecipientMobileNumber),
	}
}

// ToDomain converts the request, applying the instant/normal defaults.
func (r TransferRequest) ToDomain() domain.TransferRequest {
	transferType := r.TransferType
	if transferType == "" {
		transferType = domain.TypeInstant
	}
	priority := r.Priority
	if priority == "" {
		priority = domain.PriorityNormal
	}
	return domain.TransferRequest{
		Recipient:          r.recipient(),
		Amount:             r.Amount,
		Description:        strings.TrimSpace(r.Description),
		Category:           r.Category,
		PIN:                r.PIN,
		SourceAccountID:    strings.TrimSpace(r.SenderAccountID),
		TransferType:       transferType,
		Priority:           priority,
		ScheduledDate:      r.ScheduledDate,
		RecurringFrequency: r.RecurringFrequency,
		RecurringEndDate:   r.RecurringEndDate,
		SecurityCode:       r.SecurityCode,
	}
}

// BulkTransferItemRequest is one payee of POST /bulk-transfer.
type BulkTransferItemRequest struct {
	RecipientPublicID string          `json:"recipientPublicId" binding:"required,max=255"`
	Amount            decimal.Decimal `json:"amount" binding:"required,gte=0.01"`
	Description       string          `json:"description" binding:"max=255"`
	Category          domain.Category `json:"category" binding:"omitempty,category"`
}

// BulkTransferRequest is the body of POST /bulk-transfer.
type BulkTransferRequest struct {
	Transfers       []BulkTransferItemRequest `json:"transfers" binding:"required,min=2,max=50,dive"`
	Priority        domain.Priority           `json:"priority" binding:"omitempty,oneof=low normal high urgent"`
	PIN             string                    `json:"pin" binding:"required,pin"`
	SenderAccountID string                    `json:"senderAccountId"`
}

// ToDomain converts the request, defaulting the shared priority to normal.
func (r BulkTransferRequest) ToDomain() domain.BulkTransferRequest {
	priority := r.Priority
	if priority == "" {
		priority = domain.PriorityNormal
	}
	items := make([]domain.BulkTransferItem, 0, len(r.Transfers))
	for _, t := range r.Transfers {
		items = append(items, domain.BulkTransferItem{
			Recipient:   domain.RecipientIdentifiers{CustomerIDOrURL: strings.TrimSpace(t.RecipientPublicID)},
			Amount:      t.Amount,
			Description: strings.TrimSpace(t.Description),
			Category:    t.Category,
		})
	}
	return domain.BulkTransferRequest{
		Items:           items,
		Priority:        priority,
		PIN:             r.PIN,
		SourceAccountID: strings.TrimSpace(r.SenderAccountID),
	}
}

// BulkTransferItemResponse reports one payee.
type BulkTransferItemResponse struct {
	Recipient     string                `json:"recipient"`
	Amount        decimal.Decimal       `json:"amount"`
	Status        domain.BulkItemStatus `json:"status"`
	TransactionID string                `json:"transaction_id,omitempty"`
	Error         string                `json:"error,omitempty"`
}

// BulkTransferResponse is the body returned by POST /bulk-transfer.
type BulkTransferResponse struct {
	Message        string                     `json:"message"`
	BatchID        string                     `json:"batch_id"`
	TotalAmount    decimal.Decimal            `json:"total_amount"`
	TotalTransfers int                        `json:"total_transfers"`
	Completed      int                        `json:"completed"`
	Failed         int                        `json:"failed"`
	Results        []BulkTransferItemResponse `json:"results"`
}

// ToBulkTransferResponse converts a batch outcome.
func ToBulkTransferResponse(r *domain.BulkTransferResult) BulkTransferResponse {
	results := make([]BulkTransferItemResponse, 0, len(r.Results))
	for _, item := range r.Results {
		results = append(results, BulkTransferItemResponse{
			Recipient:     item.Recipient,
			Amount:        item.Amount,
			Status:        item.Status,
			TransactionID: item.TransactionID,
			Error:         item.Error,
		})
	}
	return BulkTransferResponse{
		Message:        "Bulk transfer completed",
		BatchID:        r.BatchID,
		TotalAmount:    r.TotalAmount,
		TotalTransfers: r.TotalTransfers,
		Completed:      r.Completed,
		Failed:         r.Failed,
		Results:        results,
	}
}
