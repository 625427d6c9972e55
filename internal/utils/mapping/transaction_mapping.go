package mapping

import (
	"database/sql"

	"github.com/SscSPs/neobank_backend/internal/core/domain"
	"github.com/SscSPs/neobank_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID:     d.TransactionID,
		OwnerUserID:       d.OwnerUserID,
		Amount:            d.Amount,
		Category:          string(d.Category),
		Description:       d.Description,
		Status:            string(d.Status),
		Direction:         string(d.Direction),
		TransactionType:   string(d.TransactionType),
		Priority:          string(d.Priority),
		ProcessingFee:     d.ProcessingFee,
		SourceAccountID:   toNullString(d.SourceAccountID),
		ScheduledDate:     toNullTime(d.ScheduledDate),
		RecurringEndDate:  toNullTime(d.RecurringEndDate),
		TransferReference: toNullString(d.TransferReference),
		BatchID:           toNullString(d.BatchID),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
	if d.CounterpartyUserID != "" {
		m.CounterpartyUserID = sql.NullString{String: d.CounterpartyUserID, Valid: true}
	}
	if d.RecurringFrequency != nil {
		m.RecurringFrequency = sql.NullString{String: string(*d.RecurringFrequency), Valid: true}
	}
	return m
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID:      m.TransactionID,
		OwnerUserID:        m.OwnerUserID,
		CounterpartyUserID: m.CounterpartyUserID.String,
		Amount:             m.Amount,
		Category:           domain.Category(m.Category),
		Description:        m.Description,
		Status:             domain.TransactionStatus(m.Status),
		Direction:          domain.Direction(m.Direction),
		TransactionType:    domain.TransactionType(m.TransactionType),
		Priority:           domain.Priority(m.Priority),
		ProcessingFee:      m.ProcessingFee,
		SourceAccountID:    fromNullString(m.SourceAccountID),
		ScheduledDate:      fromNullTime(m.ScheduledDate),
		RecurringEndDate:   fromNullTime(m.RecurringEndDate),
		TransferReference:  fromNullString(m.TransferReference),
		BatchID:            fromNullString(m.BatchID),
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
	if m.RecurringFrequency.Valid {
		f := domain.RecurringFrequency(m.RecurringFrequency.String)
		d.RecurringFrequency = &f
	}
	return d
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
