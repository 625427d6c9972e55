package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/neobank_backend/internal/apperrors"
	"github.com/SscSPs/neobank_backend/internal/core/domain"
	"github.com/SscSPs/neobank_backend/internal/utils"
	"github.com/SscSPs/neobank_backend/internal/utils/accounting"
)

const defaultBulkDescription = "Bulk transfer"

// normalizeBulkTransfer checks the batch shape and normalizes every item
// through the single-transfer rules. One bad item rejects the batch.
func normalizeBulkTransfer(req domain.BulkTransferRequest) ([]domain.TransferRequest, error) {
	if n := len(req.Items); n < domain.MinBulkTransfers || n > domain.MaxBulkTransfers {
		return nil, fmt.Errorf("%w: bulk transfer needs %d to %d transfers, got %d",
			apperrors.ErrValidation, domain.MinBulkTransfers, domain.MaxBulkTransfers, n)
	}

	items := make([]domain.TransferRequest, 0, len(req.Items))
	for i, item := range req.Items {
		category := item.Category
		if category == "" {
			category = domain.CategoryTransfers
		}
		description := item.Description
		if description == "" {
			description = defaultBulkDescription
		}
		normalized, err := normalizeTransfer(domain.TransferRequest{
			Recipient:       item.Recipient,
			Amount:          item.Amount,
			Description:     description,
			Category:        category,
			PIN:             req.PIN,
			SourceAccountID: req.SourceAccountID,
			TransferType:    domain.TypeInstant,
			Priority:        req.Priority,
		})
		if err != nil {
			return nil, fmt.Errorf("transfer %d: %w", i+1, err)
		}
		items = append(items, normalized)
	}
	return items, nil
}

// recipientLabel names an item's recipient for the result list.
func recipientLabel(ids domain.RecipientIdentifiers) string {
	for _, v := range []string{ids.CustomerIDOrURL, ids.AccountNumber, ids.ProfileURL, ids.MobileNumber} {
		if v != "" {
			return v
		}
	}
	return ""
}

// bulkItemError is the client-safe reason an item failed.
func bulkItemError(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return "Recipient not found"
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		return "Insufficient balance"
	case errors.Is(err, apperrors.ErrValidation):
		return "Invalid transfer"
	default:
		return "Transfer failed"
	}
}

func (s *transferService) BulkTransfer(ctx context.Context, requesterID string, req domain.BulkTransferRequest) (*domain.BulkTransferResult, error) {
	items, err := normalizeBulkTransfer(req)
	if err != nil {
		return nil, s.fail(ctx, err, slog.String("user_id", requesterID))
	}
	total := req.TotalAmount()
	s.stage(ctx, domain.StageValidated, slog.Int("transfers", len(items)), slog.String("total", total.String()))

	sender, err := s.userService.FindUserByID(ctx, requesterID)
	if err != nil {
		return nil, s.fail(ctx, err, slog.String("user_id", requesterID))
	}
	ok, err := s.userService.VerifyPIN(ctx, requesterID, req.PIN)
	if err != nil {
		return nil, s.fail(ctx, err, slog.String("user_id", requesterID))
	}
	if !ok {
		return nil, s.fail(ctx, fmt.Errorf("%w: Invalid PIN", apperrors.ErrUnauthorized), slog.String("user_id", requesterID))
	}
	s.stage(ctx, domain.StagePinVerified)

	accounts, err := s.accountService.ListActiveAccounts(ctx, sender.UserID)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	if len(accounts) == 0 {
		return nil, s.fail(ctx, fmt.Errorf("%w: No active bank accounts found", apperrors.ErrValidation))
	}
	available := domain.TotalBalance(accounts)
	if available.LessThan(total) {
		return nil, s.fail(ctx, fmt.Errorf("%w: Insufficient funds for bulk transfer (available %s, requested %s)",
			apperrors.ErrInsufficientFunds, available.String(), total.String()))
	}
	s.stage(ctx, domain.StageFundsChecked, slog.String("available", available.String()))

	batchID, err := utils.NewBatchID()
	if err != nil {
		return nil, s.fail(ctx, apperrors.NewAppError(500, "failed to generate batch ID", err))
	}
	sourceAccount := selectSourceAccount(accounts, req.SourceAccountID)

	result := &domain.BulkTransferResult{
		BatchID:        batchID,
		TotalAmount:    total,
		TotalTransfers: len(items),
		Results:        make([]domain.BulkTransferItemResult, 0, len(items)),
	}
	for _, item := range items {
		itemResult := s.bulkItem(ctx, sender, sourceAccount, item, batchID)
		if itemResult.Status == domain.BulkItemCompleted {
			result.Completed++
		} else {
			result.Failed++
		}
		result.Results = append(result.Results, itemResult)
	}

	s.LogInfo(ctx, "Bulk transfer completed",
		slog.String("stage", string(domain.StageCompleted)),
		slog.String("sender_id", sender.UserID),
		slog.String("batch_id", batchID),
		slog.Int("completed", result.Completed),
		slog.Int("failed", result.Failed))

	return result, nil
}

// bulkItem pays a single item. Each item is its own atomic posting, so an
// earlier success stays recorded when a later item fails.
func (s *transferService) bulkItem(ctx context.Context, sender *domain.User, source domain.Account, item domain.TransferRequest, batchID string) domain.BulkTransferItemResult {
	res := domain.BulkTransferItemResult{
		Recipient: recipientLabel(item.Recipient),
		Amount:    item.Amount,
		Status:    domain.BulkItemFailed,
	}
	failed := func(err error) domain.BulkTransferItemResult {
		s.GetLogger(ctx).Warn("Bulk transfer item failed",
			slog.String("batch_id", batchID),
			slog.String("recipient", res.Recipient),
			slog.String("error", err.Error()))
		res.Error = bulkItemError(err)
		return res
	}

	recipient, err := s.resolver.Resolve(ctx, item.Recipient)
	if err != nil {
		return failed(err)
	}
	if recipient.UserID == sender.UserID {
		res.Error = "Cannot transfer to yourself"
		return res
	}
	res.Recipient = recipient.DisplayName()

	fee := accounting.ProcessingFee(item.Amount, item.Priority)
	posting, err := s.buildPosting(sender, recipient, source, item, fee, &batchID)
	if err != nil {
		return failed(err)
	}
	if _, err := s.ledger.SaveTransfer(ctx, posting); err != nil {
		return failed(err)
	}
	s.stage(ctx, domain.StageRecorded,
		slog.String("batch_id", batchID),
		slog.String("sender_txn", posting.SenderEntry.TransactionID),
		slog.String("recipient_txn", posting.RecipientEntry.TransactionID))

	res.Status = domain.BulkItemCompleted
	res.TransactionID = posting.SenderEntry.TransactionID
	return res
}
