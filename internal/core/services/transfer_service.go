package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/SscSPs/neobank_backend/internal/apperrors"
	"github.com/SscSPs/neobank_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/neobank_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/neobank_backend/internal/core/ports/services"
	"github.com/SscSPs/neobank_backend/internal/utils"
	"github.com/SscSPs/neobank_backend/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxDescriptionLen = 255

type transferService struct {
	BaseService
	userService    portssvc.UserSvcFacade
	resolver       portssvc.RecipientResolverSvc
	accountService portssvc.AccountSvcFacade
	ledger         portsrepo.LedgerPoster
}

// NewTransferService creates the transfer orchestrator.
func NewTransferService(
	userService portssvc.UserSvcFacade,
	resolver portssvc.RecipientResolverSvc,
	accountService portssvc.AccountSvcFacade,
	ledger portsrepo.LedgerPoster,
	clock Clock,
) portssvc.TransferSvcFacade {
	return &transferService{
		BaseService:    BaseService{Clock: clock},
		userService:    userService,
		resolver:       resolver,
		accountService: accountService,
		ledger:         ledger,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

func (s *transferService) stage(ctx context.Context, stage domain.TransferStage, keyvals ...any) {
	s.LogDebug(ctx, "Transfer stage", append([]any{slog.String("stage", string(stage))}, keyvals...)...)
}

func (s *transferService) fail(ctx context.Context, err error, keyvals ...any) error {
	s.GetLogger(ctx).Warn("Transfer failed", append([]any{
		slog.String("stage", string(domain.StageFailed)),
		slog.String("error", err.Error()),
	}, keyvals...)...)
	return err
}

// normalizeTransfer applies defaults and re-checks the request shape.
func normalizeTransfer(req domain.TransferRequest) (domain.TransferRequest, error) {
	if !req.Amount.IsPositive() {
		return req, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}
	req.Category = domain.Category(strings.TrimSpace(string(req.Category)))
	if !req.Category.IsValid() {
		return req, fmt.Errorf("%w: invalid category %q", apperrors.ErrValidation, req.Category)
	}
	if !pinPattern.MatchString(req.PIN) {
		return req, fmt.Errorf("%w: PIN must be exactly 4 digits", apperrors.ErrValidation)
	}
	if req.Recipient.IsEmpty() {
		return req, fmt.Errorf("%w: recipient identifier is required", apperrors.ErrValidation)
	}
	if req.Priority == "" {
		req.Priority = domain.PriorityNormal
	}
	if !req.Priority.IsValid() {
		return req, fmt.Errorf("%w: invalid priority %q", apperrors.ErrValidation, req.Priority)
	}
	if req.TransferType == "" {
		req.TransferType = domain.TypeInstant
	}
	if !req.TransferType.IsTransferType() {
		return req, fmt.Errorf("%w: invalid transfer type %q", apperrors.ErrValidation, req.TransferType)
	}
	if req.RecurringFrequency != nil && !req.RecurringFrequency.IsValid() {
		return req, fmt.Errorf("%w: invalid recurring frequency %q", apperrors.ErrValidation, *req.RecurringFrequency)
	}
	req.Description = strings.TrimSpace(req.Description)
	if utf8.RuneCountInString(req.Description) > maxDescriptionLen {
		return req, fmt.Errorf("%w: description exceeds %d characters", apperrors.ErrValidation, maxDescriptionLen)
	}
	if n := len(req.SecurityCode); req.SecurityCode != "" && (n < 4 || n > 6) {
		return req, fmt.Errorf("%w: security code must be 4 to 6 characters", apperrors.ErrValidation)
	}
	return req, nil
}

func transferStatus(t domain.TransactionType) domain.TransactionStatus {
	switch t {
	case domain.TypeScheduled:
		return domain.StatusScheduled
	case domain.TypeRecurring:
		return domain.StatusRecurring
	default:
		return domain.StatusCompleted
	}
}

func (s *transferService) Transfer(ctx context.Context, requesterID string, req domain.TransferRequest) (*domain.Transaction, error) {
	req, err := normalizeTransfer(req)
	if err != nil {
		return nil, s.fail(ctx, err, slog.String("user_id", requesterID))
	}
	s.stage(ctx, domain.StageValidated, slog.String("amount", req.Amount.String()))

	// The PIN gate comes before anything that could reveal who the recipient is.
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

	recipient, err := s.resolver.Resolve(ctx, req.Recipient)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	if recipient.UserID == sender.UserID {
		return nil, s.fail(ctx, fmt.Errorf("%w: Cannot transfer to yourself", apperrors.ErrValidation))
	}
	s.stage(ctx, domain.StageRecipientResolved, slog.String("recipient_id", recipient.UserID))

	accounts, err := s.accountService.ListActiveAccounts(ctx, sender.UserID)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	if len(accounts) == 0 {
		return nil, s.fail(ctx, fmt.Errorf("%w: No active bank accounts found", apperrors.ErrValidation))
	}
	available := domain.TotalBalance(accounts)
	if available.LessThan(req.Amount) {
		return nil, s.fail(ctx, fmt.Errorf("%w: available %s, requested %s", apperrors.ErrInsufficientFunds, available.String(), req.Amount.String()))
	}
	s.stage(ctx, domain.StageFundsChecked, slog.String("available", available.String()))

	fee := accounting.ProcessingFee(req.Amount, req.Priority)
	s.stage(ctx, domain.StageFeeComputed, slog.String("fee", fee.String()))

	sourceAccount := selectSourceAccount(accounts, req.SourceAccountID)

	posting, err := s.buildPosting(sender, recipient, sourceAccount, req, fee, nil)
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	receipt, err := s.ledger.SaveTransfer(ctx, posting)
	if err != nil {
		return nil, s.fail(ctx, err, slog.String("reference", *posting.SenderEntry.TransferReference))
	}
	s.stage(ctx, domain.StageRecorded,
		slog.String("sender_txn", posting.SenderEntry.TransactionID),
		slog.String("recipient_txn", posting.RecipientEntry.TransactionID))
	s.stage(ctx, domain.StageBalancesAdjusted,
		slog.String("debited_account", sourceAccount.AccountID),
		slog.String("credited_account", receipt.RecipientAccountID),
		slog.Bool("account_opened", receipt.RecipientAccountCreated))

	s.LogInfo(ctx, "Transfer completed",
		slog.String("stage", string(domain.StageCompleted)),
		slog.String("sender_id", sender.UserID),
		slog.String("recipient_id", recipient.UserID),
		slog.String("amount", req.Amount.String()),
		slog.String("reference", *posting.SenderEntry.TransferReference))

	return &posting.SenderEntry, nil
}

// selectSourceAccount returns the requested account when it is among the
// active ones, otherwise the first.
func selectSourceAccount(accounts []domain.Account, requestedID string) domain.Account {
	for _, acc := range accounts {
		if requestedID != "" && acc.AccountID == requestedID {
			return acc
		}
	}
	return accounts[0]
}

// buildPosting assembles both entries of a transfer. A non-nil batchID tags
// both entries as part of a bulk transfer.
func (s *transferService) buildPosting(sender, recipient *domain.User, source domain.Account, req domain.TransferRequest, fee decimal.Decimal, batchID *string) (domain.TransferPosting, error) {
	senderTxnID, err := utils.NewTransactionID()
	if err != nil {
		return domain.TransferPosting{}, apperrors.NewAppError(500, "failed to generate transaction ID", err)
	}
	recipientTxnID, err := utils.NewTransactionID()
	if err != nil {
		return domain.TransferPosting{}, apperrors.NewAppError(500, "failed to generate transaction ID", err)
	}
	accountNumber, err := utils.NewMaskedAccountNumber()
	if err != nil {
		return domain.TransferPosting{}, apperrors.NewAppError(500, "failed to generate account number", err)
	}

	now := s.Now()
	reference := uuid.NewString()
	sourceID := source.AccountID

	description := req.Description
	if description == "" {
		description = "Transfer to " + recipient.DisplayName()
	}

	senderEntry := domain.Transaction{
		TransactionID:      senderTxnID,
		OwnerUserID:        sender.UserID,
		CounterpartyUserID: recipient.UserID,
		Amount:             req.Amount,
		Category:           req.Category,
		Description:        description,
		Status:             transferStatus(req.TransferType),
		Direction:          domain.DirectionSent,
		TransactionType:    req.TransferType,
		Priority:           req.Priority,
		ProcessingFee:      fee,
		SourceAccountID:    &sourceID,
		ScheduledDate:      req.ScheduledDate,
		RecurringFrequency: req.RecurringFrequency,
		RecurringEndDate:   req.RecurringEndDate,
		TransferReference:  &reference,
		BatchID:            batchID,
		AuditFields:        domain.NewAuditFields(sender.UserID, now),
	}

	recipientEntry := domain.Transaction{
		TransactionID:      recipientTxnID,
		OwnerUserID:        recipient.UserID,
		CounterpartyUserID: sender.UserID,
		Amount:             req.Amount,
		Category:           domain.CategoryTransfers,
		Description:        "Payment from " + sender.DisplayName(),
		Status:             domain.StatusCompleted,
		Direction:          domain.DirectionReceived,
		TransactionType:    domain.TypeDeposit,
		Priority:           req.Priority,
		ProcessingFee:      decimal.Zero,
		TransferReference:  &reference,
		BatchID:            batchID,
		AuditFields:        domain.NewAuditFields(sender.UserID, now),
	}

	if err := accounting.ValidateTransferBalance(senderEntry, recipientEntry); err != nil {
		return domain.TransferPosting{}, apperrors.NewAppError(500, "transfer entries failed the dual-entry check", err)
	}

	return domain.TransferPosting{
		SenderID:        sender.UserID,
		SenderAccountID: source.AccountID,
		RecipientID:     recipient.UserID,
		Amount:          req.Amount,
		SenderEntry:     senderEntry,
		RecipientEntry:  recipientEntry,
		FallbackAccount: domain.Account{
			AccountID:     uuid.NewString(),
			OwnerID:       recipient.UserID,
			BankName:      domain.DefaultAccountName,
			Institution:   domain.DefaultAccountInstitution,
			AccountNumber: accountNumber,
			AccountType:   domain.Checking,
			Balance:       req.Amount,
			IsActive:      true,
			AuditFields:   domain.NewAuditFields(recipient.UserID, now),
		},
	}, nil
}
