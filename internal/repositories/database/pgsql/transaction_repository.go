package pgsql

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/neobank_backend/internal/apperrors"
	"github.com/SscSPs/neobank_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/neobank_backend/internal/core/ports/repositories"
	"github.com/SscSPs/neobank_backend/internal/middleware"
	"github.com/SscSPs/neobank_backend/internal/models"
	"github.com/SscSPs/neobank_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, owner_user_id, counterparty_user_id, amount, category, description, status,
	direction, transaction_type, priority, processing_fee, source_account_id, scheduled_date, recurring_frequency,
	recurring_end_date, transfer_reference, batch_id, created_at, created_by, last_updated_at, last_updated_by`

const insertTransactionQuery = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger entries.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.OwnerUserID,
		&m.CounterpartyUserID,
		&m.Amount,
		&m.Category,
		&m.Description,
		&m.Status,
		&m.Direction,
		&m.TransactionType,
		&m.Priority,
		&m.ProcessingFee,
		&m.SourceAccountID,
		&m.ScheduledDate,
		&m.RecurringFrequency,
		&m.RecurringEndDate,
		&m.TransferReference,
		&m.BatchID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Transaction{}, err
	}
	return mapping.ToDomainTransaction(m), nil
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

func queueInsertTransaction(batch *pgx.Batch, txn domain.Transaction) {
	m := mapping.ToModelTransaction(txn)
	batch.Queue(insertTransactionQuery,
		m.TransactionID,
		m.OwnerUserID,
		m.CounterpartyUserID,
		m.Amount,
		m.Category,
		m.Description,
		m.Status,
		m.Direction,
		m.TransactionType,
		m.Priority,
		m.ProcessingFee,
		m.SourceAccountID,
		m.ScheduledDate,
		m.RecurringFrequency,
		m.RecurringEndDate,
		m.TransferReference,
		m.BatchID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
}

func (r *PgxTransactionRepository) ListTransactionsByOwner(ctx context.Context, ownerID string, limit int, offset int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE owner_user_id = $1
		ORDER BY created_at DESC, transaction_id DESC
		LIMIT $2 OFFSET $3;
	`
	return r.queryTransactions(ctx, query, ownerID, limit, offset)
}

func (r *PgxTransactionRepository) CountTransactionsByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE owner_user_id = $1;`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions for %s: %w", ownerID, err)
	}
	return count, nil
}

func (r *PgxTransactionRepository) ListTransactionsSince(ctx context.Context, ownerID string, since time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE owner_user_id = $1 AND created_at >= $2
		ORDER BY created_at DESC, transaction_id DESC;
	`
	return r.queryTransactions(ctx, query, ownerID, since)
}

func (r *PgxTransactionRepository) UpdateTransactionCategory(ctx context.Context, transactionID string, category domain.Category, now time.Time) error {
	query := `UPDATE transactions SET category = $2, last_updated_at = $3 WHERE transaction_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, transactionID, string(category), now)
	if err != nil {
		return fmt.Errorf("failed to update category of %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveTransfer writes both ledger entries and moves the money inside one
// database transaction. The sender's funds are re-checked under row locks.
func (r *PgxTransactionRepository) SaveTransfer(ctx context.Context, posting domain.TransferPosting) (*domain.TransferReceipt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	locked, err := lockActiveAccounts(ctx, tx, []string{posting.SenderID, posting.RecipientID})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock accounts for transfer", err)
	}

	var senderAccounts, recipientAccounts []domain.Account
	for _, acc := range locked {
		if acc.OwnerID == posting.SenderID {
			senderAccounts = append(senderAccounts, acc)
		} else {
			recipientAccounts = append(recipientAccounts, acc)
		}
	}

	if domain.TotalBalance(senderAccounts).LessThan(posting.Amount) {
		return nil, fmt.Errorf("%w: combined balance no longer covers the transfer", apperrors.ErrInsufficientFunds)
	}

	sourceActive := false
	for _, acc := range senderAccounts {
		if acc.AccountID == posting.SenderAccountID {
			sourceActive = true
			break
		}
	}
	if !sourceActive {
		return nil, fmt.Errorf("%w: source account %s is not active", apperrors.ErrValidation, posting.SenderAccountID)
	}

	now := posting.SenderEntry.CreatedAt
	batch := &pgx.Batch{}
	queueInsertTransaction(batch, posting.SenderEntry)
	queueInsertTransaction(batch, posting.RecipientEntry)
	batch.Queue(adjustBalanceQuery, posting.SenderAccountID, posting.Amount.Neg(), now)

	receipt := &domain.TransferReceipt{}
	if len(recipientAccounts) > 0 {
		// Credit the recipient's oldest active account.
		sort.SliceStable(recipientAccounts, func(i, j int) bool {
			return recipientAccounts[i].CreatedAt.Before(recipientAccounts[j].CreatedAt)
		})
		receipt.RecipientAccountID = recipientAccounts[0].AccountID
		batch.Queue(adjustBalanceQuery, receipt.RecipientAccountID, posting.Amount, now)
	} else {
		fallback := posting.FallbackAccount
		if err := insertAccount(ctx, tx, fallback); err != nil {
			return nil, apperrors.NewAppError(500, "failed to open recipient account", err)
		}
		receipt.RecipientAccountID = fallback.AccountID
		receipt.RecipientAccountCreated = true
		logger.Info("Opened default account for transfer recipient", slog.String("recipient_id", posting.RecipientID), slog.String("account_id", fallback.AccountID))
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to execute transfer batch", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return receipt, nil
}

// SaveDeposit credits the account and records the entry in one database transaction.
func (r *PgxTransactionRepository) SaveDeposit(ctx context.Context, deposit domain.DepositPosting) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, adjustBalanceQuery, deposit.AccountID, deposit.Entry.Amount, deposit.Entry.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to credit account "+deposit.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	batch := &pgx.Batch{}
	queueInsertTransaction(batch, deposit.Entry)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert deposit entry", err)
	}

	return r.Commit(ctx, tx)
}
