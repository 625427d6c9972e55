package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/neobank_backend/internal/apperrors"
	"github.com/SscSPs/neobank_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/neobank_backend/internal/core/ports/repositories"
	"github.com/SscSPs/neobank_backend/internal/models"
	"github.com/SscSPs/neobank_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, email, name, customer_id, public_url, phone_number, mobile, password_hash, pin_hash,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Email,
		&m.Name,
		&m.CustomerID,
		&m.PublicURL,
		&m.PhoneNumber,
		&m.Mobile,
		&m.PasswordHash,
		&m.PINHash,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

// findOldest returns the earliest-created user matching the predicate.
func (r *PgxUserRepository) findOldest(ctx context.Context, predicate string, args ...any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + predicate + ` ORDER BY created_at ASC, user_id ASC LIMIT 1;`
	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db.Exec(ctx, query,
		m.UserID,
		m.Email,
		m.Name,
		m.CustomerID,
		m.PublicURL,
		m.PhoneNumber,
		m.Mobile,
		m.PasswordHash,
		m.PINHash,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user with email %s already exists", apperrors.ErrDuplicate, m.Email)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOldest(ctx, `user_id = $1`, userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOldest(ctx, `lower(email) = lower($1)`, email)
}

func (r *PgxUserRepository) FindUserByCustomerID(ctx context.Context, customerID string) (*domain.User, error) {
	return r.findOldest(ctx, `customer_id = $1`, customerID)
}

func (r *PgxUserRepository) FindUserByProfileURL(ctx context.Context, profileURL string) (*domain.User, error) {
	return r.findOldest(ctx, `public_url = $1`, profileURL)
}

func (r *PgxUserRepository) FindUserByProfileURLFragment(ctx context.Context, fragment string) (*domain.User, error) {
	return r.findOldest(ctx, `public_url ILIKE $1 ESCAPE '\'`, containsPattern(fragment))
}

func (r *PgxUserRepository) FindUserByPhoneFragment(ctx context.Context, fragment string) (*domain.User, error) {
	return r.findOldest(ctx, `(phone_number ILIKE $1 ESCAPE '\' OR mobile ILIKE $1 ESCAPE '\')`, containsPattern(fragment))
}

func (r *PgxUserRepository) UpdatePINHash(ctx context.Context, userID string, pinHash string, now time.Time) error {
	query := `
		UPDATE users
		SET pin_hash = $2, last_updated_at = $3, last_updated_by = $1
		WHERE user_id = $1;
	`
	tag, err := r.db.Exec(ctx, query, userID, pinHash, now)
	if err != nil {
		return fmt.Errorf("failed to update PIN for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
