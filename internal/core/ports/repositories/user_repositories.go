package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/neobank_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their (lower-cased) email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserLocator finds users by the public identifiers a payer may know. Each
// method returns the oldest match, or apperrors.ErrNotFound.
type UserLocator interface {
	// FindUserByCustomerID matches the customer ID exactly.
	FindUserByCustomerID(ctx context.Context, customerID string) (*domain.User, error)

	// FindUserByProfileURL matches the stored profile URL exactly.
	FindUserByProfileURL(ctx context.Context, profileURL string) (*domain.User, error)

	// FindUserByProfileURLFragment matches when fragment is a case-insensitive
	// substring of the stored profile URL.
	FindUserByProfileURLFragment(ctx context.Context, fragment string) (*domain.User, error)

	// FindUserByPhoneFragment matches when fragment is a case-insensitive
	// substring of the phone number or mobile.
	FindUserByPhoneFragment(ctx context.Context, fragment string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdatePINHash replaces the user's transaction PIN hash.
	UpdatePINHash(ctx context.Context, userID string, pinHash string, now time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserLocator
	UserWriter
}
