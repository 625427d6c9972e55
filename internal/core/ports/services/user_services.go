package services

import (
	"context"

	"github.com/SscSPs/neobank_backend/internal/core/domain"
	"github.com/SscSPs/neobank_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// FindUserByID retrieves a user by ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// Register creates a customer profile with generated customer ID and profile URL.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// SetPIN stores a bcrypt hash of a 4-digit transaction PIN.
	SetPIN(ctx context.Context, userID string, pin string) error
}

// UserAuthSvc defines credential checks
type UserAuthSvc interface {
	// VerifyPassword authenticates a user with email and password.
	VerifyPassword(ctx context.Context, email, password string) (*domain.User, error)

	// VerifyPIN reports whether pin matches the stored PIN hash. An unset PIN never matches.
	VerifyPIN(ctx context.Context, userID string, pin string) (bool, error)
}

// UserSvcFacade is the Identity Provider.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}

// TokenSvcFacade issues access tokens.
type TokenSvcFacade interface {
	// Login verifies credentials and returns a signed access token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
