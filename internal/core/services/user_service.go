package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/SscSPs/neobank_backend/internal/apperrors"
	"github.com/SscSPs/neobank_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/neobank_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/neobank_backend/internal/core/ports/services"
	"github.com/SscSPs/neobank_backend/internal/dto"
	"github.com/SscSPs/neobank_backend/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

type userService struct {
	BaseService
	userRepo   portsrepo.UserRepositoryFacade
	bcryptCost int
}

// UserServiceOption configures the user service
type UserServiceOption func(*userService)

// WithBcryptCost sets the cost used for password and PIN hashes.
func WithBcryptCost(cost int) UserServiceOption {
	return func(s *userService) {
		s.bcryptCost = cost
	}
}

// WithUserClock overrides the clock used for audit timestamps.
func WithUserClock(clock Clock) UserServiceOption {
	return func(s *userService) {
		s.Clock = clock
	}
}

// NewUserService creates the identity provider.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, options ...UserServiceOption) portssvc.UserSvcFacade {
	svc := &userService{
		userRepo:   userRepo,
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
		}
		s.LogError(ctx, err, "Failed to load user", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing email")
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email is already registered", apperrors.ErrDuplicate)
	}

	customerID, err := utils.NewCustomerID()
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to generate customer ID", err)
	}
	profileURL, err := utils.NewProfileURL()
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to generate profile URL", err)
	}
	hash, err := utils.HashSecret(req.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	now := s.Now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Email:        email,
		Name:         name,
		CustomerID:   customerID,
		PublicURL:    profileURL,
		PhoneNumber:  trimmedOrNil(req.PhoneNumber),
		Mobile:       trimmedOrNil(req.Mobile),
		PasswordHash: hash,
		AuditFields: domain.NewAuditFields(userID, now),
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("email", email))
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", userID), slog.String("customer_id", customerID))
	return &user, nil
}

func (s *userService) SetPIN(ctx context.Context, userID string, pin string) error {
	if !pinPattern.MatchString(pin) {
		return fmt.Errorf("%w: PIN must be exactly 4 digits", apperrors.ErrValidation)
	}
	hash, err := utils.HashSecret(pin, s.bcryptCost)
	if err != nil {
		return apperrors.NewAppError(500, "failed to hash PIN", err)
	}
	if err := s.userRepo.UpdatePINHash(ctx, userID, hash, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to store PIN", slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "Transaction PIN updated", slog.String("user_id", userID))
	return nil
}

func (s *userService) VerifyPassword(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}
	return user, nil
}

func (s *userService) VerifyPIN(ctx context.Context, userID string, pin string) (bool, error) {
	user, err := s.FindUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if !user.HasPIN() {
		return false, nil
	}
	return utils.CheckPasswordHash(pin, *user.PINHash), nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
