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
)

var mobileNoise = regexp.MustCompile(`[\s\-\(\)\+]`)

// resolveStrategy tries one kind of identifier. A blank identifier is a miss.
type resolveStrategy struct {
	name string
	find func(ctx context.Context, ids domain.RecipientIdentifiers) (*domain.User, error)
}

type recipientResolver struct {
	BaseService
	userRepo    portsrepo.UserRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade

	transferChain []resolveStrategy
	lookupChain   []resolveStrategy
}

// NewRecipientResolver builds the resolver with its two strategy chains.
func NewRecipientResolver(userRepo portsrepo.UserRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.RecipientResolverSvc {
	r := &recipientResolver{userRepo: userRepo, accountRepo: accountRepo}
	byAccount := resolveStrategy{"account_number", r.byAccountNumber}
	byProfile := resolveStrategy{"profile_url", r.byProfileURL}
	byCustomer := resolveStrategy{"customer_id", r.byCustomerIDOrURL}
	byMobile := resolveStrategy{"mobile", r.byMobile}

	r.transferChain = []resolveStrategy{byAccount, byProfile, byCustomer, byMobile}
	r.lookupChain = []resolveStrategy{byCustomer, byMobile, byAccount}
	return r
}

var _ portssvc.RecipientResolverSvc = (*recipientResolver)(nil)

func (r *recipientResolver) Resolve(ctx context.Context, ids domain.RecipientIdentifiers) (*domain.User, error) {
	if ids.IsEmpty() {
		return nil, fmt.Errorf("%w: recipient identifier is required", apperrors.ErrValidation)
	}
	return r.run(ctx, r.transferChain, ids)
}

func (r *recipientResolver) Lookup(ctx context.Context, identifier string) (*domain.RecipientProfile, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, fmt.Errorf("%w: identifier is required", apperrors.ErrValidation)
	}
	user, err := r.run(ctx, r.lookupChain, domain.RecipientIdentifiers{
		CustomerIDOrURL: identifier,
		MobileNumber:    identifier,
		AccountNumber:   identifier,
	})
	if err != nil {
		return nil, err
	}

	profile := &domain.RecipientProfile{User: *user}
	accounts, err := r.accountRepo.ListActiveAccountsByOwner(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	if len(accounts) > 0 {
		profile.PrimaryAccountNumber = accounts[0].AccountNumber
	}
	return profile, nil
}

func (r *recipientResolver) run(ctx context.Context, chain []resolveStrategy, ids domain.RecipientIdentifiers) (*domain.User, error) {
	for _, strategy := range chain {
		user, err := strategy.find(ctx, ids)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			r.LogError(ctx, err, "Recipient lookup failed", slog.String("strategy", strategy.name))
			return nil, err
		}
		if user != nil {
			r.LogDebug(ctx, "Recipient resolved", slog.String("strategy", strategy.name), slog.String("recipient_id", user.UserID))
			return user, nil
		}
	}
	return nil, fmt.Errorf("%w: Recipient not found", apperrors.ErrNotFound)
}

func (r *recipientResolver) byAccountNumber(ctx context.Context, ids domain.RecipientIdentifiers) (*domain.User, error) {
	number := strings.TrimSpace(ids.AccountNumber)
	if number == "" {
		return nil, nil
	}
	acc, err := r.accountRepo.FindActiveAccountByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return r.userRepo.FindUserByID(ctx, acc.OwnerID)
}

func (r *recipientResolver) byProfileURL(ctx context.Context, ids domain.RecipientIdentifiers) (*domain.User, error) {
	profileURL := strings.TrimSpace(ids.ProfileURL)
	if profileURL == "" {
		return nil, nil
	}
	user, err := r.userRepo.FindUserByProfileURL(ctx, profileURL)
	if err == nil || !errors.Is(err, apperrors.ErrNotFound) {
		return user, err
	}
	tail := lastPathSegment(profileURL)
	if tail == "" {
		return nil, nil
	}
	return r.userRepo.FindUserByProfileURLFragment(ctx, tail)
}

func (r *recipientResolver) byCustomerIDOrURL(ctx context.Context, ids domain.RecipientIdentifiers) (*domain.User, error) {
	token := strings.TrimSpace(ids.CustomerIDOrURL)
	if token == "" {
		return nil, nil
	}
	user, err := r.userRepo.FindUserByCustomerID(ctx, token)
	if err == nil || !errors.Is(err, apperrors.ErrNotFound) {
		return user, err
	}
	return r.userRepo.FindUserByProfileURLFragment(ctx, token)
}

func (r *recipientResolver) byMobile(ctx context.Context, ids domain.RecipientIdentifiers) (*domain.User, error) {
	cleaned := CleanMobileNumber(ids.MobileNumber)
	if cleaned == "" {
		return nil, nil
	}
	return r.userRepo.FindUserByPhoneFragment(ctx, cleaned)
}

// CleanMobileNumber strips whitespace, dashes, parentheses and plus signs.
func CleanMobileNumber(s string) string {
	return mobileNoise.ReplaceAllString(s, "")
}

// lastPathSegment returns the last non-empty "/"-separated segment.
func lastPathSegment(s string) string {
	parts := strings.Split(s, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if p := strings.TrimSpace(parts[i]); p != "" {
			return p
		}
	}
	return ""
}
