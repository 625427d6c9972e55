package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/neobank_backend/internal/apperrors"
	"github.com/SscSPs/neobank_backend/internal/core/domain"
)

// oldestUser returns the earliest-created user accepted by match. Insertion
// order breaks ties. Caller holds the lock.
func (s *Store) oldestUser(match func(domain.User) bool) (*domain.User, error) {
	var found *domain.User
	for _, id := range s.userSeq {
		u := s.users[id]
		if !match(u) {
			continue
		}
		if found == nil || u.CreatedAt.Before(found.CreatedAt) {
			u := u
			found = &u
		}
	}
	if found == nil {
		return nil, apperrors.ErrNotFound
	}
	return found, nil
}

func (s *Store) findUser(match func(domain.User) bool) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.oldestUser(match)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (s *Store) SaveUser(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.UserID]; exists {
		return fmt.Errorf("%w: user %s already exists", apperrors.ErrDuplicate, user.UserID)
	}
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return fmt.Errorf("%w: user with email %s already exists", apperrors.ErrDuplicate, user.Email)
		}
	}
	s.users[user.UserID] = user
	s.userSeq = append(s.userSeq, user.UserID)
	return nil
}

func (s *Store) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	return s.findUser(func(u domain.User) bool { return u.UserID == userID })
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	return s.findUser(func(u domain.User) bool { return strings.EqualFold(u.Email, email) })
}

func (s *Store) FindUserByCustomerID(_ context.Context, customerID string) (*domain.User, error) {
	return s.findUser(func(u domain.User) bool { return u.CustomerID == customerID })
}

func (s *Store) FindUserByProfileURL(_ context.Context, profileURL string) (*domain.User, error) {
	return s.findUser(func(u domain.User) bool { return u.PublicURL == profileURL })
}

func (s *Store) FindUserByProfileURLFragment(_ context.Context, fragment string) (*domain.User, error) {
	return s.findUser(func(u domain.User) bool { return containsFold(u.PublicURL, fragment) })
}

func (s *Store) FindUserByPhoneFragment(_ context.Context, fragment string) (*domain.User, error) {
	return s.findUser(func(u domain.User) bool {
		return (u.PhoneNumber != nil && containsFold(*u.PhoneNumber, fragment)) ||
			(u.Mobile != nil && containsFold(*u.Mobile, fragment))
	})
}

func (s *Store) UpdatePINHash(_ context.Context, userID string, pinHash string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.PINHash = &pinHash
	u.Touch(userID, now)
	s.users[userID] = u
	return nil
}
