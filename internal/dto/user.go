package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/neobank_backend/internal/core/domain"
)

// RegisterRequest defines the data needed to open a customer profile.
type RegisterRequest struct {
	Email           string  `json:"email" binding:"required,email"`
	Password        string  `json:"password" binding:"required,min=6"`
	ConfirmPassword string  `json:"confirmPassword" binding:"required,eqfield=Password"`
	Name            string  `json:"name" binding:"max=100"`
	PhoneNumber     *string `json:"phoneNumber" binding:"omitempty,max=20"`
	Mobile          *string `json:"mobile" binding:"omitempty,max=20"`
}

// SetPINRequest sets or replaces the transaction PIN.
type SetPINRequest struct {
	PIN string `json:"pin" binding:"required,pin"`
}

// UserResponse defines the data returned for the authenticated user.
type UserResponse struct {
	UserID      string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	CustomerID  string    `json:"customer_id"`
	PublicURL   string    `json:"public_url"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	Mobile      *string   `json:"mobile,omitempty"`
	HasPIN      bool      `json:"has_pin"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:      user.UserID,
		Email:       user.Email,
		Name:        user.Name,
		CustomerID:  user.CustomerID,
		PublicURL:   user.PublicURL,
		PhoneNumber: user.PhoneNumber,
		Mobile:      user.Mobile,
		HasPIN:      user.HasPIN(),
		CreatedAt:   user.CreatedAt,
	}
}

// PublicProfileResponse is what a payer sees when looking up a recipient.
type PublicProfileResponse struct {
	UserID        string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	CustomerID    string  `json:"customer_id"`
	PublicID      string  `json:"public_id"`
	PublicURL     string  `json:"public_url"`
	ProfileURL    string  `json:"profile_url"`
	AccountNumber string  `json:"account_number,omitempty"`
	PhoneNumber   *string `json:"phone_number,omitempty"`
	Mobile        *string `json:"mobile,omitempty"`
}

// ToPublicProfileResponse strips everything but the public identifiers.
func ToPublicProfileResponse(p *domain.RecipientProfile) PublicProfileResponse {
	publicID := p.User.PublicURL
	if i := strings.LastIndex(strings.TrimRight(publicID, "/"), "/"); i >= 0 {
		publicID = strings.TrimRight(publicID, "/")[i+1:]
	}
	return PublicProfileResponse{
		UserID:        p.User.UserID,
		Name:          p.User.Name,
		Email:         p.User.Email,
		CustomerID:    p.User.CustomerID,
		PublicID:      publicID,
		PublicURL:     p.User.PublicURL,
		ProfileURL:    p.User.PublicURL,
		AccountNumber: p.PrimaryAccountNumber,
		PhoneNumber:   p.User.PhoneNumber,
		Mobile:        p.User.Mobile,
	}
}
