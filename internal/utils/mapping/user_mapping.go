package mapping

import (
	"github.com/SscSPs/neobank_backend/internal/core/domain"
	"github.com/SscSPs/neobank_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Email:        d.Email,
		Name:         d.Name,
		CustomerID:   d.CustomerID,
		PublicURL:    d.PublicURL,
		PhoneNumber:  toNullString(d.PhoneNumber),
		Mobile:       toNullString(d.Mobile),
		PasswordHash: d.PasswordHash,
		PINHash:      toNullString(d.PINHash),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Email:        m.Email,
		Name:         m.Name,
		CustomerID:   m.CustomerID,
		PublicURL:    m.PublicURL,
		PhoneNumber:  fromNullString(m.PhoneNumber),
		Mobile:       fromNullString(m.Mobile),
		PasswordHash: m.PasswordHash,
		PINHash:      fromNullString(m.PINHash),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
