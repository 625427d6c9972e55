package models

import (
	"database/sql"
)

// User is the users table row.
// Nullable columns use sql.Null* so pgx can scan NULLs directly.
type User struct {
	UserID       string         `db:"user_id"`
	Email        string         `db:"email"`
	Name         string         `db:"name"`
	CustomerID   string         `db:"customer_id"`
	PublicURL    string         `db:"public_url"`
	PhoneNumber  sql.NullString `db:"phone_number"`
	Mobile       sql.NullString `db:"mobile"`
	PasswordHash string         `db:"password_hash"`
	PINHash      sql.NullString `db:"pin_hash"`
	AuditFields
}
