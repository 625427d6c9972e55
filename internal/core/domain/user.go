package domain

// User represents a bank customer in the domain.
type User struct {
	UserID       string  `json:"userID"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	CustomerID   string  `json:"customerID"` // CUST_XXXXXXXXX
	PublicURL    string  `json:"publicURL"`  // shareable profile link
	PhoneNumber  *string `json:"phoneNumber,omitempty"`
	Mobile       *string `json:"mobile,omitempty"`
	PasswordHash string  `json:"-"`
	PINHash      *string `json:"-"`
	AuditFields
}

// DisplayName is the name used in transfer descriptions, falling back to email.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// HasPIN reports whether a transaction PIN has been set.
func (u User) HasPIN() bool {
	return u.PINHash != nil && *u.PINHash != ""
}

// RecipientProfile is the public view of a user returned by directory lookups.
type RecipientProfile struct {
	User                 User
	PrimaryAccountNumber string
}
