package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Identifier prefixes for generated IDs.
const (
	TransactionIDPrefix = "TXN_"
	BatchIDPrefix       = "BATCH_"
	CustomerIDPrefix    = "CUST_"
	ProfileURLBase      = "https://neobank.com/user/"
)

// GenerateSecureRandomString generates a cryptographically secure random string of the specified byte length,
// then hex encodes it. For example, lengthInBytes=32 will result in a 64-character hex string.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateBase36String returns n random characters from [0-9a-z].
func GenerateBase36String(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("length must be positive")
	}
	max := big.NewInt(int64(len(base36Alphabet)))
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		sb.WriteByte(base36Alphabet[idx.Int64()])
	}
	return sb.String(), nil
}

// RandomIntInRange returns a uniformly random integer in [min, max].
func RandomIntInRange(min, max int64) (int64, error) {
	if max < min {
		return 0, fmt.Errorf("invalid range [%d, %d]", min, max)
	}
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		return 0, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return min + n.Int64(), nil
}

// NewTransactionID returns TXN_ followed by 12 upper-case base36 characters.
func NewTransactionID() (string, error) {
	s, err := GenerateBase36String(12)
	if err != nil {
		return "", err
	}
	return TransactionIDPrefix + strings.ToUpper(s), nil
}

// NewBatchID returns BATCH_ followed by 12 upper-case base36 characters.
func NewBatchID() (string, error) {
	s, err := GenerateBase36String(12)
	if err != nil {
		return "", err
	}
	return BatchIDPrefix + strings.ToUpper(s), nil
}

// NewCustomerID returns CUST_ followed by 9 upper-case base36 characters.
func NewCustomerID() (string, error) {
	s, err := GenerateBase36String(9)
	if err != nil {
		return "", err
	}
	return CustomerIDPrefix + strings.ToUpper(s), nil
}

// NewProfileURL returns a shareable profile link ending in 9 base36 characters.
func NewProfileURL() (string, error) {
	s, err := GenerateBase36String(9)
	if err != nil {
		return "", err
	}
	return ProfileURLBase + s, nil
}

// NewMaskedAccountNumber returns a masked number of the form ****NNNN.
func NewMaskedAccountNumber() (string, error) {
	n, err := RandomIntInRange(1000, 9999)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("****%d", n), nil
}
