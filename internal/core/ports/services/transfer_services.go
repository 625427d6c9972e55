package services

import (
	"context"

	"github.com/SscSPs/neobank_backend/internal/core/domain"
)

// RecipientResolverSvc turns payer-supplied identifiers into a user.
type RecipientResolverSvc interface {
	// Resolve runs account number, profile URL, customer ID then mobile
	// matching and returns the first hit.
	Resolve(ctx context.Context, ids domain.RecipientIdentifiers) (*domain.User, error)

	// Lookup resolves a single free-form identifier for the public directory.
	Lookup(ctx context.Context, identifier string) (*domain.RecipientProfile, error)
}

// TransferSvcFacade moves money between two users.
type TransferSvcFacade interface {
	// Transfer verifies the PIN, resolves the recipient, checks funds and
	// records both ledger entries. Returns the sender's entry.
	Transfer(ctx context.Context, requesterID string, req domain.TransferRequest) (*domain.Transaction, error)

	// BulkTransfer pays every item under one batch ID. Request-level problems
	// (item count, PIN, aggregate funds) fail the whole call; a recipient that
	// cannot be paid only fails its own item.
	BulkTransfer(ctx context.Context, requesterID string, req domain.BulkTransferRequest) (*domain.BulkTransferResult, error)
}
