// Package memory keeps users, accounts and ledger entries in process memory.
// It backs STORAGE_DRIVER=memory and the service-level integration tests;
// every operation holds a single lock, so transfers are trivially atomic.
package memory

import (
	"sync"

	"github.com/SscSPs/neobank_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/neobank_backend/internal/core/ports/repositories"
)

// Store implements every repository port over plain maps.
type Store struct {
	mu sync.RWMutex

	users    map[string]domain.User
	userSeq  []string
	accounts map[string]domain.Account
	acctSeq  []string
	txns     map[string]domain.Transaction
	txnSeq   []string
}

var (
	_ portsrepo.UserRepositoryFacade        = (*Store)(nil)
	_ portsrepo.AccountRepositoryFacade     = (*Store)(nil)
	_ portsrepo.TransactionRepositoryFacade = (*Store)(nil)
)

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]domain.User),
		accounts: make(map[string]domain.Account),
		txns:     make(map[string]domain.Transaction),
	}
}

// NewRepositoryProvider wires a fresh store into every repository slot.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	s := NewStore()
	return portsrepo.RepositoryProvider{
		UserRepo:        s,
		AccountRepo:     s,
		TransactionRepo: s,
	}
}
