package services

import (
	"github.com/SscSPs/neobank_backend/internal/core/insights"
	portsrepo "github.com/SscSPs/neobank_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/neobank_backend/internal/core/ports/services"
	"github.com/SscSPs/neobank_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// A nil clock means wall-clock UTC.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, clock Clock) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo,
		WithBcryptCost(cfg.BcryptCost),
		WithUserClock(clock),
	)
	container.Token = NewTokenService(cfg, container.User, clock)
	container.Account = NewAccountService(repos.AccountRepo, clock)
	container.Resolver = NewRecipientResolver(repos.UserRepo, repos.AccountRepo)
	container.Transfer = NewTransferService(
		container.User,
		container.Resolver,
		container.Account,
		repos.TransactionRepo,
		clock,
	)
	container.Transaction = NewTransactionService(repos.TransactionRepo, container.Account, clock)

	engineOpts := []insights.Option{}
	if clock != nil {
		engineOpts = append(engineOpts, insights.WithClock(clock))
	}
	container.Insight = NewInsightService(
		repos.TransactionRepo,
		container.Account,
		insights.NewEngine(engineOpts...),
		cfg.InsightsWindowMonths,
		clock,
	)

	return container
}
