package services

import (
	portsrepo "github.com/obeng-labs/agencyledger/internal/core/ports/repositories"
	portssvc "github.com/obeng-labs/agencyledger/internal/core/ports/services"
	"github.com/obeng-labs/agencyledger/internal/events"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, publisher events.Publisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Company service first, the ledger consults it for settings and plans.
	container.Company = NewCompanyService(repos.CompanyRepo)

	container.Transaction = NewTransactionService(repos.TransactionRepo, container.Company, publisher)
	container.Balance = NewBalanceService(repos.BalanceRepo, publisher)
	container.Expense = NewExpenseService(repos.ExpenseRepo)
	container.Closing = NewClosingService(repos.ClosingRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.TransactionRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.BalanceSvcFacade     = (*balanceService)(nil)
	_ portssvc.ExpenseSvcFacade     = (*expenseService)(nil)
	_ portssvc.ClosingSvcFacade     = (*closingService)(nil)
	_ portssvc.CompanySvcFacade     = (*companyService)(nil)
	_ portssvc.ReportingSvcFacade   = (*reportingService)(nil)
)
