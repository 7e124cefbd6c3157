package repositories

// RepositoryProvider bundles the repositories the service container wires at
// startup. The pgsql adapter builds one over a shared connection pool.
type RepositoryProvider struct {
	TransactionRepo TransactionRepositoryFacade
	BalanceRepo     BalanceRepositoryFacade
	ExpenseRepo     ExpenseRepositoryFacade
	ClosingRepo     ClosingRepositoryFacade
	CompanyRepo     CompanyRepositoryFacade
	ReportingRepo   ReportingRepository
}
