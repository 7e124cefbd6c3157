package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is what the handlers receive at route registration.
type ServiceContainer struct {
	Transaction TransactionSvcFacade
	Balance     BalanceSvcFacade
	Expense     ExpenseSvcFacade
	Closing     ClosingSvcFacade
	Company     CompanySvcFacade
	Reporting   ReportingSvcFacade
}
