package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/obeng-labs/agencyledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every repository over one shared connection pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: newPgxTransactionRepository(dbPool),
		BalanceRepo:     newPgxBalanceRepository(dbPool),
		ExpenseRepo:     newPgxExpenseRepository(dbPool),
		ClosingRepo:     newPgxClosingRepository(dbPool),
		CompanyRepo:     newPgxCompanyRepository(dbPool),
		ReportingRepo:   newReportingRepository(dbPool),
	}
}
