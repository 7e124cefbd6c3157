package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obeng-labs/agencyledger/internal/apperrors"
	"github.com/obeng-labs/agencyledger/internal/core/domain"
	portsrepo "github.com/obeng-labs/agencyledger/internal/core/ports/repositories"
)

const expenseColumns = `
	expense_id, company_id, requested_by, amount, reason, status,
	approved_by, approved_at, rejection_reason, created_at, updated_at`

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense requests.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func scanExpense(row pgx.Row) (*domain.ExpenseRequest, error) {
	var e domain.ExpenseRequest
	err := row.Scan(
		&e.ExpenseID,
		&e.CompanyID,
		&e.RequestedBy,
		&e.Amount,
		&e.Reason,
		&e.Status,
		&e.ApprovedBy,
		&e.ApprovedAt,
		&e.RejectionReason,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.ExpenseRequest) error {
	query := `
		INSERT INTO expense_requests (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		expense.ExpenseID,
		expense.CompanyID,
		expense.RequestedBy,
		expense.Amount,
		expense.Reason,
		expense.Status,
		expense.ApprovedBy,
		expense.ApprovedAt,
		expense.RejectionReason,
		expense.CreatedAt,
		expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense %s: %w", expense.ExpenseID, err)
	}
	return nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, companyID, expenseID string) (*domain.ExpenseRequest, error) {
	query := `SELECT ` + expenseColumns + ` FROM expense_requests WHERE company_id = $1 AND expense_id = $2;`

	expense, err := scanExpense(r.Pool.QueryRow(ctx, query, companyID, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}
	return expense, nil
}

func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, companyID string, requestedBy *string) ([]domain.ExpenseRequest, error) {
	query := `SELECT ` + expenseColumns + ` FROM expense_requests WHERE company_id = $1`
	args := []interface{}{companyID}

	if requestedBy != nil {
		args = append(args, *requestedBy)
		query += " AND requested_by = $2"
	}
	query += " ORDER BY created_at DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses for company %s: %w", companyID, err)
	}
	defer rows.Close()

	expenses := []domain.ExpenseRequest{}
	for rows.Next() {
		expense, scanErr := scanExpense(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", scanErr)
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read expense rows: %w", err)
	}
	return expenses, nil
}

func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.ExpenseRequest) error {
	query := `
		UPDATE expense_requests
		SET status = $1, approved_by = $2, approved_at = $3, rejection_reason = $4, updated_at = $5
		WHERE company_id = $6 AND expense_id = $7;
	`
	tag, err := r.Pool.Exec(ctx, query,
		expense.Status,
		expense.ApprovedBy,
		expense.ApprovedAt,
		expense.RejectionReason,
		expense.UpdatedAt,
		expense.CompanyID,
		expense.ExpenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", expense.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
