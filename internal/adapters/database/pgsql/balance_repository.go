package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/obeng-labs/agencyledger/internal/apperrors"
	"github.com/obeng-labs/agencyledger/internal/core/domain"
	portsrepo "github.com/obeng-labs/agencyledger/internal/core/ports/repositories"
)

const balanceColumns = `
	balance_id, company_id, user_id, provider, starting_balance, balance, created_at, last_updated`

type PgxBalanceRepository struct {
	BaseRepository
}

// newPgxBalanceRepository creates a new repository for provider float balances.
func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepositoryFacade {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceRepositoryFacade = (*PgxBalanceRepository)(nil)

func scanBalance(row pgx.Row) (*domain.ProviderBalance, error) {
	var b domain.ProviderBalance
	err := row.Scan(
		&b.BalanceID,
		&b.CompanyID,
		&b.UserID,
		&b.Provider,
		&b.StartingBalance,
		&b.Balance,
		&b.CreatedAt,
		&b.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// UpsertBalance creates or overwrites the row keyed by (company, user, provider).
// Re-initializing resets both the starting and the current balance.
func (r *PgxBalanceRepository) UpsertBalance(ctx context.Context, balance domain.ProviderBalance) (*domain.ProviderBalance, error) {
	query := `
		INSERT INTO provider_balances (` + balanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (company_id, user_id, provider)
		DO UPDATE SET starting_balance = EXCLUDED.starting_balance,
		              balance = EXCLUDED.balance,
		              last_updated = EXCLUDED.last_updated
		RETURNING ` + balanceColumns + `;
	`
	saved, err := scanBalance(r.Pool.QueryRow(ctx, query,
		balance.BalanceID,
		balance.CompanyID,
		balance.UserID,
		balance.Provider,
		balance.StartingBalance,
		balance.Balance,
		balance.CreatedAt,
		balance.LastUpdated,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert balance for user %s provider %s: %w", balance.UserID, balance.Provider, err)
	}
	return saved, nil
}

// FindBalance retrieves one balance row.
func (r *PgxBalanceRepository) FindBalance(ctx context.Context, companyID, userID string, provider domain.Provider) (*domain.ProviderBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM provider_balances
		WHERE company_id = $1 AND user_id = $2 AND provider = $3;`

	balance, err := scanBalance(r.Pool.QueryRow(ctx, query, companyID, userID, provider))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find balance for user %s provider %s: %w", userID, provider, err)
	}
	return balance, nil
}

// ListBalances retrieves a company's balance rows ordered by user then provider.
func (r *PgxBalanceRepository) ListBalances(ctx context.Context, companyID string, filters portsrepo.ListBalanceFilters) ([]domain.ProviderBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM provider_balances WHERE company_id = $1`
	args := []interface{}{companyID}

	if filters.UserID != nil {
		args = append(args, *filters.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if filters.Provider != nil {
		args = append(args, *filters.Provider)
		query += fmt.Sprintf(" AND provider = $%d", len(args))
	}
	query += " ORDER BY user_id, provider;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances for company %s: %w", companyID, err)
	}
	defer rows.Close()

	balances := []domain.ProviderBalance{}
	for rows.Next() {
		balance, scanErr := scanBalance(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", scanErr)
		}
		balances = append(balances, *balance)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read balance rows: %w", err)
	}
	return balances, nil
}

// AdjustBalance applies an add or subtract as a read-modify-write serialized by
// a row lock. The strict pre-check keeps the balance non-negative: a subtract
// that would overdraw returns ErrInsufficientBalance and leaves the row as it was.
func (r *PgxBalanceRepository) AdjustBalance(ctx context.Context, companyID, userID string, provider domain.Provider, amount decimal.Decimal, op domain.BalanceOperation) (*domain.ProviderBalance, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	locked, err := scanBalance(tx.QueryRow(ctx, `
		SELECT `+balanceColumns+` FROM provider_balances
		WHERE company_id = $1 AND user_id = $2 AND provider = $3
		FOR UPDATE;
	`, companyID, userID, provider))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock balance for user %s provider %s: %w", userID, provider, err)
	}

	var newBalance decimal.Decimal
	switch op {
	case domain.BalanceAdd:
		newBalance = locked.Balance.Add(amount)
	case domain.BalanceSubtract:
		if locked.Balance.LessThan(amount) {
			return nil, fmt.Errorf("%w: balance %s, requested %s", apperrors.ErrInsufficientBalance, locked.Balance, amount)
		}
		newBalance = locked.Balance.Sub(amount)
	default:
		return nil, fmt.Errorf("%w: unknown balance operation %q", apperrors.ErrValidation, op)
	}

	now := time.Now().UTC()
	_, err = tx.Exec(ctx, `
		UPDATE provider_balances SET balance = $1, last_updated = $2 WHERE balance_id = $3;
	`, newBalance, now, locked.BalanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to update balance %s: %w", locked.BalanceID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit balance adjustment %s: %w", locked.BalanceID, err)
	}

	locked.Balance = newBalance
	locked.LastUpdated = now
	return locked, nil
}
