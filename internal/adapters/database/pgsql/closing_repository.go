package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obeng-labs/agencyledger/internal/apperrors"
	"github.com/obeng-labs/agencyledger/internal/core/domain"
	portsrepo "github.com/obeng-labs/agencyledger/internal/core/ports/repositories"
)

const closingColumns = `
	closing_id, company_id, branch_id, closed_by, closing_date,
	physical_cash, mtn_ecash, vodafone_ecash, airteltigo_ecash, total_ecash,
	overage, shortage, notes, created_at, updated_at`

type PgxClosingRepository struct {
	BaseRepository
}

// newPgxClosingRepository creates a new repository for daily closings.
func newPgxClosingRepository(pool *pgxpool.Pool) portsrepo.ClosingRepositoryFacade {
	return &PgxClosingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClosingRepositoryFacade = (*PgxClosingRepository)(nil)

func scanClosing(row pgx.Row) (*domain.DailyClosing, error) {
	var c domain.DailyClosing
	err := row.Scan(
		&c.ClosingID,
		&c.CompanyID,
		&c.BranchID,
		&c.ClosedBy,
		&c.Date,
		&c.PhysicalCash,
		&c.MTNECash,
		&c.VodafoneECash,
		&c.AirtelTigoECash,
		&c.TotalECash,
		&c.Overage,
		&c.Shortage,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// SaveClosing persists a new closing. The unique index on
// (company_id, closed_by, closing_date) enforces one closing per day per user.
func (r *PgxClosingRepository) SaveClosing(ctx context.Context, closing domain.DailyClosing) error {
	query := `
		INSERT INTO daily_closings (` + closingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		closing.ClosingID,
		closing.CompanyID,
		closing.BranchID,
		closing.ClosedBy,
		closing.Date,
		closing.PhysicalCash,
		closing.MTNECash,
		closing.VodafoneECash,
		closing.AirtelTigoECash,
		closing.TotalECash,
		closing.Overage,
		closing.Shortage,
		closing.Notes,
		closing.CreatedAt,
		closing.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: closing for %s", apperrors.ErrDuplicate, closing.Date.Format("2006-01-02"))
		}
		return fmt.Errorf("failed to insert closing %s: %w", closing.ClosingID, err)
	}
	return nil
}

func (r *PgxClosingRepository) FindClosingByID(ctx context.Context, companyID, closingID string) (*domain.DailyClosing, error) {
	query := `SELECT ` + closingColumns + ` FROM daily_closings WHERE company_id = $1 AND closing_id = $2;`

	closing, err := scanClosing(r.Pool.QueryRow(ctx, query, companyID, closingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find closing %s: %w", closingID, err)
	}
	return closing, nil
}

func (r *PgxClosingRepository) ListClosings(ctx context.Context, companyID string, closedBy *string, date *time.Time) ([]domain.DailyClosing, error) {
	query := `SELECT ` + closingColumns + ` FROM daily_closings WHERE company_id = $1`
	args := []interface{}{companyID}

	if closedBy != nil {
		args = append(args, *closedBy)
		query += fmt.Sprintf(" AND closed_by = $%d", len(args))
	}
	if date != nil {
		args = append(args, *date)
		query += fmt.Sprintf(" AND closing_date = $%d", len(args))
	}
	query += " ORDER BY closing_date DESC, created_at DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query closings for company %s: %w", companyID, err)
	}
	defer rows.Close()

	closings := []domain.DailyClosing{}
	for rows.Next() {
		closing, scanErr := scanClosing(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan closing row: %w", scanErr)
		}
		closings = append(closings, *closing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read closing rows: %w", err)
	}
	return closings, nil
}

func (r *PgxClosingRepository) UpdateClosing(ctx context.Context, closing domain.DailyClosing) error {
	query := `
		UPDATE daily_closings
		SET physical_cash = $1, mtn_ecash = $2, vodafone_ecash = $3, airteltigo_ecash = $4,
		    total_ecash = $5, overage = $6, shortage = $7, notes = $8, updated_at = $9
		WHERE company_id = $10 AND closing_id = $11;
	`
	tag, err := r.Pool.Exec(ctx, query,
		closing.PhysicalCash,
		closing.MTNECash,
		closing.VodafoneECash,
		closing.AirtelTigoECash,
		closing.TotalECash,
		closing.Overage,
		closing.Shortage,
		closing.Notes,
		closing.UpdatedAt,
		closing.CompanyID,
		closing.ClosingID,
	)
	if err != nil {
		return fmt.Errorf("failed to update closing %s: %w", closing.ClosingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
