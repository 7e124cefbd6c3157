package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obeng-labs/agencyledger/internal/apperrors"
	"github.com/obeng-labs/agencyledger/internal/core/domain"
	portsrepo "github.com/obeng-labs/agencyledger/internal/core/ports/repositories"
	"github.com/obeng-labs/agencyledger/internal/utils/pagination"
)

const transactionColumns = `
	transaction_id, reference, company_id, branch_id, customer_id, initiated_by,
	type, channel, status, amount, fee, net_amount, currency,
	description, internal_notes, requires_approval,
	approved_by, approved_at, rejection_reason, reversed_transaction_id,
	created_at, updated_at`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger transactions
// and their channel details.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.Reference,
		&t.CompanyID,
		&t.BranchID,
		&t.CustomerID,
		&t.InitiatedBy,
		&t.Type,
		&t.Channel,
		&t.Status,
		&t.Amount,
		&t.Fee,
		&t.NetAmount,
		&t.Currency,
		&t.Description,
		&t.InternalNotes,
		&t.RequiresApproval,
		&t.ApprovedBy,
		&t.ApprovedAt,
		&t.RejectionReason,
		&t.ReversedTransactionID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SaveTransaction inserts a transaction and its channel detail in one database
// transaction, so neither ever exists without the other.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, detail domain.ChannelDetail) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertTransaction(ctx, tx, txn); err != nil {
		return err
	}
	if err := insertChannelDetail(ctx, tx, detail); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

func insertTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	_, err := tx.Exec(ctx, query,
		txn.TransactionID,
		txn.Reference,
		txn.CompanyID,
		txn.BranchID,
		txn.CustomerID,
		txn.InitiatedBy,
		txn.Type,
		txn.Channel,
		txn.Status,
		txn.Amount,
		txn.Fee,
		txn.NetAmount,
		txn.Currency,
		txn.Description,
		txn.InternalNotes,
		txn.RequiresApproval,
		txn.ApprovedBy,
		txn.ApprovedAt,
		txn.RejectionReason,
		txn.ReversedTransactionID,
		txn.CreatedAt,
		txn.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: reference %s", apperrors.ErrDuplicate, txn.Reference)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

func insertChannelDetail(ctx context.Context, tx pgx.Tx, detail domain.ChannelDetail) error {
	switch {
	case detail.Bank != nil:
		d := detail.Bank
		_, err := tx.Exec(ctx, `
			INSERT INTO bank_deposit_details (transaction_id, bank_name, account_number, account_name, depositor_name, slip_number)
			VALUES ($1, $2, $3, $4, $5, $6);
		`, d.TransactionID, d.BankName, d.AccountNumber, d.AccountName, d.DepositorName, d.SlipNumber)
		if err != nil {
			return fmt.Errorf("failed to insert bank detail for %s: %w", d.TransactionID, err)
		}
	case detail.MoMo != nil:
		d := detail.MoMo
		_, err := tx.Exec(ctx, `
			INSERT INTO mobile_money_details (transaction_id, network, service_type, sender_number, receiver_number, momo_reference)
			VALUES ($1, $2, $3, $4, $5, $6);
		`, d.TransactionID, d.Network, d.ServiceType, d.SenderNumber, d.ReceiverNumber, d.MoMoReference)
		if err != nil {
			return fmt.Errorf("failed to insert mobile money detail for %s: %w", d.TransactionID, err)
		}
	case detail.Cash != nil:
		d := detail.Cash
		_, err := tx.Exec(ctx, `
			INSERT INTO cash_details (transaction_id, d200, d100, d50, d20, d10, d5, d2, d1)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`, d.TransactionID, d.D200, d.D100, d.D50, d.D20, d.D10, d.D5, d.D2, d.D1)
		if err != nil {
			return fmt.Errorf("failed to insert cash detail for %s: %w", d.TransactionID, err)
		}
	default:
		return fmt.Errorf("%w: transaction has no channel detail", apperrors.ErrValidation)
	}
	return nil
}

// FindTransactionByID retrieves one transaction scoped to a company.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, companyID, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE company_id = $1 AND transaction_id = $2;`

	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, companyID, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// FindChannelDetail retrieves the 1:1 detail record for a transaction.
func (r *PgxTransactionRepository) FindChannelDetail(ctx context.Context, transactionID string, channel domain.Channel) (*domain.ChannelDetail, error) {
	var detail domain.ChannelDetail
	var err error

	switch channel {
	case domain.ChannelBank:
		d := domain.BankDepositDetail{}
		err = r.Pool.QueryRow(ctx, `
			SELECT transaction_id, bank_name, account_number, account_name, depositor_name, slip_number
			FROM bank_deposit_details WHERE transaction_id = $1;
		`, transactionID).Scan(&d.TransactionID, &d.BankName, &d.AccountNumber, &d.AccountName, &d.DepositorName, &d.SlipNumber)
		detail.Bank = &d
	case domain.ChannelMobileMoney:
		d := domain.MobileMoneyDetail{}
		err = r.Pool.QueryRow(ctx, `
			SELECT transaction_id, network, service_type, sender_number, receiver_number, momo_reference
			FROM mobile_money_details WHERE transaction_id = $1;
		`, transactionID).Scan(&d.TransactionID, &d.Network, &d.ServiceType, &d.SenderNumber, &d.ReceiverNumber, &d.MoMoReference)
		detail.MoMo = &d
	case domain.ChannelCash:
		d := domain.CashDetail{}
		err = r.Pool.QueryRow(ctx, `
			SELECT transaction_id, d200, d100, d50, d20, d10, d5, d2, d1
			FROM cash_details WHERE transaction_id = $1;
		`, transactionID).Scan(&d.TransactionID, &d.D200, &d.D100, &d.D50, &d.D20, &d.D10, &d.D5, &d.D2, &d.D1)
		detail.Cash = &d
	default:
		return nil, fmt.Errorf("%w: unknown channel %q", apperrors.ErrValidation, channel)
	}

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find channel detail for %s: %w", transactionID, err)
	}
	return &detail, nil
}

// ListTransactions retrieves a filtered, newest-first page using token-based
// pagination over (created_at, transaction_id).
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, companyID string, filters portsrepo.ListTransactionFilters, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to learn whether another page exists.
	fetchLimit := limit + 1

	var clauses []string
	args := []interface{}{companyID}
	clauses = append(clauses, "company_id = $1")

	addClause := func(condition string, value interface{}) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(condition, len(args)))
	}

	if filters.Status != nil {
		addClause("status = $%d", *filters.Status)
	}
	if filters.Type != nil {
		addClause("type = $%d", *filters.Type)
	}
	if filters.Channel != nil {
		addClause("channel = $%d", *filters.Channel)
	}
	if filters.CustomerID != nil {
		addClause("customer_id = $%d", *filters.CustomerID)
	}
	if filters.BranchID != nil {
		addClause("branch_id = $%d", *filters.BranchID)
	}
	if filters.InitiatedBy != nil {
		addClause("initiated_by = $%d", *filters.InitiatedBy)
	}
	if filters.DateFrom != nil {
		addClause("created_at >= $%d", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		addClause("created_at <= $%d", *filters.DateTo)
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		clauses = append(clauses, fmt.Sprintf("(reference ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeCursor(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid next_token", apperrors.ErrValidation)
		}
		args = append(args, lastCreatedAt, lastID)
		clauses = append(clauses, fmt.Sprintf("(created_at, transaction_id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	args = append(args, fetchLimit)
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` +
		strings.Join(clauses, " AND ") +
		` ORDER BY created_at DESC, transaction_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for company %s: %w", companyID, err)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0, fetchLimit)
	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", scanErr)
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read transaction rows: %w", err)
	}

	var newNextToken *string
	if len(transactions) > limit {
		transactions = transactions[:limit]
		last := transactions[len(transactions)-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.TransactionID)
		newNextToken = &token
	}

	return transactions, newNextToken, nil
}

// ListPendingApprovals retrieves every transaction awaiting a decision, oldest first.
func (r *PgxTransactionRepository) ListPendingApprovals(ctx context.Context, companyID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE company_id = $1 AND status = $2
		ORDER BY created_at ASC;`

	rows, err := r.Pool.Query(ctx, query, companyID, domain.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending approvals for company %s: %w", companyID, err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", scanErr)
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transaction rows: %w", err)
	}
	return transactions, nil
}

// UpdateDecision persists an approval decision on a pending transaction.
func (r *PgxTransactionRepository) UpdateDecision(ctx context.Context, txn domain.Transaction) error {
	query := `
		UPDATE transactions
		SET status = $1, approved_by = $2, approved_at = $3, rejection_reason = $4, updated_at = $5
		WHERE company_id = $6 AND transaction_id = $7 AND status = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		txn.Status,
		txn.ApprovedBy,
		txn.ApprovedAt,
		txn.RejectionReason,
		txn.UpdatedAt,
		txn.CompanyID,
		txn.TransactionID,
		domain.StatusPending,
	)
	if err != nil {
		return fmt.Errorf("failed to update decision for %s: %w", txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		// Row vanished or raced out of pending between read and write.
		return fmt.Errorf("%w: transaction %s is no longer pending", apperrors.ErrConflict, txn.TransactionID)
	}
	return nil
}

// SaveReversal inserts the reversal record and flips the original to reversed
// as one atomic unit. The original is locked and re-checked inside the
// transaction, so two concurrent reversals cannot both succeed.
func (r *PgxTransactionRepository) SaveReversal(ctx context.Context, reversal domain.Transaction, originalID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status domain.TransactionStatus
	err = tx.QueryRow(ctx, `
		SELECT status FROM transactions
		WHERE company_id = $1 AND transaction_id = $2
		FOR UPDATE;
	`, reversal.CompanyID, originalID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock original transaction %s: %w", originalID, err)
	}
	if status != domain.StatusCompleted {
		return fmt.Errorf("%w: transaction %s is not completed", apperrors.ErrConflict, originalID)
	}

	if err := insertTransaction(ctx, tx, reversal); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE transactions SET status = $1, updated_at = $2
		WHERE company_id = $3 AND transaction_id = $4;
	`, domain.StatusReversed, reversal.UpdatedAt, reversal.CompanyID, originalID)
	if err != nil {
		return fmt.Errorf("failed to mark transaction %s reversed: %w", originalID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reversal of %s: %w", originalID, err)
	}
	return nil
}
