package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Filipelaw45/gowallet/internal/domain"
	"github.com/Filipelaw45/gowallet/internal/usecase"
)

// LedgerEntryRepository implements usecase.LedgerEntryRepository.
type LedgerEntryRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerEntryRepository creates a new LedgerEntryRepository.
func NewLedgerEntryRepository(pool *pgxpool.Pool) *LedgerEntryRepository {
	return &LedgerEntryRepository{pool: pool}
}

// Create inserts a ledger entry inside an open transaction.
func (r *LedgerEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO ledger_entries (id, transaction_id, user_id, amount, type,
			balance_after, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := pgxTx.Exec(ctx, query,
		entry.ID,
		entry.TransactionID,
		entry.UserID,
		decimalToNumeric(entry.Amount),
		string(entry.Type),
		decimalToNumeric(entry.BalanceAfter),
		entry.Description,
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return err
}

// GetByTransaction returns the entries written for one transaction in
// creation order, debit before credit.
func (r *LedgerEntryRepository) GetByTransaction(ctx context.Context, transactionID string) ([]*domain.LedgerEntry, error) {
	query := `
		SELECT id, transaction_id, user_id, amount, type, balance_after, description, created_at
		FROM ledger_entries
		WHERE transaction_id = $1
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEntries(rows)
}

// GetByUser returns a user's entries, newest first.
func (r *LedgerEntryRepository) GetByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	query := `
		SELECT id, transaction_id, user_id, amount, type, balance_after, description, created_at
		FROM ledger_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]*domain.LedgerEntry, error) {
	var entries []*domain.LedgerEntry
	for rows.Next() {
		var (
			entry        domain.LedgerEntry
			amount       pgtype.Numeric
			entryType    string
			balanceAfter pgtype.Numeric
			createdAt    pgtype.Timestamptz
		)

		err := rows.Scan(
			&entry.ID,
			&entry.TransactionID,
			&entry.UserID,
			&amount,
			&entryType,
			&balanceAfter,
			&entry.Description,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		entry.Amount = numericToDecimal(amount)
		entry.Type = domain.EntryType(entryType)
		entry.BalanceAfter = numericToDecimal(balanceAfter)
		entry.CreatedAt = createdAt.Time

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
