package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolpay/feeledger/internal/domain"
	"github.com/schoolpay/feeledger/internal/usecase"
)

// JournalRepository implements usecase.JournalRepository. Append-only, like
// the payment ledger.
type JournalRepository struct {
	pool *pgxpool.Pool
}

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(pool *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{pool: pool}
}

const journalColumns = `id, entry_date, description, category, direction, amount, created_at`

// Create appends a journal entry inside the payment transaction.
func (r *JournalRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO journal_entries (`+journalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID,
		timeToPgTimestamptz(entry.EntryDate),
		entry.Description,
		entry.Category,
		string(entry.Direction),
		decimalToNumeric(entry.Amount),
		timeToPgTimestamptz(entry.CreatedAt),
	)
	if err != nil {
		return mapWriteError(err, domain.ErrWriteConflict)
	}

	return nil
}

// GetByID retrieves a journal entry by ID.
func (r *JournalRepository) GetByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+journalColumns+`
		FROM journal_entries
		WHERE id = $1`, id)

	return scanJournalEntry(row)
}

// List lists journal entries, newest first, optionally filtered by category.
func (r *JournalRepository) List(ctx context.Context, category string, limit, offset int) ([]*domain.JournalEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+journalColumns+`
		FROM journal_entries
		WHERE ($1 = '' OR category = $1)
		ORDER BY entry_date DESC, created_at DESC
		LIMIT $2 OFFSET $3`, category, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.JournalEntry
	for rows.Next() {
		entry, err := scanJournalEntry(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanJournalEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var (
		entry     domain.JournalEntry
		entryDate pgtype.Timestamptz
		direction string
		amount    pgtype.Numeric
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&entry.ID,
		&entryDate,
		&entry.Description,
		&entry.Category,
		&direction,
		&amount,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrJournalEntryNotFound
		}

		return nil, err
	}

	entry.EntryDate = entryDate.Time
	entry.Direction = domain.EntryDirection(direction)
	entry.Amount = numericToDecimal(amount)
	entry.CreatedAt = createdAt.Time

	return &entry, nil
}
