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

// PaymentRepository implements usecase.PaymentRepository. The payments table
// is append-only: there is deliberately no update or delete here.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

const paymentColumns = `id, student_id, paid_at, amount, description,
	payer_name, payer_contact, method, journal_entry_id, created_at`

// Create appends a payment inside the payment transaction.
func (r *PaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		payment.ID,
		payment.StudentID,
		timeToPgTimestamptz(payment.PaidAt),
		decimalToNumeric(payment.Amount),
		payment.Description,
		payment.PayerName,
		payment.PayerContact,
		string(payment.Method),
		payment.JournalEntryID,
		timeToPgTimestamptz(payment.CreatedAt),
	)
	if err != nil {
		return mapWriteError(err, domain.ErrWriteConflict)
	}

	return nil
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE id = $1`, id)

	return scanPayment(row)
}

// ListByStudent lists a student's payments, newest first.
func (r *PaymentRepository) ListByStudent(ctx context.Context, studentID string, limit, offset int) ([]*domain.Payment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE student_id = $1
		ORDER BY paid_at DESC, created_at DESC
		LIMIT $2 OFFSET $3`, studentID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}

		payments = append(payments, payment)
	}

	return payments, rows.Err()
}

// CountUnpairedJournalRefs counts payments whose journal back-reference does
// not resolve. Anything above zero means the 1:1 pairing invariant is broken.
func (r *PaymentRepository) CountUnpairedJournalRefs(ctx context.Context) (int64, error) {
	var count int64

	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM payments p
		LEFT JOIN journal_entries j ON j.id = p.journal_entry_id
		WHERE j.id IS NULL`).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		payment   domain.Payment
		paidAt    pgtype.Timestamptz
		amount    pgtype.Numeric
		method    string
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&payment.ID,
		&payment.StudentID,
		&paidAt,
		&amount,
		&payment.Description,
		&payment.PayerName,
		&payment.PayerContact,
		&method,
		&payment.JournalEntryID,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}

		return nil, err
	}

	payment.PaidAt = paidAt.Time
	payment.Amount = numericToDecimal(amount)
	payment.Method = domain.PaymentMethod(method)
	payment.CreatedAt = createdAt.Time

	return &payment, nil
}
