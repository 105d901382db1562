package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/schoolpay/feeledger/internal/domain"
	"github.com/schoolpay/feeledger/internal/usecase"
)

// StudentAccountRepository implements usecase.StudentAccountRepository.
type StudentAccountRepository struct {
	pool *pgxpool.Pool
}

// NewStudentAccountRepository creates a new StudentAccountRepository.
func NewStudentAccountRepository(pool *pgxpool.Pool) *StudentAccountRepository {
	return &StudentAccountRepository{pool: pool}
}

const accountColumns = `id, student_id, student_name, class_id, grade_at_enrollment,
	tuition_fee, amount_due, tuition_status, version, created_at, updated_at`

// CreateTx inserts a new student account inside the enrollment transaction.
// A second enrollment for the same student trips the unique constraint and
// aborts the whole transaction, roster increment included.
func (r *StudentAccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.StudentAccount) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO student_accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		account.ID,
		account.StudentID,
		account.StudentName,
		account.ClassID,
		account.GradeAtEnrollment,
		decimalToNumeric(account.TuitionFee),
		decimalToNumeric(account.AmountDue),
		string(account.TuitionStatus),
		account.Version,
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if err != nil {
		return mapWriteError(err, domain.ErrDuplicateEnrollment)
	}

	return nil
}

// GetByStudentID retrieves a student account.
func (r *StudentAccountRepository) GetByStudentID(ctx context.Context, studentID string) (*domain.StudentAccount, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM student_accounts
		WHERE student_id = $1`, studentID)

	return scanAccount(row)
}

// GetByStudentIDForUpdate retrieves a student account with a FOR UPDATE lock,
// serializing concurrent payments for the same student.
func (r *StudentAccountRepository) GetByStudentIDForUpdate(ctx context.Context, tx usecase.Transaction, studentID string) (*domain.StudentAccount, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM student_accounts
		WHERE student_id = $1
		FOR UPDATE`, studentID)

	return scanAccount(row)
}

// UpdateBalance writes the new balance and derived status, guarded by the
// version the caller read. Zero rows affected means another payment committed
// in between; the caller gets ErrWriteConflict and must redo the whole
// operation from a fresh read.
func (r *StudentAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, account *domain.StudentAccount, balance decimal.Decimal, status domain.TuitionStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE student_accounts
		SET amount_due = $1, tuition_status = $2, version = version + 1, updated_at = $3
		WHERE student_id = $4 AND version = $5`,
		decimalToNumeric(balance),
		string(status),
		timeToPgTimestamptz(updatedAt),
		account.StudentID,
		account.Version,
	)
	if err != nil {
		return mapWriteError(err, domain.ErrWriteConflict)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrWriteConflict
	}

	return nil
}

// ListByClass lists the accounts enrolled in a class.
func (r *StudentAccountRepository) ListByClass(ctx context.Context, classID string, limit, offset int) ([]*domain.StudentAccount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM student_accounts
		WHERE class_id = $1
		ORDER BY student_name
		LIMIT $2 OFFSET $3`, classID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.StudentAccount
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// SumPayments totals the payment ledger for one student.
func (r *StudentAccountRepository) SumPayments(ctx context.Context, studentID string) (decimal.Decimal, error) {
	var total pgtype.Numeric

	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE student_id = $1`, studentID).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(total), nil
}

func scanAccount(row pgx.Row) (*domain.StudentAccount, error) {
	var (
		account    domain.StudentAccount
		tuitionFee pgtype.Numeric
		amountDue  pgtype.Numeric
		status     string
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)

	err := row.Scan(
		&account.ID,
		&account.StudentID,
		&account.StudentName,
		&account.ClassID,
		&account.GradeAtEnrollment,
		&tuitionFee,
		&amountDue,
		&status,
		&account.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStudentNotFound
		}

		return nil, err
	}

	account.TuitionFee = numericToDecimal(tuitionFee)
	account.AmountDue = numericToDecimal(amountDue)
	account.TuitionStatus = domain.TuitionStatus(status)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	return &account, nil
}
