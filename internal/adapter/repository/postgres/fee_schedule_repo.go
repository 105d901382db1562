package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolpay/feeledger/internal/domain"
)

// FeeScheduleRepository implements usecase.FeeScheduleRepository.
type FeeScheduleRepository struct {
	pool *pgxpool.Pool
}

// NewFeeScheduleRepository creates a new FeeScheduleRepository.
func NewFeeScheduleRepository(pool *pgxpool.Pool) *FeeScheduleRepository {
	return &FeeScheduleRepository{pool: pool}
}

// Upsert creates or replaces the fee entry for a grade.
func (r *FeeScheduleRepository) Upsert(ctx context.Context, entry *domain.FeeScheduleEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO fee_schedule (grade, annual_amount, installment_plan, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (grade) DO UPDATE
		SET annual_amount = EXCLUDED.annual_amount,
		    installment_plan = EXCLUDED.installment_plan,
		    updated_at = EXCLUDED.updated_at`,
		entry.Grade,
		decimalToNumeric(entry.AnnualAmount),
		entry.InstallmentPlan,
		timeToPgTimestamptz(entry.CreatedAt),
		timeToPgTimestamptz(entry.UpdatedAt),
	)

	return err
}

// GetByGrade retrieves the fee entry for a grade.
func (r *FeeScheduleRepository) GetByGrade(ctx context.Context, grade string) (*domain.FeeScheduleEntry, error) {
	var (
		entry     domain.FeeScheduleEntry
		amount    pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx, `
		SELECT grade, annual_amount, installment_plan, created_at, updated_at
		FROM fee_schedule
		WHERE grade = $1`, grade).Scan(
		&entry.Grade,
		&amount,
		&entry.InstallmentPlan,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFeeEntryNotFound
		}

		return nil, err
	}

	entry.AnnualAmount = numericToDecimal(amount)
	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return &entry, nil
}

// Delete removes the fee entry for a grade. Existing student accounts keep
// their billed snapshot regardless.
func (r *FeeScheduleRepository) Delete(ctx context.Context, grade string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM fee_schedule WHERE grade = $1`, grade)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrFeeEntryNotFound
	}

	return nil
}

// List lists fee schedule entries ordered by grade.
func (r *FeeScheduleRepository) List(ctx context.Context, limit, offset int) ([]*domain.FeeScheduleEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT grade, annual_amount, installment_plan, created_at, updated_at
		FROM fee_schedule
		ORDER BY grade
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.FeeScheduleEntry
	for rows.Next() {
		var (
			entry     domain.FeeScheduleEntry
			amount    pgtype.Numeric
			createdAt pgtype.Timestamptz
			updatedAt pgtype.Timestamptz
		)

		if err := rows.Scan(&entry.Grade, &amount, &entry.InstallmentPlan, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		entry.AnnualAmount = numericToDecimal(amount)
		entry.CreatedAt = createdAt.Time
		entry.UpdatedAt = updatedAt.Time

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
