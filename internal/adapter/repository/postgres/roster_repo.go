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

// RosterRepository implements usecase.RosterRepository.
type RosterRepository struct {
	pool *pgxpool.Pool
}

// NewRosterRepository creates a new RosterRepository.
func NewRosterRepository(pool *pgxpool.Pool) *RosterRepository {
	return &RosterRepository{pool: pool}
}

// Create creates a class roster.
func (r *RosterRepository) Create(ctx context.Context, roster *domain.ClassRoster) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO class_rosters (class_id, name, grade, enrolled_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		roster.ClassID,
		roster.Name,
		roster.Grade,
		roster.EnrolledCount,
		timeToPgTimestamptz(roster.CreatedAt),
		timeToPgTimestamptz(roster.UpdatedAt),
	)
	if err != nil {
		return mapWriteError(err, domain.ErrDuplicateClass)
	}

	return nil
}

// GetByClassID retrieves a roster by class ID.
func (r *RosterRepository) GetByClassID(ctx context.Context, classID string) (*domain.ClassRoster, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT class_id, name, grade, enrolled_count, created_at, updated_at
		FROM class_rosters
		WHERE class_id = $1`, classID)

	return scanRoster(row)
}

// IncrementCount moves the enrolled counter by delta as a single SQL
// statement inside the enrollment transaction. The counter is never
// read-modify-written from the application.
func (r *RosterRepository) IncrementCount(ctx context.Context, tx usecase.Transaction, classID string, delta int64) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE class_rosters
		SET enrolled_count = enrolled_count + $1, updated_at = NOW()
		WHERE class_id = $2`, delta, classID)
	if err != nil {
		return mapWriteError(err, domain.ErrWriteConflict)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrClassNotFound
	}

	return nil
}

// List lists class rosters ordered by grade then name.
func (r *RosterRepository) List(ctx context.Context, limit, offset int) ([]*domain.ClassRoster, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT class_id, name, grade, enrolled_count, created_at, updated_at
		FROM class_rosters
		ORDER BY grade, name
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rosters []*domain.ClassRoster
	for rows.Next() {
		roster, err := scanRoster(rows)
		if err != nil {
			return nil, err
		}

		rosters = append(rosters, roster)
	}

	return rosters, rows.Err()
}

func scanRoster(row pgx.Row) (*domain.ClassRoster, error) {
	var (
		roster    domain.ClassRoster
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&roster.ClassID,
		&roster.Name,
		&roster.Grade,
		&roster.EnrolledCount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClassNotFound
		}

		return nil, err
	}

	roster.CreatedAt = createdAt.Time
	roster.UpdatedAt = updatedAt.Time

	return &roster, nil
}
