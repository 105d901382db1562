package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/schoolpay/feeledger/internal/domain"
)

// StudentAccountRepository defines data access for student accounts.
type StudentAccountRepository interface {
	CreateTx(ctx context.Context, tx Transaction, account *domain.StudentAccount) error
	GetByStudentID(ctx context.Context, studentID string) (*domain.StudentAccount, error)
	GetByStudentIDForUpdate(ctx context.Context, tx Transaction, studentID string) (*domain.StudentAccount, error)
	// UpdateBalance applies the new balance and status only if the stored
	// version still matches account.Version, returning domain.ErrWriteConflict
	// otherwise.
	UpdateBalance(ctx context.Context, tx Transaction, account *domain.StudentAccount, balance decimal.Decimal, status domain.TuitionStatus, updatedAt time.Time) error
	ListByClass(ctx context.Context, classID string, limit, offset int) ([]*domain.StudentAccount, error)
	SumPayments(ctx context.Context, studentID string) (decimal.Decimal, error)
}

// PaymentRepository defines data access for the append-only payment ledger.
type PaymentRepository interface {
	Create(ctx context.Context, tx Transaction, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	ListByStudent(ctx context.Context, studentID string, limit, offset int) ([]*domain.Payment, error)
	CountUnpairedJournalRefs(ctx context.Context) (int64, error)
}

// JournalRepository defines data access for the append-only accounting journal.
type JournalRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.JournalEntry) error
	GetByID(ctx context.Context, id string) (*domain.JournalEntry, error)
	List(ctx context.Context, category string, limit, offset int) ([]*domain.JournalEntry, error)
}

// FeeScheduleRepository defines data access for the fee schedule.
type FeeScheduleRepository interface {
	Upsert(ctx context.Context, entry *domain.FeeScheduleEntry) error
	GetByGrade(ctx context.Context, grade string) (*domain.FeeScheduleEntry, error)
	Delete(ctx context.Context, grade string) error
	List(ctx context.Context, limit, offset int) ([]*domain.FeeScheduleEntry, error)
}

// RosterRepository defines data access for class rosters.
type RosterRepository interface {
	Create(ctx context.Context, roster *domain.ClassRoster) error
	GetByClassID(ctx context.Context, classID string) (*domain.ClassRoster, error)
	// IncrementCount applies an atomic SQL delta to enrolled_count inside tx.
	IncrementCount(ctx context.Context, tx Transaction, classID string, delta int64) error
	List(ctx context.Context, limit, offset int) ([]*domain.ClassRoster, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs a whole operation that lost a write conflict. Used by
// callers only; business operations never retry internally.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Remove releases a key, for example after an attempt that must stay
	// retryable.
	Remove(ctx context.Context, key string) error
}

// Notifier delivers balance-change notifications to guardians. Delivery is
// fire-and-forget: failures are logged and never fail the payment.
type Notifier interface {
	NotifyBalanceChanged(ctx context.Context, studentID string, newBalance decimal.Decimal, newStatus domain.TuitionStatus)
}
