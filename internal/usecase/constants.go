package usecase

import (
	"errors"
	"time"

	"github.com/schoolpay/feeledger/internal/domain"
)

const (
	// DefaultTransactionTimeout caps how long a billing transaction may hold
	// its row locks.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour

	// FeeScheduleCacheTTL is how long grade lookups are cached. Fee edits
	// invalidate eagerly; the TTL only bounds staleness after a missed
	// invalidation.
	FeeScheduleCacheTTL = 15 * time.Minute
)

// errorLabel buckets an error into a low-cardinality metric label.
func errorLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrStudentNotFound):
		return "student_not_found"
	case errors.Is(err, domain.ErrClassNotFound):
		return "class_not_found"
	case errors.Is(err, domain.ErrDuplicateEnrollment):
		return "duplicate_enrollment"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrInvalidPayer):
		return "invalid_payer"
	case errors.Is(err, domain.ErrWriteConflict):
		return "write_conflict"
	default:
		return "internal"
	}
}
