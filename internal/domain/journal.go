package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryDirection classifies a journal entry as money in or money out.
type EntryDirection string

const (
	DirectionRevenue EntryDirection = "revenue"
	DirectionExpense EntryDirection = "expense"
)

// CategoryTuition is the journal category used for tuition payments.
const CategoryTuition = "Tuition"

// JournalEntry is an append-only general-ledger record. It is school-scoped
// and lives independently of any single student account; tuition payments
// reference it from the payment ledger, never the other way around.
type JournalEntry struct {
	ID          string
	EntryDate   time.Time
	Description string
	Category    string
	Direction   EntryDirection
	Amount      decimal.Decimal
	CreatedAt   time.Time
}

// Validate validates a journal entry before it is appended.
func (e *JournalEntry) Validate() error {
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}
