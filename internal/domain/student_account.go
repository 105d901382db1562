package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TuitionStatus is the derived billing state of a student account.
type TuitionStatus string

const (
	TuitionStatusPaid    TuitionStatus = "paid"
	TuitionStatusPartial TuitionStatus = "partial"
	// TuitionStatusOverdue is reserved for a due-date policy applied out of
	// band; the payment engine itself only ever derives paid or partial.
	TuitionStatusOverdue TuitionStatus = "overdue"
)

// StudentAccount holds the running tuition balance for one enrolled student.
// TuitionFee is a snapshot of the fee schedule taken at enrollment and never
// changes afterwards; AmountDue is only mutated by the payment engine.
type StudentAccount struct {
	ID                string
	StudentID         string
	StudentName       string
	ClassID           string
	GradeAtEnrollment string
	TuitionFee        decimal.Decimal
	AmountDue         decimal.Decimal
	TuitionStatus     TuitionStatus
	Version           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DeriveTuitionStatus computes the status for a given outstanding balance.
// A balance at or below zero means the tuition is settled, possibly overpaid.
func DeriveTuitionStatus(amountDue decimal.Decimal) TuitionStatus {
	if amountDue.LessThanOrEqual(decimal.Zero) {
		return TuitionStatusPaid
	}
	return TuitionStatusPartial
}

// ApplyPayment returns the balance after a payment. Overpayment is allowed;
// the result may be negative.
func (a *StudentAccount) ApplyPayment(amount decimal.Decimal) decimal.Decimal {
	return a.AmountDue.Sub(amount)
}
