package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod identifies how a payment was made.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodBank     PaymentMethod = "bank_transfer"
	PaymentMethodMobile   PaymentMethod = "mobile_money"
	PaymentMethodCheque   PaymentMethod = "cheque"
)

// Payment is one append-only ledger entry recording a single tuition payment
// against a student account. JournalEntryID back-references the general-ledger
// entry created in the same transaction.
type Payment struct {
	ID             string
	StudentID      string
	PaidAt         time.Time
	Amount         decimal.Decimal
	Description    string
	PayerName      string
	PayerContact   string
	Method         PaymentMethod
	JournalEntryID string
	CreatedAt      time.Time
}

// Validate validates a payment before it enters the ledger.
func (p *Payment) Validate() error {
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if p.PayerName == "" {
		return ErrInvalidPayer
	}

	return nil
}
