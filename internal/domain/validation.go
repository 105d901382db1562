package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxPayerNameLength   = 255
	MaxDescriptionLength = 1024
	MaxPaymentAmount     = "1000000000000" // 1 trillion
)

// ValidatePaymentAmount validates an amount entering the payment ledger.
func ValidatePaymentAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxPaymentAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxPaymentAmount)
	}

	return nil
}

// ValidatePayerName validates the payer identity on a payment.
func ValidatePayerName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return ErrInvalidPayer
	}

	if len(name) > MaxPayerNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidPayer, MaxPayerNameLength)
	}

	return nil
}

// ValidatePagination clamps pagination parameters to sane bounds.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
