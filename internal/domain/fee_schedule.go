package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeScheduleEntry maps a grade to its annual tuition amount. Edited by staff;
// the enrollment engine only ever reads it. Deleting or changing an entry has
// no effect on accounts already billed under it.
type FeeScheduleEntry struct {
	Grade           string
	AnnualAmount    decimal.Decimal
	InstallmentPlan string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate validates a fee schedule entry.
func (f *FeeScheduleEntry) Validate() error {
	if f.Grade == "" {
		return ErrInvalidGrade
	}

	if f.AnnualAmount.IsNegative() {
		return ErrInvalidAmount
	}

	return nil
}
