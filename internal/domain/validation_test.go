package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidatePaymentAmount(t *testing.T) {
	tests := []struct {
		name        string
		amount      decimal.Decimal
		expectError bool
	}{
		{"positive amount", decimal.NewFromInt(500), false},
		{"zero amount", decimal.Zero, true},
		{"negative amount", decimal.NewFromInt(-500), true},
		{"over maximum", decimal.RequireFromString("1000000000001"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePaymentAmount(tt.amount)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidatePayerName(t *testing.T) {
	if err := ValidatePayerName("Jane Doe"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidatePayerName("   "); !errors.Is(err, ErrInvalidPayer) {
		t.Errorf("expected ErrInvalidPayer, got %v", err)
	}

	if err := ValidatePayerName(strings.Repeat("x", 300)); !errors.Is(err, ErrInvalidPayer) {
		t.Errorf("expected ErrInvalidPayer, got %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	limit, offset := ValidatePagination(0, -5)
	if limit != 50 || offset != 0 {
		t.Errorf("expected defaults 50/0, got %d/%d", limit, offset)
	}

	limit, _ = ValidatePagination(5000, 0)
	if limit != 1000 {
		t.Errorf("expected clamp to 1000, got %d", limit)
	}
}
