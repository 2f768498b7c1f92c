package validation

import (
	"strings"
	"testing"
)

func TestValidateMonthlyBill(t *testing.T) {
	tests := []struct {
		name       string
		bill       float64
		expectWarn bool
	}{
		{"Lower bound", 500, false},
		{"Typical bill", 3000, false},
		{"Upper bound", 100000, false},
		{"Below range", 499.99, true},
		{"Above range", 100000.01, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warning := ValidateMonthlyBill(tt.bill)
			if (warning != "") != tt.expectWarn {
				t.Errorf("ValidateMonthlyBill(%v) = %q, expectWarn %v", tt.bill, warning, tt.expectWarn)
			}
		})
	}
}

func TestValidateLoanRanges(t *testing.T) {
	tests := []struct {
		name          string
		rate          float64
		tenure        int
		expectedCount int
	}{
		{"Within range", 10, 5, 0},
		{"Range edges", 5, 10, 0},
		{"Rate too low", 4.99, 5, 1},
		{"Tenure too long", 10, 11, 1},
		{"Both out of range", 20, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := ValidateLoanRanges(tt.rate, tt.tenure)
			if len(warnings) != tt.expectedCount {
				t.Errorf("ValidateLoanRanges(%v, %d) = %v, expected %d warnings",
					tt.rate, tt.tenure, warnings, tt.expectedCount)
			}
		})
	}
}

func TestInputRangesValidateAll(t *testing.T) {
	upfront := InputRanges{
		MonthlyBillAmount:   3000,
		PaymentType:         "upfront",
		InterestRatePercent: 99, // ignored without a loan
		TenureYears:         0,
		YearsHorizon:        10,
		DaysHorizon:         365,
	}
	if warnings := upfront.ValidateAll(); len(warnings) != 0 {
		t.Errorf("expected no warnings for upfront inputs, got %v", warnings)
	}

	emi := InputRanges{
		MonthlyBillAmount:   200,
		PaymentType:         "emi",
		InterestRatePercent: 16,
		TenureYears:         5,
		YearsHorizon:        40,
		DaysHorizon:         5000,
	}
	warnings := emi.ValidateAll()
	if len(warnings) != 4 {
		t.Fatalf("expected 4 warnings, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "Monthly bill") {
		t.Errorf("expected bill warning first, got %q", warnings[0])
	}
}
