package validation

import (
	"fmt"

	"github.com/iwvelando/solar-calculator/pkg/constants"
)

// InputRanges holds the calculator inputs checked against the practical
// ranges offered by the presentation layer.
type InputRanges struct {
	MonthlyBillAmount   float64
	PaymentType         string
	InterestRatePercent float64
	TenureYears         int
	YearsHorizon        int
	DaysHorizon         int
}

// ValidateMonthlyBill warns when the bill is outside the supported slider range.
func ValidateMonthlyBill(bill float64) string {
	if bill < constants.MinMonthlyBill || bill > constants.MaxMonthlyBill {
		return fmt.Sprintf("Monthly bill %.2f is outside the supported range %.0f-%.0f",
			bill, constants.MinMonthlyBill, constants.MaxMonthlyBill)
	}
	return ""
}

// ValidateLoanRanges warns when EMI inputs are outside the offered ranges.
func ValidateLoanRanges(ratePercent float64, tenureYears int) []string {
	var warnings []string

	if ratePercent < constants.MinInterestRatePercent || ratePercent > constants.MaxInterestRatePercent {
		warnings = append(warnings, fmt.Sprintf("Interest rate %.2f%% is outside the offered range %.0f%%-%.0f%%",
			ratePercent, constants.MinInterestRatePercent, constants.MaxInterestRatePercent))
	}

	if tenureYears < constants.MinTenureYears || tenureYears > constants.MaxTenureYears {
		warnings = append(warnings, fmt.Sprintf("Tenure of %d years is outside the offered range %d-%d",
			tenureYears, constants.MinTenureYears, constants.MaxTenureYears))
	}

	return warnings
}

// ValidateAll checks every input and returns warnings. Nothing here rejects a
// calculation; hard errors are raised by the calculation packages.
func (r InputRanges) ValidateAll() []string {
	var warnings []string

	if warning := ValidateMonthlyBill(r.MonthlyBillAmount); warning != "" {
		warnings = append(warnings, warning)
	}

	if r.PaymentType == constants.PaymentTypeEMI {
		warnings = append(warnings, ValidateLoanRanges(r.InterestRatePercent, r.TenureYears)...)
	}

	if r.YearsHorizon > constants.DefaultYearsHorizon*3 {
		warnings = append(warnings, fmt.Sprintf("Yearly horizon of %d years exceeds %d; long projections assume constant prices",
			r.YearsHorizon, constants.DefaultYearsHorizon*3))
	}

	if r.DaysHorizon > constants.DefaultDaysHorizon*10 {
		warnings = append(warnings, fmt.Sprintf("Daily horizon of %d days exceeds %d; use the yearly view instead",
			r.DaysHorizon, constants.DefaultDaysHorizon*10))
	}

	return warnings
}
