package solar

import (
	"fmt"

	"github.com/iwvelando/solar-calculator/pkg/constants"
	"github.com/iwvelando/solar-calculator/pkg/mathutil"
)

// Sizing is the system size and generation derived from a monthly bill.
type Sizing struct {
	MonthlyBillAmount       float64 `json:"monthlyBillAmount"`
	DailyConsumptionUnits   float64 `json:"dailyConsumptionUnits"`
	RequiredCapacityKw      float64 `json:"requiredCapacityKw"`
	DailyGenerationUnits    float64 `json:"dailyGenerationUnits"`
	MaxDailyGenerationUnits float64 `json:"maxDailyGenerationUnits"`
	MonthlySavingsAmount    float64 `json:"monthlySavingsAmount"`
	AnnualSavingsAmount     float64 `json:"annualSavingsAmount"`
}

// ValidateBill rejects bills that are zero, negative, NaN or infinite.
func ValidateBill(monthlyBillAmount float64) error {
	if !mathutil.IsFinite(monthlyBillAmount) || monthlyBillAmount <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidBill, monthlyBillAmount)
	}
	return nil
}

// EstimateSizing converts a monthly bill into the smallest whole-kW system
// whose base generation covers the bill's daily consumption. Capacity is
// always rounded up.
func EstimateSizing(monthlyBillAmount float64, params Parameters) (Sizing, error) {
	if err := ValidateBill(monthlyBillAmount); err != nil {
		return Sizing{}, err
	}
	if err := params.Validate(); err != nil {
		return Sizing{}, err
	}

	dailyConsumption := monthlyBillAmount / (constants.DaysPerMonth * params.UnitPrice)
	capacity := mathutil.CeilWhole(dailyConsumption / params.BaseGenerationPerKw)
	if capacity < 1 {
		capacity = 1
	}

	dailyGeneration := capacity * params.BaseGenerationPerKw
	dailySavings := dailyGeneration * params.UnitPrice

	// A finite bill can still be large enough that the system's price or
	// yearly figures overflow.
	for _, derived := range []float64{
		capacity * params.CostPerKw,
		capacity * params.MaxGenerationPerKw,
		dailySavings * constants.DaysPerYear,
		dailyGeneration * params.Co2FactorPerUnit * constants.DaysPerYear,
	} {
		if !mathutil.IsFinite(derived) {
			return Sizing{}, fmt.Errorf("%w: %v is too large to size", ErrInvalidBill, monthlyBillAmount)
		}
	}

	return Sizing{
		MonthlyBillAmount:       monthlyBillAmount,
		DailyConsumptionUnits:   dailyConsumption,
		RequiredCapacityKw:      capacity,
		DailyGenerationUnits:    dailyGeneration,
		MaxDailyGenerationUnits: capacity * params.MaxGenerationPerKw,
		MonthlySavingsAmount:    dailySavings * constants.DaysPerMonth,
		AnnualSavingsAmount:     dailySavings * constants.DaysPerYear,
	}, nil
}
