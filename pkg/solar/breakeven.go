package solar

import (
	"fmt"
	"math"

	"github.com/iwvelando/solar-calculator/pkg/constants"
	"github.com/iwvelando/solar-calculator/pkg/mathutil"
)

// BreakEvenInput holds the cost-volume-profit inputs of the break-even solver.
type BreakEvenInput struct {
	FixedCostAmount        float64
	SellingPricePerUnit    float64
	VariableCostPerUnit    float64
	MaintenanceCostPerUnit float64
	DailyGenerationUnits   float64
}

// BreakEvenPoint is the volume, value, and time needed to recover a fixed cost.
type BreakEvenPoint struct {
	UnitsToBreakEven      float64 `json:"unitsToBreakEven"`
	SalesValueToBreakEven float64 `json:"salesValueToBreakEven"`
	DaysToBreakEven       int     `json:"daysToBreakEven"`
}

// Margin is the contribution of every generated unit towards the fixed cost.
func (in BreakEvenInput) Margin() float64 {
	return in.SellingPricePerUnit - in.VariableCostPerUnit - in.MaintenanceCostPerUnit
}

// SolveBreakEven applies the classic break-even formula. It returns
// ErrNoBreakEven rather than a number when the margin or daily generation is
// not positive. Days are rounded up.
func SolveBreakEven(in BreakEvenInput) (BreakEvenPoint, error) {
	for _, v := range []float64{in.FixedCostAmount, in.SellingPricePerUnit, in.VariableCostPerUnit,
		in.MaintenanceCostPerUnit, in.DailyGenerationUnits} {
		if !mathutil.IsFinite(v) {
			return BreakEvenPoint{}, fmt.Errorf("%w: non-finite input %+v", ErrNoBreakEven, in)
		}
	}

	margin := in.Margin()
	if margin <= 0 {
		return BreakEvenPoint{}, fmt.Errorf("%w: margin %.4f per unit", ErrNoBreakEven, margin)
	}
	if in.DailyGenerationUnits <= 0 {
		return BreakEvenPoint{}, fmt.Errorf("%w: daily generation %.4f units", ErrNoBreakEven, in.DailyGenerationUnits)
	}
	if in.FixedCostAmount <= 0 {
		return BreakEvenPoint{}, nil
	}

	units := in.FixedCostAmount / margin
	days := mathutil.CeilWhole(units / in.DailyGenerationUnits)
	if days > math.MaxInt32 {
		return BreakEvenPoint{}, fmt.Errorf("%w: payback of %.0f days is unbounded", ErrNoBreakEven, days)
	}

	return BreakEvenPoint{
		UnitsToBreakEven:      units,
		SalesValueToBreakEven: units * in.SellingPricePerUnit,
		DaysToBreakEven:       int(days),
	}, nil
}

// MaintenanceCostPerUnit spreads the annual maintenance of a system over the
// units it generates in a year.
func MaintenanceCostPerUnit(cost CostBreakdown, sizing Sizing) float64 {
	annualUnits := sizing.DailyGenerationUnits * constants.DaysPerYear
	if annualUnits <= 0 {
		return 0
	}
	return cost.AnnualMaintenanceAmount / annualUnits
}

// NewBreakEvenInput builds the solver input for a sized and priced system.
func NewBreakEvenInput(sizing Sizing, cost CostBreakdown, params Parameters) BreakEvenInput {
	return BreakEvenInput{
		FixedCostAmount:        cost.CostAfterSubsidyAmount,
		SellingPricePerUnit:    params.UnitPrice,
		VariableCostPerUnit:    params.VariableCostPerUnit,
		MaintenanceCostPerUnit: MaintenanceCostPerUnit(cost, sizing),
		DailyGenerationUnits:   sizing.DailyGenerationUnits,
	}
}
