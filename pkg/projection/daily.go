package projection

import (
	"fmt"

	"github.com/iwvelando/solar-calculator/pkg/constants"
	"github.com/iwvelando/solar-calculator/pkg/mathutil"
	"github.com/iwvelando/solar-calculator/pkg/solar"
)

// DailyPoint is one day of the short-horizon comparison.
type DailyPoint struct {
	DayIndex                int     `json:"dayIndex"`
	CostWithoutSolarAmount  float64 `json:"costWithoutSolarAmount"`
	CostWithSolarAmount     float64 `json:"costWithSolarAmount"`
	ProfitAmount            float64 `json:"profitAmount"`
	CumulativeSavingsAmount float64 `json:"cumulativeSavingsAmount"`
}

// Daily projects days of linear grid cost against the up-front solar cost plus
// accrued maintenance. Profit is the value of the generated units less the
// solar cost to date.
//
// CumulativeSavingsAmount deliberately repeats ProfitAmount: profit at day i
// already accumulates from day 0.
func Daily(monthlyBillAmount float64, days int, sizing solar.Sizing, cost solar.CostBreakdown, params solar.Parameters) ([]DailyPoint, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: got %d days", ErrInvalidHorizon, days)
	}
	if err := solar.ValidateBill(monthlyBillAmount); err != nil {
		return nil, err
	}

	dailyBill := monthlyBillAmount / constants.DaysPerMonth
	dailyMaintenance := cost.AnnualMaintenanceAmount / constants.DaysPerYear
	dailySavings := sizing.DailyGenerationUnits * params.UnitPrice

	points := make([]DailyPoint, 0, days)
	for day := 1; day <= days; day++ {
		d := float64(day)
		profit := dailySavings*d - cost.CostAfterSubsidyAmount - dailyMaintenance*d
		if !mathutil.IsFinite(dailyBill*d) || !mathutil.IsFinite(profit) {
			return nil, fmt.Errorf("%w: day %d of a %g bill overflows", solar.ErrInvalidBill, day, monthlyBillAmount)
		}
		points = append(points, DailyPoint{
			DayIndex:                day,
			CostWithoutSolarAmount:  dailyBill * d,
			CostWithSolarAmount:     cost.CostAfterSubsidyAmount + dailyMaintenance*d,
			ProfitAmount:            profit,
			CumulativeSavingsAmount: profit,
		})
	}

	return points, nil
}

// BreakEvenDay returns the first day whose profit turns positive, or 0 when
// the horizon ends first.
func BreakEvenDay(points []DailyPoint) int {
	previous := 0.0
	for _, point := range points {
		if previous <= 0 && point.ProfitAmount > 0 {
			return point.DayIndex
		}
		previous = point.ProfitAmount
	}
	return 0
}
