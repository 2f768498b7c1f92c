// Package projection builds the yearly and daily cost/savings series that
// compare staying on grid power against installing solar.
package projection

import (
	"errors"
	"fmt"

	"github.com/iwvelando/solar-calculator/pkg/constants"
	"github.com/iwvelando/solar-calculator/pkg/loans"
	"github.com/iwvelando/solar-calculator/pkg/mathutil"
	"github.com/iwvelando/solar-calculator/pkg/solar"
)

// ErrInvalidHorizon is returned for a projection length of zero or less.
var ErrInvalidHorizon = errors.New("projection horizon must be positive")

// YearlyPoint is one year of the long-horizon comparison.
type YearlyPoint struct {
	YearIndex               int     `json:"yearIndex"`
	CostWithoutSolarAmount  float64 `json:"costWithoutSolarAmount"`
	CostWithSolarAmount     float64 `json:"costWithSolarAmount"`
	EmiPaymentAmount        float64 `json:"emiPaymentAmount"`
	CumulativeSavingsAmount float64 `json:"cumulativeSavingsAmount"`
}

// NetSavingsAmount is the saving contributed by this year alone.
func (p YearlyPoint) NetSavingsAmount() float64 {
	return p.CostWithoutSolarAmount - p.CostWithSolarAmount - p.EmiPaymentAmount
}

// Yearly projects years of grid cost against solar cost. Grid cost grows by
// the yearly bill increase rate. Solar cost is the net installation cost in
// year 1 and maintenance afterwards, whatever the payment type. A loan adds
// its installments as a separate term for each year of its tenure.
func Yearly(monthlyBillAmount float64, years int, cost solar.CostBreakdown, loan *loans.Terms, params solar.Parameters) ([]YearlyPoint, error) {
	if years <= 0 {
		return nil, fmt.Errorf("%w: got %d years", ErrInvalidHorizon, years)
	}
	if err := solar.ValidateBill(monthlyBillAmount); err != nil {
		return nil, err
	}

	annualBill := monthlyBillAmount * constants.MonthsPerYear

	points := make([]YearlyPoint, 0, years)
	cumulative := 0.0
	for year := 1; year <= years; year++ {
		point := YearlyPoint{
			YearIndex:              year,
			CostWithoutSolarAmount: mathutil.Compound(annualBill, params.YearlyBillIncreaseRate, year-1),
		}

		if year == 1 {
			point.CostWithSolarAmount = cost.CostAfterSubsidyAmount
		} else {
			point.CostWithSolarAmount = cost.AnnualMaintenanceAmount
		}

		if loan != nil && year <= loan.TenureYears {
			point.EmiPaymentAmount = loan.AnnualInstallmentAmount()
		}

		cumulative += point.NetSavingsAmount()
		point.CumulativeSavingsAmount = cumulative
		if !mathutil.IsFinite(point.CostWithoutSolarAmount) || !mathutil.IsFinite(cumulative) {
			return nil, fmt.Errorf("%w: year %d of a %g bill overflows", solar.ErrInvalidBill, year, monthlyBillAmount)
		}
		points = append(points, point)
	}

	return points, nil
}

// BreakEvenYear returns the first year whose cumulative savings turn positive
// after being zero or negative the year before. A first year that is already
// positive counts as year 1. It returns 0 when the series never crosses.
func BreakEvenYear(points []YearlyPoint) int {
	previous := 0.0
	for _, point := range points {
		if previous <= 0 && point.CumulativeSavingsAmount > 0 {
			return point.YearIndex
		}
		previous = point.CumulativeSavingsAmount
	}
	return 0
}
