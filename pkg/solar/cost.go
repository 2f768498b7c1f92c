package solar

import "github.com/iwvelando/solar-calculator/pkg/constants"

// CostBreakdown is the installation cost of a sized system.
type CostBreakdown struct {
	TotalCostAmount         float64 `json:"totalCostAmount"`
	SubsidyAmount           float64 `json:"subsidyAmount"`
	CostAfterSubsidyAmount  float64 `json:"costAfterSubsidyAmount"`
	AnnualMaintenanceAmount float64 `json:"annualMaintenanceAmount"`
	Co2ReductionKgPerYear   float64 `json:"co2ReductionKgPerYear"`
}

// ResolveCost prices the system and applies the capacity-based subsidy.
func ResolveCost(sizing Sizing, params Parameters) CostBreakdown {
	total := sizing.RequiredCapacityKw * params.CostPerKw
	subsidy := params.Subsidy(sizing.RequiredCapacityKw)

	// Only an overridden table can push the subsidy past the cost.
	net := total - subsidy
	if net < 0 {
		net = 0
	}

	return CostBreakdown{
		TotalCostAmount:         total,
		SubsidyAmount:           subsidy,
		CostAfterSubsidyAmount:  net,
		AnnualMaintenanceAmount: total * params.YearlyMaintenanceRate,
		Co2ReductionKgPerYear:   sizing.DailyGenerationUnits * params.Co2FactorPerUnit * constants.DaysPerYear,
	}
}
