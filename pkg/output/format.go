// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/solar-calculator/internal/calculator"
	"github.com/iwvelando/solar-calculator/pkg/constants"
	"github.com/iwvelando/solar-calculator/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat writes a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, result *calculator.Result, symbol string) {
	if symbol == "" {
		symbol = constants.DefaultCurrencySymbol
	}
	money := func(amount float64) string {
		return format.CurrencyWithSymbol(amount, symbol)
	}
	p := message.NewPrinter(language.English)

	_, _ = fmt.Fprintf(w, "--- Solar system for a monthly bill of %s ---\n", money(result.Input.MonthlyBillAmount))
	_, _ = p.Fprintf(w, "Required capacity      | %.0f kW\n", result.Sizing.RequiredCapacityKw)
	_, _ = p.Fprintf(w, "Daily consumption      | %.2f units\n", result.Sizing.DailyConsumptionUnits)
	_, _ = p.Fprintf(w, "Daily generation       | %.2f units (up to %.2f)\n",
		result.Sizing.DailyGenerationUnits, result.Sizing.MaxDailyGenerationUnits)
	_, _ = fmt.Fprintf(w, "Monthly savings        | %s\n", money(result.Sizing.MonthlySavingsAmount))
	_, _ = fmt.Fprintf(w, "Annual savings         | %s\n", money(result.Sizing.AnnualSavingsAmount))
	_, _ = fmt.Fprintf(w, "Total cost             | %s\n", money(result.Cost.TotalCostAmount))
	_, _ = fmt.Fprintf(w, "Subsidy                | %s\n", money(result.Cost.SubsidyAmount))
	_, _ = fmt.Fprintf(w, "Cost after subsidy     | %s\n", money(result.Cost.CostAfterSubsidyAmount))
	_, _ = fmt.Fprintf(w, "Annual maintenance     | %s\n", money(result.Cost.AnnualMaintenanceAmount))
	_, _ = p.Fprintf(w, "CO2 reduction          | %.2f kg/year\n", result.Cost.Co2ReductionKgPerYear)

	_, _ = fmt.Fprintf(w, "\n--- Break-even ---\n")
	if result.BreakEven == nil {
		_, _ = fmt.Fprintf(w, "Not reachable: %s\n", result.BreakEvenNote)
	} else {
		_, _ = p.Fprintf(w, "Units to break even    | %.2f\n", result.BreakEven.UnitsToBreakEven)
		_, _ = fmt.Fprintf(w, "Sales value            | %s\n", money(result.BreakEven.SalesValueToBreakEven))
		_, _ = p.Fprintf(w, "Days to break even     | %d (%.1f years)\n",
			result.BreakEven.DaysToBreakEven, float64(result.BreakEven.DaysToBreakEven)/constants.DaysPerYear)
	}

	if result.Loan != nil {
		_, _ = fmt.Fprintf(w, "\n--- EMI at %.2f%% over %d years ---\n",
			result.Loan.AnnualInterestRatePercent, result.Loan.TenureYears)
		_, _ = fmt.Fprintf(w, "Principal              | %s\n", money(result.Loan.PrincipalAmount))
		_, _ = fmt.Fprintf(w, "Monthly installment    | %s\n", money(result.Loan.MonthlyInstallmentAmount))
		_, _ = fmt.Fprintf(w, "Total interest         | %s\n", money(result.Loan.TotalInterestAmount))
		_, _ = fmt.Fprintf(w, "Total repayment        | %s\n", money(result.Loan.TotalRepaymentAmount))
		_, _ = fmt.Fprintf(w, "Net monthly cost       | %s\n", money(result.Loan.NetMonthlyCostAmount))
	}

	if len(result.Yearly) > 0 {
		_, _ = fmt.Fprintf(w, "\n--- Yearly projection ---\n")
		_, _ = fmt.Fprintf(w, "Year | Without Solar | With Solar | EMI | Cumulative Savings\n")
		_, _ = fmt.Fprintf(w, "____ | _____________ | __________ | ___ | __________________\n")
		for _, point := range result.Yearly {
			_, _ = fmt.Fprintf(w, "%4d | %s | %s | %s | %s\n", point.YearIndex,
				money(point.CostWithoutSolarAmount), money(point.CostWithSolarAmount),
				money(point.EmiPaymentAmount), money(point.CumulativeSavingsAmount))
		}
		_, _ = fmt.Fprintf(w, "%s\n", breakEvenSummary("year", result.BreakEvenYear))
	}

	if len(result.Daily) > 0 {
		_, _ = fmt.Fprintf(w, "\n--- Daily projection ---\n")
		_, _ = fmt.Fprintf(w, "Day | Without Solar | With Solar | Profit\n")
		_, _ = fmt.Fprintf(w, "___ | _____________ | __________ | ______\n")
		for _, point := range result.Daily {
			_, _ = fmt.Fprintf(w, "%d | %s | %s | %s\n", point.DayIndex,
				money(point.CostWithoutSolarAmount), money(point.CostWithSolarAmount), money(point.ProfitAmount))
		}
		_, _ = fmt.Fprintf(w, "%s\n", breakEvenSummary("day", result.BreakEvenDay))
	}

	if len(result.Warnings) > 0 {
		_, _ = fmt.Fprintf(w, "\nWarnings: %s\n", strings.Join(result.Warnings, "; "))
	}
}

func breakEvenSummary(unit string, index int) string {
	if index == 0 {
		return fmt.Sprintf("No break-even %s within the horizon", unit)
	}
	return fmt.Sprintf("Break-even %s: %d", unit, index)
}

type metric struct {
	name  string
	value float64
}

// CsvFormat writes the result in comma-separated value format: one
// metric/value block followed by one block per projection, separated by
// blank lines.
func CsvFormat(w io.Writer, result *calculator.Result) {
	_, _ = fmt.Fprintf(w, `"metric","value"`+"\n")
	metrics := []metric{
		{"monthly_bill", result.Input.MonthlyBillAmount},
		{"required_capacity_kw", result.Sizing.RequiredCapacityKw},
		{"daily_generation_units", result.Sizing.DailyGenerationUnits},
		{"max_daily_generation_units", result.Sizing.MaxDailyGenerationUnits},
		{"monthly_savings", result.Sizing.MonthlySavingsAmount},
		{"annual_savings", result.Sizing.AnnualSavingsAmount},
		{"total_cost", result.Cost.TotalCostAmount},
		{"subsidy", result.Cost.SubsidyAmount},
		{"cost_after_subsidy", result.Cost.CostAfterSubsidyAmount},
		{"annual_maintenance", result.Cost.AnnualMaintenanceAmount},
		{"co2_reduction_kg_per_year", result.Cost.Co2ReductionKgPerYear},
	}
	if result.BreakEven != nil {
		metrics = append(metrics, []metric{
			{"break_even_units", result.BreakEven.UnitsToBreakEven},
			{"break_even_sales_value", result.BreakEven.SalesValueToBreakEven},
			{"break_even_days", float64(result.BreakEven.DaysToBreakEven)},
		}...)
	}
	if result.Loan != nil {
		metrics = append(metrics, []metric{
			{"loan_principal", result.Loan.PrincipalAmount},
			{"emi", result.Loan.MonthlyInstallmentAmount},
			{"total_interest", result.Loan.TotalInterestAmount},
			{"total_repayment", result.Loan.TotalRepaymentAmount},
		}...)
	}
	for _, m := range metrics {
		_, _ = fmt.Fprintf(w, `"%s","%.2f"`+"\n", m.name, m.value)
	}

	if len(result.Yearly) > 0 {
		_, _ = fmt.Fprintf(w, "\n"+`"year","cost_without_solar","cost_with_solar","emi_payment","cumulative_savings"`+"\n")
		for _, point := range result.Yearly {
			_, _ = fmt.Fprintf(w, `"%d","%.2f","%.2f","%.2f","%.2f"`+"\n", point.YearIndex,
				point.CostWithoutSolarAmount, point.CostWithSolarAmount,
				point.EmiPaymentAmount, point.CumulativeSavingsAmount)
		}
	}

	if len(result.Daily) > 0 {
		_, _ = fmt.Fprintf(w, "\n"+`"day","cost_without_solar","cost_with_solar","profit","cumulative_savings"`+"\n")
		for _, point := range result.Daily {
			_, _ = fmt.Fprintf(w, `"%d","%.2f","%.2f","%.2f","%.2f"`+"\n", point.DayIndex,
				point.CostWithoutSolarAmount, point.CostWithSolarAmount,
				point.ProfitAmount, point.CumulativeSavingsAmount)
		}
	}
}
