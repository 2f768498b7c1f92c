// Package loans provides EMI (equated monthly installment) loan calculations.
package loans

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/solar-calculator/pkg/constants"
	"github.com/iwvelando/solar-calculator/pkg/mathutil"
	"go.uber.org/zap"
)

var (
	// ErrInvalidTenure is returned for a tenure of zero or fewer years.
	ErrInvalidTenure = errors.New("loan tenure must be at least one year")

	// ErrInvalidLoan is returned for negative or non-finite principal or rate.
	ErrInvalidLoan = errors.New("invalid loan parameters")
)

// Terms holds the repayment figures of a fixed-rate reducing-balance loan.
type Terms struct {
	PrincipalAmount           float64 `json:"principalAmount"`
	AnnualInterestRatePercent float64 `json:"annualInterestRatePercent"`
	TenureYears               int     `json:"tenureYears"`
	MonthlyInstallmentAmount  float64 `json:"monthlyInstallmentAmount"`
	TotalInterestAmount       float64 `json:"totalInterestAmount"`
	TotalRepaymentAmount      float64 `json:"totalRepaymentAmount"`
	NetMonthlyCostAmount      float64 `json:"netMonthlyCostAmount"`
}

// Months returns the number of installments.
func (t Terms) Months() int {
	return t.TenureYears * constants.MonthsPerYear
}

// AnnualInstallmentAmount is the total of twelve installments.
func (t Terms) AnnualInstallmentAmount() float64 {
	return t.MonthlyInstallmentAmount * constants.MonthsPerYear
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
func CalculateMonthlyPayment(principal, annualInterestRate float64, termMonths int) float64 {
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	periodicInterestRate := MonthlyRate(annualInterestRate)
	power := math.Pow(1.00+periodicInterestRate, float64(termMonths))
	return principal * periodicInterestRate * power / (power - 1.00)
}

// MonthlyRate converts an annual percentage rate into a monthly fraction.
func MonthlyRate(annualInterestRate float64) float64 {
	return annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * MonthlyRate(annualInterestRate)
}

// Amortize computes the EMI and repayment totals of a loan. The monthly bill
// is only used for NetMonthlyCostAmount, which is negative when the
// installment is smaller than the bill it replaces.
func Amortize(principal, annualInterestRatePercent float64, tenureYears int, monthlyBillAmount float64) (Terms, error) {
	if tenureYears <= 0 {
		return Terms{}, fmt.Errorf("%w: got %d", ErrInvalidTenure, tenureYears)
	}
	if !mathutil.IsFinite(principal) || principal < 0 {
		return Terms{}, fmt.Errorf("%w: principal %v", ErrInvalidLoan, principal)
	}
	if !mathutil.IsFinite(annualInterestRatePercent) || annualInterestRatePercent < 0 {
		return Terms{}, fmt.Errorf("%w: interest rate %v", ErrInvalidLoan, annualInterestRatePercent)
	}
	if !mathutil.IsFinite(monthlyBillAmount) {
		return Terms{}, fmt.Errorf("%w: monthly bill %v", ErrInvalidLoan, monthlyBillAmount)
	}

	months := tenureYears * constants.MonthsPerYear
	emi := CalculateMonthlyPayment(principal, annualInterestRatePercent, months)
	total := emi * float64(months)

	return Terms{
		PrincipalAmount:           principal,
		AnnualInterestRatePercent: annualInterestRatePercent,
		TenureYears:               tenureYears,
		MonthlyInstallmentAmount:  emi,
		TotalInterestAmount:       total - principal,
		TotalRepaymentAmount:      total,
		NetMonthlyCostAmount:      emi - monthlyBillAmount,
	}, nil
}

// ScheduleEntry holds the values for a given installment.
type ScheduleEntry struct {
	Month              int     `json:"month"`
	Payment            float64 `json:"payment"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
	CumulativeInterest float64 `json:"cumulativeInterest"`
}

// ScheduleGenerator produces month-by-month amortization schedules.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// Generate creates the reducing-balance schedule for the given terms. The
// final installment clears whatever principal is left so the schedule always
// ends at zero.
func (g *ScheduleGenerator) Generate(terms Terms) ([]ScheduleEntry, error) {
	months := terms.Months()
	if months <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTenure, terms.TenureYears)
	}

	schedule := make([]ScheduleEntry, 0, months)
	remaining := terms.PrincipalAmount
	cumulativeInterest := 0.0

	for month := 1; month <= months; month++ {
		var entry ScheduleEntry
		entry.Month = month
		entry.Interest = CalculateInterestPayment(remaining, terms.AnnualInterestRatePercent)
		entry.Principal = terms.MonthlyInstallmentAmount - entry.Interest
		entry.Payment = terms.MonthlyInstallmentAmount

		if month == months || mathutil.Round(remaining-entry.Principal) <= 0 {
			// We will get machine error otherwise so just settle the balance.
			entry.Principal = remaining
			entry.Payment = remaining + entry.Interest
			remaining = 0
		} else {
			remaining -= entry.Principal
		}

		cumulativeInterest += entry.Interest
		entry.RemainingPrincipal = remaining
		entry.CumulativeInterest = cumulativeInterest
		schedule = append(schedule, entry)

		if remaining == 0 && month < months {
			g.logger.Debug(fmt.Sprintf("loan settled early at month %d of %d", month, months),
				zap.String("op", "loans.Generate"),
			)
			break
		}
	}

	g.logger.Debug("generated amortization schedule",
		zap.String("op", "loans.Generate"),
		zap.Int("installments", len(schedule)),
		zap.Float64("emi", terms.MonthlyInstallmentAmount),
		zap.Float64("total_interest", cumulativeInterest),
	)

	return schedule, nil
}
