// Package calculator runs the full solar investment pipeline for one set of
// calculator inputs.
package calculator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/solar-calculator/pkg/constants"
	"github.com/iwvelando/solar-calculator/pkg/loans"
	"github.com/iwvelando/solar-calculator/pkg/projection"
	"github.com/iwvelando/solar-calculator/pkg/solar"
	"github.com/iwvelando/solar-calculator/pkg/validation"
	"go.uber.org/zap"
)

var (
	// ErrUnknownPaymentType is returned for a payment type other than upfront or emi.
	ErrUnknownPaymentType = errors.New("unknown payment type")

	// ErrUnknownViewMode is returned for a view mode other than yearly, daily or all.
	ErrUnknownViewMode = errors.New("unknown view mode")
)

// PaymentType selects how the system is paid for.
type PaymentType string

const (
	PaymentUpfront PaymentType = constants.PaymentTypeUpfront
	PaymentEMI     PaymentType = constants.PaymentTypeEMI
)

// ParsePaymentType accepts upfront or emi in any letter case.
func ParsePaymentType(value string) (PaymentType, error) {
	switch PaymentType(strings.ToLower(strings.TrimSpace(value))) {
	case PaymentUpfront:
		return PaymentUpfront, nil
	case PaymentEMI:
		return PaymentEMI, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPaymentType, value)
}

// ViewMode selects which projection series are produced.
type ViewMode string

const (
	ViewYearly ViewMode = constants.ViewModeYearly
	ViewDaily  ViewMode = constants.ViewModeDaily
	ViewAll    ViewMode = constants.ViewModeAll
)

// ParseViewMode accepts yearly, daily or all in any letter case.
func ParseViewMode(value string) (ViewMode, error) {
	mode := strings.ToLower(strings.TrimSpace(value))
	if err := validation.ValidateViewMode(mode); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnknownViewMode, err)
	}
	return ViewMode(mode), nil
}

// Input is the tuple of values a calculation is derived from.
type Input struct {
	MonthlyBillAmount   float64     `json:"monthlyBillAmount" yaml:"monthlyBillAmount" mapstructure:"monthlyBillAmount"`
	PaymentType         PaymentType `json:"paymentType" yaml:"paymentType" mapstructure:"paymentType"`
	InterestRatePercent float64     `json:"interestRatePercent" yaml:"interestRatePercent" mapstructure:"interestRatePercent"`
	TenureYears         int         `json:"tenureYears" yaml:"tenureYears" mapstructure:"tenureYears"`
	ViewMode            ViewMode    `json:"viewMode" yaml:"viewMode" mapstructure:"viewMode"`
	YearsHorizon        int         `json:"yearsHorizon" yaml:"yearsHorizon" mapstructure:"yearsHorizon"`
	DaysHorizon         int         `json:"daysHorizon" yaml:"daysHorizon" mapstructure:"daysHorizon"`
}

// DefaultInput returns the calculator's starting state for a given bill.
func DefaultInput(monthlyBillAmount float64) Input {
	return Input{
		MonthlyBillAmount:   monthlyBillAmount,
		PaymentType:         PaymentUpfront,
		InterestRatePercent: constants.DefaultInterestRatePercent,
		TenureYears:         constants.DefaultTenureYears,
		ViewMode:            ViewYearly,
		YearsHorizon:        constants.DefaultYearsHorizon,
		DaysHorizon:         constants.DefaultDaysHorizon,
	}
}

// WithDefaults fills an empty payment type or view mode. Numeric fields are
// taken as given, so an explicit zero tenure or horizon is rejected later
// instead of being replaced. Callers wanting numeric defaults start from
// DefaultInput.
func (in Input) WithDefaults() Input {
	if in.PaymentType == "" {
		in.PaymentType = PaymentUpfront
	}
	if in.ViewMode == "" {
		in.ViewMode = ViewYearly
	}
	return in
}

// Warnings reports inputs that are computable but outside the ranges offered
// to users.
func (in Input) Warnings() []string {
	ranges := validation.InputRanges{
		MonthlyBillAmount:   in.MonthlyBillAmount,
		PaymentType:         string(in.PaymentType),
		InterestRatePercent: in.InterestRatePercent,
		TenureYears:         in.TenureYears,
		YearsHorizon:        in.YearsHorizon,
		DaysHorizon:         in.DaysHorizon,
	}
	return ranges.ValidateAll()
}

// Result holds every structure derived from one Input.
type Result struct {
	Input         Input                    `json:"input"`
	Parameters    solar.Parameters         `json:"parameters"`
	Sizing        solar.Sizing             `json:"sizing"`
	Cost          solar.CostBreakdown      `json:"cost"`
	BreakEven     *solar.BreakEvenPoint    `json:"breakEven"`
	BreakEvenNote string                   `json:"breakEvenNote,omitempty"`
	Loan          *loans.Terms             `json:"loan,omitempty"`
	Schedule      []loans.ScheduleEntry    `json:"schedule,omitempty"`
	Yearly        []projection.YearlyPoint `json:"yearly,omitempty"`
	Daily         []projection.DailyPoint  `json:"daily,omitempty"`
	BreakEvenYear int                      `json:"breakEvenYear"`
	BreakEvenDay  int                      `json:"breakEvenDay"`
	Warnings      []string                 `json:"warnings,omitempty"`
}

// Calculate runs sizing, costing, break-even, the optional loan and the
// requested projections. An undefined break-even is reported through a nil
// BreakEven and a note rather than an error.
func Calculate(logger *zap.Logger, input Input, params solar.Parameters) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	input = input.WithDefaults()

	paymentType, err := ParsePaymentType(string(input.PaymentType))
	if err != nil {
		return nil, err
	}
	input.PaymentType = paymentType

	viewMode, err := ParseViewMode(string(input.ViewMode))
	if err != nil {
		return nil, err
	}
	input.ViewMode = viewMode

	sizing, err := solar.EstimateSizing(input.MonthlyBillAmount, params)
	if err != nil {
		return nil, fmt.Errorf("failed to size system: %w", err)
	}
	logger.Debug(fmt.Sprintf("sized %.0f kW system for a monthly bill of %.2f",
		sizing.RequiredCapacityKw, input.MonthlyBillAmount),
		zap.String("op", "calculator.Calculate"),
	)

	cost := solar.ResolveCost(sizing, params)
	logger.Debug("resolved cost",
		zap.String("op", "calculator.Calculate"),
		zap.Float64("total", cost.TotalCostAmount),
		zap.Float64("subsidy", cost.SubsidyAmount),
		zap.Float64("net", cost.CostAfterSubsidyAmount),
	)

	result := &Result{
		Input:      input,
		Parameters: params,
		Sizing:     sizing,
		Cost:       cost,
		Warnings:   input.Warnings(),
	}

	breakEven, err := solar.SolveBreakEven(solar.NewBreakEvenInput(sizing, cost, params))
	switch {
	case errors.Is(err, solar.ErrNoBreakEven):
		result.BreakEvenNote = err.Error()
		logger.Debug("no break-even point",
			zap.String("op", "calculator.Calculate"),
			zap.Error(err),
		)
	case err != nil:
		return nil, err
	default:
		result.BreakEven = &breakEven
	}

	if paymentType == PaymentEMI {
		terms, err := loans.Amortize(cost.CostAfterSubsidyAmount, input.InterestRatePercent,
			input.TenureYears, input.MonthlyBillAmount)
		if err != nil {
			return nil, fmt.Errorf("failed to amortize loan: %w", err)
		}
		result.Loan = &terms

		result.Schedule, err = loans.NewScheduleGenerator(logger).Generate(terms)
		if err != nil {
			return nil, fmt.Errorf("failed to build amortization schedule: %w", err)
		}
	}

	if viewMode == ViewYearly || viewMode == ViewAll {
		result.Yearly, err = projection.Yearly(input.MonthlyBillAmount, input.YearsHorizon, cost, result.Loan, params)
		if err != nil {
			return nil, fmt.Errorf("failed to project yearly savings: %w", err)
		}
		result.BreakEvenYear = projection.BreakEvenYear(result.Yearly)
	}

	if viewMode == ViewDaily || viewMode == ViewAll {
		result.Daily, err = projection.Daily(input.MonthlyBillAmount, input.DaysHorizon, sizing, cost, params)
		if err != nil {
			return nil, fmt.Errorf("failed to project daily savings: %w", err)
		}
		result.BreakEvenDay = projection.BreakEvenDay(result.Daily)
	}

	logger.Debug("calculation complete",
		zap.String("op", "calculator.Calculate"),
		zap.String("payment_type", string(paymentType)),
		zap.String("view_mode", string(viewMode)),
		zap.Int("break_even_year", result.BreakEvenYear),
		zap.Int("break_even_day", result.BreakEvenDay),
	)

	return result, nil
}
