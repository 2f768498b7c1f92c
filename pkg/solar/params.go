// Package solar sizes a rooftop solar system from an electricity bill and
// resolves its cost, subsidy, and break-even point.
package solar

import (
	"fmt"
	"math"
	"sort"
)

// SubsidyTier grants Amount to systems of at most MaxCapacityKw.
type SubsidyTier struct {
	MaxCapacityKw float64 `json:"maxCapacityKw" yaml:"maxCapacityKw" mapstructure:"maxCapacityKw"`
	Amount        float64 `json:"amount" yaml:"amount" mapstructure:"amount"`
}

// Parameters holds the business constants used by every calculation.
type Parameters struct {
	UnitPrice              float64       `json:"unitPrice" yaml:"unitPrice" mapstructure:"unitPrice"`                                    // currency per unit (kWh)
	CostPerKw              float64       `json:"costPerKw" yaml:"costPerKw" mapstructure:"costPerKw"`                                    // installed cost per kW
	BaseGenerationPerKw    float64       `json:"baseGenerationPerKw" yaml:"baseGenerationPerKw" mapstructure:"baseGenerationPerKw"`      // units per kW per day
	MaxGenerationPerKw     float64       `json:"maxGenerationPerKw" yaml:"maxGenerationPerKw" mapstructure:"maxGenerationPerKw"`         // units per kW per day
	YearlyMaintenanceRate  float64       `json:"yearlyMaintenanceRate" yaml:"yearlyMaintenanceRate" mapstructure:"yearlyMaintenanceRate"` // fraction of installed cost
	YearlyBillIncreaseRate float64       `json:"yearlyBillIncreaseRate" yaml:"yearlyBillIncreaseRate" mapstructure:"yearlyBillIncreaseRate"`
	Co2FactorPerUnit       float64       `json:"co2FactorPerUnit" yaml:"co2FactorPerUnit" mapstructure:"co2FactorPerUnit"` // kg per unit
	VariableCostPerUnit    float64       `json:"variableCostPerUnit" yaml:"variableCostPerUnit" mapstructure:"variableCostPerUnit"`
	SubsidyTiers           []SubsidyTier `json:"subsidyTiers" yaml:"subsidyTiers" mapstructure:"subsidyTiers"`
	SubsidyCap             float64       `json:"subsidyCap" yaml:"subsidyCap" mapstructure:"subsidyCap"`
}

// Reference values for DefaultParameters.
const (
	DefaultUnitPrice              = 9.0
	DefaultCostPerKw              = 90000.0
	DefaultBaseGenerationPerKw    = 3.8
	DefaultMaxGenerationPerKw     = 4.5
	DefaultYearlyMaintenanceRate  = 0.01
	DefaultYearlyBillIncreaseRate = 0.05
	DefaultCo2FactorPerUnit       = 0.85
	DefaultSubsidyCap             = 78000.0
)

// DefaultParameters returns the reference parameter set, including the
// capacity-based subsidy table.
func DefaultParameters() Parameters {
	return Parameters{
		UnitPrice:              DefaultUnitPrice,
		CostPerKw:              DefaultCostPerKw,
		BaseGenerationPerKw:    DefaultBaseGenerationPerKw,
		MaxGenerationPerKw:     DefaultMaxGenerationPerKw,
		YearlyMaintenanceRate:  DefaultYearlyMaintenanceRate,
		YearlyBillIncreaseRate: DefaultYearlyBillIncreaseRate,
		Co2FactorPerUnit:       DefaultCo2FactorPerUnit,
		VariableCostPerUnit:    0,
		SubsidyTiers:           DefaultSubsidyTiers(),
		SubsidyCap:             DefaultSubsidyCap,
	}
}

// DefaultSubsidyTiers returns a fresh copy of the reference subsidy table.
func DefaultSubsidyTiers() []SubsidyTier {
	return []SubsidyTier{
		{MaxCapacityKw: 1, Amount: 30000},
		{MaxCapacityKw: 2, Amount: 60000},
		{MaxCapacityKw: 3, Amount: 78000},
	}
}

// Subsidy returns the subsidy for a system of the given capacity. A capacity
// equal to a tier boundary belongs to that tier; anything above the last tier
// receives SubsidyCap.
func (p Parameters) Subsidy(capacityKw float64) float64 {
	for _, tier := range p.SubsidyTiers {
		if capacityKw <= tier.MaxCapacityKw {
			return tier.Amount
		}
	}
	return p.SubsidyCap
}

// Validate checks that the parameters can drive a calculation.
func (p Parameters) Validate() error {
	positive := map[string]float64{
		"unitPrice":           p.UnitPrice,
		"costPerKw":           p.CostPerKw,
		"baseGenerationPerKw": p.BaseGenerationPerKw,
		"maxGenerationPerKw":  p.MaxGenerationPerKw,
	}
	names := make([]string, 0, len(positive))
	for name := range positive {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if v := positive[name]; !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidParameters, name, v)
		}
	}

	if p.MaxGenerationPerKw < p.BaseGenerationPerKw {
		return fmt.Errorf("%w: maxGenerationPerKw %v is below baseGenerationPerKw %v",
			ErrInvalidParameters, p.MaxGenerationPerKw, p.BaseGenerationPerKw)
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"yearlyMaintenanceRate", p.YearlyMaintenanceRate},
		{"yearlyBillIncreaseRate", p.YearlyBillIncreaseRate},
		{"co2FactorPerUnit", p.Co2FactorPerUnit},
		{"variableCostPerUnit", p.VariableCostPerUnit},
		{"subsidyCap", p.SubsidyCap},
	}
	for _, field := range nonNegative {
		if !(field.value >= 0) || math.IsInf(field.value, 0) {
			return fmt.Errorf("%w: %s must be zero or positive, got %v", ErrInvalidParameters, field.name, field.value)
		}
	}

	if len(p.SubsidyTiers) == 0 {
		return fmt.Errorf("%w: subsidy table is empty", ErrInvalidParameters)
	}
	for i, tier := range p.SubsidyTiers {
		if !(tier.MaxCapacityKw > 0) || !(tier.Amount >= 0) {
			return fmt.Errorf("%w: subsidy tier %d has invalid values %+v", ErrInvalidParameters, i, tier)
		}
		if i > 0 && tier.MaxCapacityKw <= p.SubsidyTiers[i-1].MaxCapacityKw {
			return fmt.Errorf("%w: subsidy tiers must be sorted by ascending capacity", ErrInvalidParameters)
		}
	}

	return nil
}
