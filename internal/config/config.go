// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/solar-calculator/internal/calculator"
	"github.com/iwvelando/solar-calculator/pkg/constants"
	"github.com/iwvelando/solar-calculator/pkg/solar"
	"github.com/iwvelando/solar-calculator/pkg/validation"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. SOLAR_CALCULATION_MONTHLYBILLAMOUNT.
const EnvPrefix = "SOLAR"

// Configuration holds all configuration for solar-calculator.
type Configuration struct {
	Calculation calculator.Input `mapstructure:"calculation" yaml:"calculation"`
	Parameters  solar.Parameters `mapstructure:"parameters" yaml:"parameters"`
	Logging     LoggingConfig    `mapstructure:"logging" yaml:"logging,omitempty"`
	Output      OutputConfig     `mapstructure:"output" yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format         string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv
	CurrencySymbol string `mapstructure:"currencySymbol" yaml:"currencySymbol,omitempty"`
}

// NewViper returns a viper instance carrying every default so that a missing
// config file still yields a complete configuration.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	input := calculator.DefaultInput(0)
	v.SetDefault("calculation.paymentType", string(input.PaymentType))
	v.SetDefault("calculation.interestRatePercent", input.InterestRatePercent)
	v.SetDefault("calculation.tenureYears", input.TenureYears)
	v.SetDefault("calculation.viewMode", string(input.ViewMode))
	v.SetDefault("calculation.yearsHorizon", input.YearsHorizon)
	v.SetDefault("calculation.daysHorizon", input.DaysHorizon)

	params := solar.DefaultParameters()
	v.SetDefault("parameters.unitPrice", params.UnitPrice)
	v.SetDefault("parameters.costPerKw", params.CostPerKw)
	v.SetDefault("parameters.baseGenerationPerKw", params.BaseGenerationPerKw)
	v.SetDefault("parameters.maxGenerationPerKw", params.MaxGenerationPerKw)
	v.SetDefault("parameters.yearlyMaintenanceRate", params.YearlyMaintenanceRate)
	v.SetDefault("parameters.yearlyBillIncreaseRate", params.YearlyBillIncreaseRate)
	v.SetDefault("parameters.co2FactorPerUnit", params.Co2FactorPerUnit)
	v.SetDefault("parameters.variableCostPerUnit", params.VariableCostPerUnit)
	tiers := make([]map[string]interface{}, 0, len(params.SubsidyTiers))
	for _, tier := range params.SubsidyTiers {
		tiers = append(tiers, map[string]interface{}{
			"maxCapacityKw": tier.MaxCapacityKw,
			"amount":        tier.Amount,
		})
	}
	v.SetDefault("parameters.subsidyTiers", tiers)
	v.SetDefault("parameters.subsidyCap", params.SubsidyCap)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("output.currencySymbol", constants.DefaultCurrencySymbol)

	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there on top of the defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	return Load(NewViper(), configPath)
}

// Load reads configPath into v and decodes the result. An empty configPath
// decodes defaults, environment and any flags already bound to v.
func Load(v *viper.Viper, configPath string) (*Configuration, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r on top of the
// defaults.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := NewViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Calculation.MonthlyBillAmount == 0 {
		warnings = append(warnings, "No monthly bill configured; pass --bill or set calculation.monthlyBillAmount")
	} else {
		warnings = append(warnings, c.Calculation.Warnings()...)
	}

	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	if err := c.Parameters.Validate(); err != nil {
		warnings = append(warnings, err.Error())
	}

	return warnings
}
