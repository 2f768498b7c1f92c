// Package constants provides shared constants for the solar-calculator application.
package constants

// Calendar constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerMonth is the billing month length used to turn a monthly bill
	// into daily consumption
	DaysPerMonth = 30

	// DaysPerYear is the number of days used for annual generation figures
	DaysPerYear = 365
)

// Financial constants
const (
	// DecimalPlaces is the precision for currency rounding
	DecimalPlaces = 2

	// CurrencyTolerance is the tolerance for currency comparisons (1 paisa / cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DefaultCurrencySymbol prefixes formatted amounts
	DefaultCurrencySymbol = "₹"
)

// Calculator input ranges enforced by the presentation surfaces. Values
// outside these ranges are still computed but produce warnings.
const (
	MinMonthlyBill = 500.0
	MaxMonthlyBill = 100000.0

	MinInterestRatePercent = 5.0
	MaxInterestRatePercent = 15.0

	MinTenureYears = 3
	MaxTenureYears = 10

	// DefaultYearsHorizon is the yearly projection length shown by default
	DefaultYearsHorizon = 10

	// DefaultDaysHorizon is the daily projection length shown by default
	DefaultDaysHorizon = 365

	// DefaultInterestRatePercent and DefaultTenureYears seed the EMI inputs
	DefaultInterestRatePercent = 10.0
	DefaultTenureYears         = 5
)

// Payment types
const (
	PaymentTypeUpfront = "upfront"
	PaymentTypeEMI     = "emi"
)

// View modes
const (
	ViewModeYearly = "yearly"
	ViewModeDaily  = "daily"
	ViewModeAll    = "all"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "calculation.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "calculation.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (64 KB)
	DefaultMaxUploadSizeBytes int64 = 64 * 1024

	// RequestIDHeader carries the per-request identifier
	RequestIDHeader = "X-Request-ID"
)
