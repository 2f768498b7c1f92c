package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/iwvelando/solar-calculator/internal/calculator"
	"github.com/iwvelando/solar-calculator/internal/config"
	"github.com/iwvelando/solar-calculator/pkg/constants"
	"github.com/iwvelando/solar-calculator/pkg/output"
	"github.com/iwvelando/solar-calculator/pkg/validation"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// flagBindings maps command line flags onto configuration keys.
var flagBindings = map[string]string{
	"bill":          "calculation.monthlyBillAmount",
	"payment-type":  "calculation.paymentType",
	"interest-rate": "calculation.interestRatePercent",
	"tenure":        "calculation.tenureYears",
	"view":          "calculation.viewMode",
	"years":         "calculation.yearsHorizon",
	"days":          "calculation.daysHorizon",
	"output-format": "output.format",
}

func main() {
	flags := pflag.NewFlagSet("solar-calculator", pflag.ExitOnError)
	configLocation := flags.StringP("config", "c", constants.DefaultConfigFile, "path to configuration file")
	logLevel := flags.String("log-level", "", "log level override (debug, info, warn, error)")
	flags.Float64P("bill", "b", 0, "average monthly electricity bill")
	flags.StringP("payment-type", "p", constants.PaymentTypeUpfront, "payment type: upfront, emi")
	flags.Float64("interest-rate", constants.DefaultInterestRatePercent, "EMI annual interest rate in percent")
	flags.Int("tenure", constants.DefaultTenureYears, "EMI tenure in years")
	flags.String("view", constants.ViewModeYearly, "projection view: yearly, daily, all")
	flags.Int("years", constants.DefaultYearsHorizon, "yearly projection horizon")
	flags.Int("days", constants.DefaultDaysHorizon, "daily projection horizon")
	flags.StringP("output-format", "o", "", "type of output override: pretty, csv")
	_ = flags.Parse(os.Args[1:])

	v := config.NewViper()
	for name, key := range flagBindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to bind flag %s\", \"error\": \"%v\"}\n", name, err)
			os.Exit(1)
		}
	}

	// A missing default config file is fine when the bill comes from flags.
	path := *configLocation
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && !flags.Changed("config") {
		path = ""
	}

	conf, err := config.Load(v, path)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := config.BuildLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat := conf.Output.Format
	if outputFormat == "" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			outputFormat = constants.OutputFormatPretty
		} else {
			outputFormat = constants.OutputFormatCSV
		}
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	result, err := calculator.Calculate(logger, conf.Calculation, conf.Parameters)
	if err != nil {
		logger.Fatal("failed to compute solar calculation",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if result.BreakEven == nil {
		logger.Warn("break-even point is not defined",
			zap.String("op", "main"),
			zap.String("reason", result.BreakEvenNote),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, result, conf.Output.CurrencySymbol)
	case constants.OutputFormatCSV:
		output.CsvFormat(os.Stdout, result)
	}
}
