// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/solar-calculator/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateViewMode checks if the projection view is one of the supported modes.
func ValidateViewMode(mode string) error {
	switch mode {
	case constants.ViewModeYearly, constants.ViewModeDaily, constants.ViewModeAll:
		return nil
	}
	return fmt.Errorf("expected view mode of %s, %s or %s, got %s",
		constants.ViewModeYearly, constants.ViewModeDaily, constants.ViewModeAll, mode)
}
