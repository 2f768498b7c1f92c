package solar

import "errors"

var (
	// ErrInvalidBill is returned for a monthly bill that is not a positive,
	// finite amount.
	ErrInvalidBill = errors.New("monthly bill must be a positive finite amount")

	// ErrNoBreakEven reports that the per-unit margin (or daily generation)
	// is not positive, so the investment never pays back.
	ErrNoBreakEven = errors.New("break-even is undefined for a non-positive margin")

	// ErrInvalidParameters wraps every Parameters.Validate failure.
	ErrInvalidParameters = errors.New("invalid calculation parameters")
)
