package calculator

import "errors"

var (
	// ErrUnknownCalculator is returned when no computation is registered for an ID.
	ErrUnknownCalculator = errors.New("unknown calculator")

	// ErrMissingInput is returned when a required field is absent or blank.
	ErrMissingInput = errors.New("missing input")

	// ErrInvalidInput is returned when a field is not a finite number or is out of range.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRateUnavailable is returned when a currency conversion has no rate
	// and no rate source is configured.
	ErrRateUnavailable = errors.New("exchange rate unavailable")
)
