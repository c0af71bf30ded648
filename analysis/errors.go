package analysis

import "errors"

var (
	// ErrInvalidMeasurement is returned when a required measurement is missing or not positive.
	ErrInvalidMeasurement = errors.New("invalid measurement")
	// ErrUnsupportedUnit is returned for unit tags other than imperial and metric.
	ErrUnsupportedUnit = errors.New("unsupported unit system")
	// ErrInvalidAnswer is returned when a quiz answer names an unknown question or option.
	ErrInvalidAnswer = errors.New("invalid quiz answer")
	// ErrEmptyMessage is returned when the consultant receives a blank message.
	ErrEmptyMessage = errors.New("empty message")
)
