package analysis

import "fmt"

// UnitSystem tags the unit basis of raw height/weight/girth input.
type UnitSystem string

const (
	Imperial UnitSystem = "imperial" // inches, pounds
	Metric   UnitSystem = "metric"   // centimeters, kilograms
)

const (
	metersPerInch  = 0.0254
	kgPerPound     = 0.453592
	centimetersPer = 100.0
)

// ParseUnitSystem maps a raw tag to a UnitSystem. An empty tag defaults to imperial.
func ParseUnitSystem(s string) (UnitSystem, error) {
	switch UnitSystem(s) {
	case "":
		return Imperial, nil
	case Imperial, Metric:
		return UnitSystem(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedUnit, s)
}

// Normalize converts height and weight in the given unit system to meters and kilograms.
// Positivity of the inputs is the caller's responsibility.
func Normalize(height, weight float64, unit UnitSystem) (heightM, weightKg float64, err error) {
	switch unit {
	case Imperial:
		return height * metersPerInch, weight * kgPerPound, nil
	case Metric:
		return height / centimetersPer, weight, nil
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrUnsupportedUnit, unit)
	}
}

func requirePositive(name string, v float64) error {
	// NaN fails the comparison as well
	if !(v > 0) {
		return fmt.Errorf("%w: %s must be greater than 0, got %v", ErrInvalidMeasurement, name, v)
	}
	return nil
}
