// Package units provides shared constants and conversions for speed units.
package units

// Unit constants
const (
	KPH = "kph"
	MPH = "mph"
	MPS = "mps"
)

// ValidUnits contains all valid display unit values
var ValidUnits = []string{KPH, MPH, MPS}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "kph, mph, mps"
}

// KphToMps converts a speed from km/h to metres per second. The telemetry
// speed channel is recorded in km/h; distance integration needs m/s.
func KphToMps(speedKPH float64) float64 {
	return speedKPH / 3.6
}

// ConvertSpeed converts a speed from km/h to the target display units.
func ConvertSpeed(speedKPH float64, targetUnits string) float64 {
	switch targetUnits {
	case KPH:
		return speedKPH
	case MPH:
		return speedKPH * 0.62137119223733
	case MPS:
		return speedKPH / 3.6
	default:
		return speedKPH
	}
}
