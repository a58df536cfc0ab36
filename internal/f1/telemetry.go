package f1

import (
	"fmt"
	"math"
	"time"
)

const (
	MetricSpeed    Metric = "Speed"    // km/h
	MetricThrottle Metric = "Throttle" // percent
	MetricBrake    Metric = "Brake"    // on/off
	MetricRPM      Metric = "RPM"
	MetricDRS      Metric = "DRS"
	MetricGear     Metric = "GearNumber"
)

// Metric names one telemetry channel recorded by the car.
type Metric string

// Metrics lists every channel the engine understands, in canonical order.
var Metrics = []Metric{
	MetricSpeed,
	MetricThrottle,
	MetricBrake,
	MetricRPM,
	MetricDRS,
	MetricGear,
}

// ParseMetric validates a user-supplied metric name.
func ParseMetric(s string) (Metric, error) {
	for _, m := range Metrics {
		if Metric(s) == m {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown metric %q", s)
}

// Telemetry holds one lap's car data in columnar form: a shared time axis
// and one value slice per recorded channel. A channel the sensor never
// recorded for the lap is absent from Channels entirely; a single missing
// reading within a recorded channel is NaN.
type Telemetry struct {
	Time     []time.Duration      // since lap start, non-decreasing
	Channels map[Metric][]float64 // each slice has len(Time) entries
}

// Len returns the number of samples on the time axis.
func (t *Telemetry) Len() int {
	return len(t.Time)
}

// Channel returns the values for a metric and whether it was recorded.
func (t *Telemetry) Channel(m Metric) ([]float64, bool) {
	v, ok := t.Channels[m]
	return v, ok
}

// Validate checks the structural invariants the engine relies on: a
// non-decreasing time axis (equal consecutive timestamps are allowed) and
// channel slices matching the time axis length.
func (t *Telemetry) Validate() error {
	for i := 1; i < len(t.Time); i++ {
		if t.Time[i] < t.Time[i-1] {
			return fmt.Errorf("telemetry time axis not ordered at sample %d: %v < %v", i, t.Time[i], t.Time[i-1])
		}
	}
	for m, vals := range t.Channels {
		if len(vals) != len(t.Time) {
			return fmt.Errorf("channel %s has %d samples, time axis has %d", m, len(vals), len(t.Time))
		}
	}
	return nil
}

// IsAbsent reports whether a single channel reading is the absent sentinel.
func IsAbsent(v float64) bool {
	return math.IsNaN(v)
}
