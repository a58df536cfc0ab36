package telemetry

import (
	"time"

	"github.com/paddock-data/lapdelta/internal/f1"
	"github.com/paddock-data/lapdelta/internal/units"
)

// AlignedTelemetry is a lap's car data re-keyed by cumulative distance.
// Distance is metres from the start of the lap, non-decreasing, starting at
// exactly 0. Time and Channels are copies of the source lap's samples in the
// same order, so any channel can be plotted against Distance directly.
type AlignedTelemetry struct {
	Driver   string
	Number   int
	Distance []float64
	Time     []time.Duration
	Channels map[f1.Metric][]float64
}

// Len returns the number of aligned samples.
func (a *AlignedTelemetry) Len() int {
	return len(a.Distance)
}

// AlignByDistance integrates the speed channel over the sample time deltas
// to produce a distance axis for the lap. Distance at sample i is the
// distance at i-1 plus the speed at i-1 (converted to m/s) times the time
// delta; duplicate timestamps contribute zero distance. Any gap in the speed
// channel aborts with MissingSpeedDataError: distance past an unknown speed
// is undefined and is never approximated with zero.
func AlignByDistance(lap *f1.Lap) (*AlignedTelemetry, error) {
	if lap.Telemetry == nil {
		return nil, &MissingSpeedDataError{Driver: lap.Driver, Number: lap.Number, Sample: -1}
	}
	speed, ok := lap.Telemetry.Channel(f1.MetricSpeed)
	if !ok {
		return nil, &MissingSpeedDataError{Driver: lap.Driver, Number: lap.Number, Sample: -1}
	}
	for i, v := range speed {
		if f1.IsAbsent(v) {
			return nil, &MissingSpeedDataError{Driver: lap.Driver, Number: lap.Number, Sample: i}
		}
	}

	n := lap.Telemetry.Len()
	dist := make([]float64, n)
	for i := 1; i < n; i++ {
		dt := lap.Telemetry.Time[i] - lap.Telemetry.Time[i-1]
		dist[i] = dist[i-1] + units.KphToMps(speed[i-1])*dt.Seconds()
	}

	out := &AlignedTelemetry{
		Driver:   lap.Driver,
		Number:   lap.Number,
		Distance: dist,
		Time:     append([]time.Duration(nil), lap.Telemetry.Time...),
		Channels: make(map[f1.Metric][]float64, len(lap.Telemetry.Channels)),
	}
	for m, vals := range lap.Telemetry.Channels {
		out.Channels[m] = append([]float64(nil), vals...)
	}
	return out, nil
}
