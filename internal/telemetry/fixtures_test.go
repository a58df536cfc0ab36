package telemetry

import (
	"math"
	"time"

	"github.com/paddock-data/lapdelta/internal/f1"
)

func sec(s float64) *time.Duration {
	d := time.Duration(s * float64(time.Second))
	return &d
}

// carData builds a telemetry block with a 1-second sample interval. Channels
// not passed are left unrecorded.
func carData(speeds []float64, extra map[f1.Metric][]float64) *f1.Telemetry {
	t := &f1.Telemetry{
		Time:     make([]time.Duration, len(speeds)),
		Channels: map[f1.Metric][]float64{f1.MetricSpeed: speeds},
	}
	for i := range speeds {
		t.Time[i] = time.Duration(i) * time.Second
	}
	for m, vals := range extra {
		t.Channels[m] = vals
	}
	return t
}

// testSession builds a two-driver session used across the engine tests.
//
// VER: laps 1-4 with times 92.1, 91.8, 91.8, 93.0 (fastest-lap tie between
// laps 2 and 3), all quick except lap 4, lap 4 started from pit exit.
// NOR: quick laps 1, 3, 4 plus an untimed lap 2.
func testSession() *f1.Session {
	return &f1.Session{
		Season: 2024,
		Event:  "Monza",
		Kind:   f1.KindRace,
		Laps: []f1.Lap{
			{Driver: "VER", Team: "Red Bull", Number: 1, Time: sec(92.1), Sector1: sec(28.4), Sector2: sec(31.9), Sector3: sec(31.8), Compound: f1.CompoundMedium, IsQuick: true,
				Telemetry: carData([]float64{0, 180, 270, 310}, map[f1.Metric][]float64{f1.MetricThrottle: {0, 80, 100, 100}})},
			{Driver: "VER", Team: "Red Bull", Number: 2, Time: sec(91.8), Sector1: sec(28.2), Sector2: nil, Sector3: sec(31.7), Compound: f1.CompoundMedium, IsQuick: true,
				Telemetry: carData([]float64{10, 200, 290, 305}, map[f1.Metric][]float64{f1.MetricThrottle: {5, 90, 100, 100}, f1.MetricDRS: {0, 0, 1, 1}})},
			{Driver: "VER", Team: "Red Bull", Number: 3, Time: sec(91.8), IsQuick: true},
			{Driver: "VER", Team: "Red Bull", Number: 4, Time: sec(93.0), PitOut: sec(5512.0), IsQuick: false},
			{Driver: "NOR", Team: "McLaren", Number: 1, Time: sec(92.5), IsQuick: true},
			{Driver: "NOR", Team: "McLaren", Number: 2, Time: nil, IsQuick: false},
			{Driver: "NOR", Team: "McLaren", Number: 3, Time: sec(91.9), IsQuick: true,
				Telemetry: carData([]float64{5, 190, 280}, map[f1.Metric][]float64{f1.MetricThrottle: {0, 85, 100}})},
			{Driver: "NOR", Team: "McLaren", Number: 4, Time: sec(92.2), IsQuick: true},
		},
	}
}

func nan() float64 { return math.NaN() }
