package telemetry

import "github.com/paddock-data/lapdelta/internal/f1"

// Series is one driver's distance-keyed values for a single metric.
// Distance and Values have equal length; the distances are the series' own
// native sample positions, not a shared grid.
type Series struct {
	Driver   string    `json:"driver"`
	Number   int       `json:"lap"`
	Distance []float64 `json:"distance"`
	Values   []float64 `json:"values"`
}

// ComparisonSeries pairs two drivers' series for one metric. The two sides
// are not resampled onto a common distance grid and may have different
// lengths; consumers plot each against its own distances.
type ComparisonSeries struct {
	Metric f1.Metric `json:"metric"`
	A      Series    `json:"a"`
	B      Series    `json:"b"`
}

// Comparison is the result of comparing two laps over a set of metrics.
// Metrics missing from either lap are absent from Series and recorded in
// Warnings instead.
type Comparison struct {
	Series   map[f1.Metric]ComparisonSeries `json:"series"`
	Warnings []MetricUnavailableWarning     `json:"warnings,omitempty"`
}

// BuildComparison aligns both laps by distance and projects each requested
// metric onto (distance, value) pairs. A metric unrecorded for either lap is
// skipped with a warning; alignment failure (missing speed data) aborts the
// whole comparison because no metric can be distance-keyed without it.
func BuildComparison(lapA, lapB *f1.Lap, metrics []f1.Metric) (*Comparison, error) {
	alignedA, err := AlignByDistance(lapA)
	if err != nil {
		return nil, err
	}
	alignedB, err := AlignByDistance(lapB)
	if err != nil {
		return nil, err
	}

	cmp := &Comparison{Series: make(map[f1.Metric]ComparisonSeries, len(metrics))}
	requested := make(map[f1.Metric]bool, len(metrics))
	for _, m := range metrics {
		requested[m] = true
	}

	// Canonical metric order keeps warning order deterministic.
	for _, m := range f1.Metrics {
		if !requested[m] {
			continue
		}
		valsA, okA := alignedA.Channels[m]
		valsB, okB := alignedB.Channels[m]
		if !okA {
			cmp.Warnings = append(cmp.Warnings, MetricUnavailableWarning{Metric: m, Driver: lapA.Driver, Number: lapA.Number})
		}
		if !okB {
			cmp.Warnings = append(cmp.Warnings, MetricUnavailableWarning{Metric: m, Driver: lapB.Driver, Number: lapB.Number})
		}
		if !okA || !okB {
			continue
		}
		cmp.Series[m] = ComparisonSeries{
			Metric: m,
			A:      Series{Driver: alignedA.Driver, Number: alignedA.Number, Distance: alignedA.Distance, Values: valsA},
			B:      Series{Driver: alignedB.Driver, Number: alignedB.Number, Distance: alignedB.Distance, Values: valsB},
		}
	}
	return cmp, nil
}
