package telemetry

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paddock-data/lapdelta/internal/f1"
)

func TestBuildComparisonMetricOmissionIsNonFatal(t *testing.T) {
	s := testSession()
	lapA, err := LapByNumber(s, "VER", 2) // has DRS
	if err != nil {
		t.Fatalf("LapByNumber VER: %v", err)
	}
	lapB, err := LapByNumber(s, "NOR", 3) // no DRS
	if err != nil {
		t.Fatalf("LapByNumber NOR: %v", err)
	}

	result, err := BuildComparison(lapA, lapB, []f1.Metric{f1.MetricSpeed, f1.MetricDRS})
	if err != nil {
		t.Fatalf("BuildComparison: %v", err)
	}

	if _, ok := result.Series[f1.MetricSpeed]; !ok {
		t.Error("Speed series missing; metric omission must not abort remaining metrics")
	}
	if _, ok := result.Series[f1.MetricDRS]; ok {
		t.Error("DRS series present despite being unrecorded for one lap")
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(result.Warnings), result.Warnings)
	}
	w := result.Warnings[0]
	if w.Metric != f1.MetricDRS || w.Driver != "NOR" || w.Number != 3 {
		t.Errorf("warning = %+v, want DRS/NOR/3", w)
	}
}

func TestBuildComparisonRaggedSeries(t *testing.T) {
	s := testSession()
	lapA, _ := LapByNumber(s, "VER", 1) // 4 samples
	lapB, _ := LapByNumber(s, "NOR", 3) // 3 samples

	result, err := BuildComparison(lapA, lapB, []f1.Metric{f1.MetricSpeed, f1.MetricThrottle})
	if err != nil {
		t.Fatalf("BuildComparison: %v", err)
	}

	speed := result.Series[f1.MetricSpeed]
	if len(speed.A.Distance) != 4 || len(speed.B.Distance) != 3 {
		t.Errorf("series lengths = %d/%d, want native 4/3 (no resampling)", len(speed.A.Distance), len(speed.B.Distance))
	}
	if len(speed.A.Distance) != len(speed.A.Values) {
		t.Errorf("side A distance/value lengths differ: %d vs %d", len(speed.A.Distance), len(speed.A.Values))
	}
	if speed.A.Driver != "VER" || speed.B.Driver != "NOR" {
		t.Errorf("series drivers = %s/%s, want VER/NOR", speed.A.Driver, speed.B.Driver)
	}
}

func TestBuildComparisonMissingSpeedIsFatal(t *testing.T) {
	s := testSession()
	lapA, _ := LapByNumber(s, "VER", 1)
	lapB, _ := LapByNumber(s, "VER", 3) // no telemetry at all

	_, err := BuildComparison(lapA, lapB, []f1.Metric{f1.MetricSpeed})
	var missing *MissingSpeedDataError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingSpeedDataError", err)
	}
}

func TestBuildComparisonIdempotent(t *testing.T) {
	s := testSession()
	lapA, _ := LapByNumber(s, "VER", 2)
	lapB, _ := LapByNumber(s, "NOR", 3)
	metrics := []f1.Metric{f1.MetricSpeed, f1.MetricThrottle, f1.MetricDRS}

	first, err := BuildComparison(lapA, lapB, metrics)
	if err != nil {
		t.Fatalf("first BuildComparison: %v", err)
	}
	second, err := BuildComparison(lapA, lapB, metrics)
	if err != nil {
		t.Fatalf("second BuildComparison: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated comparison differs (-first +second):\n%s", diff)
	}
}
