// Package telemetry implements the comparison engine: lap selection,
// distance alignment of raw car data, paired metric series, lap-time
// aggregation, and sector splits. Every operation is a pure function of an
// immutable session snapshot; results are freshly allocated and inputs are
// never mutated, so calls are safe to repeat and to run concurrently.
package telemetry

import (
	"sort"

	"github.com/paddock-data/lapdelta/internal/f1"
)

// driverLaps returns the driver's laps ordered by lap number, or a
// ParticipantNotFoundError when the driver has no laps in the session.
func driverLaps(s *f1.Session, driver string) ([]*f1.Lap, error) {
	var laps []*f1.Lap
	for i := range s.Laps {
		if s.Laps[i].Driver == driver {
			laps = append(laps, &s.Laps[i])
		}
	}
	if len(laps) == 0 {
		return nil, &ParticipantNotFoundError{Driver: driver}
	}
	sort.Slice(laps, func(i, j int) bool { return laps[i].Number < laps[j].Number })
	return laps, nil
}

// FastestLap selects the driver's lap with the minimum recorded lap time.
// Ties go to the lowest lap number. Laps without a recorded time never win.
func FastestLap(s *f1.Session, driver string) (*f1.Lap, error) {
	laps, err := driverLaps(s, driver)
	if err != nil {
		return nil, err
	}
	var best *f1.Lap
	for _, lap := range laps {
		if !lap.HasTime() {
			continue
		}
		if best == nil || *lap.Time < *best.Time {
			best = lap
		}
	}
	if best == nil {
		return nil, &NoValidLapError{Driver: driver}
	}
	return best, nil
}

// QuickLaps returns the driver's representative-pace laps ordered by lap
// number. The quick-lap predicate is owned by the data provider and carried
// on each lap; it is not recomputed here.
func QuickLaps(s *f1.Session, driver string) ([]*f1.Lap, error) {
	laps, err := driverLaps(s, driver)
	if err != nil {
		return nil, err
	}
	quick := make([]*f1.Lap, 0, len(laps))
	for _, lap := range laps {
		if lap.IsQuick {
			quick = append(quick, lap)
		}
	}
	return quick, nil
}

// LapByNumber returns the driver's lap with the given number.
func LapByNumber(s *f1.Session, driver string, number int) (*f1.Lap, error) {
	laps, err := driverLaps(s, driver)
	if err != nil {
		return nil, err
	}
	for _, lap := range laps {
		if lap.Number == number {
			return lap, nil
		}
	}
	return nil, &NoValidLapError{Driver: driver, Number: number}
}
