package telemetry

import (
	"github.com/paddock-data/lapdelta/internal/f1"
	"gonum.org/v1/gonum/stat"
)

// LapTimePoint is one quick lap's time in seconds, keyed by lap number.
type LapTimePoint struct {
	Lap     int     `json:"lap"`
	Seconds float64 `json:"seconds"`
}

// PairedLapTime is one lap number for which both drivers have a quick lap
// with a recorded time.
type PairedLapTime struct {
	Lap      int     `json:"lap"`
	SecondsA float64 `json:"seconds_a"`
	SecondsB float64 `json:"seconds_b"`
}

// ParticipantSummary aggregates a driver's session. AverageSeconds and
// BestSeconds are nil when the driver completed no timed lap; absent lap
// times are excluded from the average rather than counted as zero.
type ParticipantSummary struct {
	Driver         string   `json:"driver"`
	Team           string   `json:"team"`
	TotalLaps      int      `json:"total_laps"`
	AverageSeconds *float64 `json:"average_seconds"`
	BestSeconds    *float64 `json:"best_seconds"`
	PitStops       int      `json:"pit_stops"`
}

// LapTimeSeries returns the driver's quick laps that have a recorded lap
// time, ordered by lap number ascending.
func LapTimeSeries(s *f1.Session, driver string) ([]LapTimePoint, error) {
	laps, err := QuickLaps(s, driver)
	if err != nil {
		return nil, err
	}
	points := make([]LapTimePoint, 0, len(laps))
	for _, lap := range laps {
		if !lap.HasTime() {
			continue
		}
		points = append(points, LapTimePoint{Lap: lap.Number, Seconds: lap.Time.Seconds()})
	}
	return points, nil
}

// PairedLapTimeSeries inner-joins the two drivers' quick-lap series on lap
// number. Lap numbers with a recorded time for only one driver are dropped,
// never imputed.
func PairedLapTimeSeries(s *f1.Session, driverA, driverB string) ([]PairedLapTime, error) {
	seriesA, err := LapTimeSeries(s, driverA)
	if err != nil {
		return nil, err
	}
	seriesB, err := LapTimeSeries(s, driverB)
	if err != nil {
		return nil, err
	}

	byLapB := make(map[int]float64, len(seriesB))
	for _, p := range seriesB {
		byLapB[p.Lap] = p.Seconds
	}

	var paired []PairedLapTime
	for _, p := range seriesA {
		if tb, ok := byLapB[p.Lap]; ok {
			paired = append(paired, PairedLapTime{Lap: p.Lap, SecondsA: p.Seconds, SecondsB: tb})
		}
	}
	return paired, nil
}

// Summarize builds the session-wide aggregate row for one driver: total laps
// (highest lap number seen), average and best lap time over laps with a
// recorded time, and pit-stop count (laps that started from pit exit).
func Summarize(s *f1.Session, driver string) (*ParticipantSummary, error) {
	laps, err := driverLaps(s, driver)
	if err != nil {
		return nil, err
	}

	summary := &ParticipantSummary{Driver: driver}
	var timed []float64
	for _, lap := range laps {
		if lap.Number > summary.TotalLaps {
			summary.TotalLaps = lap.Number
		}
		if lap.Team != "" {
			summary.Team = lap.Team
		}
		if lap.PitOut != nil {
			summary.PitStops++
		}
		if lap.HasTime() {
			timed = append(timed, lap.Time.Seconds())
		}
	}

	if len(timed) > 0 {
		avg := stat.Mean(timed, nil)
		best := timed[0]
		for _, t := range timed[1:] {
			if t < best {
				best = t
			}
		}
		summary.AverageSeconds = &avg
		summary.BestSeconds = &best
	}
	return summary, nil
}
