package session

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/paddock-data/lapdelta/internal/f1"
)

// Wire format of the Session Data Provider. Durations are seconds; null
// means "not recorded". Telemetry channels are arrays aligned to the time
// axis, with null entries for individual missing readings.
type wireSession struct {
	Season int       `json:"season"`
	Event  string    `json:"event"`
	Kind   string    `json:"kind"`
	Laps   []wireLap `json:"laps"`
}

type wireLap struct {
	Driver      string         `json:"driver"`
	Team        string         `json:"team"`
	Number      int            `json:"number"`
	LapTime     *float64       `json:"lap_time"`
	Sector1     *float64       `json:"sector1"`
	Sector2     *float64       `json:"sector2"`
	Sector3     *float64       `json:"sector3"`
	Compound    string         `json:"compound"`
	TrackStatus string         `json:"track_status"`
	PitOut      *float64       `json:"pit_out"`
	IsQuick     bool           `json:"is_quick"`
	Telemetry   *wireTelemetry `json:"telemetry"`
}

type wireTelemetry struct {
	Time     []float64             `json:"time"`
	Channels map[string][]*float64 `json:"channels"`
}

// DecodeSession parses a provider payload into validated domain records.
// Validation happens here, at the repository boundary, so the engine never
// probes for malformed data: lap numbers must be positive and unique per
// driver, telemetry time axes ordered, channel lengths consistent.
func DecodeSession(payload []byte) (*f1.Session, error) {
	var ws wireSession
	if err := json.Unmarshal(payload, &ws); err != nil {
		return nil, fmt.Errorf("failed to parse session payload: %w", err)
	}

	kind, err := f1.ParseSessionKind(ws.Kind)
	if err != nil {
		return nil, fmt.Errorf("session payload: %w", err)
	}

	s := &f1.Session{
		Season: ws.Season,
		Event:  ws.Event,
		Kind:   kind,
		Laps:   make([]f1.Lap, 0, len(ws.Laps)),
	}

	seen := make(map[string]map[int]bool)
	for i, wl := range ws.Laps {
		if wl.Driver == "" {
			return nil, fmt.Errorf("lap %d: missing driver id", i)
		}
		if wl.Number < 1 {
			return nil, fmt.Errorf("lap %d of driver %q: lap number %d is not positive", i, wl.Driver, wl.Number)
		}
		if seen[wl.Driver] == nil {
			seen[wl.Driver] = make(map[int]bool)
		}
		if seen[wl.Driver][wl.Number] {
			return nil, fmt.Errorf("driver %q: duplicate lap number %d", wl.Driver, wl.Number)
		}
		seen[wl.Driver][wl.Number] = true

		lap := f1.Lap{
			Driver:      wl.Driver,
			Team:        wl.Team,
			Number:      wl.Number,
			Time:        secondsDuration(wl.LapTime),
			Sector1:     secondsDuration(wl.Sector1),
			Sector2:     secondsDuration(wl.Sector2),
			Sector3:     secondsDuration(wl.Sector3),
			Compound:    wl.Compound,
			TrackStatus: wl.TrackStatus,
			PitOut:      secondsDuration(wl.PitOut),
			IsQuick:     wl.IsQuick,
		}

		if wl.Telemetry != nil {
			telem, err := decodeTelemetry(wl.Telemetry)
			if err != nil {
				return nil, fmt.Errorf("lap %d of driver %q: %w", wl.Number, wl.Driver, err)
			}
			lap.Telemetry = telem
		}
		s.Laps = append(s.Laps, lap)
	}
	return s, nil
}

func decodeTelemetry(wt *wireTelemetry) (*f1.Telemetry, error) {
	t := &f1.Telemetry{
		Time:     make([]time.Duration, len(wt.Time)),
		Channels: make(map[f1.Metric][]float64, len(wt.Channels)),
	}
	for i, s := range wt.Time {
		t.Time[i] = time.Duration(s * float64(time.Second))
	}
	for name, vals := range wt.Channels {
		metric, err := f1.ParseMetric(name)
		if err != nil {
			return nil, err
		}
		ch := make([]float64, len(vals))
		for i, v := range vals {
			if v == nil {
				ch[i] = math.NaN()
			} else {
				ch[i] = *v
			}
		}
		t.Channels[metric] = ch
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func secondsDuration(s *float64) *time.Duration {
	if s == nil {
		return nil
	}
	d := time.Duration(*s * float64(time.Second))
	return &d
}
