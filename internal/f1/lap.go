package f1

import "time"

const (
	CompoundSoft         = "SOFT"
	CompoundMedium       = "MEDIUM"
	CompoundHard         = "HARD"
	CompoundIntermediate = "INTERMEDIATE"
	CompoundWet          = "WET"
	CompoundUnknown      = "UNKNOWN"
)

// Lap is one traversal of the circuit by one driver. Timing fields use
// pointers because incomplete laps legitimately have no lap time and
// aborted sessions can leave individual sector times unrecorded; a nil
// pointer means "not recorded", never zero.
type Lap struct {
	Driver      string         // driver identifier as used by the provider, e.g. "VER"
	Team        string         // team name, used for chart colors
	Number      int            // lap number, positive, unique per driver within a session
	Time        *time.Duration // total lap time; nil for incomplete laps
	Sector1     *time.Duration
	Sector2     *time.Duration
	Sector3     *time.Duration
	Compound    string         // tire compound for the lap
	TrackStatus string         // provider track-status code, e.g. "1" for green
	PitOut      *time.Duration // time into the session the lap left the pit; nil unless a pit-exit lap
	IsQuick     bool           // provider-owned representative-pace predicate
	Telemetry   *Telemetry     // nil when the provider recorded no car data for the lap
}

// HasTime reports whether the lap completed with a recorded lap time.
func (l *Lap) HasTime() bool {
	return l.Time != nil
}
