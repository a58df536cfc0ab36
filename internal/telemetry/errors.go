package telemetry

import (
	"fmt"

	"github.com/paddock-data/lapdelta/internal/f1"
)

// ParticipantNotFoundError is returned when a requested driver identifier
// has no laps in the session.
type ParticipantNotFoundError struct {
	Driver string
}

func (e *ParticipantNotFoundError) Error() string {
	return fmt.Sprintf("driver %q not found in session", e.Driver)
}

// NoValidLapError is returned when a driver exists in the session but has no
// lap matching the selection criteria. Number is 0 for fastest-lap selection
// and the requested lap number for by-number selection.
type NoValidLapError struct {
	Driver string
	Number int
}

func (e *NoValidLapError) Error() string {
	if e.Number > 0 {
		return fmt.Sprintf("driver %q has no lap %d", e.Driver, e.Number)
	}
	return fmt.Sprintf("driver %q has no lap with a recorded lap time", e.Driver)
}

// MissingSpeedDataError aborts distance alignment: the speed channel is
// either unrecorded for the lap or has an absent reading, and distance
// cannot be integrated past the gap. Sample is -1 when the whole channel is
// missing.
type MissingSpeedDataError struct {
	Driver string
	Number int
	Sample int
}

func (e *MissingSpeedDataError) Error() string {
	if e.Sample < 0 {
		return fmt.Sprintf("lap %d of driver %q has no speed channel", e.Number, e.Driver)
	}
	return fmt.Sprintf("lap %d of driver %q is missing speed at sample %d", e.Number, e.Driver, e.Sample)
}

// MetricUnavailableWarning records a requested metric that one of the
// compared laps did not carry. It is attached to the comparison result and
// never aborts processing of the remaining metrics.
type MetricUnavailableWarning struct {
	Metric f1.Metric `json:"metric"`
	Driver string    `json:"driver"`
	Number int       `json:"lap"`
}

func (w MetricUnavailableWarning) String() string {
	return fmt.Sprintf("metric %s unavailable for lap %d of driver %q", w.Metric, w.Number, w.Driver)
}
