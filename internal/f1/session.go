// Package f1 holds the typed domain records for a race weekend session:
// the session itself, per-driver laps, and per-lap telemetry channels.
// Values are validated at the repository boundary and treated as immutable
// by everything downstream.
package f1

import (
	"fmt"
	"strings"
)

const (
	KindFP1        SessionKind = "FP1"
	KindFP2        SessionKind = "FP2"
	KindFP3        SessionKind = "FP3"
	KindQualifying SessionKind = "Q"
	KindRace       SessionKind = "R"
)

// SessionKind identifies which session of a race weekend is loaded, e.g.
// a free practice, qualifying, or the race itself.
type SessionKind string

// ParseSessionKind normalises a user-supplied session kind string.
// Accepts the short codes used by the data provider ("FP1".."FP3", "Q", "R").
func ParseSessionKind(s string) (SessionKind, error) {
	switch SessionKind(strings.ToUpper(s)) {
	case KindFP1:
		return KindFP1, nil
	case KindFP2:
		return KindFP2, nil
	case KindFP3:
		return KindFP3, nil
	case KindQualifying:
		return KindQualifying, nil
	case KindRace:
		return KindRace, nil
	}
	return "", fmt.Errorf("unknown session kind %q (want FP1, FP2, FP3, Q or R)", s)
}

// Session is one fully materialised session: season year, event name,
// session kind, and every lap recorded for every driver. It is loaded once
// by the session repository and never mutated afterwards.
type Session struct {
	Season int         `json:"season"`
	Event  string      `json:"event"`
	Kind   SessionKind `json:"kind"`
	Laps   []Lap       `json:"laps"`
}

// Drivers returns the distinct driver identifiers present in the session,
// in first-seen lap order.
func (s *Session) Drivers() []string {
	seen := make(map[string]bool, 24)
	var out []string
	for i := range s.Laps {
		d := s.Laps[i].Driver
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}

// HasDriver reports whether any lap in the session belongs to the driver.
func (s *Session) HasDriver(driver string) bool {
	for i := range s.Laps {
		if s.Laps[i].Driver == driver {
			return true
		}
	}
	return false
}
