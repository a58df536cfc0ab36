package telemetry

import "github.com/paddock-data/lapdelta/internal/f1"

// Replay is a restartable cursor over an aligned series that yields
// increasingly longer prefixes. It carries no engine logic beyond slicing an
// already-computed series; the presentation layer drives it on a timer to
// animate a lap. Prefixes share the source's backing arrays, which is safe
// because aligned series are never mutated.
type Replay struct {
	src  *AlignedTelemetry
	step int
	pos  int
}

// NewReplay creates a replay cursor that grows by step samples per frame.
// A step below 1 is treated as 1.
func NewReplay(src *AlignedTelemetry, step int) *Replay {
	if step < 1 {
		step = 1
	}
	return &Replay{src: src, step: step}
}

// Next returns the next prefix of the series and true, or nil and false once
// the full series has been yielded.
func (r *Replay) Next() (*AlignedTelemetry, bool) {
	if r.pos >= r.src.Len() {
		return nil, false
	}
	r.pos += r.step
	if r.pos > r.src.Len() {
		r.pos = r.src.Len()
	}
	return prefixOf(r.src, r.pos), true
}

// Reset rewinds the cursor so the replay can run again from the start.
func (r *Replay) Reset() {
	r.pos = 0
}

func prefixOf(src *AlignedTelemetry, n int) *AlignedTelemetry {
	out := &AlignedTelemetry{
		Driver:   src.Driver,
		Number:   src.Number,
		Distance: src.Distance[:n],
		Time:     src.Time[:n],
		Channels: make(map[f1.Metric][]float64, len(src.Channels)),
	}
	for m, vals := range src.Channels {
		out.Channels[m] = vals[:n]
	}
	return out
}
