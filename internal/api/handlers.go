package api

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/paddock-data/lapdelta/internal/charts"
	"github.com/paddock-data/lapdelta/internal/f1"
	"github.com/paddock-data/lapdelta/internal/session"
	"github.com/paddock-data/lapdelta/internal/telemetry"
	"github.com/paddock-data/lapdelta/internal/units"
)

// lapInfo is the lap metadata block attached to comparison responses,
// mirroring the fastest-lap summary table of the UI.
type lapInfo struct {
	Driver      string   `json:"driver"`
	Team        string   `json:"team"`
	Lap         int      `json:"lap"`
	TimeSeconds *float64 `json:"time_seconds"`
	Compound    string   `json:"compound"`
	TrackStatus string   `json:"track_status"`
}

type seriesJSON struct {
	Driver   string     `json:"driver"`
	Lap      int        `json:"lap"`
	Distance []float64  `json:"distance"`
	Values   []*float64 `json:"values"`
}

type comparisonSeriesJSON struct {
	Metric f1.Metric  `json:"metric"`
	A      seriesJSON `json:"a"`
	B      seriesJSON `json:"b"`
}

type compareResponse struct {
	Season   int                                  `json:"season"`
	Event    string                               `json:"event"`
	Kind     f1.SessionKind                       `json:"kind"`
	Units    string                               `json:"speed_units"`
	A        lapInfo                              `json:"a"`
	B        lapInfo                              `json:"b"`
	Series   []comparisonSeriesJSON               `json:"series"`
	Warnings []telemetry.MetricUnavailableWarning `json:"warnings,omitempty"`
}

// sessionFromRequest resolves the mux path variables into a loaded session.
// It writes the error response itself and returns false on failure.
func (s *Server) sessionFromRequest(w http.ResponseWriter, r *http.Request) (*f1.Session, bool) {
	vars := mux.Vars(r)
	season, err := strconv.Atoi(vars["season"])
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "invalid season")
		return nil, false
	}
	kind, err := f1.ParseSessionKind(vars["kind"])
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	key := session.Key{Season: season, Event: vars["event"], Kind: kind}
	sess, err := s.repo.Get(r.Context(), key)
	if err != nil {
		s.writeJSONError(w, http.StatusBadGateway, fmt.Sprintf("failed to load session: %v", err))
		return nil, false
	}
	return sess, true
}

// badParamError marks a malformed query parameter so writeEngineError can
// answer 400 instead of treating it as an engine failure.
type badParamError struct {
	msg string
}

func (e *badParamError) Error() string { return e.msg }

// selectLap picks a driver's lap: the explicit lap number when given,
// otherwise the fastest lap.
func selectLap(sess *f1.Session, driver, lapParam string) (*f1.Lap, error) {
	if lapParam != "" {
		number, err := strconv.Atoi(lapParam)
		if err != nil || number < 1 {
			return nil, &badParamError{msg: fmt.Sprintf("invalid lap number %q", lapParam)}
		}
		return telemetry.LapByNumber(sess, driver, number)
	}
	return telemetry.FastestLap(sess, driver)
}

func (s *Server) listDrivers(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, map[string]any{
		"season":  sess.Season,
		"event":   sess.Event,
		"kind":    sess.Kind,
		"drivers": sess.Drivers(),
	})
}

func (s *Server) compareTelemetry(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	d1 := r.URL.Query().Get("d1")
	d2 := r.URL.Query().Get("d2")
	if d1 == "" || d2 == "" {
		s.writeJSONError(w, http.StatusBadRequest, "query parameters d1 and d2 are required")
		return
	}

	metrics, err := parseMetrics(r.URL.Query().Get("metrics"))
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	lapA, err := selectLap(sess, d1, r.URL.Query().Get("lap1"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	lapB, err := selectLap(sess, d2, r.URL.Query().Get("lap2"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	result, err := telemetry.BuildComparison(lapA, lapB, metrics)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	resp := compareResponse{
		Season:   sess.Season,
		Event:    sess.Event,
		Kind:     sess.Kind,
		Units:    s.units,
		A:        toLapInfo(lapA),
		B:        toLapInfo(lapB),
		Warnings: result.Warnings,
	}
	// Canonical metric order keeps the response stable for consumers.
	for _, m := range f1.Metrics {
		cs, ok := result.Series[m]
		if !ok {
			continue
		}
		resp.Series = append(resp.Series, comparisonSeriesJSON{
			Metric: m,
			A:      s.toSeriesJSON(m, cs.A),
			B:      s.toSeriesJSON(m, cs.B),
		})
	}
	s.writeJSON(w, resp)
}

func (s *Server) lapTimes(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	d1 := r.URL.Query().Get("d1")
	if d1 == "" {
		s.writeJSONError(w, http.StatusBadRequest, "query parameter d1 is required")
		return
	}

	if d2 := r.URL.Query().Get("d2"); d2 != "" {
		paired, err := telemetry.PairedLapTimeSeries(sess, d1, d2)
		if err != nil {
			s.writeEngineError(w, err)
			return
		}
		s.writeJSON(w, map[string]any{"d1": d1, "d2": d2, "laps": paired})
		return
	}

	series, err := telemetry.LapTimeSeries(sess, d1)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, map[string]any{"d1": d1, "laps": series})
}

func (s *Server) summarize(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	drivers := sess.Drivers()
	if param := r.URL.Query().Get("drivers"); param != "" {
		drivers = strings.Split(param, ",")
	}

	summaries := make([]*telemetry.ParticipantSummary, 0, len(drivers))
	for _, driver := range drivers {
		summary, err := telemetry.Summarize(sess, driver)
		if err != nil {
			s.writeEngineError(w, err)
			return
		}
		summaries = append(summaries, summary)
	}
	s.writeJSON(w, map[string]any{"summaries": summaries})
}

func (s *Server) sectorSplits(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	d1 := r.URL.Query().Get("d1")
	d2 := r.URL.Query().Get("d2")
	if d1 == "" || d2 == "" {
		s.writeJSONError(w, http.StatusBadRequest, "query parameters d1 and d2 are required")
		return
	}

	lapA, err := selectLap(sess, d1, r.URL.Query().Get("lap1"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	lapB, err := selectLap(sess, d2, r.URL.Query().Get("lap2"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	s.writeJSON(w, map[string]any{
		"a": telemetry.Sectors(lapA),
		"b": telemetry.Sectors(lapB),
	})
}

func (s *Server) telemetryChart(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	d1 := r.URL.Query().Get("d1")
	d2 := r.URL.Query().Get("d2")
	if d1 == "" || d2 == "" {
		s.writeJSONError(w, http.StatusBadRequest, "query parameters d1 and d2 are required")
		return
	}
	metrics, err := parseMetrics(r.URL.Query().Get("metrics"))
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	lapA, err := selectLap(sess, d1, r.URL.Query().Get("lap1"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	lapB, err := selectLap(sess, d2, r.URL.Query().Get("lap2"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	result, err := telemetry.BuildComparison(lapA, lapB, metrics)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	title := fmt.Sprintf("%s %d %s: %s vs %s", sess.Event, sess.Season, sess.Kind, d1, d2)
	page := charts.TelemetryComparison(title, result, f1.TeamColor(lapA.Team), f1.TeamColor(lapB.Team))

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) lapTimeChart(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	d1 := r.URL.Query().Get("d1")
	d2 := r.URL.Query().Get("d2")
	if d1 == "" || d2 == "" {
		s.writeJSONError(w, http.StatusBadRequest, "query parameters d1 and d2 are required")
		return
	}

	paired, err := telemetry.PairedLapTimeSeries(sess, d1, d2)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	colorA, colorB := f1.DefaultTeamColor, f1.DefaultTeamColor
	if lap, err := telemetry.FastestLap(sess, d1); err == nil {
		colorA = f1.TeamColor(lap.Team)
	}
	if lap, err := telemetry.FastestLap(sess, d2); err == nil {
		colorB = f1.TeamColor(lap.Team)
	}

	title := fmt.Sprintf("%s %d %s: lap times", sess.Event, sess.Season, sess.Kind)
	line := charts.LapTimeComparison(title, d1, d2, colorA, colorB, paired)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func parseMetrics(param string) ([]f1.Metric, error) {
	if param == "" {
		return f1.Metrics, nil
	}
	var metrics []f1.Metric
	for _, name := range strings.Split(param, ",") {
		m, err := f1.ParseMetric(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}

func toLapInfo(lap *f1.Lap) lapInfo {
	info := lapInfo{
		Driver:      lap.Driver,
		Team:        lap.Team,
		Lap:         lap.Number,
		Compound:    lap.Compound,
		TrackStatus: lap.TrackStatus,
	}
	if lap.Time != nil {
		t := lap.Time.Seconds()
		info.TimeSeconds = &t
	}
	return info
}

// toSeriesJSON converts engine values for JSON: absent readings (NaN)
// become nulls, and speed is converted to the configured display units.
func (s *Server) toSeriesJSON(metric f1.Metric, series telemetry.Series) seriesJSON {
	out := seriesJSON{
		Driver:   series.Driver,
		Lap:      series.Number,
		Distance: series.Distance,
		Values:   make([]*float64, len(series.Values)),
	}
	for i, v := range series.Values {
		if math.IsNaN(v) {
			continue
		}
		val := v
		if metric == f1.MetricSpeed {
			val = units.ConvertSpeed(v, s.units)
		}
		out.Values[i] = &val
	}
	return out
}
