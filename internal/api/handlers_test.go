package api

import (
	"context"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/paddock-data/lapdelta/internal/f1"
	"github.com/paddock-data/lapdelta/internal/session"
	"github.com/paddock-data/lapdelta/internal/testutil"
	"github.com/paddock-data/lapdelta/internal/units"
)

// fakeRepo serves a canned session without touching sqlite or the provider.
type fakeRepo struct {
	session *f1.Session
	err     error
}

func (f *fakeRepo) Get(_ context.Context, _ session.Key) (*f1.Session, error) {
	return f.session, f.err
}

func apiSession() *f1.Session {
	mkTelemetry := func(speeds []float64, withDRS bool) *f1.Telemetry {
		t := &f1.Telemetry{
			Time:     make([]time.Duration, len(speeds)),
			Channels: map[f1.Metric][]float64{f1.MetricSpeed: speeds},
		}
		for i := range speeds {
			t.Time[i] = time.Duration(i) * time.Second
		}
		if withDRS {
			drs := make([]float64, len(speeds))
			t.Channels[f1.MetricDRS] = drs
		}
		return t
	}
	return &f1.Session{
		Season: 2024,
		Event:  "Monza",
		Kind:   f1.KindRace,
		Laps: []f1.Lap{
			{Driver: "VER", Team: "Red Bull", Number: 1, Time: testutil.Seconds(92.1), Sector1: testutil.Seconds(28.4), Sector2: testutil.Seconds(31.9), Sector3: testutil.Seconds(31.8),
				Compound: f1.CompoundMedium, TrackStatus: "1", IsQuick: true, Telemetry: mkTelemetry([]float64{0, 180, 300}, true)},
			{Driver: "VER", Team: "Red Bull", Number: 2, Time: testutil.Seconds(93.4), IsQuick: true},
			{Driver: "NOR", Team: "McLaren", Number: 1, Time: testutil.Seconds(92.8), Sector1: testutil.Seconds(28.6), Sector3: testutil.Seconds(32.0),
				Compound: f1.CompoundHard, TrackStatus: "1", IsQuick: true, Telemetry: mkTelemetry([]float64{10, 190, 290}, false)},
			{Driver: "NOR", Team: "McLaren", Number: 2, Time: testutil.Seconds(92.9), IsQuick: true},
		},
	}
}

func newTestServer() *Server {
	return NewServer(&fakeRepo{session: apiSession()}, units.KPH)
}

func TestListDrivers(t *testing.T) {
	srv := newTestServer()
	w := testutil.NewTestRecorder()
	r := testutil.NewTestRequest("GET", "/api/sessions/2024/Monza/R/drivers")

	srv.Router().ServeHTTP(w, r)
	testutil.AssertStatusCode(t, w.Code, 200)

	var resp struct {
		Drivers []string `json:"drivers"`
	}
	testutil.AssertNoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	if len(resp.Drivers) != 2 || resp.Drivers[0] != "VER" || resp.Drivers[1] != "NOR" {
		t.Errorf("drivers = %v, want [VER NOR]", resp.Drivers)
	}
}

func TestCompareTelemetry(t *testing.T) {
	srv := newTestServer()
	w := testutil.NewTestRecorder()
	r := testutil.NewTestRequest("GET", "/api/sessions/2024/Monza/R/compare?d1=VER&d2=NOR&metrics=Speed,DRS")

	srv.Router().ServeHTTP(w, r)
	testutil.AssertStatusCode(t, w.Code, 200)

	var resp struct {
		A struct {
			Driver string `json:"driver"`
		} `json:"a"`
		Series []struct {
			Metric string `json:"metric"`
		} `json:"series"`
		Warnings []struct {
			Metric string `json:"metric"`
			Driver string `json:"driver"`
		} `json:"warnings"`
	}
	testutil.AssertNoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	if resp.A.Driver != "VER" {
		t.Errorf("side A driver = %q, want VER", resp.A.Driver)
	}
	if len(resp.Series) != 1 || resp.Series[0].Metric != "Speed" {
		t.Errorf("series = %v, want only Speed", resp.Series)
	}
	if len(resp.Warnings) != 1 || resp.Warnings[0].Metric != "DRS" || resp.Warnings[0].Driver != "NOR" {
		t.Errorf("warnings = %v, want DRS unavailable for NOR", resp.Warnings)
	}
}

func TestCompareTelemetryExplicitLapWithoutTelemetry(t *testing.T) {
	srv := newTestServer()
	w := testutil.NewTestRecorder()
	// Lap 2 has no telemetry: alignment must fail with 422, not empty data.
	r := testutil.NewTestRequest("GET", "/api/sessions/2024/Monza/R/compare?d1=VER&d2=NOR&lap1=2")

	srv.Router().ServeHTTP(w, r)
	testutil.AssertStatusCode(t, w.Code, 422)
}

func TestCompareTelemetryMissingParams(t *testing.T) {
	srv := newTestServer()
	w := testutil.NewTestRecorder()
	r := testutil.NewTestRequest("GET", "/api/sessions/2024/Monza/R/compare?d1=VER")

	srv.Router().ServeHTTP(w, r)
	testutil.AssertStatusCode(t, w.Code, 400)
}

func TestCompareTelemetryUnknownMetric(t *testing.T) {
	srv := newTestServer()
	w := testutil.NewTestRecorder()
	r := testutil.NewTestRequest("GET", "/api/sessions/2024/Monza/R/compare?d1=VER&d2=NOR&metrics=Boost")

	srv.Router().ServeHTTP(w, r)
	testutil.AssertStatusCode(t, w.Code, 400)
}

func TestCompareTelemetryUnknownDriver(t *testing.T) {
	srv := newTestServer()
	w := testutil.NewTestRecorder()
	r := testutil.NewTestRequest("GET", "/api/sessions/2024/Monza/R/compare?d1=VER&d2=HAM")

	srv.Router().ServeHTTP(w, r)
	testutil.AssertStatusCode(t, w.Code, 404)
}

func TestPairedLapTimes(t *testing.T) {
	srv := newTestServer()
	w := testutil.NewTestRecorder()
	r := testutil.NewTestRequest("GET", "/api/sessions/2024/Monza/R/laptimes?d1=VER&d2=NOR")

	srv.Router().ServeHTTP(w, r)
	testutil.AssertStatusCode(t, w.Code, 200)

	var resp struct {
		Laps []struct {
			Lap      int     `json:"lap"`
			SecondsA float64 `json:"seconds_a"`
		} `json:"laps"`
	}
	testutil.AssertNoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	if len(resp.Laps) != 2 {
		t.Fatalf("got %d paired laps, want 2", len(resp.Laps))
	}
	if resp.Laps[0].Lap != 1 || math.Abs(resp.Laps[0].SecondsA-92.1) > 1e-6 {
		t.Errorf("lap[0] = %+v", resp.Laps[0])
	}
}

func TestSummary(t *testing.T) {
	srv := newTestServer()
	w := testutil.NewTestRecorder()
	r := testutil.NewTestRequest("GET", "/api/sessions/2024/Monza/R/summary?drivers=VER")

	srv.Router().ServeHTTP(w, r)
	testutil.AssertStatusCode(t, w.Code, 200)

	var resp struct {
		Summaries []struct {
			Driver    string  `json:"driver"`
			TotalLaps int     `json:"total_laps"`
			Best      float64 `json:"best_seconds"`
		} `json:"summaries"`
	}
	testutil.AssertNoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	if len(resp.Summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(resp.Summaries))
	}
	if resp.Summaries[0].TotalLaps != 2 || math.Abs(resp.Summaries[0].Best-92.1) > 1e-6 {
		t.Errorf("summary = %+v", resp.Summaries[0])
	}
}

func TestSectorSplitsKeepAbsence(t *testing.T) {
	srv := newTestServer()
	w := testutil.NewTestRecorder()
	r := testutil.NewTestRequest("GET", "/api/sessions/2024/Monza/R/sectors?d1=VER&d2=NOR")

	srv.Router().ServeHTTP(w, r)
	testutil.AssertStatusCode(t, w.Code, 200)

	var resp struct {
		B struct {
			Sector1 *float64 `json:"sector1"`
			Sector2 *float64 `json:"sector2"`
			Sector3 *float64 `json:"sector3"`
		} `json:"b"`
	}
	testutil.AssertNoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	if resp.B.Sector1 == nil || resp.B.Sector3 == nil {
		t.Error("recorded sectors missing from response")
	}
	if resp.B.Sector2 != nil {
		t.Errorf("sector2 = %v, want null", *resp.B.Sector2)
	}
}

func TestBadSessionKind(t *testing.T) {
	srv := newTestServer()
	w := testutil.NewTestRecorder()
	r := testutil.NewTestRequest("GET", "/api/sessions/2024/Monza/SPRINT/drivers")

	srv.Router().ServeHTTP(w, r)
	testutil.AssertStatusCode(t, w.Code, 400)
}

func TestTelemetryChartRenders(t *testing.T) {
	srv := newTestServer()
	w := testutil.NewTestRecorder()
	r := testutil.NewTestRequest("GET", "/charts/sessions/2024/Monza/R/telemetry?d1=VER&d2=NOR&metrics=Speed")

	srv.Router().ServeHTTP(w, r)
	testutil.AssertStatusCode(t, w.Code, 200)
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("content type = %q", ct)
	}
	if w.Body.Len() == 0 {
		t.Error("empty chart body")
	}
}
