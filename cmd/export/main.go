// Command export writes a two-driver speed comparison for one session to
// disk: a CSV of distances where both drivers have a sample, and a PNG plot.
// Sessions come through the same sqlite-backed cache the server uses, so an
// export after a server run never refetches from the provider.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/paddock-data/lapdelta/internal/export"
	"github.com/paddock-data/lapdelta/internal/f1"
	"github.com/paddock-data/lapdelta/internal/session"
	"github.com/paddock-data/lapdelta/internal/telemetry"
)

var (
	season        = flag.Int("season", 0, "Championship season, e.g. 2024")
	event         = flag.String("event", "", "Event name, e.g. 'Monza'")
	kind          = flag.String("kind", string(f1.KindRace), "Session kind (FP1, FP2, FP3, Q, R)")
	driver1       = flag.String("d1", "", "First driver identifier")
	driver2       = flag.String("d2", "", "Second driver identifier")
	lap1          = flag.Int("lap1", 0, "Lap number for the first driver (0 = fastest)")
	lap2          = flag.Int("lap2", 0, "Lap number for the second driver (0 = fastest)")
	dbFile        = flag.String("db", "sessions.db", "Path to the session cache database")
	providerURL   = flag.String("provider", "http://localhost:9000", "Base URL of the session data provider")
	migrationsDir = flag.String("migrations", "migrations", "Path to the migrations directory")
	outDir        = flag.String("out", "exports", "Base directory for export runs")
)

func main() {
	flag.Parse()

	if *season == 0 || *event == "" || *driver1 == "" || *driver2 == "" {
		log.Fatal("flags -season, -event, -d1 and -d2 are required")
	}
	sessionKind, err := f1.ParseSessionKind(*kind)
	if err != nil {
		log.Fatalf("invalid session kind: %v", err)
	}

	store, err := session.NewStore(*dbFile)
	if err != nil {
		log.Fatalf("Failed to open session cache: %v", err)
	}
	defer store.Close()

	if err := store.MigrateUp(*migrationsDir); err != nil {
		log.Fatalf("Failed to migrate session cache: %v", err)
	}

	repo := session.NewCachingRepository(store, session.NewProvider(nil, *providerURL))
	key := session.Key{Season: *season, Event: *event, Kind: sessionKind}

	sess, err := repo.Get(context.Background(), key)
	if err != nil {
		log.Fatalf("Failed to load session %s: %v", key, err)
	}

	lapA, err := pickLap(sess, *driver1, *lap1)
	if err != nil {
		log.Fatalf("Failed to select lap for %s: %v", *driver1, err)
	}
	lapB, err := pickLap(sess, *driver2, *lap2)
	if err != nil {
		log.Fatalf("Failed to select lap for %s: %v", *driver2, err)
	}

	cmp, err := telemetry.BuildComparison(lapA, lapB, []f1.Metric{f1.MetricSpeed})
	if err != nil {
		log.Fatalf("Failed to compare laps: %v", err)
	}
	cs, ok := cmp.Series[f1.MetricSpeed]
	if !ok {
		log.Fatalf("no speed series for %s vs %s", *driver1, *driver2)
	}

	exporter := &export.Exporter{BaseDir: *outDir}
	title := fmt.Sprintf("%s %d %s: %s vs %s", sess.Event, sess.Season, sess.Kind, *driver1, *driver2)
	result, err := exporter.SpeedComparison(cs, title, f1.TeamColor(lapA.Team), f1.TeamColor(lapB.Team))
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	log.Printf("wrote %d rows to %s", result.Rows, result.CSVPath)
	log.Printf("wrote plot to %s", result.PlotPath)
}

func pickLap(sess *f1.Session, driver string, number int) (*f1.Lap, error) {
	if number > 0 {
		return telemetry.LapByNumber(sess, driver, number)
	}
	return telemetry.FastestLap(sess, driver)
}
