package telemetry

import (
	"time"

	"github.com/paddock-data/lapdelta/internal/f1"
)

// SectorTimes carries a lap's three sector splits in seconds. Slots are
// individually nullable: a sector the timing system never recorded (e.g. a
// session aborted mid-sector) stays nil rather than becoming zero, and the
// lap is never dropped for having a gap.
type SectorTimes struct {
	Driver  string   `json:"driver"`
	Lap     int      `json:"lap"`
	Sector1 *float64 `json:"sector1"`
	Sector2 *float64 `json:"sector2"`
	Sector3 *float64 `json:"sector3"`
}

// Sectors extracts the sector splits for a lap.
func Sectors(lap *f1.Lap) SectorTimes {
	return SectorTimes{
		Driver:  lap.Driver,
		Lap:     lap.Number,
		Sector1: durationSeconds(lap.Sector1),
		Sector2: durationSeconds(lap.Sector2),
		Sector3: durationSeconds(lap.Sector3),
	}
}

func durationSeconds(d *time.Duration) *float64 {
	if d == nil {
		return nil
	}
	s := d.Seconds()
	return &s
}
