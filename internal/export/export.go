// Package export writes a two-driver speed comparison to disk: a delimited
// table restricted to distances where both drivers have a sample, and a
// static PNG plot. Each export lands in its own run directory so repeated
// exports never clobber each other.
package export

import (
	"encoding/csv"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/paddock-data/lapdelta/internal/telemetry"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Result describes one finished export run.
type Result struct {
	RunID    string
	Dir      string
	CSVPath  string
	PlotPath string
	Rows     int
}

// Exporter writes export runs under BaseDir.
type Exporter struct {
	BaseDir string
}

// SpeedComparison writes the CSV table and PNG plot for one compared speed
// series. title labels the plot; colorA/colorB are hex team colors.
func (e *Exporter) SpeedComparison(cs telemetry.ComparisonSeries, title, colorA, colorB string) (*Result, error) {
	runID := fmt.Sprintf("%s_%s", time.Now().Format("20060102_150405"), uuid.NewString()[:8])
	dir := filepath.Join(e.BaseDir, runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export dir: %w", err)
	}

	result := &Result{
		RunID:    runID,
		Dir:      dir,
		CSVPath:  filepath.Join(dir, "speed_comparison.csv"),
		PlotPath: filepath.Join(dir, "speed_comparison.png"),
	}

	f, err := os.Create(result.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create csv: %w", err)
	}
	rows, err := WriteSpeedCSV(f, cs)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	result.Rows = rows

	if err := SavePlot(result.PlotPath, cs, title, colorA, colorB); err != nil {
		return nil, err
	}
	return result, nil
}

// WriteSpeedCSV writes the distance/speed table for both drivers. Rows are
// restricted to distances present in both series: the two sides keep their
// native sample distances, so only exact matches (typically the shared 0
// start and coincident samples) form complete rows, and nothing is
// interpolated to fill the rest. Returns the number of data rows written.
func WriteSpeedCSV(w io.Writer, cs telemetry.ComparisonSeries) (int, error) {
	cw := csv.NewWriter(w)
	header := []string{"distance_m", cs.A.Driver + "_speed", cs.B.Driver + "_speed"}
	if err := cw.Write(header); err != nil {
		return 0, err
	}

	rows := 0
	i, j := 0, 0
	for i < len(cs.A.Distance) && j < len(cs.B.Distance) {
		da, db := cs.A.Distance[i], cs.B.Distance[j]
		switch {
		case da < db:
			i++
		case db < da:
			j++
		default:
			record := []string{
				strconv.FormatFloat(da, 'f', 2, 64),
				strconv.FormatFloat(cs.A.Values[i], 'f', 1, 64),
				strconv.FormatFloat(cs.B.Values[j], 'f', 1, 64),
			}
			if err := cw.Write(record); err != nil {
				return rows, err
			}
			rows++
			i++
			j++
		}
	}
	cw.Flush()
	return rows, cw.Error()
}

// SavePlot renders both speed traces against their own distance axes into a
// PNG at path.
func SavePlot(path string, cs telemetry.ComparisonSeries, title, colorA, colorB string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Distance (m)"
	p.Y.Label.Text = "Speed (km/h)"

	lineA, err := plotter.NewLine(seriesXYs(cs.A))
	if err != nil {
		return fmt.Errorf("failed to build plot line: %w", err)
	}
	lineA.Color = parseHexColor(colorA)
	lineA.Width = vg.Points(1)

	lineB, err := plotter.NewLine(seriesXYs(cs.B))
	if err != nil {
		return fmt.Errorf("failed to build plot line: %w", err)
	}
	lineB.Color = parseHexColor(colorB)
	lineB.Width = vg.Points(1)

	p.Add(lineA, lineB)
	p.Legend.Add(fmt.Sprintf("%s (lap %d)", cs.A.Driver, cs.A.Number), lineA)
	p.Legend.Add(fmt.Sprintf("%s (lap %d)", cs.B.Driver, cs.B.Number), lineB)
	p.Legend.Top = true

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

func seriesXYs(s telemetry.Series) plotter.XYs {
	pts := make(plotter.XYs, len(s.Distance))
	for i := range s.Distance {
		pts[i] = plotter.XY{X: s.Distance[i], Y: s.Values[i]}
	}
	return pts
}

// parseHexColor converts "#RRGGBB" to a color; unparseable values fall back
// to white.
func parseHexColor(hex string) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.White
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
