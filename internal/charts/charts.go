// Package charts renders engine outputs as interactive go-echarts HTML.
// It consumes plain engine data and owns nothing but presentation: axis
// labels, team colors, page layout.
package charts

import (
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/paddock-data/lapdelta/internal/f1"
	"github.com/paddock-data/lapdelta/internal/telemetry"
)

// metricAxisLabels maps each metric to its y-axis label.
var metricAxisLabels = map[f1.Metric]string{
	f1.MetricSpeed:    "Speed (km/h)",
	f1.MetricThrottle: "Throttle (%)",
	f1.MetricBrake:    "Brake (on/off)",
	f1.MetricRPM:      "Engine RPM",
	f1.MetricDRS:      "DRS",
	f1.MetricGear:     "Gear",
}

// TelemetryComparison builds one line chart per compared metric, stacked on
// a single page. The two sides keep their own native distance values; both
// are plotted as (distance, value) pairs on a shared value-typed x-axis.
func TelemetryComparison(title string, result *telemetry.Comparison, colorA, colorB string) *components.Page {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)

	for _, m := range f1.Metrics {
		cs, ok := result.Series[m]
		if !ok {
			continue
		}
		page.AddCharts(metricLineChart(title, cs, colorA, colorB))
	}
	return page
}

func metricLineChart(title string, cs telemetry.ComparisonSeries, colorA, colorB string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "dark", Width: "1100px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s Comparison", metricAxisLabels[cs.Metric]), Subtitle: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Distance (m)", NameLocation: "middle", NameGap: 30}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: metricAxisLabels[cs.Metric]}),
	)

	line.AddSeries(seriesLabel(cs.A), lineData(cs.A), charts.WithLineStyleOpts(opts.LineStyle{Color: colorA}), charts.WithItemStyleOpts(opts.ItemStyle{Color: colorA}))
	line.AddSeries(seriesLabel(cs.B), lineData(cs.B), charts.WithLineStyleOpts(opts.LineStyle{Color: colorB}), charts.WithItemStyleOpts(opts.ItemStyle{Color: colorB}))
	return line
}

func seriesLabel(s telemetry.Series) string {
	return fmt.Sprintf("%s (lap %d)", s.Driver, s.Number)
}

// lineData projects a series onto (distance, value) pairs, skipping absent
// readings so echarts draws a gap instead of a spike to zero.
func lineData(s telemetry.Series) []opts.LineData {
	data := make([]opts.LineData, 0, len(s.Values))
	for i, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		data = append(data, opts.LineData{Value: []interface{}{s.Distance[i], v}})
	}
	return data
}

// LapTimeComparison renders the paired quick-lap time series of two drivers
// as lap-number keyed lines.
func LapTimeComparison(title, driverA, driverB, colorA, colorB string, paired []telemetry.PairedLapTime) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "dark", Width: "1100px", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: "Lap-by-Lap Comparison", Subtitle: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Lap Number", NameLocation: "middle", NameGap: 30}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Lap Time (s)"}),
	)

	dataA := make([]opts.LineData, 0, len(paired))
	dataB := make([]opts.LineData, 0, len(paired))
	for _, p := range paired {
		dataA = append(dataA, opts.LineData{Value: []interface{}{p.Lap, p.SecondsA}})
		dataB = append(dataB, opts.LineData{Value: []interface{}{p.Lap, p.SecondsB}})
	}
	line.AddSeries(driverA, dataA, charts.WithLineStyleOpts(opts.LineStyle{Color: colorA}), charts.WithItemStyleOpts(opts.ItemStyle{Color: colorA}))
	line.AddSeries(driverB, dataB, charts.WithLineStyleOpts(opts.LineStyle{Color: colorB}), charts.WithItemStyleOpts(opts.ItemStyle{Color: colorB}))
	return line
}
