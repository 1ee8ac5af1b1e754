package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveHourlyPlot renders a PNG bar chart of rows per hour of day.
// gonum/plot writes straight to a path, so this takes a filename
// rather than going through the fsutil abstraction.
func SaveHourlyPlot(path string, s Stats) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Scan activity by hour (%s mode)", s.Mode)
	p.X.Label.Text = "hour of day"
	p.Y.Label.Text = "rows"

	values := make(plotter.Values, len(s.HourCounts))
	for h, n := range s.HourCounts {
		values[h] = float64(n)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("build bar chart: %w", err)
	}
	p.Add(bars)

	labels := make([]string, len(s.HourCounts))
	for h := range labels {
		labels[h] = fmt.Sprintf("%d", h)
	}
	p.NominalX(labels...)

	if err := p.Save(12*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
