package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/presence.report/internal/beacon"
)

// RenderBeaconChart writes an HTML bar chart of per-beacon observation
// counts. It is a quick visual check that every deployed beacon is
// actually being heard; a flat zero bar usually means a dead battery.
func RenderBeaconChart(w io.Writer, s Stats) error {
	labels := make([]string, beacon.Count)
	data := make([]opts.BarData, beacon.Count)
	for i := 0; i < beacon.Count; i++ {
		labels[i] = fmt.Sprintf("beacon_%d", i+1)
		data[i] = opts.BarData{Value: s.BeaconCounts[i]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Beacon Observations", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Beacon observation counts",
			Subtitle: fmt.Sprintf("mode=%s rows=%d users=%d", s.Mode, s.Rows, s.Users),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries("observations", data)

	return bar.Render(w)
}
