package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/fovea-data/gaze.report/internal/gaze"
)

// Pixel dimensions for the rendered chart. Marker radii in normalized
// units scale by the chart width.
const (
	chartSizePx   = 800
	chartSizeAttr = "800px"
)

// RenderScanpathChart writes a self-contained HTML scanpath chart:
// fixation circles sized by duration plus saccade lines, drawn in
// stimulus orientation (top-left origin, so y is flipped for display).
func RenderScanpathChart(res *gaze.AnalysisResult, title string, w io.Writer) error {
	sp := BuildScanpathPlot(res.Fixations)

	scatterData := make([]opts.ScatterData, 0, len(sp.Markers))
	for _, m := range sp.Markers {
		scatterData = append(scatterData, opts.ScatterData{
			Value:      []interface{}{m.X, 1 - m.Y, m.DurationMs},
			SymbolSize: int(m.Radius * chartSizePx),
		})
	}

	lineData := make([]opts.LineData, 0, len(sp.Markers))
	for _, m := range sp.Markers {
		lineData = append(lineData, opts.LineData{Value: []interface{}{m.X, 1 - m.Y}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     chartSizeAttr,
			Height:    chartSizeAttr,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("fixations=%d path_length=%.4f", sp.FixationCount(), res.Scanpath.TotalLength),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Min: 0, Max: 1, Name: "x"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: 0, Max: 1, Name: "y"}),
	)
	scatter.AddSeries("fixations", scatterData)

	line := charts.NewLine()
	line.AddSeries("saccades", lineData,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(false)}),
	)
	scatter.Overlap(line)

	return scatter.Render(w)
}

// FixationCount reports the number of plotted markers.
func (p ScanpathPlot) FixationCount() int {
	return len(p.Markers)
}
