package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/fovea-data/gaze.report/internal/gaze"
)

// Bubble radius bounds for the PNG renderer.
const (
	pngMinRadius = vg.Length(4)
	pngMaxRadius = vg.Length(20)
)

// SaveScanpathPNG renders the scanpath to a PNG file: one bubble per
// fixation scaled by duration, one line segment per saccade. The y axis
// is flipped so the image matches stimulus orientation (top-left origin).
func SaveScanpathPNG(fixations []gaze.Fixation, path string) error {
	sp := BuildScanpathPlot(fixations)

	p := plot.New()
	p.Title.Text = "Scanpath"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	linePts := make(plotter.XYs, 0, len(sp.Markers))
	bubblePts := make(plotter.XYZs, 0, len(sp.Markers))
	for _, m := range sp.Markers {
		linePts = append(linePts, plotter.XY{X: m.X, Y: 1 - m.Y})
		bubblePts = append(bubblePts, plotter.XYZ{X: m.X, Y: 1 - m.Y, Z: m.DurationMs})
	}

	if len(linePts) > 1 {
		line, err := plotter.NewLine(linePts)
		if err != nil {
			return fmt.Errorf("failed to build saccade line: %w", err)
		}
		line.Width = vg.Points(1)
		p.Add(line)
	}

	if len(bubblePts) > 0 {
		bubbles, err := plotter.NewBubbles(bubblePts, pngMinRadius, pngMaxRadius)
		if err != nil {
			return fmt.Errorf("failed to build fixation bubbles: %w", err)
		}
		p.Add(bubbles)
	}

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save scanpath plot: %w", err)
	}
	return nil
}
