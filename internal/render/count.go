package render

import (
	"bytes"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/noshow-cli/internal/analysis"
	"github.com/KaramelBytes/noshow-cli/internal/utils"
)

// CountChart draws the raw category distribution of a column as a single bar
// chart and writes <column>1DAnalysis.png.
func (r *PNGRenderer) CountChart(column string, counts []analysis.CategoryCount) (string, error) {
	if len(counts) == 0 {
		return "", fmt.Errorf("%s: no values to count", column)
	}
	width := pixels(r.opt.FigureWidth)
	height := pixels(r.opt.FigureHeight)

	style := chart.Style{FillColor: r.opt.CountColor, StrokeColor: r.opt.CountColor, StrokeWidth: 1}
	bars := make([]chart.Value, len(counts))
	maxCount := 0
	for i, c := range counts {
		bars[i] = chart.Value{Value: float64(c.Count), Label: c.Value, Style: style}
		if c.Count > maxCount {
			maxCount = c.Count
		}
	}
	// bars share 80% of the canvas, gaps the rest
	slot := (width - 96) / len(counts)
	barWidth := max(min(slot*4/5, 160), 2)
	bc := chart.BarChart{
		Title:      column,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		BarWidth:   barWidth,
		BarSpacing: max(slot-barWidth, 1),
		YAxis: chart.YAxis{
			Name:  "count",
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount)*1.1 + 1},
		},
		Bars: bars,
	}
	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return "", fmt.Errorf("%s: render bars: %w", column, err)
	}
	return utils.WriteArtifact(r.opt.Dir, column+"1DAnalysis.png", buf.Bytes())
}

// pixels converts a figure length to pixels at the vgimg default of 96 dpi.
func pixels(l vg.Length) int {
	return int(l.Dots(96))
}
