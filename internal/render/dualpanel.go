package render

import (
	"bytes"
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/KaramelBytes/noshow-cli/internal/analysis"
	"github.com/KaramelBytes/noshow-cli/internal/utils"
)

const histBins = 10

// DualPanel draws one histogram per sub-series on a Show and a NoShow panel,
// annotates every bar with its count and panel share, and writes
// <title>Analysis.png.
func (r *PNGRenderer) DualPanel(title string, show, noShow []analysis.SubSeries, labels []string) (string, error) {
	if len(show) != len(noShow) || len(show) != len(labels) {
		return "", fmt.Errorf("%s: %w (show=%d noShow=%d labels=%d)", title, ErrMismatchedSeries, len(show), len(noShow), len(labels))
	}
	showPlot, err := panelPlot("Show", show, labels)
	if err != nil {
		return "", fmt.Errorf("%s show panel: %w", title, err)
	}
	noShowPlot, err := panelPlot("NoShow", noShow, labels)
	if err != nil {
		return "", fmt.Errorf("%s noshow panel: %w", title, err)
	}

	img := vgimg.New(r.opt.FigureWidth, r.opt.FigureHeight)
	dc := draw.New(img)

	sty := showPlot.Title.TextStyle
	sty.Font.Size = vg.Points(16)
	dc.FillText(sty, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - vg.Points(8)}, title)

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadTop:    vg.Points(36),
		PadBottom: vg.Points(8),
		PadLeft:   vg.Points(8),
		PadRight:  vg.Points(8),
		PadX:      vg.Points(24),
	}
	canvases := plot.Align([][]*plot.Plot{{showPlot, noShowPlot}}, tiles, dc)
	showPlot.Draw(canvases[0][0])
	noShowPlot.Draw(canvases[0][1])

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return "", fmt.Errorf("%s: encode png: %w", title, err)
	}
	return utils.WriteArtifact(r.opt.Dir, title+"Analysis.png", buf.Bytes())
}

func panelPlot(name string, series []analysis.SubSeries, labels []string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = name
	p.Y.Label.Text = "Frequency"
	p.Legend.Top = true

	anns := Annotate(series)
	pts := make(plotter.XYs, len(series))
	texts := make([]string, len(series))
	for i, s := range series {
		if s.Len() > 0 {
			h, err := histogram(s.Values, histBins)
			if err != nil {
				return nil, fmt.Errorf("%s histogram: %w", labels[i], err)
			}
			h.FillColor = plotutil.Color(i)
			p.Add(h)
			p.Legend.Add(labels[i], h)
		}
		pts[i] = plotter.XY{X: anns[i].X, Y: float64(anns[i].Count)}
		texts[i] = anns[i].Text
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: texts})
	if err != nil {
		return nil, fmt.Errorf("annotations: %w", err)
	}
	p.Add(l)

	// headroom so the annotation over the tallest bar stays inside the panel
	p.Y.Min = 0
	p.Y.Max = math.Max(p.Y.Max*1.15, 1)
	return p, nil
}

// histogram bins values into n equal-width bins over their range. A constant
// series gets one bar centered on its value.
func histogram(values []float64, n int) (*plotter.Histogram, error) {
	vals := plotter.Values(values)
	h, err := plotter.NewHist(vals, n)
	if err != nil {
		return nil, err
	}
	if lo, hi := plotter.Range(vals); lo == hi {
		for i := range h.Bins {
			h.Bins[i].Min -= h.Width / 2
			h.Bins[i].Max -= h.Width / 2
		}
	}
	return h, nil
}
