// Package render draws the comparison charts and writes them as PNG files.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/noshow-cli/internal/analysis"
)

// ErrMismatchedSeries is returned when the two cohort panels and the label
// list of a dual-panel chart differ in length. No file is written.
var ErrMismatchedSeries = errors.New("show, noShow and labels must have equal length")

// Options controls chart size, color and destination.
type Options struct {
	// Dir receives the PNG files; it is created on first write.
	Dir          string
	FigureWidth  vg.Length
	FigureHeight vg.Length
	PieWidth     int
	PieHeight    int
	CountColor   drawing.Color
}

// DefaultOptions returns the chart settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Dir:          "Plots",
		FigureWidth:  12 * vg.Inch,
		FigureHeight: 8 * vg.Inch,
		PieWidth:     1000,
		PieHeight:    800,
		CountColor:   drawing.ColorFromHex("4682b4"),
	}
}

// ParseColor accepts "rrggbb" with or without a leading '#'.
func ParseColor(hex string) (drawing.Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) != 6 {
		return drawing.Color{}, fmt.Errorf("invalid color %q (want rrggbb)", hex)
	}
	for _, c := range h {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return drawing.Color{}, fmt.Errorf("invalid color %q (want rrggbb)", hex)
		}
	}
	return drawing.ColorFromHex(h), nil
}

// PNGRenderer writes every chart as a PNG under Options.Dir.
type PNGRenderer struct {
	opt Options
}

// New returns a renderer; zero-valued sizes fall back to DefaultOptions.
func New(opt Options) *PNGRenderer {
	def := DefaultOptions()
	if opt.Dir == "" {
		opt.Dir = def.Dir
	}
	if opt.FigureWidth <= 0 || opt.FigureHeight <= 0 {
		opt.FigureWidth, opt.FigureHeight = def.FigureWidth, def.FigureHeight
	}
	if opt.PieWidth <= 0 || opt.PieHeight <= 0 {
		opt.PieWidth, opt.PieHeight = def.PieWidth, def.PieHeight
	}
	if opt.CountColor == (drawing.Color{}) {
		opt.CountColor = def.CountColor
	}
	return &PNGRenderer{opt: opt}
}

// Dir returns the output directory.
func (r *PNGRenderer) Dir() string { return r.opt.Dir }

// Annotation is the text drawn over one sub-series bar.
type Annotation struct {
	X       float64
	Count   int
	Percent float64
	Text    string
}

// Annotate computes each sub-series' raw count and share of the panel total.
// A panel whose total is zero reports 0% for every sub-series.
func Annotate(series []analysis.SubSeries) []Annotation {
	total := 0
	for _, s := range series {
		total += s.Len()
	}
	out := make([]Annotation, len(series))
	for i, s := range series {
		n := s.Len()
		pct := 0.0
		if total > 0 {
			pct = float64(n) / float64(total) * 100.0
		}
		x := s.Category
		if n > 0 {
			x = s.Values[0]
		}
		out[i] = Annotation{X: x, Count: n, Percent: pct, Text: fmt.Sprintf("%d(%.3f%%)", n, pct)}
	}
	return out
}
