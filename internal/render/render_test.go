package render

import (
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/noshow-cli/internal/analysis"
)

func subSeries(label string, cat float64, n int) analysis.SubSeries {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = cat
	}
	return analysis.SubSeries{Label: label, Category: cat, Values: vals}
}

func testRenderer(t *testing.T) *PNGRenderer {
	t.Helper()
	opt := DefaultOptions()
	opt.Dir = filepath.Join(t.TempDir(), "Plots")
	opt.PieWidth, opt.PieHeight = 400, 300
	return New(opt)
}

func decodePNG(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestAnnotatePercentagesSumTo100(t *testing.T) {
	anns := Annotate([]analysis.SubSeries{subSeries("Has", 1, 3), subSeries("No", 0, 1)})
	if anns[0].Text != "3(75.000%)" || anns[1].Text != "1(25.000%)" {
		t.Fatalf("texts: %q %q", anns[0].Text, anns[1].Text)
	}
	if math.Abs(anns[0].Percent+anns[1].Percent-100) > 1e-9 {
		t.Fatalf("percentages do not sum to 100: %+v", anns)
	}
	if anns[0].X != 1 || anns[1].X != 0 {
		t.Fatalf("anchors: %v %v", anns[0].X, anns[1].X)
	}
}

func TestAnnotateEmptySubSeries(t *testing.T) {
	anns := Annotate([]analysis.SubSeries{subSeries("Has", 1, 0), subSeries("No", 0, 0)})
	for _, a := range anns {
		if a.Text != "0(0.000%)" || a.Percent != 0 {
			t.Fatalf("empty panel annotation: %+v", a)
		}
	}
	if anns[0].X != 1 {
		t.Fatalf("empty sub-series should anchor on its category, got %v", anns[0].X)
	}
}

func TestDualPanelWritesPNG(t *testing.T) {
	r := testRenderer(t)
	show := []analysis.SubSeries{subSeries("HasAlcoholism", 1, 2), subSeries("NoAlcoholism", 0, 4)}
	noShow := []analysis.SubSeries{subSeries("HasAlcoholism", 1, 0), subSeries("NoAlcoholism", 0, 3)}
	path, err := r.DualPanel("Alcoholism", show, noShow, []string{"HasAlcoholism", "NoAlcoholism"})
	if err != nil {
		t.Fatalf("dual panel: %v", err)
	}
	if filepath.Base(path) != "AlcoholismAnalysis.png" {
		t.Fatalf("unexpected file name %s", path)
	}
	w, h := decodePNG(t, path)
	if w != 1152 || h != 768 {
		t.Fatalf("figure size %dx%d, want 1152x768", w, h)
	}
}

func TestDualPanelMismatchWritesNothing(t *testing.T) {
	r := testRenderer(t)
	show := []analysis.SubSeries{subSeries("A", 1, 1)}
	noShow := []analysis.SubSeries{subSeries("A", 1, 1), subSeries("B", 0, 1)}
	_, err := r.DualPanel("Broken", show, noShow, []string{"A"})
	if !errors.Is(err, ErrMismatchedSeries) {
		t.Fatalf("expected ErrMismatchedSeries, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(r.Dir(), "BrokenAnalysis.png")); !os.IsNotExist(err) {
		t.Fatalf("no file should be written on mismatch, stat err=%v", err)
	}
}

func TestWeekdayPiesWithEmptyCohort(t *testing.T) {
	r := testRenderer(t)
	show := []analysis.DayShare{
		{Day: 0, Name: "Monday", Count: 3, Percent: 60},
		{Day: 4, Name: "Friday", Count: 2, Percent: 40},
	}
	path, err := r.WeekdayPies("AppointmentDay", show, nil)
	if err != nil {
		t.Fatalf("pies: %v", err)
	}
	if filepath.Base(path) != "AppointmentDayAnalysis.png" {
		t.Fatalf("unexpected file name %s", path)
	}
	w, h := decodePNG(t, path)
	if w != 400 || h != 300 {
		t.Fatalf("pie figure size %dx%d, want 400x300", w, h)
	}
}

func TestCountChart(t *testing.T) {
	r := testRenderer(t)
	path, err := r.CountChart("Handicap", []analysis.CategoryCount{{Value: "0", Count: 9}, {Value: "1", Count: 2}, {Value: "2", Count: 1}})
	if err != nil {
		t.Fatalf("count chart: %v", err)
	}
	if filepath.Base(path) != "Handicap1DAnalysis.png" {
		t.Fatalf("unexpected file name %s", path)
	}
	decodePNG(t, path)

	if _, err := r.CountChart("Empty", nil); err == nil {
		t.Fatalf("expected error for empty counts")
	}
}

func TestParseColor(t *testing.T) {
	for _, in := range []string{"4682b4", "#4682B4"} {
		c, err := ParseColor(in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", in, err)
		}
		if c.R != 0x46 || c.G != 0x82 || c.B != 0xb4 {
			t.Fatalf("ParseColor(%q) = %+v", in, c)
		}
	}
	for _, bad := range []string{"", "4682b", "zz82b4"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) should fail", bad)
		}
	}
}

func TestHistogramCentersConstantSeries(t *testing.T) {
	h, err := histogram([]float64{1, 1, 1}, histBins)
	if err != nil {
		t.Fatalf("histogram: %v", err)
	}
	if len(h.Bins) != 1 {
		t.Fatalf("constant series should produce one bin, got %d", len(h.Bins))
	}
	b := h.Bins[0]
	if b.Min != 0.5 || b.Max != 1.5 || b.Weight != 3 {
		t.Fatalf("bin %+v, want [0.5, 1.5] weight 3", b)
	}

	h, err = histogram([]float64{0, 1, 1}, histBins)
	if err != nil {
		t.Fatalf("histogram: %v", err)
	}
	if len(h.Bins) != histBins || h.Bins[0].Min != 0 || h.Bins[histBins-1].Max != 1 {
		t.Fatalf("spread series bins: %+v", h.Bins)
	}
	total := 0.0
	for _, b := range h.Bins {
		total += b.Weight
	}
	if total != 3 {
		t.Fatalf("weights sum to %v, want 3", total)
	}
}
