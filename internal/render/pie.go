package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/KaramelBytes/noshow-cli/internal/analysis"
	"github.com/KaramelBytes/noshow-cli/internal/utils"
)

const headerHeight = 32

// WeekdayPies draws the weekday distribution of each cohort as a pie and
// writes <title>Analysis.png.
func (r *PNGRenderer) WeekdayPies(title string, show, noShow []analysis.DayShare) (string, error) {
	w, h := r.opt.PieWidth/2, r.opt.PieHeight-headerHeight
	left, err := pieImage("Show", show, w, h)
	if err != nil {
		return "", fmt.Errorf("%s show pie: %w", title, err)
	}
	right, err := pieImage("NoShow", noShow, w, h)
	if err != nil {
		return "", fmt.Errorf("%s noshow pie: %w", title, err)
	}
	img := sideBySide(title, left, right)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("%s: encode png: %w", title, err)
	}
	return utils.WriteArtifact(r.opt.Dir, title+"Analysis.png", buf.Bytes())
}

func pieImage(name string, shares []analysis.DayShare, w, h int) (image.Image, error) {
	if len(shares) == 0 {
		return placeholder(name, "no appointments", w, h), nil
	}
	values := make([]chart.Value, len(shares))
	for i, s := range shares {
		values[i] = chart.Value{Value: s.Percent, Label: fmt.Sprintf("%s %.1f%%", s.Name, s.Percent)}
	}
	pie := chart.PieChart{
		Title:      name,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Values:     values,
	}
	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render pie: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode pie: %w", err)
	}
	return img, nil
}

// sideBySide places left and right under a header strip carrying title.
func sideBySide(title string, left, right image.Image) *image.RGBA {
	lb, rb := left.Bounds(), right.Bounds()
	w := lb.Dx() + rb.Dx()
	h := max(lb.Dy(), rb.Dy()) + headerHeight
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, headerHeight, lb.Dx(), headerHeight+lb.Dy()), left, lb.Min, draw.Src)
	draw.Draw(out, image.Rect(lb.Dx(), headerHeight, w, headerHeight+rb.Dy()), right, rb.Min, draw.Src)
	drawCentered(out, title, 0, w, headerHeight-10)
	return out
}

func placeholder(name, msg string, w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	drawCentered(img, name, 0, w, 30)
	drawCentered(img, msg, 0, w, h/2)
	return img
}

// drawCentered writes text horizontally centered between x0 and x1 with its
// baseline at y.
func drawCentered(img *image.RGBA, text string, x0, x1, y int) {
	dr := &font.Drawer{Dst: img, Src: image.NewUniform(color.Black), Face: basicfont.Face7x13}
	tw := dr.MeasureString(text).Ceil()
	x := x0 + (x1-x0-tw)/2
	if x < x0 {
		x = x0
	}
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
}
