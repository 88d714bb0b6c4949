package cmd

import (
	"fmt"

	"gonum.org/v1/plot/vg"

	cfgpkg "github.com/KaramelBytes/noshow-cli/internal/config"
	"github.com/KaramelBytes/noshow-cli/internal/cohort"
	"github.com/KaramelBytes/noshow-cli/internal/dataset"
	"github.com/KaramelBytes/noshow-cli/internal/logging"
	"github.com/KaramelBytes/noshow-cli/internal/pipeline"
	"github.com/KaramelBytes/noshow-cli/internal/render"
)

// sheetName selects the XLSX worksheet; shared by every command reading a dataset.
var sheetName string

// inputPath picks the positional file argument, falling back to input_path.
func inputPath(c *cfgpkg.Global, args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return c.InputPath
}

func openDataset(c *cfgpkg.Global, path string) (*dataset.Dataset, error) {
	opt := dataset.Options{Sheet: sheetName}
	// ',' is the default; leave it unset so .tsv files keep their tab
	if r := c.DelimiterRune(); r != ',' {
		opt.Delimiter = r
	}
	ds, err := dataset.Load(path, opt)
	if err != nil {
		return nil, err
	}
	logging.Debugf("loaded %s: %d rows, columns %v", path, ds.Len(), ds.Columns())
	return ds, nil
}

func newRenderer(c *cfgpkg.Global) (*render.PNGRenderer, error) {
	col, err := render.ParseColor(c.CountColor)
	if err != nil {
		return nil, fmt.Errorf("count_color: %w", err)
	}
	return render.New(render.Options{
		Dir:          c.PlotsDir,
		FigureWidth:  vg.Length(c.FigureWidthIn) * vg.Inch,
		FigureHeight: vg.Length(c.FigureHeightIn) * vg.Inch,
		PieWidth:     c.PieWidthPx,
		PieHeight:    c.PieHeightPx,
		CountColor:   col,
	}), nil
}

func pipelineOptions(c *cfgpkg.Global) pipeline.Options {
	return pipeline.Options{Labels: cohort.Labels{Show: c.ShowLabel, NoShow: c.NoShowLabel}}
}
