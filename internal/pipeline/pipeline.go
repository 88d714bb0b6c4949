// Package pipeline runs the cohort comparisons in a fixed order and hands the
// results to a Renderer.
package pipeline

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"

	"github.com/KaramelBytes/noshow-cli/internal/analysis"
	"github.com/KaramelBytes/noshow-cli/internal/cohort"
	"github.com/KaramelBytes/noshow-cli/internal/dataset"
	"github.com/KaramelBytes/noshow-cli/internal/logging"
	"github.com/KaramelBytes/noshow-cli/internal/render"
)

// WeekdayTitle names the appointment-day chart and its output file.
const WeekdayTitle = "AppointmentDay"

// Renderer turns analysis results into files and returns the written path.
type Renderer interface {
	DualPanel(title string, show, noShow []analysis.SubSeries, labels []string) (string, error)
	WeekdayPies(title string, show, noShow []analysis.DayShare) (string, error)
	CountChart(column string, counts []analysis.CategoryCount) (string, error)
}

// Options configures a run.
type Options struct {
	Labels cohort.Labels
}

// Order is the sequence of charts produced by Run. Each attribute title emits
// its count chart followed by its dual-panel chart.
var Order = []string{"Alcoholism", WeekdayTitle, "Diabetes", "Handicap", "Hypertension", "SMS"}

// Result summarizes a run.
type Result struct {
	RunID         string
	Rows          int
	Show          int
	NoShow        int
	Unclassified  int
	Artifacts     []string
	Comparisons   []analysis.Comparison
	WeekdayShow   []analysis.DayShare
	WeekdayNoShow []analysis.DayShare
}

type runner struct {
	ds    *dataset.Dataset
	r     Renderer
	masks cohort.Masks
	res   *Result
}

func newRunner(ds *dataset.Dataset, r Renderer, opt Options) (*runner, error) {
	labels := opt.Labels
	if labels == (cohort.Labels{}) {
		labels = cohort.DefaultLabels
	}
	outcomes, err := ds.Column(dataset.ColNoShow)
	if err != nil {
		return nil, err
	}
	masks, err := cohort.FromSeries(outcomes, labels)
	if err != nil {
		return nil, fmt.Errorf("split cohorts: %w", err)
	}
	res := &Result{RunID: uuid.NewString(), Rows: ds.Len()}
	res.Show, res.NoShow, res.Unclassified = masks.Counts()
	logging.Infof("[%s] %s: %d rows, %d show, %d no-show", res.RunID[:8], ds.Name, res.Rows, res.Show, res.NoShow)
	if res.Unclassified > 0 {
		logging.Warnf("[%s] %d record(s) have an outcome other than %q or %q and belong to neither cohort",
			res.RunID[:8], res.Unclassified, labels.Show, labels.NoShow)
	}
	return &runner{ds: ds, r: r, masks: masks, res: res}, nil
}

// Run produces every chart in Order. The first error aborts the run; the
// returned Result still lists the artifacts written before it.
func Run(ds *dataset.Dataset, r Renderer, opt Options) (*Result, error) {
	defer logging.TimeTrack(time.Now(), "pipeline run")
	run, err := newRunner(ds, r, opt)
	if err != nil {
		return nil, err
	}
	for _, name := range Order {
		if err := run.step(name); err != nil {
			return run.res, err
		}
	}
	return run.res, nil
}

// RunAttribute produces the count chart and the dual-panel chart of a single
// attribute.
func RunAttribute(ds *dataset.Dataset, r Renderer, opt Options, spec analysis.AttributeSpec) (*Result, error) {
	run, err := newRunner(ds, r, opt)
	if err != nil {
		return nil, err
	}
	return run.res, run.attribute(spec)
}

// RunWeekday produces the appointment weekday pies.
func RunWeekday(ds *dataset.Dataset, r Renderer, opt Options) (*Result, error) {
	run, err := newRunner(ds, r, opt)
	if err != nil {
		return nil, err
	}
	return run.res, run.weekday()
}

func (run *runner) step(name string) error {
	if name == WeekdayTitle {
		return run.weekday()
	}
	spec, ok := analysis.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown attribute %q", name)
	}
	return run.attribute(spec)
}

func (run *runner) attribute(spec analysis.AttributeSpec) error {
	raw, err := run.ds.Strings(spec.Column)
	if err != nil {
		return err
	}
	counts, err := analysis.CountCategories(raw)
	if err != nil {
		return err
	}
	path, err := run.r.CountChart(spec.Column, counts)
	if err != nil {
		return fmt.Errorf("count chart %s: %w", spec.Column, err)
	}
	run.record(path)

	values, err := run.ds.FloatSeries(spec.Column)
	if err != nil {
		return err
	}
	cmp, err := analysis.Compare(values, run.masks, spec)
	if err != nil {
		return err
	}
	if show, noShow := cmp.Excluded(); show+noShow > 0 {
		logging.Debugf("[%s] %s: %d show and %d no-show value(s) outside {%g, %g} left out",
			run.res.RunID[:8], spec.Title, show, noShow, spec.Positive, spec.Negative)
	}
	labels := []string{spec.Labels[0], spec.Labels[1]}
	path, err = run.r.DualPanel(spec.Title, cmp.Show[:], cmp.NoShow[:], labels)
	if err != nil {
		return fmt.Errorf("dual panel %s: %w", spec.Title, err)
	}
	run.res.Comparisons = append(run.res.Comparisons, cmp)
	run.record(path)
	logging.Info(panelLine(spec.Title, "show", cmp.Show[:]))
	logging.Info(panelLine(spec.Title, "no-show", cmp.NoShow[:]))
	return nil
}

// panelLine renders the bar annotations of one panel, e.g.
// "Hypertension show: 3(42.857%) 4(57.143%)".
func panelLine(title, panel string, subs []analysis.SubSeries) string {
	anns := render.Annotate(subs)
	texts := make([]string, len(anns))
	for i, a := range anns {
		texts[i] = a.Text
	}
	return fmt.Sprintf("%s %s: %s", title, panel, strings.Join(texts, " "))
}

func (run *runner) weekday() error {
	days, err := run.ds.Times(dataset.ColAppointmentDay)
	if err != nil {
		return err
	}
	show, err := analysis.WeekdayShares(days, run.masks.Show)
	if err != nil {
		return err
	}
	noShow, err := analysis.WeekdayShares(days, run.masks.NoShow)
	if err != nil {
		return err
	}
	path, err := run.r.WeekdayPies(WeekdayTitle, show, noShow)
	if err != nil {
		return fmt.Errorf("weekday pies: %w", err)
	}
	run.res.WeekdayShow, run.res.WeekdayNoShow = show, noShow
	run.record(path)
	return nil
}

func (run *runner) record(path string) {
	logging.Debugf("[%s] wrote %s", run.res.RunID[:8], path)
	run.res.Artifacts = append(run.res.Artifacts, path)
}

// WriteSummary prints the per-attribute cohort split as a table.
func (res *Result) WriteSummary(w io.Writer) {
	if len(res.Comparisons) > 0 {
		tw := tablewriter.NewWriter(w)
		tw.SetHeader([]string{"Attribute", "Show has", "Show no", "NoShow has", "NoShow no"})
		for _, c := range res.Comparisons {
			tw.Append([]string{
				c.Spec.Title,
				share(c.Show[0].Len(), c.ShowTotal),
				share(c.Show[1].Len(), c.ShowTotal),
				share(c.NoShow[0].Len(), c.NoShowTotal),
				share(c.NoShow[1].Len(), c.NoShowTotal),
			})
		}
		tw.Render()
	}
	if len(res.WeekdayShow)+len(res.WeekdayNoShow) > 0 {
		fmt.Fprintf(w, "Show by weekday:   %s\n", weekdayLine(res.WeekdayShow))
		fmt.Fprintf(w, "NoShow by weekday: %s\n", weekdayLine(res.WeekdayNoShow))
	}
}

func share(n, total int) string {
	if total == 0 {
		return strconv.Itoa(n)
	}
	return fmt.Sprintf("%d (%.1f%%)", n, float64(n)/float64(total)*100)
}

func weekdayLine(shares []analysis.DayShare) string {
	if len(shares) == 0 {
		return "-"
	}
	parts := make([]string, len(shares))
	for i, s := range shares {
		parts[i] = fmt.Sprintf("%s %.1f%%", s.Name[:3], s.Percent)
	}
	return strings.Join(parts, ", ")
}
