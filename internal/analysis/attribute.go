// Package analysis computes the per-cohort slices that the charts are drawn from.
package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gota/gota/series"

	"github.com/KaramelBytes/noshow-cli/internal/cohort"
	"github.com/KaramelBytes/noshow-cli/internal/dataset"
)

// ErrLengthMismatch is returned when a column and the cohort masks cover a
// different number of records.
var ErrLengthMismatch = errors.New("column length does not match cohort masks")

// AttributeSpec describes one binary attribute compared across cohorts.
type AttributeSpec struct {
	Column   string
	Title    string
	Positive float64
	Negative float64
	// Labels for the positive and negative sub-series, in that order.
	Labels [2]string
}

// Attributes are the built-in binary attributes.
var Attributes = []AttributeSpec{
	{Column: dataset.ColHypertension, Title: "Hypertension", Positive: 1, Negative: 0, Labels: [2]string{"HasHypertension", "NoHypertension"}},
	{Column: dataset.ColDiabetes, Title: "Diabetes", Positive: 1, Negative: 0, Labels: [2]string{"HasDiabetes", "NoDiabetes"}},
	{Column: dataset.ColAlcoholism, Title: "Alcoholism", Positive: 1, Negative: 0, Labels: [2]string{"HasAlcoholism", "NoAlcoholism"}},
	{Column: dataset.ColHandicap, Title: "Handicap", Positive: 1, Negative: 0, Labels: [2]string{"HasHandicap", "NoHandicap"}},
	{Column: dataset.ColSMSReceived, Title: "SMS", Positive: 1, Negative: 0, Labels: [2]string{"ReceivedSMS", "NotReceivedSMS"}},
}

// Lookup finds a built-in attribute by column name or title, ignoring case.
func Lookup(name string) (AttributeSpec, bool) {
	n := strings.TrimSpace(name)
	for _, a := range Attributes {
		if strings.EqualFold(a.Column, n) || strings.EqualFold(a.Title, n) {
			return a, true
		}
	}
	return AttributeSpec{}, false
}

// SubSeries is a cohort's attribute values restricted to one category.
type SubSeries struct {
	Label    string
	Category float64
	Values   []float64
}

// Len returns the number of records in the sub-series.
func (s SubSeries) Len() int { return len(s.Values) }

// Comparison holds both cohorts split into [positive, negative] sub-series.
type Comparison struct {
	Spec   AttributeSpec
	Show   [2]SubSeries
	NoShow [2]SubSeries
	// Cohort sizes before the category split.
	ShowTotal   int
	NoShowTotal int
}

// Excluded reports how many cohort records matched neither category.
func (c Comparison) Excluded() (show, noShow int) {
	show = c.ShowTotal - c.Show[0].Len() - c.Show[1].Len()
	noShow = c.NoShowTotal - c.NoShow[0].Len() - c.NoShow[1].Len()
	return show, noShow
}

// Compare filters values by each cohort mask and splits every cohort by
// equality with the positive and negative category. Values matching neither
// (including NaN) are left out of both sub-series.
func Compare(values series.Series, masks cohort.Masks, spec AttributeSpec) (Comparison, error) {
	if values.Len() != masks.Len() {
		return Comparison{}, fmt.Errorf("%s: %w (%d values, %d masks)", spec.Column, ErrLengthMismatch, values.Len(), masks.Len())
	}
	if values.Type() != series.Float {
		values = series.New(values, series.Float, values.Name)
	}
	show := values.Subset(masks.Show)
	noShow := values.Subset(masks.NoShow)
	for _, s := range []series.Series{show, noShow} {
		if s.Err != nil {
			return Comparison{}, fmt.Errorf("%s: %w", spec.Column, s.Err)
		}
	}
	showSplit, err := split(show, spec)
	if err != nil {
		return Comparison{}, err
	}
	noShowSplit, err := split(noShow, spec)
	if err != nil {
		return Comparison{}, err
	}
	return Comparison{
		Spec:        spec,
		Show:        showSplit,
		NoShow:      noShowSplit,
		ShowTotal:   show.Len(),
		NoShowTotal: noShow.Len(),
	}, nil
}

func split(values series.Series, spec AttributeSpec) ([2]SubSeries, error) {
	pos, err := category(values, spec.Positive)
	if err != nil {
		return [2]SubSeries{}, fmt.Errorf("%s = %g: %w", spec.Column, spec.Positive, err)
	}
	neg, err := category(values, spec.Negative)
	if err != nil {
		return [2]SubSeries{}, fmt.Errorf("%s = %g: %w", spec.Column, spec.Negative, err)
	}
	return [2]SubSeries{
		{Label: spec.Labels[0], Category: spec.Positive, Values: pos},
		{Label: spec.Labels[1], Category: spec.Negative, Values: neg},
	}, nil
}

func category(values series.Series, v float64) ([]float64, error) {
	sub := values.Subset(values.Compare(series.Eq, v))
	if sub.Err != nil {
		return nil, sub.Err
	}
	return sub.Float(), nil
}
