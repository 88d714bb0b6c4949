// Package cohort splits appointment records into the Show and NoShow groups.
package cohort

import (
	"fmt"

	"github.com/go-gota/gota/series"
)

// Labels are the outcome values identifying each cohort.
type Labels struct {
	Show   string
	NoShow string
}

// DefaultLabels matches the "No-show" column of the public appointment export:
// "No" means the patient showed up.
var DefaultLabels = Labels{Show: "No", NoShow: "Yes"}

// Masks are two boolean memberships over the same records. A record is in at
// most one of them; records with an unrecognized outcome are in neither.
type Masks struct {
	Show   []bool
	NoShow []bool
}

// Split derives the cohort masks from an outcome column.
func Split(outcomes []string, labels Labels) Masks {
	m := Masks{Show: make([]bool, len(outcomes)), NoShow: make([]bool, len(outcomes))}
	for i, o := range outcomes {
		m.Show[i] = o == labels.Show
		m.NoShow[i] = o == labels.NoShow
	}
	return m
}

// FromSeries derives the cohort masks from a gota series.
func FromSeries(s series.Series, labels Labels) (Masks, error) {
	show, err := s.Compare(series.Eq, labels.Show).Bool()
	if err != nil {
		return Masks{}, fmt.Errorf("compare %s: %w", labels.Show, err)
	}
	noShow, err := s.Compare(series.Eq, labels.NoShow).Bool()
	if err != nil {
		return Masks{}, fmt.Errorf("compare %s: %w", labels.NoShow, err)
	}
	return Masks{Show: show, NoShow: noShow}, nil
}

// Len returns the number of records the masks cover.
func (m Masks) Len() int { return len(m.Show) }

// Counts returns cohort sizes and the number of records in neither cohort.
func (m Masks) Counts() (show, noShow, unclassified int) {
	for i := range m.Show {
		switch {
		case m.Show[i]:
			show++
		case m.NoShow[i]:
			noShow++
		default:
			unclassified++
		}
	}
	return show, noShow, unclassified
}
