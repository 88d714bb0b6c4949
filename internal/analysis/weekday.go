package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// WeekdayNames indexes day names Monday=0 .. Sunday=6.
var WeekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayShare is the share of a cohort's appointments falling on one weekday.
type DayShare struct {
	Day     int // 0 = Monday
	Name    string
	Count   int
	Percent float64
}

// WeekdayIndex maps a date to 0 = Monday .. 6 = Sunday.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

const weekdayCol = "Weekday"

// WeekdayShares computes the normalized weekday frequency, in percent, of the
// records selected by mask. Only weekdays that occur are returned, ordered by
// weekday index.
func WeekdayShares(days []time.Time, mask []bool) ([]DayShare, error) {
	if len(days) != len(mask) {
		return nil, fmt.Errorf("appointment days: %w (%d values, %d masks)", ErrLengthMismatch, len(days), len(mask))
	}
	if len(days) == 0 {
		return nil, nil
	}
	idx := make([]int, len(days))
	for i, d := range days {
		idx[i] = WeekdayIndex(d)
	}
	df := dataframe.New(series.New(idx, series.Int, weekdayCol)).Subset(mask)
	if df.Err != nil {
		return nil, fmt.Errorf("appointment days: %w", df.Err)
	}
	total := df.Nrow()
	if total == 0 {
		return nil, nil
	}
	agg, err := countBy(df, weekdayCol)
	if err != nil {
		return nil, err
	}
	keys, err := agg.Col(weekdayCol).Int()
	if err != nil {
		return nil, fmt.Errorf("weekday index: %w", err)
	}
	counts := agg.Col(countCol(weekdayCol)).Float()

	out := make([]DayShare, len(keys))
	for i, day := range keys {
		n := int(counts[i])
		out[i] = DayShare{
			Day:     day,
			Name:    WeekdayNames[day],
			Count:   n,
			Percent: float64(n) / float64(total) * 100,
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}
