package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// CategoryCount is how often one raw value occurs in a column.
type CategoryCount struct {
	Value string
	Count int
}

const valueCol = "Value"

// CountCategories tallies the raw values of a column over all records. The
// result is sorted numerically when every value is a number, else lexically.
func CountCategories(values []string) ([]CategoryCount, error) {
	if len(values) == 0 {
		return nil, nil
	}
	trimmed := make([]string, len(values))
	for i, v := range values {
		trimmed[i] = strings.TrimSpace(v)
	}
	df := dataframe.New(series.New(trimmed, series.String, valueCol))
	agg, err := countBy(df, valueCol)
	if err != nil {
		return nil, err
	}
	keys := agg.Col(valueCol).Records()
	counts := agg.Col(countCol(valueCol)).Float()

	out := make([]CategoryCount, len(keys))
	numeric := true
	for i, k := range keys {
		if _, err := strconv.ParseFloat(k, 64); err != nil {
			numeric = false
		}
		out[i] = CategoryCount{Value: k, Count: int(counts[i])}
	}
	sort.Slice(out, func(i, j int) bool {
		if numeric {
			a, _ := strconv.ParseFloat(out[i].Value, 64)
			b, _ := strconv.ParseFloat(out[j].Value, 64)
			if a != b {
				return a < b
			}
		}
		return out[i].Value < out[j].Value
	})
	return out, nil
}

// countBy groups df by col and counts the rows of every group. df must have
// at least one row.
func countBy(df dataframe.DataFrame, col string) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, fmt.Errorf("group %s: %w", col, df.Err)
	}
	groups := df.GroupBy(col)
	if groups.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("group %s: %w", col, groups.Err)
	}
	agg := groups.Aggregation([]dataframe.AggregationType{dataframe.Aggregation_COUNT}, []string{col})
	if agg.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("count %s: %w", col, agg.Err)
	}
	return agg, nil
}

func countCol(col string) string {
	return fmt.Sprintf("%s_%s", col, dataframe.Aggregation_COUNT)
}
