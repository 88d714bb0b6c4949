package dataset

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Info summarizes the raw input table before any column is renamed or dropped.
type Info struct {
	Name       string
	Rows       int
	Columns    []ColumnInfo
	Duplicates int
}

// ColumnInfo captures inferred kind and fill per column.
type ColumnInfo struct {
	Name    string
	Kind    string // numeric|datetime|categorical|empty
	NonNull int
	Unique  int
}

// Describe computes Info over the dataset as loaded.
func (d *Dataset) Describe() Info {
	records := d.raw.Records()
	info := Info{Name: d.Name}
	if len(records) == 0 {
		return info
	}
	header, rows := records[0], records[1:]
	info.Rows = len(rows)

	type colAcc struct {
		nonNil, numCnt, dtCnt, txtCnt int
		uniq                          map[string]struct{}
	}
	accs := make([]colAcc, len(header))
	for j := range accs {
		accs[j].uniq = map[string]struct{}{}
	}
	seen := make(map[string]struct{}, len(rows))
	for _, rec := range rows {
		key := strings.Join(rec, "\x1f")
		if _, dup := seen[key]; dup {
			info.Duplicates++
		} else {
			seen[key] = struct{}{}
		}
		for j := range header {
			if j >= len(rec) {
				continue
			}
			v := strings.TrimSpace(rec[j])
			if isMissing(v) {
				continue
			}
			a := &accs[j]
			a.nonNil++
			a.uniq[v] = struct{}{}
			if _, err := strconv.ParseFloat(v, 64); err == nil {
				a.numCnt++
			} else if _, ok := parseTimeMaybe(v); ok {
				a.dtCnt++
			} else {
				a.txtCnt++
			}
		}
	}
	for j, name := range header {
		a := accs[j]
		kind := "empty"
		switch {
		case a.numCnt > 0 && a.numCnt >= a.dtCnt && a.numCnt >= a.txtCnt:
			kind = "numeric"
		case a.dtCnt > 0 && a.dtCnt >= a.txtCnt:
			kind = "datetime"
		case a.txtCnt > 0:
			kind = "categorical"
		}
		info.Columns = append(info.Columns, ColumnInfo{Name: name, Kind: kind, NonNull: a.nonNil, Unique: len(a.uniq)})
	}
	return info
}

func isMissing(v string) bool {
	return v == "" || v == "NA" || v == "NaN"
}

// WriteTable renders the info as a console table followed by the duplicate count.
func (i Info) WriteTable(w io.Writer) {
	fmt.Fprintf(w, "%s: %d rows, %d columns\n", i.Name, i.Rows, len(i.Columns))
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Column", "Non-Null", "Unique", "Kind"})
	for idx, c := range i.Columns {
		table.Append([]string{
			strconv.Itoa(idx),
			c.Name,
			strconv.Itoa(c.NonNull),
			strconv.Itoa(c.Unique),
			c.Kind,
		})
	}
	table.Render()
	fmt.Fprintf(w, "Number of duplicated rows: %d\n", i.Duplicates)
}
