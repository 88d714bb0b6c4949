package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names after normalization.
const (
	ColAppointmentDay = "AppointmentDay"
	ColHypertension   = "Hypertension"
	ColDiabetes       = "Diabetes"
	ColAlcoholism     = "Alcoholism"
	ColHandicap       = "Handicap"
	ColSMSReceived    = "SMS_received"
	ColNoShow         = "NoShow"
)

// RequiredColumns lists the raw columns the appointment export must carry.
var RequiredColumns = []string{
	"PatientId", "AppointmentID", "ScheduledDay", "AppointmentDay", "Age", "Gender",
	"Neighbourhood", "Scholarship", "Hipertension", "Diabetes", "Alcoholism",
	"Handcap", "SMS_received", "No-show",
}

// renames maps raw column names to normalized ones, applied in order.
var renames = [][2]string{
	{"Hipertension", "Hypertension"},
	{"Handcap", "Handicap"},
	{"No-show", "NoShow"},
	{"Neighbourhood", "Neighborhood"},
}

// dropped are columns that do not take part in the analysis.
var dropped = []string{"PatientId", "AppointmentID", "ScheduledDay", "Age", "Gender", "Scholarship", "Neighborhood"}

// ErrUnsupported indicates an input format with no registered loader.
var ErrUnsupported = errors.New("unsupported dataset format")

// MissingColumnError reports an expected column absent from the input.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing expected column %q", e.Column)
}

// Options controls how a dataset file is read.
type Options struct {
	// Delimiter for CSV. If 0, ',' is used ('\t' for .tsv files).
	Delimiter rune
	// Sheet selects the XLSX sheet by name; empty means the first sheet.
	Sheet string
}

// Dataset is an appointment table with normalized column names.
type Dataset struct {
	Name  string
	raw   dataframe.DataFrame
	frame dataframe.DataFrame
}

// Load reads path with the first registered loader that accepts it and
// normalizes the schema.
func Load(path string, opt Options) (*Dataset, error) {
	for _, l := range registry {
		if !l.CanLoad(path) {
			continue
		}
		df, err := l.Load(path, opt)
		if err != nil {
			return nil, err
		}
		return fromFrame(filepath.Base(path), df)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

// FromRecords builds a Dataset from a header row followed by data rows.
func FromRecords(name string, records [][]string) (*Dataset, error) {
	if len(records) == 0 {
		return nil, errors.New("no header row")
	}
	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("load records: %w", df.Err)
	}
	return fromFrame(name, df)
}

func fromFrame(name string, raw dataframe.DataFrame) (*Dataset, error) {
	have := map[string]struct{}{}
	for _, n := range raw.Names() {
		have[n] = struct{}{}
	}
	for _, c := range RequiredColumns {
		if _, ok := have[c]; !ok {
			return nil, &MissingColumnError{Column: c}
		}
	}
	df := raw
	for _, r := range renames {
		df = df.Rename(r[1], r[0])
	}
	df = df.Drop(dropped)
	if df.Err != nil {
		return nil, fmt.Errorf("normalize columns: %w", df.Err)
	}
	return &Dataset{Name: name, raw: raw, frame: df}, nil
}

// Len returns the number of records.
func (d *Dataset) Len() int { return d.frame.Nrow() }

// Columns returns the normalized column names.
func (d *Dataset) Columns() []string { return d.frame.Names() }

// Column returns the named column as a gota series.
func (d *Dataset) Column(name string) (series.Series, error) {
	for _, n := range d.frame.Names() {
		if n == name {
			s := d.frame.Col(name)
			if s.Err != nil {
				return series.Series{}, fmt.Errorf("column %s: %w", name, s.Err)
			}
			return s, nil
		}
	}
	return series.Series{}, &MissingColumnError{Column: name}
}

// Strings returns the raw cell text of a column.
func (d *Dataset) Strings(name string) ([]string, error) {
	s, err := d.Column(name)
	if err != nil {
		return nil, err
	}
	return s.Records(), nil
}

// FloatSeries returns a column as a Float series; cells that do not parse
// become NaN.
func (d *Dataset) FloatSeries(name string) (series.Series, error) {
	vals, err := d.Strings(name)
	if err != nil {
		return series.Series{}, err
	}
	return series.New(trimAll(vals), series.Float, name), nil
}

// Floats returns a column as numbers; cells that do not parse become NaN.
func (d *Dataset) Floats(name string) ([]float64, error) {
	s, err := d.FloatSeries(name)
	if err != nil {
		return nil, err
	}
	return s.Float(), nil
}

// Times parses a date column. Any unparseable cell fails the whole column.
func (d *Dataset) Times(name string) ([]time.Time, error) {
	vals, err := d.Strings(name)
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, len(vals))
	for i, v := range vals {
		t, ok := parseTimeMaybe(strings.TrimSpace(v))
		if !ok {
			return nil, fmt.Errorf("column %s row %d: unparseable date %q", name, i+1, v)
		}
		out[i] = t
	}
	return out, nil
}

func trimAll(vals []string) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

func parseTimeMaybe(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339, "2006-01-02", "2006/01/02", "2006-01-02 15:04", "2006-01-02 15:04:05",
		"2006-01-02T15:04:05", "1/2/2006 15:04", "1/2/2006 15:04:05", "1/2/2006",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
