package dataset

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

const header = "PatientId,AppointmentID,Gender,ScheduledDay,AppointmentDay,Age,Neighbourhood,Scholarship,Hipertension,Diabetes,Alcoholism,Handcap,SMS_received,No-show"

var csvRows = []string{
	header,
	"29872499824296,5642903,F,2016-04-29T18:38:08Z,2016-04-29T00:00:00Z,62,JARDIM DA PENHA,0,1,0,0,0,0,No",
	"558997776694438,5642503,M,2016-04-29T16:08:27Z,2016-04-29T00:00:00Z,56,JARDIM DA PENHA,0,0,0,0,0,0,No",
	"4262962299951,5642549,F,2016-04-29T16:19:04Z,2016-05-02T00:00:00Z,62,MATA DA PRAIA,0,0,0,1,0,1,Yes",
	"867951213174,5642828,F,2016-04-29T17:29:31Z,2016-05-03T00:00:00Z,8,PONTAL DE CAMBURI,0,0,1,0,2,0,No",
	"867951213174,5642828,F,2016-04-29T17:29:31Z,2016-05-03T00:00:00Z,8,PONTAL DE CAMBURI,0,0,1,0,2,0,No",
}

func writeCSV(t *testing.T, rows []string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "appointments.csv")
	if err := os.WriteFile(p, []byte(strings.Join(rows, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return p
}

func TestLoadCSVNormalizesSchema(t *testing.T) {
	ds, err := Load(writeCSV(t, csvRows), Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.Len() != 5 {
		t.Fatalf("rows: got %d", ds.Len())
	}
	want := []string{"AppointmentDay", "Hypertension", "Diabetes", "Alcoholism", "Handicap", "SMS_received", "NoShow"}
	if got := ds.Columns(); !reflect.DeepEqual(got, want) {
		t.Fatalf("columns:\n got %v\nwant %v", got, want)
	}
	if _, err := ds.Column("PatientId"); err == nil {
		t.Fatalf("PatientId should be dropped")
	}
	hyper, err := ds.Floats(ColHypertension)
	if err != nil {
		t.Fatalf("floats: %v", err)
	}
	if !reflect.DeepEqual(hyper, []float64{1, 0, 0, 0, 0}) {
		t.Fatalf("hypertension: %v", hyper)
	}
	outcomes, err := ds.Strings(ColNoShow)
	if err != nil {
		t.Fatalf("strings: %v", err)
	}
	if outcomes[2] != "Yes" {
		t.Fatalf("outcome row 3: %q", outcomes[2])
	}
	days, err := ds.Times(ColAppointmentDay)
	if err != nil {
		t.Fatalf("times: %v", err)
	}
	if days[0].Weekday() != time.Friday || days[2].Weekday() != time.Monday {
		t.Fatalf("weekdays: %v %v", days[0].Weekday(), days[2].Weekday())
	}
}

func TestLoadMissingColumn(t *testing.T) {
	rows := append([]string{strings.Replace(header, ",Handcap", ",Handicap", 1)}, csvRows[1:]...)
	_, err := Load(writeCSV(t, rows), Options{})
	var mc *MissingColumnError
	if !errors.As(err, &mc) {
		t.Fatalf("expected MissingColumnError, got %v", err)
	}
	if mc.Column != "Handcap" {
		t.Fatalf("missing column: %q", mc.Column)
	}
}

func TestLoadMissingFileAndUnsupported(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv"), Options{}); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := Load("data.parquet", Options{}); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestFloatsUnparseableBecomeNaN(t *testing.T) {
	rows := append([]string{}, csvRows...)
	rows[1] = strings.Replace(rows[1], ",0,1,0,0,0,0,No", ",0,x,0,0,0,0,No", 1)
	ds, err := Load(writeCSV(t, rows), Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	hyper, err := ds.Floats(ColHypertension)
	if err != nil {
		t.Fatalf("floats: %v", err)
	}
	if !math.IsNaN(hyper[0]) {
		t.Fatalf("expected NaN, got %v", hyper[0])
	}
}

func TestTimesRejectsBadDate(t *testing.T) {
	rows := append([]string{}, csvRows...)
	rows[3] = strings.Replace(rows[3], "2016-05-02T00:00:00Z", "someday", 1)
	ds, err := Load(writeCSV(t, rows), Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := ds.Times(ColAppointmentDay); err == nil || !strings.Contains(err.Error(), "row 3") {
		t.Fatalf("expected row 3 date error, got %v", err)
	}
}

func TestLoadXLSXMatchesCSV(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"
	for i, line := range csvRows {
		cells := strings.Split(line, ",")
		row := make([]interface{}, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "appointments.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save xlsx: %v", err)
	}

	fromXLSX, err := Load(path, Options{})
	if err != nil {
		t.Fatalf("load xlsx: %v", err)
	}
	fromCSV, err := Load(writeCSV(t, csvRows), Options{})
	if err != nil {
		t.Fatalf("load csv: %v", err)
	}
	for _, col := range fromCSV.Columns() {
		a, _ := fromCSV.Strings(col)
		b, err := fromXLSX.Strings(col)
		if err != nil {
			t.Fatalf("xlsx column %s: %v", col, err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("column %s differs:\ncsv  %v\nxlsx %v", col, a, b)
		}
	}
}

func TestDescribeCountsDuplicatesAndKinds(t *testing.T) {
	ds, err := Load(writeCSV(t, csvRows), Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	info := ds.Describe()
	if info.Rows != 5 || info.Duplicates != 1 {
		t.Fatalf("rows=%d duplicates=%d", info.Rows, info.Duplicates)
	}
	if len(info.Columns) != 14 {
		t.Fatalf("describe should cover the raw columns, got %d", len(info.Columns))
	}
	kinds := map[string]string{}
	for _, c := range info.Columns {
		kinds[c.Name] = c.Kind
	}
	if kinds["Age"] != "numeric" || kinds["AppointmentDay"] != "datetime" || kinds["No-show"] != "categorical" {
		t.Fatalf("unexpected kinds: %v", kinds)
	}

	var buf bytes.Buffer
	info.WriteTable(&buf)
	out := buf.String()
	if !strings.Contains(out, "Number of duplicated rows: 1") || !strings.Contains(out, "Hipertension") {
		t.Fatalf("table output:\n%s", out)
	}
}
