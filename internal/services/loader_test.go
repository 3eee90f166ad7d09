package services

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
)

const salesHeader = "Date,City,Region,Model,Units Sold,Revenue\n"

func createTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDataset_ValidData(t *testing.T) {
	path := createTempCSV(t, salesHeader+
		"2023-01-15,Mumbai,West,Tiago,10,1000\n"+
		"2023-02-03,Pune,West,Nexon,5,800.5\n")

	ds, err := LoadDataset(context.Background(), path, quietLogger())
	if err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}

	want := []models.SaleRecord{
		{Date: time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), City: "Mumbai", Region: "West", Model: "Tiago", UnitsSold: 10, Revenue: 1000},
		{Date: time.Date(2023, 2, 3, 0, 0, 0, 0, time.UTC), City: "Pune", Region: "West", Model: "Nexon", UnitsSold: 5, Revenue: 800.5},
	}
	if diff := cmp.Diff(want, ds.Records()); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
	if ds.Source() != path {
		t.Errorf("Source() = %q, want %q", ds.Source(), path)
	}
	if ds.LoadedAt().IsZero() {
		t.Error("LoadedAt() should be set")
	}
}

func TestLoadDataset_ColumnOrderAndExtras(t *testing.T) {
	path := createTempCSV(t,
		"Revenue, units sold ,Model,Fuel,Region,City,DATE\n"+
			"1500,3,Punch,Petrol,North,Delhi,2024/03/09\n")

	ds, err := LoadDataset(context.Background(), path, quietLogger())
	if err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}
	if ds.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", ds.Len())
	}

	got := ds.Records()[0]
	if got.City != "Delhi" || got.Region != "North" || got.Model != "Punch" || got.UnitsSold != 3 || got.Revenue != 1500 {
		t.Errorf("unexpected record %+v", got)
	}
	if got.Date.Year() != 2024 || got.Date.Month() != time.March || got.Date.Day() != 9 {
		t.Errorf("date = %v", got.Date)
	}
}

func TestLoadDataset_PreservesOrderAcrossBatches(t *testing.T) {
	var b strings.Builder
	b.WriteString(salesHeader)
	n := batchSize*2 + 7
	for i := range n {
		b.WriteString("2023-05-01,C,R,M,")
		b.WriteString(strconv.Itoa(i))
		b.WriteString(",1\n")
	}

	ds, err := LoadDataset(context.Background(), createTempCSV(t, b.String()), quietLogger())
	if err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}
	if ds.Len() != n {
		t.Fatalf("Len() = %d, want %d", ds.Len(), n)
	}
	for i, rec := range ds.Records() {
		if rec.UnitsSold != int64(i) {
			t.Fatalf("record %d has units %d", i, rec.UnitsSold)
		}
	}
}

func TestLoadDataset_IntegralFloatUnits(t *testing.T) {
	path := createTempCSV(t, salesHeader+"2023-01-15,A,X,Tiago,12.0,1000\n")

	ds, err := LoadDataset(context.Background(), path, quietLogger())
	if err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}
	if ds.Records()[0].UnitsSold != 12 {
		t.Errorf("UnitsSold = %d, want 12", ds.Records()[0].UnitsSold)
	}
}

func TestLoadDataset_MissingNumericCells(t *testing.T) {
	path := createTempCSV(t, salesHeader+
		"2023-01-15,Mumbai,West,Tiago,10,1000\n"+
		"2023-02-03,Pune,West,Nexon,,800\n"+
		"2023-02-04,Pune,West,Nexon,3,NA\n"+
		"2023-02-05,Delhi,North,Punch,N/A,\n")

	ds, err := LoadDataset(context.Background(), path, quietLogger())
	if err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}
	if ds.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", ds.Len())
	}

	got := ds.Records()[1]
	if got.City != "Pune" || got.Model != "Nexon" || got.UnitsSold != 0 || got.Revenue != 800 {
		t.Errorf("empty units cell: unexpected record %+v", got)
	}

	summary := Summarize(ds.Records())
	if summary.TotalUnits != 13 {
		t.Errorf("TotalUnits = %d, want 13", summary.TotalUnits)
	}
	if summary.TotalRevenue != 1800 {
		t.Errorf("TotalRevenue = %v, want 1800", summary.TotalRevenue)
	}
}

func TestLoadDataset_DateTimeLayouts(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2023-01-15T10:30:00", time.Date(2023, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2023-01-15T10:30:00.250", time.Date(2023, 1, 15, 10, 30, 0, 250_000_000, time.UTC)},
		{"2023-01-15 10:30", time.Date(2023, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2023-01-15 10:30:45", time.Date(2023, 1, 15, 10, 30, 45, 0, time.UTC)},
		{"2023-01-15T10:30:00Z", time.Date(2023, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"01/15/2023", time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			path := createTempCSV(t, salesHeader+tt.raw+",Mumbai,West,Tiago,1,100\n")
			ds, err := LoadDataset(context.Background(), path, quietLogger())
			if err != nil {
				t.Fatalf("LoadDataset() error = %v", err)
			}
			if got := ds.Records()[0].Date; !got.Equal(tt.want) {
				t.Errorf("Date = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadDataset_UsesGivenLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	path := createTempCSV(t, salesHeader+"2023-01-15,Mumbai,West,Tiago,10,1000\n")
	if _, err := LoadDataset(context.Background(), path, logger); err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "csv processing complete") || !strings.Contains(out, "records=1") {
		t.Errorf("load should be logged on the given logger, got %q", out)
	}
}

func TestLoadDataset_HeaderOnly(t *testing.T) {
	ds, err := LoadDataset(context.Background(), createTempCSV(t, salesHeader), quietLogger())
	if err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}
	if ds.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ds.Len())
	}
}

func TestLoadDataset_Errors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantMsg string
	}{
		{"empty file", "", "empty file"},
		{"missing column", "Date,City,Region,Model,Units Sold\n2023-01-01,A,X,Tiago,1\n", "Revenue"},
		{"invalid date", salesHeader + "not-a-date,A,X,Tiago,1,100\n", "invalid date"},
		{"invalid units", salesHeader + "2023-01-01,A,X,Tiago,many,100\n", "invalid units sold"},
		{"fractional units", salesHeader + "2023-01-01,A,X,Tiago,1.5,100\n", "invalid units sold"},
		{"invalid revenue", salesHeader + "2023-01-01,A,X,Tiago,1,lots\n", "invalid revenue"},
		{"short row", salesHeader + "2023-01-01,A,X\n", "missing"},
		{"bad quoting", salesHeader + "2023-01-01,\"A,X,Tiago,1,100\n", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDataset(context.Background(), createTempCSV(t, tt.csv), quietLogger())
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.HasCode(err, errors.CodeLoad) {
				t.Errorf("error should be a load error, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadDataset_ErrorNamesLine(t *testing.T) {
	path := createTempCSV(t, salesHeader+
		"2023-01-01,A,X,Tiago,1,100\n"+
		"2023-01-02,A,X,Tiago,oops,100\n")

	_, err := LoadDataset(context.Background(), path, quietLogger())
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error should name line 3, got %v", err)
	}
}

func TestLoadDataset_MissingFile(t *testing.T) {
	_, err := LoadDataset(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), quietLogger())
	if !errors.HasCode(err, errors.CodeLoad) {
		t.Errorf("expected load error, got %v", err)
	}
}

func TestLoadDataset_Cancelled(t *testing.T) {
	path := createTempCSV(t, salesHeader+"2023-01-01,A,X,Tiago,1,100\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := LoadDataset(ctx, path, quietLogger()); err == nil {
		t.Error("expected cancellation error")
	}
}

func TestNewDataset_CopiesInput(t *testing.T) {
	in := []models.SaleRecord{{City: "A"}}
	ds := NewDataset(in)
	in[0].City = "B"

	if ds.Records()[0].City != "A" {
		t.Error("NewDataset should not alias the caller's slice")
	}
	if ds.Source() != "memory" {
		t.Errorf("Source() = %q", ds.Source())
	}
}
