package services

import (
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"sales-dashboard/internal/models"
)

func TestSummarize_WorkedExample(t *testing.T) {
	records := []models.SaleRecord{
		{Date: day(2023, 1, 1), City: "CityA", Region: "RegionX", Model: "Tiago", UnitsSold: 10, Revenue: 1000},
		{Date: day(2023, 2, 1), City: "CityA", Region: "RegionY", Model: "Nexon", UnitsSold: 5, Revenue: 800},
	}

	view := Filter(records, models.FilterSelection{City: "CityA"})
	if len(view) != 2 {
		t.Fatalf("filtered view has %d rows, want 2", len(view))
	}

	want := models.Summary{TotalUnits: 15, TotalRevenue: 1800, ActiveModels: 2, AvgPrice: 120}
	if diff := cmp.Diff(want, Summarize(view)); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarize_ZeroUnits(t *testing.T) {
	tests := []struct {
		name string
		view []models.SaleRecord
	}{
		{"empty", nil},
		{"rows without units", []models.SaleRecord{{Model: "Tiago", Revenue: 500}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.view)
			if s.TotalUnits != 0 {
				t.Errorf("TotalUnits = %d", s.TotalUnits)
			}
			if s.AvgPrice != 0 {
				t.Errorf("AvgPrice = %v, want 0", s.AvgPrice)
			}
		})
	}
}

func TestMonthlyTrend(t *testing.T) {
	records := sampleRecords()
	got := MonthlyTrend(records)

	want := []models.MonthlyPoint{
		{Month: "2023-01", Units: 10},
		{Month: "2023-02", Units: 6},
		{Month: "2024-03", Units: 10},
		{Month: "2024-04", Units: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MonthlyTrend() mismatch (-want +got):\n%s", diff)
	}
}

func TestMonthlyTrend_EmptyView(t *testing.T) {
	if got := MonthlyTrend(nil); got != nil {
		t.Errorf("MonthlyTrend(nil) = %v, want nil", got)
	}
}

func TestMonthlyTrend_SumsToTotal(t *testing.T) {
	records := sampleRecords()
	selections := []models.FilterSelection{
		{},
		{City: "Mumbai"},
		{Year: "2024"},
		{Region: "West", Model: "Tiago"},
	}

	for _, sel := range selections {
		view := Filter(records, sel)
		var sum int64
		for _, p := range MonthlyTrend(view) {
			sum += p.Units
		}
		if total := Summarize(view).TotalUnits; sum != total {
			t.Errorf("%+v: trend sums to %d, total units %d", sel, sum, total)
		}
	}
}

func TestTopModels(t *testing.T) {
	got := TopModels(sampleRecords(), 10)
	want := []models.ModelUnits{
		{Model: "Safari", Units: 1},
		{Model: "Harrier", Units: 2},
		{Model: "Nexon", Units: 4},
		{Model: "Punch", Units: 7},
		{Model: "Tiago", Units: 13},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TopModels() mismatch (-want +got):\n%s", diff)
	}
}

func TestTopModels_LengthAndOrder(t *testing.T) {
	for _, distinct := range []int{0, 1, 9, 10, 11, 25} {
		t.Run(fmt.Sprintf("%d models", distinct), func(t *testing.T) {
			var records []models.SaleRecord
			for i := range distinct {
				records = append(records, models.SaleRecord{
					Model:     fmt.Sprintf("M%02d", i),
					UnitsSold: int64((i * 7) % 13),
				})
			}

			got := TopModels(records, 10)
			if want := min(10, distinct); len(got) != want {
				t.Fatalf("len = %d, want %d", len(got), want)
			}
			if !slices.IsSortedFunc(got, func(a, b models.ModelUnits) int {
				return int(a.Units - b.Units)
			}) {
				t.Errorf("not ascending: %+v", got)
			}
		})
	}
}

func TestTopModels_KeepsLargest(t *testing.T) {
	var records []models.SaleRecord
	for i := range 12 {
		records = append(records, models.SaleRecord{Model: fmt.Sprintf("M%02d", i), UnitsSold: int64(i)})
	}

	got := TopModels(records, 10)
	if got[0].Model != "M02" || got[len(got)-1].Model != "M11" {
		t.Errorf("expected M02..M11, got %+v", got)
	}
}

func TestRegionalShare(t *testing.T) {
	got := RegionalShare(sampleRecords())
	want := []models.RegionShare{
		{Region: "North", Units: 3, Percent: 100.0 / 9, Label: "11.1%"},
		{Region: "South", Units: 3, Percent: 100.0 / 9, Label: "11.1%"},
		{Region: "West", Units: 21, Percent: 700.0 / 9, Label: "77.8%"},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("RegionalShare() mismatch (-want +got):\n%s", diff)
	}
}

func TestRegionalShare_Empty(t *testing.T) {
	if got := RegionalShare(nil); got != nil {
		t.Errorf("RegionalShare(nil) = %v, want nil", got)
	}
}

func TestRegionalShare_ZeroUnits(t *testing.T) {
	got := RegionalShare([]models.SaleRecord{{Region: "West"}})
	if len(got) != 1 || got[0].Percent != 0 || got[0].Label != "0.0%" {
		t.Errorf("unexpected share %+v", got)
	}
}

func TestBuildOptions(t *testing.T) {
	got := BuildOptions(sampleRecords(), []string{"Tiago", "Curvv"})
	want := models.FilterOptions{
		Cities:  []string{"All", "Chennai", "Delhi", "Mumbai", "Pune"},
		Years:   []string{"All", "2023", "2024"},
		Regions: []string{"All", "North", "South", "West"},
		Models:  []string{"All", "Tiago", "Curvv"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildOptions() mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatKPIs(t *testing.T) {
	kpis := FormatKPIs(models.Summary{
		TotalUnits:   1234567,
		TotalRevenue: 123456789,
		ActiveModels: 5,
		AvgPrice:     750000,
	})

	want := []models.KPI{
		{ID: KPITotalUnits, Label: "Total Units Sold", Value: "1,234,567"},
		{ID: KPITotalRevenue, Label: "Total Revenue", Value: "₹12.35 Cr"},
		{ID: KPIAvgPrice, Label: "Avg Price per Unit", Value: "₹7.50 L"},
		{ID: KPIActiveModels, Label: "Active Models", Value: "5"},
	}
	if diff := cmp.Diff(want, kpis); diff != "" {
		t.Errorf("FormatKPIs() mismatch (-want +got):\n%s", diff)
	}
}
