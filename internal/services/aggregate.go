package services

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"sales-dashboard/internal/models"
)

const monthLayout = "2006-01"

// Summarize computes the KPI totals. AvgPrice is zero when no units were sold.
func Summarize(view []models.SaleRecord) models.Summary {
	var s models.Summary
	seen := make(map[string]struct{})

	for _, rec := range view {
		s.TotalUnits += rec.UnitsSold
		s.TotalRevenue += rec.Revenue
		seen[rec.Model] = struct{}{}
	}

	s.ActiveModels = len(seen)
	if s.TotalUnits != 0 {
		s.AvgPrice = s.TotalRevenue / float64(s.TotalUnits)
	}
	return s
}

// MonthlyTrend sums units per calendar month, oldest first. It returns nil
// for an empty view.
func MonthlyTrend(view []models.SaleRecord) []models.MonthlyPoint {
	if len(view) == 0 {
		return nil
	}

	groups := make(map[string]int64)
	for _, rec := range view {
		groups[rec.Date.Format(monthLayout)] += rec.UnitsSold
	}

	result := make([]models.MonthlyPoint, 0, len(groups))
	for _, month := range slices.Sorted(maps.Keys(groups)) {
		result = append(result, models.MonthlyPoint{Month: month, Units: groups[month]})
	}
	return result
}

// TopModels sums units per model and keeps the limit largest, ordered from
// smallest to largest. Ties are ordered by model name.
func TopModels(records []models.SaleRecord, limit int) []models.ModelUnits {
	groups := make(map[string]int64)
	for _, rec := range records {
		groups[rec.Model] += rec.UnitsSold
	}

	result := make([]models.ModelUnits, 0, len(groups))
	for model, units := range groups {
		result = append(result, models.ModelUnits{Model: model, Units: units})
	}
	slices.SortFunc(result, func(a, b models.ModelUnits) int {
		if c := cmp.Compare(a.Units, b.Units); c != 0 {
			return c
		}
		return cmp.Compare(a.Model, b.Model)
	})

	if limit >= 0 && len(result) > limit {
		result = result[len(result)-limit:]
	}
	return result
}

// RegionalShare sums units per region, ordered by region name, with each
// region's share of the total. It returns nil for an empty view.
func RegionalShare(view []models.SaleRecord) []models.RegionShare {
	if len(view) == 0 {
		return nil
	}

	groups := make(map[string]int64)
	var total int64
	for _, rec := range view {
		groups[rec.Region] += rec.UnitsSold
		total += rec.UnitsSold
	}

	result := make([]models.RegionShare, 0, len(groups))
	for _, region := range slices.Sorted(maps.Keys(groups)) {
		units := groups[region]
		var pct float64
		if total != 0 {
			pct = float64(units) / float64(total) * 100
		}
		result = append(result, models.RegionShare{
			Region:  region,
			Units:   units,
			Percent: pct,
			Label:   fmt.Sprintf("%.1f%%", pct),
		})
	}
	return result
}

// BuildOptions lists the selectable values per dimension, each led by All.
// Cities, years and regions come from the records; models come from catalog.
func BuildOptions(records []models.SaleRecord, catalog []string) models.FilterOptions {
	cities := make(map[string]struct{})
	years := make(map[string]struct{})
	regions := make(map[string]struct{})

	for _, rec := range records {
		cities[rec.City] = struct{}{}
		years[YearOf(rec)] = struct{}{}
		regions[rec.Region] = struct{}{}
	}

	return models.FilterOptions{
		Cities:  withAll(slices.Sorted(maps.Keys(cities))),
		Years:   withAll(slices.Sorted(maps.Keys(years))),
		Regions: withAll(slices.Sorted(maps.Keys(regions))),
		Models:  withAll(catalog),
	}
}

func withAll(values []string) []string {
	return append([]string{models.All}, values...)
}
