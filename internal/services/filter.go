package services

import (
	"strconv"

	"sales-dashboard/internal/models"
)

// Filter returns the records matching every active predicate of sel, in
// input order. Matching is exact; All disables a dimension.
func Filter(records []models.SaleRecord, sel models.FilterSelection) []models.SaleRecord {
	sel = sel.Normalize()
	if sel.IsAll() {
		return records
	}

	out := make([]models.SaleRecord, 0, len(records))
	for _, rec := range records {
		if Matches(rec, sel) {
			out = append(out, rec)
		}
	}
	return out
}

// Matches reports whether rec satisfies all active predicates of sel.
func Matches(rec models.SaleRecord, sel models.FilterSelection) bool {
	sel = sel.Normalize()
	if sel.City != models.All && rec.City != sel.City {
		return false
	}
	if sel.Year != models.All && YearOf(rec) != sel.Year {
		return false
	}
	if sel.Region != models.All && rec.Region != sel.Region {
		return false
	}
	if sel.Model != models.All && rec.Model != sel.Model {
		return false
	}
	return true
}

func YearOf(rec models.SaleRecord) string {
	return strconv.Itoa(rec.Date.Year())
}
