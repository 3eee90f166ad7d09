package models

import "time"

// All is the sentinel selection value that disables a filter dimension.
const All = "All"

type SaleRecord struct {
	Date      time.Time `json:"date"`
	City      string    `json:"city"`
	Region    string    `json:"region"`
	Model     string    `json:"model"`
	UnitsSold int64     `json:"units_sold"`
	Revenue   float64   `json:"revenue"`
}

// FilterSelection holds one exact-match predicate per dimension. A field set
// to All (or left empty) matches every record.
type FilterSelection struct {
	City   string `json:"city"`
	Year   string `json:"year"`
	Region string `json:"region"`
	Model  string `json:"model"`
}

// Normalize replaces empty fields with All.
func (s FilterSelection) Normalize() FilterSelection {
	return FilterSelection{
		City:   orAll(s.City),
		Year:   orAll(s.Year),
		Region: orAll(s.Region),
		Model:  orAll(s.Model),
	}
}

// IsAll reports whether no predicate is active.
func (s FilterSelection) IsAll() bool {
	n := s.Normalize()
	return n.City == All && n.Year == All && n.Region == All && n.Model == All
}

func orAll(v string) string {
	if v == "" {
		return All
	}
	return v
}

type FilterOptions struct {
	Cities  []string `json:"cities"`
	Years   []string `json:"years"`
	Regions []string `json:"regions"`
	Models  []string `json:"models"`
}

type Summary struct {
	TotalUnits   int64   `json:"total_units"`
	TotalRevenue float64 `json:"total_revenue"`
	ActiveModels int     `json:"active_models"`
	AvgPrice     float64 `json:"avg_price"`
}

type MonthlyPoint struct {
	Month string `json:"month"`
	Units int64  `json:"units"`
}

type ModelUnits struct {
	Model string `json:"model"`
	Units int64  `json:"units"`
}

type RegionShare struct {
	Region  string  `json:"region"`
	Units   int64   `json:"units"`
	Percent float64 `json:"percent"`
	Label   string  `json:"label"`
}
