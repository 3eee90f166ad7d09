package services

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"sales-dashboard/internal/models"
)

const (
	crore = 1e7
	lakh  = 1e5
)

// KPI element ids, shared with the page so SSE patches can target them.
const (
	KPITotalUnits   = "kpi-total-units"
	KPITotalRevenue = "kpi-total-revenue"
	KPIAvgPrice     = "kpi-avg-price"
	KPIActiveModels = "kpi-active-models"
)

// FormatKPIs renders the four summary tiles. Units get thousands
// separators; revenue is shown in crore and average price in lakh rupees.
func FormatKPIs(s models.Summary) []models.KPI {
	p := message.NewPrinter(language.English)

	return []models.KPI{
		{ID: KPITotalUnits, Label: "Total Units Sold", Value: p.Sprintf("%d", s.TotalUnits)},
		{ID: KPITotalRevenue, Label: "Total Revenue", Value: fmt.Sprintf("₹%.2f Cr", s.TotalRevenue/crore)},
		{ID: KPIAvgPrice, Label: "Avg Price per Unit", Value: fmt.Sprintf("₹%.2f L", s.AvgPrice/lakh)},
		{ID: KPIActiveModels, Label: "Active Models", Value: fmt.Sprintf("%d", s.ActiveModels)},
	}
}
