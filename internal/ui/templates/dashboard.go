package templates

import "sales-dashboard/internal/models"

const (
	Title = "Tata Motors Sales Dashboard"

	datastarJSURL = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0-RC.6/bundles/datastar.js"
	chartJSURL    = "https://cdn.jsdelivr.net/npm/chart.js@4.4.4/dist/chart.umd.min.js"
)

// Placeholder ids shared by the full page and the SSE patches.
const (
	TrendPlaceholderID  = "trend-placeholder"
	RegionPlaceholderID = "region-placeholder"
)

// Signals returns the Datastar signal set for a view: the four filter
// values plus the chart data consumed by the page scripts.
func Signals(view models.DashboardView) map[string]any {
	signals := FilterSignals(view.Selection)
	for k, v := range ChartSignals(view) {
		signals[k] = v
	}
	return signals
}

func FilterSignals(sel models.FilterSelection) map[string]any {
	return map[string]any{
		"city":   sel.City,
		"year":   sel.Year,
		"region": sel.Region,
		"model":  sel.Model,
	}
}

func ChartSignals(view models.DashboardView) map[string]any {
	return map[string]any{
		"trend":      view.Trend.Points,
		"topModels":  view.TopModels.Models,
		"regions":    view.Regions.Slices,
		"donutHole":  view.Regions.HoleRadius,
		"donutStart": view.Regions.StartAngle,
	}
}
