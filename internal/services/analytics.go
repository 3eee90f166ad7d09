package services

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"sales-dashboard/internal/assets"
	"sales-dashboard/internal/config"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
)

const (
	NoTrendData  = "No data for selected filters."
	NoRegionData = "No data for pie chart."

	donutHoleRadius = 0.70
	donutStartAngle = 140
)

// Analytics turns a FilterSelection into a DashboardView over a held,
// read-only Dataset. Every call recomputes from the raw records.
type Analytics struct {
	dataset *Dataset
	catalog *assets.Catalog
	cfg     config.DashboardConfig
	options models.FilterOptions
	logger  *slog.Logger
}

func NewAnalytics(dataset *Dataset, catalog *assets.Catalog, cfg config.DashboardConfig, logger *slog.Logger) *Analytics {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analytics{
		dataset: dataset,
		catalog: catalog,
		cfg:     cfg,
		options: BuildOptions(dataset.Records(), catalog.ModelNames()),
		logger:  logger,
	}
}

func (a *Analytics) Dataset() *Dataset { return a.dataset }

// Options returns the values offered by the four sidebar controls.
func (a *Analytics) Options() models.FilterOptions { return a.options }

// Build runs filter -> aggregate for one request.
func (a *Analytics) Build(ctx context.Context, sel models.FilterSelection) models.DashboardView {
	sel = sel.Normalize()

	ctx, span := observability.StartSpan(ctx, "dashboard.build")
	defer span.End()
	span.SetAttributes(
		attribute.String("filter.city", sel.City),
		attribute.String("filter.year", sel.Year),
		attribute.String("filter.region", sel.Region),
		attribute.String("filter.model", sel.Model),
	)

	all := a.dataset.Records()
	view := Filter(all, sel)
	span.SetAttributes(attribute.Int("dashboard.records", len(view)))

	summary := Summarize(view)

	image, err := a.catalog.ProductImage(sel.Model)
	if err != nil {
		a.logger.WarnContext(ctx, "product image unavailable",
			"model", sel.Model,
			"error", err,
		)
	}

	logoSrc, err := a.catalog.URL(assets.LogoFile)
	if err != nil {
		a.logger.WarnContext(ctx, "logo unavailable", "error", err)
	}

	return models.DashboardView{
		Selection: sel,
		Options:   a.options,
		Summary:   summary,
		KPIs:      FormatKPIs(summary),
		Image:     image,
		LogoSrc:   logoSrc,
		Trend:     a.trend(view),
		TopModels: a.topModels(all, view),
		Regions:   a.regions(view),
		Records:   len(view),
	}
}

func (a *Analytics) trend(view []models.SaleRecord) models.TrendChart {
	points := MonthlyTrend(view)
	if points == nil {
		return models.TrendChart{Points: []models.MonthlyPoint{}, Placeholder: NoTrendData}
	}
	return models.TrendChart{Points: points}
}

// topModels ranks the full table unless the filtered scope is configured.
// The chart note always states which records were ranked.
func (a *Analytics) topModels(all, view []models.SaleRecord) models.TopModelsChart {
	if a.cfg.TopModelsScope == config.TopModelsScopeFiltered {
		return models.TopModelsChart{
			Models: TopModels(view, a.cfg.TopModelsLimit),
			Scope:  config.TopModelsScopeFiltered,
			Note:   "Filtered records",
		}
	}
	return models.TopModelsChart{
		Models: TopModels(all, a.cfg.TopModelsLimit),
		Scope:  config.TopModelsScopeFull,
		Note:   "All records, sidebar filters not applied",
	}
}

func (a *Analytics) regions(view []models.SaleRecord) models.DonutChart {
	chart := models.DonutChart{
		Slices:     RegionalShare(view),
		HoleRadius: donutHoleRadius,
		StartAngle: donutStartAngle,
	}
	if chart.Slices == nil {
		chart.Slices = []models.RegionShare{}
		chart.Placeholder = NoRegionData
	}
	return chart
}

// Stats reports dataset metadata for monitoring.
func (a *Analytics) Stats() map[string]any {
	return map[string]any{
		"record_count": a.dataset.Len(),
		"source":       a.dataset.Source(),
		"loaded_at":    a.dataset.LoadedAt(),
		"cities":       len(a.options.Cities) - 1,
		"years":        len(a.options.Years) - 1,
		"regions":      len(a.options.Regions) - 1,
		"models":       len(a.options.Models) - 1,
	}
}
