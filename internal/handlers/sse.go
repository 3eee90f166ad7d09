package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/services"
	"sales-dashboard/internal/ui/templates"
)

type SSEHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewSSEHandlers(analytics *services.Analytics, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

func renderComponent(ctx context.Context, c templ.Component) (string, error) {
	var buf strings.Builder
	err := c.Render(ctx, &buf)
	return buf.String(), err
}

// readSelection starts from the query parameters and lets Datastar signals
// override them.
func readSelection(r *http.Request) (models.FilterSelection, error) {
	sel := selectionFromQuery(r)
	if err := datastar.ReadSignals(r, &sel); err != nil {
		return models.FilterSelection{}, err
	}
	return sel.Normalize(), nil
}

// HandleDashboard recomputes the dashboard for the current filter signals
// and patches the KPI tiles, product image, chart notes and chart data.
func (h *SSEHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	sel, err := readSelection(r)
	if err != nil {
		errors.WriteError(w, r, h.logger, errors.BadRequestWrap(err, "invalid filter signals"))
		return
	}

	view := h.analytics.Build(r.Context(), sel)

	sse := datastar.NewSSE(w, r)

	fragments := []templ.Component{
		templates.KPIs(view.KPIs),
		templates.ProductImage(view.Image),
		templates.Placeholder(templates.TrendPlaceholderID, view.Trend.Placeholder),
		templates.TopModelsNote(view.TopModels),
		templates.Placeholder(templates.RegionPlaceholderID, view.Regions.Placeholder),
	}
	for _, c := range fragments {
		html, err := renderComponent(r.Context(), c)
		if err != nil {
			h.logger.ErrorContext(r.Context(), "render dashboard fragment", "error", err)
			return
		}
		if err := sse.PatchElements(html); err != nil {
			h.logger.WarnContext(r.Context(), "patch elements", "error", err)
			return
		}
	}

	jsonData, err := json.Marshal(templates.ChartSignals(view))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "marshal chart signals", "error", err)
		return
	}
	if err := sse.PatchSignals(jsonData); err != nil {
		h.logger.WarnContext(r.Context(), "patch signals", "error", err)
		return
	}

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
