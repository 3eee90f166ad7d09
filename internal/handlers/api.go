package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/services"
)

const cacheControl = "public, max-age=300"

type APIHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

// HandleDashboard returns the full render model for the query filters.
func (h *APIHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	view := h.analytics.Build(r.Context(), selectionFromQuery(r))

	headers := map[string]string{
		"Cache-Control": cacheControl,
	}

	errors.WriteSuccessWithHeaders(w, view, headers)
}

func (h *APIHandlers) HandleOptions(w http.ResponseWriter, r *http.Request) {
	headers := map[string]string{
		"Cache-Control": cacheControl,
	}

	errors.WriteSuccessWithHeaders(w, h.analytics.Options(), headers)
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"records":   h.analytics.Dataset().Len(),
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.analytics.Stats())
}
