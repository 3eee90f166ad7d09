package handlers

import (
	"net/http"

	"sales-dashboard/internal/models"
)

// selectionFromQuery reads city, year, region and model query parameters.
// Missing parameters mean All.
func selectionFromQuery(r *http.Request) models.FilterSelection {
	q := r.URL.Query()
	return models.FilterSelection{
		City:   q.Get("city"),
		Year:   q.Get("year"),
		Region: q.Get("region"),
		Model:  q.Get("model"),
	}.Normalize()
}
