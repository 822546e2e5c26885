package handlers

import (
	"net/http"

	"github.com/XavierBriggs/Hermes/internal/parlay"
	"github.com/XavierBriggs/Hermes/pkg/models"
)

// PriceParlay combines independent legs into a single price. Pure local
// computation; telemetry is the local sentinel.
// GET /api/v1/parlay?format=american&legs=-110,-110
func (h *Handler) PriceParlay(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	legs := splitCSV(r.URL.Query().Get("legs"))

	result, err := parlay.Price(format, legs)
	if err != nil {
		// Every pricing failure is the caller's fault
		h.respondError(w, http.StatusBadRequest, err.Error(), err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"parlay":    result,
		"telemetry": models.LocalTelemetry(),
	})
}
