// Package handlers is the HTTP surface over the gateway core. It parses and
// validates caller input, invokes the core with resolved parameters, and maps
// typed core errors onto status codes.
package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/XavierBriggs/Hermes/adapters/theoddsapi"
	"github.com/XavierBriggs/Hermes/internal/normalize"
	"github.com/XavierBriggs/Hermes/pkg/contracts"
	"github.com/XavierBriggs/Hermes/pkg/models"
	"github.com/XavierBriggs/Hermes/sports"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	gateway contracts.OddsGateway
	logger  zerolog.Logger
}

// NewHandler creates a new handler with dependencies
func NewHandler(gateway contracts.OddsGateway, logger zerolog.Logger) *Handler {
	return &Handler{
		gateway: gateway,
		logger:  logger,
	}
}

// HealthCheck returns the health status of the gateway
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "hermes",
		"timestamp": time.Now().UTC(),
	})
}

// GetSportOdds returns the odds listing for a sport.
// GET /api/v1/sports/{sport}/odds?preset=|markets=&regions=&oddsFormat=&dateFormat=&raw=
func (h *Handler) GetSportOdds(w http.ResponseWriter, r *http.Request) {
	sportKey, ok := sports.ResolveSport(chi.URLParam(r, "sport"))
	if !ok {
		h.respondError(w, http.StatusBadRequest, "unknown sport alias", nil)
		return
	}

	markets, err := marketsFromQuery(r, sportKey)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), err)
		return
	}

	result, err := h.gateway.FetchListing(r.Context(), &models.ListingOptions{
		Sport:      sportKey,
		Markets:    markets,
		Regions:    splitCSV(r.URL.Query().Get("regions")),
		OddsFormat: r.URL.Query().Get("oddsFormat"),
		DateFormat: r.URL.Query().Get("dateFormat"),
	})
	if err != nil {
		h.respondGatewayError(w, err)
		return
	}

	if rawRequested(r) {
		h.respondJSON(w, http.StatusOK, map[string]any{
			"events":    result.Payload,
			"telemetry": result.Telemetry,
		})
		return
	}

	events, err := normalize.DecodeEvents(result.Payload)
	if err != nil {
		h.respondError(w, http.StatusBadGateway, "upstream payload could not be normalized", err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"events":    events,
		"count":     len(events),
		"telemetry": result.Telemetry,
	})
}

// GetEventOdds returns the market odds for a single event.
// GET /api/v1/sports/{sport}/events/{eventID}/odds
func (h *Handler) GetEventOdds(w http.ResponseWriter, r *http.Request) {
	sportKey, ok := sports.ResolveSport(chi.URLParam(r, "sport"))
	if !ok {
		h.respondError(w, http.StatusBadRequest, "unknown sport alias", nil)
		return
	}

	eventID := chi.URLParam(r, "eventID")
	if eventID == "" {
		h.respondError(w, http.StatusBadRequest, "event id is required", nil)
		return
	}

	markets, err := marketsFromQuery(r, sportKey)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), err)
		return
	}

	result, err := h.gateway.FetchEventMarkets(r.Context(), &models.EventMarketsOptions{
		Sport:      sportKey,
		EventID:    eventID,
		Markets:    markets,
		Regions:    splitCSV(r.URL.Query().Get("regions")),
		OddsFormat: r.URL.Query().Get("oddsFormat"),
		DateFormat: r.URL.Query().Get("dateFormat"),
	})
	if err != nil {
		h.respondGatewayError(w, err)
		return
	}

	if rawRequested(r) {
		h.respondJSON(w, http.StatusOK, map[string]any{
			"event":     result.Payload,
			"telemetry": result.Telemetry,
		})
		return
	}

	event, err := normalize.DecodeEvent(result.Payload)
	if err != nil {
		h.respondError(w, http.StatusBadGateway, "upstream payload could not be normalized", err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"event":     event,
		"telemetry": result.Telemetry,
	})
}

// respondGatewayError maps typed core errors onto status codes. None of
// these are retried here.
func (h *Handler) respondGatewayError(w http.ResponseWriter, err error) {
	var upstream *theoddsapi.UpstreamError
	var unavailable *theoddsapi.UnavailableError
	var malformed *theoddsapi.MalformedResponseError

	switch {
	case errors.Is(err, theoddsapi.ErrMissingCredential):
		h.respondError(w, http.StatusInternalServerError, "gateway credential is not configured", err)
	case errors.As(err, &upstream):
		h.respondJSON(w, http.StatusBadGateway, map[string]any{
			"error":           "upstream error",
			"upstream_status": upstream.StatusCode,
			"upstream_body":   upstream.Body,
		})
	case errors.As(err, &unavailable):
		h.respondError(w, http.StatusServiceUnavailable, "upstream unavailable", err)
	case errors.As(err, &malformed):
		h.respondError(w, http.StatusBadGateway, "upstream returned malformed payload", err)
	default:
		h.respondError(w, http.StatusInternalServerError, "fetch failed", err)
	}
}

// marketsFromQuery resolves the market selector: an explicit markets list
// passes through, otherwise the preset (default fullgame) is expanded
func marketsFromQuery(r *http.Request, sportKey string) ([]string, error) {
	if raw := r.URL.Query().Get("markets"); raw != "" {
		return splitCSV(raw), nil
	}

	presetName := r.URL.Query().Get("preset")
	if presetName == "" {
		presetName = "fullgame"
	}
	return sports.ResolvePreset(presetName, sportKey)
}

func rawRequested(r *http.Request) bool {
	return strings.EqualFold(r.URL.Query().Get("raw"), "true")
}

func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
