// Package theoddsapi implements the OddsGateway contract against The Odds
// API v4 endpoint family. Successful payloads are cached whole under their
// logical request identity; the credential is attached at send time and never
// becomes part of a cache key or a log line.
package theoddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/XavierBriggs/Hermes/pkg/contracts"
	"github.com/XavierBriggs/Hermes/pkg/models"
	"github.com/rs/zerolog"
)

const (
	defaultBaseURL = "https://api.the-odds-api.com/v4"
	userAgent      = "Hermes/1.0 (Fortuna Odds Gateway)"
	defaultTimeout = 10 * time.Second

	// Upstream error bodies are surfaced to callers bounded to this size
	maxErrorBody = 2048

	defaultRegion     = "us"
	defaultOddsFormat = "american"
	defaultDateFormat = "iso"
)

// Client is a read-only gateway client for The Odds API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      contracts.Cache
	logger     zerolog.Logger
}

// Config holds construction parameters for the client. BaseURL and Timeout
// fall back to provider defaults when zero.
type Config struct {
	BaseURL string
	APIKey  string
	Cache   contracts.Cache
	Logger  zerolog.Logger
	Timeout time.Duration
}

// Ensure Client implements OddsGateway
var _ contracts.OddsGateway = (*Client)(nil)

// NewClient creates a new The Odds API gateway client
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache:  cfg.Cache,
		logger: cfg.Logger,
	}
}

// FetchListing retrieves the sport-scoped odds listing
func (c *Client) FetchListing(ctx context.Context, opts *models.ListingOptions) (*models.FetchResult, error) {
	endpointPath := fmt.Sprintf("/sports/%s/odds", url.PathEscape(opts.Sport))
	params := queryParams(opts.Markets, opts.Regions, opts.OddsFormat, opts.DateFormat)
	return c.fetch(ctx, endpointPath, params)
}

// FetchEventMarkets retrieves odds scoped to a single event
func (c *Client) FetchEventMarkets(ctx context.Context, opts *models.EventMarketsOptions) (*models.FetchResult, error) {
	endpointPath := fmt.Sprintf("/sports/%s/events/%s/odds",
		url.PathEscape(opts.Sport), url.PathEscape(opts.EventID))
	params := queryParams(opts.Markets, opts.Regions, opts.OddsFormat, opts.DateFormat)
	return c.fetch(ctx, endpointPath, params)
}

// fetch runs the translate/cache/call pipeline for one resolved request.
// Failures are never retried here; retry policy belongs to the caller.
func (c *Client) fetch(ctx context.Context, endpointPath string, params url.Values) (*models.FetchResult, error) {
	if c.apiKey == "" {
		return nil, ErrMissingCredential
	}

	key := cacheKey(endpointPath, params)

	if cached, ok, err := c.cache.Get(ctx, key); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache get failed, falling through to upstream")
	} else if ok {
		return &models.FetchResult{
			Payload:   cached,
			Telemetry: models.LocalTelemetry(),
		}, nil
	}

	// The provider takes the credential as a query parameter. It is added
	// to a copy after key derivation so it cannot leak into the cache key.
	query := url.Values{}
	for k, vs := range params {
		query[k] = vs
	}
	query.Set("apiKey", c.apiKey)
	fullURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpointPath, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}
	defer resp.Body.Close()

	telemetry := telemetryFromHeaders(resp.Header)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       truncate(string(body), maxErrorBody),
		}
	}

	if !json.Valid(body) {
		return nil, &MalformedResponseError{Detail: "2xx response body is not valid JSON"}
	}

	if err := c.cache.Set(ctx, key, body); err != nil {
		// Log but don't fail; the next request simply refetches
		c.logger.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}

	c.logger.Debug().
		Str("endpoint", endpointPath).
		Int("status", resp.StatusCode).
		Int("requests_used", telemetry.RequestsUsed).
		Int("requests_remaining", telemetry.RequestsRemaining).
		Msg("upstream fetch")

	return &models.FetchResult{
		Payload:   body,
		Telemetry: telemetry,
	}, nil
}

// cacheKey derives the logical identity of a request: endpoint path plus the
// canonical encoding of its query parameters. url.Values.Encode sorts keys,
// so two logically identical requests share a key regardless of parameter
// insertion order. The credential is never part of the input.
func cacheKey(endpointPath string, params url.Values) string {
	return endpointPath + "?" + params.Encode()
}

// queryParams builds the resolved query parameters, applying provider
// defaults for anything the caller left blank
func queryParams(markets, regions []string, oddsFormat, dateFormat string) url.Values {
	if len(regions) == 0 {
		regions = []string{defaultRegion}
	}
	if oddsFormat == "" {
		oddsFormat = defaultOddsFormat
	}
	if dateFormat == "" {
		dateFormat = defaultDateFormat
	}

	params := url.Values{}
	params.Set("regions", strings.Join(regions, ","))
	if len(markets) > 0 {
		params.Set("markets", strings.Join(markets, ","))
	}
	params.Set("oddsFormat", oddsFormat)
	params.Set("dateFormat", dateFormat)
	return params
}

// telemetryFromHeaders extracts rate-limit usage counters from response
// headers when present
func telemetryFromHeaders(headers http.Header) models.Telemetry {
	t := models.Telemetry{Source: models.TelemetrySourceUpstream}

	if used := headers.Get("x-requests-used"); used != "" {
		if val, err := strconv.Atoi(used); err == nil {
			t.RequestsUsed = val
		}
	}
	if remaining := headers.Get("x-requests-remaining"); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			t.RequestsRemaining = val
		}
	}
	if last := headers.Get("x-requests-last"); last != "" {
		if val, err := strconv.Atoi(last); err == nil {
			t.RequestsLast = val
		}
	}

	return t
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
