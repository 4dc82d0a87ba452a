package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/wildfire-explorer/internal/observability"
)

// Client implements domain.StateResolver using the Mapbox reverse geocoding API.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Mapbox geocoding client.
func NewClient(token string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.mapbox.com/geocoding/v5/mapbox.places",
		metrics: metrics,
		logger:  logger,
	}
}

// ResolveState returns the two-letter US state code for a coordinate pair, or
// "" when the point is not inside a US region.
func (c *Client) ResolveState(ctx context.Context, lat, lon float64) (string, error) {
	// Mapbox uses lon,lat order.
	coord := fmt.Sprintf("%.6f,%.6f", lon, lat)
	u := fmt.Sprintf("%s/%s.json", c.baseURL, coord)
	params := url.Values{
		"access_token": {c.token},
		"types":        {"region"},
		"country":      {"us"},
		"limit":        {"1"},
	}

	state, err := c.doRequest(ctx, u+"?"+params.Encode())
	switch {
	case err != nil:
		c.metrics.GeocodeLookups.WithLabelValues("error").Inc()
	case state == "":
		c.metrics.GeocodeLookups.WithLabelValues("empty").Inc()
	default:
		c.metrics.GeocodeLookups.WithLabelValues("success").Inc()
	}
	return state, err
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("mapbox API error: status %d: %s", resp.StatusCode, body)
	}

	var mapboxResp response
	if err := json.NewDecoder(resp.Body).Decode(&mapboxResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(mapboxResp.Features) == 0 {
		return "", nil
	}
	return stateFromShortCode(mapboxResp.Features[0].Properties.ShortCode), nil
}

// stateFromShortCode turns an ISO 3166-2 code such as "US-CA" into "CA".
func stateFromShortCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	state, ok := strings.CutPrefix(code, "US-")
	if !ok || len(state) != 2 {
		return ""
	}
	return state
}

// Mapbox API response types.

type response struct {
	Features []feature `json:"features"`
}

type feature struct {
	PlaceName  string     `json:"place_name"`
	Properties properties `json:"properties"`
}

type properties struct {
	ShortCode string `json:"short_code"` // e.g. "US-CA"
}
