// Package geocode resolves free-form addresses to coordinates via the
// TomTom search API.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dimitrije/gostays-api/internal/config"
)

var (
	ErrNotConfigured = errors.New("geocoding service is not configured")
	ErrNoResults     = errors.New("location not found")
)

type Position struct {
	Latitude  float64
	Longitude float64
}

type Geocoder interface {
	Geocode(ctx context.Context, query string) (*Position, error)
}

type TomTomClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewTomTomClient(cfg config.GeocodeConfig) *TomTomClient {
	return &TomTomClient{
		apiKey:  cfg.MapToken,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *TomTomClient) Geocode(ctx context.Context, query string) (*Position, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/search/2/geocode/%s.json?key=%s&limit=1",
		c.baseURL, url.PathEscape(query), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode api returned status %d", resp.StatusCode)
	}

	var payload struct {
		Results []struct {
			Position struct {
				Lat float64 `json:"lat"`
				Lon float64 `json:"lon"`
			} `json:"position"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	if len(payload.Results) == 0 {
		return nil, ErrNoResults
	}

	return &Position{
		Latitude:  payload.Results[0].Position.Lat,
		Longitude: payload.Results[0].Position.Lon,
	}, nil
}
