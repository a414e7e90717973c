package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimitrije/gostays-api/internal/config"
)

func newTestClient(baseURL, token string) *TomTomClient {
	return NewTomTomClient(config.GeocodeConfig{MapToken: token, BaseURL: baseURL})
}

func TestTomTomClient_Geocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/search/2/geocode/")
		assert.Equal(t, "test-token", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"position":{"lat":48.8584,"lon":2.2945}}]}`))
	}))
	defer server.Close()

	pos, err := newTestClient(server.URL, "test-token").Geocode(context.Background(), "Eiffel Tower, Paris")

	require.NoError(t, err)
	assert.InDelta(t, 48.8584, pos.Latitude, 0.0001)
	assert.InDelta(t, 2.2945, pos.Longitude, 0.0001)
}

func TestTomTomClient_GeocodeNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "test-token").Geocode(context.Background(), "nowhere at all")

	assert.ErrorIs(t, err, ErrNoResults)
}

func TestTomTomClient_GeocodeNotConfigured(t *testing.T) {
	_, err := newTestClient("https://api.tomtom.com", "").Geocode(context.Background(), "Paris")

	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestTomTomClient_GeocodeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "test-token").Geocode(context.Background(), "Paris")

	assert.Error(t, err)
}
