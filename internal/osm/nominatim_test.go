package osm

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatimClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "MG Road, Bengaluru", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "TestAgent/2.0", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[
			{"place_id": 101, "lat": "12.9755", "lon": "77.6069", "display_name": "MG Road, Bengaluru", "class": "highway", "type": "primary", "importance": 0.51},
			{"place_id": 102, "lat": "not-a-number", "lon": "77.0", "display_name": "Broken"}
		]`)
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.URL, WithRateLimit(0), WithUserAgent("TestAgent/2.0"))
	places, err := c.Search(context.Background(), "MG Road, Bengaluru", 5)
	require.NoError(t, err)

	require.Len(t, places, 1)
	assert.Equal(t, int64(101), places[0].PlaceID)
	assert.InDelta(t, 12.9755, places[0].Latitude, 1e-9)
	assert.InDelta(t, 77.6069, places[0].Longitude, 1e-9)
	assert.Equal(t, "highway", places[0].Class)
	assert.Equal(t, "primary", places[0].Type)
}

func TestNominatimClient_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	places, err := NewNominatimClient(srv.URL, WithRateLimit(0)).Search(context.Background(), "nowhere", 5)
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestNominatimClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewNominatimClient(srv.URL, WithRateLimit(0)).Search(context.Background(), "x", 5)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrUpstream))
	assert.Contains(t, err.Error(), "status 403")
}

func TestRateLimiterHonoursContext(t *testing.T) {
	c := NewNominatimClient("http://127.0.0.1:1", WithRateLimit(0.001))
	// consume the single burst token
	require.True(t, c.limiter.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Search(ctx, "x", 1)
	require.Error(t, err)
	assert.False(t, eris.Is(err, ErrUpstream))
}
