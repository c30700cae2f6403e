package osm

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rotisserie/eris"

	"github.com/crowdmap/crowd-heatmap/internal/models"
)

// NominatimClient searches places by free text.
type NominatimClient struct {
	base
}

// NewNominatimClient creates a Nominatim client. An empty endpoint uses the
// public nominatim.openstreetmap.org instance.
func NewNominatimClient(endpoint string, opts ...Option) *NominatimClient {
	if endpoint == "" {
		endpoint = DefaultNominatimURL
	}
	return &NominatimClient{base: newBase(endpoint, 10*time.Second, opts)}
}

type nominatimPlace struct {
	PlaceID     int64   `json:"place_id"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Class       string  `json:"class"`
	Type        string  `json:"type"`
	Importance  float64 `json:"importance"`
}

// Search returns up to limit places matching query. Hits with unparsable
// coordinates are dropped.
func (c *NominatimClient) Search(ctx context.Context, query string, limit int) ([]models.Place, error) {
	req, err := http.NewRequest(http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, eris.Wrap(err, "nominatim: build request")
	}
	q := req.URL.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(limit))
	req.URL.RawQuery = q.Encode()

	body, cancel, err := c.do(ctx, req, "nominatim")
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer body.Close()

	var results []nominatimPlace
	if err := json.NewDecoder(body).Decode(&results); err != nil {
		return nil, eris.Wrapf(ErrUpstream, "nominatim: decode response: %v", err)
	}

	places := make([]models.Place, 0, len(results))
	for _, r := range results {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lon, lonErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		places = append(places, models.Place{
			PlaceID:     r.PlaceID,
			DisplayName: r.DisplayName,
			Latitude:    lat,
			Longitude:   lon,
			Class:       r.Class,
			Type:        r.Type,
			Importance:  r.Importance,
		})
	}
	return places, nil
}
