package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/crowdmap/crowd-heatmap/internal/models"
	"github.com/crowdmap/crowd-heatmap/internal/spatial"
)

// TagFilter selects OSM elements carrying Tag, restricted to ElementTypes.
type TagFilter struct {
	Tag          string
	ElementTypes []string // node, way, relation
}

// CrowdFilters are the POI kinds counted towards crowd intensity.
var CrowdFilters = []TagFilter{
	{Tag: "amenity", ElementTypes: []string{"node", "way", "relation"}},
	{Tag: "shop", ElementTypes: []string{"node", "way"}},
	{Tag: "tourism", ElementTypes: []string{"node", "way"}},
}

// PopularPlaceFilters are the POI kinds listed as popular places.
var PopularPlaceFilters = []TagFilter{
	{Tag: "amenity", ElementTypes: []string{"node", "way", "relation"}},
}

// categoryTags are checked in order to label a POI.
var categoryTags = []string{"amenity", "shop", "tourism"}

// OverpassClient fetches POIs around a point from an Overpass API instance.
type OverpassClient struct {
	base
}

// NewOverpassClient creates an Overpass client. An empty endpoint uses the
// public overpass-api.de instance.
func NewOverpassClient(endpoint string, opts ...Option) *OverpassClient {
	if endpoint == "" {
		endpoint = DefaultOverpassURL
	}
	return &OverpassClient{base: newBase(endpoint, 30*time.Second, opts)}
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string   `json:"type"`
	ID     int64    `json:"id"`
	Lat    *float64 `json:"lat"`
	Lon    *float64 `json:"lon"`
	Center *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"center,omitempty"`
	Tags map[string]string `json:"tags"`
}

// FetchPOIs returns every element matching filters within radiusMeters of
// center. Elements without coordinates are returned with a nil Location.
func (c *OverpassClient) FetchPOIs(ctx context.Context, center spatial.Point, radiusMeters float64, filters []TagFilter) ([]models.POI, error) {
	query := BuildQuery(center, radiusMeters, filters, int(c.timeout.Seconds()))

	req, err := http.NewRequest(http.MethodPost, c.endpoint, strings.NewReader(url.Values{"data": {query}}.Encode()))
	if err != nil {
		return nil, eris.Wrap(err, "overpass: build request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, cancel, err := c.do(ctx, req, "overpass")
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer body.Close()

	var data overpassResponse
	if err := json.NewDecoder(body).Decode(&data); err != nil {
		return nil, eris.Wrapf(ErrUpstream, "overpass: decode response: %v", err)
	}

	pois := make([]models.POI, 0, len(data.Elements))
	for _, el := range data.Elements {
		pois = append(pois, el.toPOI())
	}
	return pois, nil
}

func (el overpassElement) toPOI() models.POI {
	poi := models.POI{
		OSMType:  el.Type,
		OSMID:    el.ID,
		Name:     models.UnknownTag,
		Category: models.UnknownTag,
	}

	switch {
	case el.Lat != nil && el.Lon != nil:
		poi.Location = &spatial.Point{Lat: *el.Lat, Lon: *el.Lon}
	case el.Center != nil:
		poi.Location = &spatial.Point{Lat: el.Center.Lat, Lon: el.Center.Lon}
	}

	if name := el.Tags["name"]; name != "" {
		poi.Name = name
	}
	for _, tag := range categoryTags {
		if v := el.Tags[tag]; v != "" {
			poi.Category = v
			break
		}
	}
	return poi
}

// BuildQuery renders an Overpass QL union of around-filters. Ways and
// relations are returned with their center.
func BuildQuery(center spatial.Point, radiusMeters float64, filters []TagFilter, timeoutSecs int) string {
	lat := strconv.FormatFloat(center.Lat, 'f', -1, 64)
	lon := strconv.FormatFloat(center.Lon, 'f', -1, 64)
	radius := strconv.FormatFloat(radiusMeters, 'f', -1, 64)

	var sb strings.Builder
	sb.WriteString("[out:json]")
	if timeoutSecs > 0 {
		fmt.Fprintf(&sb, "[timeout:%d]", timeoutSecs)
	}
	sb.WriteString(";\n(\n")
	for _, f := range filters {
		for _, typ := range f.ElementTypes {
			fmt.Fprintf(&sb, "  %s[%q](around:%s,%s,%s);\n", typ, f.Tag, radius, lat, lon)
		}
	}
	sb.WriteString(");\nout center;\n")
	return sb.String()
}
