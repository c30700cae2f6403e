package models

import "github.com/crowdmap/crowd-heatmap/internal/spatial"

// UnknownTag is used when a POI has no name or category tag
const UnknownTag = "Unknown"

// POI is a tagged place returned by the map-data source
type POI struct {
	OSMType  string         `json:"osm_type,omitempty"` // node, way, relation
	OSMID    int64          `json:"osm_id,omitempty"`
	Name     string         `json:"name"`
	Category string         `json:"type"` // amenity, shop or tourism value
	Location *spatial.Point `json:"location,omitempty"`
}

// POIsResponse represents the popular places API response
type POIsResponse struct {
	Data   []POI         `json:"data"`
	Count  int           `json:"count"`
	Center spatial.Point `json:"center"`
	Radius float64       `json:"radius_meters"`
}
