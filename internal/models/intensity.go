package models

import "github.com/crowdmap/crowd-heatmap/internal/spatial"

// IntensityLevel is the crowd intensity class of a sector or a business preference
type IntensityLevel string

// IntensityLevel constants
const (
	IntensityHigh   IntensityLevel = "high"
	IntensityMedium IntensityLevel = "medium"
	IntensityLow    IntensityLevel = "low"
)

// Valid reports whether l is one of the known levels
func (l IntensityLevel) Valid() bool {
	switch l {
	case IntensityHigh, IntensityMedium, IntensityLow:
		return true
	}
	return false
}

// IntensityArea is one classified sector around the query center
type IntensityArea struct {
	Latitude  float64        `json:"latitude"`  // Centroid of member POIs
	Longitude float64        `json:"longitude"` // Centroid of member POIs
	Count     int            `json:"count"`
	Sector    string         `json:"sector"` // "{dist}_{angle}" or "center"
	Level     IntensityLevel `json:"level"`
	Geohash   string         `json:"geohash,omitempty"`
}

// IntensityResult is the estimator output consumed by the map view
type IntensityResult struct {
	Center spatial.Point   `json:"center"`
	High   []IntensityArea `json:"high"`
	Medium []IntensityArea `json:"medium"`
	Low    []IntensityArea `json:"low"`
	Total  int             `json:"total"` // POIs returned by the source, before filtering
}

// CenterRequest is the body of endpoints that take a query center
type CenterRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"required,min=-180,max=180"`
}

// Point returns the request center. Callers must have validated the request.
func (r CenterRequest) Point() spatial.Point {
	return spatial.Point{Lat: *r.Latitude, Lon: *r.Longitude}
}
