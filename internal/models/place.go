package models

// Place is a geocoder search hit
type Place struct {
	PlaceID     int64   `json:"place_id"`
	DisplayName string  `json:"display_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Class       string  `json:"class,omitempty"`
	Type        string  `json:"type,omitempty"`
	Importance  float64 `json:"importance,omitempty"`
}

// PlaceSearchRequest is the body of the location search endpoint
type PlaceSearchRequest struct {
	Query string `json:"query" binding:"required"`
}
