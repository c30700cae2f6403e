package models

import "time"

// BusinessProfile represents a submitted business owner form
type BusinessProfile struct {
	ID             int64          `json:"id" db:"id"`
	Name           string         `json:"name" db:"name"`
	Email          string         `json:"email" db:"email"`
	Phone          string         `json:"phone" db:"phone"`
	BusinessType   string         `json:"business_type" db:"business_type"`
	CrowdIntensity IntensityLevel `json:"crowd_intensity" db:"crowd_intensity"`

	// Optional location picked on the map
	Latitude  *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" db:"longitude"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (p BusinessProfile) String() string {
	return p.Name + " - " + p.BusinessType
}

// BusinessProfileInput is the form payload for creating a business profile
type BusinessProfileInput struct {
	Name           string   `json:"name" form:"name" binding:"required,max=100"`
	Email          string   `json:"email" form:"email" binding:"required,email,max=254"`
	Phone          string   `json:"phone" form:"phone" binding:"required,max=20"`
	BusinessType   string   `json:"business_type" form:"business_type" binding:"required,max=100"`
	CrowdIntensity string   `json:"crowd_intensity" form:"crowd_intensity" binding:"required,oneof=high medium low"`
	Latitude       *float64 `json:"latitude" form:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude      *float64 `json:"longitude" form:"longitude" binding:"omitempty,min=-180,max=180"`
}

// BusinessProfilesResponse represents a paginated response of business profiles
type BusinessProfilesResponse struct {
	Data       []BusinessProfile `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// IntensitySummary counts business profiles per preferred crowd intensity
type IntensitySummary struct {
	High   int64 `json:"high"`
	Medium int64 `json:"medium"`
	Low    int64 `json:"low"`
	Total  int64 `json:"total"`
}
