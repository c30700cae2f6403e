package models

// BusinessProfileFilter represents filter parameters for the admin listing
type BusinessProfileFilter struct {
	Intensity string `form:"intensity"` // high, medium, low
	Search    string `form:"search"`    // Matches name, email or business type
	Since     int64  `form:"since"`     // Unix timestamp, created_at >= since
	Until     int64  `form:"until"`     // Unix timestamp, created_at <= until
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}
