package spatial

import (
	"gonum.org/v1/gonum/stat"
)

// Point represents a 2D point with latitude and longitude
type Point struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Valid reports whether the point lies inside the WGS-84 coordinate ranges.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Centroid calculates the arithmetic mean of a set of points.
// It is a plain average of degrees, fine for cells a few kilometres wide.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	lats := make([]float64, len(points))
	lons := make([]float64, len(points))
	for i, p := range points {
		lats[i] = p.Lat
		lons[i] = p.Lon
	}

	return Point{
		Lat: stat.Mean(lats, nil),
		Lon: stat.Mean(lons, nil),
	}
}
