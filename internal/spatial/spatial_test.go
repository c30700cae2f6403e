package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance_OneDegreeAtEquator(t *testing.T) {
	// 2*pi*R/360
	assert.InDelta(t, 111194.93, HaversineDistance(0, 0, 0, 1), 0.01)
	assert.InDelta(t, 111194.93, HaversineDistance(0, 0, 1, 0), 0.01)
	assert.Zero(t, HaversineDistance(12.97, 77.59, 12.97, 77.59))
}

func TestHaversineDistance_Symmetric(t *testing.T) {
	a := Point{Lat: 51.5074, Lon: -0.1278}
	b := Point{Lat: 48.8566, Lon: 2.3522}
	assert.InDelta(t, DistanceBetween(a, b), DistanceBetween(b, a), 1e-6)
	assert.InDelta(t, 343_556, DistanceBetween(a, b), 1000)
}

func TestDestinationPoint_RoundTrip(t *testing.T) {
	for _, bearing := range []float64{0, 45, 90, 180, 270, 333} {
		lat, lon := DestinationPoint(12.9716, 77.5946, bearing, 2500)
		assert.InDelta(t, 2500, HaversineDistance(12.9716, 77.5946, lat, lon), 0.01, "bearing %v", bearing)
	}
}

func TestPlanarAngle(t *testing.T) {
	origin := Point{}
	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"east", Point{Lat: 0, Lon: 1}, 180},
		{"north", Point{Lat: 1, Lon: 0}, 270},
		{"south", Point{Lat: -1, Lon: 0}, 90},
		{"west wraps to zero", Point{Lat: 0, Lon: -1}, 0},
		{"same point", Point{}, 180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanarAngle(origin, tt.p)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Less(t, got, 360.0)
		})
	}
}

func TestCentroid(t *testing.T) {
	assert.Equal(t, Point{}, Centroid(nil))
	c := Centroid([]Point{{Lat: 1, Lon: 1}, {Lat: 3, Lon: 3}})
	assert.InDelta(t, 2.0, c.Lat, 1e-12)
	assert.InDelta(t, 2.0, c.Lon, 1e-12)
}

func TestPointValid(t *testing.T) {
	assert.True(t, Point{Lat: -90, Lon: 180}.Valid())
	assert.False(t, Point{Lat: 90.1, Lon: 0}.Valid())
	assert.False(t, Point{Lat: 0, Lon: -180.5}.Valid())
}

func TestGeohash(t *testing.T) {
	p := Point{Lat: 57.64911, Lon: 10.40744}
	assert.Equal(t, "u4pruydqqvj", p.Geohash(11))
	assert.Len(t, p.Geohash(0), 1)
	assert.Len(t, p.Geohash(40), 12)

	// a longer hash refines the shorter one
	assert.Equal(t, p.Geohash(5), p.Geohash(9)[:5])
}

func TestGeohashPrecisionForDistance(t *testing.T) {
	assert.Equal(t, 6, GeohashPrecisionForDistance(5000.0/3))
	assert.Equal(t, 1, GeohashPrecisionForDistance(1e7))
	assert.Equal(t, 12, GeohashPrecisionForDistance(0.001))
}
