// Package intensity classifies the POIs around a point into polar sectors of
// high, medium and low crowd intensity.
package intensity

import (
	"fmt"
	"math"
	"sort"

	"github.com/crowdmap/crowd-heatmap/internal/models"
	"github.com/crowdmap/crowd-heatmap/internal/spatial"
)

// CenterSector is the sector label of the fallback area returned when no
// POI survives the distance filter.
const CenterSector = "center"

// Default estimator parameters
const (
	DefaultRadiusMeters    = 5000.0
	DefaultGrid            = 3
	DefaultHighThreshold   = 15
	DefaultMediumThreshold = 5
)

// Thresholds are the inclusive lower bounds of the high and medium levels
type Thresholds struct {
	High   int
	Medium int
}

// Options configures Estimate. Zero or negative fields fall back to the
// defaults; callers taking values from users must reject those first.
type Options struct {
	RadiusMeters float64
	Grid         int // Number of distance bands and of angle bands
	Thresholds   Thresholds
}

// DefaultOptions returns a 5 km radius split into a 3x3 polar grid
func DefaultOptions() Options {
	return Options{
		RadiusMeters: DefaultRadiusMeters,
		Grid:         DefaultGrid,
		Thresholds: Thresholds{
			High:   DefaultHighThreshold,
			Medium: DefaultMediumThreshold,
		},
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.RadiusMeters <= 0 {
		o.RadiusMeters = d.RadiusMeters
	}
	if o.Grid <= 0 {
		o.Grid = d.Grid
	}
	if o.Thresholds.High <= 0 {
		o.Thresholds.High = d.Thresholds.High
	}
	if o.Thresholds.Medium <= 0 {
		o.Thresholds.Medium = d.Thresholds.Medium
	}
	return o
}

// SectorKey identifies one cell of the polar grid
type SectorKey struct {
	Distance int // Distance band, 0 is innermost
	Angle    int // Angle band
}

func (k SectorKey) String() string {
	return fmt.Sprintf("%d_%d", k.Distance, k.Angle)
}

// Estimate buckets pois into polar sectors around center and classifies each
// non-empty sector by its POI count.
//
// POIs without a location or farther than the radius are ignored. When no
// sector is formed, a single high area at center is returned whose count is
// the number of POIs passed in, unfiltered.
func Estimate(center spatial.Point, pois []models.POI, opts Options) models.IntensityResult {
	opts = opts.withDefaults()

	sectors := make(map[SectorKey][]spatial.Point)
	for _, poi := range pois {
		if poi.Location == nil {
			continue
		}
		distance := spatial.DistanceBetween(center, *poi.Location)
		// written negated so NaN distances are dropped too
		if !(distance <= opts.RadiusMeters) {
			continue
		}
		key := sectorFor(center, *poi.Location, distance, opts)
		sectors[key] = append(sectors[key], *poi.Location)
	}

	result := models.IntensityResult{
		Center: center,
		High:   []models.IntensityArea{},
		Medium: []models.IntensityArea{},
		Low:    []models.IntensityArea{},
		Total:  len(pois),
	}

	if len(sectors) == 0 {
		result.High = append(result.High, models.IntensityArea{
			Latitude:  center.Lat,
			Longitude: center.Lon,
			Count:     len(pois),
			Sector:    CenterSector,
			Level:     models.IntensityHigh,
		})
		return result
	}

	keys := make([]SectorKey, 0, len(sectors))
	for k := range sectors {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Distance != keys[j].Distance {
			return keys[i].Distance < keys[j].Distance
		}
		return keys[i].Angle < keys[j].Angle
	})

	precision := spatial.GeohashPrecisionForDistance(opts.RadiusMeters / float64(opts.Grid))
	for _, k := range keys {
		members := sectors[k]
		centroid := spatial.Centroid(members)
		area := models.IntensityArea{
			Latitude:  centroid.Lat,
			Longitude: centroid.Lon,
			Count:     len(members),
			Sector:    k.String(),
			Level:     Classify(len(members), opts.Thresholds),
			Geohash:   centroid.Geohash(precision),
		}
		switch area.Level {
		case models.IntensityHigh:
			result.High = append(result.High, area)
		case models.IntensityMedium:
			result.Medium = append(result.Medium, area)
		default:
			result.Low = append(result.Low, area)
		}
	}

	return result
}

// Classify maps a sector POI count to an intensity level. Both thresholds
// are inclusive lower bounds.
func Classify(count int, t Thresholds) models.IntensityLevel {
	switch {
	case count >= t.High:
		return models.IntensityHigh
	case count >= t.Medium:
		return models.IntensityMedium
	default:
		return models.IntensityLow
	}
}

// sectorFor assigns p, already known to lie within the radius, to a grid
// cell. A point exactly on the radius is clamped into the outer band.
func sectorFor(center, p spatial.Point, distance float64, opts Options) SectorKey {
	bandWidth := opts.RadiusMeters / float64(opts.Grid)
	angleWidth := 360.0 / float64(opts.Grid)

	dist := int(math.Floor(distance / bandWidth))
	angle := int(math.Floor(spatial.PlanarAngle(center, p) / angleWidth))

	return SectorKey{
		Distance: clampBand(dist, opts.Grid),
		Angle:    clampBand(angle, opts.Grid),
	}
}

func clampBand(band, grid int) int {
	if band < 0 {
		return 0
	}
	if band >= grid {
		return grid - 1
	}
	return band
}
