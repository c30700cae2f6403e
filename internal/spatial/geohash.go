package spatial

import "strings"

// Base32 encoding for geohash
const base32 = "0123456789bcdefghjkmnpqrstuvwxyz"

// geohashCellSizes holds the approximate cell width in meters at the equator,
// indexed by precision-1.
var geohashCellSizes = []float64{
	5000000, 625000, 123000, 19500, 3900, 610,
	120, 19, 3.7, 0.6, 0.12, 0.019,
}

// Geohash encodes p at the given precision (clamped to 1-12).
func (p Point) Geohash(precision int) string {
	if precision < 1 {
		precision = 1
	}
	if precision > len(geohashCellSizes) {
		precision = len(geohashCellSizes)
	}

	latLo, latHi := -90.0, 90.0
	lonLo, lonHi := -180.0, 180.0

	var sb strings.Builder
	sb.Grow(precision)

	evenBit := true
	ch, bits := 0, 0
	for sb.Len() < precision {
		ch <<= 1
		if evenBit {
			mid := (lonLo + lonHi) / 2
			if p.Lon > mid {
				ch |= 1
				lonLo = mid
			} else {
				lonHi = mid
			}
		} else {
			mid := (latLo + latHi) / 2
			if p.Lat > mid {
				ch |= 1
				latLo = mid
			} else {
				latHi = mid
			}
		}
		evenBit = !evenBit

		bits++
		if bits == 5 {
			sb.WriteByte(base32[ch])
			ch, bits = 0, 0
		}
	}

	return sb.String()
}

// GeohashPrecisionForDistance returns the coarsest precision whose cells are
// no wider than distanceMeters.
func GeohashPrecisionForDistance(distanceMeters float64) int {
	for i, size := range geohashCellSizes {
		if size <= distanceMeters {
			return i + 1
		}
	}
	return len(geohashCellSizes)
}
