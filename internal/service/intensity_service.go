package service

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/crowdmap/crowd-heatmap/internal/intensity"
	"github.com/crowdmap/crowd-heatmap/internal/models"
	"github.com/crowdmap/crowd-heatmap/internal/osm"
	"github.com/crowdmap/crowd-heatmap/internal/spatial"
)

// POISource returns the POIs matching filters around a point
type POISource interface {
	FetchPOIs(ctx context.Context, center spatial.Point, radiusMeters float64, filters []osm.TagFilter) ([]models.POI, error)
}

// IntensityService estimates crowd intensity around a point
type IntensityService struct {
	source POISource
	opts   intensity.Options
}

// NewIntensityService creates a new intensity service
func NewIntensityService(source POISource, opts intensity.Options) *IntensityService {
	return &IntensityService{source: source, opts: opts}
}

// Analyze fetches the POIs within the configured radius of center and
// classifies them into intensity sectors. Fetch failures are not retried.
func (s *IntensityService) Analyze(ctx context.Context, center spatial.Point) (*models.IntensityResult, error) {
	if !center.Valid() {
		return nil, eris.Wrapf(ErrInvalidInput, "center %v out of range", center)
	}

	radius := s.opts.RadiusMeters
	if radius <= 0 {
		radius = intensity.DefaultRadiusMeters
	}

	start := time.Now()
	pois, err := s.source.FetchPOIs(ctx, center, radius, osm.CrowdFilters)
	if err != nil {
		zap.L().Warn("crowd intensity fetch failed",
			zap.Float64("lat", center.Lat),
			zap.Float64("lon", center.Lon),
			zap.Error(err),
		)
		return nil, unavailable(eris.Wrap(err, "fetch POIs"))
	}

	result := intensity.Estimate(center, pois, s.opts)

	zap.L().Info("crowd intensity estimated",
		zap.Float64("lat", center.Lat),
		zap.Float64("lon", center.Lon),
		zap.Int("total_pois", result.Total),
		zap.Int("high", len(result.High)),
		zap.Int("medium", len(result.Medium)),
		zap.Int("low", len(result.Low)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &result, nil
}
