package service

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/crowdmap/crowd-heatmap/internal/models"
	"github.com/crowdmap/crowd-heatmap/internal/osm"
	"github.com/crowdmap/crowd-heatmap/internal/spatial"
)

// Geocoder resolves free text into places
type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]models.Place, error)
}

// PlaceService handles location search and popular place lookups
type PlaceService struct {
	geocoder     Geocoder
	source       POISource
	searchLimit  int
	radiusMeters float64
}

// NewPlaceService creates a new place service
func NewPlaceService(geocoder Geocoder, source POISource, searchLimit int, radiusMeters float64) *PlaceService {
	if searchLimit < 1 {
		searchLimit = 5
	}
	return &PlaceService{
		geocoder:     geocoder,
		source:       source,
		searchLimit:  searchLimit,
		radiusMeters: radiusMeters,
	}
}

// Search looks up places matching query
func (s *PlaceService) Search(ctx context.Context, query string) ([]models.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, eris.Wrap(ErrInvalidInput, "empty search query")
	}

	places, err := s.geocoder.Search(ctx, query, s.searchLimit)
	if err != nil {
		zap.L().Warn("location search failed", zap.String("query", query), zap.Error(err))
		return nil, unavailable(eris.Wrapf(err, "search %q", query))
	}
	return places, nil
}

// Popular lists the amenities within the configured radius of center
func (s *PlaceService) Popular(ctx context.Context, center spatial.Point) (*models.POIsResponse, error) {
	if !center.Valid() {
		return nil, eris.Wrapf(ErrInvalidInput, "center %v out of range", center)
	}

	pois, err := s.source.FetchPOIs(ctx, center, s.radiusMeters, osm.PopularPlaceFilters)
	if err != nil {
		zap.L().Warn("popular places fetch failed", zap.Error(err))
		return nil, unavailable(eris.Wrap(err, "fetch popular places"))
	}

	return &models.POIsResponse{
		Data:   pois,
		Count:  len(pois),
		Center: center,
		Radius: s.radiusMeters,
	}, nil
}
