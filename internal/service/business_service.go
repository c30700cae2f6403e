package service

import (
	"context"
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/crowdmap/crowd-heatmap/internal/models"
	"github.com/crowdmap/crowd-heatmap/internal/repository"
)

// BusinessService handles business logic for business profiles
type BusinessService struct {
	repo *repository.BusinessRepository
}

// NewBusinessService creates a new business profile service
func NewBusinessService(repo *repository.BusinessRepository) *BusinessService {
	return &BusinessService{repo: repo}
}

// Submit stores a business profile from an already bound form. Latitude and
// longitude must be given together.
func (s *BusinessService) Submit(ctx context.Context, in models.BusinessProfileInput) (*models.BusinessProfile, error) {
	p := &models.BusinessProfile{
		Name:           strings.TrimSpace(in.Name),
		Email:          strings.TrimSpace(in.Email),
		Phone:          strings.TrimSpace(in.Phone),
		BusinessType:   strings.TrimSpace(in.BusinessType),
		CrowdIntensity: models.IntensityLevel(in.CrowdIntensity),
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
	}

	fields := map[string]string{}
	if p.Name == "" {
		fields["name"] = "This field is required."
	}
	if p.BusinessType == "" {
		fields["business_type"] = "This field is required."
	}
	if !p.CrowdIntensity.Valid() {
		fields["crowd_intensity"] = "Select a valid choice."
	}
	if (p.Latitude == nil) != (p.Longitude == nil) {
		fields["location"] = "Latitude and longitude must be provided together."
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, eris.Wrap(err, "failed to submit business profile")
	}

	zap.L().Info("business profile submitted",
		zap.Int64("id", p.ID),
		zap.String("business_type", p.BusinessType),
		zap.String("crowd_intensity", string(p.CrowdIntensity)),
		zap.Bool("has_location", p.Latitude != nil),
	)
	return p, nil
}

// List retrieves business profiles with filtering and pagination
func (s *BusinessService) List(ctx context.Context, filter models.BusinessProfileFilter) (*models.BusinessProfilesResponse, error) {
	if filter.Intensity != "" && !models.IntensityLevel(filter.Intensity).Valid() {
		return nil, eris.Wrapf(ErrInvalidInput, "unknown intensity %q", filter.Intensity)
	}
	filter.Search = strings.TrimSpace(filter.Search)

	// Validate filter
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}

	profiles, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, eris.Wrap(err, "failed to list business profiles")
	}

	return &models.BusinessProfilesResponse{
		Data:       profiles,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.PageSize))),
	}, nil
}

// Get retrieves a single business profile by ID
func (s *BusinessService) Get(ctx context.Context, id int64) (*models.BusinessProfile, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, eris.Wrap(err, "failed to get business profile")
	}
	if p == nil {
		return nil, eris.Wrapf(ErrNotFound, "business profile %d", id)
	}
	return p, nil
}

// Delete removes a business profile by ID
func (s *BusinessService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return eris.Wrap(err, "failed to delete business profile")
	}
	if !deleted {
		return eris.Wrapf(ErrNotFound, "business profile %d", id)
	}
	return nil
}

// Summary counts business profiles per preferred crowd intensity
func (s *BusinessService) Summary(ctx context.Context) (*models.IntensitySummary, error) {
	summary, err := s.repo.CountByIntensity(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "failed to summarize business profiles")
	}
	return summary, nil
}
