package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/technova/careers-api/internal/core"
	"github.com/technova/careers-api/internal/domain/model"
	apperrors "github.com/technova/careers-api/internal/errors"
)

// JobListingService exposes the static job catalog.
type JobListingService struct {
	repo core.JobListingRepository
}

// NewJobListingService constructs a new JobListingService.
func NewJobListingService(repo core.JobListingRepository) *JobListingService {
	if repo == nil {
		panic("JobListingRepository is required")
	}
	return &JobListingService{repo: repo}
}

// List returns every open listing.
func (s *JobListingService) List(ctx context.Context) ([]model.JobListing, error) {
	return s.repo.List(ctx)
}

// GetByID looks up a listing by its numeric id as it appears in the URL.
func (s *JobListingService) GetByID(ctx context.Context, rawID string) (*model.JobListing, error) {
	id, err := strconv.Atoi(strings.TrimSpace(rawID))
	if err != nil || id <= 0 {
		return nil, apperrors.InvalidID("Invalid job ID")
	}
	return s.repo.GetByID(ctx, id)
}
