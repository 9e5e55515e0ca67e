package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"internhub/internal/app/models"
	"internhub/internal/app/models/dto"
	"internhub/internal/app/repositories"
	"internhub/internal/pkg/apperrors"
)

// PlacementService exposes the admin override surface for placements.
// Placements are normally created only by the accept workflow.
type PlacementService struct {
	placementRepo *repositories.PlacementRepository
	logger        zerolog.Logger
}

// NewPlacementService creates a new PlacementService
func NewPlacementService(placementRepo *repositories.PlacementRepository, logger zerolog.Logger) *PlacementService {
	return &PlacementService{
		placementRepo: placementRepo,
		logger:        logger,
	}
}

// GetPlacement returns a placement by id
func (s *PlacementService) GetPlacement(ctx context.Context, id int64) (*models.InternshipPlacement, error) {
	return s.placementRepo.GetPlacementByID(ctx, id)
}

// ListPlacements returns all placements for the admin view
func (s *PlacementService) ListPlacements(ctx context.Context, offset uint64, limit int) ([]*models.InternshipPlacement, int, error) {
	return s.placementRepo.ListPlacements(ctx, offset, limit)
}

// UpdatePlacement applies partial updates to a placement
func (s *PlacementService) UpdatePlacement(ctx context.Context, id int64, req *dto.UpdatePlacementRequest) (*models.InternshipPlacement, error) {
	placement, err := s.placementRepo.GetPlacementByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StartDate != nil {
		start, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError("startDate must be formatted as YYYY-MM-DD")
		}
		placement.StartDate = start
	}
	if req.EndDate != nil {
		end, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError("endDate must be formatted as YYYY-MM-DD")
		}
		placement.EndDate = end
	}
	if placement.EndDate.Before(placement.StartDate) {
		return nil, apperrors.NewBadRequestError("endDate must not be before startDate")
	}
	if req.Status != nil {
		placement.Status = models.PlacementStatus(*req.Status)
	}

	if err := s.placementRepo.UpdatePlacement(ctx, placement); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("placementId", id).Msg("Placement updated by admin")
	return placement, nil
}

// DeletePlacement removes a placement; attendance records cascade
func (s *PlacementService) DeletePlacement(ctx context.Context, id int64) error {
	return s.placementRepo.DeletePlacement(ctx, id)
}
