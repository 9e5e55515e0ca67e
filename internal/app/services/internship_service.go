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

const dateLayout = "2006-01-02"

// InternshipService manages internship postings and the student-facing
// browse listing.
type InternshipService struct {
	internshipRepo *repositories.InternshipRepository
	companyRepo    *repositories.CompanyRepository
	userRepo       *repositories.UserRepository
	logger         zerolog.Logger
}

// NewInternshipService creates a new InternshipService
func NewInternshipService(
	internshipRepo *repositories.InternshipRepository,
	companyRepo *repositories.CompanyRepository,
	userRepo *repositories.UserRepository,
	logger zerolog.Logger,
) *InternshipService {
	return &InternshipService{
		internshipRepo: internshipRepo,
		companyRepo:    companyRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// CreateInternship creates a posting under an existing company department
func (s *InternshipService) CreateInternship(ctx context.Context, req *dto.CreateInternshipRequest) (*models.Internship, error) {
	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	department, err := s.companyRepo.GetDepartmentByID(ctx, req.DepartmentID)
	if err != nil {
		return nil, err
	}
	if department.CompanyID != req.CompanyID {
		return nil, apperrors.NewBadRequestError("department does not belong to the company")
	}

	status := models.InternshipOpen
	if req.Status != "" {
		status = models.InternshipStatus(req.Status)
	}

	internship := &models.Internship{
		CompanyID:    req.CompanyID,
		DepartmentID: req.DepartmentID,
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		StartDate:    startDate,
		EndDate:      endDate,
		TotalSlots:   req.TotalSlots,
		Status:       status,
	}

	id, err := s.internshipRepo.CreateInternship(ctx, internship)
	if err != nil {
		return nil, err
	}
	internship.ID = id

	s.logger.Info().Int64("internshipId", id).Str("title", internship.Title).Msg("Internship created")
	return internship, nil
}

// GetInternship returns a posting with company and department attached
func (s *InternshipService) GetInternship(ctx context.Context, id int64) (*models.Internship, error) {
	return s.internshipRepo.GetInternshipByID(ctx, id)
}

// ListOpenForStudent returns Open postings with the acting student's
// hasApplied flag set on each row.
func (s *InternshipService) ListOpenForStudent(ctx context.Context, studentUserID int64, filter dto.InternshipListFilter) ([]*models.Internship, error) {
	student, err := s.userRepo.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	return s.internshipRepo.ListOpenForStudent(ctx, student.ID, filter)
}

// ListInternships returns all postings for the admin view
func (s *InternshipService) ListInternships(ctx context.Context, offset uint64, limit int) ([]*models.Internship, int, error) {
	return s.internshipRepo.ListInternships(ctx, offset, limit)
}

// UpdateInternship applies partial updates to a posting
func (s *InternshipService) UpdateInternship(ctx context.Context, id int64, req *dto.UpdateInternshipRequest) (*models.Internship, error) {
	internship, err := s.internshipRepo.GetInternshipByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		internship.Title = *req.Title
	}
	if req.Description != nil {
		internship.Description = *req.Description
	}
	if req.Requirements != nil {
		internship.Requirements = req.Requirements
	}
	if req.Location != nil {
		internship.Location = *req.Location
	}
	if req.StartDate != nil {
		start, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError("startDate must be formatted as YYYY-MM-DD")
		}
		internship.StartDate = start
	}
	if req.EndDate != nil {
		end, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError("endDate must be formatted as YYYY-MM-DD")
		}
		internship.EndDate = end
	}
	if internship.EndDate.Before(internship.StartDate) {
		return nil, apperrors.NewBadRequestError("endDate must not be before startDate")
	}
	if req.TotalSlots != nil {
		internship.TotalSlots = *req.TotalSlots
	}
	if req.Status != nil {
		internship.Status = models.InternshipStatus(*req.Status)
	}

	if err := s.internshipRepo.UpdateInternship(ctx, internship); err != nil {
		return nil, err
	}
	return internship, nil
}

// DeleteInternship removes a posting; applications cascade
func (s *InternshipService) DeleteInternship(ctx context.Context, id int64) error {
	if err := s.internshipRepo.DeleteInternship(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("internshipId", id).Msg("Internship deleted")
	return nil
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewBadRequestError("startDate must be formatted as YYYY-MM-DD")
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewBadRequestError("endDate must be formatted as YYYY-MM-DD")
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, apperrors.NewBadRequestError("endDate must not be before startDate")
	}
	return startDate, endDate, nil
}
