package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"internhub/internal/app/models"
	"internhub/internal/app/models/dto"
	"internhub/internal/app/repositories"
	"internhub/internal/pkg/apperrors"
)

// AcademicService serves the academic supervisor's read side: the list of
// supervised students and the per-student progress overview.
type AcademicService struct {
	userRepo        *repositories.UserRepository
	placementRepo   *repositories.PlacementRepository
	applicationRepo *repositories.ApplicationRepository
	logbookRepo     *repositories.LogbookRepository
	documentRepo    *repositories.DocumentRepository
	logger          zerolog.Logger
}

// NewAcademicService creates a new AcademicService
func NewAcademicService(
	userRepo *repositories.UserRepository,
	placementRepo *repositories.PlacementRepository,
	applicationRepo *repositories.ApplicationRepository,
	logbookRepo *repositories.LogbookRepository,
	documentRepo *repositories.DocumentRepository,
	logger zerolog.Logger,
) *AcademicService {
	return &AcademicService{
		userRepo:        userRepo,
		placementRepo:   placementRepo,
		applicationRepo: applicationRepo,
		logbookRepo:     logbookRepo,
		documentRepo:    documentRepo,
		logger:          logger,
	}
}

// ListStudents returns the acting supervisor's assigned students
func (s *AcademicService) ListStudents(ctx context.Context, academicUserID int64) ([]*models.Student, error) {
	academic, err := s.userRepo.GetAcademicSupervisorByUserID(ctx, academicUserID)
	if err != nil {
		return nil, err
	}
	return s.userRepo.ListStudentsBySupervisor(ctx, academic.ID)
}

// StudentOverview assembles one supervised student's full progress picture:
// active placement, its backing application, and the logbook tallies.
func (s *AcademicService) StudentOverview(ctx context.Context, academicUserID, studentID int64) (*dto.StudentOverviewResponse, error) {
	academic, err := s.userRepo.GetAcademicSupervisorByUserID(ctx, academicUserID)
	if err != nil {
		return nil, err
	}

	student, err := s.userRepo.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.AcademicSupervisorID == nil || *student.AcademicSupervisorID != academic.ID {
		return nil, apperrors.NewForbiddenError("student is assigned to another supervisor")
	}

	overview := &dto.StudentOverviewResponse{Student: student}

	placement, err := s.placementRepo.GetActiveByStudent(ctx, studentID)
	if err == nil {
		overview.Placement = placement
		application, err := s.applicationRepo.GetAcceptedByPair(ctx, studentID, placement.InternshipID)
		if err == nil {
			overview.Application = application
		} else if !errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, err
		}
	} else if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}

	logbooks, err := s.logbookRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	overview.Logbooks = logbooks
	for _, logbook := range logbooks {
		switch logbook.Status {
		case models.LogbookApproved:
			overview.ApprovedCount++
		case models.LogbookPending:
			overview.PendingCount++
		}
	}

	return overview, nil
}

// ListStudentDocuments returns a supervised student's uploaded documents
func (s *AcademicService) ListStudentDocuments(ctx context.Context, academicUserID, studentID int64) ([]*models.Document, error) {
	academic, err := s.userRepo.GetAcademicSupervisorByUserID(ctx, academicUserID)
	if err != nil {
		return nil, err
	}

	student, err := s.userRepo.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.AcademicSupervisorID == nil || *student.AcademicSupervisorID != academic.ID {
		return nil, apperrors.NewForbiddenError("student is assigned to another supervisor")
	}

	return s.documentRepo.ListByStudent(ctx, studentID)
}
