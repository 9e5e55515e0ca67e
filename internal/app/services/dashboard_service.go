package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"internhub/internal/app/models/dto"
	"internhub/internal/app/repositories"
	"internhub/internal/pkg/apperrors"
)

// DashboardService aggregates the per-role landing page counters
type DashboardService struct {
	userRepo         *repositories.UserRepository
	companyRepo      *repositories.CompanyRepository
	internshipRepo   *repositories.InternshipRepository
	applicationRepo  *repositories.ApplicationRepository
	placementRepo    *repositories.PlacementRepository
	attendanceRepo   *repositories.AttendanceRepository
	logbookRepo      *repositories.LogbookRepository
	evaluationRepo   *repositories.EvaluationRepository
	notificationRepo *repositories.NotificationRepository
	logger           zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(repos *repositories.Repositories, logger zerolog.Logger) *DashboardService {
	return &DashboardService{
		userRepo:         repos.UserRepository,
		companyRepo:      repos.CompanyRepository,
		internshipRepo:   repos.InternshipRepository,
		applicationRepo:  repos.ApplicationRepository,
		placementRepo:    repos.PlacementRepository,
		attendanceRepo:   repos.AttendanceRepository,
		logbookRepo:      repos.LogbookRepository,
		evaluationRepo:   repos.EvaluationRepository,
		notificationRepo: repos.NotificationRepository,
		logger:           logger,
	}
}

// StudentDashboard summarizes the acting student's current state
func (s *DashboardService) StudentDashboard(ctx context.Context, studentUserID int64) (*dto.StudentDashboardResponse, error) {
	student, err := s.userRepo.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	resp := &dto.StudentDashboardResponse{}

	placement, err := s.placementRepo.GetActiveByStudent(ctx, student.ID)
	if err == nil {
		resp.Placement = placement
	} else if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}

	total, pending, err := s.applicationRepo.CountByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	resp.ApplicationCount = total
	resp.PendingApplications = pending

	latest, err := s.logbookRepo.GetLatestByStudent(ctx, student.ID)
	if err == nil {
		resp.LatestLogbook = latest
	} else if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}

	resp.UnreadNotifications, err = s.notificationRepo.CountUnread(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// CompanyDashboard summarizes the acting company supervisor's workload
func (s *DashboardService) CompanyDashboard(ctx context.Context, supervisorUserID int64) (*dto.CompanyDashboardResponse, error) {
	supervisor, err := s.userRepo.GetCompanySupervisorByUserID(ctx, supervisorUserID)
	if err != nil {
		return nil, err
	}

	resp := &dto.CompanyDashboardResponse{}

	resp.ActiveInterns, err = s.placementRepo.CountActiveBySupervisor(ctx, supervisor.ID)
	if err != nil {
		return nil, err
	}

	if supervisor.CompanyID != nil && supervisor.DepartmentID != nil {
		resp.PendingApplications, err = s.applicationRepo.CountPendingByDepartment(ctx, *supervisor.CompanyID, *supervisor.DepartmentID)
		if err != nil {
			return nil, err
		}
	}

	resp.PendingLogbooks, err = s.logbookRepo.CountPendingBySupervisor(ctx, supervisor.ID)
	if err != nil {
		return nil, err
	}

	resp.UnmarkedAttendanceToday, err = s.attendanceRepo.CountUnmarkedToday(ctx, supervisor.ID, time.Now())
	if err != nil {
		return nil, err
	}

	resp.PendingEvaluations, err = s.evaluationRepo.CountPendingCompanySide(ctx, supervisor.ID)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// AdminDashboard returns the global entity and status counters
func (s *DashboardService) AdminDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	resp := &dto.AdminDashboardResponse{}
	var err error

	if resp.Users, err = s.userRepo.CountUsersByRole(ctx); err != nil {
		return nil, err
	}
	if resp.Companies, err = s.companyRepo.CountCompanies(ctx); err != nil {
		return nil, err
	}
	if resp.Internships, err = s.internshipRepo.CountInternshipsByStatus(ctx); err != nil {
		return nil, err
	}
	if resp.Applications, err = s.applicationRepo.CountApplicationsByStatus(ctx); err != nil {
		return nil, err
	}
	if resp.Placements, err = s.placementRepo.CountPlacementsByStatus(ctx); err != nil {
		return nil, err
	}
	if resp.Logbooks, err = s.logbookRepo.CountLogbooksByStatus(ctx); err != nil {
		return nil, err
	}
	if resp.Evaluations, err = s.evaluationRepo.CountEvaluations(ctx); err != nil {
		return nil, err
	}

	return resp, nil
}
