package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"internhub/internal/app/models"
	"internhub/internal/app/models/dto"
	"internhub/internal/app/repositories"
	"internhub/internal/db"
	"internhub/internal/pkg/apperrors"
)

// EvaluationService manages the dual-sided performance evaluation. The
// company side opens in the final week of the placement; the academic side
// has no window. Each side is write-once unless an admin resets it.
type EvaluationService struct {
	database         *db.PostgresDB
	evaluationRepo   *repositories.EvaluationRepository
	applicationRepo  *repositories.ApplicationRepository
	placementRepo    *repositories.PlacementRepository
	userRepo         *repositories.UserRepository
	notificationRepo *repositories.NotificationRepository
	logger           zerolog.Logger
}

// NewEvaluationService creates a new EvaluationService
func NewEvaluationService(
	database *db.PostgresDB,
	evaluationRepo *repositories.EvaluationRepository,
	applicationRepo *repositories.ApplicationRepository,
	placementRepo *repositories.PlacementRepository,
	userRepo *repositories.UserRepository,
	notificationRepo *repositories.NotificationRepository,
	logger zerolog.Logger,
) *EvaluationService {
	return &EvaluationService{
		database:         database,
		evaluationRepo:   evaluationRepo,
		applicationRepo:  applicationRepo,
		placementRepo:    placementRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// SubmitCompanySide records the company supervisor's rubric for a supervised
// placement. Rejected when the window has not opened, when the student has no
// academic supervisor assigned, or when the side is already submitted.
func (s *EvaluationService) SubmitCompanySide(ctx context.Context, supervisorUserID, placementID int64, req *dto.SubmitEvaluationRequest) (*models.PerformanceEvaluation, error) {
	supervisor, err := s.userRepo.GetCompanySupervisorByUserID(ctx, supervisorUserID)
	if err != nil {
		return nil, err
	}

	placement, err := s.placementRepo.GetPlacementByID(ctx, placementID)
	if err != nil {
		return nil, err
	}
	if placement.CompanySupervisorID != supervisor.ID {
		return nil, apperrors.NewForbiddenError("placement belongs to another supervisor")
	}

	if !models.CanEvaluateCompany(placement, time.Now()) {
		return nil, apperrors.ErrEvaluationWindowShut
	}

	evaluation, err := s.resolveEvaluation(ctx, placement)
	if err != nil {
		return nil, err
	}

	rubric := req.Rubric()
	now := time.Now()
	submitted, err := s.evaluationRepo.SubmitCompanySide(ctx, evaluation.ID, rubric.Average(), rubric, req.Comment, now)
	if err != nil {
		return nil, err
	}
	if !submitted {
		return nil, apperrors.ErrAlreadySubmitted
	}

	s.logger.Info().
		Int64("evaluationId", evaluation.ID).
		Int64("placementId", placementID).
		Msg("Company evaluation side submitted")

	return s.evaluationRepo.GetEvaluationByID(ctx, evaluation.ID)
}

// SubmitAcademicSide records the academic supervisor's rubric for one of
// their students. The academic side has no submission window.
func (s *EvaluationService) SubmitAcademicSide(ctx context.Context, academicUserID, studentID int64, req *dto.SubmitEvaluationRequest) (*models.PerformanceEvaluation, error) {
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

	placement, err := s.placementRepo.GetActiveByStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewBadRequestError("student has no active placement to evaluate")
		}
		return nil, err
	}

	evaluation, err := s.resolveEvaluation(ctx, placement)
	if err != nil {
		return nil, err
	}

	rubric := req.Rubric()
	now := time.Now()
	submitted, err := s.evaluationRepo.SubmitAcademicSide(ctx, evaluation.ID, rubric.Average(), rubric, req.Comment, now)
	if err != nil {
		return nil, err
	}
	if !submitted {
		return nil, apperrors.ErrAlreadySubmitted
	}

	return s.evaluationRepo.GetEvaluationByID(ctx, evaluation.ID)
}

// GetEvaluation returns an evaluation by id
func (s *EvaluationService) GetEvaluation(ctx context.Context, id int64) (*models.PerformanceEvaluation, error) {
	return s.evaluationRepo.GetEvaluationByID(ctx, id)
}

// ListForSupervisor returns the acting company supervisor's evaluations
func (s *EvaluationService) ListForSupervisor(ctx context.Context, supervisorUserID int64) ([]*models.PerformanceEvaluation, error) {
	supervisor, err := s.userRepo.GetCompanySupervisorByUserID(ctx, supervisorUserID)
	if err != nil {
		return nil, err
	}
	return s.evaluationRepo.ListBySupervisor(ctx, supervisor.ID)
}

// ListEvaluations returns all evaluations for the admin view
func (s *EvaluationService) ListEvaluations(ctx context.Context, offset uint64, limit int) ([]*models.PerformanceEvaluation, int, error) {
	return s.evaluationRepo.ListEvaluations(ctx, offset, limit)
}

// ResetSide clears one side of an evaluation and notifies the affected
// supervisor so they can resubmit (admin override).
func (s *EvaluationService) ResetSide(ctx context.Context, id int64, req *dto.ResetEvaluationRequest) error {
	evaluation, err := s.evaluationRepo.GetEvaluationByID(ctx, id)
	if err != nil {
		return err
	}

	var side models.EvaluationSide
	var affectedUserID int64
	switch req.Side {
	case "company":
		side = models.SideCompany
		supervisor, err := s.userRepo.GetCompanySupervisorByID(ctx, evaluation.CompanySupervisorID)
		if err != nil {
			return err
		}
		affectedUserID = supervisor.UserID
	case "academic":
		side = models.SideAcademic
		supervisor, err := s.userRepo.GetAcademicSupervisorByID(ctx, evaluation.AcademicSupervisorID)
		if err != nil {
			return err
		}
		affectedUserID = supervisor.UserID
	default:
		return apperrors.NewBadRequestError("side must be company or academic")
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.evaluationRepo.ResetSideTx(ctx, tx, id, side); err != nil {
			return err
		}
		return s.notificationRepo.CreateTx(ctx, tx, affectedUserID,
			"An evaluation you submitted was reset by an administrator. Please submit it again.")
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("evaluationId", id).Str("side", req.Side).Msg("Evaluation side reset")
	return nil
}

// AdminDelete removes an evaluation
func (s *EvaluationService) AdminDelete(ctx context.Context, id int64) error {
	return s.evaluationRepo.DeleteEvaluation(ctx, id)
}

// resolveEvaluation finds or creates the evaluation row for a placement's
// full context tuple. The student must carry an academic supervisor so the
// academic side has an owner from the start.
func (s *EvaluationService) resolveEvaluation(ctx context.Context, placement *models.InternshipPlacement) (*models.PerformanceEvaluation, error) {
	student, err := s.userRepo.GetStudentByID(ctx, placement.StudentID)
	if err != nil {
		return nil, err
	}
	if student.AcademicSupervisorID == nil {
		return nil, apperrors.ErrNoAcademicSupervisor
	}

	application, err := s.applicationRepo.GetAcceptedByPair(ctx, placement.StudentID, placement.InternshipID)
	if err != nil {
		return nil, err
	}

	return s.evaluationRepo.GetOrCreate(ctx, placement.StudentID, placement.CompanySupervisorID, *student.AcademicSupervisorID, application.ID)
}
