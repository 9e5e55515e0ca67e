package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"internhub/internal/app/models"
	"internhub/internal/app/repositories"
	"internhub/internal/db"
	"internhub/internal/pkg/apperrors"
)

// DefaultApplicationWindowDays is how far back the company application list
// reaches unless the caller disables the window.
const DefaultApplicationWindowDays = 90

// TxRunner runs a function inside one database transaction
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// ApplicationStore is the application data access needed by the workflow
type ApplicationStore interface {
	CreateApplicationTx(ctx context.Context, q repositories.DBTX, a *models.InternshipApplication) (int64, error)
	ExistsByStudentAndInternship(ctx context.Context, studentID, internshipID int64) (bool, error)
	GetApplicationByID(ctx context.Context, id int64) (*models.InternshipApplication, error)
	GetForUpdateTx(ctx context.Context, tx pgx.Tx, id int64) (*models.InternshipApplication, error)
	SetDecisionTx(ctx context.Context, tx pgx.Tx, id int64, status models.ApplicationStatus, handledByID int64) error
	SetStudentDecisionTx(ctx context.Context, tx pgx.Tx, id int64, status models.ApplicationStatus, decision models.StudentDecision) error
	ListByStudent(ctx context.Context, studentID int64) ([]*models.InternshipApplication, error)
	ListByDepartment(ctx context.Context, companyID, departmentID int64, since *time.Time) ([]*models.InternshipApplication, error)
	ListApplications(ctx context.Context, offset uint64, limit int) ([]*models.InternshipApplication, int, error)
	UpdateHandledBy(ctx context.Context, id, supervisorID int64) error
	DeleteApplication(ctx context.Context, id int64) error
}

// PlacementStore is the placement data access needed by the workflow
type PlacementStore interface {
	CreatePlacementTx(ctx context.Context, q repositories.DBTX, p *models.InternshipPlacement) (int64, error)
	ExistsForPairTx(ctx context.Context, q repositories.DBTX, studentID, internshipID int64) (bool, error)
	ExistsActiveByStudent(ctx context.Context, studentID int64) (bool, error)
}

// InternshipStore is the posting lookup needed by the workflow
type InternshipStore interface {
	GetInternshipByID(ctx context.Context, id int64) (*models.Internship, error)
}

// ProfileDirectory resolves role profiles and notification recipients
type ProfileDirectory interface {
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	GetCompanySupervisorByUserID(ctx context.Context, userID int64) (*models.CompanySupervisor, error)
	GetCompanySupervisorByID(ctx context.Context, id int64) (*models.CompanySupervisor, error)
	GetAcademicSupervisorByID(ctx context.Context, id int64) (*models.AcademicSupervisor, error)
	ListSupervisorUserIDsByDepartment(ctx context.Context, companyID, departmentID int64) ([]int64, error)
}

// NotificationStore appends notification rows inside the caller's transaction
type NotificationStore interface {
	CreateTx(ctx context.Context, q repositories.DBTX, userID int64, message string) error
	CreateManyTx(ctx context.Context, q repositories.DBTX, userIDs []int64, message string) error
}

// DocumentStore persists uploaded document metadata
type DocumentStore interface {
	CreateDocumentTx(ctx context.Context, q repositories.DBTX, d *models.Document) (int64, error)
}

// ApplicationService drives the application state machine:
// Pending -> Offered/Rejected by a department supervisor, then
// Offered -> Accepted/Rejected by the student. Accepting creates exactly one
// Active placement.
type ApplicationService struct {
	tx            TxRunner
	applications  ApplicationStore
	placements    PlacementStore
	internships   InternshipStore
	profiles      ProfileDirectory
	notifications NotificationStore
	documents     DocumentStore
	logger        zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	tx TxRunner,
	applications ApplicationStore,
	placements PlacementStore,
	internships InternshipStore,
	profiles ProfileDirectory,
	notifications NotificationStore,
	documents DocumentStore,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		tx:            tx,
		applications:  applications,
		placements:    placements,
		internships:   internships,
		profiles:      profiles,
		notifications: notifications,
		documents:     documents,
		logger:        logger,
	}
}

// Submit creates a Pending application for the acting student, stores the
// uploaded resume and notifies every supervisor in the internship's
// department, all in one transaction.
func (s *ApplicationService) Submit(ctx context.Context, studentUserID, internshipID int64, resumePath, resumeName string) (*models.InternshipApplication, error) {
	student, err := s.profiles.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	internship, err := s.internships.GetInternshipByID(ctx, internshipID)
	if err != nil {
		return nil, err
	}
	if internship.Status != models.InternshipOpen {
		return nil, apperrors.NewBadRequestError("internship is closed for applications")
	}

	exists, err := s.applications.ExistsByStudentAndInternship(ctx, student.ID, internshipID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateApplication
	}

	placed, err := s.placements.ExistsActiveByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	if placed {
		return nil, apperrors.ErrAlreadyPlaced
	}

	application := &models.InternshipApplication{
		StudentID:       student.ID,
		InternshipID:    internshipID,
		Status:          models.ApplicationPending,
		StudentDecision: models.DecisionPending,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		id, err := s.applications.CreateApplicationTx(ctx, tx, application)
		if err != nil {
			return err
		}
		application.ID = id

		if resumePath != "" {
			if _, err := s.documents.CreateDocumentTx(ctx, tx, &models.Document{
				StudentID: student.ID,
				FilePath:  resumePath,
				FileName:  resumeName,
				DocType:   models.DocTypeResume,
			}); err != nil {
				return err
			}
		}

		recipients, err := s.profiles.ListSupervisorUserIDsByDepartment(ctx, internship.CompanyID, internship.DepartmentID)
		if err != nil {
			return err
		}
		message := fmt.Sprintf("New internship application for %s.", internship.Title)
		return s.notifications.CreateManyTx(ctx, tx, recipients, message)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("applicationId", application.ID).
		Int64("studentId", student.ID).
		Int64("internshipId", internshipID).
		Msg("Application submitted")

	return application, nil
}

// Decide records the supervisor decision on a Pending application. The row
// is locked for the duration of the transaction; when two supervisors race,
// the loser observes handled_by already set and the call becomes a no-op.
// The alreadyHandled result distinguishes the no-op from a win.
func (s *ApplicationService) Decide(ctx context.Context, supervisorUserID, applicationID int64, decision string) (app *models.InternshipApplication, alreadyHandled bool, err error) {
	supervisor, err := s.profiles.GetCompanySupervisorByUserID(ctx, supervisorUserID)
	if err != nil {
		return nil, false, err
	}
	if supervisor.CompanyID == nil || supervisor.DepartmentID == nil {
		return nil, false, apperrors.NewForbiddenError("supervisor is not assigned to a department")
	}

	var status models.ApplicationStatus
	switch decision {
	case "offer":
		status = models.ApplicationOffered
	case "reject":
		status = models.ApplicationRejected
	default:
		return nil, false, apperrors.NewBadRequestError("decision must be offer or reject")
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		locked, err := s.applications.GetForUpdateTx(ctx, tx, applicationID)
		if err != nil {
			return err
		}

		if locked.IsHandled() {
			app = locked
			alreadyHandled = true
			return nil
		}

		internship, err := s.internships.GetInternshipByID(ctx, locked.InternshipID)
		if err != nil {
			return err
		}

		// Decide eligibility is department-scoped
		if *supervisor.CompanyID != internship.CompanyID || *supervisor.DepartmentID != internship.DepartmentID {
			return apperrors.NewForbiddenError("application is outside your department")
		}

		if err := s.applications.SetDecisionTx(ctx, tx, applicationID, status, supervisor.ID); err != nil {
			return err
		}
		locked.Status = status
		locked.HandledByID = &supervisor.ID
		app = locked

		student, err := s.studentUserID(ctx, locked.StudentID)
		if err != nil {
			return err
		}

		var studentMsg string
		if status == models.ApplicationOffered {
			studentMsg = fmt.Sprintf("You have received an offer for %s. Please respond.", internship.Title)
		} else {
			studentMsg = fmt.Sprintf("Your application for %s was rejected.", internship.Title)
		}
		if err := s.notifications.CreateTx(ctx, tx, student, studentMsg); err != nil {
			return err
		}

		// Informational note to the other supervisors in the department
		peers, err := s.profiles.ListSupervisorUserIDsByDepartment(ctx, internship.CompanyID, internship.DepartmentID)
		if err != nil {
			return err
		}
		peerMsg := fmt.Sprintf("An application for %s has been handled.", internship.Title)
		for _, peer := range peers {
			if peer == supervisorUserID {
				continue
			}
			if err := s.notifications.CreateTx(ctx, tx, peer, peerMsg); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if alreadyHandled {
		s.logger.Info().Int64("applicationId", applicationID).Msg("Decision race lost, application already handled")
	}

	return app, alreadyHandled, nil
}

// StudentRespond records the student's answer to an offer. Accepting creates
// exactly one Active placement; the in-transaction existence check makes a
// repeated accept a no-op instead of a second placement.
func (s *ApplicationService) StudentRespond(ctx context.Context, studentUserID, applicationID int64, accept bool) (*models.InternshipApplication, error) {
	student, err := s.profiles.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	var result *models.InternshipApplication
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		locked, err := s.applications.GetForUpdateTx(ctx, tx, applicationID)
		if err != nil {
			return err
		}
		if locked.StudentID != student.ID {
			return apperrors.NewForbiddenError("application belongs to another student")
		}
		result = locked

		// Repeat responses are no-ops
		if locked.StudentDecision != models.DecisionPending {
			return nil
		}
		if locked.Status != models.ApplicationOffered {
			return apperrors.NewBadRequestError("application has no open offer")
		}
		if locked.HandledByID == nil {
			return apperrors.NewBadRequestError("offer has no handling supervisor")
		}

		internship, err := s.internships.GetInternshipByID(ctx, locked.InternshipID)
		if err != nil {
			return err
		}
		supervisor, err := s.profiles.GetCompanySupervisorByID(ctx, *locked.HandledByID)
		if err != nil {
			return err
		}

		if !accept {
			if err := s.applications.SetStudentDecisionTx(ctx, tx, applicationID, models.ApplicationRejected, models.DecisionRejected); err != nil {
				return err
			}
			locked.Status = models.ApplicationRejected
			locked.StudentDecision = models.DecisionRejected

			declineMsg := fmt.Sprintf("The offer for %s was declined by the student.", internship.Title)
			if err := s.notifications.CreateTx(ctx, tx, supervisor.UserID, declineMsg); err != nil {
				return err
			}
			return s.notifyAcademic(ctx, tx, student, declineMsg)
		}

		if err := s.applications.SetStudentDecisionTx(ctx, tx, applicationID, models.ApplicationAccepted, models.DecisionAccepted); err != nil {
			return err
		}
		locked.Status = models.ApplicationAccepted
		locked.StudentDecision = models.DecisionAccepted

		// Only one placement may ever exist for this pair
		exists, err := s.placements.ExistsForPairTx(ctx, tx, student.ID, locked.InternshipID)
		if err != nil {
			return err
		}
		if !exists {
			if _, err := s.placements.CreatePlacementTx(ctx, tx, &models.InternshipPlacement{
				InternshipID:        locked.InternshipID,
				StudentID:           student.ID,
				CompanySupervisorID: supervisor.ID,
				StartDate:           internship.StartDate,
				EndDate:             internship.EndDate,
				Status:              models.PlacementActive,
			}); err != nil {
				return err
			}
		}

		confirmMsg := fmt.Sprintf("Your internship placement for %s is confirmed.", internship.Title)
		if err := s.notifications.CreateTx(ctx, tx, studentUserID, confirmMsg); err != nil {
			return err
		}
		acceptMsg := fmt.Sprintf("The offer for %s was accepted by the student.", internship.Title)
		if err := s.notifications.CreateTx(ctx, tx, supervisor.UserID, acceptMsg); err != nil {
			return err
		}
		return s.notifyAcademic(ctx, tx, student, fmt.Sprintf("Your student started an internship: %s.", internship.Title))
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ListForStudent returns the acting student's applications
func (s *ApplicationService) ListForStudent(ctx context.Context, studentUserID int64) ([]*models.InternshipApplication, error) {
	student, err := s.profiles.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	return s.applications.ListByStudent(ctx, student.ID)
}

// ListForSupervisor returns the department's applications, limited to the
// last 90 days unless all is set.
func (s *ApplicationService) ListForSupervisor(ctx context.Context, supervisorUserID int64, all bool) ([]*models.InternshipApplication, error) {
	supervisor, err := s.profiles.GetCompanySupervisorByUserID(ctx, supervisorUserID)
	if err != nil {
		return nil, err
	}
	if supervisor.CompanyID == nil || supervisor.DepartmentID == nil {
		return nil, apperrors.NewForbiddenError("supervisor is not assigned to a department")
	}

	var since *time.Time
	if !all {
		cutoff := time.Now().AddDate(0, 0, -DefaultApplicationWindowDays)
		since = &cutoff
	}

	return s.applications.ListByDepartment(ctx, *supervisor.CompanyID, *supervisor.DepartmentID, since)
}

// GetApplication returns one application with its context
func (s *ApplicationService) GetApplication(ctx context.Context, id int64) (*models.InternshipApplication, error) {
	return s.applications.GetApplicationByID(ctx, id)
}

// ListApplications returns all applications (admin)
func (s *ApplicationService) ListApplications(ctx context.Context, offset uint64, limit int) ([]*models.InternshipApplication, int, error) {
	return s.applications.ListApplications(ctx, offset, limit)
}

// DeleteApplication removes an application unless a placement references the
// same pair. The placement protection is an application-level invariant, not
// a schema constraint.
func (s *ApplicationService) DeleteApplication(ctx context.Context, id int64) error {
	application, err := s.applications.GetApplicationByID(ctx, id)
	if err != nil {
		return err
	}

	exists, err := s.placements.ExistsForPairTx(ctx, nil, application.StudentID, application.InternshipID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrImmutable
	}

	return s.applications.DeleteApplication(ctx, id)
}

// ReplaceSupervisor reassigns the handling supervisor (admin override),
// blocked once a placement exists for the pair.
func (s *ApplicationService) ReplaceSupervisor(ctx context.Context, id, supervisorID int64) error {
	application, err := s.applications.GetApplicationByID(ctx, id)
	if err != nil {
		return err
	}

	exists, err := s.placements.ExistsForPairTx(ctx, nil, application.StudentID, application.InternshipID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrImmutable
	}

	if _, err := s.profiles.GetCompanySupervisorByID(ctx, supervisorID); err != nil {
		return err
	}

	return s.applications.UpdateHandledBy(ctx, id, supervisorID)
}

// studentUserID resolves the user behind a student profile id via the
// application join already loaded where possible, falling back to a lookup.
func (s *ApplicationService) studentUserID(ctx context.Context, studentID int64) (int64, error) {
	student, err := s.profiles.GetStudentByID(ctx, studentID)
	if err != nil {
		return 0, err
	}
	return student.UserID, nil
}

func (s *ApplicationService) notifyAcademic(ctx context.Context, tx pgx.Tx, student *models.Student, message string) error {
	if student.AcademicSupervisorID == nil {
		return nil
	}
	academic, err := s.profiles.GetAcademicSupervisorByID(ctx, *student.AcademicSupervisorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil
		}
		return err
	}
	return s.notifications.CreateTx(ctx, tx, academic.UserID, message)
}
