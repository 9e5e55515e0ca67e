package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"internhub/internal/app/models"
	"internhub/internal/app/models/dto"
	"internhub/internal/app/repositories"
	"internhub/internal/pkg/apperrors"
)

// LogbookStore is the logbook data access needed by the reporting flow
type LogbookStore interface {
	CreateLogbook(ctx context.Context, l *models.Logbook) (int64, error)
	GetLogbookByID(ctx context.Context, id int64) (*models.Logbook, error)
	UpdateContent(ctx context.Context, id int64, content string) error
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Logbook, error)
	ListPendingBySupervisor(ctx context.Context, supervisorID int64) ([]*models.Logbook, error)
	ReviewTx(ctx context.Context, q repositories.DBTX, id int64, status models.LogbookStatus, approval bool, notes *string, at time.Time) error
	SetAcademicNotes(ctx context.Context, id int64, notes string) error
	UpdateStatus(ctx context.Context, id int64, status models.LogbookStatus) error
	DeleteLogbook(ctx context.Context, id int64) error
	ListLogbooks(ctx context.Context, offset uint64, limit int) ([]*models.Logbook, int, error)
}

// AcceptedApplicationFinder links an active placement back to the accepted
// application it came from
type AcceptedApplicationFinder interface {
	GetAcceptedByPair(ctx context.Context, studentID, internshipID int64) (*models.InternshipApplication, error)
}

// LogbookService manages weekly progress reports. Submission requires an
// active placement with an accepted application behind it; each week closes
// seven days after its deadline week boundary.
type LogbookService struct {
	tx            TxRunner
	logbooks      LogbookStore
	applications  AcceptedApplicationFinder
	placements    PlacementDirectory
	profiles      SupervisionDirectory
	notifications NotificationStore
	logger        zerolog.Logger
}

// NewLogbookService creates a new LogbookService
func NewLogbookService(
	tx TxRunner,
	logbooks LogbookStore,
	applications AcceptedApplicationFinder,
	placements PlacementDirectory,
	profiles SupervisionDirectory,
	notifications NotificationStore,
	logger zerolog.Logger,
) *LogbookService {
	return &LogbookService{
		tx:            tx,
		logbooks:      logbooks,
		applications:  applications,
		placements:    placements,
		profiles:      profiles,
		notifications: notifications,
		logger:        logger,
	}
}

// Submit creates the logbook for one week of the student's active placement.
// The deadline for week N is placement start plus N weeks; late submissions
// are rejected, duplicates surface as ErrDuplicateWeek.
func (s *LogbookService) Submit(ctx context.Context, studentUserID int64, weekNo int, req *dto.SubmitLogbookRequest) (*models.Logbook, error) {
	if weekNo < 1 || weekNo > models.LogbookWeeks {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("week number must be between 1 and %d", models.LogbookWeeks))
	}

	student, err := s.profiles.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	placement, err := s.placements.GetActiveByStudent(ctx, student.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewBadRequestError("logbooks require an active placement")
		}
		return nil, err
	}

	application, err := s.applications.GetAcceptedByPair(ctx, student.ID, placement.InternshipID)
	if err != nil {
		return nil, err
	}

	deadline := models.SubmissionDeadline(placement.StartDate, weekNo)
	if time.Now().After(deadline.AddDate(0, 0, 1)) {
		return nil, apperrors.ErrDeadlinePassed
	}

	logbook := &models.Logbook{
		StudentID:     student.ID,
		ApplicationID: application.ID,
		WeekNo:        weekNo,
		Content:       req.Content,
		Status:        models.LogbookPending,
	}

	id, err := s.logbooks.CreateLogbook(ctx, logbook)
	if err != nil {
		return nil, err
	}
	logbook.ID = id

	s.logger.Info().
		Int64("logbookId", id).
		Int64("studentId", student.ID).
		Int("weekNo", weekNo).
		Msg("Logbook submitted")

	return logbook, nil
}

// Edit updates the content of a Pending logbook owned by the acting student.
// Reviewed logbooks are immutable.
func (s *LogbookService) Edit(ctx context.Context, studentUserID, logbookID int64, req *dto.SubmitLogbookRequest) (*models.Logbook, error) {
	student, err := s.profiles.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	logbook, err := s.logbooks.GetLogbookByID(ctx, logbookID)
	if err != nil {
		return nil, err
	}
	if logbook.StudentID != student.ID {
		return nil, apperrors.NewForbiddenError("logbook belongs to another student")
	}
	if !logbook.Editable() {
		return nil, apperrors.ErrImmutable
	}

	if err := s.logbooks.UpdateContent(ctx, logbookID, req.Content); err != nil {
		return nil, err
	}
	logbook.Content = req.Content

	return logbook, nil
}

// WeekGrid returns one entry per reporting week with the logbook attached
// where one exists, plus the deadline computed from the placement start.
func (s *LogbookService) WeekGrid(ctx context.Context, studentUserID int64) ([]dto.LogbookWeekEntry, error) {
	student, err := s.profiles.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	logbooks, err := s.logbooks.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	byWeek := make(map[int]*models.Logbook, len(logbooks))
	for _, logbook := range logbooks {
		byWeek[logbook.WeekNo] = logbook
	}

	var startDate *time.Time
	placement, err := s.placements.GetActiveByStudent(ctx, student.ID)
	if err == nil {
		startDate = &placement.StartDate
	} else if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}

	grid := make([]dto.LogbookWeekEntry, 0, models.LogbookWeeks)
	for week := 1; week <= models.LogbookWeeks; week++ {
		entry := dto.LogbookWeekEntry{WeekNo: week, Logbook: byWeek[week]}
		if startDate != nil {
			entry.Deadline = models.SubmissionDeadline(*startDate, week).Format(dateLayout)
		}
		grid = append(grid, entry)
	}

	return grid, nil
}

// ListPendingForSupervisor returns Pending logbooks of the acting company
// supervisor's active interns.
func (s *LogbookService) ListPendingForSupervisor(ctx context.Context, supervisorUserID int64) ([]*models.Logbook, error) {
	supervisor, err := s.profiles.GetCompanySupervisorByUserID(ctx, supervisorUserID)
	if err != nil {
		return nil, err
	}
	return s.logbooks.ListPendingBySupervisor(ctx, supervisor.ID)
}

// Review records the company supervisor's approve or reject decision and
// notifies the student and the academic supervisor in the same transaction.
func (s *LogbookService) Review(ctx context.Context, supervisorUserID, logbookID int64, req *dto.ReviewLogbookRequest) (*models.Logbook, error) {
	supervisor, err := s.profiles.GetCompanySupervisorByUserID(ctx, supervisorUserID)
	if err != nil {
		return nil, err
	}

	logbook, err := s.logbooks.GetLogbookByID(ctx, logbookID)
	if err != nil {
		return nil, err
	}
	if logbook.Status != models.LogbookPending {
		return nil, apperrors.ErrImmutable
	}

	student, err := s.profiles.GetStudentByID(ctx, logbook.StudentID)
	if err != nil {
		return nil, err
	}

	placement, err := s.placements.GetActiveByStudent(ctx, student.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewForbiddenError("student has no active placement under your supervision")
		}
		return nil, err
	}
	if placement.CompanySupervisorID != supervisor.ID {
		return nil, apperrors.NewForbiddenError("logbook belongs to another supervisor's intern")
	}

	var status models.LogbookStatus
	var approval bool
	switch req.Action {
	case "approve":
		status, approval = models.LogbookApproved, true
	case "reject":
		status, approval = models.LogbookRejected, false
	default:
		return nil, apperrors.NewBadRequestError("action must be approve or reject")
	}

	now := time.Now()
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.logbooks.ReviewTx(ctx, tx, logbookID, status, approval, req.Notes, now); err != nil {
			return err
		}

		message := fmt.Sprintf("Your week %d logbook was %s.", logbook.WeekNo, statusWord(status))
		if err := s.notifications.CreateTx(ctx, tx, student.UserID, message); err != nil {
			return err
		}

		if student.AcademicSupervisorID != nil {
			academic, err := s.profiles.GetAcademicSupervisorByID(ctx, *student.AcademicSupervisorID)
			if err != nil {
				if errors.Is(err, apperrors.ErrResourceNotFound) {
					return nil
				}
				return err
			}
			academicMsg := fmt.Sprintf("A week %d logbook of your student was %s.", logbook.WeekNo, statusWord(status))
			return s.notifications.CreateTx(ctx, tx, academic.UserID, academicMsg)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logbook.Status = status
	logbook.CompanyApproval = &approval
	logbook.CompanySupervisorNotes = req.Notes
	if status == models.LogbookApproved {
		logbook.ApprovedAt = &now
	}

	return logbook, nil
}

// SetAcademicNotes attaches advisory notes without changing the status. The
// logbook must belong to one of the acting academic supervisor's students.
func (s *LogbookService) SetAcademicNotes(ctx context.Context, academicUserID, logbookID int64, req *dto.AcademicNotesRequest) error {
	academic, err := s.profiles.GetAcademicSupervisorByUserID(ctx, academicUserID)
	if err != nil {
		return err
	}

	logbook, err := s.logbooks.GetLogbookByID(ctx, logbookID)
	if err != nil {
		return err
	}

	student, err := s.profiles.GetStudentByID(ctx, logbook.StudentID)
	if err != nil {
		return err
	}
	if student.AcademicSupervisorID == nil || *student.AcademicSupervisorID != academic.ID {
		return apperrors.NewForbiddenError("logbook belongs to another supervisor's student")
	}

	return s.logbooks.SetAcademicNotes(ctx, logbookID, req.Notes)
}

// ListByStudentForAcademic returns a supervised student's logbooks
func (s *LogbookService) ListByStudentForAcademic(ctx context.Context, academicUserID, studentID int64) ([]*models.Logbook, error) {
	academic, err := s.profiles.GetAcademicSupervisorByUserID(ctx, academicUserID)
	if err != nil {
		return nil, err
	}

	student, err := s.profiles.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.AcademicSupervisorID == nil || *student.AcademicSupervisorID != academic.ID {
		return nil, apperrors.NewForbiddenError("student is assigned to another supervisor")
	}

	return s.logbooks.ListByStudent(ctx, studentID)
}

// ListLogbooks returns all logbooks for the admin view
func (s *LogbookService) ListLogbooks(ctx context.Context, offset uint64, limit int) ([]*models.Logbook, int, error) {
	return s.logbooks.ListLogbooks(ctx, offset, limit)
}

// AdminUpdateStatus overwrites a logbook status (admin override)
func (s *LogbookService) AdminUpdateStatus(ctx context.Context, id int64, req *dto.UpdateLogbookStatusRequest) error {
	return s.logbooks.UpdateStatus(ctx, id, models.LogbookStatus(req.Status))
}

// AdminDelete removes a logbook
func (s *LogbookService) AdminDelete(ctx context.Context, id int64) error {
	return s.logbooks.DeleteLogbook(ctx, id)
}

func statusWord(status models.LogbookStatus) string {
	if status == models.LogbookApproved {
		return "approved"
	}
	return "rejected"
}
