package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"internhub/internal/app/models"
	"internhub/internal/app/models/dto"
	"internhub/internal/pkg/apperrors"
)

// AttendanceStore is the attendance data access needed by the marking flow
type AttendanceStore interface {
	GetByPlacementAndDate(ctx context.Context, placementID int64, date time.Time) (*models.Attendance, error)
	CreateAttendance(ctx context.Context, a *models.Attendance) (int64, error)
	SetCheckOut(ctx context.Context, id int64, at time.Time) (bool, error)
	ListByPlacementBetween(ctx context.Context, placementID int64, from, to time.Time) ([]*models.Attendance, error)
	GetAttendanceByID(ctx context.Context, id int64) (*models.Attendance, error)
	UpdateAttendance(ctx context.Context, a *models.Attendance) error
	DeleteAttendance(ctx context.Context, id int64) error
	ListAttendance(ctx context.Context, offset uint64, limit int) ([]*models.Attendance, int, error)
}

// PlacementDirectory resolves placements for marking and summaries
type PlacementDirectory interface {
	GetPlacementByID(ctx context.Context, id int64) (*models.InternshipPlacement, error)
	GetActiveByStudent(ctx context.Context, studentID int64) (*models.InternshipPlacement, error)
	ListActiveBySupervisor(ctx context.Context, supervisorID int64) ([]*models.InternshipPlacement, error)
}

// SupervisionDirectory resolves the acting user's role profile and the
// supervision links between students and their supervisors
type SupervisionDirectory interface {
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	GetCompanySupervisorByUserID(ctx context.Context, userID int64) (*models.CompanySupervisor, error)
	GetAcademicSupervisorByUserID(ctx context.Context, userID int64) (*models.AcademicSupervisor, error)
	GetAcademicSupervisorByID(ctx context.Context, id int64) (*models.AcademicSupervisor, error)
}

// AttendanceService records daily check-ins and check-outs. A company
// supervisor marks attendance for their own interns only; completed
// placements are locked.
type AttendanceService struct {
	attendance AttendanceStore
	placements PlacementDirectory
	profiles   SupervisionDirectory
	logger     zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(
	attendance AttendanceStore,
	placements PlacementDirectory,
	profiles SupervisionDirectory,
	logger zerolog.Logger,
) *AttendanceService {
	return &AttendanceService{
		attendance: attendance,
		placements: placements,
		profiles:   profiles,
		logger:     logger,
	}
}

// Mark records a check-in or check-out for today on a placement supervised by
// the acting company supervisor. Check-in is get-or-create for the day;
// check-out sets the time once, repeats of either action return the existing
// record unchanged.
func (s *AttendanceService) Mark(ctx context.Context, supervisorUserID int64, req *dto.AttendanceActionRequest) (*models.Attendance, error) {
	placement, err := s.ownedPlacement(ctx, supervisorUserID, req.PlacementID)
	if err != nil {
		return nil, err
	}
	if placement.Status != models.PlacementActive {
		return nil, apperrors.ErrAttendanceLocked
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	record, err := s.attendance.GetByPlacementAndDate(ctx, placement.ID, today)
	if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}

	switch req.Action {
	case "checkin":
		if record != nil {
			// Checking in twice on the same day is a no-op
			return record, nil
		}
		record = &models.Attendance{
			PlacementID: placement.ID,
			Date:        today,
			CheckIn:     now,
		}
		id, err := s.attendance.CreateAttendance(ctx, record)
		if err != nil {
			if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
				// Lost a same-day race, the existing record wins
				return s.attendance.GetByPlacementAndDate(ctx, placement.ID, today)
			}
			return nil, err
		}
		record.ID = id
		return record, nil

	case "checkout":
		if record == nil {
			return nil, apperrors.NewBadRequestError("cannot check out without a check-in today")
		}
		updated, err := s.attendance.SetCheckOut(ctx, record.ID, now)
		if err != nil {
			return nil, err
		}
		if !updated {
			// Checking out twice on the same day is a no-op, the first
			// recorded time stands
			return record, nil
		}
		record.CheckOut = &now
		return record, nil

	default:
		return nil, apperrors.NewBadRequestError("action must be checkin or checkout")
	}
}

// DayView returns every intern of the acting supervisor with today's
// attendance record attached, nil where nothing is marked yet.
func (s *AttendanceService) DayView(ctx context.Context, supervisorUserID int64, day time.Time) ([]*dto.PlacementAttendanceResponse, error) {
	supervisor, err := s.profiles.GetCompanySupervisorByUserID(ctx, supervisorUserID)
	if err != nil {
		return nil, err
	}

	placements, err := s.placements.ListActiveBySupervisor(ctx, supervisor.ID)
	if err != nil {
		return nil, err
	}

	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	view := make([]*dto.PlacementAttendanceResponse, 0, len(placements))
	for _, placement := range placements {
		record, err := s.attendance.GetByPlacementAndDate(ctx, placement.ID, day)
		if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, err
		}
		view = append(view, &dto.PlacementAttendanceResponse{Placement: placement, Attendance: record})
	}

	return view, nil
}

// MonthlySummary builds the present/absent breakdown for the student's
// active placement in the given month. Days are counted only inside the
// placement window and never past today.
func (s *AttendanceService) MonthlySummary(ctx context.Context, studentUserID int64, year, month int) (*models.AttendanceSummary, error) {
	student, err := s.profiles.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	return s.summaryForStudent(ctx, student.ID, year, month)
}

// AcademicMonthlySummary is the academic supervisor's view of one supervised
// student's monthly attendance.
func (s *AttendanceService) AcademicMonthlySummary(ctx context.Context, academicUserID, studentID int64, year, month int) (*models.AttendanceSummary, error) {
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

	return s.summaryForStudent(ctx, studentID, year, month)
}

func (s *AttendanceService) summaryForStudent(ctx context.Context, studentID int64, year, month int) (*models.AttendanceSummary, error) {
	placement, err := s.placements.GetActiveByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if month < 1 || month > 12 {
		return nil, apperrors.NewBadRequestError("month must be between 1 and 12")
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	monthEnd := monthStart.AddDate(0, 1, -1)

	records, err := s.attendance.ListByPlacementBetween(ctx, placement.ID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	summary := &models.AttendanceSummary{
		Month:   month,
		Year:    year,
		Records: records,
	}

	marked := make(map[string]bool, len(records))
	for _, record := range records {
		marked[record.Date.Format(dateLayout)] = true
	}

	// Clip the counting window to the placement dates and to today
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	from := maxDate(monthStart, dateOnly(placement.StartDate))
	to := minDate(monthEnd, dateOnly(placement.EndDate))
	to = minDate(to, today)

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if marked[day.Format(dateLayout)] {
			summary.DaysPresent++
		} else {
			summary.DaysAbsent++
		}
	}

	return summary, nil
}

// AdminCreate inserts an attendance record directly, bypassing the
// supervisor ownership and same-day rules.
func (s *AttendanceService) AdminCreate(ctx context.Context, req *dto.AdminAttendanceRequest) (*models.Attendance, error) {
	if _, err := s.placements.GetPlacementByID(ctx, req.PlacementID); err != nil {
		return nil, err
	}

	date, checkIn, checkOut, err := parseAdminAttendance(req)
	if err != nil {
		return nil, err
	}

	record := &models.Attendance{
		PlacementID: req.PlacementID,
		Date:        date,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
	}

	id, err := s.attendance.CreateAttendance(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = id

	s.logger.Info().Int64("attendanceId", id).Int64("placementId", req.PlacementID).Msg("Attendance record created by admin")
	return record, nil
}

// AdminUpdate overwrites an attendance record (admin override)
func (s *AttendanceService) AdminUpdate(ctx context.Context, id int64, req *dto.AdminAttendanceRequest) (*models.Attendance, error) {
	record, err := s.attendance.GetAttendanceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	date, checkIn, checkOut, err := parseAdminAttendance(req)
	if err != nil {
		return nil, err
	}

	record.PlacementID = req.PlacementID
	record.Date = date
	record.CheckIn = checkIn
	record.CheckOut = checkOut

	if err := s.attendance.UpdateAttendance(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// AdminDelete removes an attendance record
func (s *AttendanceService) AdminDelete(ctx context.Context, id int64) error {
	return s.attendance.DeleteAttendance(ctx, id)
}

// ListAttendance returns all attendance records for the admin view
func (s *AttendanceService) ListAttendance(ctx context.Context, offset uint64, limit int) ([]*models.Attendance, int, error) {
	return s.attendance.ListAttendance(ctx, offset, limit)
}

// ownedPlacement loads a placement and verifies the acting supervisor owns it
func (s *AttendanceService) ownedPlacement(ctx context.Context, supervisorUserID, placementID int64) (*models.InternshipPlacement, error) {
	supervisor, err := s.profiles.GetCompanySupervisorByUserID(ctx, supervisorUserID)
	if err != nil {
		return nil, err
	}

	placement, err := s.placements.GetPlacementByID(ctx, placementID)
	if err != nil {
		return nil, err
	}
	if placement.CompanySupervisorID != supervisor.ID {
		return nil, apperrors.NewForbiddenError("placement belongs to another supervisor")
	}

	return placement, nil
}

func parseAdminAttendance(req *dto.AdminAttendanceRequest) (date, checkIn time.Time, checkOut *time.Time, err error) {
	date, err = time.Parse(dateLayout, req.Date)
	if err != nil {
		return time.Time{}, time.Time{}, nil, apperrors.NewBadRequestError("date must be formatted as YYYY-MM-DD")
	}

	checkIn, err = combineDayTime(date, req.CheckIn)
	if err != nil {
		return time.Time{}, time.Time{}, nil, apperrors.NewBadRequestError("checkIn must be formatted as HH:MM")
	}

	if req.CheckOut != nil {
		out, err := combineDayTime(date, *req.CheckOut)
		if err != nil {
			return time.Time{}, time.Time{}, nil, apperrors.NewBadRequestError("checkOut must be formatted as HH:MM")
		}
		if out.Before(checkIn) {
			return time.Time{}, time.Time{}, nil, apperrors.NewBadRequestError("checkOut must not be before checkIn")
		}
		checkOut = &out
	}

	return date, checkIn, checkOut, nil
}

func combineDayTime(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
