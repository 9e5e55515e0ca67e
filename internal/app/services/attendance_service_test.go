package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"internhub/internal/app/models"
	"internhub/internal/app/models/dto"
	"internhub/internal/pkg/apperrors"
)

type fakeAttendanceRecords struct {
	records map[int64]*models.Attendance
	nextID  int64
}

func newFakeAttendanceRecords() *fakeAttendanceRecords {
	return &fakeAttendanceRecords{records: map[int64]*models.Attendance{}}
}

func (f *fakeAttendanceRecords) GetByPlacementAndDate(_ context.Context, placementID int64, date time.Time) (*models.Attendance, error) {
	for _, r := range f.records {
		if r.PlacementID == placementID && r.Date.Equal(date) {
			stored := *r
			return &stored, nil
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

func (f *fakeAttendanceRecords) CreateAttendance(_ context.Context, a *models.Attendance) (int64, error) {
	for _, r := range f.records {
		if r.PlacementID == a.PlacementID && r.Date.Equal(a.Date) {
			return 0, apperrors.ErrResourceAlreadyExists
		}
	}
	f.nextID++
	stored := *a
	stored.ID = f.nextID
	f.records[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeAttendanceRecords) SetCheckOut(_ context.Context, id int64, at time.Time) (bool, error) {
	r, ok := f.records[id]
	if !ok {
		return false, apperrors.ErrResourceNotFound
	}
	if r.CheckOut != nil {
		return false, nil
	}
	out := at
	r.CheckOut = &out
	return true, nil
}

func (f *fakeAttendanceRecords) ListByPlacementBetween(_ context.Context, placementID int64, from, to time.Time) ([]*models.Attendance, error) {
	var out []*models.Attendance
	for _, r := range f.records {
		if r.PlacementID == placementID && !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRecords) GetAttendanceByID(_ context.Context, id int64) (*models.Attendance, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	stored := *r
	return &stored, nil
}

func (f *fakeAttendanceRecords) UpdateAttendance(_ context.Context, a *models.Attendance) error {
	if _, ok := f.records[a.ID]; !ok {
		return apperrors.ErrResourceNotFound
	}
	stored := *a
	f.records[a.ID] = &stored
	return nil
}

func (f *fakeAttendanceRecords) DeleteAttendance(_ context.Context, id int64) error {
	delete(f.records, id)
	return nil
}

func (f *fakeAttendanceRecords) ListAttendance(context.Context, uint64, int) ([]*models.Attendance, int, error) {
	out := make([]*models.Attendance, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, r)
	}
	return out, len(out), nil
}

type fakePlacementDir struct {
	placements map[int64]*models.InternshipPlacement
}

func (f *fakePlacementDir) GetPlacementByID(_ context.Context, id int64) (*models.InternshipPlacement, error) {
	p, ok := f.placements[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return p, nil
}

func (f *fakePlacementDir) GetActiveByStudent(_ context.Context, studentRef int64) (*models.InternshipPlacement, error) {
	for _, p := range f.placements {
		if p.StudentID == studentRef && p.Status == models.PlacementActive {
			return p, nil
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

func (f *fakePlacementDir) ListActiveBySupervisor(_ context.Context, supervisorRef int64) ([]*models.InternshipPlacement, error) {
	var out []*models.InternshipPlacement
	for _, p := range f.placements {
		if p.CompanySupervisorID == supervisorRef && p.Status == models.PlacementActive {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeSupervisionDir struct {
	studentsByUserID  map[int64]*models.Student
	studentsByID      map[int64]*models.Student
	companyByUserID   map[int64]*models.CompanySupervisor
	academicsByUserID map[int64]*models.AcademicSupervisor
	academicsByID     map[int64]*models.AcademicSupervisor
}

func newFakeSupervisionDir() *fakeSupervisionDir {
	academicRef := academicID
	student := &models.Student{ID: studentID, UserID: studentUserID, AcademicSupervisorID: &academicRef}
	academic := &models.AcademicSupervisor{ID: academicID, UserID: academicUserID}
	return &fakeSupervisionDir{
		studentsByUserID: map[int64]*models.Student{studentUserID: student},
		studentsByID:     map[int64]*models.Student{studentID: student},
		companyByUserID: map[int64]*models.CompanySupervisor{
			supervisorXUserID: {ID: supervisorXID, UserID: supervisorXUserID},
			supervisorYUserID: {ID: supervisorYID, UserID: supervisorYUserID},
		},
		academicsByUserID: map[int64]*models.AcademicSupervisor{academicUserID: academic},
		academicsByID:     map[int64]*models.AcademicSupervisor{academicID: academic},
	}
}

func (f *fakeSupervisionDir) GetStudentByUserID(_ context.Context, userID int64) (*models.Student, error) {
	s, ok := f.studentsByUserID[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return s, nil
}

func (f *fakeSupervisionDir) GetStudentByID(_ context.Context, id int64) (*models.Student, error) {
	s, ok := f.studentsByID[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return s, nil
}

func (f *fakeSupervisionDir) GetCompanySupervisorByUserID(_ context.Context, userID int64) (*models.CompanySupervisor, error) {
	s, ok := f.companyByUserID[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return s, nil
}

func (f *fakeSupervisionDir) GetAcademicSupervisorByUserID(_ context.Context, userID int64) (*models.AcademicSupervisor, error) {
	s, ok := f.academicsByUserID[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return s, nil
}

func (f *fakeSupervisionDir) GetAcademicSupervisorByID(_ context.Context, id int64) (*models.AcademicSupervisor, error) {
	s, ok := f.academicsByID[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return s, nil
}

const (
	activePlacementID    = int64(500)
	completedPlacementID = int64(501)
	foreignPlacementID   = int64(502)
)

type attendanceFixture struct {
	service    *AttendanceService
	attendance *fakeAttendanceRecords
}

func newAttendanceFixture() *attendanceFixture {
	today := time.Now()
	placements := &fakePlacementDir{placements: map[int64]*models.InternshipPlacement{
		activePlacementID: {
			ID:                  activePlacementID,
			StudentID:           studentID,
			InternshipID:        openInternshipID,
			CompanySupervisorID: supervisorXID,
			StartDate:           today.AddDate(0, 0, -10),
			EndDate:             today.AddDate(0, 0, 20),
			Status:              models.PlacementActive,
		},
		completedPlacementID: {
			ID:                  completedPlacementID,
			StudentID:           int64(2),
			CompanySupervisorID: supervisorXID,
			StartDate:           today.AddDate(0, 0, -60),
			EndDate:             today.AddDate(0, 0, -5),
			Status:              models.PlacementCompleted,
		},
		foreignPlacementID: {
			ID:                  foreignPlacementID,
			StudentID:           int64(3),
			CompanySupervisorID: supervisorYID,
			StartDate:           today.AddDate(0, 0, -10),
			EndDate:             today.AddDate(0, 0, 20),
			Status:              models.PlacementActive,
		},
	}}

	attendance := newFakeAttendanceRecords()
	service := NewAttendanceService(attendance, placements, newFakeSupervisionDir(), zerolog.Nop())

	return &attendanceFixture{service: service, attendance: attendance}
}

func TestMarkCheckInCreatesTodayRecord(t *testing.T) {
	f := newAttendanceFixture()
	ctx := context.Background()

	record, err := f.service.Mark(ctx, supervisorXUserID, &dto.AttendanceActionRequest{PlacementID: activePlacementID, Action: "checkin"})
	require.NoError(t, err)

	assert.Equal(t, activePlacementID, record.PlacementID)
	assert.False(t, record.CheckIn.IsZero())
	assert.Nil(t, record.CheckOut)
	assert.Len(t, f.attendance.records, 1)
}

func TestMarkRepeatCheckInIsNoOp(t *testing.T) {
	f := newAttendanceFixture()
	ctx := context.Background()
	req := &dto.AttendanceActionRequest{PlacementID: activePlacementID, Action: "checkin"}

	first, err := f.service.Mark(ctx, supervisorXUserID, req)
	require.NoError(t, err)

	second, err := f.service.Mark(ctx, supervisorXUserID, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.CheckIn.Equal(second.CheckIn))
	assert.Len(t, f.attendance.records, 1)
}

func TestMarkRepeatCheckOutKeepsFirstTime(t *testing.T) {
	f := newAttendanceFixture()
	ctx := context.Background()

	_, err := f.service.Mark(ctx, supervisorXUserID, &dto.AttendanceActionRequest{PlacementID: activePlacementID, Action: "checkin"})
	require.NoError(t, err)

	first, err := f.service.Mark(ctx, supervisorXUserID, &dto.AttendanceActionRequest{PlacementID: activePlacementID, Action: "checkout"})
	require.NoError(t, err)
	require.NotNil(t, first.CheckOut)

	// A second check-out on the same day is a no-op, not an error
	second, err := f.service.Mark(ctx, supervisorXUserID, &dto.AttendanceActionRequest{PlacementID: activePlacementID, Action: "checkout"})
	require.NoError(t, err)
	require.NotNil(t, second.CheckOut)
	assert.True(t, first.CheckOut.Equal(*second.CheckOut))

	stored := f.attendance.records[first.ID]
	require.NotNil(t, stored.CheckOut)
	assert.True(t, first.CheckOut.Equal(*stored.CheckOut))
}

func TestMarkCheckOutWithoutCheckInRejected(t *testing.T) {
	f := newAttendanceFixture()
	ctx := context.Background()

	_, err := f.service.Mark(ctx, supervisorXUserID, &dto.AttendanceActionRequest{PlacementID: activePlacementID, Action: "checkout"})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestMarkLockedAfterPlacementCompletion(t *testing.T) {
	f := newAttendanceFixture()
	ctx := context.Background()

	_, err := f.service.Mark(ctx, supervisorXUserID, &dto.AttendanceActionRequest{PlacementID: completedPlacementID, Action: "checkin"})
	assert.ErrorIs(t, err, apperrors.ErrAttendanceLocked)
}

func TestMarkForeignPlacementForbidden(t *testing.T) {
	f := newAttendanceFixture()
	ctx := context.Background()

	_, err := f.service.Mark(ctx, supervisorXUserID, &dto.AttendanceActionRequest{PlacementID: foreignPlacementID, Action: "checkin"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Empty(t, f.attendance.records)
}

func TestMarkRejectsUnknownAction(t *testing.T) {
	f := newAttendanceFixture()
	ctx := context.Background()

	_, err := f.service.Mark(ctx, supervisorXUserID, &dto.AttendanceActionRequest{PlacementID: activePlacementID, Action: "pause"})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCombineDayTime(t *testing.T) {
	day := time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC)

	got, err := combineDayTime(day, "08:45")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 14, 8, 45, 0, 0, time.UTC), got)

	_, err = combineDayTime(day, "8:45am")
	assert.Error(t, err)
}

func TestSummaryWindowClipping(t *testing.T) {
	// The counting window is the overlap of the calendar month, the
	// placement dates and everything up to today.
	monthStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	monthEnd := time.Date(2025, 6, 30, 0, 0, 0, 0, time.Local)
	placementStart := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	placementEnd := time.Date(2025, 7, 15, 0, 0, 0, 0, time.Local)
	today := time.Date(2025, 6, 20, 0, 0, 0, 0, time.Local)

	from := maxDate(monthStart, placementStart)
	to := minDate(minDate(monthEnd, placementEnd), today)

	assert.Equal(t, placementStart, from, "window starts at the placement, not the month")
	assert.Equal(t, today, to, "future days are never counted")

	// A month entirely before the placement yields an empty window
	from = maxDate(time.Date(2025, 5, 1, 0, 0, 0, 0, time.Local), placementStart)
	to = minDate(time.Date(2025, 5, 31, 0, 0, 0, 0, time.Local), placementEnd)
	assert.True(t, to.Before(from))
}

func TestDateOnlyStripsClock(t *testing.T) {
	stamp := time.Date(2025, 6, 20, 17, 42, 13, 500, time.Local)
	assert.Equal(t, time.Date(2025, 6, 20, 0, 0, 0, 0, time.Local), dateOnly(stamp))
}
