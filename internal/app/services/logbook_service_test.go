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
	"internhub/internal/app/repositories"
	"internhub/internal/pkg/apperrors"
)

type fakeLogbooks struct {
	logbooks map[int64]*models.Logbook
	nextID   int64
}

func newFakeLogbooks() *fakeLogbooks {
	return &fakeLogbooks{logbooks: map[int64]*models.Logbook{}}
}

func (f *fakeLogbooks) CreateLogbook(_ context.Context, l *models.Logbook) (int64, error) {
	for _, existing := range f.logbooks {
		if existing.StudentID == l.StudentID && existing.WeekNo == l.WeekNo {
			return 0, apperrors.ErrDuplicateWeek
		}
	}
	f.nextID++
	stored := *l
	stored.ID = f.nextID
	stored.SubmittedDate = time.Now()
	f.logbooks[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeLogbooks) GetLogbookByID(_ context.Context, id int64) (*models.Logbook, error) {
	l, ok := f.logbooks[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	stored := *l
	return &stored, nil
}

func (f *fakeLogbooks) UpdateContent(_ context.Context, id int64, content string) error {
	l, ok := f.logbooks[id]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	l.Content = content
	return nil
}

func (f *fakeLogbooks) ListByStudent(_ context.Context, studentRef int64) ([]*models.Logbook, error) {
	var out []*models.Logbook
	for _, l := range f.logbooks {
		if l.StudentID == studentRef {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLogbooks) ListPendingBySupervisor(context.Context, int64) ([]*models.Logbook, error) {
	var out []*models.Logbook
	for _, l := range f.logbooks {
		if l.Status == models.LogbookPending {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLogbooks) ReviewTx(_ context.Context, _ repositories.DBTX, id int64, status models.LogbookStatus, approval bool, notes *string, at time.Time) error {
	l, ok := f.logbooks[id]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	l.Status = status
	l.CompanyApproval = &approval
	l.CompanySupervisorNotes = notes
	if status == models.LogbookApproved {
		l.ApprovedAt = &at
	}
	return nil
}

func (f *fakeLogbooks) SetAcademicNotes(_ context.Context, id int64, notes string) error {
	l, ok := f.logbooks[id]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	l.AcademicSupervisorNotes = &notes
	return nil
}

func (f *fakeLogbooks) UpdateStatus(_ context.Context, id int64, status models.LogbookStatus) error {
	l, ok := f.logbooks[id]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	l.Status = status
	return nil
}

func (f *fakeLogbooks) DeleteLogbook(_ context.Context, id int64) error {
	delete(f.logbooks, id)
	return nil
}

func (f *fakeLogbooks) ListLogbooks(context.Context, uint64, int) ([]*models.Logbook, int, error) {
	out := make([]*models.Logbook, 0, len(f.logbooks))
	for _, l := range f.logbooks {
		out = append(out, l)
	}
	return out, len(out), nil
}

type fakeAcceptedApps struct {
	application *models.InternshipApplication
}

func (f *fakeAcceptedApps) GetAcceptedByPair(_ context.Context, studentRef, internshipRef int64) (*models.InternshipApplication, error) {
	if f.application != nil && f.application.StudentID == studentRef && f.application.InternshipID == internshipRef {
		return f.application, nil
	}
	return nil, apperrors.ErrResourceNotFound
}

type logbookFixture struct {
	service       *LogbookService
	logbooks      *fakeLogbooks
	notifications *fakeNotifications
}

const acceptedApplicationID = int64(60)

func newLogbookFixture(placementStart time.Time) *logbookFixture {
	placements := &fakePlacementDir{placements: map[int64]*models.InternshipPlacement{
		activePlacementID: {
			ID:                  activePlacementID,
			StudentID:           studentID,
			InternshipID:        openInternshipID,
			CompanySupervisorID: supervisorXID,
			StartDate:           placementStart,
			EndDate:             placementStart.AddDate(0, 0, 90),
			Status:              models.PlacementActive,
		},
	}}

	applications := &fakeAcceptedApps{application: &models.InternshipApplication{
		ID:           acceptedApplicationID,
		StudentID:    studentID,
		InternshipID: openInternshipID,
	}}

	logbooks := newFakeLogbooks()
	notifications := newFakeNotifications()

	service := NewLogbookService(
		fakeTxRunner{},
		logbooks,
		applications,
		placements,
		newFakeSupervisionDir(),
		notifications,
		zerolog.Nop(),
	)

	return &logbookFixture{service: service, logbooks: logbooks, notifications: notifications}
}

func TestSubmitLogbookBeforeDeadline(t *testing.T) {
	f := newLogbookFixture(time.Now().AddDate(0, 0, -2))
	ctx := context.Background()

	logbook, err := f.service.Submit(ctx, studentUserID, 1, &dto.SubmitLogbookRequest{Content: "first week"})
	require.NoError(t, err)

	assert.Equal(t, models.LogbookPending, logbook.Status)
	assert.Equal(t, acceptedApplicationID, logbook.ApplicationID)
	assert.Equal(t, studentID, logbook.StudentID)
	assert.Len(t, f.logbooks.logbooks, 1)
}

func TestSubmitLogbookOnDeadlineDayAllowed(t *testing.T) {
	// Week 1 closes seven days after the placement start; the deadline day
	// itself still accepts the submission.
	f := newLogbookFixture(time.Now().AddDate(0, 0, -7))
	ctx := context.Background()

	_, err := f.service.Submit(ctx, studentUserID, 1, &dto.SubmitLogbookRequest{Content: "on the deadline"})
	assert.NoError(t, err)
}

func TestSubmitLogbookAfterDeadlineRejected(t *testing.T) {
	f := newLogbookFixture(time.Now().AddDate(0, 0, -9))
	ctx := context.Background()

	_, err := f.service.Submit(ctx, studentUserID, 1, &dto.SubmitLogbookRequest{Content: "too late"})
	assert.ErrorIs(t, err, apperrors.ErrDeadlinePassed)
	assert.Empty(t, f.logbooks.logbooks)
}

func TestSubmitLogbookDuplicateWeek(t *testing.T) {
	f := newLogbookFixture(time.Now().AddDate(0, 0, -2))
	ctx := context.Background()

	_, err := f.service.Submit(ctx, studentUserID, 1, &dto.SubmitLogbookRequest{Content: "first"})
	require.NoError(t, err)

	_, err = f.service.Submit(ctx, studentUserID, 1, &dto.SubmitLogbookRequest{Content: "again"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateWeek)
}

func TestSubmitLogbookWeekOutOfRange(t *testing.T) {
	f := newLogbookFixture(time.Now())
	ctx := context.Background()

	_, err := f.service.Submit(ctx, studentUserID, 0, &dto.SubmitLogbookRequest{Content: "x"})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = f.service.Submit(ctx, studentUserID, models.LogbookWeeks+1, &dto.SubmitLogbookRequest{Content: "x"})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestSubmitLogbookRequiresActivePlacement(t *testing.T) {
	f := newLogbookFixture(time.Now())
	f.service = NewLogbookService(
		fakeTxRunner{},
		f.logbooks,
		&fakeAcceptedApps{},
		&fakePlacementDir{placements: map[int64]*models.InternshipPlacement{}},
		newFakeSupervisionDir(),
		f.notifications,
		zerolog.Nop(),
	)
	ctx := context.Background()

	_, err := f.service.Submit(ctx, studentUserID, 1, &dto.SubmitLogbookRequest{Content: "no placement"})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestEditUpdatesPendingLogbook(t *testing.T) {
	f := newLogbookFixture(time.Now().AddDate(0, 0, -2))
	ctx := context.Background()

	submitted, err := f.service.Submit(ctx, studentUserID, 1, &dto.SubmitLogbookRequest{Content: "draft"})
	require.NoError(t, err)

	edited, err := f.service.Edit(ctx, studentUserID, submitted.ID, &dto.SubmitLogbookRequest{Content: "final"})
	require.NoError(t, err)

	assert.Equal(t, "final", edited.Content)
	assert.Equal(t, "final", f.logbooks.logbooks[submitted.ID].Content)
}

func TestEditReviewedLogbookImmutable(t *testing.T) {
	f := newLogbookFixture(time.Now().AddDate(0, 0, -2))
	ctx := context.Background()

	approved := true
	f.logbooks.nextID = 5
	f.logbooks.logbooks[5] = &models.Logbook{
		ID:              5,
		StudentID:       studentID,
		ApplicationID:   acceptedApplicationID,
		WeekNo:          1,
		Content:         "reviewed",
		Status:          models.LogbookApproved,
		CompanyApproval: &approved,
	}

	_, err := f.service.Edit(ctx, studentUserID, 5, &dto.SubmitLogbookRequest{Content: "rewrite"})
	assert.ErrorIs(t, err, apperrors.ErrImmutable)
	assert.Equal(t, "reviewed", f.logbooks.logbooks[5].Content)
}

func TestReviewApproveNotifiesStudentAndAcademic(t *testing.T) {
	f := newLogbookFixture(time.Now().AddDate(0, 0, -2))
	ctx := context.Background()

	submitted, err := f.service.Submit(ctx, studentUserID, 1, &dto.SubmitLogbookRequest{Content: "week one"})
	require.NoError(t, err)

	reviewed, err := f.service.Review(ctx, supervisorXUserID, submitted.ID, &dto.ReviewLogbookRequest{Action: "approve"})
	require.NoError(t, err)

	assert.Equal(t, models.LogbookApproved, reviewed.Status)
	require.NotNil(t, reviewed.CompanyApproval)
	assert.True(t, *reviewed.CompanyApproval)

	assert.Len(t, f.notifications.messages[studentUserID], 1)
	assert.Len(t, f.notifications.messages[academicUserID], 1)
}

func TestReviewTwiceImmutable(t *testing.T) {
	f := newLogbookFixture(time.Now().AddDate(0, 0, -2))
	ctx := context.Background()

	submitted, err := f.service.Submit(ctx, studentUserID, 1, &dto.SubmitLogbookRequest{Content: "week one"})
	require.NoError(t, err)

	_, err = f.service.Review(ctx, supervisorXUserID, submitted.ID, &dto.ReviewLogbookRequest{Action: "reject"})
	require.NoError(t, err)

	_, err = f.service.Review(ctx, supervisorXUserID, submitted.ID, &dto.ReviewLogbookRequest{Action: "approve"})
	assert.ErrorIs(t, err, apperrors.ErrImmutable)
}
