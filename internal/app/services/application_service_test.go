package services

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"internhub/internal/app/models"
	"internhub/internal/app/repositories"
	"internhub/internal/db"
	"internhub/internal/pkg/apperrors"
)

// fakeTxRunner executes the callback directly; the fakes below ignore the
// transaction handle.
type fakeTxRunner struct{}

func (fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}

type fakeApplications struct {
	nextID       int64
	applications map[int64]*models.InternshipApplication
}

func newFakeApplications() *fakeApplications {
	return &fakeApplications{nextID: 1, applications: make(map[int64]*models.InternshipApplication)}
}

func (f *fakeApplications) CreateApplicationTx(_ context.Context, _ repositories.DBTX, a *models.InternshipApplication) (int64, error) {
	id := f.nextID
	f.nextID++
	stored := *a
	stored.ID = id
	f.applications[id] = &stored
	return id, nil
}

func (f *fakeApplications) ExistsByStudentAndInternship(_ context.Context, studentID, internshipID int64) (bool, error) {
	for _, a := range f.applications {
		if a.StudentID == studentID && a.InternshipID == internshipID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplications) GetApplicationByID(_ context.Context, id int64) (*models.InternshipApplication, error) {
	a, ok := f.applications[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeApplications) GetForUpdateTx(ctx context.Context, _ pgx.Tx, id int64) (*models.InternshipApplication, error) {
	return f.GetApplicationByID(ctx, id)
}

func (f *fakeApplications) SetDecisionTx(_ context.Context, _ pgx.Tx, id int64, status models.ApplicationStatus, handledByID int64) error {
	a := f.applications[id]
	a.Status = status
	a.HandledByID = &handledByID
	return nil
}

func (f *fakeApplications) SetStudentDecisionTx(_ context.Context, _ pgx.Tx, id int64, status models.ApplicationStatus, decision models.StudentDecision) error {
	a := f.applications[id]
	a.Status = status
	a.StudentDecision = decision
	return nil
}

func (f *fakeApplications) ListByStudent(_ context.Context, studentID int64) ([]*models.InternshipApplication, error) {
	var out []*models.InternshipApplication
	for _, a := range f.applications {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplications) ListByDepartment(context.Context, int64, int64, *time.Time) ([]*models.InternshipApplication, error) {
	return nil, nil
}

func (f *fakeApplications) ListApplications(context.Context, uint64, int) ([]*models.InternshipApplication, int, error) {
	return nil, 0, nil
}

func (f *fakeApplications) UpdateHandledBy(_ context.Context, id, supervisorID int64) error {
	f.applications[id].HandledByID = &supervisorID
	return nil
}

func (f *fakeApplications) DeleteApplication(_ context.Context, id int64) error {
	delete(f.applications, id)
	return nil
}

type fakePlacements struct {
	nextID     int64
	placements []*models.InternshipPlacement
}

func (f *fakePlacements) CreatePlacementTx(_ context.Context, _ repositories.DBTX, p *models.InternshipPlacement) (int64, error) {
	f.nextID++
	stored := *p
	stored.ID = f.nextID
	f.placements = append(f.placements, &stored)
	return stored.ID, nil
}

func (f *fakePlacements) ExistsForPairTx(_ context.Context, _ repositories.DBTX, studentID, internshipID int64) (bool, error) {
	for _, p := range f.placements {
		if p.StudentID == studentID && p.InternshipID == internshipID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePlacements) ExistsActiveByStudent(_ context.Context, studentID int64) (bool, error) {
	for _, p := range f.placements {
		if p.StudentID == studentID && p.Status == models.PlacementActive {
			return true, nil
		}
	}
	return false, nil
}

type fakeInternships struct {
	internships map[int64]*models.Internship
}

func (f *fakeInternships) GetInternshipByID(_ context.Context, id int64) (*models.Internship, error) {
	in, ok := f.internships[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return in, nil
}

type fakeProfiles struct {
	students          map[int64]*models.Student // keyed by user id
	supervisors       map[int64]*models.CompanySupervisor
	academics         map[int64]*models.AcademicSupervisor
	departmentUserIDs []int64
}

func (f *fakeProfiles) GetStudentByUserID(_ context.Context, userID int64) (*models.Student, error) {
	s, ok := f.students[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return s, nil
}

func (f *fakeProfiles) GetStudentByID(_ context.Context, id int64) (*models.Student, error) {
	for _, s := range f.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

func (f *fakeProfiles) GetCompanySupervisorByUserID(_ context.Context, userID int64) (*models.CompanySupervisor, error) {
	s, ok := f.supervisors[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return s, nil
}

func (f *fakeProfiles) GetCompanySupervisorByID(_ context.Context, id int64) (*models.CompanySupervisor, error) {
	for _, s := range f.supervisors {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

func (f *fakeProfiles) GetAcademicSupervisorByID(_ context.Context, id int64) (*models.AcademicSupervisor, error) {
	a, ok := f.academics[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return a, nil
}

func (f *fakeProfiles) ListSupervisorUserIDsByDepartment(context.Context, int64, int64) ([]int64, error) {
	return f.departmentUserIDs, nil
}

type fakeNotifications struct {
	messages map[int64][]string // user id -> messages
}

func newFakeNotifications() *fakeNotifications {
	return &fakeNotifications{messages: make(map[int64][]string)}
}

func (f *fakeNotifications) CreateTx(_ context.Context, _ repositories.DBTX, userID int64, message string) error {
	f.messages[userID] = append(f.messages[userID], message)
	return nil
}

func (f *fakeNotifications) CreateManyTx(ctx context.Context, q repositories.DBTX, userIDs []int64, message string) error {
	for _, id := range userIDs {
		if err := f.CreateTx(ctx, q, id, message); err != nil {
			return err
		}
	}
	return nil
}

type fakeDocuments struct {
	documents []*models.Document
}

func (f *fakeDocuments) CreateDocumentTx(_ context.Context, _ repositories.DBTX, d *models.Document) (int64, error) {
	stored := *d
	stored.ID = int64(len(f.documents) + 1)
	f.documents = append(f.documents, &stored)
	return stored.ID, nil
}

// fixture ids
const (
	studentUserID      = int64(100)
	studentID          = int64(1)
	supervisorXUserID  = int64(200)
	supervisorXID      = int64(10)
	supervisorYUserID  = int64(201)
	supervisorYID      = int64(11)
	academicID         = int64(20)
	academicUserID     = int64(300)
	openInternshipID   = int64(50)
	closedInternshipID = int64(51)
)

type applicationFixture struct {
	service       *ApplicationService
	applications  *fakeApplications
	placements    *fakePlacements
	notifications *fakeNotifications
	documents     *fakeDocuments
}

func newApplicationFixture() *applicationFixture {
	companyID := int64(1)
	departmentID := int64(2)
	otherDepartmentID := int64(3)
	academicRef := academicID

	applications := newFakeApplications()
	placements := &fakePlacements{}
	notifications := newFakeNotifications()
	documents := &fakeDocuments{}

	internships := &fakeInternships{internships: map[int64]*models.Internship{
		openInternshipID: {
			ID:           openInternshipID,
			CompanyID:    companyID,
			DepartmentID: departmentID,
			Title:        "Backend Internship",
			Status:       models.InternshipOpen,
			StartDate:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
		},
		closedInternshipID: {
			ID:           closedInternshipID,
			CompanyID:    companyID,
			DepartmentID: departmentID,
			Title:        "Closed Internship",
			Status:       models.InternshipClosed,
		},
	}}

	profiles := &fakeProfiles{
		students: map[int64]*models.Student{
			studentUserID: {ID: studentID, UserID: studentUserID, AcademicSupervisorID: &academicRef},
		},
		supervisors: map[int64]*models.CompanySupervisor{
			supervisorXUserID: {ID: supervisorXID, UserID: supervisorXUserID, CompanyID: &companyID, DepartmentID: &departmentID},
			supervisorYUserID: {ID: supervisorYID, UserID: supervisorYUserID, CompanyID: &companyID, DepartmentID: &otherDepartmentID},
		},
		academics: map[int64]*models.AcademicSupervisor{
			academicID: {ID: academicID, UserID: academicUserID},
		},
		departmentUserIDs: []int64{supervisorXUserID},
	}

	service := NewApplicationService(
		fakeTxRunner{},
		applications,
		placements,
		internships,
		profiles,
		notifications,
		documents,
		zerolog.Nop(),
	)

	return &applicationFixture{
		service:       service,
		applications:  applications,
		placements:    placements,
		notifications: notifications,
		documents:     documents,
	}
}

func TestSubmitCreatesApplicationAndNotifiesDepartment(t *testing.T) {
	f := newApplicationFixture()
	ctx := context.Background()

	app, err := f.service.Submit(ctx, studentUserID, openInternshipID, "uploads/resumes/cv.pdf", "cv.pdf")
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationPending, app.Status)
	assert.Equal(t, models.DecisionPending, app.StudentDecision)
	assert.Equal(t, studentID, app.StudentID)

	require.Len(t, f.documents.documents, 1)
	assert.Equal(t, models.DocTypeResume, f.documents.documents[0].DocType)

	assert.Len(t, f.notifications.messages[supervisorXUserID], 1)
}

func TestSubmitRejectsDuplicateApplication(t *testing.T) {
	f := newApplicationFixture()
	ctx := context.Background()

	_, err := f.service.Submit(ctx, studentUserID, openInternshipID, "", "")
	require.NoError(t, err)

	_, err = f.service.Submit(ctx, studentUserID, openInternshipID, "", "")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateApplication)
}

func TestSubmitRejectsClosedInternship(t *testing.T) {
	f := newApplicationFixture()

	_, err := f.service.Submit(context.Background(), studentUserID, closedInternshipID, "", "")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestSubmitRejectsActivelyPlacedStudent(t *testing.T) {
	f := newApplicationFixture()
	f.placements.placements = append(f.placements.placements, &models.InternshipPlacement{
		StudentID:    studentID,
		InternshipID: int64(99),
		Status:       models.PlacementActive,
	})

	_, err := f.service.Submit(context.Background(), studentUserID, openInternshipID, "", "")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyPlaced)
}

func TestDecideOfferSetsHandledBy(t *testing.T) {
	f := newApplicationFixture()
	ctx := context.Background()

	app, err := f.service.Submit(ctx, studentUserID, openInternshipID, "", "")
	require.NoError(t, err)

	decided, alreadyHandled, err := f.service.Decide(ctx, supervisorXUserID, app.ID, "offer")
	require.NoError(t, err)
	assert.False(t, alreadyHandled)
	assert.Equal(t, models.ApplicationOffered, decided.Status)
	require.NotNil(t, decided.HandledByID)
	assert.Equal(t, supervisorXID, *decided.HandledByID)

	// The student learns about the offer
	assert.NotEmpty(t, f.notifications.messages[studentUserID])
}

func TestDecideSecondDeciderIsNoOp(t *testing.T) {
	f := newApplicationFixture()
	ctx := context.Background()

	app, err := f.service.Submit(ctx, studentUserID, openInternshipID, "", "")
	require.NoError(t, err)

	_, _, err = f.service.Decide(ctx, supervisorXUserID, app.ID, "offer")
	require.NoError(t, err)

	// A second decision on the handled application must not change anything;
	// the handled check fires before any write and the current state comes
	// back untouched.
	current, alreadyHandled, err := f.service.Decide(ctx, supervisorXUserID, app.ID, "reject")
	require.NoError(t, err)
	assert.True(t, alreadyHandled)
	assert.Equal(t, models.ApplicationOffered, current.Status)
	require.NotNil(t, current.HandledByID)
	assert.Equal(t, supervisorXID, *current.HandledByID)
}

func TestDecideOutsideDepartmentForbidden(t *testing.T) {
	f := newApplicationFixture()
	ctx := context.Background()

	app, err := f.service.Submit(ctx, studentUserID, openInternshipID, "", "")
	require.NoError(t, err)

	_, _, err = f.service.Decide(ctx, supervisorYUserID, app.ID, "offer")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestDecideRejectsUnknownDecision(t *testing.T) {
	f := newApplicationFixture()
	ctx := context.Background()

	app, err := f.service.Submit(ctx, studentUserID, openInternshipID, "", "")
	require.NoError(t, err)

	_, _, err = f.service.Decide(ctx, supervisorXUserID, app.ID, "maybe")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestAcceptOfferCreatesExactlyOnePlacement(t *testing.T) {
	f := newApplicationFixture()
	ctx := context.Background()

	app, err := f.service.Submit(ctx, studentUserID, openInternshipID, "", "")
	require.NoError(t, err)
	_, _, err = f.service.Decide(ctx, supervisorXUserID, app.ID, "offer")
	require.NoError(t, err)

	accepted, err := f.service.StudentRespond(ctx, studentUserID, app.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationAccepted, accepted.Status)
	assert.Equal(t, models.DecisionAccepted, accepted.StudentDecision)

	require.Len(t, f.placements.placements, 1)
	placement := f.placements.placements[0]
	assert.Equal(t, studentID, placement.StudentID)
	assert.Equal(t, openInternshipID, placement.InternshipID)
	assert.Equal(t, supervisorXID, placement.CompanySupervisorID)
	assert.Equal(t, models.PlacementActive, placement.Status)

	// Student, handling supervisor and academic supervisor are all notified
	assert.NotEmpty(t, f.notifications.messages[studentUserID])
	assert.NotEmpty(t, f.notifications.messages[supervisorXUserID])
	assert.NotEmpty(t, f.notifications.messages[academicUserID])

	// A repeated accept is a no-op and never creates a second placement
	_, err = f.service.StudentRespond(ctx, studentUserID, app.ID, true)
	require.NoError(t, err)
	assert.Len(t, f.placements.placements, 1)
}

func TestRejectOfferCreatesNoPlacement(t *testing.T) {
	f := newApplicationFixture()
	ctx := context.Background()

	app, err := f.service.Submit(ctx, studentUserID, openInternshipID, "", "")
	require.NoError(t, err)
	_, _, err = f.service.Decide(ctx, supervisorXUserID, app.ID, "offer")
	require.NoError(t, err)

	rejected, err := f.service.StudentRespond(ctx, studentUserID, app.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationRejected, rejected.Status)
	assert.Equal(t, models.DecisionRejected, rejected.StudentDecision)
	assert.Empty(t, f.placements.placements)
}

func TestStudentRespondWithoutOffer(t *testing.T) {
	f := newApplicationFixture()
	ctx := context.Background()

	app, err := f.service.Submit(ctx, studentUserID, openInternshipID, "", "")
	require.NoError(t, err)

	_, err = f.service.StudentRespond(ctx, studentUserID, app.ID, true)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestDeleteApplicationBlockedByPlacement(t *testing.T) {
	f := newApplicationFixture()
	ctx := context.Background()

	app, err := f.service.Submit(ctx, studentUserID, openInternshipID, "", "")
	require.NoError(t, err)
	_, _, err = f.service.Decide(ctx, supervisorXUserID, app.ID, "offer")
	require.NoError(t, err)
	_, err = f.service.StudentRespond(ctx, studentUserID, app.ID, true)
	require.NoError(t, err)

	err = f.service.DeleteApplication(ctx, app.ID)
	assert.ErrorIs(t, err, apperrors.ErrImmutable)
}

func TestReplaceSupervisorBlockedByPlacement(t *testing.T) {
	f := newApplicationFixture()
	ctx := context.Background()

	app, err := f.service.Submit(ctx, studentUserID, openInternshipID, "", "")
	require.NoError(t, err)
	_, _, err = f.service.Decide(ctx, supervisorXUserID, app.ID, "offer")
	require.NoError(t, err)
	_, err = f.service.StudentRespond(ctx, studentUserID, app.ID, true)
	require.NoError(t, err)

	err = f.service.ReplaceSupervisor(ctx, app.ID, supervisorYID)
	assert.ErrorIs(t, err, apperrors.ErrImmutable)
}
