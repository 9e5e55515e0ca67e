package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"internhub/internal/app/models"
	"internhub/internal/pkg/apperrors"
	"internhub/internal/pkg/dberrors"
)

// ApplicationRepository handles internship application database operations
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// CreateApplicationTx inserts a Pending application. A racing duplicate for
// the same (student, internship) pair surfaces as ErrDuplicateApplication.
func (r *ApplicationRepository) CreateApplicationTx(ctx context.Context, q DBTX, a *models.InternshipApplication) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `
		INSERT INTO internship_applications (student_id, internship_id, status, student_decision)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		a.StudentID, a.InternshipID, a.Status, a.StudentDecision).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "applications_student_internship_key") {
			return 0, apperrors.ErrDuplicateApplication
		}
		return 0, fmt.Errorf("error creating application: %w", err)
	}
	return id, nil
}

// ExistsByStudentAndInternship checks the unique (student, internship) pair
func (r *ApplicationRepository) ExistsByStudentAndInternship(ctx context.Context, studentID, internshipID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM internship_applications WHERE student_id = $1 AND internship_id = $2)`,
		studentID, internshipID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking application existence: %w", err)
	}
	return exists, nil
}

const applicationColumns = `
	a.id, a.student_id, a.internship_id, a.status, a.student_decision,
	a.handled_by_id, a.applied_date, a.created_at, a.updated_at`

func scanApplication(row pgx.Row) (*models.InternshipApplication, error) {
	a := &models.InternshipApplication{}
	err := row.Scan(
		&a.ID, &a.StudentID, &a.InternshipID, &a.Status, &a.StudentDecision,
		&a.HandledByID, &a.AppliedDate, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetApplicationByID retrieves an application with student and internship
// context attached.
func (r *ApplicationRepository) GetApplicationByID(ctx context.Context, id int64) (*models.InternshipApplication, error) {
	a := &models.InternshipApplication{
		Student:    &models.Student{User: &models.User{}},
		Internship: &models.Internship{Company: &models.Company{}},
	}
	err := r.db.QueryRow(ctx, `
		SELECT `+applicationColumns+`,
		       s.id, s.user_id, s.program, s.semester, s.academic_supervisor_id,
		       u.username, u.email,
		       i.id, i.company_id, i.department_id, i.title, i.location, i.start_date, i.end_date, i.status,
		       c.name
		FROM internship_applications a
		JOIN students s ON s.id = a.student_id
		JOIN users u ON u.id = s.user_id
		JOIN internships i ON i.id = a.internship_id
		JOIN companies c ON c.id = i.company_id
		WHERE a.id = $1`,
		id).Scan(
		&a.ID, &a.StudentID, &a.InternshipID, &a.Status, &a.StudentDecision,
		&a.HandledByID, &a.AppliedDate, &a.CreatedAt, &a.UpdatedAt,
		&a.Student.ID, &a.Student.UserID, &a.Student.Program, &a.Student.Semester, &a.Student.AcademicSupervisorID,
		&a.Student.User.Username, &a.Student.User.Email,
		&a.Internship.ID, &a.Internship.CompanyID, &a.Internship.DepartmentID, &a.Internship.Title,
		&a.Internship.Location, &a.Internship.StartDate, &a.Internship.EndDate, &a.Internship.Status,
		&a.Internship.Company.Name)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}
	a.Student.User.ID = a.Student.UserID
	a.Internship.Company.ID = a.Internship.CompanyID

	return a, nil
}

// GetAcceptedByPair returns the accepted application backing the
// (student, internship) placement.
func (r *ApplicationRepository) GetAcceptedByPair(ctx context.Context, studentID, internshipID int64) (*models.InternshipApplication, error) {
	a, err := scanApplication(r.db.QueryRow(ctx, `
		SELECT `+applicationColumns+`
		FROM internship_applications a
		WHERE a.student_id = $1 AND a.internship_id = $2 AND a.status = 'Accepted'`,
		studentID, internshipID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving accepted application: %w", err)
	}
	return a, nil
}

// GetForUpdateTx row-locks an application inside the caller's transaction.
// Two concurrent deciders serialize here; the loser observes handled_by
// already set after the winner commits.
func (r *ApplicationRepository) GetForUpdateTx(ctx context.Context, tx pgx.Tx, id int64) (*models.InternshipApplication, error) {
	a, err := scanApplication(tx.QueryRow(ctx, `
		SELECT `+applicationColumns+`
		FROM internship_applications a
		WHERE a.id = $1
		FOR UPDATE`,
		id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error locking application: %w", err)
	}
	return a, nil
}

// SetDecisionTx records the supervisor decision on a locked application
func (r *ApplicationRepository) SetDecisionTx(ctx context.Context, tx pgx.Tx, id int64, status models.ApplicationStatus, handledByID int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE internship_applications
		SET status = $1, handled_by_id = $2, updated_at = NOW()
		WHERE id = $3`,
		status, handledByID, id)
	if err != nil {
		return fmt.Errorf("error recording decision: %w", err)
	}
	return nil
}

// SetStudentDecisionTx records the student's response to an offer
func (r *ApplicationRepository) SetStudentDecisionTx(ctx context.Context, tx pgx.Tx, id int64, status models.ApplicationStatus, decision models.StudentDecision) error {
	_, err := tx.Exec(ctx, `
		UPDATE internship_applications
		SET status = $1, student_decision = $2, updated_at = NOW()
		WHERE id = $3`,
		status, decision, id)
	if err != nil {
		return fmt.Errorf("error recording student decision: %w", err)
	}
	return nil
}

// ListByStudent returns a student's applications, newest first
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.InternshipApplication, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+applicationColumns+`,
		       i.id, i.company_id, i.department_id, i.title, i.location, i.start_date, i.end_date, i.status,
		       c.name
		FROM internship_applications a
		JOIN internships i ON i.id = a.internship_id
		JOIN companies c ON c.id = i.company_id
		WHERE a.student_id = $1
		ORDER BY a.applied_date DESC`,
		studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing student applications: %w", err)
	}
	defer rows.Close()

	var apps []*models.InternshipApplication
	for rows.Next() {
		a := &models.InternshipApplication{Internship: &models.Internship{Company: &models.Company{}}}
		if err := rows.Scan(
			&a.ID, &a.StudentID, &a.InternshipID, &a.Status, &a.StudentDecision,
			&a.HandledByID, &a.AppliedDate, &a.CreatedAt, &a.UpdatedAt,
			&a.Internship.ID, &a.Internship.CompanyID, &a.Internship.DepartmentID, &a.Internship.Title,
			&a.Internship.Location, &a.Internship.StartDate, &a.Internship.EndDate, &a.Internship.Status,
			&a.Internship.Company.Name); err != nil {
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		a.Internship.Company.ID = a.Internship.CompanyID
		apps = append(apps, a)
	}

	return apps, rows.Err()
}

// ListByDepartment returns applications for internships in one
// company+department scope. A non-nil since bounds applied_date; callers
// pass nil to disable the window.
func (r *ApplicationRepository) ListByDepartment(ctx context.Context, companyID, departmentID int64, since *time.Time) ([]*models.InternshipApplication, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+applicationColumns+`,
		       s.id, s.user_id, s.program, s.semester, s.academic_supervisor_id,
		       u.username, u.email,
		       i.id, i.company_id, i.department_id, i.title, i.location, i.start_date, i.end_date, i.status
		FROM internship_applications a
		JOIN students s ON s.id = a.student_id
		JOIN users u ON u.id = s.user_id
		JOIN internships i ON i.id = a.internship_id
		WHERE i.company_id = $1 AND i.department_id = $2
		  AND ($3::timestamptz IS NULL OR a.applied_date >= $3)
		ORDER BY a.applied_date DESC`,
		companyID, departmentID, since)
	if err != nil {
		return nil, fmt.Errorf("error listing department applications: %w", err)
	}
	defer rows.Close()

	var apps []*models.InternshipApplication
	for rows.Next() {
		a := &models.InternshipApplication{
			Student:    &models.Student{User: &models.User{}},
			Internship: &models.Internship{},
		}
		if err := rows.Scan(
			&a.ID, &a.StudentID, &a.InternshipID, &a.Status, &a.StudentDecision,
			&a.HandledByID, &a.AppliedDate, &a.CreatedAt, &a.UpdatedAt,
			&a.Student.ID, &a.Student.UserID, &a.Student.Program, &a.Student.Semester, &a.Student.AcademicSupervisorID,
			&a.Student.User.Username, &a.Student.User.Email,
			&a.Internship.ID, &a.Internship.CompanyID, &a.Internship.DepartmentID, &a.Internship.Title,
			&a.Internship.Location, &a.Internship.StartDate, &a.Internship.EndDate, &a.Internship.Status); err != nil {
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		a.Student.User.ID = a.Student.UserID
		apps = append(apps, a)
	}

	return apps, rows.Err()
}

// ListApplications returns all applications for the admin view, newest first
func (r *ApplicationRepository) ListApplications(ctx context.Context, offset uint64, limit int) ([]*models.InternshipApplication, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM internship_applications`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting applications: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+applicationColumns+`
		FROM internship_applications a
		ORDER BY a.applied_date DESC
		OFFSET $1 LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	var apps []*models.InternshipApplication
	for rows.Next() {
		a := &models.InternshipApplication{}
		if err := rows.Scan(
			&a.ID, &a.StudentID, &a.InternshipID, &a.Status, &a.StudentDecision,
			&a.HandledByID, &a.AppliedDate, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("error scanning application row: %w", err)
		}
		apps = append(apps, a)
	}

	return apps, total, rows.Err()
}

// UpdateHandledBy reassigns the handling supervisor (admin override)
func (r *ApplicationRepository) UpdateHandledBy(ctx context.Context, id, supervisorID int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE internship_applications
		SET handled_by_id = $1, updated_at = NOW()
		WHERE id = $2`,
		supervisorID, id)
	if err != nil {
		return fmt.Errorf("error reassigning supervisor: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// DeleteApplication deletes an application
func (r *ApplicationRepository) DeleteApplication(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM internship_applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting application: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// CountApplicationsByStatus returns per-status counts
func (r *ApplicationRepository) CountApplicationsByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM internship_applications GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("error counting applications: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("error scanning status count: %w", err)
		}
		counts[status] = n
	}

	return counts, rows.Err()
}

// CountByStudent returns (total, pending) application counts for a student
func (r *ApplicationRepository) CountByStudent(ctx context.Context, studentID int64) (total, pending int, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'Pending')
		FROM internship_applications
		WHERE student_id = $1`,
		studentID).Scan(&total, &pending)
	if err != nil {
		return 0, 0, fmt.Errorf("error counting student applications: %w", err)
	}
	return total, pending, nil
}

// CountPendingByDepartment counts undecided applications in a department
func (r *ApplicationRepository) CountPendingByDepartment(ctx context.Context, companyID, departmentID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM internship_applications a
		JOIN internships i ON i.id = a.internship_id
		WHERE i.company_id = $1 AND i.department_id = $2 AND a.status = 'Pending'`,
		companyID, departmentID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting pending applications: %w", err)
	}
	return n, nil
}
