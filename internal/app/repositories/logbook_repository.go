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

// LogbookRepository handles weekly logbook database operations
type LogbookRepository struct {
	db *pgxpool.Pool
}

// NewLogbookRepository creates a new LogbookRepository
func NewLogbookRepository(db *pgxpool.Pool) *LogbookRepository {
	return &LogbookRepository{db: db}
}

// CreateLogbook inserts a Pending logbook. A racing duplicate for the same
// (student, week) surfaces as ErrDuplicateWeek.
func (r *LogbookRepository) CreateLogbook(ctx context.Context, l *models.Logbook) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO logbooks (student_id, application_id, week_no, content, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		l.StudentID, l.ApplicationID, l.WeekNo, l.Content, l.Status).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "logbooks_student_week_key") {
			return 0, apperrors.ErrDuplicateWeek
		}
		return 0, fmt.Errorf("error creating logbook: %w", err)
	}
	return id, nil
}

// ExistsByStudentAndWeek checks the unique (student, week) pair
func (r *LogbookRepository) ExistsByStudentAndWeek(ctx context.Context, studentID int64, weekNo int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM logbooks WHERE student_id = $1 AND week_no = $2)`,
		studentID, weekNo).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking logbook existence: %w", err)
	}
	return exists, nil
}

const logbookColumns = `
	l.id, l.student_id, l.application_id, l.week_no, l.content, l.status,
	l.company_approval, l.company_supervisor_notes, l.academic_supervisor_notes,
	l.submitted_date, l.approved_at, l.created_at, l.updated_at`

func scanLogbook(row pgx.Row) (*models.Logbook, error) {
	l := &models.Logbook{}
	err := row.Scan(
		&l.ID, &l.StudentID, &l.ApplicationID, &l.WeekNo, &l.Content, &l.Status,
		&l.CompanyApproval, &l.CompanySupervisorNotes, &l.AcademicSupervisorNotes,
		&l.SubmittedDate, &l.ApprovedAt, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// GetLogbookByID retrieves a logbook
func (r *LogbookRepository) GetLogbookByID(ctx context.Context, id int64) (*models.Logbook, error) {
	l, err := scanLogbook(r.db.QueryRow(ctx, `
		SELECT `+logbookColumns+`
		FROM logbooks l
		WHERE l.id = $1`,
		id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving logbook: %w", err)
	}
	return l, nil
}

// ListByStudent returns a student's logbooks ordered by week
func (r *LogbookRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Logbook, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+logbookColumns+`
		FROM logbooks l
		WHERE l.student_id = $1
		ORDER BY l.week_no`,
		studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing logbooks: %w", err)
	}
	defer rows.Close()

	return collectLogbooks(rows)
}

// ListPendingBySupervisor returns the unreviewed logbooks of a supervisor's
// active interns, with the student attached.
func (r *LogbookRepository) ListPendingBySupervisor(ctx context.Context, supervisorID int64) ([]*models.Logbook, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+logbookColumns+`,
		       s.id, s.user_id, s.program, s.semester, s.academic_supervisor_id, u.username
		FROM logbooks l
		JOIN internship_placements p
		  ON p.student_id = l.student_id AND p.status = 'Active'
		JOIN students s ON s.id = l.student_id
		JOIN users u ON u.id = s.user_id
		WHERE p.company_supervisor_id = $1 AND l.status = 'Pending'
		ORDER BY l.submitted_date`,
		supervisorID)
	if err != nil {
		return nil, fmt.Errorf("error listing pending logbooks: %w", err)
	}
	defer rows.Close()

	var logbooks []*models.Logbook
	for rows.Next() {
		l := &models.Logbook{Student: &models.Student{User: &models.User{}}}
		if err := rows.Scan(
			&l.ID, &l.StudentID, &l.ApplicationID, &l.WeekNo, &l.Content, &l.Status,
			&l.CompanyApproval, &l.CompanySupervisorNotes, &l.AcademicSupervisorNotes,
			&l.SubmittedDate, &l.ApprovedAt, &l.CreatedAt, &l.UpdatedAt,
			&l.Student.ID, &l.Student.UserID, &l.Student.Program, &l.Student.Semester,
			&l.Student.AcademicSupervisorID, &l.Student.User.Username); err != nil {
			return nil, fmt.Errorf("error scanning logbook row: %w", err)
		}
		l.Student.User.ID = l.Student.UserID
		logbooks = append(logbooks, l)
	}

	return logbooks, rows.Err()
}

// UpdateContent replaces the content of a still-pending logbook
func (r *LogbookRepository) UpdateContent(ctx context.Context, id int64, content string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE logbooks
		SET content = $1, updated_at = NOW()
		WHERE id = $2`,
		content, id)
	if err != nil {
		return fmt.Errorf("error updating logbook: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// ReviewTx records the company review verdict inside the caller's
// transaction, alongside the notification fan-out.
func (r *LogbookRepository) ReviewTx(ctx context.Context, q DBTX, id int64, status models.LogbookStatus, approval bool, notes *string, at time.Time) error {
	cmdTag, err := q.Exec(ctx, `
		UPDATE logbooks
		SET status = $1, company_approval = $2, company_supervisor_notes = $3,
		    approved_at = $4, updated_at = NOW()
		WHERE id = $5`,
		status, approval, notes, at, id)
	if err != nil {
		return fmt.Errorf("error reviewing logbook: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// SetAcademicNotes attaches advisory notes without touching the status
func (r *LogbookRepository) SetAcademicNotes(ctx context.Context, id int64, notes string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE logbooks
		SET academic_supervisor_notes = $1, updated_at = NOW()
		WHERE id = $2`,
		notes, id)
	if err != nil {
		return fmt.Errorf("error setting academic notes: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// UpdateStatus force-sets the status (admin override)
func (r *LogbookRepository) UpdateStatus(ctx context.Context, id int64, status models.LogbookStatus) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE logbooks SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("error updating logbook status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// DeleteLogbook deletes a logbook (admin override)
func (r *LogbookRepository) DeleteLogbook(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM logbooks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting logbook: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// ListLogbooks returns all logbooks for the admin view
func (r *LogbookRepository) ListLogbooks(ctx context.Context, offset uint64, limit int) ([]*models.Logbook, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM logbooks`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting logbooks: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+logbookColumns+`
		FROM logbooks l
		ORDER BY l.submitted_date DESC
		OFFSET $1 LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing logbooks: %w", err)
	}
	defer rows.Close()

	logbooks, err := collectLogbooks(rows)
	return logbooks, total, err
}

// GetLatestByStudent returns the most recently submitted logbook, or
// ErrResourceNotFound when the student has none.
func (r *LogbookRepository) GetLatestByStudent(ctx context.Context, studentID int64) (*models.Logbook, error) {
	l, err := scanLogbook(r.db.QueryRow(ctx, `
		SELECT `+logbookColumns+`
		FROM logbooks l
		WHERE l.student_id = $1
		ORDER BY l.submitted_date DESC
		LIMIT 1`,
		studentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving latest logbook: %w", err)
	}
	return l, nil
}

// CountPendingBySupervisor counts unreviewed logbooks of active interns
func (r *LogbookRepository) CountPendingBySupervisor(ctx context.Context, supervisorID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM logbooks l
		JOIN internship_placements p
		  ON p.student_id = l.student_id AND p.status = 'Active'
		WHERE p.company_supervisor_id = $1 AND l.status = 'Pending'`,
		supervisorID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting pending logbooks: %w", err)
	}
	return n, nil
}

// CountLogbooksByStatus returns per-status logbook counts
func (r *LogbookRepository) CountLogbooksByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM logbooks GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("error counting logbooks: %w", err)
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

func collectLogbooks(rows pgx.Rows) ([]*models.Logbook, error) {
	var logbooks []*models.Logbook
	for rows.Next() {
		l, err := scanLogbook(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning logbook row: %w", err)
		}
		logbooks = append(logbooks, l)
	}
	return logbooks, rows.Err()
}
