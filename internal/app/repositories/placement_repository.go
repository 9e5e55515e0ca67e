package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"internhub/internal/app/models"
	"internhub/internal/pkg/apperrors"
)

// PlacementRepository handles internship placement database operations
type PlacementRepository struct {
	db *pgxpool.Pool
}

// NewPlacementRepository creates a new PlacementRepository
func NewPlacementRepository(db *pgxpool.Pool) *PlacementRepository {
	return &PlacementRepository{db: db}
}

// CreatePlacementTx inserts an Active placement inside the caller's
// transaction, alongside the student's offer acceptance.
func (r *PlacementRepository) CreatePlacementTx(ctx context.Context, q DBTX, p *models.InternshipPlacement) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `
		INSERT INTO internship_placements (internship_id, student_id, company_supervisor_id, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		p.InternshipID, p.StudentID, p.CompanySupervisorID, p.StartDate, p.EndDate, p.Status).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating placement: %w", err)
	}
	return id, nil
}

// ExistsForPairTx checks, inside the caller's transaction, whether a
// placement already exists for the (student, internship) pair. Guards the
// accept path against creating a second placement. A nil q falls back to
// the pool for callers outside a transaction.
func (r *PlacementRepository) ExistsForPairTx(ctx context.Context, q DBTX, studentID, internshipID int64) (bool, error) {
	if q == nil {
		q = r.db
	}
	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM internship_placements WHERE student_id = $1 AND internship_id = $2)`,
		studentID, internshipID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking placement existence: %w", err)
	}
	return exists, nil
}

// ExistsActiveByStudent reports whether the student holds an Active placement
func (r *PlacementRepository) ExistsActiveByStudent(ctx context.Context, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM internship_placements WHERE student_id = $1 AND status = 'Active')`,
		studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking active placement: %w", err)
	}
	return exists, nil
}

const placementColumns = `
	p.id, p.internship_id, p.student_id, p.company_supervisor_id,
	p.start_date, p.end_date, p.status, p.assigned_date, p.updated_at`

func scanPlacement(row pgx.Row) (*models.InternshipPlacement, error) {
	p := &models.InternshipPlacement{}
	err := row.Scan(
		&p.ID, &p.InternshipID, &p.StudentID, &p.CompanySupervisorID,
		&p.StartDate, &p.EndDate, &p.Status, &p.AssignedDate, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetPlacementByID retrieves a placement
func (r *PlacementRepository) GetPlacementByID(ctx context.Context, id int64) (*models.InternshipPlacement, error) {
	p, err := scanPlacement(r.db.QueryRow(ctx, `
		SELECT `+placementColumns+`
		FROM internship_placements p
		WHERE p.id = $1`,
		id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving placement: %w", err)
	}
	return p, nil
}

// GetActiveByStudent returns the student's Active placement with the
// internship attached, or ErrResourceNotFound when none exists.
func (r *PlacementRepository) GetActiveByStudent(ctx context.Context, studentID int64) (*models.InternshipPlacement, error) {
	p := &models.InternshipPlacement{Internship: &models.Internship{Company: &models.Company{}}}
	err := r.db.QueryRow(ctx, `
		SELECT `+placementColumns+`,
		       i.title, i.location, c.name
		FROM internship_placements p
		JOIN internships i ON i.id = p.internship_id
		JOIN companies c ON c.id = i.company_id
		WHERE p.student_id = $1 AND p.status = 'Active'
		ORDER BY p.assigned_date DESC
		LIMIT 1`,
		studentID).Scan(
		&p.ID, &p.InternshipID, &p.StudentID, &p.CompanySupervisorID,
		&p.StartDate, &p.EndDate, &p.Status, &p.AssignedDate, &p.UpdatedAt,
		&p.Internship.Title, &p.Internship.Location, &p.Internship.Company.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving active placement: %w", err)
	}
	p.Internship.ID = p.InternshipID

	return p, nil
}

// ListActiveBySupervisor returns a supervisor's Active placements with the
// student and internship attached.
func (r *PlacementRepository) ListActiveBySupervisor(ctx context.Context, supervisorID int64) ([]*models.InternshipPlacement, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+placementColumns+`,
		       s.id, s.user_id, s.program, s.semester, s.academic_supervisor_id,
		       u.username, i.title
		FROM internship_placements p
		JOIN students s ON s.id = p.student_id
		JOIN users u ON u.id = s.user_id
		JOIN internships i ON i.id = p.internship_id
		WHERE p.company_supervisor_id = $1 AND p.status = 'Active'
		ORDER BY u.username`,
		supervisorID)
	if err != nil {
		return nil, fmt.Errorf("error listing supervisor placements: %w", err)
	}
	defer rows.Close()

	var placements []*models.InternshipPlacement
	for rows.Next() {
		p := &models.InternshipPlacement{
			Student:    &models.Student{User: &models.User{}},
			Internship: &models.Internship{},
		}
		if err := rows.Scan(
			&p.ID, &p.InternshipID, &p.StudentID, &p.CompanySupervisorID,
			&p.StartDate, &p.EndDate, &p.Status, &p.AssignedDate, &p.UpdatedAt,
			&p.Student.ID, &p.Student.UserID, &p.Student.Program, &p.Student.Semester, &p.Student.AcademicSupervisorID,
			&p.Student.User.Username, &p.Internship.Title); err != nil {
			return nil, fmt.Errorf("error scanning placement row: %w", err)
		}
		p.Student.User.ID = p.Student.UserID
		p.Internship.ID = p.InternshipID
		placements = append(placements, p)
	}

	return placements, rows.Err()
}

// ListPlacements returns all placements for the admin view
func (r *PlacementRepository) ListPlacements(ctx context.Context, offset uint64, limit int) ([]*models.InternshipPlacement, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM internship_placements`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting placements: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+placementColumns+`
		FROM internship_placements p
		ORDER BY p.assigned_date DESC
		OFFSET $1 LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing placements: %w", err)
	}
	defer rows.Close()

	var placements []*models.InternshipPlacement
	for rows.Next() {
		p := &models.InternshipPlacement{}
		if err := rows.Scan(
			&p.ID, &p.InternshipID, &p.StudentID, &p.CompanySupervisorID,
			&p.StartDate, &p.EndDate, &p.Status, &p.AssignedDate, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("error scanning placement row: %w", err)
		}
		placements = append(placements, p)
	}

	return placements, total, rows.Err()
}

// UpdatePlacement updates placement dates and status (admin override)
func (r *PlacementRepository) UpdatePlacement(ctx context.Context, p *models.InternshipPlacement) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE internship_placements
		SET start_date = $1, end_date = $2, status = $3, updated_at = NOW()
		WHERE id = $4`,
		p.StartDate, p.EndDate, p.Status, p.ID)
	if err != nil {
		return fmt.Errorf("error updating placement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// DeletePlacement deletes a placement; attendance cascades
func (r *PlacementRepository) DeletePlacement(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM internship_placements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting placement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// CountActiveBySupervisor counts a supervisor's active interns
func (r *PlacementRepository) CountActiveBySupervisor(ctx context.Context, supervisorID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM internship_placements
		WHERE company_supervisor_id = $1 AND status = 'Active'`,
		supervisorID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting active placements: %w", err)
	}
	return n, nil
}

// CountPlacementsByStatus returns per-status placement counts
func (r *PlacementRepository) CountPlacementsByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM internship_placements GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("error counting placements: %w", err)
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
