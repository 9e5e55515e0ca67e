package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"internhub/internal/app/models"
	"internhub/internal/app/models/dto"
	"internhub/internal/pkg/apperrors"
)

// InternshipRepository handles internship posting database operations
type InternshipRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInternshipRepository creates a new InternshipRepository
func NewInternshipRepository(db *pgxpool.Pool) *InternshipRepository {
	return &InternshipRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateInternship inserts a posting
func (r *InternshipRepository) CreateInternship(ctx context.Context, in *models.Internship) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO internships (company_id, department_id, title, description, requirements,
		                         location, start_date, end_date, total_slots, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		in.CompanyID, in.DepartmentID, in.Title, in.Description, in.Requirements,
		in.Location, in.StartDate, in.EndDate, in.TotalSlots, in.Status).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating internship: %w", err)
	}
	return id, nil
}

const internshipColumns = `
	i.id, i.company_id, i.department_id, i.title, i.description, i.requirements,
	i.location, i.start_date, i.end_date, i.total_slots, i.status, i.created_at, i.updated_at,
	c.id, c.name, c.address,
	d.id, d.company_id, d.name`

func scanInternship(row pgx.Row) (*models.Internship, error) {
	in := &models.Internship{Company: &models.Company{}, Department: &models.Department{}}
	err := row.Scan(
		&in.ID, &in.CompanyID, &in.DepartmentID, &in.Title, &in.Description, &in.Requirements,
		&in.Location, &in.StartDate, &in.EndDate, &in.TotalSlots, &in.Status, &in.CreatedAt, &in.UpdatedAt,
		&in.Company.ID, &in.Company.Name, &in.Company.Address,
		&in.Department.ID, &in.Department.CompanyID, &in.Department.Name)
	if err != nil {
		return nil, err
	}
	return in, nil
}

// GetInternshipByID retrieves a posting with company and department attached
func (r *InternshipRepository) GetInternshipByID(ctx context.Context, id int64) (*models.Internship, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+internshipColumns+`
		FROM internships i
		JOIN companies c ON c.id = i.company_id
		JOIN departments d ON d.id = i.department_id
		WHERE i.id = $1`,
		id)

	in, err := scanInternship(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving internship: %w", err)
	}

	return in, nil
}

// ListOpenForStudent returns open postings matching the student-facing
// filters, with a hasApplied flag computed against the given student.
func (r *InternshipRepository) ListOpenForStudent(ctx context.Context, studentID int64, filter dto.InternshipListFilter) ([]*models.Internship, error) {
	builder := r.sb.Select(
		"i.id", "i.company_id", "i.department_id", "i.title", "i.description", "i.requirements",
		"i.location", "i.start_date", "i.end_date", "i.total_slots", "i.status", "i.created_at", "i.updated_at",
		"c.id", "c.name", "c.address",
		"d.id", "d.company_id", "d.name").
		Column(squirrel.Expr(
			"EXISTS(SELECT 1 FROM internship_applications a WHERE a.internship_id = i.id AND a.student_id = ?) AS has_applied",
			studentID)).
		From("internships i").
		Join("companies c ON c.id = i.company_id").
		Join("departments d ON d.id = i.department_id").
		Where(squirrel.Eq{"i.status": models.InternshipOpen})

	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"i.title": like},
			squirrel.ILike{"i.description": like},
			squirrel.ILike{"c.name": like},
		})
	}
	if filter.Location != "" {
		builder = builder.Where(squirrel.ILike{"i.location": "%" + filter.Location + "%"})
	}

	switch filter.Sort {
	case "oldest":
		builder = builder.OrderBy("i.created_at ASC")
	case "start_date":
		builder = builder.OrderBy("i.start_date ASC")
	default:
		builder = builder.OrderBy("i.created_at DESC")
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build internship list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing internships: %w", err)
	}
	defer rows.Close()

	var internships []*models.Internship
	for rows.Next() {
		in := &models.Internship{Company: &models.Company{}, Department: &models.Department{}}
		if err := rows.Scan(
			&in.ID, &in.CompanyID, &in.DepartmentID, &in.Title, &in.Description, &in.Requirements,
			&in.Location, &in.StartDate, &in.EndDate, &in.TotalSlots, &in.Status, &in.CreatedAt, &in.UpdatedAt,
			&in.Company.ID, &in.Company.Name, &in.Company.Address,
			&in.Department.ID, &in.Department.CompanyID, &in.Department.Name,
			&in.HasApplied); err != nil {
			return nil, fmt.Errorf("error scanning internship row: %w", err)
		}
		internships = append(internships, in)
	}

	return internships, rows.Err()
}

// ListInternships returns all postings for the admin view, newest first
func (r *InternshipRepository) ListInternships(ctx context.Context, offset uint64, limit int) ([]*models.Internship, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM internships`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting internships: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+internshipColumns+`
		FROM internships i
		JOIN companies c ON c.id = i.company_id
		JOIN departments d ON d.id = i.department_id
		ORDER BY i.created_at DESC
		OFFSET $1 LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing internships: %w", err)
	}
	defer rows.Close()

	var internships []*models.Internship
	for rows.Next() {
		in := &models.Internship{Company: &models.Company{}, Department: &models.Department{}}
		if err := rows.Scan(
			&in.ID, &in.CompanyID, &in.DepartmentID, &in.Title, &in.Description, &in.Requirements,
			&in.Location, &in.StartDate, &in.EndDate, &in.TotalSlots, &in.Status, &in.CreatedAt, &in.UpdatedAt,
			&in.Company.ID, &in.Company.Name, &in.Company.Address,
			&in.Department.ID, &in.Department.CompanyID, &in.Department.Name); err != nil {
			return nil, 0, fmt.Errorf("error scanning internship row: %w", err)
		}
		internships = append(internships, in)
	}

	return internships, total, rows.Err()
}

// UpdateInternship updates posting columns
func (r *InternshipRepository) UpdateInternship(ctx context.Context, in *models.Internship) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE internships
		SET title = $1, description = $2, requirements = $3, location = $4,
		    start_date = $5, end_date = $6, total_slots = $7, status = $8, updated_at = NOW()
		WHERE id = $9`,
		in.Title, in.Description, in.Requirements, in.Location,
		in.StartDate, in.EndDate, in.TotalSlots, in.Status, in.ID)
	if err != nil {
		return fmt.Errorf("error updating internship: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// DeleteInternship deletes a posting; applications and placements cascade
func (r *InternshipRepository) DeleteInternship(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM internships WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting internship: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// CountInternshipsByStatus returns per-status posting counts
func (r *InternshipRepository) CountInternshipsByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM internships GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("error counting internships: %w", err)
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
