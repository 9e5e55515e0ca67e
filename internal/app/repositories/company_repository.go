package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"internhub/internal/app/models"
	"internhub/internal/pkg/apperrors"
	"internhub/internal/pkg/dberrors"
)

// CompanyRepository handles company and department database operations
type CompanyRepository struct {
	db *pgxpool.Pool
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// CreateCompany inserts a company
func (r *CompanyRepository) CreateCompany(ctx context.Context, c *models.Company) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO companies (name, address)
		VALUES ($1, $2)
		RETURNING id`,
		c.Name, c.Address).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating company: %w", err)
	}
	return id, nil
}

// GetCompanyByID retrieves a company with its departments
func (r *CompanyRepository) GetCompanyByID(ctx context.Context, id int64) (*models.Company, error) {
	c := &models.Company{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, address FROM companies WHERE id = $1`,
		id).Scan(&c.ID, &c.Name, &c.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving company: %w", err)
	}

	departments, err := r.ListDepartments(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Departments = departments

	return c, nil
}

// ListCompanies returns all companies ordered by name
func (r *CompanyRepository) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, address FROM companies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error listing companies: %w", err)
	}
	defer rows.Close()

	var companies []*models.Company
	for rows.Next() {
		c := &models.Company{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Address); err != nil {
			return nil, fmt.Errorf("error scanning company row: %w", err)
		}
		companies = append(companies, c)
	}

	return companies, rows.Err()
}

// UpdateCompany updates company columns
func (r *CompanyRepository) UpdateCompany(ctx context.Context, c *models.Company) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE companies SET name = $1, address = $2 WHERE id = $3`,
		c.Name, c.Address, c.ID)
	if err != nil {
		return fmt.Errorf("error updating company: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// DeleteCompany deletes a company; departments and internships cascade
func (r *CompanyRepository) DeleteCompany(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting company: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// CreateDepartment adds a department under a company. The name is unique
// within that company.
func (r *CompanyRepository) CreateDepartment(ctx context.Context, d *models.Department) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO departments (company_id, name)
		VALUES ($1, $2)
		RETURNING id`,
		d.CompanyID, d.Name).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "departments_company_name_key") {
			return 0, apperrors.ErrResourceAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrResourceNotFound
		}
		return 0, fmt.Errorf("error creating department: %w", err)
	}
	return id, nil
}

// GetDepartmentByID retrieves a department
func (r *CompanyRepository) GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	d := &models.Department{}
	err := r.db.QueryRow(ctx, `
		SELECT id, company_id, name FROM departments WHERE id = $1`,
		id).Scan(&d.ID, &d.CompanyID, &d.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}
	return d, nil
}

// ListDepartments returns the departments of one company
func (r *CompanyRepository) ListDepartments(ctx context.Context, companyID int64) ([]*models.Department, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, company_id, name FROM departments WHERE company_id = $1 ORDER BY name`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("error listing departments: %w", err)
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		d := &models.Department{}
		if err := rows.Scan(&d.ID, &d.CompanyID, &d.Name); err != nil {
			return nil, fmt.Errorf("error scanning department row: %w", err)
		}
		departments = append(departments, d)
	}

	return departments, rows.Err()
}

// RenameDepartment changes a department's name
func (r *CompanyRepository) RenameDepartment(ctx context.Context, id int64, name string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE departments SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "departments_company_name_key") {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error renaming department: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// DeleteDepartment deletes a department
func (r *CompanyRepository) DeleteDepartment(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting department: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// CountCompanies returns the total number of companies
func (r *CompanyRepository) CountCompanies(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting companies: %w", err)
	}
	return n, nil
}
