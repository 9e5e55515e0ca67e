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

// UserRepository handles user and role-profile database operations
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUserTx inserts the user row inside a caller-controlled transaction.
// The role profile insert shares the same transaction so a user never exists
// without its profile.
func (r *UserRepository) CreateUserTx(ctx context.Context, q DBTX, user *models.User) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `
		INSERT INTO users (username, email, password, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		user.Username, user.Email, user.Password, user.Role, user.IsActive).Scan(&id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
			return 0, apperrors.ErrUsernameExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// CreateStudentTx inserts the student profile for a user
func (r *UserRepository) CreateStudentTx(ctx context.Context, q DBTX, s *models.Student) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `
		INSERT INTO students (user_id, program, semester, academic_supervisor_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		s.UserID, s.Program, s.Semester, s.AcademicSupervisorID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating student profile: %w", err)
	}
	return id, nil
}

// CreateAcademicSupervisorTx inserts the academic supervisor profile
func (r *UserRepository) CreateAcademicSupervisorTx(ctx context.Context, q DBTX, a *models.AcademicSupervisor) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `
		INSERT INTO academic_supervisors (user_id, faculty)
		VALUES ($1, $2)
		RETURNING id`,
		a.UserID, a.Faculty).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating academic supervisor profile: %w", err)
	}
	return id, nil
}

// CreateCompanySupervisorTx inserts the company supervisor profile
func (r *UserRepository) CreateCompanySupervisorTx(ctx context.Context, q DBTX, c *models.CompanySupervisor) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `
		INSERT INTO company_supervisors (user_id, company_id, department_id)
		VALUES ($1, $2, $3)
		RETURNING id`,
		c.UserID, c.CompanyID, c.DepartmentID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating company supervisor profile: %w", err)
	}
	return id, nil
}

// GetUserByUsername retrieves a user by login name
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, username, email, password, role, is_active, created_at, updated_at
		FROM users
		WHERE username = $1`,
		username).Scan(
		&user.ID, &user.Username, &user.Email, &user.Password,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, username, email, password, role, is_active, created_at, updated_at
		FROM users
		WHERE id = $1`,
		id).Scan(
		&user.ID, &user.Username, &user.Email, &user.Password,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// ListUsers returns users filtered by role (empty role means all), newest first
func (r *UserRepository) ListUsers(ctx context.Context, role models.Role, offset uint64, limit int) ([]*models.User, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM users WHERE ($1 = '' OR role = $1)`
	if err := r.db.QueryRow(ctx, countQuery, string(role)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting users: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, username, email, password, role, is_active, created_at, updated_at
		FROM users
		WHERE ($1 = '' OR role = $1)
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3`,
		string(role), offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.Password,
			&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}

	return users, total, rows.Err()
}

// UpdateUser updates mutable user columns
func (r *UserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE users
		SET email = $1, password = $2, is_active = $3, updated_at = NOW()
		WHERE id = $4`,
		user.Email, user.Password, user.IsActive, user.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// DeleteUser deletes a user; the schema cascades to the role profile and all
// dependent records.
func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// GetStudentByUserID retrieves a student profile by the owning user ID
func (r *UserRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	s := &models.Student{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, program, semester, academic_supervisor_id
		FROM students
		WHERE user_id = $1`,
		userID).Scan(&s.ID, &s.UserID, &s.Program, &s.Semester, &s.AcademicSupervisorID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}

	return s, nil
}

// GetStudentByID retrieves a student profile by its own ID
func (r *UserRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	s := &models.Student{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, program, semester, academic_supervisor_id
		FROM students
		WHERE id = $1`,
		id).Scan(&s.ID, &s.UserID, &s.Program, &s.Semester, &s.AcademicSupervisorID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return s, nil
}

// GetAcademicSupervisorByUserID retrieves an academic supervisor profile
func (r *UserRepository) GetAcademicSupervisorByUserID(ctx context.Context, userID int64) (*models.AcademicSupervisor, error) {
	a := &models.AcademicSupervisor{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, faculty
		FROM academic_supervisors
		WHERE user_id = $1`,
		userID).Scan(&a.ID, &a.UserID, &a.Faculty)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving academic supervisor profile: %w", err)
	}

	return a, nil
}

// GetAcademicSupervisorByID retrieves an academic supervisor by its own ID
func (r *UserRepository) GetAcademicSupervisorByID(ctx context.Context, id int64) (*models.AcademicSupervisor, error) {
	a := &models.AcademicSupervisor{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, faculty
		FROM academic_supervisors
		WHERE id = $1`,
		id).Scan(&a.ID, &a.UserID, &a.Faculty)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving academic supervisor: %w", err)
	}

	return a, nil
}

// GetCompanySupervisorByUserID retrieves a company supervisor profile
func (r *UserRepository) GetCompanySupervisorByUserID(ctx context.Context, userID int64) (*models.CompanySupervisor, error) {
	c := &models.CompanySupervisor{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, company_id, department_id
		FROM company_supervisors
		WHERE user_id = $1`,
		userID).Scan(&c.ID, &c.UserID, &c.CompanyID, &c.DepartmentID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving company supervisor profile: %w", err)
	}

	return c, nil
}

// GetCompanySupervisorByID retrieves a company supervisor by its own ID
func (r *UserRepository) GetCompanySupervisorByID(ctx context.Context, id int64) (*models.CompanySupervisor, error) {
	c := &models.CompanySupervisor{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, company_id, department_id
		FROM company_supervisors
		WHERE id = $1`,
		id).Scan(&c.ID, &c.UserID, &c.CompanyID, &c.DepartmentID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving company supervisor: %w", err)
	}

	return c, nil
}

// ListStudentsBySupervisor returns the students assigned to an academic
// supervisor, with the owning user attached.
func (r *UserRepository) ListStudentsBySupervisor(ctx context.Context, supervisorID int64) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.user_id, s.program, s.semester, s.academic_supervisor_id,
		       u.id, u.username, u.email, u.role, u.is_active, u.created_at, u.updated_at
		FROM students s
		JOIN users u ON u.id = s.user_id
		WHERE s.academic_supervisor_id = $1
		ORDER BY u.username`,
		supervisorID)
	if err != nil {
		return nil, fmt.Errorf("error listing supervised students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s := &models.Student{User: &models.User{}}
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Program, &s.Semester, &s.AcademicSupervisorID,
			&s.User.ID, &s.User.Username, &s.User.Email, &s.User.Role,
			&s.User.IsActive, &s.User.CreatedAt, &s.User.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}

	return students, rows.Err()
}

// UpdateStudentProfile updates the mutable columns of a student profile
func (r *UserRepository) UpdateStudentProfile(ctx context.Context, s *models.Student) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE students
		SET program = $1, semester = $2, academic_supervisor_id = $3
		WHERE id = $4`,
		s.Program, s.Semester, s.AcademicSupervisorID, s.ID)
	if err != nil {
		return fmt.Errorf("error updating student profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// UpdateAcademicSupervisorProfile updates the faculty column
func (r *UserRepository) UpdateAcademicSupervisorProfile(ctx context.Context, a *models.AcademicSupervisor) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE academic_supervisors SET faculty = $1 WHERE id = $2`,
		a.Faculty, a.ID)
	if err != nil {
		return fmt.Errorf("error updating academic supervisor profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// UpdateCompanySupervisorProfile updates the company/department assignment
func (r *UserRepository) UpdateCompanySupervisorProfile(ctx context.Context, c *models.CompanySupervisor) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE company_supervisors SET company_id = $1, department_id = $2 WHERE id = $3`,
		c.CompanyID, c.DepartmentID, c.ID)
	if err != nil {
		return fmt.Errorf("error updating company supervisor profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// ListSupervisorUserIDsByDepartment returns the user IDs of every company
// supervisor scoped to the given company and department. Used for
// notification fan-out on new applications.
func (r *UserRepository) ListSupervisorUserIDsByDepartment(ctx context.Context, companyID, departmentID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id
		FROM company_supervisors
		WHERE company_id = $1 AND department_id = $2`,
		companyID, departmentID)
	if err != nil {
		return nil, fmt.Errorf("error listing department supervisors: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning supervisor user id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// CountUsersByRole returns a per-role user count for the admin dashboard
func (r *UserRepository) CountUsersByRole(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, fmt.Errorf("error counting users by role: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var role string
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, fmt.Errorf("error scanning role count: %w", err)
		}
		counts[role] = n
	}

	return counts, rows.Err()
}
