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

// EvaluationRepository handles performance evaluation database operations
type EvaluationRepository struct {
	db *pgxpool.Pool
}

// NewEvaluationRepository creates a new EvaluationRepository
func NewEvaluationRepository(db *pgxpool.Pool) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

const evaluationColumns = `
	e.id, e.student_id, e.company_supervisor_id, e.academic_supervisor_id, e.application_id,
	e.company_score, e.company_answers, e.company_comment, e.company_submitted_at,
	e.academic_score, e.academic_answers, e.academic_comment, e.academic_submitted_at,
	e.created_at, e.updated_at`

func scanEvaluation(row pgx.Row) (*models.PerformanceEvaluation, error) {
	e := &models.PerformanceEvaluation{}
	err := row.Scan(
		&e.ID, &e.StudentID, &e.CompanySupervisorID, &e.AcademicSupervisorID, &e.ApplicationID,
		&e.CompanyScore, &e.CompanyAnswers, &e.CompanyComment, &e.CompanySubmittedAt,
		&e.AcademicScore, &e.AcademicAnswers, &e.AcademicComment, &e.AcademicSubmittedAt,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetOrCreate fetches the evaluation row for the placement context, creating
// it lazily on first access. A racing insert for the same tuple falls back
// to the winner's row.
func (r *EvaluationRepository) GetOrCreate(ctx context.Context, studentID, companySupervisorID, academicSupervisorID, applicationID int64) (*models.PerformanceEvaluation, error) {
	e, err := r.getByContext(ctx, studentID, companySupervisorID, academicSupervisorID, applicationID)
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO performance_evaluations (student_id, company_supervisor_id, academic_supervisor_id, application_id)
		VALUES ($1, $2, $3, $4)`,
		studentID, companySupervisorID, academicSupervisorID, applicationID)
	if err != nil && !dberrors.IsDuplicateConstraintError(err, "evaluations_context_key") {
		return nil, fmt.Errorf("error creating evaluation: %w", err)
	}

	return r.getByContext(ctx, studentID, companySupervisorID, academicSupervisorID, applicationID)
}

func (r *EvaluationRepository) getByContext(ctx context.Context, studentID, companySupervisorID, academicSupervisorID, applicationID int64) (*models.PerformanceEvaluation, error) {
	e, err := scanEvaluation(r.db.QueryRow(ctx, `
		SELECT `+evaluationColumns+`
		FROM performance_evaluations e
		WHERE e.student_id = $1 AND e.company_supervisor_id = $2
		  AND e.academic_supervisor_id = $3 AND e.application_id = $4`,
		studentID, companySupervisorID, academicSupervisorID, applicationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving evaluation: %w", err)
	}
	return e, nil
}

// GetEvaluationByID retrieves an evaluation
func (r *EvaluationRepository) GetEvaluationByID(ctx context.Context, id int64) (*models.PerformanceEvaluation, error) {
	e, err := scanEvaluation(r.db.QueryRow(ctx, `
		SELECT `+evaluationColumns+`
		FROM performance_evaluations e
		WHERE e.id = $1`,
		id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving evaluation: %w", err)
	}
	return e, nil
}

// SubmitCompanySide writes the company rubric at most once. The WHERE guard
// on company_submitted_at makes a resubmission race a no-op; the bool result
// reports whether this call won.
func (r *EvaluationRepository) SubmitCompanySide(ctx context.Context, id int64, score int, answers models.RubricScores, comment string, at time.Time) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE performance_evaluations
		SET company_score = $1, company_answers = $2, company_comment = $3,
		    company_submitted_at = $4, updated_at = NOW()
		WHERE id = $5 AND company_submitted_at IS NULL`,
		score, answers, comment, at, id)
	if err != nil {
		return false, fmt.Errorf("error submitting company evaluation: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// SubmitAcademicSide writes the academic rubric at most once
func (r *EvaluationRepository) SubmitAcademicSide(ctx context.Context, id int64, score int, answers models.RubricScores, comment string, at time.Time) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE performance_evaluations
		SET academic_score = $1, academic_answers = $2, academic_comment = $3,
		    academic_submitted_at = $4, updated_at = NOW()
		WHERE id = $5 AND academic_submitted_at IS NULL`,
		score, answers, comment, at, id)
	if err != nil {
		return false, fmt.Errorf("error submitting academic evaluation: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// ResetSideTx clears one side inside the caller's transaction so the
// affected supervisor must re-submit (admin override).
func (r *EvaluationRepository) ResetSideTx(ctx context.Context, q DBTX, id int64, side models.EvaluationSide) error {
	var sql string
	if side == models.SideCompany {
		sql = `
			UPDATE performance_evaluations
			SET company_score = NULL, company_answers = NULL, company_comment = NULL,
			    company_submitted_at = NULL, updated_at = NOW()
			WHERE id = $1`
	} else {
		sql = `
			UPDATE performance_evaluations
			SET academic_score = NULL, academic_answers = NULL, academic_comment = NULL,
			    academic_submitted_at = NULL, updated_at = NOW()
			WHERE id = $1`
	}

	cmdTag, err := q.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("error resetting evaluation side: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// ListBySupervisor returns the evaluations a company supervisor participates
// in, with the student attached.
func (r *EvaluationRepository) ListBySupervisor(ctx context.Context, companySupervisorID int64) ([]*models.PerformanceEvaluation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+evaluationColumns+`,
		       s.id, s.user_id, s.program, s.semester, s.academic_supervisor_id, u.username
		FROM performance_evaluations e
		JOIN students s ON s.id = e.student_id
		JOIN users u ON u.id = s.user_id
		WHERE e.company_supervisor_id = $1
		ORDER BY e.created_at DESC`,
		companySupervisorID)
	if err != nil {
		return nil, fmt.Errorf("error listing evaluations: %w", err)
	}
	defer rows.Close()

	var evals []*models.PerformanceEvaluation
	for rows.Next() {
		e := &models.PerformanceEvaluation{Student: &models.Student{User: &models.User{}}}
		if err := rows.Scan(
			&e.ID, &e.StudentID, &e.CompanySupervisorID, &e.AcademicSupervisorID, &e.ApplicationID,
			&e.CompanyScore, &e.CompanyAnswers, &e.CompanyComment, &e.CompanySubmittedAt,
			&e.AcademicScore, &e.AcademicAnswers, &e.AcademicComment, &e.AcademicSubmittedAt,
			&e.CreatedAt, &e.UpdatedAt,
			&e.Student.ID, &e.Student.UserID, &e.Student.Program, &e.Student.Semester,
			&e.Student.AcademicSupervisorID, &e.Student.User.Username); err != nil {
			return nil, fmt.Errorf("error scanning evaluation row: %w", err)
		}
		e.Student.User.ID = e.Student.UserID
		evals = append(evals, e)
	}

	return evals, rows.Err()
}

// ListEvaluations returns all evaluations for the admin view
func (r *EvaluationRepository) ListEvaluations(ctx context.Context, offset uint64, limit int) ([]*models.PerformanceEvaluation, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM performance_evaluations`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting evaluations: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+evaluationColumns+`
		FROM performance_evaluations e
		ORDER BY e.created_at DESC
		OFFSET $1 LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing evaluations: %w", err)
	}
	defer rows.Close()

	var evals []*models.PerformanceEvaluation
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning evaluation row: %w", err)
		}
		evals = append(evals, e)
	}

	return evals, total, rows.Err()
}

// DeleteEvaluation deletes an evaluation row (admin override)
func (r *EvaluationRepository) DeleteEvaluation(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM performance_evaluations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting evaluation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// CountEvaluations returns the total evaluation rows
func (r *EvaluationRepository) CountEvaluations(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM performance_evaluations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting evaluations: %w", err)
	}
	return n, nil
}

// CountPendingCompanySide counts a supervisor's evaluations still missing
// the company submission.
func (r *EvaluationRepository) CountPendingCompanySide(ctx context.Context, companySupervisorID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM performance_evaluations
		WHERE company_supervisor_id = $1 AND company_submitted_at IS NULL`,
		companySupervisorID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting pending evaluations: %w", err)
	}
	return n, nil
}
