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

// AttendanceRepository handles attendance database operations
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// GetByPlacementAndDate returns the attendance row for one day, or
// ErrResourceNotFound when no record exists yet.
func (r *AttendanceRepository) GetByPlacementAndDate(ctx context.Context, placementID int64, date time.Time) (*models.Attendance, error) {
	a := &models.Attendance{}
	err := r.db.QueryRow(ctx, `
		SELECT id, placement_id, date, check_in, check_out, created_at, updated_at
		FROM attendances
		WHERE placement_id = $1 AND date = $2`,
		placementID, date).Scan(
		&a.ID, &a.PlacementID, &a.Date, &a.CheckIn, &a.CheckOut, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving attendance: %w", err)
	}
	return a, nil
}

// CreateAttendance inserts the day's record. A racing duplicate insert for
// the same (placement, date) surfaces as ErrResourceAlreadyExists so the
// caller can fall back to the existing row.
func (r *AttendanceRepository) CreateAttendance(ctx context.Context, a *models.Attendance) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO attendances (placement_id, date, check_in, check_out)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		a.PlacementID, a.Date, a.CheckIn, a.CheckOut).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "attendances_placement_date_key") {
			return 0, apperrors.ErrResourceAlreadyExists
		}
		return 0, fmt.Errorf("error creating attendance: %w", err)
	}
	return id, nil
}

// SetCheckOut stamps the checkout time at most once. The WHERE guard makes
// repeated checkout calls no-ops; the bool result reports whether this call
// set it.
func (r *AttendanceRepository) SetCheckOut(ctx context.Context, id int64, at time.Time) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE attendances
		SET check_out = $1, updated_at = NOW()
		WHERE id = $2 AND check_out IS NULL`,
		at, id)
	if err != nil {
		return false, fmt.Errorf("error setting checkout: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// ListByPlacementBetween returns the attendance rows of one placement in
// [from, to], oldest first.
func (r *AttendanceRepository) ListByPlacementBetween(ctx context.Context, placementID int64, from, to time.Time) ([]*models.Attendance, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, placement_id, date, check_in, check_out, created_at, updated_at
		FROM attendances
		WHERE placement_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date`,
		placementID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error listing attendance: %w", err)
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		a := &models.Attendance{}
		if err := rows.Scan(
			&a.ID, &a.PlacementID, &a.Date, &a.CheckIn, &a.CheckOut, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning attendance row: %w", err)
		}
		records = append(records, a)
	}

	return records, rows.Err()
}

// GetAttendanceByID retrieves a single record (admin override editing)
func (r *AttendanceRepository) GetAttendanceByID(ctx context.Context, id int64) (*models.Attendance, error) {
	a := &models.Attendance{}
	err := r.db.QueryRow(ctx, `
		SELECT id, placement_id, date, check_in, check_out, created_at, updated_at
		FROM attendances
		WHERE id = $1`,
		id).Scan(&a.ID, &a.PlacementID, &a.Date, &a.CheckIn, &a.CheckOut, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving attendance: %w", err)
	}
	return a, nil
}

// UpdateAttendance overwrites check-in and check-out (admin override)
func (r *AttendanceRepository) UpdateAttendance(ctx context.Context, a *models.Attendance) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE attendances
		SET date = $1, check_in = $2, check_out = $3, updated_at = NOW()
		WHERE id = $4`,
		a.Date, a.CheckIn, a.CheckOut, a.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "attendances_placement_date_key") {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error updating attendance: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// DeleteAttendance removes a record (admin override)
func (r *AttendanceRepository) DeleteAttendance(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting attendance: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// ListAttendance returns all records for the admin view, newest day first
func (r *AttendanceRepository) ListAttendance(ctx context.Context, offset uint64, limit int) ([]*models.Attendance, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM attendances`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting attendance: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, placement_id, date, check_in, check_out, created_at, updated_at
		FROM attendances
		ORDER BY date DESC, id DESC
		OFFSET $1 LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing attendance: %w", err)
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		a := &models.Attendance{}
		if err := rows.Scan(
			&a.ID, &a.PlacementID, &a.Date, &a.CheckIn, &a.CheckOut, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("error scanning attendance row: %w", err)
		}
		records = append(records, a)
	}

	return records, total, rows.Err()
}

// CountUnmarkedToday counts a supervisor's active placements with no
// attendance record for the given day.
func (r *AttendanceRepository) CountUnmarkedToday(ctx context.Context, supervisorID int64, day time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM internship_placements p
		WHERE p.company_supervisor_id = $1 AND p.status = 'Active'
		  AND NOT EXISTS(SELECT 1 FROM attendances a WHERE a.placement_id = p.id AND a.date = $2)`,
		supervisorID, day).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting unmarked attendance: %w", err)
	}
	return n, nil
}
