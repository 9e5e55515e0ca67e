package models

import "time"

// InternshipPlacement is the active assignment of a student to an internship
// under a specific company supervisor. Created only when the student accepts
// an offer; at most one Active placement exists per student.
type InternshipPlacement struct {
	ID                  int64           `json:"id" db:"id"`
	InternshipID        int64           `json:"internshipId" db:"internship_id"`
	StudentID           int64           `json:"studentId" db:"student_id"`
	CompanySupervisorID int64           `json:"companySupervisorId" db:"company_supervisor_id"`
	StartDate           time.Time       `json:"startDate" db:"start_date"`
	EndDate             time.Time       `json:"endDate" db:"end_date"`
	Status              PlacementStatus `json:"status" db:"status"`
	AssignedDate        time.Time       `json:"assignedDate" db:"assigned_date"`
	UpdatedAt           *time.Time      `json:"updatedAt,omitempty" db:"updated_at"`

	Internship        *Internship        `json:"internship,omitempty"`        // Relation, no db tag
	Student           *Student           `json:"student,omitempty"`           // Relation, no db tag
	CompanySupervisor *CompanySupervisor `json:"companySupervisor,omitempty"` // Relation, no db tag
}

// Attendance is one record per (placement, date). Check-in is required,
// check-out is optional and settable once.
type Attendance struct {
	ID          int64      `json:"id" db:"id"`
	PlacementID int64      `json:"placementId" db:"placement_id"`
	Date        time.Time  `json:"date" db:"date"`
	CheckIn     time.Time  `json:"checkIn" db:"check_in"`
	CheckOut    *time.Time `json:"checkOut,omitempty" db:"check_out"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

// AttendanceSummary is the monthly present/absent breakdown for a placement.
// The counting window is clipped at today so future dates are never counted
// as absent.
type AttendanceSummary struct {
	Month       int           `json:"month"`
	Year        int           `json:"year"`
	DaysPresent int           `json:"daysPresent"`
	DaysAbsent  int           `json:"daysAbsent"`
	Records     []*Attendance `json:"records"`
}
