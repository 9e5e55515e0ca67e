package models

import "time"

// Internship represents a posting scoped to a company and department
type Internship struct {
	ID           int64            `json:"id" db:"id"`
	CompanyID    int64            `json:"companyId" db:"company_id"`
	DepartmentID int64            `json:"departmentId" db:"department_id"`
	Title        string           `json:"title" db:"title"`
	Description  string           `json:"description" db:"description"`
	Requirements *string          `json:"requirements,omitempty" db:"requirements"`
	Location     string           `json:"location" db:"location"`
	StartDate    time.Time        `json:"startDate" db:"start_date"`
	EndDate      time.Time        `json:"endDate" db:"end_date"`
	TotalSlots   int              `json:"totalSlots" db:"total_slots"`
	Status       InternshipStatus `json:"status" db:"status"`
	CreatedAt    time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt    *time.Time       `json:"updatedAt,omitempty" db:"updated_at"`

	Company    *Company    `json:"company,omitempty"`    // Relation, no db tag
	Department *Department `json:"department,omitempty"` // Relation, no db tag

	// HasApplied is set for student-facing listings only
	HasApplied bool `json:"hasApplied,omitempty"`
}
