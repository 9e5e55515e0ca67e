package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Username  string    `json:"username" db:"username" example:"jdoe"`                    // Unique login name
	Email     string    `json:"email" db:"email" example:"jdoe@school.edu"`               // User's email address
	Password  string    `json:"-" db:"password"`                                          // Hashed password (excluded from JSON)
	Role      Role      `json:"role" db:"role" example:"student"`                         // User's role, fixed at creation
	IsActive  bool      `json:"isActive" db:"is_active" example:"true"`                   // Whether the account is active
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
}

// Student defines the student profile based on the 'students' table.
// Created together with its User in one transaction.
type Student struct {
	ID                   int64  `json:"id" db:"id"`
	UserID               int64  `json:"userId" db:"user_id"`
	Program              string `json:"program" db:"program"`
	Semester             string `json:"semester" db:"semester"`
	AcademicSupervisorID *int64 `json:"academicSupervisorId,omitempty" db:"academic_supervisor_id"` // Nullable, supervisor may be unassigned

	User               *User               `json:"user,omitempty"`               // Relation, no db tag
	AcademicSupervisor *AcademicSupervisor `json:"academicSupervisor,omitempty"` // Relation, no db tag
}

// AcademicSupervisor defines the academic supervisor profile based on the
// 'academic_supervisors' table.
type AcademicSupervisor struct {
	ID      int64  `json:"id" db:"id"`
	UserID  int64  `json:"userId" db:"user_id"`
	Faculty string `json:"faculty" db:"faculty"` // Department/faculty the supervisor belongs to

	User *User `json:"user,omitempty"` // Relation, no db tag
}

// CompanySupervisor defines the company supervisor profile based on the
// 'company_supervisors' table. Scoped to one company and one department.
type CompanySupervisor struct {
	ID           int64  `json:"id" db:"id"`
	UserID       int64  `json:"userId" db:"user_id"`
	CompanyID    *int64 `json:"companyId,omitempty" db:"company_id"`       // Nullable until the admin assigns one
	DepartmentID *int64 `json:"departmentId,omitempty" db:"department_id"` // Nullable until the admin assigns one

	User       *User       `json:"user,omitempty"`       // Relation, no db tag
	Company    *Company    `json:"company,omitempty"`    // Relation, no db tag
	Department *Department `json:"department,omitempty"` // Relation, no db tag
}
