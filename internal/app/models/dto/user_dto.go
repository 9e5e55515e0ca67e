package dto

import "internhub/internal/app/models"

// CreateUserRequest is the admin request that creates a user together with
// its role profile in one transaction.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64" example:"jdoe"`
	Email    string `json:"email" binding:"required,email" example:"jdoe@school.edu"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=student company academic admin" example:"student"`

	// Student profile fields
	Program              string `json:"program,omitempty"`
	Semester             string `json:"semester,omitempty"`
	AcademicSupervisorID *int64 `json:"academicSupervisorId,omitempty"`

	// Academic supervisor profile fields
	Faculty string `json:"faculty,omitempty"`

	// Company supervisor profile fields
	CompanyID    *int64 `json:"companyId,omitempty"`
	DepartmentID *int64 `json:"departmentId,omitempty"`
}

// UpdateUserRequest updates mutable user attributes
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8"`
	IsActive *bool   `json:"isActive,omitempty"`

	Program              *string `json:"program,omitempty"`
	Semester             *string `json:"semester,omitempty"`
	AcademicSupervisorID *int64  `json:"academicSupervisorId,omitempty"`
	Faculty              *string `json:"faculty,omitempty"`
	CompanyID            *int64  `json:"companyId,omitempty"`
	DepartmentID         *int64  `json:"departmentId,omitempty"`
}

// UserDetailResponse is a user with its role profile attached
type UserDetailResponse struct {
	UserResponse
	Student            *models.Student            `json:"student,omitempty"`
	AcademicSupervisor *models.AcademicSupervisor `json:"academicSupervisor,omitempty"`
	CompanySupervisor  *models.CompanySupervisor  `json:"companySupervisor,omitempty"`
}

// StudentOverviewResponse is the academic supervisor's view of one of their
// students.
type StudentOverviewResponse struct {
	Student       *models.Student               `json:"student"`
	Placement     *models.InternshipPlacement   `json:"placement,omitempty"`
	Application   *models.InternshipApplication `json:"application,omitempty"`
	Logbooks      []*models.Logbook             `json:"logbooks"`
	ApprovedCount int                           `json:"approvedCount"`
	PendingCount  int                           `json:"pendingCount"`
}
