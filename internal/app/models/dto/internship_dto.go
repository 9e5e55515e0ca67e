package dto

import (
	"time"

	"internhub/internal/app/models"
)

// CreateInternshipRequest creates a posting
type CreateInternshipRequest struct {
	CompanyID    int64   `json:"companyId" binding:"required,min=1"`
	DepartmentID int64   `json:"departmentId" binding:"required,min=1"`
	Title        string  `json:"title" binding:"required,min=2,max=255"`
	Description  string  `json:"description" binding:"required"`
	Requirements *string `json:"requirements,omitempty"`
	Location     string  `json:"location" binding:"required"`
	StartDate    string  `json:"startDate" binding:"required" example:"2025-06-01"`
	EndDate      string  `json:"endDate" binding:"required" example:"2025-08-31"`
	TotalSlots   int     `json:"totalSlots" binding:"required,min=1"`
	Status       string  `json:"status" binding:"omitempty,oneof=Open Closed"`
}

// UpdateInternshipRequest updates posting attributes
type UpdateInternshipRequest struct {
	Title        *string `json:"title,omitempty" binding:"omitempty,min=2,max=255"`
	Description  *string `json:"description,omitempty"`
	Requirements *string `json:"requirements,omitempty"`
	Location     *string `json:"location,omitempty"`
	StartDate    *string `json:"startDate,omitempty"`
	EndDate      *string `json:"endDate,omitempty"`
	TotalSlots   *int    `json:"totalSlots,omitempty" binding:"omitempty,min=1"`
	Status       *string `json:"status,omitempty" binding:"omitempty,oneof=Open Closed"`
}

// InternshipListFilter carries the student-facing list filters
type InternshipListFilter struct {
	Query    string
	Location string
	Sort     string // "newest", "oldest", "start_date"
}

// InternshipResponse is a posting enriched with company and department names
type InternshipResponse struct {
	ID             int64     `json:"id"`
	CompanyID      int64     `json:"companyId"`
	CompanyName    string    `json:"companyName"`
	DepartmentID   int64     `json:"departmentId"`
	DepartmentName string    `json:"departmentName"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Requirements   *string   `json:"requirements,omitempty"`
	Location       string    `json:"location"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	TotalSlots     int       `json:"totalSlots"`
	Status         string    `json:"status"`
	HasApplied     bool      `json:"hasApplied"`
}

// FromInternship converts an internship model into its response shape
func FromInternship(in *models.Internship) InternshipResponse {
	resp := InternshipResponse{
		ID:           in.ID,
		CompanyID:    in.CompanyID,
		DepartmentID: in.DepartmentID,
		Title:        in.Title,
		Description:  in.Description,
		Requirements: in.Requirements,
		Location:     in.Location,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		TotalSlots:   in.TotalSlots,
		Status:       string(in.Status),
		HasApplied:   in.HasApplied,
	}
	if in.Company != nil {
		resp.CompanyName = in.Company.Name
	}
	if in.Department != nil {
		resp.DepartmentName = in.Department.Name
	}
	return resp
}
