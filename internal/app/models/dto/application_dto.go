package dto

import (
	"time"

	"internhub/internal/app/models"
)

// DecideRequest is the company supervisor's decision on a pending application
type DecideRequest struct {
	Decision string `json:"decision" binding:"required,oneof=offer reject" example:"offer"`
}

// ReplaceSupervisorRequest reassigns the handling supervisor on an
// application (admin override).
type ReplaceSupervisorRequest struct {
	CompanySupervisorID int64 `json:"companySupervisorId" binding:"required,min=1"`
}

// ApplicationResponse is an application enriched with student and internship
// context.
type ApplicationResponse struct {
	ID              int64      `json:"id"`
	StudentID       int64      `json:"studentId"`
	StudentName     string     `json:"studentName,omitempty"`
	InternshipID    int64      `json:"internshipId"`
	InternshipTitle string     `json:"internshipTitle,omitempty"`
	CompanyName     string     `json:"companyName,omitempty"`
	Status          string     `json:"status"`
	StudentDecision string     `json:"studentDecision"`
	HandledByID     *int64     `json:"handledById,omitempty"`
	AppliedDate     time.Time  `json:"appliedDate"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// FromApplication converts an application model into its response shape
func FromApplication(a *models.InternshipApplication) ApplicationResponse {
	resp := ApplicationResponse{
		ID:              a.ID,
		StudentID:       a.StudentID,
		InternshipID:    a.InternshipID,
		Status:          string(a.Status),
		StudentDecision: string(a.StudentDecision),
		HandledByID:     a.HandledByID,
		AppliedDate:     a.AppliedDate,
		UpdatedAt:       a.UpdatedAt,
	}
	if a.Student != nil && a.Student.User != nil {
		resp.StudentName = a.Student.User.Username
	}
	if a.Internship != nil {
		resp.InternshipTitle = a.Internship.Title
		if a.Internship.Company != nil {
			resp.CompanyName = a.Internship.Company.Name
		}
	}
	return resp
}
