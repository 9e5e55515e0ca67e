package dto

import "internhub/internal/app/models"

// AttendanceActionRequest records a check-in or check-out for a placement
type AttendanceActionRequest struct {
	PlacementID int64  `json:"placementId" binding:"required,min=1"`
	Action      string `json:"action" binding:"required,oneof=checkin checkout" example:"checkin"`
}

// AdminAttendanceRequest is the admin override shape for creating or editing
// an attendance record directly.
type AdminAttendanceRequest struct {
	PlacementID int64   `json:"placementId" binding:"required,min=1"`
	Date        string  `json:"date" binding:"required" example:"2025-07-14"`
	CheckIn     string  `json:"checkIn" binding:"required" example:"08:30"`
	CheckOut    *string `json:"checkOut,omitempty" example:"17:00"`
}

// PlacementAttendanceResponse pairs a placement with its attendance record
// for one day (nil when no record exists yet).
type PlacementAttendanceResponse struct {
	Placement  *models.InternshipPlacement `json:"placement"`
	Attendance *models.Attendance          `json:"attendance,omitempty"`
}
