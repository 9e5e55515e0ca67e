package dto

import "internhub/internal/app/models"

// SubmitLogbookRequest is a student's weekly submission
type SubmitLogbookRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

// ReviewLogbookRequest is the company supervisor's review action
type ReviewLogbookRequest struct {
	Action string  `json:"action" binding:"required,oneof=approve reject" example:"approve"`
	Notes  *string `json:"notes,omitempty"`
}

// AcademicNotesRequest attaches advisory notes to a logbook without changing
// its status.
type AcademicNotesRequest struct {
	Notes string `json:"notes" binding:"required,min=1"`
}

// UpdateLogbookStatusRequest is the admin override for a logbook status
type UpdateLogbookStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Approved Rejected"`
}

// LogbookWeekEntry is one row of the student's week grid: the week number
// with its logbook when one exists.
type LogbookWeekEntry struct {
	WeekNo   int             `json:"weekNo"`
	Deadline string          `json:"deadline,omitempty"`
	Logbook  *models.Logbook `json:"logbook,omitempty"`
}
