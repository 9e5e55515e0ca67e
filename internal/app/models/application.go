package models

import "time"

// InternshipApplication tracks a student's application to an internship
// through the multi-party decision process. A student may apply to a given
// internship at most once.
type InternshipApplication struct {
	ID              int64             `json:"id" db:"id"`
	StudentID       int64             `json:"studentId" db:"student_id"`
	InternshipID    int64             `json:"internshipId" db:"internship_id"`
	Status          ApplicationStatus `json:"status" db:"status"`
	StudentDecision StudentDecision   `json:"studentDecision" db:"student_decision"`
	HandledByID     *int64            `json:"handledById,omitempty" db:"handled_by_id"` // Company supervisor who decided, nil while pending
	AppliedDate     time.Time         `json:"appliedDate" db:"applied_date"`
	CreatedAt       time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt       *time.Time        `json:"updatedAt,omitempty" db:"updated_at"`

	Student    *Student           `json:"student,omitempty"`    // Relation, no db tag
	Internship *Internship        `json:"internship,omitempty"` // Relation, no db tag
	HandledBy  *CompanySupervisor `json:"handledBy,omitempty"`  // Relation, no db tag
}

// IsHandled reports whether a supervisor decision has already been recorded.
// A second concurrent decider must observe this and back off.
func (a *InternshipApplication) IsHandled() bool {
	return a.HandledByID != nil
}
