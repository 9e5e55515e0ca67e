package models

import "time"

// Logbook is a weekly progress report submitted by a student during an
// active placement. At most one logbook per (student, week number).
type Logbook struct {
	ID                       int64         `json:"id" db:"id"`
	StudentID                int64         `json:"studentId" db:"student_id"`
	ApplicationID            int64         `json:"applicationId" db:"application_id"`
	WeekNo                   int           `json:"weekNo" db:"week_no"`
	Content                  string        `json:"content" db:"content"`
	Status                   LogbookStatus `json:"status" db:"status"`
	CompanyApproval          *bool         `json:"companyApproval,omitempty" db:"company_approval"`
	CompanySupervisorNotes   *string       `json:"companySupervisorNotes,omitempty" db:"company_supervisor_notes"`
	AcademicSupervisorNotes  *string       `json:"academicSupervisorNotes,omitempty" db:"academic_supervisor_notes"`
	SubmittedDate            time.Time     `json:"submittedDate" db:"submitted_date"`
	ApprovedAt               *time.Time    `json:"approvedAt,omitempty" db:"approved_at"`
	CreatedAt                time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt                *time.Time    `json:"updatedAt,omitempty" db:"updated_at"`

	Student     *Student               `json:"student,omitempty"`     // Relation, no db tag
	Application *InternshipApplication `json:"application,omitempty"` // Relation, no db tag
}

// SubmissionDeadline returns the last day week weekNo may still be submitted
// for a placement that started on startDate.
func SubmissionDeadline(startDate time.Time, weekNo int) time.Time {
	return startDate.AddDate(0, 0, weekNo*7)
}

// Editable reports whether the student may still change the logbook.
// Once reviewed, the record is immutable for the student.
func (l *Logbook) Editable() bool {
	return l.Status == LogbookPending
}
