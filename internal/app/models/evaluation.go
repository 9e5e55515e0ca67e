package models

import "time"

// RubricItem is one scored dimension of an evaluation.
type RubricItem struct {
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// RubricScores is the fixed institutional rubric. The set of dimensions is
// fixed, so this is a record type rather than an open map.
type RubricScores struct {
	Attendance  RubricItem `json:"attendance"`
	Punctuality RubricItem `json:"punctuality"`
	WorkQuality RubricItem `json:"work_quality"`
	Overall     RubricItem `json:"overall"`
}

// Average returns the integer mean of the four dimension scores.
func (r RubricScores) Average() int {
	return (r.Attendance.Score + r.Punctuality.Score + r.WorkQuality.Score + r.Overall.Score) / 4
}

// PerformanceEvaluation holds the dual-sided evaluation for one placement
// context, keyed by the (student, company supervisor, academic supervisor,
// application) tuple. Each side is filled independently; a side is read-only
// once its submitted_at is set.
type PerformanceEvaluation struct {
	ID                   int64 `json:"id" db:"id"`
	StudentID            int64 `json:"studentId" db:"student_id"`
	CompanySupervisorID  int64 `json:"companySupervisorId" db:"company_supervisor_id"`
	AcademicSupervisorID int64 `json:"academicSupervisorId" db:"academic_supervisor_id"`
	ApplicationID        int64 `json:"applicationId" db:"application_id"`

	CompanyScore       *int          `json:"companyScore,omitempty" db:"company_score"`
	CompanyAnswers     *RubricScores `json:"companyAnswers,omitempty" db:"company_answers"`
	CompanyComment     *string       `json:"companyComment,omitempty" db:"company_comment"`
	CompanySubmittedAt *time.Time    `json:"companySubmittedAt,omitempty" db:"company_submitted_at"`

	AcademicScore       *int          `json:"academicScore,omitempty" db:"academic_score"`
	AcademicAnswers     *RubricScores `json:"academicAnswers,omitempty" db:"academic_answers"`
	AcademicComment     *string       `json:"academicComment,omitempty" db:"academic_comment"`
	AcademicSubmittedAt *time.Time    `json:"academicSubmittedAt,omitempty" db:"academic_submitted_at"`

	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" db:"updated_at"`

	Student            *Student               `json:"student,omitempty"`            // Relation, no db tag
	CompanySupervisor  *CompanySupervisor     `json:"companySupervisor,omitempty"`  // Relation, no db tag
	AcademicSupervisor *AcademicSupervisor    `json:"academicSupervisor,omitempty"` // Relation, no db tag
	Application        *InternshipApplication `json:"application,omitempty"`        // Relation, no db tag
}

// SideSubmitted reports whether the given side has already been submitted.
func (e *PerformanceEvaluation) SideSubmitted(side EvaluationSide) bool {
	if side == SideCompany {
		return e.CompanySubmittedAt != nil
	}
	return e.AcademicSubmittedAt != nil
}

// FinalScore returns the mean of both side scores, or nil until both sides
// have submitted.
func (e *PerformanceEvaluation) FinalScore() *float64 {
	if e.CompanyScore == nil || e.AcademicScore == nil {
		return nil
	}
	f := float64(*e.CompanyScore+*e.AcademicScore) / 2
	return &f
}

// CompanyEvaluationWindowDays is how many days before the placement end date
// the company side of the evaluation opens.
const CompanyEvaluationWindowDays = 7

// CanEvaluateCompany reports whether the company side may be submitted today:
// the placement must be active and within the trailing window before its end
// date.
func CanEvaluateCompany(p *InternshipPlacement, today time.Time) bool {
	if p.Status != PlacementActive {
		return false
	}
	daysLeft := int(p.EndDate.Sub(today).Hours() / 24)
	return daysLeft <= CompanyEvaluationWindowDays
}
