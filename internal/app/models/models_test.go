package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"student", "company", "academic", "admin"} {
		role, err := ParseRole(valid)
		require.NoError(t, err)
		assert.Equal(t, Role(valid), role)
	}

	for _, invalid := range []string{"", "Student", "superadmin", "instructor"} {
		_, err := ParseRole(invalid)
		assert.Error(t, err, "role %q should be rejected", invalid)
	}
}

func TestParseEvaluationSide(t *testing.T) {
	side, err := ParseEvaluationSide("company")
	require.NoError(t, err)
	assert.Equal(t, SideCompany, side)

	side, err = ParseEvaluationSide("academic")
	require.NoError(t, err)
	assert.Equal(t, SideAcademic, side)

	_, err = ParseEvaluationSide("both")
	assert.Error(t, err)
}

func TestSubmissionDeadline(t *testing.T) {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), SubmissionDeadline(start, 1))
	assert.Equal(t, time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), SubmissionDeadline(start, 2))
	assert.Equal(t, time.Date(2025, 5, 26, 0, 0, 0, 0, time.UTC), SubmissionDeadline(start, LogbookWeeks))
}

func TestLogbookEditable(t *testing.T) {
	l := &Logbook{Status: LogbookPending}
	assert.True(t, l.Editable())

	l.Status = LogbookApproved
	assert.False(t, l.Editable())

	l.Status = LogbookRejected
	assert.False(t, l.Editable())
}

func TestApplicationIsHandled(t *testing.T) {
	a := &InternshipApplication{}
	assert.False(t, a.IsHandled())

	supervisorID := int64(7)
	a.HandledByID = &supervisorID
	assert.True(t, a.IsHandled())
}

func TestRubricScoresAverage(t *testing.T) {
	r := RubricScores{
		Attendance:  RubricItem{Score: 80},
		Punctuality: RubricItem{Score: 90},
		WorkQuality: RubricItem{Score: 70},
		Overall:     RubricItem{Score: 100},
	}
	assert.Equal(t, 85, r.Average())

	// Integer mean truncates
	r.Overall.Score = 99
	assert.Equal(t, 84, r.Average())
}

func TestEvaluationSideSubmitted(t *testing.T) {
	e := &PerformanceEvaluation{}
	assert.False(t, e.SideSubmitted(SideCompany))
	assert.False(t, e.SideSubmitted(SideAcademic))

	now := time.Now()
	e.CompanySubmittedAt = &now
	assert.True(t, e.SideSubmitted(SideCompany))
	assert.False(t, e.SideSubmitted(SideAcademic))
}

func TestEvaluationFinalScore(t *testing.T) {
	e := &PerformanceEvaluation{}
	assert.Nil(t, e.FinalScore())

	companyScore := 80
	e.CompanyScore = &companyScore
	assert.Nil(t, e.FinalScore(), "one side alone must not produce a final score")

	academicScore := 91
	e.AcademicScore = &academicScore
	final := e.FinalScore()
	require.NotNil(t, final)
	assert.Equal(t, 85.5, *final)
}

func TestCanEvaluateCompany(t *testing.T) {
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	placement := &InternshipPlacement{Status: PlacementActive, EndDate: end}

	// Too early: more than a week before the end date
	assert.False(t, CanEvaluateCompany(placement, end.AddDate(0, 0, -14)))

	// Inside the trailing window
	assert.True(t, CanEvaluateCompany(placement, end.AddDate(0, 0, -7)))
	assert.True(t, CanEvaluateCompany(placement, end.AddDate(0, 0, -1)))
	assert.True(t, CanEvaluateCompany(placement, end))

	// Completed placements are never evaluable
	placement.Status = PlacementCompleted
	assert.False(t, CanEvaluateCompany(placement, end.AddDate(0, 0, -1)))
}
