package dto

import "internhub/internal/app/models"

// SubmitEvaluationRequest carries the fixed rubric for one evaluation side:
// four scored dimensions plus an overall comment.
type SubmitEvaluationRequest struct {
	AttendanceScore    int    `json:"attendanceScore" binding:"required,min=1,max=10"`
	AttendanceComment  string `json:"attendanceComment"`
	PunctualityScore   int    `json:"punctualityScore" binding:"required,min=1,max=10"`
	PunctualityComment string `json:"punctualityComment"`
	WorkQualityScore   int    `json:"workQualityScore" binding:"required,min=1,max=10"`
	WorkQualityComment string `json:"workQualityComment"`
	OverallScore       int    `json:"overallScore" binding:"required,min=1,max=10"`
	OverallComment     string `json:"overallComment"`
	Comment            string `json:"comment"`
}

// Rubric converts the request into the stored rubric shape
func (r *SubmitEvaluationRequest) Rubric() models.RubricScores {
	return models.RubricScores{
		Attendance:  models.RubricItem{Score: r.AttendanceScore, Comment: r.AttendanceComment},
		Punctuality: models.RubricItem{Score: r.PunctualityScore, Comment: r.PunctualityComment},
		WorkQuality: models.RubricItem{Score: r.WorkQualityScore, Comment: r.WorkQualityComment},
		Overall:     models.RubricItem{Score: r.OverallScore, Comment: r.OverallComment},
	}
}

// ResetEvaluationRequest clears one side of an evaluation (admin override)
type ResetEvaluationRequest struct {
	Side string `json:"side" binding:"required,oneof=company academic" example:"company"`
}

// EvaluationResponse is an evaluation with the derived final score
type EvaluationResponse struct {
	Evaluation *models.PerformanceEvaluation `json:"evaluation"`
	FinalScore *float64                      `json:"finalScore,omitempty"`
}

// FromEvaluation converts an evaluation model into its response shape
func FromEvaluation(e *models.PerformanceEvaluation) EvaluationResponse {
	return EvaluationResponse{
		Evaluation: e,
		FinalScore: e.FinalScore(),
	}
}
