package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"internhub/internal/app/models/dto"
	"internhub/internal/app/services"
	"internhub/internal/middleware"
)

// AcademicController serves the academic supervisor surface: supervised
// students, their progress, attendance, logbook notes and the academic
// evaluation side.
type AcademicController struct {
	academicService   *services.AcademicService
	attendanceService *services.AttendanceService
	logbookService    *services.LogbookService
	evaluationService *services.EvaluationService
	logger            zerolog.Logger
}

// NewAcademicController creates a new AcademicController
func NewAcademicController(
	academicService *services.AcademicService,
	attendanceService *services.AttendanceService,
	logbookService *services.LogbookService,
	evaluationService *services.EvaluationService,
	logger zerolog.Logger,
) *AcademicController {
	return &AcademicController{
		academicService:   academicService,
		attendanceService: attendanceService,
		logbookService:    logbookService,
		evaluationService: evaluationService,
		logger:            logger,
	}
}

// ListStudents returns the supervised students
// @Summary My students
// @Tags academic
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Student}
// @Router /academic/students [get]
func (c *AcademicController) ListStudents(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	students, err := c.academicService.ListStudents(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students, ""))
}

// StudentOverview returns one student's progress picture
// @Summary Student overview
// @Tags academic
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentOverviewResponse}
// @Failure 403 {object} dto.ErrorResponse "Student assigned to another supervisor"
// @Router /academic/students/{id} [get]
func (c *AcademicController) StudentOverview(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	overview, err := c.academicService.StudentOverview(ctx, userID, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(overview, ""))
}

// StudentAttendance returns a student's monthly attendance
// @Summary Student attendance
// @Tags academic
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param month query int false "Month (1-12), defaults to current"
// @Param year query int false "Year, defaults to current"
// @Success 200 {object} dto.APIResponse{data=models.AttendanceSummary}
// @Failure 404 {object} dto.ErrorResponse "No active placement"
// @Router /academic/students/{id}/attendance [get]
func (c *AcademicController) StudentAttendance(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	now := time.Now()
	month, _ := strconv.Atoi(ctx.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	year, _ := strconv.Atoi(ctx.DefaultQuery("year", strconv.Itoa(now.Year())))

	summary, err := c.attendanceService.AcademicMonthlySummary(ctx, userID, studentID, year, month)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary, ""))
}

// StudentLogbooks returns a supervised student's logbooks
// @Summary Student logbooks
// @Tags academic
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Logbook}
// @Router /academic/students/{id}/logbooks [get]
func (c *AcademicController) StudentLogbooks(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	logbooks, err := c.logbookService.ListByStudentForAcademic(ctx, userID, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(logbooks, ""))
}

// StudentDocuments returns a supervised student's documents
// @Summary Student documents
// @Tags academic
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.DocumentResponse}
// @Router /academic/students/{id}/documents [get]
func (c *AcademicController) StudentDocuments(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	documents, err := c.academicService.ListStudentDocuments(ctx, userID, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.DocumentResponse, 0, len(documents))
	for _, document := range documents {
		responses = append(responses, dto.FromDocument(document))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses, ""))
}

// SubmitEvaluation records the academic side of a student's evaluation
// @Summary Submit the academic evaluation
// @Tags academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.SubmitEvaluationRequest true "Rubric scores"
// @Success 200 {object} dto.APIResponse{data=dto.EvaluationResponse}
// @Failure 409 {object} dto.ErrorResponse "Side already submitted"
// @Router /academic/students/{id}/evaluation [post]
func (c *AcademicController) SubmitEvaluation(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SubmitEvaluationRequest
	if !bindJSON(ctx, &req) {
		return
	}

	evaluation, err := c.evaluationService.SubmitAcademicSide(ctx, userID, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromEvaluation(evaluation), "Evaluation submitted"))
}

// LogbookNotes attaches advisory notes to a logbook
// @Summary Add logbook notes
// @Tags academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Logbook ID"
// @Param request body dto.AcademicNotesRequest true "Notes"
// @Success 200 {object} dto.APIResponse "Notes saved"
// @Failure 403 {object} dto.ErrorResponse "Logbook belongs to another supervisor's student"
// @Router /academic/logbooks/{id}/notes [post]
func (c *AcademicController) LogbookNotes(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	logbookID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AcademicNotesRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.logbookService.SetAcademicNotes(ctx, userID, logbookID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Notes saved"))
}
