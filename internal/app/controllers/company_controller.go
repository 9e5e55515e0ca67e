package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"internhub/internal/app/models/dto"
	"internhub/internal/app/services"
	"internhub/internal/middleware"
)

// CompanyController serves the company supervisor surface: deciding on
// applications, daily attendance, logbook reviews and evaluations.
type CompanyController struct {
	dashboardService   *services.DashboardService
	applicationService *services.ApplicationService
	attendanceService  *services.AttendanceService
	logbookService     *services.LogbookService
	evaluationService  *services.EvaluationService
	logger             zerolog.Logger
}

// NewCompanyController creates a new CompanyController
func NewCompanyController(
	dashboardService *services.DashboardService,
	applicationService *services.ApplicationService,
	attendanceService *services.AttendanceService,
	logbookService *services.LogbookService,
	evaluationService *services.EvaluationService,
	logger zerolog.Logger,
) *CompanyController {
	return &CompanyController{
		dashboardService:   dashboardService,
		applicationService: applicationService,
		attendanceService:  attendanceService,
		logbookService:     logbookService,
		evaluationService:  evaluationService,
		logger:             logger,
	}
}

// Dashboard returns the supervisor workload counters
// @Summary Company dashboard
// @Tags company
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CompanyDashboardResponse}
// @Router /company/dashboard [get]
func (c *CompanyController) Dashboard(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	dashboard, err := c.dashboardService.CompanyDashboard(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dashboard, ""))
}

// ListApplications returns the department's applications
// @Summary Department applications
// @Description Lists the department's applications, limited to the last 90 days unless filter=all.
// @Tags company
// @Produce json
// @Security BearerAuth
// @Param filter query string false "Set to all to disable the 90-day window" Enums(all)
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse}
// @Failure 403 {object} dto.ErrorResponse "Supervisor not assigned to a department"
// @Router /company/applications [get]
func (c *CompanyController) ListApplications(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	all := ctx.Query("filter") == "all"
	applications, err := c.applicationService.ListForSupervisor(ctx, userID, all)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.ApplicationResponse, 0, len(applications))
	for _, application := range applications {
		responses = append(responses, dto.FromApplication(application))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses, ""))
}

// Decide offers or rejects a pending application
// @Summary Decide on an application
// @Description Records the offer or reject decision. When another supervisor already handled the application, the current state is returned unchanged.
// @Tags company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.DecideRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse}
// @Failure 403 {object} dto.ErrorResponse "Application outside your department"
// @Router /company/applications/{id}/decide [post]
func (c *CompanyController) Decide(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	applicationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.DecideRequest
	if !bindJSON(ctx, &req) {
		return
	}

	application, alreadyHandled, err := c.applicationService.Decide(ctx, userID, applicationID, req.Decision)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "Decision recorded"
	if alreadyHandled {
		message = "Application was already handled"
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromApplication(application), message))
}

// AttendanceToday returns today's attendance across the supervisor's interns
// @Summary Today's attendance
// @Tags company
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.PlacementAttendanceResponse}
// @Router /company/attendance [get]
func (c *CompanyController) AttendanceToday(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	view, err := c.attendanceService.DayView(ctx, userID, time.Now())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(view, ""))
}

// MarkAttendance records a check-in or check-out for today
// @Summary Mark attendance
// @Tags company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AttendanceActionRequest true "Placement and action"
// @Success 200 {object} dto.APIResponse{data=models.Attendance}
// @Failure 403 {object} dto.ErrorResponse "Placement belongs to another supervisor"
// @Failure 409 {object} dto.ErrorResponse "Placement locked or check-out already recorded"
// @Router /company/attendance [post]
func (c *CompanyController) MarkAttendance(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.AttendanceActionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	record, err := c.attendanceService.Mark(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(record, "Attendance recorded"))
}

// PendingLogbooks returns the supervisor's review queue
// @Summary Pending logbooks
// @Tags company
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Logbook}
// @Router /company/logbooks [get]
func (c *CompanyController) PendingLogbooks(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	logbooks, err := c.logbookService.ListPendingForSupervisor(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(logbooks, ""))
}

// ReviewLogbook approves or rejects a pending logbook
// @Summary Review a logbook
// @Tags company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Logbook ID"
// @Param request body dto.ReviewLogbookRequest true "Review action and notes"
// @Success 200 {object} dto.APIResponse{data=models.Logbook}
// @Failure 409 {object} dto.ErrorResponse "Logbook already reviewed"
// @Router /company/logbooks/{id}/review [post]
func (c *CompanyController) ReviewLogbook(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	logbookID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ReviewLogbookRequest
	if !bindJSON(ctx, &req) {
		return
	}

	logbook, err := c.logbookService.Review(ctx, userID, logbookID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(logbook, "Review recorded"))
}

// ListEvaluations returns the supervisor's evaluations
// @Summary My evaluations
// @Tags company
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EvaluationResponse}
// @Router /company/evaluations [get]
func (c *CompanyController) ListEvaluations(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	evaluations, err := c.evaluationService.ListForSupervisor(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.EvaluationResponse, 0, len(evaluations))
	for _, evaluation := range evaluations {
		responses = append(responses, dto.FromEvaluation(evaluation))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses, ""))
}

// SubmitEvaluation records the company side of a placement evaluation
// @Summary Submit the company evaluation
// @Description Available only in the final week before the placement end date.
// @Tags company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param placementId path int true "Placement ID"
// @Param request body dto.SubmitEvaluationRequest true "Rubric scores"
// @Success 200 {object} dto.APIResponse{data=dto.EvaluationResponse}
// @Failure 400 {object} dto.ErrorResponse "Evaluation window not open"
// @Failure 409 {object} dto.ErrorResponse "Side already submitted"
// @Router /company/evaluations/{placementId} [post]
func (c *CompanyController) SubmitEvaluation(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	placementID, ok := parseIDParam(ctx, "placementId")
	if !ok {
		return
	}

	var req dto.SubmitEvaluationRequest
	if !bindJSON(ctx, &req) {
		return
	}

	evaluation, err := c.evaluationService.SubmitCompanySide(ctx, userID, placementID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromEvaluation(evaluation), "Evaluation submitted"))
}
