package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"internhub/internal/app/models"
	"internhub/internal/app/models/dto"
	"internhub/internal/app/services"
	"internhub/internal/middleware"
	"internhub/internal/pkg/apperrors"
	"internhub/internal/pkg/filestorage"
	"internhub/internal/pkg/validation"
)

// StudentController serves the student-facing surface: browsing postings,
// the application lifecycle, logbooks, attendance summaries and documents.
type StudentController struct {
	dashboardService   *services.DashboardService
	internshipService  *services.InternshipService
	applicationService *services.ApplicationService
	logbookService     *services.LogbookService
	attendanceService  *services.AttendanceService
	documentService    *services.DocumentService
	fileStorage        filestorage.FileStorage
	logger             zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(
	dashboardService *services.DashboardService,
	internshipService *services.InternshipService,
	applicationService *services.ApplicationService,
	logbookService *services.LogbookService,
	attendanceService *services.AttendanceService,
	documentService *services.DocumentService,
	fileStorage filestorage.FileStorage,
	logger zerolog.Logger,
) *StudentController {
	return &StudentController{
		dashboardService:   dashboardService,
		internshipService:  internshipService,
		applicationService: applicationService,
		logbookService:     logbookService,
		attendanceService:  attendanceService,
		documentService:    documentService,
		fileStorage:        fileStorage,
		logger:             logger,
	}
}

// Dashboard returns the student landing page counters
// @Summary Student dashboard
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentDashboardResponse}
// @Router /student/dashboard [get]
func (c *StudentController) Dashboard(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	dashboard, err := c.dashboardService.StudentDashboard(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dashboard, ""))
}

// ListInternships returns Open postings with the hasApplied flag
// @Summary Browse open internships
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search in title, description and company name"
// @Param location query string false "Location filter"
// @Param sort query string false "Sort order" Enums(newest, oldest, start_date)
// @Success 200 {object} dto.APIResponse{data=[]dto.InternshipResponse}
// @Router /student/internships [get]
func (c *StudentController) ListInternships(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	filter := dto.InternshipListFilter{
		Query:    ctx.Query("q"),
		Location: ctx.Query("location"),
		Sort:     ctx.DefaultQuery("sort", "newest"),
	}

	internships, err := c.internshipService.ListOpenForStudent(ctx, userID, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.InternshipResponse, 0, len(internships))
	for _, internship := range internships {
		responses = append(responses, dto.FromInternship(internship))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses, ""))
}

// Apply submits an application with a resume upload
// @Summary Apply to an internship
// @Description Creates a Pending application and stores the uploaded resume. One application per internship.
// @Tags student
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Internship ID"
// @Param resume formData file false "Resume (pdf, doc or docx)"
// @Success 201 {object} dto.APIResponse{data=dto.ApplicationResponse} "Application submitted"
// @Failure 400 {object} dto.ErrorResponse "Internship closed or bad upload"
// @Failure 409 {object} dto.ErrorResponse "Duplicate application or already placed"
// @Router /student/internships/{id}/apply [post]
func (c *StudentController) Apply(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	internshipID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var resumePath, resumeName string
	fileHeader, err := ctx.FormFile("resume")
	if err == nil && fileHeader != nil {
		if !validation.IsAllowedDocument(fileHeader.Filename) {
			middleware.HandleAPIError(ctx, apperrors.ErrInvalidFileType)
			return
		}
		resumePath, err = c.fileStorage.SaveFileWithPath(fileHeader, "resumes")
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		resumeName = fileHeader.Filename
	}

	application, err := c.applicationService.Submit(ctx, userID, internshipID, resumePath, resumeName)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromApplication(application), "Application submitted"))
}

// ListApplications returns the student's applications
// @Summary My applications
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse}
// @Router /student/applications [get]
func (c *StudentController) ListApplications(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	applications, err := c.applicationService.ListForStudent(ctx, userID)
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

// AcceptOffer accepts an offered application and creates the placement
// @Summary Accept an offer
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse} "Offer accepted"
// @Failure 400 {object} dto.ErrorResponse "No open offer on this application"
// @Failure 403 {object} dto.ErrorResponse "Application belongs to another student"
// @Router /student/applications/{id}/accept [post]
func (c *StudentController) AcceptOffer(ctx *gin.Context) {
	c.respond(ctx, true)
}

// RejectOffer declines an offered application
// @Summary Decline an offer
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse} "Offer declined"
// @Router /student/applications/{id}/reject [post]
func (c *StudentController) RejectOffer(ctx *gin.Context) {
	c.respond(ctx, false)
}

func (c *StudentController) respond(ctx *gin.Context, accept bool) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	applicationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	application, err := c.applicationService.StudentRespond(ctx, userID, applicationID, accept)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "Offer declined"
	if accept {
		message = "Offer accepted"
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromApplication(application), message))
}

// LogbookGrid returns one entry per reporting week
// @Summary My logbook weeks
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.LogbookWeekEntry}
// @Router /student/logbooks [get]
func (c *StudentController) LogbookGrid(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	grid, err := c.logbookService.WeekGrid(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(grid, ""))
}

// SubmitLogbook submits the weekly report
// @Summary Submit a weekly logbook
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Week number (1-12)"
// @Param request body dto.SubmitLogbookRequest true "Logbook content"
// @Success 201 {object} dto.APIResponse{data=models.Logbook} "Logbook submitted"
// @Failure 400 {object} dto.ErrorResponse "Deadline passed or no active placement"
// @Failure 409 {object} dto.ErrorResponse "Week already submitted"
// @Router /student/logbooks/{id} [post]
func (c *StudentController) SubmitLogbook(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	weekNo, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || weekNo < 1 || weekNo > models.LogbookWeeks {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid week number")
		errorDetail = errorDetail.WithDetails("week must be between 1 and " + strconv.Itoa(models.LogbookWeeks))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.SubmitLogbookRequest
	if !bindJSON(ctx, &req) {
		return
	}

	logbook, err := c.logbookService.Submit(ctx, userID, weekNo, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(logbook, "Logbook submitted"))
}

// EditLogbook updates a pending logbook
// @Summary Edit a pending logbook
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Logbook ID"
// @Param request body dto.SubmitLogbookRequest true "New content"
// @Success 200 {object} dto.APIResponse{data=models.Logbook} "Logbook updated"
// @Failure 409 {object} dto.ErrorResponse "Logbook already reviewed"
// @Router /student/logbooks/{id} [put]
func (c *StudentController) EditLogbook(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	logbookID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SubmitLogbookRequest
	if !bindJSON(ctx, &req) {
		return
	}

	logbook, err := c.logbookService.Edit(ctx, userID, logbookID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(logbook, "Logbook updated"))
}

// AttendanceSummary returns the monthly attendance breakdown
// @Summary My monthly attendance
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param month query int false "Month (1-12), defaults to current"
// @Param year query int false "Year, defaults to current"
// @Success 200 {object} dto.APIResponse{data=models.AttendanceSummary}
// @Failure 404 {object} dto.ErrorResponse "No active placement"
// @Router /student/attendance/summary [get]
func (c *StudentController) AttendanceSummary(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	now := time.Now()
	month, _ := strconv.Atoi(ctx.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	year, _ := strconv.Atoi(ctx.DefaultQuery("year", strconv.Itoa(now.Year())))

	summary, err := c.attendanceService.MonthlySummary(ctx, userID, year, month)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary, ""))
}

// ListDocuments returns the student's uploaded documents
// @Summary My documents
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.DocumentResponse}
// @Router /student/documents [get]
func (c *StudentController) ListDocuments(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	documents, err := c.documentService.ListMine(ctx, userID)
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

// UploadDocument stores a new document
// @Summary Upload a document
// @Tags student
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Document (pdf, doc or docx)"
// @Param docType formData string false "Document type tag" default(Resume)
// @Success 201 {object} dto.APIResponse{data=dto.DocumentResponse} "Document uploaded"
// @Failure 400 {object} dto.ErrorResponse "Missing file or unsupported type"
// @Router /student/documents [post]
func (c *StudentController) UploadDocument(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A file upload is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if !validation.IsAllowedDocument(fileHeader.Filename) {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidFileType)
		return
	}

	filePath, err := c.fileStorage.SaveFileWithPath(fileHeader, "documents")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	docType := ctx.DefaultPostForm("docType", models.DocTypeResume)
	document, err := c.documentService.Upload(ctx, userID, filePath, fileHeader.Filename, docType)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromDocument(document), "Document uploaded"))
}

// ReplaceDocument swaps the stored file of a document
// @Summary Replace a document
// @Tags student
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Param file formData file true "New file (pdf, doc or docx)"
// @Success 200 {object} dto.APIResponse "Document replaced"
// @Failure 403 {object} dto.ErrorResponse "Document belongs to another student"
// @Router /student/documents/{id} [put]
func (c *StudentController) ReplaceDocument(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	documentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A file upload is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if !validation.IsAllowedDocument(fileHeader.Filename) {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidFileType)
		return
	}

	filePath, err := c.fileStorage.SaveFileWithPath(fileHeader, "documents")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	oldPath, err := c.documentService.Replace(ctx, userID, documentID, filePath, fileHeader.Filename)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.fileStorage.DeleteFile(oldPath); err != nil {
		c.logger.Warn().Err(err).Str("path", oldPath).Msg("Failed to remove replaced document file")
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Document replaced"))
}

// DeleteDocument removes a document
// @Summary Delete a document
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} dto.APIResponse "Document deleted"
// @Failure 403 {object} dto.ErrorResponse "Document belongs to another student"
// @Router /student/documents/{id} [delete]
func (c *StudentController) DeleteDocument(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	documentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	filePath, err := c.documentService.Delete(ctx, userID, documentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.fileStorage.DeleteFile(filePath); err != nil {
		c.logger.Warn().Err(err).Str("path", filePath).Msg("Failed to remove deleted document file")
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Document deleted"))
}
