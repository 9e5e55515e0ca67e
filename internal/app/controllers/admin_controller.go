package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"internhub/internal/app/models/dto"
	"internhub/internal/app/services"
	"internhub/internal/middleware"
	"internhub/internal/pkg/helpers"
)

// AdminController serves the administrative surface: account management,
// organizations, postings and override editing of every workflow record.
type AdminController struct {
	dashboardService    *services.DashboardService
	userService         *services.UserService
	organizationService *services.OrganizationService
	internshipService   *services.InternshipService
	applicationService  *services.ApplicationService
	placementService    *services.PlacementService
	attendanceService   *services.AttendanceService
	logbookService      *services.LogbookService
	evaluationService   *services.EvaluationService
	logger              zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(
	dashboardService *services.DashboardService,
	userService *services.UserService,
	organizationService *services.OrganizationService,
	internshipService *services.InternshipService,
	applicationService *services.ApplicationService,
	placementService *services.PlacementService,
	attendanceService *services.AttendanceService,
	logbookService *services.LogbookService,
	evaluationService *services.EvaluationService,
	logger zerolog.Logger,
) *AdminController {
	return &AdminController{
		dashboardService:    dashboardService,
		userService:         userService,
		organizationService: organizationService,
		internshipService:   internshipService,
		applicationService:  applicationService,
		placementService:    placementService,
		attendanceService:   attendanceService,
		logbookService:      logbookService,
		evaluationService:   evaluationService,
		logger:              logger,
	}
}

// Dashboard returns the global counters
// @Summary Admin dashboard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AdminDashboardResponse}
// @Router /admin/dashboard [get]
func (c *AdminController) Dashboard(ctx *gin.Context) {
	dashboard, err := c.dashboardService.AdminDashboard(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dashboard, ""))
}

// CreateUser creates a user with its role profile
// @Summary Create a user
// @Description Creates the user and its role profile in one transaction.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "User data"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse} "User created"
// @Failure 409 {object} dto.ErrorResponse "Username or email already exists"
// @Router /admin/users [post]
func (c *AdminController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(ctx, &req) {
		return
	}

	user, err := c.userService.CreateUser(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromUser(user), "User created"))
}

// ListUsers returns users filtered by role
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter" Enums(student, company, academic, admin)
// @Param page query int false "Page (1-based)" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	page, size := paginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	users, total, err := c.userService.ListUsers(ctx, ctx.Query("role"), offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.FromUser(user))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPaginatedResponse(responses, page, limit, total), ""))
}

// GetUser returns one user with its role profile
// @Summary Get a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserDetailResponse}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [get]
func (c *AdminController) GetUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	detail, err := c.userService.GetUser(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(detail, ""))
}

// UpdateUser applies partial updates to a user
// @Summary Update a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.UserDetailResponse}
// @Router /admin/users/{id} [put]
func (c *AdminController) UpdateUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !bindJSON(ctx, &req) {
		return
	}

	detail, err := c.userService.UpdateUser(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(detail, "User updated"))
}

// DeleteUser removes a user and its dependent records
// @Summary Delete a user
// @Description Deletes the user; dependent records cascade. Self-deletion is blocked.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse "User deleted"
// @Failure 403 {object} dto.ErrorResponse "Cannot delete your own account"
// @Router /admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.userService.DeleteUser(ctx, id, actorID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "User deleted"))
}

// CreateCompany creates a company
// @Summary Create a company
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCompanyRequest true "Company data"
// @Success 201 {object} dto.APIResponse{data=models.Company}
// @Router /admin/companies [post]
func (c *AdminController) CreateCompany(ctx *gin.Context) {
	var req dto.CreateCompanyRequest
	if !bindJSON(ctx, &req) {
		return
	}

	company, err := c.organizationService.CreateCompany(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(company, "Company created"))
}

// ListCompanies returns all companies
// @Summary List companies
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Company}
// @Router /admin/companies [get]
func (c *AdminController) ListCompanies(ctx *gin.Context) {
	companies, err := c.organizationService.ListCompanies(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(companies, ""))
}

// GetCompany returns a company with its departments
// @Summary Get a company
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Success 200 {object} dto.APIResponse{data=models.Company}
// @Failure 404 {object} dto.ErrorResponse "Company not found"
// @Router /admin/companies/{id} [get]
func (c *AdminController) GetCompany(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	company, err := c.organizationService.GetCompany(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(company, ""))
}

// UpdateCompany applies partial updates to a company
// @Summary Update a company
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Param request body dto.UpdateCompanyRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Company}
// @Router /admin/companies/{id} [put]
func (c *AdminController) UpdateCompany(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if !bindJSON(ctx, &req) {
		return
	}

	company, err := c.organizationService.UpdateCompany(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(company, "Company updated"))
}

// DeleteCompany removes a company
// @Summary Delete a company
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Success 200 {object} dto.APIResponse "Company deleted"
// @Router /admin/companies/{id} [delete]
func (c *AdminController) DeleteCompany(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.organizationService.DeleteCompany(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Company deleted"))
}

// CreateDepartment adds a department under a company
// @Summary Add a department
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Param request body dto.CreateDepartmentRequest true "Department name"
// @Success 201 {object} dto.APIResponse{data=models.Department}
// @Failure 409 {object} dto.ErrorResponse "Department name already used in this company"
// @Router /admin/companies/{id}/departments [post]
func (c *AdminController) CreateDepartment(ctx *gin.Context) {
	companyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateDepartmentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	department, err := c.organizationService.CreateDepartment(ctx, companyID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(department, "Department created"))
}

// RenameDepartment renames a department
// @Summary Rename a department
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Param deptId path int true "Department ID"
// @Param request body dto.UpdateDepartmentRequest true "New name"
// @Success 200 {object} dto.APIResponse "Department renamed"
// @Router /admin/companies/{id}/departments/{deptId} [put]
func (c *AdminController) RenameDepartment(ctx *gin.Context) {
	if _, ok := parseIDParam(ctx, "id"); !ok {
		return
	}
	departmentID, ok := parseIDParam(ctx, "deptId")
	if !ok {
		return
	}

	var req dto.UpdateDepartmentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.organizationService.RenameDepartment(ctx, departmentID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Department renamed"))
}

// DeleteDepartment removes a department
// @Summary Delete a department
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Param deptId path int true "Department ID"
// @Success 200 {object} dto.APIResponse "Department deleted"
// @Router /admin/companies/{id}/departments/{deptId} [delete]
func (c *AdminController) DeleteDepartment(ctx *gin.Context) {
	if _, ok := parseIDParam(ctx, "id"); !ok {
		return
	}
	departmentID, ok := parseIDParam(ctx, "deptId")
	if !ok {
		return
	}

	if err := c.organizationService.DeleteDepartment(ctx, departmentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Department deleted"))
}

// CreateInternship creates a posting
// @Summary Create an internship
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInternshipRequest true "Posting data"
// @Success 201 {object} dto.APIResponse{data=dto.InternshipResponse}
// @Router /admin/internships [post]
func (c *AdminController) CreateInternship(ctx *gin.Context) {
	var req dto.CreateInternshipRequest
	if !bindJSON(ctx, &req) {
		return
	}

	internship, err := c.internshipService.CreateInternship(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromInternship(internship), "Internship created"))
}

// ListInternships returns all postings
// @Summary List internships
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-based)" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /admin/internships [get]
func (c *AdminController) ListInternships(ctx *gin.Context) {
	page, size := paginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	internships, total, err := c.internshipService.ListInternships(ctx, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.InternshipResponse, 0, len(internships))
	for _, internship := range internships {
		responses = append(responses, dto.FromInternship(internship))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPaginatedResponse(responses, page, limit, total), ""))
}

// GetInternship returns one posting
// @Summary Get an internship
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Internship ID"
// @Success 200 {object} dto.APIResponse{data=dto.InternshipResponse}
// @Failure 404 {object} dto.ErrorResponse "Internship not found"
// @Router /admin/internships/{id} [get]
func (c *AdminController) GetInternship(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	internship, err := c.internshipService.GetInternship(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromInternship(internship), ""))
}

// UpdateInternship applies partial updates to a posting
// @Summary Update an internship
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Internship ID"
// @Param request body dto.UpdateInternshipRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.InternshipResponse}
// @Router /admin/internships/{id} [put]
func (c *AdminController) UpdateInternship(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateInternshipRequest
	if !bindJSON(ctx, &req) {
		return
	}

	internship, err := c.internshipService.UpdateInternship(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromInternship(internship), "Internship updated"))
}

// DeleteInternship removes a posting
// @Summary Delete an internship
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Internship ID"
// @Success 200 {object} dto.APIResponse "Internship deleted"
// @Router /admin/internships/{id} [delete]
func (c *AdminController) DeleteInternship(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.internshipService.DeleteInternship(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Internship deleted"))
}

// ListApplications returns all applications
// @Summary List applications
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-based)" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /admin/applications [get]
func (c *AdminController) ListApplications(ctx *gin.Context) {
	page, size := paginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	applications, total, err := c.applicationService.ListApplications(ctx, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.ApplicationResponse, 0, len(applications))
	for _, application := range applications {
		responses = append(responses, dto.FromApplication(application))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPaginatedResponse(responses, page, limit, total), ""))
}

// GetApplication returns one application
// @Summary Get an application
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse}
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /admin/applications/{id} [get]
func (c *AdminController) GetApplication(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	application, err := c.applicationService.GetApplication(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromApplication(application), ""))
}

// DeleteApplication removes an application
// @Summary Delete an application
// @Description Blocked while a placement exists for the same student and internship.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse "Application deleted"
// @Failure 409 {object} dto.ErrorResponse "A placement depends on this application"
// @Router /admin/applications/{id} [delete]
func (c *AdminController) DeleteApplication(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.applicationService.DeleteApplication(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Application deleted"))
}

// ReplaceSupervisor reassigns the handling supervisor on an application
// @Summary Replace the handling supervisor
// @Description Blocked once a placement exists for the same student and internship.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.ReplaceSupervisorRequest true "New supervisor"
// @Success 200 {object} dto.APIResponse "Supervisor replaced"
// @Failure 409 {object} dto.ErrorResponse "A placement depends on this application"
// @Router /admin/applications/{id}/replace-supervisor [post]
func (c *AdminController) ReplaceSupervisor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ReplaceSupervisorRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.applicationService.ReplaceSupervisor(ctx, id, req.CompanySupervisorID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Supervisor replaced"))
}

// ListPlacements returns all placements
// @Summary List placements
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-based)" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /admin/placements [get]
func (c *AdminController) ListPlacements(ctx *gin.Context) {
	page, size := paginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	placements, total, err := c.placementService.ListPlacements(ctx, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPaginatedResponse(placements, page, limit, total), ""))
}

// UpdatePlacement updates placement dates or status
// @Summary Update a placement
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Placement ID"
// @Param request body dto.UpdatePlacementRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.InternshipPlacement}
// @Router /admin/placements/{id} [put]
func (c *AdminController) UpdatePlacement(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdatePlacementRequest
	if !bindJSON(ctx, &req) {
		return
	}

	placement, err := c.placementService.UpdatePlacement(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(placement, "Placement updated"))
}

// DeletePlacement removes a placement
// @Summary Delete a placement
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Placement ID"
// @Success 200 {object} dto.APIResponse "Placement deleted"
// @Router /admin/placements/{id} [delete]
func (c *AdminController) DeletePlacement(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.placementService.DeletePlacement(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Placement deleted"))
}

// ListAttendance returns all attendance records
// @Summary List attendance records
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-based)" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /admin/attendance [get]
func (c *AdminController) ListAttendance(ctx *gin.Context) {
	page, size := paginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	records, total, err := c.attendanceService.ListAttendance(ctx, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPaginatedResponse(records, page, limit, total), ""))
}

// CreateAttendance inserts an attendance record directly
// @Summary Create an attendance record
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AdminAttendanceRequest true "Attendance data"
// @Success 201 {object} dto.APIResponse{data=models.Attendance}
// @Failure 409 {object} dto.ErrorResponse "Record already exists for this day"
// @Router /admin/attendance [post]
func (c *AdminController) CreateAttendance(ctx *gin.Context) {
	var req dto.AdminAttendanceRequest
	if !bindJSON(ctx, &req) {
		return
	}

	record, err := c.attendanceService.AdminCreate(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(record, "Attendance record created"))
}

// UpdateAttendance overwrites an attendance record
// @Summary Update an attendance record
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendance ID"
// @Param request body dto.AdminAttendanceRequest true "Attendance data"
// @Success 200 {object} dto.APIResponse{data=models.Attendance}
// @Router /admin/attendance/{id} [put]
func (c *AdminController) UpdateAttendance(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AdminAttendanceRequest
	if !bindJSON(ctx, &req) {
		return
	}

	record, err := c.attendanceService.AdminUpdate(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(record, "Attendance record updated"))
}

// DeleteAttendance removes an attendance record
// @Summary Delete an attendance record
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendance ID"
// @Success 200 {object} dto.APIResponse "Attendance record deleted"
// @Router /admin/attendance/{id} [delete]
func (c *AdminController) DeleteAttendance(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.attendanceService.AdminDelete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Attendance record deleted"))
}

// ListLogbooks returns all logbooks
// @Summary List logbooks
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-based)" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /admin/logbooks [get]
func (c *AdminController) ListLogbooks(ctx *gin.Context) {
	page, size := paginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	logbooks, total, err := c.logbookService.ListLogbooks(ctx, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPaginatedResponse(logbooks, page, limit, total), ""))
}

// UpdateLogbookStatus overwrites a logbook status
// @Summary Update a logbook status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Logbook ID"
// @Param request body dto.UpdateLogbookStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse "Status updated"
// @Router /admin/logbooks/{id}/status [put]
func (c *AdminController) UpdateLogbookStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateLogbookStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.logbookService.AdminUpdateStatus(ctx, id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Logbook status updated"))
}

// DeleteLogbook removes a logbook
// @Summary Delete a logbook
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Logbook ID"
// @Success 200 {object} dto.APIResponse "Logbook deleted"
// @Router /admin/logbooks/{id} [delete]
func (c *AdminController) DeleteLogbook(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.logbookService.AdminDelete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Logbook deleted"))
}

// ListEvaluations returns all evaluations
// @Summary List evaluations
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-based)" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /admin/evaluations [get]
func (c *AdminController) ListEvaluations(ctx *gin.Context) {
	page, size := paginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	evaluations, total, err := c.evaluationService.ListEvaluations(ctx, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.EvaluationResponse, 0, len(evaluations))
	for _, evaluation := range evaluations {
		responses = append(responses, dto.FromEvaluation(evaluation))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPaginatedResponse(responses, page, limit, total), ""))
}

// ResetEvaluation clears one side of an evaluation
// @Summary Reset an evaluation side
// @Description Clears the company or academic side so the supervisor can resubmit.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Evaluation ID"
// @Param request body dto.ResetEvaluationRequest true "Side to reset"
// @Success 200 {object} dto.APIResponse "Side reset"
// @Router /admin/evaluations/{id}/reset [post]
func (c *AdminController) ResetEvaluation(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ResetEvaluationRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.evaluationService.ResetSide(ctx, id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Evaluation side reset"))
}

// DeleteEvaluation removes an evaluation
// @Summary Delete an evaluation
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Evaluation ID"
// @Success 200 {object} dto.APIResponse "Evaluation deleted"
// @Router /admin/evaluations/{id} [delete]
func (c *AdminController) DeleteEvaluation(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.evaluationService.AdminDelete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Evaluation deleted"))
}
