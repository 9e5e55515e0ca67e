package routes

import (
	"github.com/gin-gonic/gin"
	"internhub/internal/app/controllers"
	"internhub/internal/app/models"
	"internhub/internal/app/models/dto"
	"internhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	notificationController *controllers.NotificationController,
	studentController *controllers.StudentController,
	companyController *controllers.CompanyController,
	academicController *controllers.AcademicController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.List)
			notifications.POST("/:id/read", notificationController.MarkRead)
		}

		student := authenticated.Group("/student")
		student.Use(authMiddleware.RoleRequired(models.RoleStudent))
		{
			student.GET("/dashboard", studentController.Dashboard)
			student.GET("/internships", studentController.ListInternships)
			student.POST("/internships/:id/apply", studentController.Apply)
			student.GET("/applications", studentController.ListApplications)
			student.POST("/applications/:id/accept", studentController.AcceptOffer)
			student.POST("/applications/:id/reject", studentController.RejectOffer)
			student.GET("/logbooks", studentController.LogbookGrid)
			student.POST("/logbooks/:id", studentController.SubmitLogbook)
			student.PUT("/logbooks/:id", studentController.EditLogbook)
			student.GET("/attendance/summary", studentController.AttendanceSummary)
			student.GET("/documents", studentController.ListDocuments)
			student.POST("/documents", studentController.UploadDocument)
			student.PUT("/documents/:id", studentController.ReplaceDocument)
			student.DELETE("/documents/:id", studentController.DeleteDocument)
		}

		company := authenticated.Group("/company")
		company.Use(authMiddleware.RoleRequired(models.RoleCompany))
		{
			company.GET("/dashboard", companyController.Dashboard)
			company.GET("/applications", companyController.ListApplications)
			company.POST("/applications/:id/decide", companyController.Decide)
			company.GET("/attendance", companyController.AttendanceToday)
			company.POST("/attendance", companyController.MarkAttendance)
			company.GET("/logbooks", companyController.PendingLogbooks)
			company.POST("/logbooks/:id/review", companyController.ReviewLogbook)
			company.GET("/evaluations", companyController.ListEvaluations)
			company.POST("/evaluations/:placementId", companyController.SubmitEvaluation)
		}

		academic := authenticated.Group("/academic")
		academic.Use(authMiddleware.RoleRequired(models.RoleAcademic))
		{
			academic.GET("/students", academicController.ListStudents)
			academic.GET("/students/:id", academicController.StudentOverview)
			academic.GET("/students/:id/attendance", academicController.StudentAttendance)
			academic.GET("/students/:id/logbooks", academicController.StudentLogbooks)
			academic.GET("/students/:id/documents", academicController.StudentDocuments)
			academic.POST("/students/:id/evaluation", academicController.SubmitEvaluation)
			academic.POST("/logbooks/:id/notes", academicController.LogbookNotes)
		}

		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.GET("/dashboard", adminController.Dashboard)

			admin.POST("/users", adminController.CreateUser)
			admin.GET("/users", adminController.ListUsers)
			admin.GET("/users/:id", adminController.GetUser)
			admin.PUT("/users/:id", adminController.UpdateUser)
			admin.DELETE("/users/:id", adminController.DeleteUser)

			admin.POST("/companies", adminController.CreateCompany)
			admin.GET("/companies", adminController.ListCompanies)
			admin.GET("/companies/:id", adminController.GetCompany)
			admin.PUT("/companies/:id", adminController.UpdateCompany)
			admin.DELETE("/companies/:id", adminController.DeleteCompany)
			admin.POST("/companies/:id/departments", adminController.CreateDepartment)
			admin.PUT("/companies/:id/departments/:deptId", adminController.RenameDepartment)
			admin.DELETE("/companies/:id/departments/:deptId", adminController.DeleteDepartment)

			admin.POST("/internships", adminController.CreateInternship)
			admin.GET("/internships", adminController.ListInternships)
			admin.GET("/internships/:id", adminController.GetInternship)
			admin.PUT("/internships/:id", adminController.UpdateInternship)
			admin.DELETE("/internships/:id", adminController.DeleteInternship)

			admin.GET("/applications", adminController.ListApplications)
			admin.GET("/applications/:id", adminController.GetApplication)
			admin.DELETE("/applications/:id", adminController.DeleteApplication)
			admin.POST("/applications/:id/replace-supervisor", adminController.ReplaceSupervisor)

			admin.GET("/placements", adminController.ListPlacements)
			admin.PUT("/placements/:id", adminController.UpdatePlacement)
			admin.DELETE("/placements/:id", adminController.DeletePlacement)

			admin.GET("/attendance", adminController.ListAttendance)
			admin.POST("/attendance", adminController.CreateAttendance)
			admin.PUT("/attendance/:id", adminController.UpdateAttendance)
			admin.DELETE("/attendance/:id", adminController.DeleteAttendance)

			admin.GET("/logbooks", adminController.ListLogbooks)
			admin.PUT("/logbooks/:id/status", adminController.UpdateLogbookStatus)
			admin.DELETE("/logbooks/:id", adminController.DeleteLogbook)

			admin.GET("/evaluations", adminController.ListEvaluations)
			admin.POST("/evaluations/:id/reset", adminController.ResetEvaluation)
			admin.DELETE("/evaluations/:id", adminController.DeleteEvaluation)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
