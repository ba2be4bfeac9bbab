package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/classware/gradebook-service/internal/auth"
	"github.com/classware/gradebook-service/internal/models"
	"github.com/classware/gradebook-service/internal/services"
	"github.com/classware/gradebook-service/internal/utils"
)

type HandlerManager struct {
	authHandler       *AuthHandler
	assignmentHandler *AssignmentHandler
	submissionHandler *SubmissionHandler
	rosterHandler     *RosterHandler
	statisticsHandler *StatisticsHandler
	authMiddleware    *SessionAuthMiddleware
	healthCheck       func(*gin.Context)
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	sessions *auth.SessionStore,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:       NewAuthHandler(serviceManager.User(), sessions, logger),
		assignmentHandler: NewAssignmentHandler(serviceManager.Assignment(), logger),
		submissionHandler: NewSubmissionHandler(serviceManager.Submission(), serviceManager.Grading(), logger),
		rosterHandler:     NewRosterHandler(serviceManager.Roster(), logger),
		statisticsHandler: NewStatisticsHandler(serviceManager.Statistics(), serviceManager.Export(), logger),
		authMiddleware:    NewSessionAuthMiddleware(sessions, logger),
		healthCheck: func(c *gin.Context) {
			status := 200
			body := gin.H{"status": "healthy", "service": "gradebook-service"}
			if err := serviceManager.HealthCheck(c.Request.Context()); err != nil {
				status = 503
				body["status"] = "unhealthy"
			}
			c.JSON(status, body)
		},
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")

	// Auth routes with no session requirement
	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/register", hm.authHandler.Register)
		authRoutes.POST("/login", hm.authHandler.Login)
	}

	// Everything below requires a valid session
	authed := v1.Group("")
	authed.Use(hm.authMiddleware.AuthMiddleware())
	{
		authed.POST("/auth/logout", hm.authHandler.Logout)
		authed.GET("/auth/me", hm.authHandler.Me)

		// Assignment routes
		assignments := authed.Group("/assignments")
		{
			// Create/modify assignments - Teachers only
			assignments.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), hm.assignmentHandler.CreateAssignment)
			assignments.PUT("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), hm.assignmentHandler.UpdateAssignment)
			assignments.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), hm.assignmentHandler.DeleteAssignment)

			// View assignments - All authenticated users
			assignments.GET("", hm.assignmentHandler.ListAssignments)
			assignments.GET("/:id", hm.assignmentHandler.GetAssignment)
			assignments.GET("/:id/details", hm.assignmentHandler.GetAssignmentWithQuestions)

			// Submissions for one assignment
			assignments.POST("/:id/submissions", hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent), hm.submissionHandler.Submit)
			assignments.GET("/:id/submissions", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), hm.submissionHandler.ListByAssignment)
		}

		// Submission routes
		submissions := authed.Group("/submissions")
		{
			submissions.GET("/me", hm.submissionHandler.ListMySubmissions)
			submissions.GET("/:id", hm.submissionHandler.GetSubmission)
			submissions.POST("/:id/grade", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), hm.submissionHandler.Grade)
			submissions.GET("/student/:student_id", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), hm.submissionHandler.ListByStudent)
		}

		// Roster routes - Teachers only
		students := authed.Group("/students")
		students.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher))
		{
			students.POST("", hm.rosterHandler.AddStudent)
			students.GET("", hm.rosterHandler.ListStudents)
			students.DELETE("/:id", hm.rosterHandler.RemoveStudent)
		}

		// Statistics routes - Teachers only
		statistics := authed.Group("/statistics")
		statistics.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher))
		{
			statistics.GET("/students", hm.statisticsHandler.GetStudentStats)
			statistics.GET("/heatmap", hm.statisticsHandler.GetHeatmap)
			statistics.GET("/export", hm.statisticsHandler.ExportStudentStats)
		}
	}

	// Health check endpoint
	router.GET("/health", hm.healthCheck)
}
