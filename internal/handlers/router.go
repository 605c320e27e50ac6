package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/gradebook-service/internal/models"
	"github.com/campusworks/gradebook-service/internal/services"
	"github.com/campusworks/gradebook-service/internal/sessions"
	"github.com/campusworks/gradebook-service/internal/utils"
	"github.com/campusworks/gradebook-service/internal/validator"
)

type HandlerManager struct {
	authHandler    *AuthHandler
	classHandler   *ClassHandler
	teacherHandler *TeacherHandler
	studentHandler *StudentHandler
	authMiddleware *SessionAuthMiddleware
	serviceManager services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	store *sessions.Store,
	validator *validator.Validator,
	logger utils.Logger,
	sessionTTL time.Duration,
) *HandlerManager {
	return &HandlerManager{
		authHandler:    NewAuthHandler(serviceManager.Auth(), store, validator, logger, sessionTTL),
		classHandler:   NewClassHandler(serviceManager.Class(), validator, logger),
		teacherHandler: NewTeacherHandler(serviceManager.Class(), serviceManager.Enrollment(), validator, logger),
		studentHandler: NewStudentHandler(serviceManager.Enrollment(), validator, logger),
		authMiddleware: NewSessionAuthMiddleware(store),
		serviceManager: serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// Auth routes - no session required. Logout stays public so a
		// client with a stale token can still clear its cookie.
		api.POST("/register", hm.authHandler.Register)
		api.POST("/login", hm.authHandler.Login)
		api.POST("/logout", hm.authHandler.Logout)

		// Class routes - all authenticated users
		classes := api.Group("/classes")
		classes.Use(hm.authMiddleware.AuthMiddleware())
		{
			classes.GET("", hm.classHandler.ListClasses)
			classes.GET("/:id", hm.classHandler.GetClass)
			classes.POST("", hm.authMiddleware.RequireRoleMiddleware(models.UserTypeTeacher), hm.classHandler.CreateClass)
		}

		// Teacher routes - teachers only
		teacher := api.Group("/teacher")
		teacher.Use(hm.authMiddleware.AuthMiddleware())
		teacher.Use(hm.authMiddleware.RequireRoleMiddleware(models.UserTypeTeacher))
		{
			teacher.GET("/classes", hm.teacherHandler.GetTeacherClasses)
			teacher.GET("/classes/:id/export", hm.teacherHandler.ExportRoster)
			teacher.PUT("/grades/:enrollment_id", hm.teacherHandler.UpdateGrade)
		}

		// Student routes - students only
		student := api.Group("/student")
		student.Use(hm.authMiddleware.AuthMiddleware())
		student.Use(hm.authMiddleware.RequireRoleMiddleware(models.UserTypeStudent))
		{
			student.GET("/classes", hm.studentHandler.GetStudentClasses)
			student.POST("/enroll", hm.studentHandler.Enroll)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": "gradebook-service",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "gradebook-service",
		})
	})
}
