package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/gradebook-service/internal/services"
	"github.com/campusworks/gradebook-service/internal/utils"
	"github.com/campusworks/gradebook-service/internal/validator"
)

type StudentHandler struct {
	BaseHandler
	enrollmentService services.EnrollmentService
	validator         *validator.Validator
}

func NewStudentHandler(enrollmentService services.EnrollmentService, validator *validator.Validator, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler:       NewBaseHandler(logger),
		enrollmentService: enrollmentService,
		validator:         validator,
	}
}

// GetStudentClasses lists classes the calling student is enrolled in
// @Summary List enrolled classes
// @Description Lists the student's classes, each annotated with their own grade
// @Tags student
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/student/classes [get]
func (h *StudentHandler) GetStudentClasses(c *gin.Context) {
	viewer, err := GetViewerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Authentication required",
		})
		return
	}

	classes, err := h.enrollmentService.ListStudentClasses(c.Request.Context(), viewer.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"classes": classes,
	})
}

// Enroll enrolls the calling student in a class
// @Summary Enroll in class
// @Description Enrolls the student if the class exists, has a free seat, and they are not already enrolled
// @Tags student
// @Accept json
// @Produce json
// @Param enrollment body services.EnrollRequest true "Class to enroll in"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/student/enroll [post]
func (h *StudentHandler) Enroll(c *gin.Context) {
	var req services.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Class ID is required",
		})
		return
	}

	if errs := h.validator.Validate(&req); errs != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Class ID is required",
		})
		return
	}

	viewer, err := GetViewerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Authentication required",
		})
		return
	}

	h.LogRequest(c, "Enrolling student", "class_id", req.ClassID)

	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), viewer.UserID, req.ClassID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Enrolled successfully",
		"enrollment": enrollment,
	})
}
