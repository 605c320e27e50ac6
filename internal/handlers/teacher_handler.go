package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/gradebook-service/internal/services"
	"github.com/campusworks/gradebook-service/internal/utils"
	"github.com/campusworks/gradebook-service/internal/validator"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type TeacherHandler struct {
	BaseHandler
	classService      services.ClassService
	enrollmentService services.EnrollmentService
	validator         *validator.Validator
}

func NewTeacherHandler(
	classService services.ClassService,
	enrollmentService services.EnrollmentService,
	validator *validator.Validator,
	logger utils.Logger,
) *TeacherHandler {
	return &TeacherHandler{
		BaseHandler:       NewBaseHandler(logger),
		classService:      classService,
		enrollmentService: enrollmentService,
		validator:         validator,
	}
}

// GetTeacherClasses lists classes taught by the calling teacher
// @Summary List own classes
// @Description Lists the classes owned by the logged-in teacher
// @Tags teacher
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/teacher/classes [get]
func (h *TeacherHandler) GetTeacherClasses(c *gin.Context) {
	viewer, err := GetViewerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Authentication required",
		})
		return
	}

	classes, err := h.classService.ListByTeacher(c.Request.Context(), viewer.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"classes": classes,
	})
}

// UpdateGrade overwrites a grade on an enrollment in an owned class
// @Summary Update grade
// @Description Sets the grade on an enrollment; only the class's teacher may grade it
// @Tags teacher
// @Accept json
// @Produce json
// @Param enrollment_id path uint true "Enrollment ID"
// @Param grade body services.UpdateGradeRequest true "Grade"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/teacher/grades/{enrollment_id} [put]
func (h *TeacherHandler) UpdateGrade(c *gin.Context) {
	enrollmentID := h.parseIDParam(c, "enrollment_id")
	if enrollmentID == 0 {
		return
	}

	var req services.UpdateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Grade must be a number",
		})
		return
	}

	if errs := h.validator.Validate(&req); errs != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Grade is required",
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

	h.LogRequest(c, "Updating grade", "enrollment_id", enrollmentID)

	enrollment, err := h.enrollmentService.UpdateGrade(c.Request.Context(), enrollmentID, *req.Grade, viewer.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Grade updated successfully",
		"enrollment": enrollment,
	})
}

// ExportRoster downloads the class roster as an xlsx workbook
// @Summary Export roster
// @Description Downloads the roster of an owned class as a spreadsheet
// @Tags teacher
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path uint true "Class ID"
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/teacher/classes/{id}/export [get]
func (h *TeacherHandler) ExportRoster(c *gin.Context) {
	classID := h.parseIDParam(c, "id")
	if classID == 0 {
		return
	}

	viewer, err := GetViewerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Authentication required",
		})
		return
	}

	h.LogRequest(c, "Exporting roster", "class_id", classID)

	file, filename, err := h.classService.ExportRoster(c.Request.Context(), classID, viewer.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		h.LogError(c, err, "Failed to write roster workbook")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
