package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/gradebook-service/internal/services"
	"github.com/campusworks/gradebook-service/internal/utils"
	"github.com/campusworks/gradebook-service/internal/validator"
)

type ClassHandler struct {
	BaseHandler
	classService services.ClassService
	validator    *validator.Validator
}

func NewClassHandler(classService services.ClassService, validator *validator.Validator, logger utils.Logger) *ClassHandler {
	return &ClassHandler{
		BaseHandler:  NewBaseHandler(logger),
		classService: classService,
		validator:    validator,
	}
}

// ListClasses lists every class with enrollment counts
// @Summary List classes
// @Description Lists all classes with derived enrolled counts and teacher names
// @Tags classes
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Router /api/classes [get]
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.classService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"classes": classes,
	})
}

// GetClass returns one class; the owning teacher also gets the roster
// @Summary Get class detail
// @Description Returns the class summary, plus the student roster for the owning teacher
// @Tags classes
// @Produce json
// @Param id path uint true "Class ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/classes/{id} [get]
func (h *ClassHandler) GetClass(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	viewer, err := GetViewerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Authentication required",
		})
		return
	}

	detail, err := h.classService.GetDetail(c.Request.Context(), id, viewer)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"class":   detail,
	})
}

// CreateClass creates a new class owned by the calling teacher
// @Summary Create class
// @Description Creates a class with a unique code and positive capacity
// @Tags classes
// @Accept json
// @Produce json
// @Param class body services.CreateClassRequest true "Class data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/classes [post]
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req services.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
		})
		return
	}

	if errs := h.validator.Validate(&req); errs != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: errs[0].Message,
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

	h.LogRequest(c, "Creating class", "class_code", req.ClassCode)

	class, err := h.classService.Create(c.Request.Context(), &req, viewer.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Class created successfully",
		"class":   class,
	})
}
