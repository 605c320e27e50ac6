package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/gradebook-service/internal/services"
	"github.com/campusworks/gradebook-service/internal/sessions"
	"github.com/campusworks/gradebook-service/internal/utils"
	"github.com/campusworks/gradebook-service/internal/validator"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
	store       *sessions.Store
	validator   *validator.Validator
	sessionTTL  time.Duration
}

func NewAuthHandler(
	authService services.AuthService,
	store *sessions.Store,
	validator *validator.Validator,
	logger utils.Logger,
	sessionTTL time.Duration,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
		store:       store,
		validator:   validator,
		sessionTTL:  sessionTTL,
	}
}

// Register creates a new user account
// @Summary Register user
// @Description Registers a new student or teacher account
// @Tags auth
// @Accept json
// @Produce json
// @Param user body services.RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /api/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
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

	h.LogRequest(c, "Registering user", "username", req.Username)

	userID, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user_id": userID,
	})
}

// Login verifies credentials and establishes a session
// @Summary Log in
// @Description Verifies credentials and issues a session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body services.LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Username and password required",
		})
		return
	}

	if errs := h.validator.Validate(&req); errs != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Username and password required",
		})
		return
	}

	user, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	token, err := h.store.Create(c.Request.Context(), user.ID, user.UserType)
	if err != nil {
		h.LogError(c, err, "Failed to create session")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
		return
	}

	c.SetCookie(SessionCookieName, token, int(h.sessionTTL.Seconds()), "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    user,
	})
}

// Logout tears down the session
// @Summary Log out
// @Description Clears the session; calling without a session is a no-op success
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := tokenFromRequest(c)
	if token != "" {
		if err := h.store.Delete(c.Request.Context(), token); err != nil {
			h.LogError(c, err, "Failed to delete session")
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Message: "Internal server error",
			})
			return
		}
	}

	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}
