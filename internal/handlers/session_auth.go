package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/gradebook-service/internal/models"
	"github.com/campusworks/gradebook-service/internal/services"
	"github.com/campusworks/gradebook-service/internal/sessions"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "gradebook_session"

// SessionAuthMiddleware authenticates requests against the server-side
// session store. The client holds only an opaque token; the {user_id,
// user_type} binding lives in the store.
type SessionAuthMiddleware struct {
	store *sessions.Store
}

func NewSessionAuthMiddleware(store *sessions.Store) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{store: store}
}

// tokenFromRequest extracts the session token from the cookie, falling
// back to a bearer Authorization header for non-browser clients.
func tokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// AuthMiddleware rejects requests without a valid session and stores
// the session identity in the request context.
func (sam *SessionAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authentication required",
			})
			c.Abort()
			return
		}

		session, err := sam.store.Get(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, sessions.ErrSessionNotFound) {
				c.JSON(http.StatusUnauthorized, ErrorResponse{
					Message: "Authentication required",
				})
			} else {
				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal server error",
				})
			}
			c.Abort()
			return
		}

		c.Set("session_token", token)
		c.Set("user_id", session.UserID)
		c.Set("user_type", session.UserType)

		c.Next()
	}
}

// RequireRoleMiddleware checks that the session user has one of the
// required roles. Distinct from authentication failure: the caller is
// known, but not allowed.
func (sam *SessionAuthMiddleware) RequireRoleMiddleware(requiredRoles ...models.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		userType, exists := c.Get("user_type")
		if !exists {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: "Access denied",
			})
			c.Abort()
			return
		}

		role, ok := userType.(models.UserType)
		if !ok {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: "Access denied",
			})
			c.Abort()
			return
		}

		for _, requiredRole := range requiredRoles {
			if role == requiredRole {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Access denied",
		})
		c.Abort()
	}
}

// GetViewerFromContext builds the Viewer identity for ownership checks
// from the session values set by AuthMiddleware.
func GetViewerFromContext(c *gin.Context) (services.Viewer, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return services.Viewer{}, fmt.Errorf("user id not found in context")
	}
	id, ok := userID.(uint)
	if !ok {
		return services.Viewer{}, fmt.Errorf("invalid user id type in context")
	}

	userType, exists := c.Get("user_type")
	if !exists {
		return services.Viewer{}, fmt.Errorf("user type not found in context")
	}
	role, ok := userType.(models.UserType)
	if !ok {
		return services.Viewer{}, fmt.Errorf("invalid user type in context")
	}

	return services.Viewer{UserID: id, UserType: role}, nil
}
