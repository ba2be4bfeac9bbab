package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/classware/gradebook-service/internal/auth"
	"github.com/classware/gradebook-service/internal/models"
	"github.com/classware/gradebook-service/internal/utils"
)

// SessionCookieName is the cookie carrying the login token.
const SessionCookieName = "gradebook_session"

// SessionAuthMiddleware authenticates requests against the Redis
// session store. The token comes from the session cookie or a Bearer
// Authorization header.
type SessionAuthMiddleware struct {
	sessions *auth.SessionStore
	logger   utils.Logger
}

func NewSessionAuthMiddleware(sessions *auth.SessionStore, logger utils.Logger) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{
		sessions: sessions,
		logger:   logger,
	}
}

// AuthMiddleware resolves the session token and stores user identity in
// the request context.
func (m *SessionAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Unauthorized",
				Details: "missing session token",
			})
			return
		}

		session, err := m.sessions.Get(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Unauthorized",
				Details: "invalid or expired session",
			})
			return
		}

		c.Set("user_id", session.UserID)
		c.Set("user_role", session.Role)
		c.Set("session_token", token)

		c.Next()
	}
}

// RequireRoleMiddleware rejects requests whose session role is not in
// the allowed set. It must run after AuthMiddleware.
func (m *SessionAuthMiddleware) RequireRoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("user_role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
			return
		}

		role, ok := value.(models.UserRole)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Message: "Forbidden",
			Details: "insufficient role",
		})
	}
}

func (m *SessionAuthMiddleware) extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}
