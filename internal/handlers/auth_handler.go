package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classware/gradebook-service/internal/auth"
	"github.com/classware/gradebook-service/internal/services"
	"github.com/classware/gradebook-service/internal/utils"
	"github.com/classware/gradebook-service/internal/validator"
)

type AuthHandler struct {
	BaseHandler
	users    services.UserService
	sessions *auth.SessionStore
}

func NewAuthHandler(users services.UserService, sessions *auth.SessionStore, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		users:       users,
		sessions:    sessions,
	}
}

// Register creates an account and opens a session for it
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} models.User
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	h.LogRequest(c, "Registering account")

	var req validator.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	user, err := h.users.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), user)
	if err != nil {
		h.LogError(c, err, "Failed to open session after registration")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, user)
}

// Login opens a session for valid credentials
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	h.LogRequest(c, "Logging in")

	var req validator.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), user)
	if err != nil {
		h.LogError(c, err, "Failed to open session")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, user)
}

// Logout revokes the current session
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.LogRequest(c, "Logging out")

	token, exists := c.Get("session_token")
	if exists {
		if err := h.sessions.Delete(c.Request.Context(), token.(string)); err != nil {
			h.LogError(c, err, "Failed to delete session")
		}
	}

	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

// Me returns the authenticated user's profile
// @Summary Get current user
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(SessionCookieName, token, 0, "/", "", false, true)
}
