package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/atsdairy/dashboard/internal/session"
)

// AuthHandler exposes the stubbed login/signup/forgot-password flows. None
// of this is real authentication; see the session package.
type AuthHandler struct {
	svc    *session.Service
	logger *zap.Logger
}

// NewAuthHandler constructs the HTTP handler adapter.
func NewAuthHandler(svc *session.Service, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login establishes a session when the credentials pass the shape check.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, errs, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, session.ErrInvalid) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}
	if err != nil {
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to establish session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Signup validates the registration form and then logs the user in.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req session.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid signup payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, errs, err := h.svc.Signup(c.Request.Context(), req)
	if errors.Is(err, session.ErrInvalid) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}
	if err != nil {
		h.logger.Error("signup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to establish session"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword checks the email shape and always reports success.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	errs, err := h.svc.ForgotPassword(req.Email)
	if errors.Is(err, session.ErrInvalid) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the address exists, reset instructions have been sent"})
}

// Logout clears the session and all session-scoped state.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context()); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to clear session"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Session reports the current session state.
func (h *AuthHandler) Session(c *gin.Context) {
	user, ok := h.svc.Current()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "user": user})
}

// Sync consumes a pending login broadcast from another instance, if any.
func (h *AuthHandler) Sync(c *gin.Context) {
	adopted, err := h.svc.AdoptBroadcast(c.Request.Context())
	if err != nil {
		h.logger.Error("broadcast sync failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to sync session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"adopted": adopted})
}
