package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/questionboard/questionboard/internal/sessions"
	"github.com/questionboard/questionboard/pkg/logger"
	"github.com/questionboard/questionboard/pkg/metrics"
)

// LoginRequest is the body of POST /api/admin/login.
type LoginRequest struct {
	Password string `json:"password"`
}

// AdminHandler serves the admin login/logout endpoints.
type AdminHandler struct {
	gate *sessions.Gate
}

func NewAdminHandler(gate *sessions.Gate) *AdminHandler {
	return &AdminHandler{gate: gate}
}

// Register routes under /api/admin
func (h *AdminHandler) Register(r gin.IRouter) {
	a := r.Group("/api/admin")
	a.POST("/login", h.Login)
	a.POST("/logout", h.Logout)
}

// Login exchanges the shared admin password for a session cookie.
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is required"})
		return
	}
	if !h.gate.VerifyCredential(req.Password) {
		metrics.AdminLogins.WithLabelValues("invalid").Inc()
		logger.Warnf("admin login rejected from %s", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}
	token, err := h.gate.IssueToken()
	if err != nil {
		metrics.AdminLogins.WithLabelValues("error").Inc()
		logger.Errorf("issue session token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}
	h.gate.AttachSession(c.Writer, token)
	metrics.AdminLogins.WithLabelValues("success").Inc()
	logger.Infof("admin logged in from %s", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
}

// Logout drops the session cookie and, for signed sessions, revokes the token.
func (h *AdminHandler) Logout(c *gin.Context) {
	token := h.gate.SessionToken(c.Request)
	h.gate.ClearSession(c.Writer)
	if err := h.gate.Revoke(c.Request.Context(), token); err != nil {
		logger.Errorf("revoke session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}
