package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/questionboard/questionboard/pkg/logger"
)

// SessionChecker is the minimal interface the middlewares depend on.
type SessionChecker interface {
	IsAuthenticated(r *http.Request) (bool, error)
}

// RequireSession guards admin-only API handlers. It answers with a JSON 401
// rather than a redirect and runs independently of RouteGuard.
func RequireSession(checker SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := checker.IsAuthenticated(c.Request)
		if err != nil {
			logger.Errorf("session check failed: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify session"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
