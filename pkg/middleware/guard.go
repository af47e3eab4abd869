package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/questionboard/questionboard/pkg/logger"
)

const (
	AdminPath = "/admin"
	LoginPath = "/admin/login"
	APIPrefix = "/api/"
)

// RouteGuard is the page-level gate applied to every request:
//   - admin pages without a session redirect to the login page
//   - the login page with a session redirects to the dashboard
//   - API paths get permissive CORS headers, and OPTIONS preflights end here with 204
//
// It does not authorize API handlers; see RequireSession.
func RouteGuard(checker SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		switch {
		case path == LoginPath:
			if authenticated(checker, c.Request) {
				c.Redirect(http.StatusTemporaryRedirect, AdminPath)
				c.Abort()
				return
			}
		case isAdminArea(path):
			if !authenticated(checker, c.Request) {
				c.Redirect(http.StatusTemporaryRedirect, LoginPath)
				c.Abort()
				return
			}
		case strings.HasPrefix(path, APIPrefix):
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
		}
		c.Next()
	}
}

func isAdminArea(path string) bool {
	return path == AdminPath || strings.HasPrefix(path, AdminPath+"/")
}

// authenticated treats a failing session check as "no session", so page
// navigation degrades to the login form instead of an error page.
func authenticated(checker SessionChecker, r *http.Request) bool {
	ok, err := checker.IsAuthenticated(r)
	if err != nil {
		logger.Warnf("route guard: session check failed for %s: %v", r.URL.Path, err)
		return false
	}
	return ok
}
