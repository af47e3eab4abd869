package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	questionhandler "github.com/questionboard/questionboard/internal/question/handler"
	"github.com/questionboard/questionboard/internal/question/service"
	"github.com/questionboard/questionboard/internal/sessions"
	"github.com/questionboard/questionboard/pkg/logger"
	"github.com/questionboard/questionboard/pkg/middleware"
)

// RouterDeps carries everything NewRouter wires together.
type RouterDeps struct {
	Questions *service.Service
	Gate      *sessions.Gate
	// Ready lists dependencies checked by /ready, keyed by name.
	Ready   map[string]Pinger
	Started time.Time
}

// NewRouter builds the HTTP surface: pages, question API, admin session API
// and the operational endpoints.
func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinLogger(), middleware.RouteGuard(d.Gate))

	if d.Started.IsZero() {
		d.Started = time.Now()
	}
	RegisterHealth(r, d.Started, d.Ready)
	RegisterSwagger(r)
	RegisterPages(r)
	NewAdminHandler(d.Gate).Register(r)
	questionhandler.RegisterQuestionRoutes(r, d.Questions, middleware.RequireSession(d.Gate))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}
