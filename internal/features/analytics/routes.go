package analytics

import (
	"github.com/gin-gonic/gin"

	"github.com/taskhive/taskhive/internal/middleware"
	"github.com/taskhive/taskhive/internal/pkg/logger"
)

func RegisterRoutes(router *gin.RouterGroup, tasks TaskSource, projects ProjectSource, users UserSource, log *logger.Logger) {
	service := NewService(tasks, projects, users, log)
	handler := NewHandler(service)

	authed := router.Group("")
	authed.Use(middleware.Auth())
	{
		authed.GET("/tasks/analytics", handler.UserAnalytics)
		authed.GET("/projects/:id/analytics", handler.TeamAnalytics)
		authed.GET("/analytics/insights", handler.Insights)
		authed.GET("/analytics/system", handler.SystemAnalytics)
	}
}
