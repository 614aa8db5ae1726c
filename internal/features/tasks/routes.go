package tasks

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskhive/taskhive/internal/features/gamification"
	"github.com/taskhive/taskhive/internal/features/notifications"
	"github.com/taskhive/taskhive/internal/middleware"
	"github.com/taskhive/taskhive/internal/pkg/logger"
	"github.com/taskhive/taskhive/internal/realtime"
)

// RegisterRoutes wires the task endpoints and returns the repository
// so other features can query task counts through adapters.
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, projects ProjectDirectory, xp *gamification.Service, hub *realtime.Hub, notifier *notifications.Service, log *logger.Logger) *Repository {
	repo := NewRepository(db)
	service := NewService(repo, projects, xp, hub, notifier, log)
	handler := NewHandler(service)

	tasks := router.Group("/tasks")
	tasks.Use(middleware.Auth())
	{
		tasks.GET("", handler.List)
		tasks.POST("", handler.Create)
		tasks.GET("/overdue", handler.Overdue)
		tasks.GET("/due-today", handler.DueToday)
		tasks.PUT("/bulk", handler.BulkUpdate)
		tasks.GET("/:id", handler.Get)
		tasks.PUT("/:id", handler.Update)
		tasks.DELETE("/:id", handler.Delete)
		tasks.POST("/:id/comments", handler.AddComment)
	}

	return repo
}
