package notifications

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskhive/taskhive/internal/middleware"
	"github.com/taskhive/taskhive/internal/pkg/logger"
)

// RegisterRoutes wires the notification endpoints and returns the
// service so the tasks and projects features can emit notifications.
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, log *logger.Logger) *Service {
	repo := NewRepository(db)
	handler := NewHandler(repo)
	service := NewService(repo, log)

	notifications := router.Group("/notifications")
	notifications.Use(middleware.Auth())
	{
		notifications.GET("", handler.List)
		notifications.GET("/unread-count", handler.UnreadCount)
		notifications.PUT("/:id/read", handler.MarkRead)
		notifications.PUT("/read-all", handler.MarkAllRead)
	}

	return service
}
