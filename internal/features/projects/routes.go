package projects

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskhive/taskhive/internal/features/notifications"
	"github.com/taskhive/taskhive/internal/middleware"
	"github.com/taskhive/taskhive/internal/pkg/logger"
	"github.com/taskhive/taskhive/internal/realtime"
)

// RegisterRoutes wires the project endpoints. The service is returned
// for the tasks feature (membership checks, stats refreshes) and the
// repository for analytics reads.
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, hub *realtime.Hub, notifier *notifications.Service, log *logger.Logger) (*Service, *Repository) {
	repo := NewRepository(db)
	service := NewService(repo, hub, notifier, log)
	handler := NewHandler(service)

	projects := router.Group("/projects")
	projects.Use(middleware.Auth())
	{
		projects.GET("", handler.List)
		projects.POST("", handler.Create)
		projects.GET("/:id", handler.Get)
		projects.PUT("/:id", handler.Update)
		projects.DELETE("/:id", handler.Delete)
		projects.POST("/:id/collaborators", handler.AddCollaborator)
		projects.DELETE("/:id/collaborators/:userId", handler.RemoveCollaborator)
	}

	return service, repo
}
