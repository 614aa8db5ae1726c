package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskhive/taskhive/internal/config"
	"github.com/taskhive/taskhive/internal/features/analytics"
	"github.com/taskhive/taskhive/internal/features/auth"
	"github.com/taskhive/taskhive/internal/features/gamification"
	"github.com/taskhive/taskhive/internal/features/media"
	"github.com/taskhive/taskhive/internal/features/notifications"
	"github.com/taskhive/taskhive/internal/features/projects"
	"github.com/taskhive/taskhive/internal/features/search"
	"github.com/taskhive/taskhive/internal/features/tasks"
	"github.com/taskhive/taskhive/internal/features/users"
	"github.com/taskhive/taskhive/internal/pkg/logger"
	"github.com/taskhive/taskhive/internal/realtime"
)

// SetupRoutes wires every feature together. Cross-feature dependencies
// flow through the small interfaces each feature declares: the auth
// repository backs gamification, the projects service guards task
// mutations, and the tasks repository feeds project stats and
// analytics.
func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config, hub *realtime.Hub, log *logger.Logger) {
	api := router.Group("/api/v1")

	userRepo := auth.RegisterRoutes(api, db, cfg, log)
	users.RegisterRoutes(api, userRepo)

	xp := gamification.NewService(userRepo, log)
	notifier := notifications.RegisterRoutes(api, db, log)

	projectService, projectRepo := projects.RegisterRoutes(api, db, hub, notifier, log)
	taskRepo := tasks.RegisterRoutes(api, db, projectService, xp, hub, notifier, log)
	projectService.SetTaskCounter(taskRepo)

	analytics.RegisterRoutes(api, taskRepo, projectRepo, userRepo, log)
	search.RegisterRoutes(api, db)
	realtime.RegisterRoutes(api, hub, projectService, log)
	media.RegisterRoutes(api, cfg, log)
}
