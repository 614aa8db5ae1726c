package users

import (
	"github.com/gin-gonic/gin"

	"github.com/taskhive/taskhive/internal/features/auth"
	"github.com/taskhive/taskhive/internal/middleware"
)

// RegisterRoutes wires the user directory endpoints
func RegisterRoutes(router *gin.RouterGroup, userRepo *auth.Repository) {
	handler := NewHandler(userRepo)

	users := router.Group("/users")
	users.Use(middleware.Auth())
	{
		users.GET("/search", handler.Search)
		users.GET("/:id", handler.Get)
	}
}
