package search

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskhive/taskhive/internal/middleware"
)

// RegisterRoutes wires the unified search endpoint
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database) {
	repo := NewRepository(db)
	handler := NewHandler(repo)

	search := router.Group("/search")
	search.Use(middleware.Auth())
	{
		search.GET("", handler.Unified)
	}
}
