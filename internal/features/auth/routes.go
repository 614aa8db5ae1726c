package auth

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskhive/taskhive/internal/config"
	"github.com/taskhive/taskhive/internal/middleware"
	"github.com/taskhive/taskhive/internal/pkg/logger"
)

// RegisterRoutes wires the auth feature. The repository is returned so
// routes wiring can adapt it for the gamification and analytics features.
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config, log *logger.Logger) *Repository {
	repo := NewRepository(db)

	firebaseClient, err := InitFirebase(cfg)
	if err != nil {
		// Google sign-in stays disabled without credentials; password
		// login still works.
		log.Warn("firebase unavailable, google sign-in disabled: %v", err)
	}

	handler := NewHandler(repo, firebaseClient, cfg)

	auth := router.Group("/auth")
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
		auth.POST("/google", handler.GoogleLogin)

		me := auth.Group("")
		me.Use(middleware.Auth())
		{
			me.GET("/me", handler.Me)
			me.PUT("/me", handler.UpdateProfile)
		}
	}

	return repo
}
