package media

import (
	"github.com/gin-gonic/gin"

	"github.com/taskhive/taskhive/internal/config"
	"github.com/taskhive/taskhive/internal/middleware"
	"github.com/taskhive/taskhive/internal/pkg/cloudinary"
	"github.com/taskhive/taskhive/internal/pkg/logger"
)

func RegisterRoutes(router *gin.RouterGroup, cfg *config.Config, log *logger.Logger) {
	cld, err := cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, "taskhive")
	if err != nil {
		// Uploads stay disabled; everything else keeps working.
		log.Warn("media: cloudinary init failed, upload endpoints disabled: %v", err)
		return
	}

	handler := NewHandler(cld)

	media := router.Group("/media")
	media.Use(middleware.Auth())
	{
		media.POST("/images", handler.UploadImage)
		media.POST("/attachments", handler.UploadAttachment)
	}
}
