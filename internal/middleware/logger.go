package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskhive/taskhive/internal/pkg/logger"
)

var skipPaths = map[string]bool{
	"/health": true,
}

// RequestLogger logs one line per request through the injected logger.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if skipPaths[path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		userID := c.GetString("userID")

		if userID == "" {
			userID = "-"
		}

		if status >= 500 {
			log.Error("%s %s -> %d (%v) user=%s", c.Request.Method, path, status, latency, userID)
		} else if status >= 400 {
			log.Warn("%s %s -> %d (%v) user=%s", c.Request.Method, path, status, latency, userID)
		} else {
			log.Info("%s %s -> %d (%v) user=%s", c.Request.Method, path, status, latency, userID)
		}
	}
}
