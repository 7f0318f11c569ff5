package http

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// createCORSMiddleware creates the permissive CORS middleware.
//
// Secrets are shared through links opened from arbitrary pages, so any origin
// may call the API. The X-Destroy-Token header must be allowed for one-time
// reveals issued from the browser.
func createCORSMiddleware(logger *slog.Logger) gin.HandlerFunc {
	logger.Info("CORS enabled", slog.String("origins", "*"))

	config := cors.Config{
		AllowAllOrigins: true,
		AllowMethods: []string{
			"GET",
			"POST",
			"DELETE",
			"OPTIONS",
		},
		AllowHeaders: []string{
			"Content-Type",
			"X-Destroy-Token",
		},
		ExposeHeaders: []string{
			"X-Request-Id",
		},
		MaxAge: 12 * time.Hour,
	}

	return cors.New(config)
}
