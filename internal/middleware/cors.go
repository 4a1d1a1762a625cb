package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// allowedHeaders are listed by name. Browsers read "*" literally on credentialed requests.
var allowedHeaders = []string{
	"Origin",
	"Content-Type",
	"Content-Length",
	"Accept",
	"Accept-Language",
	"Authorization",
	"Cache-Control",
	"X-Requested-With",
	RequestIDHeader,
	"X-Auth-Key",
}

// CORS allows the configured origins with the common methods and headers, credentials included
func CORS(allowedOrigins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     allowedHeaders,
		ExposeHeaders:    []string{RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
