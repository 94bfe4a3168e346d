package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"site-notify-api/internal/middleware"
	"site-notify-api/internal/services"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	ContactService    services.ContactService
	NewsletterService services.NewsletterService
	AuthService       *middleware.AuthService
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	contactHandler := NewContactHandler(config.ContactService, nil)
	newsletterHandler := NewNewsletterHandler(config.NewsletterService, nil)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "site-notify-api",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		contact := v1.Group("/contact")
		{
			contact.POST("", contactHandler.SubmitContact)
			contact.POST("/reply", contactHandler.ReplyToContact)
			contact.GET("/:id", contactHandler.GetContact)
		}

		newsletter := v1.Group("/newsletter")
		{
			newsletter.POST("/send", newsletterHandler.SendNewsletter)
		}
	}
}

// SetupDevelopmentRoutes adds development-only routes
func SetupDevelopmentRoutes(router *gin.Engine, config *RouterConfig) {
	dev := router.Group("/dev")
	{
		// Mint an admin token for exercising the reply endpoint locally
		dev.POST("/token", func(c *gin.Context) {
			token, err := config.AuthService.GenerateToken("dev-admin", "dev-admin@localhost")
			if err != nil {
				c.JSON(500, gin.H{"error": err.Error()})
				return
			}
			c.JSON(200, gin.H{"token": token})
		})
	}
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine) {
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.StructuredLogger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())
}
