package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the sign-up, login and profile routes.
func RegisterRoutes(g *gin.RouterGroup, h *UserHandler, authMiddleware gin.HandlerFunc) {
	authGroup := g.Group("/auth")
	{
		// Public Routes
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)

		// Authenticated Routes
		authGroup.GET("/me", authMiddleware, h.Me)
	}
}
