package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/bills")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/upcoming", h.Upcoming)
		group.GET("/:id", h.Get)
		group.PATCH("/:id/mark-paid", h.MarkPaid)
	}
}
