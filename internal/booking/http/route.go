package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, activeUser, superuser gin.HandlerFunc) {
	group := g.Group("/booking")

	// === Authenticated Routes ===
	group.Use(activeUser)
	{
		group.GET("/", h.List)
		group.POST("/", h.Create)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)
		group.POST("/:id/cancel", h.Cancel)
		group.DELETE("/:id", h.Delete)
		group.DELETE("/", superuser, h.DeleteAll)
	}
}
