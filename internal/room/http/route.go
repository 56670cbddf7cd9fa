package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers room routes. Reads are public, writes need superuser.
func RegisterRoutes(g *gin.RouterGroup, h *RoomHandler, activeUser, superuser gin.HandlerFunc) {
	group := g.Group("/room")

	// === Public Routes ===
	group.GET("/", h.List)
	group.GET("/:id", h.Get)

	// === Superuser Routes ===
	admin := group.Group("", activeUser, superuser)
	{
		admin.POST("/", h.Create)
		admin.PATCH("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
		admin.DELETE("/", h.DeleteAll)
	}
}
