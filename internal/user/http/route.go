package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all user-related routes (including Auth).
// activeUser resolves the current active user; superuser additionally requires superuser rights.
func RegisterRoutes(g *gin.RouterGroup, h *UserHandler, activeUser, superuser gin.HandlerFunc) {
	// Public Routes
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/jwt/login", h.Login)
		authGroup.POST("/jwt/logout", activeUser, h.Logout)
	}

	usersGroup := g.Group("/user")
	usersGroup.Use(activeUser)
	{
		usersGroup.GET("/me", h.Me)
		usersGroup.GET("/", superuser, h.List)
		usersGroup.GET("/:id", h.Get)
		usersGroup.PATCH("/:id", h.Update)
		usersGroup.DELETE("/:id", superuser, h.Delete)
	}
}
