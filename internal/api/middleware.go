package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/room-booking-backend/internal/auth"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/room-booking-backend/internal/user"
)

// RequireActiveUser authenticates the bearer token, loads its user and rejects inactive accounts.
// The resolved auth.Actor is available to handlers through auth.GetActor.
func RequireActiveUser(jwtManager *auth.JWTManager, denylist auth.TokenDenylist, userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := auth.Authenticate(c, jwtManager, denylist)
		if !ok {
			return
		}

		u, err := userService.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
				return
			}
			response.Error(c, err)
			c.Abort()
			return
		}

		if !u.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "inactive user"})
			return
		}

		auth.SetActor(c, auth.Actor{UserID: u.ID, IsSuperuser: u.IsSuperuser})
		c.Next()
	}
}

// RequireSuperuser ensures the current user is a superuser.
// It MUST be used after RequireActiveUser.
func RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := auth.GetActor(c)
		if actor.UserID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if !actor.IsSuperuser {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: superuser access required"})
			return
		}

		c.Next()
	}
}
