package auth

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Authenticate validates the JWT from Authorization: Bearer <token> and stores its claims in c.
// denylist may be nil, in which case revoked tokens are not checked.
// On failure it aborts c with the matching status and returns false.
func Authenticate(c *gin.Context, jwtManager *JWTManager, denylist TokenDenylist) (*Claims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return nil, false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return nil, false
	}

	claims, err := jwtManager.ParseAndValidate(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return nil, false
	}

	if denylist != nil {
		revoked, err := denylist.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			log.Printf("token denylist lookup failed: %v", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "authentication temporarily unavailable",
			})
			return nil, false
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "token has been revoked",
			})
			return nil, false
		}
	}

	c.Set(claimsKey, claims)

	return claims, true
}
