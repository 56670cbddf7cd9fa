package auth

import "github.com/gin-gonic/gin"

const claimsKey = "tokenClaims"

// GetClaims returns the validated token claims, or nil when the request is unauthenticated.
func GetClaims(c *gin.Context) *Claims {
	if v, ok := c.Get(claimsKey); ok {
		if claims, ok := v.(*Claims); ok {
			return claims
		}
	}
	return nil
}

// Actor is the authenticated identity a service call is performed on behalf of.
type Actor struct {
	UserID      string
	IsSuperuser bool
}

// CanAccess reports whether the actor may act on a record owned by ownerID.
func (a Actor) CanAccess(ownerID string) bool {
	return a.IsSuperuser || (a.UserID != "" && a.UserID == ownerID)
}

const actorKey = "actor"

// SetActor stores the resolved actor for downstream handlers.
func SetActor(c *gin.Context, a Actor) {
	c.Set(actorKey, a)
}

// GetActor returns the actor resolved by the user middleware, or the zero Actor.
func GetActor(c *gin.Context) Actor {
	if v, ok := c.Get(actorKey); ok {
		if a, ok := v.(Actor); ok {
			return a
		}
	}
	return Actor{}
}
