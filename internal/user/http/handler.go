package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/room-booking-backend/internal/auth"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/room-booking-backend/internal/user"
)

type UserHandler struct {
	userService user.Service
	jwtManager  *auth.JWTManager
	denylist    auth.TokenDenylist
}

// NewHandler creates the user and auth handler. denylist may be nil.
func NewHandler(userService user.Service, jwtManager *auth.JWTManager, denylist auth.TokenDenylist) *UserHandler {
	return &UserHandler{
		userService: userService,
		jwtManager:  jwtManager,
		denylist:    denylist,
	}
}

// Register creates a new active, non-superuser account.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	u, err := h.userService.Register(c.Request.Context(), user.RegisterRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewUserResponse(u))
}

// Login authenticates a user using email (as username) and password.
// On success, it returns a bearer access token.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	u, err := h.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(u.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Logout revokes the presented token until its expiry.
// Without a denylist the call still succeeds and the client is expected to drop the token.
func (h *UserHandler) Logout(c *gin.Context) {
	claims := auth.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if h.denylist != nil && claims.ExpiresAt != nil {
		if err := h.denylist.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
			response.Error(c, err)
			return
		}
	} else {
		log.Printf("logout without token denylist: token %s stays valid until expiry", claims.ID)
	}

	c.Status(http.StatusNoContent)
}

// Me retrieves the profile of the currently authenticated user.
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.userService.GetByID(c.Request.Context(), auth.GetActor(c).UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}

// List retrieves a paginated list of users.
// Access Control: superuser only.
func (h *UserHandler) List(c *gin.Context) {
	var req ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	req.Normalize()

	users, total, err := h.userService.List(c.Request.Context(), user.Filter{
		Offset: req.Offset,
		Limit:  req.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]UserResponse, len(users))
	for i, u := range users {
		items[i] = NewUserResponse(u)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Offset, req.Limit, total))
}

// Get retrieves a specific user by their ID.
// Access Control: the user themselves or a superuser.
func (h *UserHandler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	if !auth.GetActor(c).CanAccess(req.ID) {
		response.Error(c, user.ErrPermissionDenied)
		return
	}

	u, err := h.userService.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}

// Update modifies specific attributes of a user.
// Access Control: the user themselves or a superuser; account flags are superuser only.
func (h *UserHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ValidationError(c, err)
		return
	}

	var body UpdateUserRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, err)
		return
	}

	req := user.UpdateRequest{
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		Email:       body.Email,
		Password:    body.Password,
		IsActive:    body.IsActive,
		IsSuperuser: body.IsSuperuser,
		IsVerified:  body.IsVerified,
	}

	u, err := h.userService.Update(c.Request.Context(), uri.ID, req, auth.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}

// Delete removes a user that no booking references.
// Access Control: superuser only.
func (h *UserHandler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	if err := h.userService.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
