package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/room-booking-backend/internal/auth"
	"github.com/nekogravitycat/room-booking-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/room-booking-backend/internal/booking/http"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
	roomHttp "github.com/nekogravitycat/room-booking-backend/internal/room/http"
	"github.com/nekogravitycat/room-booking-backend/internal/user"
	userHttp "github.com/nekogravitycat/room-booking-backend/internal/user/http"
)

// Config holds the services and settings the router is assembled from.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	UserService    user.Service
	RoomService    room.Service
	BookingService booking.Service
	JWTManager     *auth.JWTManager
	// Denylist is optional. Without it logout cannot revoke tokens.
	Denylist auth.TokenDenylist
	// DB backs the health check. Optional.
	DB Pinger
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// activeUser: valid, non-revoked token of an active account.
	activeUser := RequireActiveUser(cfg.JWTManager, cfg.Denylist, cfg.UserService)
	// superuser: must follow activeUser.
	superuser := RequireSuperuser()

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager, cfg.Denylist)
	roomHandler := roomHttp.NewHandler(cfg.RoomService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	r.GET("/healthz", healthHandler(cfg.DB))

	root := r.Group("")
	{
		userHttp.RegisterRoutes(root, userHandler, activeUser, superuser)
		roomHttp.RegisterRoutes(root, roomHandler, activeUser, superuser)
		bookingHttp.RegisterRoutes(root, bookingHandler, activeUser, superuser)
	}

	return r
}
