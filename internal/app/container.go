package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/nekogravitycat/room-booking-backend/internal/api"
	"github.com/nekogravitycat/room-booking-backend/internal/auth"
	"github.com/nekogravitycat/room-booking-backend/internal/booking"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
	"github.com/nekogravitycat/room-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	// Redis is optional. When nil, logout does not revoke tokens.
	Redis      *redis.Client
	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	JWTManager     *auth.JWTManager
	UserService    user.Service
	RoomService    room.Service
	BookingService booking.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	var denylist auth.TokenDenylist
	if cfg.Redis != nil {
		denylist = auth.NewRedisDenylist(cfg.Redis)
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Room Module
	roomRepo := room.NewPgxRepository(cfg.DBPool)
	roomService := room.NewService(roomRepo)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		RoomService:    roomService,
		BookingService: bookingService,
		JWTManager:     jwtManager,
		Denylist:       denylist,
		DB:             cfg.DBPool,
	})

	return &Container{
		Router:         router,
		JWTManager:     jwtManager,
		UserService:    userService,
		RoomService:    roomService,
		BookingService: bookingService,
	}
}
