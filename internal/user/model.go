package user

import (
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.NotFound("User with the given id doesn't exist")
	ErrEmailAlreadyUsed   = apperror.BadRequest("user with this email already exists")
	ErrInvalidCredentials = apperror.BadRequest("bad credentials")
	ErrEmailRequired      = apperror.BadRequest("email is required")
	ErrNameRequired       = apperror.BadRequest("first and last name are required")
	ErrPasswordTooShort   = apperror.BadRequest("password is too short")
	ErrPasswordTooLong    = apperror.BadRequest("password must be at most 72 bytes")
	ErrLinked             = apperror.Conflict("User is linked to another object and can't be deleted")
	ErrPermissionDenied   = apperror.Forbidden("permission denied")
)

// User represents a user in the system.
type User struct {
	ID           string // UUID
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	IsActive     bool
	IsSuperuser  bool
	IsVerified   bool
	CreatedAt    time.Time
}

// Filter defines pagination options for listing users.
type Filter struct {
	Offset int
	Limit  int
}
