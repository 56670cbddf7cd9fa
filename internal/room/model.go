package room

import (
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.NotFound("Room with the given id doesn't exist")
	ErrLinked          = apperror.Conflict("Room is linked to another object and can't be deleted")
	ErrNameRequired    = apperror.BadRequest("room name is required")
	ErrNameTooLong     = apperror.BadRequest("room name must be at most 100 characters")
	ErrAddressRequired = apperror.BadRequest("room address is required")
	ErrInvalidCapacity = apperror.BadRequest("room capacity must be greater than 0")
	ErrInvalidStatus   = apperror.BadRequest("invalid room status")
)

const maxNameLength = 100

type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
	StatusMaintenance Status = "maintenance"
)

// Valid reports whether s is a known room status.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusUnavailable, StatusMaintenance:
		return true
	}
	return false
}

// Room is a bookable space.
type Room struct {
	ID          string
	Name        string
	Description *string
	Address     string
	Capacity    int
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Filter struct {
	Status Status
	Offset int
	Limit  int
}
