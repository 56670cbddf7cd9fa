package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
)

var (
	ErrNotFound          = apperror.NotFound("Booking with the given id doesn't exist")
	ErrRoomNotFound      = apperror.NotFound("Room with the given id doesn't exist")
	ErrRoomUnavailable   = apperror.BadRequest("room unavailable")
	ErrInvalidTimeRange  = apperror.BadRequest("start time must be before end time")
	ErrInvalidStatus     = apperror.BadRequest("invalid booking status")
	ErrInvalidTransition = apperror.BadRequest("booking status transition not allowed")
	ErrNotReschedulable  = apperror.BadRequest("only scheduled or confirmed bookings can be rescheduled")
	ErrPermissionDenied  = apperror.Forbidden("permission denied")
)

// Reason reported when the candidate interval collides with an existing booking.
const reasonOverlap = "already booked for this time period"

// RoomUnavailable reports an admission rejection. errors.Is matches ErrRoomUnavailable.
func RoomUnavailable(reason string) *apperror.AppError {
	return apperror.Wrap(ErrRoomUnavailable, http.StatusBadRequest, "room unavailable: "+reason)
}

// Booking is a reservation of a room by a user for the half-open interval [StartTime, EndTime).
type Booking struct {
	ID        string
	UserID    string
	RoomID    string
	StartTime time.Time
	EndTime   time.Time
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time

	// Resolved associations. Populated by GetByID and List.
	Room *room.Room
	User *Owner
}

// Owner is the brief view of the user holding a booking.
type Owner struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
}

// Overlaps reports whether b occupies any instant of [start, end).
// Touching endpoints do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

type Filter struct {
	UserID string
	RoomID string
	Status Status
	Offset int
	Limit  int
}
