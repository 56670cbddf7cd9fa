package http

import (
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/booking"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/request"
	roomHttp "github.com/nekogravitycat/room-booking-backend/internal/room/http"
	userHttp "github.com/nekogravitycat/room-booking-backend/internal/user/http"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	RoomID string `form:"room_id" binding:"omitempty,uuid"`
	UserID string `form:"user_id" binding:"omitempty,uuid"`
	Status string `form:"status" binding:"omitempty,oneof=scheduled confirmed cancelled completed"`
}

type BookingResponse struct {
	ID        string                 `json:"id"`
	RoomID    string                 `json:"room_id"`
	UserID    string                 `json:"user_id"`
	Room      *roomHttp.RoomResponse `json:"room,omitempty"`
	User      *userHttp.UserTag      `json:"user,omitempty"`
	StartTime time.Time              `json:"start_time"`
	EndTime   time.Time              `json:"end_time"`
	Status    string                 `json:"status"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	resp := BookingResponse{
		ID:        b.ID,
		RoomID:    b.RoomID,
		UserID:    b.UserID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if b.Room != nil {
		r := roomHttp.NewRoomResponse(b.Room)
		resp.Room = &r
	}
	if b.User != nil {
		resp.User = &userHttp.UserTag{
			ID:        b.User.ID,
			Email:     b.User.Email,
			FirstName: b.User.FirstName,
			LastName:  b.User.LastName,
		}
	}
	return resp
}

type CreateBookingRequest struct {
	RoomID    string    `json:"room_id" binding:"required,uuid"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Status    string    `json:"status" binding:"omitempty,oneof=scheduled confirmed"`
}

type UpdateBookingRequest struct {
	RoomID    *string    `json:"room_id" binding:"omitempty,uuid"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Status    *string    `json:"status" binding:"omitempty,oneof=scheduled confirmed cancelled completed"`
}
