package http

import (
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
)

// ListRoomsRequest defines query parameters for listing rooms.
type ListRoomsRequest struct {
	request.ListParams
	Status string `form:"status" binding:"omitempty,oneof=available unavailable maintenance"`
}

type RoomResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Address     string    `json:"address"`
	Capacity    int       `json:"capacity"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewRoomResponse(r *room.Room) RoomResponse {
	return RoomResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		Capacity:    r.Capacity,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type CreateRoomRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description"`
	Address     string  `json:"address" binding:"required"`
	Capacity    int     `json:"capacity" binding:"required,gt=0"`
	Status      string  `json:"status" binding:"omitempty,oneof=available unavailable maintenance"`
}

type UpdateRoomRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	Address     *string `json:"address" binding:"omitempty,min=1"`
	Capacity    *int    `json:"capacity" binding:"omitempty,gt=0"`
	Status      *string `json:"status" binding:"omitempty,oneof=available unavailable maintenance"`
}
