package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
)

type RoomHandler struct {
	service room.Service
}

func NewHandler(service room.Service) *RoomHandler {
	return &RoomHandler{service: service}
}

// List retrieves a paginated list of rooms, optionally filtered by status.
func (h *RoomHandler) List(c *gin.Context) {
	var req ListRoomsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	req.Normalize()

	rooms, total, err := h.service.List(c.Request.Context(), room.Filter{
		Status: room.Status(req.Status),
		Offset: req.Offset,
		Limit:  req.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RoomResponse, len(rooms))
	for i, r := range rooms {
		items[i] = NewRoomResponse(r)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Offset, req.Limit, total))
}

// Create adds a new room. Status defaults to available.
func (h *RoomHandler) Create(c *gin.Context) {
	var body CreateRoomRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, err)
		return
	}

	r, err := h.service.Create(c.Request.Context(), room.CreateRequest{
		Name:        body.Name,
		Description: body.Description,
		Address:     body.Address,
		Capacity:    body.Capacity,
		Status:      room.Status(body.Status),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(r))
}

func (h *RoomHandler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(r))
}

// Update modifies specific attributes of a room, including its status.
func (h *RoomHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ValidationError(c, err)
		return
	}

	var body UpdateRoomRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, err)
		return
	}

	req := room.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
		Address:     body.Address,
		Capacity:    body.Capacity,
	}
	if body.Status != nil {
		st := room.Status(*body.Status)
		req.Status = &st
	}

	r, err := h.service.Update(c.Request.Context(), uri.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(r))
}

// Delete removes a room. Rooms referenced by bookings answer 409.
func (h *RoomHandler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	r, err := h.service.Delete(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(r))
}

func (h *RoomHandler) DeleteAll(c *gin.Context) {
	if err := h.service.DeleteAll(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, []RoomResponse{})
}
