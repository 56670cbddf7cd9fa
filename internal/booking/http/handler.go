package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/room-booking-backend/internal/auth"
	"github.com/nekogravitycat/room-booking-backend/internal/booking"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// List returns bookings visible to the caller. Superusers may filter by user_id.
func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	req.Normalize()

	bookings, total, err := h.service.List(c.Request.Context(), booking.Filter{
		UserID: req.UserID,
		RoomID: req.RoomID,
		Status: booking.Status(req.Status),
		Offset: req.Offset,
		Limit:  req.Limit,
	}, auth.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Offset, req.Limit, total))
}

// Create books a room for the current user.
func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, err)
		return
	}

	actor := auth.GetActor(c)
	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		UserID:    actor.UserID,
		RoomID:    body.RoomID,
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
		Status:    booking.Status(body.Status),
	}, actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), req.ID, auth.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ValidationError(c, err)
		return
	}

	var body UpdateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, err)
		return
	}

	req := booking.UpdateRequest{
		RoomID:    body.RoomID,
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
	}
	if body.Status != nil {
		st := booking.Status(*body.Status)
		req.Status = &st
	}

	b, err := h.service.Update(c.Request.Context(), uri.ID, req, auth.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Cancel ends the booking and frees its slot.
func (h *Handler) Cancel(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), req.ID, auth.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Delete removes the booking record entirely.
func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	b, err := h.service.Delete(c.Request.Context(), req.ID, auth.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) DeleteAll(c *gin.Context) {
	if err := h.service.DeleteAll(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, []BookingResponse{})
}
