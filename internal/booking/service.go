package booking

import (
	"context"
	"log"
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/auth"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
)

type CreateRequest struct {
	UserID    string
	RoomID    string
	StartTime time.Time
	EndTime   time.Time
	// Status is the initial status. Empty means scheduled.
	Status Status
}

// UpdateRequest lists the fields a PATCH may touch. Nil means unchanged.
type UpdateRequest struct {
	RoomID    *string
	StartTime *time.Time
	EndTime   *time.Time
	Status    *Status
}

type Service interface {
	// Create admits a booking if the room is available and the slot is free.
	Create(ctx context.Context, req CreateRequest, actor auth.Actor) (*Booking, error)
	GetByID(ctx context.Context, id string, actor auth.Actor) (*Booking, error)
	// List returns a page of bookings. Non-superusers only ever see their own.
	List(ctx context.Context, filter Filter, actor auth.Actor) ([]*Booking, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actor auth.Actor) (*Booking, error)
	Cancel(ctx context.Context, id string, actor auth.Actor) (*Booking, error)
	Delete(ctx context.Context, id string, actor auth.Actor) (*Booking, error)
	DeleteAll(ctx context.Context) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// admit checks that the room is bookable for [start, end) inside tx.
// The room stays locked until tx ends, so the answer holds until commit.
func admit(ctx context.Context, tx Tx, roomID string, start, end time.Time, excludeBookingID string) error {
	rm, err := tx.LockRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if rm.Status != room.StatusAvailable {
		return RoomUnavailable(string(rm.Status))
	}

	overlap, err := tx.HasOverlap(ctx, roomID, start, end, excludeBookingID)
	if err != nil {
		return err
	}
	if overlap {
		return RoomUnavailable(reasonOverlap)
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest, actor auth.Actor) (*Booking, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidTimeRange
	}

	status := req.Status
	if status == "" {
		status = StatusScheduled
	}
	if !status.Active() {
		return nil, ErrInvalidStatus
	}
	if status != StatusScheduled && !actor.IsSuperuser {
		return nil, ErrPermissionDenied
	}

	b := &Booking{
		UserID:    req.UserID,
		RoomID:    req.RoomID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    status,
	}

	err := s.repo.WithinTx(ctx, func(tx Tx) error {
		if err := admit(ctx, tx, b.RoomID, b.StartTime, b.EndTime, ""); err != nil {
			return err
		}
		return tx.Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("booking created: id=%s room=%s user=%s", b.ID, b.RoomID, b.UserID)

	return s.repo.GetByID(ctx, b.ID)
}

func (s *service) GetByID(ctx context.Context, id string, actor auth.Actor) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(b.UserID) {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter, actor auth.Actor) ([]*Booking, int, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	if !actor.IsSuperuser {
		filter.UserID = actor.UserID
	}
	return s.repo.List(ctx, filter)
}

// Update applies a partial update. A changed room or interval re-runs admission
// against the other bookings of the target room. Owners may only cancel or reschedule.
func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actor auth.Actor) (*Booking, error) {
	if req.Status != nil && !req.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	err := s.repo.WithinTx(ctx, func(tx Tx) error {
		b, err := tx.LockBooking(ctx, id)
		if err != nil {
			return err
		}
		if !actor.CanAccess(b.UserID) {
			return ErrPermissionDenied
		}

		next := *b
		if req.RoomID != nil {
			next.RoomID = *req.RoomID
		}
		if req.StartTime != nil {
			next.StartTime = *req.StartTime
		}
		if req.EndTime != nil {
			next.EndTime = *req.EndTime
		}
		rescheduled := next.RoomID != b.RoomID || !next.StartTime.Equal(b.StartTime) || !next.EndTime.Equal(b.EndTime)

		if req.Status != nil && *req.Status != b.Status {
			if !actor.IsSuperuser && *req.Status != StatusCancelled {
				return ErrPermissionDenied
			}
			if err := CanTransition(b.Status, *req.Status); err != nil {
				return err
			}
			next.Status = *req.Status
		}

		if rescheduled {
			if !b.Status.Active() {
				return ErrNotReschedulable
			}
			if !next.EndTime.After(next.StartTime) {
				return ErrInvalidTimeRange
			}
			if next.Status.Active() {
				if err := admit(ctx, tx, next.RoomID, next.StartTime, next.EndTime, b.ID); err != nil {
					return err
				}
			}
		}

		if !rescheduled && next.Status == b.Status {
			return nil
		}
		if err := tx.Update(ctx, &next); err != nil {
			return err
		}
		if next.Status != b.Status {
			log.Printf("booking status changed: id=%s %s -> %s", b.ID, b.Status, next.Status)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// Cancel releases the booking's slot. Cancelling a cancelled booking is a no-op.
func (s *service) Cancel(ctx context.Context, id string, actor auth.Actor) (*Booking, error) {
	status := StatusCancelled
	return s.Update(ctx, id, UpdateRequest{Status: &status}, actor)
}

func (s *service) Delete(ctx context.Context, id string, actor auth.Actor) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(b.UserID) {
		return nil, ErrPermissionDenied
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) DeleteAll(ctx context.Context) error {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return err
	}
	log.Printf("bookings purged: count=%d", n)
	return nil
}
