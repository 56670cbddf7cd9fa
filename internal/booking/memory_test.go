package booking

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/room"
)

// memoryRepository is an in-memory Repository. WithinTx holds a single mutex for
// the whole transaction, which is at least as strict as the room row lock.
type memoryRepository struct {
	mu       sync.Mutex
	rooms    map[string]*room.Room
	owners   map[string]*Owner
	bookings map[string]*Booking
	seq      int
	clock    time.Time
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		rooms:    map[string]*room.Room{},
		owners:   map[string]*Owner{},
		bookings: map[string]*Booking{},
		clock:    time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *memoryRepository) addRoom(id string, status room.Status) *room.Room {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm := &room.Room{ID: id, Name: "Room " + id, Address: "1 Main St", Capacity: 10, Status: status}
	r.rooms[id] = rm
	return rm
}

func (r *memoryRepository) setRoomStatus(id string, status room.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[id].Status = status
}

func (r *memoryRepository) addOwner(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.owners[id] = &Owner{ID: id, Email: id + "@example.com"}
}

// resolve returns a copy of b with associations attached. Caller holds mu.
func (r *memoryRepository) resolve(b *Booking) *Booking {
	out := *b
	if rm, ok := r.rooms[b.RoomID]; ok {
		cp := *rm
		out.Room = &cp
	}
	if o, ok := r.owners[b.UserID]; ok {
		cp := *o
		out.User = &cp
	}
	return &out
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r.resolve(b), nil
}

func (r *memoryRepository) List(_ context.Context, filter Filter) ([]*Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*Booking
	for _, b := range r.bookings {
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		if filter.RoomID != "" && b.RoomID != filter.RoomID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		matched = append(matched, b)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)
	start := min(filter.Offset, total)
	end := min(start+filter.Limit, total)

	page := make([]*Booking, 0, end-start)
	for _, b := range matched[start:end] {
		page = append(page, r.resolve(b))
	}
	return page, total, nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *memoryRepository) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.bookings))
	r.bookings = map[string]*Booking{}
	return n, nil
}

func (r *memoryRepository) WithinTx(_ context.Context, fn func(tx Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := maps.Clone(r.bookings)
	seq := r.seq
	if err := fn(&memoryTx{repo: r}); err != nil {
		r.bookings = snapshot
		r.seq = seq
		return err
	}
	return nil
}

// memoryTx runs with repo.mu already held.
type memoryTx struct {
	repo *memoryRepository
}

func (t *memoryTx) LockRoom(_ context.Context, roomID string) (*room.Room, error) {
	rm, ok := t.repo.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	cp := *rm
	return &cp, nil
}

func (t *memoryTx) LockBooking(_ context.Context, id string) (*Booking, error) {
	b, ok := t.repo.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (t *memoryTx) HasOverlap(_ context.Context, roomID string, start, end time.Time, excludeBookingID string) (bool, error) {
	for _, b := range t.repo.bookings {
		if b.RoomID != roomID || b.Status == StatusCancelled || b.ID == excludeBookingID {
			continue
		}
		if b.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (t *memoryTx) Create(_ context.Context, b *Booking) error {
	t.repo.seq++
	t.repo.clock = t.repo.clock.Add(time.Second)
	b.ID = fmt.Sprintf("booking-%03d", t.repo.seq)
	b.CreatedAt = t.repo.clock
	b.UpdatedAt = t.repo.clock
	cp := *b
	t.repo.bookings[b.ID] = &cp
	return nil
}

func (t *memoryTx) Update(_ context.Context, b *Booking) error {
	if _, ok := t.repo.bookings[b.ID]; !ok {
		return ErrNotFound
	}
	t.repo.clock = t.repo.clock.Add(time.Second)
	b.UpdatedAt = t.repo.clock
	cp := *b
	cp.Room, cp.User = nil, nil
	t.repo.bookings[b.ID] = &cp
	return nil
}
