package room

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"
)

type CreateRequest struct {
	Name        string
	Description *string
	Address     string
	Capacity    int
	Status      Status
}

// UpdateRequest lists the fields a PATCH may touch. Nil means unchanged.
type UpdateRequest struct {
	Name        *string
	Description *string
	Address     *string
	Capacity    *int
	Status      *Status
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Room, error)
	// Delete removes a room and returns the record as it was.
	Delete(ctx context.Context, id string) (*Room, error)
	DeleteAll(ctx context.Context) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validate(rm *Room) error {
	switch {
	case rm.Name == "":
		return ErrNameRequired
	case utf8.RuneCountInString(rm.Name) > maxNameLength:
		return ErrNameTooLong
	case rm.Address == "":
		return ErrAddressRequired
	case rm.Capacity <= 0:
		return ErrInvalidCapacity
	case !rm.Status.Valid():
		return ErrInvalidStatus
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Room, error) {
	rm := &Room{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Address:     strings.TrimSpace(req.Address),
		Capacity:    req.Capacity,
		Status:      req.Status,
	}
	if rm.Status == "" {
		rm.Status = StatusAvailable
	}
	if err := validate(rm); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, rm); err != nil {
		return nil, err
	}
	log.Printf("room created: id=%s name=%q", rm.ID, rm.Name)
	return rm, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(ctx, filter)
}

// Update applies a partial update. Any status may follow any other.
func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		rm.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		rm.Description = req.Description
	}
	if req.Address != nil {
		rm.Address = strings.TrimSpace(*req.Address)
	}
	if req.Capacity != nil {
		rm.Capacity = *req.Capacity
	}
	if req.Status != nil {
		rm.Status = *req.Status
	}
	if err := validate(rm); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *service) Delete(ctx context.Context, id string) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *service) DeleteAll(ctx context.Context) error {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return err
	}
	log.Printf("rooms purged: count=%d", n)
	return nil
}
