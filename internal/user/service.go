package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/nekogravitycat/room-booking-backend/internal/auth"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// UpdateRequest lists the user fields that may be patched.
// The flag fields are honoured for superusers only.
type UpdateRequest struct {
	FirstName   *string
	LastName    *string
	Email       *string
	Password    *string
	IsActive    *bool
	IsSuperuser *bool
	IsVerified  *bool
}

func (r UpdateRequest) touchesFlags() bool {
	return r.IsActive != nil || r.IsSuperuser != nil || r.IsVerified != nil
}

// Service defines business logic related to users.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, filter Filter) ([]*User, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actor auth.Actor) (*User, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher

	minPasswordLength int
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		minPasswordLength: 8,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	cleanEmail := normalizeEmail(req.Email)
	if cleanEmail == "" {
		return nil, ErrEmailRequired
	}

	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if firstName == "" || lastName == "" {
		return nil, ErrNameRequired
	}

	if len(req.Password) < s.minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	// Check if email is already used.
	_, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err == nil {
		return nil, ErrEmailAlreadyUsed
	}
	// If the error is something other than "not found", propagate it.
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        cleanEmail,
		PasswordHash: hash,
		IsActive:     true,
	}

	// The unique index still guards a concurrent registration with the same email.
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailAlreadyUsed) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("user registered: id=%s", u.ID)
	return u, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Inactive accounts get the same answer as a wrong password.
	if !u.IsActive {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actor auth.Actor) (*User, error) {
	if !actor.CanAccess(id) {
		return nil, ErrPermissionDenied
	}
	if req.touchesFlags() && !actor.IsSuperuser {
		return nil, ErrPermissionDenied
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		name := strings.TrimSpace(*req.FirstName)
		if name == "" {
			return nil, ErrNameRequired
		}
		u.FirstName = name
	}
	if req.LastName != nil {
		name := strings.TrimSpace(*req.LastName)
		if name == "" {
			return nil, ErrNameRequired
		}
		u.LastName = name
	}
	if req.Email != nil {
		cleanEmail := normalizeEmail(*req.Email)
		if cleanEmail == "" {
			return nil, ErrEmailRequired
		}
		if cleanEmail != u.Email {
			existing, err := s.repo.GetByEmail(ctx, cleanEmail)
			if err == nil && existing.ID != u.ID {
				return nil, ErrEmailAlreadyUsed
			}
			if err != nil && !errors.Is(err, ErrNotFound) {
				return nil, fmt.Errorf("failed to check existing email: %w", err)
			}
		}
		u.Email = cleanEmail
	}
	if req.Password != nil {
		if len(*req.Password) < s.minPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hash, err := s.hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if req.IsSuperuser != nil {
		u.IsSuperuser = *req.IsSuperuser
	}
	if req.IsVerified != nil {
		u.IsVerified = *req.IsVerified
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) hashPassword(plain string) (string, error) {
	hash, err := s.hasher.Hash(plain)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
