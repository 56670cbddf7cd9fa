package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nekogravitycat/room-booking-backend/internal/auth"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = "3b0d2c52-7a3f-4a4e-9c1d-0f3f7f0c1a01" // simulate DB insert
		u.CreatedAt = time.Now().UTC()
	}
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*User), args.Int(1), args.Error(2)
}

func (m *MockRepository) Update(ctx context.Context, u *User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// plainHasher keeps tests fast; it is only ever used with fake data.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (plainHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestService_Register_Success(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, ErrNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)

	svc := NewService(repo, plainHasher{})
	u, err := svc.Register(context.Background(), RegisterRequest{
		FirstName: " Ada ",
		LastName:  "Lovelace",
		Email:     "  ADA@example.com ",
		Password:  "engine-notes",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, "Ada", u.FirstName)
	assert.Equal(t, "hashed:engine-notes", u.PasswordHash)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsSuperuser)
	repo.AssertExpectations(t)
}

func TestService_Register_Validation(t *testing.T) {
	svc := NewService(new(MockRepository), plainHasher{})

	_, err := svc.Register(context.Background(), RegisterRequest{FirstName: "A", LastName: "B", Email: " ", Password: "long-enough"})
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = svc.Register(context.Background(), RegisterRequest{FirstName: "", LastName: "B", Email: "a@b.c", Password: "long-enough"})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Register(context.Background(), RegisterRequest{FirstName: "A", LastName: "B", Email: "a@b.c", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(&User{ID: "existing"}, nil)

	svc := NewService(repo, plainHasher{})
	_, err := svc.Register(context.Background(), RegisterRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "engine-notes",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_PasswordTooLong(t *testing.T) {
	tooLong := strings.Repeat("x", 73)
	hasher := auth.NewBcryptPasswordHasher(bcrypt.MinCost)

	repo := new(MockRepository)
	repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, ErrNotFound)
	repo.On("GetByID", mock.Anything, "u1").Return(&User{ID: "u1", Email: "ada@example.com", IsActive: true}, nil)

	svc := NewService(repo, hasher)
	_, err := svc.Register(context.Background(), RegisterRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: tooLong,
	})
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	_, err = svc.Update(context.Background(), "u1", UpdateRequest{Password: strPtr(tooLong)}, auth.Actor{UserID: "u1"})
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Authenticate(t *testing.T) {
	active := &User{ID: "u1", Email: "ada@example.com", PasswordHash: "hashed:engine-notes", IsActive: true}
	inactive := &User{ID: "u2", Email: "off@example.com", PasswordHash: "hashed:engine-notes", IsActive: false}

	repo := new(MockRepository)
	repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(active, nil)
	repo.On("GetByEmail", mock.Anything, "off@example.com").Return(inactive, nil)
	repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, ErrNotFound)

	svc := NewService(repo, plainHasher{})

	u, err := svc.Authenticate(context.Background(), "ADA@example.com", "engine-notes")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = svc.Authenticate(context.Background(), "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "off@example.com", "engine-notes")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "ghost@example.com", "engine-notes")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Update_SelfChangesProfile(t *testing.T) {
	existing := &User{ID: "u1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", PasswordHash: "hashed:old-password", IsActive: true}

	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "u1").Return(existing, nil)
	repo.On("GetByEmail", mock.Anything, "countess@example.com").Return(nil, ErrNotFound)
	repo.On("Update", mock.Anything, existing).Return(nil)

	svc := NewService(repo, plainHasher{})
	u, err := svc.Update(context.Background(), "u1", UpdateRequest{
		FirstName: strPtr("Augusta"),
		Email:     strPtr("Countess@example.com"),
		Password:  strPtr("new-password"),
	}, auth.Actor{UserID: "u1"})

	require.NoError(t, err)
	assert.Equal(t, "Augusta", u.FirstName)
	assert.Equal(t, "countess@example.com", u.Email)
	assert.Equal(t, "hashed:new-password", u.PasswordHash)
	repo.AssertExpectations(t)
}

func TestService_Update_Permissions(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, plainHasher{})

	// Another regular user may not touch the account.
	_, err := svc.Update(context.Background(), "u1", UpdateRequest{FirstName: strPtr("X")}, auth.Actor{UserID: "u2"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// The owner may not grant themselves superuser.
	_, err = svc.Update(context.Background(), "u1", UpdateRequest{IsSuperuser: boolPtr(true)}, auth.Actor{UserID: "u1"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Update_SuperuserSetsFlags(t *testing.T) {
	existing := &User{ID: "u1", Email: "ada@example.com", IsActive: true}

	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "u1").Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	svc := NewService(repo, plainHasher{})
	u, err := svc.Update(context.Background(), "u1", UpdateRequest{
		IsActive:   boolPtr(false),
		IsVerified: boolPtr(true),
	}, auth.Actor{UserID: "admin", IsSuperuser: true})

	require.NoError(t, err)
	assert.False(t, u.IsActive)
	assert.True(t, u.IsVerified)
}

func TestService_Update_EmailTaken(t *testing.T) {
	existing := &User{ID: "u1", Email: "ada@example.com"}

	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "u1").Return(existing, nil)
	repo.On("GetByEmail", mock.Anything, "taken@example.com").Return(&User{ID: "u9"}, nil)

	svc := NewService(repo, plainHasher{})
	_, err := svc.Update(context.Background(), "u1", UpdateRequest{Email: strPtr("taken@example.com")}, auth.Actor{UserID: "u1"})

	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestService_Delete_Linked(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Delete", mock.Anything, "u1").Return(ErrLinked)

	svc := NewService(repo, plainHasher{})
	assert.ErrorIs(t, svc.Delete(context.Background(), "u1"), ErrLinked)
}
