package services

import (
	"context"
	"errors"

	"github.com/taskapp/apiserver/internal/store"
	"github.com/taskapp/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// ErrEmailTaken is returned when registering an email that already
// belongs to an account.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials is returned when a login password does not
// match the stored hash.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrAdminExists is returned when a role change would create a second
// administrator.
var ErrAdminExists = errors.New("administrator already exists")

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	List(ctx context.Context) ([]types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	UpdateRole(ctx context.Context, id, role string) error
}

// AuthService encapsulates account use-cases: registration, login,
// and role administration.
type AuthService struct {
	repo UserRepository
}

func NewAuthService(repo UserRepository) *AuthService {
	return &AuthService{repo: repo}
}

// Register hashes the password and stores a new user with the default
// role. The email must not already belong to an account.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (types.User, error) {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return types.User{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, err
	}

	return s.repo.Create(ctx, types.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hashed),
		Role:         types.RoleUser,
	})
}

// Login verifies the credentials and returns the matching user.
// A missing account surfaces as store.ErrNotFound, a wrong password
// as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (types.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return types.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// SetRole changes the target user's role, enforcing the single-admin
// invariant. The count check and the write run atomically in the
// repository.
func (s *AuthService) SetRole(ctx context.Context, id, role string) error {
	err := s.repo.UpdateRole(ctx, id, role)
	if errors.Is(err, store.ErrConflict) {
		return ErrAdminExists
	}
	return err
}

func (s *AuthService) GetByID(ctx context.Context, id string) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AuthService) ListUsers(ctx context.Context) ([]types.User, error) {
	return s.repo.List(ctx)
}
