package services

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"velora/internal/domain"
	"velora/internal/validate"
)

type userStore interface {
	ByEmail(ctx context.Context, email string) (domain.User, error)
	ByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u domain.User) error
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
	BindSession(ctx context.Context, sessionID, userID string) error
	UnbindSession(ctx context.Context, sessionID string) error
	SessionUser(ctx context.Context, sessionID string) (domain.User, error)
}

type AuthService struct {
	Users userStore
}

func NewAuthService(users userStore) *AuthService {
	return &AuthService{Users: users}
}

func (s *AuthService) Login(ctx context.Context, sid, email, password string) (domain.User, error) {
	u, err := s.Users.ByEmail(ctx, email)
	if err != nil {
		return domain.User{}, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return domain.User{}, ErrBadCreds
	}
	if err := s.Users.BindSession(ctx, sid, u.ID); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.Users.UnbindSession(ctx, sid)
}

func (s *AuthService) CurrentUser(ctx context.Context, sid string) (domain.User, error) {
	return s.Users.SessionUser(ctx, sid)
}

// CreateUser provisions an account; admin-only surface.
func (s *AuthService) CreateUser(ctx context.Context, email, name, password, role string) (domain.User, error) {
	email, ok := validate.Email(email)
	if !ok {
		return domain.User{}, ErrBadCreds
	}
	if !validate.Password(password) {
		return domain.User{}, ErrBadCreds
	}
	if role != "ADMIN" {
		role = "USER"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	u := domain.User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  name,
		Hash:  string(hash),
		Role:  role,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Users.List(ctx)
}

func (s *AuthService) DeleteUser(ctx context.Context, id string) error {
	return s.Users.Delete(ctx, id)
}
