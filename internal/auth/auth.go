// Package auth handles sign-in and sign-up for the interactive session.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/vsynytsia/clothing-shop/internal/domain"
	"github.com/vsynytsia/clothing-shop/internal/repository"
)

var (
	ErrBadCredentials = errors.New("wrong email and/or password")
	ErrDuplicateUser  = errors.New("user with given email or phone number already exists")
)

// UserStore is the repository surface auth needs.
type UserStore interface {
	InsertUser(ctx context.Context, user *domain.User) (int64, error)
	GetUserByEmailAndHash(ctx context.Context, email, passwordHash string) (*domain.User, error)
}

type Service struct {
	store UserStore
}

func NewService(store UserStore) *Service {
	return &Service{store: store}
}

// HashPassword returns the hex-encoded SHA-256 digest of the password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.store.GetUserByEmailAndHash(ctx, email, HashPassword(password))
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return user, nil
}

// SignUp registers a new customer account and returns it signed in.
func (s *Service) SignUp(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	user.PasswordHash = HashPassword(password)
	if user.RoleID == 0 {
		user.RoleID = domain.RoleCustomer
	}

	id, err := s.store.InsertUser(ctx, user)
	if errors.Is(err, repository.ErrDuplicateUser) {
		return nil, ErrDuplicateUser
	}
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	user.ID = id
	return user, nil
}
