package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsynytsia/clothing-shop/internal/domain"
	"github.com/vsynytsia/clothing-shop/internal/repository"
)

type mockUserStore struct {
	users  map[string]*domain.User // passwordHash by email
	nextID int64
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: map[string]*domain.User{}, nextID: 1}
}

func (m *mockUserStore) InsertUser(_ context.Context, user *domain.User) (int64, error) {
	if _, exists := m.users[user.Email]; exists {
		return 0, repository.ErrDuplicateUser
	}
	id := m.nextID
	m.nextID++
	stored := *user
	stored.ID = id
	m.users[user.Email] = &stored
	return id, nil
}

func (m *mockUserStore) GetUserByEmailAndHash(_ context.Context, email, passwordHash string) (*domain.User, error) {
	user, ok := m.users[email]
	if !ok || user.PasswordHash != passwordHash {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func TestHashPassword_Deterministic(t *testing.T) {
	h1 := HashPassword("secret")
	h2 := HashPassword("secret")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64) // hex sha256
	assert.NotEqual(t, h1, HashPassword("Secret"))
}

func TestSignUp_ThenSignIn(t *testing.T) {
	store := newMockUserStore()
	sut := NewService(store)
	ctx := context.Background()

	user := &domain.User{FirstName: "Ann", LastName: "Lee", PhoneNumber: "123", Email: "ann@example.com"}
	created, err := sut.SignUp(ctx, user, "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, domain.RoleCustomer, created.RoleID)
	assert.NotEqual(t, "secret", created.PasswordHash)

	signedIn, err := sut.SignIn(ctx, "ann@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, signedIn.ID)
}

func TestSignIn_WrongPassword(t *testing.T) {
	store := newMockUserStore()
	sut := NewService(store)
	ctx := context.Background()

	_, err := sut.SignUp(ctx, &domain.User{Email: "ann@example.com"}, "secret")
	require.NoError(t, err)

	_, err = sut.SignIn(ctx, "ann@example.com", "wrong")
	require.ErrorIs(t, err, ErrBadCredentials)
}

func TestSignIn_UnknownEmail(t *testing.T) {
	sut := NewService(newMockUserStore())

	_, err := sut.SignIn(context.Background(), "nobody@example.com", "secret")
	require.ErrorIs(t, err, ErrBadCredentials)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	store := newMockUserStore()
	sut := NewService(store)
	ctx := context.Background()

	_, err := sut.SignUp(ctx, &domain.User{Email: "ann@example.com"}, "secret")
	require.NoError(t, err)

	_, err = sut.SignUp(ctx, &domain.User{Email: "ann@example.com"}, "other")
	require.ErrorIs(t, err, ErrDuplicateUser)
}
