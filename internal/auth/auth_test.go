package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostezee/billing/internal/models"
	"github.com/hostezee/billing/internal/storage"
)

// memoryUsers is an in-memory UserStorage.
type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[string]*models.User)}
}

func (m *memoryUsers) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *memoryUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, storage.ErrNotFound)
}

func (m *memoryUsers) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
}

func (m *memoryUsers) CountUsers(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

// brokenUsers fails every lookup with a storage error.
type brokenUsers struct{ *memoryUsers }

func (b *brokenUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, errors.New("database is locked")
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	a := NewPasswordAuthenticator(newMemoryUsers())

	user, err := a.Register(ctx, "desk@hostezee.in", "Front Desk", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuperAdmin, user.Role)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	second, err := a.Register(ctx, "night@hostezee.in", "Night Desk", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, second.Role)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := a.Register(ctx, "desk@hostezee.in", "Other", "correct-horse")
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := a.Register(ctx, "new@hostezee.in", "New", "1234567")
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("authenticate", func(t *testing.T) {
		got, err := a.Authenticate(ctx, "desk@hostezee.in", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)

		_, err = a.Authenticate(ctx, "desk@hostezee.in", "wrong-horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = a.Authenticate(ctx, " Desk@Hostezee.in ", "correct-horse")
		assert.NoError(t, err, "email lookup should ignore case and spaces")

		_, err = a.Authenticate(ctx, "nobody@hostezee.in", "correct-horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestPasswordAuthenticator_StorageError(t *testing.T) {
	a := NewPasswordAuthenticator(&brokenUsers{memoryUsers: newMemoryUsers()})

	_, err := a.Register(context.Background(), "desk@hostezee.in", "Front Desk", "correct-horse")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailExists)
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	user := models.NewUser("desk@hostezee.in", "Front Desk", "hash")
	user.Role = models.RoleManager

	token, err := m.Generate(user)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, "desk@hostezee.in", claims.Email)
	assert.Equal(t, models.RoleManager, claims.Role)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewJWTManager("other", time.Hour).Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired, err := NewJWTManager("secret", -time.Minute).Generate(user)
		require.NoError(t, err)
		_, err = m.Validate(expired)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other issuer", func(t *testing.T) {
		foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
			UserID: user.ID,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "someone-else",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		signed, err := foreign.SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = m.Validate(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Validate("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
