package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnk-music/intake/cmd/intake/models"
	"github.com/dnk-music/intake/common/logger"
)

type memUserStore struct {
	users map[string]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*models.User)}
}

func (m *memUserStore) Create(_ context.Context, u *models.User) error {
	copied := *u
	m.users[u.Username] = &copied
	return nil
}

func (m *memUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memUserStore) List(context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUserStore) SetPasswordHash(_ context.Context, username, hash string) error {
	m.users[username].PasswordHash = hash
	return nil
}

func (m *memUserStore) SetVerified(_ context.Context, username string, verified bool) error {
	m.users[username].IsVerified = verified
	return nil
}

func (m *memUserStore) SetLinkUpload(_ context.Context, username string, enabled bool) error {
	m.users[username].LinkUpload = enabled
	return nil
}

func (m *memUserStore) Delete(_ context.Context, username string) error {
	delete(m.users, username)
	return nil
}

type memSessionStore struct {
	values map[string]string
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{values: make(map[string]string)}
}

func (m *memSessionStore) SetWithExpiry(_ context.Context, key, value string, _ time.Duration) error {
	m.values[key] = value
	return nil
}

func (m *memSessionStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memSessionStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func newUserFixture(t *testing.T) (*UserService, *memUserStore) {
	t.Helper()
	store := newMemUserStore()
	svc := NewUserService(store, newMemSessionStore(), "test-secret", time.Hour, logger.New("error", "text"))
	return svc, store
}

func TestLoginIssuesRevocableToken(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "artist1", "pass123", false))

	token, err := svc.Login(ctx, "artist1", "pass123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "artist1", user.Username)

	// Logout revokes the token even though the signature is still valid
	require.NoError(t, svc.Logout(ctx, token))
	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "artist1", "pass123", false))

	_, err := svc.Login(ctx, "artist1", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "pass123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateRejectsForeignSignature(t *testing.T) {
	svc, _ := newUserFixture(t)
	_, err := svc.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "artist1", "pass123", false))
	require.NoError(t, svc.ChangePassword(ctx, "artist1", "pass123", "newpass"))

	_, err := svc.Login(ctx, "artist1", "pass123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "artist1", "newpass")
	assert.NoError(t, err)

	err = svc.ChangePassword(ctx, "artist1", "wrong", "other")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterStoresHashedCredential(t *testing.T) {
	svc, store := newUserFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "artist1", "pass123", false))
	assert.NotEqual(t, "pass123", store.users["artist1"].PasswordHash)
	assert.NotEmpty(t, store.users["artist1"].PasswordHash)
}
