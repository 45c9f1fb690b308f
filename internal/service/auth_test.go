package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/staffpoints/backend/internal/db"
	"github.com/staffpoints/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(t *testing.T, backend CredentialBackend) (*AuthService, *CredentialStore) {
	t.Helper()
	store, _ := newTestStore(t, backend)
	_, _ = store.Bootstrap(context.Background())

	tokens, err := NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)
	return NewAuthService(store, store.hasher, tokens), store
}

func TestAuthService_Login_SeedAdmin(t *testing.T) {
	auth, _ := newTestAuth(t, db.NewMemory())

	resp, err := auth.Login(context.Background(), "admin", "Password01")
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Username)
	assert.Equal(t, model.RoleAdmin, resp.Role)
	require.NotEmpty(t, resp.Token)

	identity, err := auth.ParseAccessToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", identity.Username)
	assert.Equal(t, model.RoleAdmin, identity.Role)
}

func TestAuthService_Login_MigratedUser(t *testing.T) {
	backend := db.NewMemoryWithUsers([]model.User{
		{Username: "bob", PasswordHash: "plaintext123", Role: model.RoleUser},
	})
	auth, _ := newTestAuth(t, backend)

	users, err := backend.LoadUsers(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, "plaintext123", users[0].PasswordHash)

	resp, err := auth.Login(context.Background(), "bob", "plaintext123")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, resp.Role)
}

func TestAuthService_Login_Failures(t *testing.T) {
	auth, _ := newTestAuth(t, db.NewMemory())

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong-password", "admin", "password01"},
		{"unknown-user", "ghost", "Password01"},
		{"empty-password", "admin", ""},
		{"empty-username", "", "Password01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := auth.Login(context.Background(), tt.username, tt.password)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestAuthService_Login_FailsClosedOnUnreadableStore(t *testing.T) {
	auth, _ := newTestAuth(t, &failingBackend{loadErr: errors.New("disk on fire")})

	_, err := auth.Login(context.Background(), "admin", "Password01")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_TokenOutlivesDeletedUser(t *testing.T) {
	ctx := context.Background()
	auth, store := newTestAuth(t, db.NewMemory())
	_, err := store.Add(ctx, "bob", "pw", model.RoleUser)
	require.NoError(t, err)

	resp, err := auth.Login(ctx, "bob", "pw")
	require.NoError(t, err)
	require.NoError(t, store.Remove(ctx, "bob"))

	identity, err := auth.ParseAccessToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "bob", identity.Username)

	_, err = auth.Login(ctx, "bob", "pw")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_Login_RejectsOverlongPassword(t *testing.T) {
	ctx := context.Background()
	auth, store := newTestAuth(t, db.NewMemory())
	pw := strings.Repeat("k", 72)
	_, err := store.Add(ctx, "bob", pw, model.RoleUser)
	require.NoError(t, err)

	_, err = auth.Login(ctx, "bob", pw)
	require.NoError(t, err)

	resp, err := auth.Login(ctx, "bob", pw+"-totally-different-suffix")
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_Login_RejectsRecordWithoutRole(t *testing.T) {
	ctx := context.Background()
	h := newTestHasher()
	hash, err := h.Hash(ctx, "pw")
	require.NoError(t, err)

	for _, role := range []model.Role{"", "root"} {
		t.Run(string(role), func(t *testing.T) {
			backend := db.NewMemoryWithUsers([]model.User{
				{Username: "bob", PasswordHash: hash, Role: role},
			})
			auth, _ := newTestAuth(t, backend)

			resp, err := auth.Login(ctx, "bob", "pw")
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}
