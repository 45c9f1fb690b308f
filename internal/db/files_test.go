package db

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/staffpoints/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles_UsersMissingStore(t *testing.T) {
	files := NewFiles(t.TempDir())

	_, err := files.LoadUsers(context.Background())
	assert.True(t, IsNotExist(err))
}

func TestFiles_UsersRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested")
	files := NewFiles(dir)

	users := []model.User{
		{Username: "admin", PasswordHash: "$2a$10$hash", Role: model.RoleAdmin},
		{Username: "bob", PasswordHash: "plain", Role: model.RoleUser},
	}
	require.NoError(t, files.SaveUsers(ctx, users))

	got, err := files.LoadUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, users, got)

	raw, err := os.ReadFile(filepath.Join(dir, UsersFile))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"password": "plain"`)
}

func TestFiles_LegacyUsersFile(t *testing.T) {
	dir := t.TempDir()
	legacy := `[{"username":"admin","password":"Password01","role":"admin"},{"username":"bob","password":"plaintext123","role":"user"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, UsersFile), []byte(legacy), 0o644))

	got, err := NewFiles(dir).LoadUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "plaintext123", got[1].PasswordHash)
	assert.Equal(t, model.RoleUser, got[1].Role)
}

func TestFiles_CorruptUsersFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, UsersFile), []byte(`[{"username":`), 0o644))

	_, err := NewFiles(dir).LoadUsers(context.Background())
	require.Error(t, err)
	assert.False(t, IsNotExist(err))
}

func TestFiles_EmptyArray(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, UsersFile), []byte(`[]`), 0o644))

	got, err := NewFiles(dir).LoadUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFiles_Staff(t *testing.T) {
	ctx := context.Background()
	files := NewFiles(t.TempDir())

	list, err := files.ListStaff(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, files.InsertStaff(ctx, model.Staff{Name: "Jane"}))
	require.NoError(t, files.InsertStaff(ctx, model.Staff{Name: "John"}))
	assert.ErrorIs(t, files.InsertStaff(ctx, model.Staff{Name: "JANE"}), ErrConflict)

	require.NoError(t, files.DeleteStaff(ctx, "jane"))
	list, err = files.ListStaff(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Staff{{Name: "John"}}, list)
}

func TestFiles_ConcurrentSlipInserts(t *testing.T) {
	ctx := context.Background()
	files := NewFiles(t.TempDir())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, files.InsertSlip(ctx, model.Slip{ID: string(rune('a' + i)), Name: "Jane", Date: "2026-01-01"}))
		}(i)
	}
	wg.Wait()

	slips, err := files.ListSlips(ctx)
	require.NoError(t, err)
	assert.Len(t, slips, 20)
}
