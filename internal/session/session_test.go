package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func sample() *Session {
	return &Session{
		Token: "tok-123",
		User: User{
			ID:         "U1",
			Login:      "branch1",
			Role:       RoleBranch,
			BranchID:   "B1",
			BranchName: "Central Pharmacy",
		},
		CreatedAt: time.Date(2026, 4, 12, 9, 30, 0, 0, time.UTC),
	}
}

func TestUserScope(t *testing.T) {
	admin := User{Role: RoleAdmin, BranchID: "ignored"}
	require.True(t, admin.IsAdmin())
	require.Empty(t, admin.Scope())

	branch := User{Role: RoleBranch, BranchID: "B1"}
	require.False(t, branch.IsAdmin())
	require.Equal(t, "B1", branch.Scope())
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = store.Load(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, store.Save(ctx, sample()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	sess, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-123", sess.Token)
	require.Equal(t, "B1", sess.User.BranchID)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	// clearing twice is fine
	require.NoError(t, store.Clear(ctx))
}

func TestFileStoreEmptyToken(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, &Session{}))
	_, err = store.Load(ctx)
	require.ErrorIs(t, err, ErrNoSession)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client, "till-3", time.Hour)

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, store.Save(ctx, sample()))
	sess, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "branch1", sess.User.Login)

	mr.FastForward(2 * time.Hour)
	_, err = store.Load(ctx)
	require.ErrorIs(t, err, ErrNoSession)
}

func TestRedisStoreTerminalIsolation(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	a := NewRedisStore(client, "till-1", time.Hour)
	b := NewRedisStore(client, "till-2", time.Hour)

	require.NoError(t, a.Save(ctx, sample()))
	_, err := b.Load(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, a.Clear(ctx))
	_, err = a.Load(ctx)
	require.ErrorIs(t, err, ErrNoSession)
}
