package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestKeyScoping(t *testing.T) {
	require.Equal(t, "medicines", Key("medicines", ""))
	require.Equal(t, "medicines:B1", Key("medicines", "B1"))
}

func TestAffectedRules(t *testing.T) {
	cases := []struct {
		resource string
		branch   string
		want     []string
	}{
		{"shipments", "B1", []string{"shipments", "shipments:B1", "medicines", "medicines:B1", "medical_devices", "medical_devices:B1"}},
		{"transfers", "", []string{"transfers", "medicines"}},
		{"arrivals", "", []string{"arrivals", "medicines"}},
		{"device_arrivals", "", []string{"device_arrivals", "medical_devices"}},
		{"dispensing_records", "B2", []string{"dispensing_records", "dispensing_records:B2", "medicines", "medicines:B2", "medical_devices", "medical_devices:B2"}},
		{"notifications", "B1", []string{"notifications", "notifications:B1"}},
	}
	for _, tc := range cases {
		t.Run(tc.resource, func(t *testing.T) {
			require.ElementsMatch(t, tc.want, Affected(tc.resource, tc.branch))
		})
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "medicines")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, m.Set(ctx, "medicines", []byte(`[1]`), time.Minute))
	got, ok, err := m.Get(ctx, "medicines")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte(`[1]`), got)

	require.NoError(t, m.Invalidate(ctx, "medicines"))
	_, ok, err = m.Get(ctx, "medicines")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Now()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "medicines", []byte(`[1]`), 30*time.Second))

	now = now.Add(29 * time.Second)
	_, ok, err := m.Get(ctx, "medicines")
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok, err = m.Get(ctx, "medicines")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	store := NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	_, ok, err := store.Get(ctx, "shipments:B1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, "shipments:B1", []byte(`[{"id":"S1"}]`), time.Minute))
	got, ok, err := store.Get(ctx, "shipments:B1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte(`[{"id":"S1"}]`), got)

	require.NoError(t, store.Invalidate(ctx, "shipments:B1", "medicines:B1"))
	_, ok, err = store.Get(ctx, "shipments:B1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Invalidate(ctx))
}
