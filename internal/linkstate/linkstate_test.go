package linkstate

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Reblayzer/BachelorCode-sub000/internal/core"
	"github.com/Reblayzer/BachelorCode-sub000/internal/models"
	"github.com/Reblayzer/BachelorCode-sub000/internal/store"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func sampleEntry(state string) models.LinkState {
	return models.LinkState{
		State:        state,
		UserID:       "user-1",
		CodeVerifier: "verifier-" + state,
		Provider:     models.ProviderGoogle,
		RedirectURI:  "https://app.example/api/providers/google/callback",
		Scopes:       "openid https://www.googleapis.com/auth/drive.readonly",
	}
}

func newDatabaseStore(t *testing.T) *Database {
	t.Helper()
	s, err := store.New("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return NewDatabase(s)
}

func newRedisStore(t *testing.T) *Redis {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping Redis integration test in short mode")
	}

	// Recover from panic if Docker is not available
	defer func() {
		if r := recover(); r != nil {
			t.Skipf("Skipping Redis test: Docker not available (panic: %v)", r)
		}
	}()

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("Skipping Redis test: Docker not available (%v)", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	return NewRedis(client, "test:state:")
}

// backends returns every StateStore under test.
func backends(t *testing.T) map[string]func(t *testing.T) core.StateStore {
	return map[string]func(t *testing.T) core.StateStore{
		"memory":   func(t *testing.T) core.StateStore { return NewMemory() },
		"database": func(t *testing.T) core.StateStore { return newDatabaseStore(t) },
		"redis":    func(t *testing.T) core.StateStore { return newRedisStore(t) },
	}
}

func TestStateStore_SingleUse(t *testing.T) {
	for name, factory := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			ctx := context.Background()

			require.NoError(t, s.Save(ctx, "abc", sampleEntry("abc"), time.Minute))

			got, err := s.Take(ctx, "abc")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "user-1", got.UserID)
			assert.Equal(t, "verifier-abc", got.CodeVerifier)
			assert.Equal(t, models.ProviderGoogle, got.Provider)
			assert.Equal(t, "https://app.example/api/providers/google/callback", got.RedirectURI)
			assert.Equal(
				t,
				[]string{"openid", "https://www.googleapis.com/auth/drive.readonly"},
				got.RequestedScopes(),
			)

			again, err := s.Take(ctx, "abc")
			require.NoError(t, err)
			assert.Nil(t, again)
		})
	}
}

func TestStateStore_UnknownState(t *testing.T) {
	for name, factory := range backends(t) {
		t.Run(name, func(t *testing.T) {
			got, err := factory(t).Take(context.Background(), "never-saved")
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestStateStore_ConcurrentTake(t *testing.T) {
	for name, factory := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			ctx := context.Background()

			for i := range 5 {
				state := fmt.Sprintf("race-%d", i)
				require.NoError(t, s.Save(ctx, state, sampleEntry(state), time.Minute))

				var winners atomic.Int32
				var wg sync.WaitGroup
				for range 16 {
					wg.Go(func() {
						got, err := s.Take(ctx, state)
						if err == nil && got != nil {
							winners.Add(1)
						}
					})
				}
				wg.Wait()

				assert.Equal(t, int32(1), winners.Load(), "state %s", state)
			}
		})
	}
}

func TestMemory_Expiry(t *testing.T) {
	m := NewMemory()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, m.Save(ctx, "s", sampleEntry("s"), 10*time.Minute))

	now = now.Add(10*time.Minute + time.Second)
	got, err := m.Take(ctx, "s")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, m.Len())
}

func TestMemory_Cleanup(t *testing.T) {
	m := NewMemory()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, m.Save(ctx, "short", sampleEntry("short"), time.Minute))
	require.NoError(t, m.Save(ctx, "long", sampleEntry("long"), time.Hour))

	now = now.Add(2 * time.Minute)
	removed, err := m.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Equal(t, 1, m.Len())

	got, err := m.Take(ctx, "long")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestDatabase_Expiry(t *testing.T) {
	d := newDatabaseStore(t)
	now := time.Now()
	d.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, d.Save(ctx, "s", sampleEntry("s"), time.Minute))
	require.NoError(t, d.Save(ctx, "t", sampleEntry("t"), time.Hour))

	now = now.Add(2 * time.Minute)

	got, err := d.Take(ctx, "s")
	require.NoError(t, err)
	assert.Nil(t, got)

	removed, err := d.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed, "expired row was already consumed by Take")

	got, err = d.Take(ctx, "t")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestRedis_Expiry(t *testing.T) {
	r := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, "ttl", sampleEntry("ttl"), time.Second))
	time.Sleep(1500 * time.Millisecond)

	got, err := r.Take(ctx, "ttl")
	require.NoError(t, err)
	assert.Nil(t, got)
}
