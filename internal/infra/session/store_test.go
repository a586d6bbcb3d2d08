package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
	"github.com/m04kA/SMC-CourtSlotService/pkg/types"
)

type store interface {
	Get(ctx context.Context, key domain.SelectionKey) (*domain.Selection, error)
	Save(ctx context.Context, key domain.SelectionKey, selection *domain.Selection) error
	Delete(ctx context.Context, key domain.SelectionKey) error
	AcquireSubmitLock(ctx context.Context, key domain.SelectionKey) (string, bool, error)
	ReleaseSubmitLock(ctx context.Context, key domain.SelectionKey, token string) error
	IsSubmitLocked(ctx context.Context, key domain.SelectionKey) (bool, error)
}

func testKey(court int64) domain.SelectionKey {
	return domain.SelectionKey{
		SessionID: "sess-1",
		CourtID:   court,
		Date:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, time.Hour, time.Minute), mr
}

func runStoreContract(t *testing.T, s store) {
	ctx := context.Background()

	t.Run("missing selection is empty", func(t *testing.T) {
		sel, err := s.Get(ctx, testKey(1))
		require.NoError(t, err)
		assert.True(t, sel.IsEmpty())
	})

	t.Run("save and get", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, testKey(2), domain.NewSelection("15:00", "14:00")))

		sel, err := s.Get(ctx, testKey(2))
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"14:00", "15:00"}, sel.Times())

		other, err := s.Get(ctx, testKey(3))
		require.NoError(t, err)
		assert.True(t, other.IsEmpty(), "selection is scoped by court")
	})

	t.Run("saving empty selection deletes it", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, testKey(4), domain.NewSelection("10:00")))
		require.NoError(t, s.Save(ctx, testKey(4), domain.NewSelection()))

		sel, err := s.Get(ctx, testKey(4))
		require.NoError(t, err)
		assert.True(t, sel.IsEmpty())
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, testKey(5), domain.NewSelection("10:00")))
		require.NoError(t, s.Delete(ctx, testKey(5)))

		sel, err := s.Get(ctx, testKey(5))
		require.NoError(t, err)
		assert.True(t, sel.IsEmpty())
	})

	t.Run("owner is stored with the selection", func(t *testing.T) {
		sel := domain.NewSelection("10:00")
		require.True(t, sel.Bind(42))
		require.NoError(t, s.Save(ctx, testKey(7), sel))

		got, err := s.Get(ctx, testKey(7))
		require.NoError(t, err)
		assert.Equal(t, int64(42), got.Owner())
		assert.False(t, got.Bind(43))

		anonymous, err := s.Get(ctx, testKey(1))
		require.NoError(t, err)
		assert.Equal(t, int64(0), anonymous.Owner())
	})

	t.Run("submit lock", func(t *testing.T) {
		key := testKey(6)

		locked, err := s.IsSubmitLocked(ctx, key)
		require.NoError(t, err)
		assert.False(t, locked)

		token, ok, err := s.AcquireSubmitLock(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NotEmpty(t, token)

		_, ok, err = s.AcquireSubmitLock(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, "second acquire must fail while locked")

		require.NoError(t, s.ReleaseSubmitLock(ctx, key, "someone-else"))
		locked, err = s.IsSubmitLocked(ctx, key)
		require.NoError(t, err)
		assert.True(t, locked, "release with a foreign token keeps the lock")

		require.NoError(t, s.ReleaseSubmitLock(ctx, key, token))

		next, ok, err := s.AcquireSubmitLock(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NotEqual(t, token, next)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemoryStore(time.Hour, time.Minute))
}

func TestRedisStore(t *testing.T) {
	s, _ := newRedisStore(t)
	runStoreContract(t, s)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	s := NewMemoryStore(time.Minute, 10*time.Second)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Save(ctx, testKey(1), domain.NewSelection("10:00")))
	_, ok, err := s.AcquireSubmitLock(ctx, testKey(1))
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(11 * time.Second)
	locked, err := s.IsSubmitLocked(ctx, testKey(1))
	require.NoError(t, err)
	assert.False(t, locked)

	now = now.Add(time.Minute)
	sel, err := s.Get(ctx, testKey(1))
	require.NoError(t, err)
	assert.True(t, sel.IsEmpty())
}

func TestRedisStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	require.NoError(t, s.Save(ctx, testKey(1), domain.NewSelection("10:00")))
	_, ok, err := s.AcquireSubmitLock(ctx, testKey(1))
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Minute)

	locked, err := s.IsSubmitLocked(ctx, testKey(1))
	require.NoError(t, err)
	assert.False(t, locked)

	sel, err := s.Get(ctx, testKey(1))
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:00"}, sel.Times(), "selection ttl is an hour")

	mr.FastForward(time.Hour)
	sel, err = s.Get(ctx, testKey(1))
	require.NoError(t, err)
	assert.True(t, sel.IsEmpty())
}

func TestRedisStore_CorruptedRecord(t *testing.T) {
	s, mr := newRedisStore(t)
	require.NoError(t, mr.Set(selectionPrefix+testKey(1).String(), "{not json"))

	_, err := s.Get(context.Background(), testKey(1))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestRedisStore_StaleReleaseKeepsNewLock(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)
	key := testKey(1)

	stale, ok, err := s.AcquireSubmitLock(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Minute)

	fresh, ok, err := s.AcquireSubmitLock(ctx, key)
	require.NoError(t, err)
	require.True(t, ok, "expired lock can be taken again")

	require.NoError(t, s.ReleaseSubmitLock(ctx, key, stale))

	locked, err := s.IsSubmitLocked(ctx, key)
	require.NoError(t, err)
	assert.True(t, locked, "late release of an expired lock must not drop the new one")

	got, err := mr.Get(lockPrefix + key.String())
	require.NoError(t, err)
	assert.Equal(t, fresh, got)

	require.NoError(t, s.ReleaseSubmitLock(ctx, key, fresh))
	assert.False(t, mr.Exists(lockPrefix+key.String()))
}

func TestMemoryStore_StaleReleaseKeepsNewLock(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	s := NewMemoryStore(time.Minute, 10*time.Second)
	s.now = func() time.Time { return now }

	stale, ok, err := s.AcquireSubmitLock(ctx, testKey(1))
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(11 * time.Second)

	_, ok, err = s.AcquireSubmitLock(ctx, testKey(1))
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, s.ReleaseSubmitLock(ctx, testKey(1), stale))

	locked, err := s.IsSubmitLocked(ctx, testKey(1))
	require.NoError(t, err)
	assert.True(t, locked)
}
