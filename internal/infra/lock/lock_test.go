package lock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLock_LockUnlock(t *testing.T) {
	l := NewLocalLock()
	ctx := context.Background()

	token, ok, err := l.Lock(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	_, ok, err = l.Lock(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second lock must fail while held")

	_, ok, err = l.Lock(ctx, "other", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, l.Unlock(ctx, "k", token))

	_, ok, err = l.Lock(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalLock_Expires(t *testing.T) {
	l := NewLocalLock()
	now := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	l.clock = func() time.Time { return now }

	_, ok, _ := l.Lock(context.Background(), "k", time.Second)
	require.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok, _ = l.Lock(context.Background(), "k", time.Second)
	assert.True(t, ok, "expired lock must be reacquirable")
}

func TestLocalLock_StaleHolderCannotReleaseNewHolder(t *testing.T) {
	l := NewLocalLock()
	now := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	l.clock = func() time.Time { return now }
	ctx := context.Background()

	stale, ok, _ := l.Lock(ctx, "k", time.Second)
	require.True(t, ok)

	now = now.Add(2 * time.Second)
	fresh, ok, _ := l.Lock(ctx, "k", time.Minute)
	require.True(t, ok)
	require.NotEqual(t, stale, fresh)

	// первый писатель проснулся после истечения TTL
	require.NoError(t, l.Unlock(ctx, "k", stale))

	_, ok, _ = l.Lock(ctx, "k", time.Minute)
	assert.False(t, ok, "new holder keeps the lock")

	require.NoError(t, l.Unlock(ctx, "k", fresh))
	_, ok, _ = l.Lock(ctx, "k", time.Minute)
	assert.True(t, ok)
}

func TestWithLock(t *testing.T) {
	l := NewLocalLock()
	ctx := context.Background()
	key := StaffKey("s1")

	called := false
	err := WithLock(ctx, l, key, time.Minute, func(ctx context.Context) error {
		called = true

		// вложенный захват того же ключа должен быть отклонен
		inner := WithLock(ctx, l, key, time.Minute, func(context.Context) error { return nil })
		assert.ErrorIs(t, inner, ErrLocked)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)

	// после выхода ключ освобожден
	_, ok, err := l.Lock(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWithLock_PropagatesError(t *testing.T) {
	l := NewLocalLock()
	boom := errors.New("boom")

	err := WithLock(context.Background(), l, "k", time.Minute, func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)

	_, ok, _ := l.Lock(context.Background(), "k", time.Minute)
	assert.True(t, ok, "lock released after failure")
}

func TestWithLock_ExpiredDuringWorkKeepsNewHolder(t *testing.T) {
	l := NewLocalLock()
	now := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	l.clock = func() time.Time { return now }
	ctx := context.Background()

	var took bool
	err := WithLock(ctx, l, "k", time.Second, func(ctx context.Context) error {
		now = now.Add(2 * time.Second)
		_, took, _ = l.Lock(ctx, "k", time.Minute)
		return nil
	})
	require.NoError(t, err)
	require.True(t, took, "expired key is taken over during the work")

	_, ok, _ := l.Lock(ctx, "k", time.Minute)
	assert.False(t, ok, "WithLock must not release the new holder's lock")
}

type recordingLocker struct {
	token    string
	unlocked []string
}

func (r *recordingLocker) Lock(context.Context, string, time.Duration) (string, bool, error) {
	return r.token, true, nil
}

func (r *recordingLocker) Unlock(_ context.Context, _ string, token string) error {
	r.unlocked = append(r.unlocked, token)
	return nil
}

func TestWithLock_UnlocksWithOwnToken(t *testing.T) {
	l := &recordingLocker{token: "t-1"}

	require.NoError(t, WithLock(context.Background(), l, "k", time.Minute, func(context.Context) error { return nil }))
	assert.Equal(t, []string{"t-1"}, l.unlocked)
}

type failingLocker struct{}

func (failingLocker) Lock(context.Context, string, time.Duration) (string, bool, error) {
	return "", false, errors.New("redis down")
}

func (failingLocker) Unlock(context.Context, string, string) error { return nil }

func TestWithLock_AcquireError(t *testing.T) {
	err := WithLock(context.Background(), failingLocker{}, "k", time.Minute, func(context.Context) error {
		t.Fatal("must not run")
		return nil
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrLocked)
}
