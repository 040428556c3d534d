package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBadger(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := OpenBadger(BadgerConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestSQLite(t *testing.T, quota int64) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), ":memory:", quota)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBadgerStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestBadger(t)

	require.NoError(t, s.Save(ctx, KeyBooks, []byte(`[{"id":"1"}]`)))

	got, err := s.Load(ctx, KeyBooks)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(got))

	require.NoError(t, s.Delete(ctx, KeyBooks))
	got, err = s.Load(ctx, KeyBooks)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBadgerStore_MissingKeyIsNilNil(t *testing.T) {
	s := newTestBadger(t)
	got, err := s.Load(context.Background(), "no-such-key")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t, 0)

	require.NoError(t, s.Save(ctx, KeySettings, []byte(`{"theme":"dark"}`)))

	got, err := s.Load(ctx, KeySettings)
	require.NoError(t, err)
	assert.Equal(t, `{"theme":"dark"}`, string(got))

	// Overwrite replaces, not appends.
	require.NoError(t, s.Save(ctx, KeySettings, []byte(`{"theme":"light"}`)))
	got, err = s.Load(ctx, KeySettings)
	require.NoError(t, err)
	assert.Equal(t, `{"theme":"light"}`, string(got))

	require.NoError(t, s.Delete(ctx, KeySettings))
	got, err = s.Load(ctx, KeySettings)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStore_QuotaExceeded(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t, 64)

	err := s.Save(ctx, "k", make([]byte, 100))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	// Nothing was stored.
	got, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStore_QuotaExcludesReplacedKey(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t, 64)

	require.NoError(t, s.Save(ctx, "k", make([]byte, 50)))
	// Replacing the same key with a same-sized value must not double count.
	require.NoError(t, s.Save(ctx, "k", make([]byte, 50)))

	used, err := s.Used(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(51), used)
}

func TestAdapter_UsesPrimaryWhenHealthy(t *testing.T) {
	ctx := context.Background()
	a, err := NewAdapter(ctx, newTestBadger(t), newTestSQLite(t, 0), nil)
	require.NoError(t, err)

	assert.True(t, a.Primary())
	assert.Equal(t, "badger", a.Name())
}

func TestAdapter_NilPrimaryFallsBack(t *testing.T) {
	ctx := context.Background()
	a, err := NewAdapter(ctx, nil, newTestSQLite(t, 0), nil)
	require.NoError(t, err)

	assert.False(t, a.Primary())
	require.NoError(t, a.Save(ctx, KeyBooks, []byte("x")))
	got, err := a.Load(ctx, KeyBooks)
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))
}

func TestAdapter_RequiresFallback(t *testing.T) {
	_, err := NewAdapter(context.Background(), nil, nil, nil)
	require.Error(t, err)
}

// flakyBackend fails every operation after the probe succeeded.
type flakyBackend struct {
	inner    Backend
	failing  bool
	saveErrs int
}

func (f *flakyBackend) Save(ctx context.Context, key string, value []byte) error {
	if f.failing {
		f.saveErrs++
		return errors.New("disk on fire")
	}
	return f.inner.Save(ctx, key, value)
}

func (f *flakyBackend) Load(ctx context.Context, key string) ([]byte, error) {
	if f.failing {
		return nil, errors.New("disk on fire")
	}
	return f.inner.Load(ctx, key)
}

func (f *flakyBackend) Delete(ctx context.Context, key string) error {
	if f.failing {
		return errors.New("disk on fire")
	}
	return f.inner.Delete(ctx, key)
}

func (f *flakyBackend) Close() error { return f.inner.Close() }
func (f *flakyBackend) Name() string { return "flaky" }

func TestAdapter_DemotesPrimaryAfterFailure(t *testing.T) {
	ctx := context.Background()
	flaky := &flakyBackend{inner: newTestBadger(t)}
	a, err := NewAdapter(ctx, flaky, newTestSQLite(t, 0), nil)
	require.NoError(t, err)
	require.True(t, a.Primary())

	flaky.failing = true

	// The failed save retries once on the fallback and demotes the primary.
	require.NoError(t, a.Save(ctx, KeyBooks, []byte("x")))
	assert.False(t, a.Primary())

	got, err := a.Load(ctx, KeyBooks)
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))

	// Demotion is permanent: later saves never touch the primary again.
	before := flaky.saveErrs
	require.NoError(t, a.Save(ctx, KeyBooks, []byte("y")))
	assert.Equal(t, before, flaky.saveErrs)
}

func TestAdapter_LoadFallsThroughOnMissingPrimaryKey(t *testing.T) {
	ctx := context.Background()
	fb := newTestSQLite(t, 0)
	require.NoError(t, fb.Save(ctx, KeySettings, []byte("legacy")))

	a, err := NewAdapter(ctx, newTestBadger(t), fb, nil)
	require.NoError(t, err)
	require.True(t, a.Primary())

	got, err := a.Load(ctx, KeySettings)
	require.NoError(t, err)
	assert.Equal(t, "legacy", string(got))
}
