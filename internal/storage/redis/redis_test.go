package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david-rodelgo/gastoscompartidos/internal/storage/storetest"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	store, err := New(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, mr
}

func TestRedisStore(t *testing.T) {
	store, _ := newTestStore(t)
	storetest.Run(t, store, "rd")
}

func TestRedisStore_KeyLayout(t *testing.T) {
	store, mr := newTestStore(t)

	require.NoError(t, store.CreateTrip(context.Background(), storetest.NewTrip("layout01")))
	assert.True(t, mr.Exists("trip:layout01"))
}

func TestRedisStore_CorruptValue(t *testing.T) {
	store, mr := newTestStore(t)

	require.NoError(t, mr.Set("trip:broken01", "{not json"))
	_, err := store.GetTrip(context.Background(), "broken01")
	assert.Error(t, err)
}

func TestNew_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = New(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
