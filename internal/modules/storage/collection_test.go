package storage

import (
	"context"
	"strconv"
	"testing"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore loses every write.
type failingStore struct{ Store }

func (failingStore) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func (failingStore) Delete(context.Context, string) error {
	return errors.New("disk full")
}

func appendID(id string) func([]string) ([]string, error) {
	return func(cur []string) ([]string, error) {
		return append(append([]string(nil), cur...), id), nil
	}
}

func TestCollectionPersists(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()
	store := NewMemory()

	c := NewCollection[[]string](store, "wishlist", logger)
	got, err := c.Update(ctx, "s1", appendID("1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, got)

	var stored []string
	found, err := GetJSON(ctx, store, "wishlist:s1", &stored)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"1"}, stored)

	fresh := NewCollection[[]string](store, "wishlist", logger)
	got, err = fresh.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, got)

	got, err = fresh.Get(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCollectionUpdateErrorLeavesValue(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()
	c := NewCollection[[]string](NewMemory(), "cart", logger)

	_, err := c.Update(ctx, "s1", appendID("1"))
	require.NoError(t, err)

	boom := errors.New("boom")
	got, err := c.Update(ctx, "s1", func([]string) ([]string, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"1"}, got)

	got, err = c.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, got)
}

func TestCollectionWriteFailureIsBestEffort(t *testing.T) {
	ctx := context.Background()
	logger, hook := test.NewNullLogger()
	c := NewCollection[[]string](failingStore{NewMemory()}, "cart", logger)

	got, err := c.Update(ctx, "s1", appendID("1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, got)

	got, err = c.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, got)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, log.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "cart", hook.LastEntry().Data["collection"])
}

func TestCollectionReset(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()
	store := NewMemory()
	c := NewCollection[[]string](store, "cart", logger)

	_, err := c.Update(ctx, "s1", appendID("1"))
	require.NoError(t, err)
	c.Reset(ctx, "s1")

	got, err := c.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = store.Get(ctx, "cart:s1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, c.liveCount())
}

func TestCollectionResetSurvivesDeleteFailure(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()
	mem := NewMemory()
	require.NoError(t, PutJSON(ctx, mem, "cart:s1", []string{"1"}))

	c := NewCollection[[]string](failingStore{mem}, "cart", logger)
	c.Reset(ctx, "s1")

	got, err := c.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func (c *Collection[T]) liveCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.live)
}

func TestCollectionReadsDoNotRetainEmptySessions(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()
	c := NewCollection[[]string](NewMemory(), "cart", logger)

	for i := 0; i < 10000; i++ {
		got, err := c.Get(ctx, "anon-"+strconv.Itoa(i))
		require.NoError(t, err)
		require.Empty(t, got)
	}
	assert.Zero(t, c.liveCount())

	_, err := c.Update(ctx, "s1", appendID("1"))
	require.NoError(t, err)
	assert.Equal(t, 1, c.liveCount())
}
