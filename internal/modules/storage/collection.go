package storage

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Collection holds one value per session under a namespace. The live copy is
// hydrated lazily from the Store and written back after every mutation. A failed
// write is logged and the live copy stays authoritative. Sessions with nothing
// stored are never kept live.
type Collection[T any] struct {
	store     Store
	namespace string
	log       log.FieldLogger

	mu   sync.Mutex
	live map[string]T
}

// NewCollection creates a collection whose keys are Key(namespace, sid).
func NewCollection[T any](store Store, namespace string, logger log.FieldLogger) *Collection[T] {
	return &Collection[T]{
		store:     store,
		namespace: namespace,
		log:       logger.WithField("collection", namespace),
		live:      make(map[string]T),
	}
}

// Get returns the value for sid, or the zero value when nothing is stored.
func (c *Collection[T]) Get(ctx context.Context, sid string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx, sid)
}

// Update replaces the value for sid with fn's result and persists it.
// fn must not modify its argument in place; when it fails nothing changes.
func (c *Collection[T]) Update(ctx context.Context, sid string, fn func(T) (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, err := c.load(ctx, sid)
	if err != nil {
		return cur, err
	}
	next, err := fn(cur)
	if err != nil {
		return cur, err
	}
	c.live[sid] = next
	if err := PutJSON(ctx, c.store, Key(c.namespace, sid), next); err != nil {
		c.log.WithError(err).WithField("session", sid).Warn("failed to persist")
	}
	return next, nil
}

// Reset empties the value for sid and removes the stored copy.
func (c *Collection[T]) Reset(ctx context.Context, sid string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Delete(ctx, Key(c.namespace, sid)); err != nil {
		c.log.WithError(err).WithField("session", sid).Warn("failed to delete")
		// the stale stored copy must not be hydrated again
		var zero T
		c.live[sid] = zero
		return
	}
	delete(c.live, sid)
}

func (c *Collection[T]) load(ctx context.Context, sid string) (T, error) {
	if v, ok := c.live[sid]; ok {
		return v, nil
	}
	var v T
	found, err := GetJSON(ctx, c.store, Key(c.namespace, sid), &v)
	if err != nil {
		var zero T
		return zero, err
	}
	if found {
		c.live[sid] = v
	}
	return v, nil
}
