package wishlist

import (
	"context"

	"github.com/georgemunganga/fellbacher-shop/internal/modules/storage"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrMissingID is returned when a product id is empty.
var ErrMissingID = errors.New("product id is required")

// Service defines the per-session wishlist: an ordered set of product ids.
type Service interface {
	List(ctx context.Context, sid string) ([]string, error)
	// Toggle adds id when absent and removes it when present. It reports the new membership.
	Toggle(ctx context.Context, sid, id string) (bool, error)
	Contains(ctx context.Context, sid, id string) (bool, error)
	Clear(ctx context.Context, sid string) error
}

type service struct {
	lists *storage.Collection[[]string]
}

// NewService creates a wishlist service persisting under "wishlist:<sid>".
func NewService(store storage.Store, logger log.FieldLogger) Service {
	return &service{lists: storage.NewCollection[[]string](store, "wishlist", logger)}
}

func (s *service) List(ctx context.Context, sid string) ([]string, error) {
	ids, err := s.lists.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (s *service) Toggle(ctx context.Context, sid, id string) (bool, error) {
	if id == "" {
		return false, ErrMissingID
	}
	next, err := s.lists.Update(ctx, sid, func(ids []string) ([]string, error) {
		return toggle(ids, id), nil
	})
	if err != nil {
		return false, err
	}
	return indexOf(next, id) >= 0, nil
}

func (s *service) Contains(ctx context.Context, sid, id string) (bool, error) {
	ids, err := s.lists.Get(ctx, sid)
	if err != nil {
		return false, err
	}
	return indexOf(ids, id) >= 0, nil
}

func (s *service) Clear(ctx context.Context, sid string) error {
	s.lists.Reset(ctx, sid)
	return nil
}

func toggle(ids []string, id string) []string {
	i := indexOf(ids, id)
	if i < 0 {
		return append(append(make([]string, 0, len(ids)+1), ids...), id)
	}
	next := make([]string, 0, len(ids)-1)
	next = append(next, ids[:i]...)
	return append(next, ids[i+1:]...)
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
