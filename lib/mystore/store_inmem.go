package mystore

import (
	"context"
	"sync"
	"time"

	"github.com/MarcGrol/shopauth/lib/mytime"
)

type inMemoryEntry[T any] struct {
	value     T
	expiresAt time.Time
}

type InMemoryStore[T any] struct {
	sync.Mutex
	items map[string]inMemoryEntry[T]
	ttl   time.Duration
	nower mytime.Nower
}

func NewInMemoryStore[T any](c context.Context) (*InMemoryStore[T], func(), error) {
	return NewInMemoryStoreWithTTL[T](0, mytime.RealNower{}), func() {}, nil
}

// NewInMemoryStoreWithTTL drops entries once they are older than ttl; zero means never.
func NewInMemoryStoreWithTTL[T any](ttl time.Duration, nower mytime.Nower) *InMemoryStore[T] {
	return &InMemoryStore[T]{
		items: make(map[string]inMemoryEntry[T]),
		ttl:   ttl,
		nower: nower,
	}
}

func (s *InMemoryStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	// Start transaction
	s.Lock()
	defer s.Unlock()

	ctx := context.WithValue(c, ctxTransactionKey{}, true)

	// Within this block everything is transactional
	return f(ctx)
}

func (s *InMemoryStore[T]) locked(c context.Context, f func()) {
	nonTransactional := c.Value(ctxTransactionKey{}) == nil

	if nonTransactional {
		s.Lock()
		defer s.Unlock()
	}

	f()
}

func (s *InMemoryStore[T]) expired(entry inMemoryEntry[T], now time.Time) bool {
	return !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt)
}

// evictExpired must be called with the lock held.
func (s *InMemoryStore[T]) evictExpired() {
	if s.ttl == 0 {
		return
	}
	now := s.nower.Now()
	for uid, entry := range s.items {
		if s.expired(entry, now) {
			delete(s.items, uid)
		}
	}
}

func (s *InMemoryStore[T]) Put(c context.Context, uid string, value T) error {
	s.locked(c, func() {
		s.evictExpired()

		entry := inMemoryEntry[T]{value: value}
		if s.ttl > 0 {
			entry.expiresAt = s.nower.Now().Add(s.ttl)
		}
		s.items[uid] = entry
	})

	return nil
}

func (s *InMemoryStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	var (
		result T
		exists bool
	)
	s.locked(c, func() {
		s.evictExpired()

		var entry inMemoryEntry[T]
		entry, exists = s.items[uid]
		result = entry.value
	})

	return result, exists, nil
}

func (s *InMemoryStore[T]) Delete(c context.Context, uid string) error {
	s.locked(c, func() {
		delete(s.items, uid)
	})

	return nil
}

func (s *InMemoryStore[T]) List(c context.Context) ([]T, error) {
	var result []T
	s.locked(c, func() {
		s.evictExpired()

		result = make([]T, 0, len(s.items))
		for _, entry := range s.items {
			result = append(result, entry.value)
		}
	})

	return result, nil
}
