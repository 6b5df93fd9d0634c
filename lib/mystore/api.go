package mystore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MarcGrol/shopauth/lib/mytime"
)

type ctxTransactionKey struct{}

//go:generate mockgen -source=api.go -package mystore -destination store_mock.go Store
type Store[T any] interface {
	RunInTransaction(c context.Context, f func(c context.Context) error) error
	Put(c context.Context, uid string, value T) error
	Get(c context.Context, uid string) (T, bool, error)
	Delete(c context.Context, uid string) error
	List(c context.Context) ([]T, error)
}

type Options struct {
	// Selects datastore when set
	GCloudProject string
	// Selects redis when set (and no gcloud project)
	RedisURL string
	// Namespace for redis keys
	KeyPrefix string
	// Expiry of entries on redis and in memory, zero means none. Datastore entries
	// have to be purged by the owner.
	TTL time.Duration
}

// New picks the backend from the options: datastore, redis, or in-memory.
func New[T any](c context.Context, opts Options) (Store[T], func(), error) {
	if opts.GCloudProject != "" {
		return newGcloudStore[T](c, opts.GCloudProject)
	}

	if opts.RedisURL != "" {
		return newRedisStoreFromURL[T](c, opts)
	}

	return NewInMemoryStoreWithTTL[T](opts.TTL, mytime.RealNower{}), func() {}, nil
}

func kindOf[T any]() string {
	val := new(T)
	kind := fmt.Sprintf("%T", *val)
	if idx := strings.LastIndex(kind, "."); idx >= 0 {
		kind = kind[idx+1:]
	}
	return kind
}
