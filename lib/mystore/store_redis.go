package mystore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/redis/go-redis/v9"
)

const (
	connectMaxTries = 5
	listBatchSize   = 100
)

type redisStore[T any] struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

func newRedisStoreFromURL[T any](c context.Context, opts Options) (*redisStore[T], func(), error) {
	redisOpts, err := redis.ParseURL(opts.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing redis url: %w", err)
	}
	client := redis.NewClient(redisOpts)

	// redis may still be starting next to us
	_, err = backoff.Retry(c, func() (struct{}, error) {
		return struct{}{}, client.Ping(c).Err()
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(connectMaxTries),
	)
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("error connecting to redis: %w", err)
	}

	return NewRedisStoreWithClient[T](client, opts.KeyPrefix, opts.TTL), func() {
		_ = client.Close()
	}, nil
}

func NewRedisStoreWithClient[T any](client redis.UniversalClient, keyPrefix string, ttl time.Duration) *redisStore[T] {
	return &redisStore[T]{
		client:    client,
		keyPrefix: keyPrefix + kindOf[T]() + ":",
		ttl:       ttl,
	}
}

func (s *redisStore[T]) key(uid string) string {
	return s.keyPrefix + uid
}

// RunInTransaction gives no isolation on redis; every single operation is atomic on its own.
func (s *redisStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	return f(context.WithValue(c, ctxTransactionKey{}, true))
}

func (s *redisStore[T]) Put(c context.Context, uid string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error marshalling entity with uid %s: %w", uid, err)
	}

	err = s.client.Set(c, s.key(uid), data, s.ttl).Err()
	if err != nil {
		return fmt.Errorf("error storing entity with uid %s: %w", uid, err)
	}

	return nil
}

func (s *redisStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	var value T

	data, err := s.client.Get(c, s.key(uid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return value, false, nil
		}
		return value, false, fmt.Errorf("error fetching entity with uid %s: %w", uid, err)
	}

	err = json.Unmarshal(data, &value)
	if err != nil {
		return value, false, fmt.Errorf("error unmarshalling entity with uid %s: %w", uid, err)
	}

	return value, true, nil
}

func (s *redisStore[T]) Delete(c context.Context, uid string) error {
	err := s.client.Del(c, s.key(uid)).Err()
	if err != nil {
		return fmt.Errorf("error deleting entity with uid %s: %w", uid, err)
	}
	return nil
}

func (s *redisStore[T]) List(c context.Context) ([]T, error) {
	result := []T{}

	iter := s.client.Scan(c, 0, s.keyPrefix+"*", listBatchSize).Iterator()
	for iter.Next(c) {
		data, err := s.client.Get(c, iter.Val()).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// expired between scan and get
				continue
			}
			return nil, fmt.Errorf("error fetching entity %s: %w", iter.Val(), err)
		}

		var value T
		err = json.Unmarshal(data, &value)
		if err != nil {
			return nil, fmt.Errorf("error unmarshalling entity %s: %w", iter.Val(), err)
		}
		result = append(result, value)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("error scanning entities: %w", err)
	}

	return result, nil
}
