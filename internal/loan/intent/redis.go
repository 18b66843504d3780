package intent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "loandesk:intent:"

// RedisStore implements Store on redis. GETDEL gives the one-shot consume
// semantics and key TTLs give expiry for free.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, p PendingPayment, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal pending payment: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+p.OrderID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("park pending payment: %w", err)
	}
	return nil
}

func (s *RedisStore) Consume(ctx context.Context, orderID string) (PendingPayment, error) {
	payload, err := s.client.GetDel(ctx, keyPrefix+orderID).Bytes()
	if errors.Is(err, redis.Nil) {
		return PendingPayment{}, ErrNotFound
	}
	if err != nil {
		return PendingPayment{}, fmt.Errorf("consume pending payment: %w", err)
	}

	var p PendingPayment
	if err := json.Unmarshal(payload, &p); err != nil {
		return PendingPayment{}, fmt.Errorf("unmarshal pending payment: %w", err)
	}
	return p, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
