package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "teampulse:session:"

// RedisCmdable is the part of the go-redis API the persister uses.
type RedisCmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisPersister stores the snapshot in redis. Only the snapshot lives
// there: the auth cookies stay in the local jar, so the session is usable
// only where those cookies are.
type RedisPersister struct {
	client RedisCmdable
	key    string
	ttl    time.Duration
}

// NewRedisPersister stores under teampulse:session:auth. A zero ttl keeps the key forever.
func NewRedisPersister(client RedisCmdable, ttl time.Duration) *RedisPersister {
	return &RedisPersister{client: client, key: redisKeyPrefix + Key, ttl: ttl}
}

func (p *RedisPersister) Load(ctx context.Context) (*Snapshot, error) {
	data, err := p.client.Get(ctx, p.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	return decodeSnapshot(data)
}

func (p *RedisPersister) Save(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := p.client.Set(ctx, p.key, data, p.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (p *RedisPersister) Clear(ctx context.Context) error {
	if err := p.client.Del(ctx, p.key).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}
