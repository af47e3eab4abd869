package sessions

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList remembers signed session token ids that were logged out
// before their expiry.
type RevocationList interface {
	Revoke(ctx context.Context, id string, ttl time.Duration) error
	IsRevoked(ctx context.Context, id string) (bool, error)
}

// RedisRevocationList stores revoked ids under "<prefix><id>" with a TTL equal
// to the remaining token lifetime, so entries disappear once the token would
// have expired anyway.
type RedisRevocationList struct {
	client *redis.Client
	prefix string
}

// NewRedisRevocationList creates a Redis-backed revocation list. Prefix may be empty.
func NewRedisRevocationList(client *redis.Client, prefix string) *RedisRevocationList {
	if prefix == "" {
		prefix = "revoked:session:"
	}
	return &RedisRevocationList{client: client, prefix: prefix}
}

func (r *RedisRevocationList) key(id string) string {
	return r.prefix + id
}

func (r *RedisRevocationList) Revoke(ctx context.Context, id string, ttl time.Duration) error {
	if ttl <= 0 {
		// already expired, nothing to remember
		return nil
	}
	return r.client.Set(ctx, r.key(id), "1", ttl).Err()
}

func (r *RedisRevocationList) IsRevoked(ctx context.Context, id string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(id)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
