package otp

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "otp:"

// RedisStore keeps pending codes in Redis so multiple API instances share
// one OTP state. Each phone maps to a hash {code, expires_at, attempts};
// the key TTL is set past the logical expiry so Verify can still answer
// "expired" instead of "not found" shortly after the deadline.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    TTL,
		now:    time.Now,
	}
}

// Save stores a code for the phone, replacing any pending one.
func (s *RedisStore) Save(ctx context.Context, phone, code string) error {
	key := redisKeyPrefix + phone
	expiresAt := s.now().Add(s.ttl)

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key,
		"code", code,
		"expires_at", expiresAt.Unix(),
		"attempts", 0,
	)
	pipe.Expire(ctx, key, s.ttl*2)
	_, err := pipe.Exec(ctx)
	return err
}

// Verify checks the submitted code against the pending entry.
func (s *RedisStore) Verify(ctx context.Context, phone, code string) error {
	key := redisKeyPrefix + phone

	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return ErrNotFound
	}

	expiresAt, err := strconv.ParseInt(fields["expires_at"], 10, 64)
	if err != nil || s.now().Unix() > expiresAt {
		s.client.Del(ctx, key)
		return ErrExpired
	}

	attempts, _ := strconv.Atoi(fields["attempts"])
	if attempts >= MaxAttempts {
		s.client.Del(ctx, key)
		return ErrExhausted
	}

	if fields["code"] != code {
		s.client.HIncrBy(ctx, key, "attempts", 1)
		return ErrInvalid
	}

	return s.client.Del(ctx, key).Err()
}
