package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultLockout     = 15 * time.Minute
)

// CounterStore is the part of redis.Cmdable the limiter uses. *redis.Client
// satisfies it.
type CounterStore interface {
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// LoginLimiter counts failed logins per email and locks the account out once
// maxAttempts is reached.
// Key format: login_attempts:<email>, login_lockout:<email>
type LoginLimiter struct {
	client      CounterStore
	maxAttempts int64
	lockout     time.Duration
}

// NewLoginLimiter wraps the given client. Zero values fall back to 5 attempts
// and a 15 minute lockout.
func NewLoginLimiter(client CounterStore, maxAttempts int, lockout time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if lockout <= 0 {
		lockout = defaultLockout
	}
	return &LoginLimiter{client: client, maxAttempts: int64(maxAttempts), lockout: lockout}
}

// Locked reports whether the email is currently locked out.
func (l *LoginLimiter) Locked(ctx context.Context, email string) (bool, error) {
	n, err := l.client.Exists(ctx, lockoutKey(email)).Result()
	if err != nil {
		return false, fmt.Errorf("lockout check: %w", err)
	}
	return n > 0, nil
}

// RecordFailure increments the failure counter. The counter window equals the
// lockout duration.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) error {
	key := attemptsKey(email)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	if err := l.client.Expire(ctx, key, l.lockout).Err(); err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}

	if count < l.maxAttempts {
		return nil
	}
	if err := l.client.Set(ctx, lockoutKey(email), "1", l.lockout).Err(); err != nil {
		return fmt.Errorf("set lockout: %w", err)
	}
	return nil
}

// Reset clears the counter and any lockout after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	return l.client.Del(ctx, attemptsKey(email), lockoutKey(email)).Err()
}

func attemptsKey(email string) string { return "login_attempts:" + email }
func lockoutKey(email string) string  { return "login_lockout:" + email }
