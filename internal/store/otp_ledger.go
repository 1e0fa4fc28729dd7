package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPKeyPrefix namespaces reset codes in Redis.
const OTPKeyPrefix = "reset:otp:"

// OTPEntry is one live reset code for an email. The expiry is stored
// explicitly in addition to the Redis TTL so verification can report
// "expired" distinctly from "never issued".
type OTPEntry struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// OTPLedger is keyed ephemeral storage with TTL. At most one live entry
// per email; Put overwrites any prior entry.
type OTPLedger interface {
	Put(ctx context.Context, email string, entry OTPEntry, ttl time.Duration) error
	Get(ctx context.Context, email string) (OTPEntry, bool, error)
	Delete(ctx context.Context, email string) error
}

type redisOTPLedger struct {
	client *redis.Client
}

func NewRedisOTPLedger(client *redis.Client) OTPLedger {
	return &redisOTPLedger{client: client}
}

func (l *redisOTPLedger) Put(ctx context.Context, email string, entry OTPEntry, ttl time.Duration) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return l.client.Set(ctx, OTPKeyPrefix+email, data, ttl).Err()
}

func (l *redisOTPLedger) Get(ctx context.Context, email string) (OTPEntry, bool, error) {
	val, err := l.client.Get(ctx, OTPKeyPrefix+email).Result()
	if err == redis.Nil {
		return OTPEntry{}, false, nil
	}
	if err != nil {
		return OTPEntry{}, false, err
	}

	var entry OTPEntry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return OTPEntry{}, false, err
	}
	return entry, true, nil
}

func (l *redisOTPLedger) Delete(ctx context.Context, email string) error {
	return l.client.Del(ctx, OTPKeyPrefix+email).Err()
}
