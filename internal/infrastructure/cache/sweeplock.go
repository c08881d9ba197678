package cache

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sweepLockKey = "pulsefit:expiry_sweep:lock"
	// Generous upper bound on a single sweep run. The lock expires on its own
	// if the holder crashes before Unlock.
	sweepLockTTL = 30 * time.Minute
)

// unlockScript deletes the lock only when the stored token matches, so a
// process cannot release a lock that expired and was re-acquired elsewhere.
var unlockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisSweepLock serializes the expiry sweep across instances with SET NX.
type RedisSweepLock struct {
	client *redis.Client

	mu    sync.Mutex
	token string
}

func NewRedisSweepLock(client *redis.Client) *RedisSweepLock {
	return &RedisSweepLock{client: client}
}

func (l *RedisSweepLock) TryLock(ctx context.Context) (bool, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return false, fmt.Errorf("failed to generate lock token: %w", err)
	}
	token := hex.EncodeToString(bytes)

	ok, err := l.client.SetNX(ctx, sweepLockKey, token, sweepLockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire sweep lock: %w", err)
	}
	if !ok {
		return false, nil
	}

	l.mu.Lock()
	l.token = token
	l.mu.Unlock()
	return true, nil
}

func (l *RedisSweepLock) Unlock(ctx context.Context) error {
	l.mu.Lock()
	token := l.token
	l.token = ""
	l.mu.Unlock()

	if token == "" {
		return nil
	}

	if err := unlockScript.Run(ctx, l.client, []string{sweepLockKey}, token).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("failed to release sweep lock: %w", err)
	}
	return nil
}
