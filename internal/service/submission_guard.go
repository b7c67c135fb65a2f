package service

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const submissionLockPrefix = "submission:lock:"

// releaseLock deletes the lock only while it still carries the caller's token.
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisSubmissionGuard holds a short-lived redis lock per respondent while one
// of their submissions is being written.
type RedisSubmissionGuard struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSubmissionGuard(client *redis.Client, ttl time.Duration) *RedisSubmissionGuard {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisSubmissionGuard{Client: client, TTL: ttl}
}

func submissionLockKey(respondentID string) string {
	return submissionLockPrefix + respondentID
}

// Acquire returns ok=false while another submission of the respondent holds the
// lock. The returned token must be passed to Release.
func (g *RedisSubmissionGuard) Acquire(ctx context.Context, respondentID string) (string, bool, error) {
	token := uuid.New().String()
	ok, err := g.Client.SetNX(ctx, submissionLockKey(respondentID), token, g.TTL).Result()
	if err != nil || !ok {
		return "", ok, err
	}
	return token, true, nil
}

// Release is a no-op when the lock expired and was taken by another submission.
func (g *RedisSubmissionGuard) Release(ctx context.Context, respondentID, token string) error {
	return releaseLock.Run(ctx, g.Client, []string{submissionLockKey(respondentID)}, token).Err()
}
