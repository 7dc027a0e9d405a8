package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// guardTTL bounds how long a question is considered "scheduled". Comfortably
// above the maximum generation delay, so a crashed job eventually frees the
// question for another attempt.
const guardTTL = 10 * time.Minute

// ScheduleGuard provides AI-scheduling idempotency checks backed by Redis.
// Key format: ai:scheduled:<question_id>
type ScheduleGuard struct {
	client *redis.Client
}

// NewScheduleGuard creates a ScheduleGuard wrapping the given Redis client.
func NewScheduleGuard(client *redis.Client) *ScheduleGuard {
	return &ScheduleGuard{client: client}
}

// IsScheduled reports whether a generation job for this question is already
// pending.
func (g *ScheduleGuard) IsScheduled(ctx context.Context, questionID uint) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(questionID)).Result()
	if err != nil {
		return false, fmt.Errorf("schedule guard check: %w", err)
	}
	return n > 0, nil
}

// MarkScheduled records that a job has been enqueued (expires after guardTTL).
func (g *ScheduleGuard) MarkScheduled(ctx context.Context, questionID uint) error {
	return g.client.Set(ctx, g.key(questionID), "1", guardTTL).Err()
}

func (g *ScheduleGuard) key(questionID uint) string {
	return fmt.Sprintf("ai:scheduled:%d", questionID)
}
