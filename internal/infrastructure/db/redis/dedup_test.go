package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestGuard(t *testing.T) (*ScheduleGuard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewScheduleGuard(client), mr
}

func TestScheduleGuardMarkAndCheck(t *testing.T) {
	guard, mr := newTestGuard(t)
	ctx := context.Background()

	scheduled, err := guard.IsScheduled(ctx, 42)
	if err != nil {
		t.Fatalf("IsScheduled: %v", err)
	}
	if scheduled {
		t.Fatal("fresh question reported as scheduled")
	}

	if err := guard.MarkScheduled(ctx, 42); err != nil {
		t.Fatalf("MarkScheduled: %v", err)
	}

	scheduled, err = guard.IsScheduled(ctx, 42)
	if err != nil {
		t.Fatalf("IsScheduled after mark: %v", err)
	}
	if !scheduled {
		t.Error("marked question not reported as scheduled")
	}

	// Each question gets its own key.
	scheduled, err = guard.IsScheduled(ctx, 43)
	if err != nil {
		t.Fatalf("IsScheduled other: %v", err)
	}
	if scheduled {
		t.Error("unrelated question reported as scheduled")
	}

	if !mr.Exists("ai:scheduled:42") {
		t.Error("expected key ai:scheduled:42")
	}
}

func TestScheduleGuardExpires(t *testing.T) {
	guard, mr := newTestGuard(t)
	ctx := context.Background()

	if err := guard.MarkScheduled(ctx, 7); err != nil {
		t.Fatalf("MarkScheduled: %v", err)
	}
	if ttl := mr.TTL("ai:scheduled:7"); ttl != guardTTL {
		t.Errorf("ttl = %v, want %v", ttl, guardTTL)
	}

	mr.FastForward(guardTTL + time.Second)

	scheduled, err := guard.IsScheduled(ctx, 7)
	if err != nil {
		t.Fatalf("IsScheduled: %v", err)
	}
	if scheduled {
		t.Error("guard did not expire")
	}
}
