package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

var discardLogger = zerolog.Nop()

// waitForStatus polls until the job reaches one of the terminal states or the
// deadline passes. The terminal status is written after the job body returns,
// so observing the body finish is not enough on its own.
func waitForStatus(t *testing.T, s *Scheduler, questionID uint, want JobStatus) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if st, ok := s.Status(questionID); ok && st == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	st, ok := s.Status(questionID)
	t.Fatalf("status = %v (known=%v), want %v", st, ok, want)
}

func TestSchedulerRunsJobAfterDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu   sync.Mutex
		runs []uint
	)
	s := NewScheduler(2, func(ctx context.Context, questionID uint) error {
		mu.Lock()
		runs = append(runs, questionID)
		mu.Unlock()
		return nil
	}, discardLogger)
	s.Start(ctx)

	s.Schedule(11, time.Millisecond)
	waitForStatus(t, s, 11, StatusSucceeded)

	mu.Lock()
	defer mu.Unlock()
	if len(runs) != 1 || runs[0] != 11 {
		t.Errorf("runs = %v, want [11]", runs)
	}
}

func TestSchedulerStatusPendingBeforeFire(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewScheduler(1, func(ctx context.Context, questionID uint) error {
		return nil
	}, discardLogger)
	s.Start(ctx)

	s.Schedule(5, time.Hour)

	st, ok := s.Status(5)
	if !ok || st != StatusPending {
		t.Errorf("status = %v (known=%v), want pending", st, ok)
	}

	if _, ok := s.Status(999); ok {
		t.Error("unknown question reported a status")
	}
}

func TestSchedulerFailedJob(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewScheduler(1, func(ctx context.Context, questionID uint) error {
		return errors.New("model unavailable")
	}, discardLogger)
	s.Start(ctx)

	s.Schedule(3, time.Millisecond)
	waitForStatus(t, s, 3, StatusFailed)
}

func TestSchedulerManyJobsAcrossShards(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu   sync.Mutex
		seen = map[uint]bool{}
	)
	s := NewScheduler(3, func(ctx context.Context, questionID uint) error {
		mu.Lock()
		seen[questionID] = true
		mu.Unlock()
		return nil
	}, discardLogger)
	s.Start(ctx)

	for id := uint(1); id <= 9; id++ {
		s.Schedule(id, time.Millisecond)
	}
	for id := uint(1); id <= 9; id++ {
		waitForStatus(t, s, id, StatusSucceeded)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 9 {
		t.Errorf("ran %d distinct jobs, want 9", len(seen))
	}
}

func TestSchedulerDefaultsWorkerCount(t *testing.T) {
	s := NewScheduler(0, func(ctx context.Context, questionID uint) error {
		return nil
	}, discardLogger)
	if len(s.workers) != defaultWorkers {
		t.Errorf("workers = %d, want %d", len(s.workers), defaultWorkers)
	}
}

func TestSchedulerDropsFiredTimerOnFullShardAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewScheduler(1, func(ctx context.Context, questionID uint) error {
		return nil
	}, discardLogger)
	s.Start(ctx)
	time.Sleep(10 * time.Millisecond)

	// With the worker gone, a full shard channel must not wedge the timer
	// goroutine on its send.
	for i := 0; i < channelBuffer; i++ {
		s.workers[0] <- uint(i)
	}
	s.Schedule(7, time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	if got := len(s.workers[0]); got != channelBuffer {
		t.Errorf("shard length = %d, want %d", got, channelBuffer)
	}
}

func TestSchedulerEvictsFinishedStatuses(t *testing.T) {
	s := NewScheduler(1, func(ctx context.Context, questionID uint) error {
		return nil
	}, discardLogger)

	for id := uint(1); id <= maxTrackedJobs; id++ {
		s.setStatus(id, StatusSucceeded)
	}
	s.Schedule(maxTrackedJobs+1, time.Hour)

	if _, ok := s.Status(1); ok {
		t.Error("finished statuses must be evicted once the map is full")
	}
	if st, ok := s.Status(maxTrackedJobs + 1); !ok || st != StatusPending {
		t.Errorf("pending job must survive eviction, got %v (known=%v)", st, ok)
	}
}

func TestSchedulerKeepsLiveStatusesOnEviction(t *testing.T) {
	s := NewScheduler(1, func(ctx context.Context, questionID uint) error {
		return nil
	}, discardLogger)

	s.setStatus(1, StatusRunning)
	for id := uint(2); id <= maxTrackedJobs+1; id++ {
		s.setStatus(id, StatusFailed)
	}

	if st, ok := s.Status(1); !ok || st != StatusRunning {
		t.Errorf("running job must survive eviction, got %v (known=%v)", st, ok)
	}
	if _, ok := s.Status(2); ok {
		t.Error("failed statuses must be evicted once the map is full")
	}
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	ran := make(chan struct{}, 1)
	s := NewScheduler(1, func(ctx context.Context, questionID uint) error {
		ran <- struct{}{}
		return nil
	}, discardLogger)
	s.Start(ctx)
	cancel()

	// Timers that fire after shutdown drop the job rather than enqueue it.
	s.Schedule(4, 10*time.Millisecond)

	select {
	case <-ran:
		t.Error("job ran after scheduler shutdown")
	case <-time.After(100 * time.Millisecond):
	}
}
