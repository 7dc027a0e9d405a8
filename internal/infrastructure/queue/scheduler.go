package queue

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/stackit/qna-api/internal/api/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64

	// maxTrackedJobs bounds the status map. Once exceeded, finished
	// entries are dropped; pending and running jobs are always kept.
	maxTrackedJobs = 1024
)

// JobStatus is the observable lifecycle state of a scheduled generation job.
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusSucceeded JobStatus = "succeeded"
	StatusFailed    JobStatus = "failed"
)

// JobFunc is the deferred job body. Errors are logged and counted; they never
// propagate to whoever scheduled the job.
type JobFunc func(ctx context.Context, questionID uint) error

// Scheduler defers AI generation jobs and routes fired jobs to a fixed set of
// workers, sharded by question ID so two jobs for the same question never run
// concurrently. Scheduled jobs cannot be revoked; the job body tolerates its
// question having been deleted in the meantime.
type Scheduler struct {
	workers []chan uint
	run     JobFunc
	log     zerolog.Logger

	mu     sync.Mutex
	status map[uint]JobStatus
	done   <-chan struct{}

	started sync.Once
}

// NewScheduler creates a Scheduler with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewScheduler(numWorkers int, run JobFunc, log zerolog.Logger) *Scheduler {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	s := &Scheduler{
		workers: make([]chan uint, numWorkers),
		run:     run,
		log:     log,
		status:  map[uint]JobStatus{},
	}
	for i := range s.workers {
		s.workers[i] = make(chan uint, channelBuffer)
	}
	return s
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.started.Do(func() {
		s.mu.Lock()
		s.done = ctx.Done()
		s.mu.Unlock()
		for i, ch := range s.workers {
			go s.runWorker(ctx, i, ch)
		}
	})
}

// Schedule fires the job for questionID after delay. It returns immediately;
// the timer hands the job to the worker owning the question's shard. Timers
// that fire after shutdown drop the job instead of enqueueing it.
func (s *Scheduler) Schedule(questionID uint, delay time.Duration) {
	s.setStatus(questionID, StatusPending)
	time.AfterFunc(delay, func() {
		s.mu.Lock()
		done := s.done
		s.mu.Unlock()

		// A nil done channel blocks in select, so jobs scheduled before
		// Start still land in the buffered shard channel.
		select {
		case <-done:
			return
		default:
		}

		i := s.shardIndex(questionID)
		select {
		case s.workers[i] <- questionID:
			metrics.AIQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(s.workers[i])))
		case <-done:
		}
	})
}

// Status reports the last observed state of the question's job, if any.
func (s *Scheduler) Status(questionID uint) (JobStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.status[questionID]
	return st, ok
}

func (s *Scheduler) shardIndex(questionID uint) int {
	return int(questionID) % len(s.workers)
}

func (s *Scheduler) setStatus(questionID uint, st JobStatus) {
	s.mu.Lock()
	s.status[questionID] = st
	if len(s.status) > maxTrackedJobs {
		for id, old := range s.status {
			if old == StatusSucceeded || old == StatusFailed {
				delete(s.status, id)
			}
		}
	}
	s.mu.Unlock()
}

func (s *Scheduler) runWorker(ctx context.Context, id int, ch <-chan uint) {
	for {
		select {
		case <-ctx.Done():
			return
		case questionID, ok := <-ch:
			if !ok {
				return
			}
			metrics.AIQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			s.execute(ctx, id, questionID)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, workerID int, questionID uint) {
	s.setStatus(questionID, StatusRunning)
	start := time.Now()

	if err := s.run(ctx, questionID); err != nil {
		s.setStatus(questionID, StatusFailed)
		metrics.AIJobsTotal.WithLabelValues("failed").Inc()
		s.log.Error().Err(err).
			Uint("question_id", questionID).
			Int("worker_id", workerID).
			Msg("ai job failed")
		return
	}

	s.setStatus(questionID, StatusSucceeded)
	metrics.AIJobsTotal.WithLabelValues("succeeded").Inc()
	metrics.AIJobDuration.Observe(time.Since(start).Seconds())
}
