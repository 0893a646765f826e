package dispatch

import (
	"context"
	"log/slog"
	"time"
)

// Job is a named fire-and-forget unit of work.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Queue runs jobs on a single worker goroutine so a slow or failing side
// effect never stalls the request path. Enqueue never blocks; when the buffer
// is full the job is dropped and logged. Jobs run with their own timeout
// context since the originating request may already have returned.
type Queue struct {
	log     *slog.Logger
	jobs    chan Job
	timeout time.Duration
}

func NewQueue(log *slog.Logger, size int, timeout time.Duration) *Queue {
	return &Queue{
		log:     log,
		jobs:    make(chan Job, size),
		timeout: timeout,
	}
}

// Run processes jobs until ctx is cancelled.
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			q.log.Info("dispatch queue stopping")
			return nil
		case job := <-q.jobs:
			jobCtx, cancel := context.WithTimeout(context.Background(), q.timeout)
			if err := job.Run(jobCtx); err != nil {
				q.log.Error("dispatch job failed", "job", job.Name, "err", err)
			}
			cancel()
		}
	}
}

// Enqueue hands off a job without blocking the caller.
func (q *Queue) Enqueue(job Job) {
	select {
	case q.jobs <- job:
	default:
		q.log.Error("dispatch queue full, dropping job", "job", job.Name)
	}
}
