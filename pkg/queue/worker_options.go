package queue

import (
	"context"
	"log/slog"
	"time"
)

// WorkerOption is a functional option for configuring a worker
type WorkerOption func(*workerOptions)

type workerOptions struct {
	queues             []string
	pullInterval       time.Duration
	lockTimeout        time.Duration
	maxConcurrentTasks int
	logger             *slog.Logger
	taskContext        func(context.Context) context.Context
}

// WithQueues sets which queues the worker pulls from. Empty names are ignored.
func WithQueues(queues ...string) WorkerOption {
	return func(o *workerOptions) {
		var named []string
		for _, q := range queues {
			if q != "" {
				named = append(named, q)
			}
		}
		if len(named) > 0 {
			o.queues = named
		}
	}
}

// WithPullInterval sets how often the worker checks for new tasks
func WithPullInterval(d time.Duration) WorkerOption {
	return func(o *workerOptions) {
		if d > 0 {
			o.pullInterval = d
		}
	}
}

// WithLockTimeout sets the lock duration for tasks
func WithLockTimeout(d time.Duration) WorkerOption {
	return func(o *workerOptions) {
		if d > 0 {
			o.lockTimeout = d
		}
	}
}

// WithMaxConcurrentTasks sets the maximum number of concurrent tasks
func WithMaxConcurrentTasks(n int) WorkerOption {
	return func(o *workerOptions) {
		if n > 0 {
			o.maxConcurrentTasks = n
		}
	}
}

// WithWorkerLogger sets the logger for the worker
func WithWorkerLogger(logger *slog.Logger) WorkerOption {
	return func(o *workerOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTaskContext decorates the context handed to every handler, e.g. to
// attach the deployment environment.
func WithTaskContext(decorate func(context.Context) context.Context) WorkerOption {
	return func(o *workerOptions) {
		if decorate != nil {
			o.taskContext = decorate
		}
	}
}
