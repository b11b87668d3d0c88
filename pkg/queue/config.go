package queue

import "time"

// Config holds the worker settings.
type Config struct {
	Queue              string        `env:"QUEUE_NAME" envDefault:"default"`
	PollInterval       time.Duration `env:"QUEUE_POLL_INTERVAL" envDefault:"5s"`
	LockTimeout        time.Duration `env:"QUEUE_LOCK_TIMEOUT" envDefault:"5m"`
	MaxConcurrentTasks int           `env:"QUEUE_MAX_CONCURRENT_TASKS" envDefault:"10"`
}

// WorkerOptions converts cfg to worker options.
func (cfg Config) WorkerOptions() []WorkerOption {
	return []WorkerOption{
		WithQueues(cfg.Queue),
		WithPullInterval(cfg.PollInterval),
		WithLockTimeout(cfg.LockTimeout),
		WithMaxConcurrentTasks(cfg.MaxConcurrentTasks),
	}
}
