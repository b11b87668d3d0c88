// Package queue runs delayed one-time tasks backed by a repository.
//
// An Enqueuer stores JSON payloads as tasks, optionally WithDelay or
// WithScheduledAt. A Worker polls WorkerRepository.ClaimTask and dispatches
// each claimed task to the Handler registered under its name. NewTaskHandler
// derives the name from the payload type, which matches the default task name
// chosen by Enqueue:
//
//	type welcomeEmail struct{ UserID string }
//
//	enq, _ := queue.NewEnqueuer(storage)
//	_, err := enq.Enqueue(ctx, welcomeEmail{UserID: id}, queue.WithDelay(24*time.Hour))
//
//	w, _ := queue.NewWorker(storage)
//	w.RegisterHandlers(queue.NewTaskHandler(func(ctx context.Context, p welcomeEmail) error {
//		return send(ctx, p.UserID)
//	}))
//	err = w.Run(ctx)
//
// MongoStorage keeps tasks in the queueTasks collection and claims them with
// findOneAndUpdate. MemoryStorage serves tests.
//
// Failed tasks are retried with a linear backoff until MaxRetries is
// exhausted. Tasks without a registered handler fail without retry.
package queue
