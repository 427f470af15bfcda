package tasks

import "context"

// TaskSchedulerInterface runs queued tasks on a fixed pool of workers.
// Example usage:
//
//	scheduler := NewScheduler(workers, queueSize)
//	scheduler.Start(ctx)
//	scheduler.EnqueueTask(NewArchiveFeedTask(...))
//	err := scheduler.Stop()
type TaskSchedulerInterface interface {
	Start(ctx context.Context)
	Stop() error
	EnqueueTask(task TaskInterface) error
}
