package tasks

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

// Scheduler drains a task queue with a fixed number of workers. A task that
// returns an error stops the whole pool; tasks report recoverable failures
// through their own bookkeeping and return nil.
type Scheduler struct {
	workerCount int
	ctx         context.Context
	group       *errgroup.Group
	taskQueue   chan TaskInterface
}

func NewScheduler(workerCount, queueSize int) *Scheduler {
	if workerCount < 1 {
		workerCount = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	return &Scheduler{
		workerCount: workerCount,
		taskQueue:   make(chan TaskInterface, queueSize),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	s.group, s.ctx = errgroup.WithContext(ctx)

	for i := 0; i < s.workerCount; i++ {
		id := i
		s.group.Go(func() error {
			return s.worker(id)
		})
	}
}

// Stop closes the queue, lets the workers finish what was enqueued and
// returns the first task error, if any.
func (s *Scheduler) Stop() error {
	close(s.taskQueue)
	return s.group.Wait()
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	}
}

func (s *Scheduler) worker(id int) error {
	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return nil
			}
			if err := s.executeTask(id, task); err != nil {
				return err
			}

		case <-s.ctx.Done():
			return s.ctx.Err()
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) error {
	task.Start()

	slog.Debug("Worker picked up task", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "feed", task.GetFeedName())

	err := task.Execute(s.ctx)
	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "feed", task.GetFeedName(), "duration", task.GetDuration(), "error", err)
		return err
	}

	return nil
}
