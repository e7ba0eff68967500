package archive

import (
	"context"
	"log"
)

// JobDispatcher hands a created job off for asynchronous execution. The
// caller returns immediately; a consumer owns the run from there.
type JobDispatcher interface {
	PublishJob(ctx context.Context, jobID string) error
}

// LocalDispatcher runs jobs in-process on a goroutine. It keeps the same
// fire-and-forget contract as the queue-backed dispatcher and is the default
// when no broker is configured.
type LocalDispatcher struct {
	runner *Runner
}

func NewLocalDispatcher(runner *Runner) *LocalDispatcher {
	return &LocalDispatcher{runner: runner}
}

func (d *LocalDispatcher) PublishJob(ctx context.Context, jobID string) error {
	_ = ctx // the run must outlive the triggering request
	go func() {
		if err := d.runner.Run(context.Background(), jobID); err != nil {
			log.Printf("import job=%s run error: %v", jobID, err)
		}
	}()
	return nil
}
