package task

import (
	"context"

	"github.com/alitto/pond/v2"
)

// Handler receives the failure of a launched job, tagged with the job name.
// It is called from the failing job's goroutine, so it must be safe for
// concurrent use.
type Handler func(name string, err error)

// Job is a launched task whose caller does not get its error back.
type Job struct {
	name string
	task pond.Task
}

// Launch starts fn immediately. A failure goes to handler and marks the job
// failed; the handler returns before Join does.
func Launch(ctx context.Context, name string, fn func(ctx context.Context) error, handler Handler) *Job {
	return &Job{
		name: name,
		task: pool.SubmitErr(func() error {
			err := Try(ctx, fn)
			if err != nil && handler != nil {
				handler(name, err)
			}

			return err
		}),
	}
}

func (j *Job) Name() string {
	return j.name
}

// Join blocks until the job and its handler call have finished.
func (j *Job) Join() {
	//nolint:errcheck
	j.task.Wait()
}

// Failed reports whether the job finished with an error. It is false while
// the job is still running.
func (j *Job) Failed() bool {
	select {
	case <-j.task.Done():
		return j.task.Wait() != nil
	default:
		return false
	}
}

// JoinAll waits for every job regardless of outcome.
func JoinAll(jobs []*Job) {
	for _, job := range jobs {
		job.Join()
	}
}
