package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Job is one independently failing unit of the batch.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Summary is the outcome of one batch run.
type Summary struct {
	Succeeded []string
	Failed    []string
}

// Runner executes jobs sequentially with a fixed delay between them, so
// the provider never sees bursts. A failing job is logged and skipped;
// it never stops the batch.
type Runner struct {
	Delay time.Duration
	log   *logrus.Entry
}

// NewRunner builds a runner with the configured inter-job delay.
func NewRunner(delay time.Duration, log *logrus.Logger) *Runner {
	return &Runner{Delay: delay, log: log.WithField("component", "runner")}
}

// Run executes every job in order. Context cancellation stops the batch
// between jobs.
func (r *Runner) Run(ctx context.Context, jobs []Job) Summary {
	var summary Summary
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			r.log.WithError(err).Warn("batch cancelled")
			break
		}
		if i > 0 && r.Delay > 0 {
			time.Sleep(r.Delay)
		}

		start := time.Now()
		err := r.runJob(ctx, job)
		entry := r.log.WithFields(logrus.Fields{
			"job":      job.Name,
			"duration": time.Since(start).Round(time.Millisecond).String(),
		})
		if err != nil {
			entry.WithError(err).Warn("report job failed, continuing")
			summary.Failed = append(summary.Failed, job.Name)
			continue
		}
		entry.Info("report job finished")
		summary.Succeeded = append(summary.Succeeded, job.Name)
	}
	return summary
}

// runJob isolates panics alongside errors so one bad unit cannot take
// down the batch.
func (r *Runner) runJob(ctx context.Context, job Job) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("job panicked: %v", rec)
		}
	}()
	return job.Run(ctx)
}
