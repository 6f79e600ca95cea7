// Package scheduler runs the periodic maintenance jobs: token blacklist
// purge and the evidence reaper.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const defaultJobTimeout = 4 * time.Minute

type Job struct {
	Name     string
	Schedule string
	Timeout  time.Duration
	Run      func(ctx context.Context) error
}

// Start registers every job on one cron and starts it. Overlapping runs
// of the same job are skipped. Stop the returned cron on shutdown.
func Start(jobs ...Job) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	for _, j := range jobs {
		if _, err := c.AddFunc(j.Schedule, wrap(j)); err != nil {
			return nil, fmt.Errorf("add cron %s (%q): %w", j.Name, j.Schedule, err)
		}
		log.Printf("[SCHEDULER] %s scheduled %q", j.Name, j.Schedule)
	}
	c.Start()
	return c, nil
}

func wrap(j Job) func() {
	timeout := j.Timeout
	if timeout <= 0 {
		timeout = defaultJobTimeout
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		start := time.Now()
		if err := j.Run(ctx); err != nil {
			log.Printf("[SCHEDULER] %s failed after %s: %v", j.Name, time.Since(start), err)
			return
		}
		log.Printf("[SCHEDULER] %s done in %s", j.Name, time.Since(start))
	}
}
