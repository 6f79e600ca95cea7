package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartRejectsBadSchedule(t *testing.T) {
	_, err := Start(Job{Name: "bad", Schedule: "every tuesday", Run: func(context.Context) error { return nil }})
	assert.Error(t, err)
}

func TestWrapAppliesTimeout(t *testing.T) {
	done := make(chan time.Time, 1)
	wrap(Job{
		Name:    "deadline",
		Timeout: time.Second,
		Run: func(ctx context.Context) error {
			dl, ok := ctx.Deadline()
			require.True(t, ok)
			done <- dl
			return errors.New("logged, not propagated")
		},
	})()

	dl := <-done
	assert.WithinDuration(t, time.Now().Add(time.Second), dl, time.Second)
}

func TestStartRunsJobs(t *testing.T) {
	ran := make(chan struct{}, 1)
	c, err := Start(Job{Name: "tick", Schedule: "@every 1s", Run: func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}})
	require.NoError(t, err)
	defer c.Stop()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
}
