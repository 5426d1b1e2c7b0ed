package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduler_RunsImmediatelyAndPeriodically(t *testing.T) {
	var runs int32

	s := New()
	s.Add("counter", 20*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	})
	s.Start()

	time.Sleep(70 * time.Millisecond)
	s.Stop()

	got := atomic.LoadInt32(&runs)
	if got < 2 {
		t.Errorf("expected at least 2 runs (immediate + ticks), got %d", got)
	}
}

func TestScheduler_JobNeverOverlapsItself(t *testing.T) {
	var active, maxActive int32

	s := New()
	s.Add("slow", 5*time.Millisecond, func(ctx context.Context) error {
		current := atomic.AddInt32(&active, 1)
		if current > atomic.LoadInt32(&maxActive) {
			atomic.StoreInt32(&maxActive, current)
		}
		time.Sleep(15 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		return nil
	})
	s.Start()

	time.Sleep(80 * time.Millisecond)
	s.Stop()

	if atomic.LoadInt32(&maxActive) > 1 {
		t.Errorf("job overlapped itself: %d concurrent runs", maxActive)
	}
}

func TestScheduler_FailedRunDoesNotStopJob(t *testing.T) {
	var runs int32

	s := New()
	s.Add("flaky", 15*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return errors.New("transient failure")
	})
	s.Start()

	time.Sleep(50 * time.Millisecond)
	s.Stop()

	if atomic.LoadInt32(&runs) < 2 {
		t.Error("job should keep running after a failed tick")
	}
}

func TestScheduler_StopCancelsContext(t *testing.T) {
	cancelled := make(chan struct{})

	s := New()
	s.Add("blocker", time.Hour, func(ctx context.Context) error {
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	})
	s.Start()
	s.Stop()

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("Stop did not cancel the job context")
	}
}
