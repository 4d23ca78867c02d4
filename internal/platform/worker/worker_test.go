package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestLoopStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls atomic.Int64

	done := make(chan error, 1)

	go func() {
		done <- Loop(ctx, Config{
			Name:         "test",
			PollInterval: time.Millisecond,
			Process: func(ctx context.Context) error {
				if calls.Add(1) >= 3 {
					cancel()
				}

				return nil
			},
		})
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop after cancel")
	}

	if calls.Load() < 3 {
		t.Fatalf("expected at least 3 process calls, got %d", calls.Load())
	}
}

func TestLoopOnErrorStops(t *testing.T) {
	errBoom := errors.New("boom")

	err := Loop(context.Background(), Config{
		Name:         "test",
		PollInterval: time.Millisecond,
		Process: func(ctx context.Context) error {
			return errBoom
		},
		OnError: func(err error) bool {
			return false
		},
	})

	if !errors.Is(err, errBoom) {
		t.Fatalf("expected process error to propagate, got %v", err)
	}
}

func TestLoopRunsPeriodicTasks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var taskRuns atomic.Int64

	done := make(chan error, 1)

	go func() {
		done <- Loop(ctx, Config{
			Name:         "test",
			PollInterval: time.Millisecond,
			PeriodicTasks: []PeriodicTask{
				{
					Name:     "tick",
					Interval: time.Millisecond,
					Run: func(ctx context.Context) {
						if taskRuns.Add(1) >= 2 {
							cancel()
						}
					},
				},
			},
		})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop")
	}

	if taskRuns.Load() < 2 {
		t.Fatalf("expected at least 2 task runs, got %d", taskRuns.Load())
	}
}

func TestWaitReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Wait(ctx, time.Hour); err == nil {
		t.Fatal("expected error from canceled wait")
	}
}

func TestWaitZeroDuration(t *testing.T) {
	if err := Wait(context.Background(), 0); err != nil {
		t.Fatalf("zero duration wait should return immediately, got %v", err)
	}
}
