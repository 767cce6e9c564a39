package scheduler

import (
	"context"
	"testing"
	"time"
)

func TestCronSchedulerInvalidExpression(t *testing.T) {
	t.Parallel()

	s := NewCronScheduler("not a cron spec", time.UTC)
	if err := s.Start(context.Background(), func(time.Time) {}); err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}

func TestCronSchedulerEmptySpecDisabled(t *testing.T) {
	t.Parallel()

	s := NewCronScheduler("", time.UTC)
	if err := s.Start(context.Background(), func(time.Time) {}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestCronSchedulerStartStop(t *testing.T) {
	t.Parallel()

	s := NewCronScheduler("@every 1h", time.UTC)
	ctx := context.Background()

	if err := s.Start(ctx, func(time.Time) {}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	// Second start while running is a no-op.
	if err := s.Start(ctx, func(time.Time) {}); err != nil {
		t.Fatalf("restart: %v", err)
	}

	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	// Stopping an idle scheduler is also a no-op.
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
}
