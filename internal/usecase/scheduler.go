package usecase

import (
	"context"
	"log/slog"
	"time"

	"NewsGuard/internal/ports"
)

// RetrainScheduler wires the cron-like driver with the training use case
// for periodic retraining.
type RetrainScheduler struct {
	driver  ports.Scheduler
	trainer *Trainer
	logger  *slog.Logger
}

// NewRetrainScheduler returns a helper to start/stop recurring retrains.
func NewRetrainScheduler(driver ports.Scheduler, trainer *Trainer, logger *slog.Logger) *RetrainScheduler {
	return &RetrainScheduler{driver: driver, trainer: trainer, logger: logger}
}

// Start registers the retraining job with the provided scheduler.
func (s *RetrainScheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.trainer == nil {
		return nil
	}

	job := func(trigger time.Time) {
		report, err := s.trainer.Run(ctx)
		if err != nil {
			if s.logger != nil {
				s.logger.Error("scheduled retrain failed", "trigger", trigger, "error", err)
			}
			return
		}
		if s.logger != nil {
			s.logger.Info("scheduled retrain done", "trigger", trigger, "accuracy", report.Accuracy)
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *RetrainScheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}
	return s.driver.Stop(ctx)
}
