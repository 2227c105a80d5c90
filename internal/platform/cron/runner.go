// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cron schedules periodic maintenance jobs on top of robfig/cron.

Jobs receive a context derived from the runner's base context with a per-run
timeout. A job that is still running when its next tick fires is skipped, and
a panicking job is recovered and logged without stopping the scheduler.
*/
package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a unit of scheduled work.
type Job func(context context.Context) error

// Runner owns the scheduler and the context handed to every job.
type Runner struct {
	scheduler *cron.Cron
	logger    *slog.Logger
	baseCtx   context.Context
	timeout   time.Duration
}

// New builds a Runner using standard 5-field cron specs.
func New(baseCtx context.Context, logger *slog.Logger, timeout time.Duration) *Runner {
	if baseCtx == nil {
		baseCtx = context.Background()
	}

	cronLogger := &cronLogger{logger: logger}
	return &Runner{
		scheduler: cron.New(cron.WithChain(
			cron.Recover(cronLogger),
			cron.SkipIfStillRunning(cronLogger),
		)),
		logger:  logger,
		baseCtx: baseCtx,
		timeout: timeout,
	}
}

// Add registers job under name. An empty spec disables the job.
func (runner *Runner) Add(name, spec string, job Job) error {
	if spec == "" {
		runner.logger.Info("cron_job_disabled", slog.String("job", name))
		return nil
	}

	_, err := runner.scheduler.AddFunc(spec, func() {
		runner.run(name, job)
	})
	if err != nil {
		return fmt.Errorf("cron: invalid schedule %q for %s: %w", spec, name, err)
	}

	runner.logger.Info("cron_job_registered", slog.String("job", name), slog.String("spec", spec))
	return nil
}

// run executes one tick of job with a bounded context and logs the outcome.
func (runner *Runner) run(name string, job Job) {
	ctx, cancel := context.WithTimeout(runner.baseCtx, runner.timeout)
	defer cancel()

	startTime := time.Now()
	err := job(ctx)
	latency := time.Since(startTime).Milliseconds()

	if err != nil {
		runner.logger.Error("cron_job_failed",
			slog.String("job", name),
			slog.Int64("latency_ms", latency),
			slog.Any("error", err),
		)
		return
	}

	runner.logger.Debug("cron_job_finished", slog.String("job", name), slog.Int64("latency_ms", latency))
}

// Start launches the scheduler in its own goroutine.
func (runner *Runner) Start() {
	runner.scheduler.Start()
	runner.logger.Info("cron_started", slog.Int("jobs", len(runner.scheduler.Entries())))
}

// Stop prevents new runs and waits for running jobs to return or ctx to expire.
func (runner *Runner) Stop(ctx context.Context) {
	done := runner.scheduler.Stop()
	select {
	case <-done.Done():
		runner.logger.Info("cron_stopped")
	case <-ctx.Done():
		runner.logger.Warn("cron_stop_timeout")
	}
}

// cronLogger adapts robfig/cron's logger interface to slog.
type cronLogger struct {
	logger *slog.Logger
}

func (adapter *cronLogger) Info(msg string, keysAndValues ...any) {
	adapter.logger.Debug("cron_"+msg, keysAndValues...)
}

func (adapter *cronLogger) Error(err error, msg string, keysAndValues ...any) {
	adapter.logger.Error("cron_"+msg, append(keysAndValues, slog.Any("error", err))...)
}
