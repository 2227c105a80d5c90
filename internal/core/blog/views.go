// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// # View Counter

// ViewIncrementer is the storage primitive the counter relies on. It must
// be a single atomic increment.
type ViewIncrementer interface {
	IncrementViews(context context.Context, blogID string) error
}

// ViewCounter records detail reads without delaying the response.
//
// Each Record runs on its own goroutine detached from the request's
// cancellation and bounded by timeout. Failures are logged and dropped.
type ViewCounter struct {
	store   ViewIncrementer
	logger  *slog.Logger
	timeout time.Duration

	inflight sync.WaitGroup
}

// NewViewCounter constructs a [ViewCounter].
func NewViewCounter(store ViewIncrementer, logger *slog.Logger, timeout time.Duration) *ViewCounter {
	return &ViewCounter{store: store, logger: logger, timeout: timeout}
}

// Record schedules views += 1 for blogID and returns immediately.
func (counter *ViewCounter) Record(ctx context.Context, blogID string) {
	detached := context.WithoutCancel(ctx)

	counter.inflight.Add(1)
	go func() {
		defer counter.inflight.Done()

		runCtx, cancel := context.WithTimeout(detached, counter.timeout)
		defer cancel()

		if err := counter.store.IncrementViews(runCtx, blogID); err != nil {
			counter.logger.WarnContext(runCtx, "blog_view_increment_failed",
				slog.String("blog_id", blogID),
				slog.Any("error", err),
			)
		}
	}()
}

// Wait blocks until every scheduled increment has finished or ctx is done.
func (counter *ViewCounter) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		counter.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
