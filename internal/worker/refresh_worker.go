// Package worker drives scheduled dataset refreshes and reacts to refresh
// notifications published by other processes.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"salesdash/internal/amqp"
	"salesdash/internal/dataset"
)

// RefreshWorker periodically re-fetches the dataset through the store.
type RefreshWorker struct {
	store    *dataset.Store
	interval time.Duration
	logger   *slog.Logger
}

func NewRefreshWorker(store *dataset.Store, interval time.Duration, logger *slog.Logger) *RefreshWorker {
	return &RefreshWorker{
		store:    store,
		interval: interval,
		logger:   logger,
	}
}

// RunOnce performs a single refresh cycle.
func (w *RefreshWorker) RunOnce(ctx context.Context) error {
	start := time.Now()
	if err := w.store.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh dataset: %w", err)
	}
	st := w.store.Status()
	w.logger.InfoContext(ctx, "refresh cycle completed",
		"records", st.Records,
		"version", st.Version,
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

// Run refreshes immediately, then on every tick until the context is
// cancelled. Refresh failures are logged and retried on the next tick.
func (w *RefreshWorker) Run(ctx context.Context) error {
	if err := w.RunOnce(ctx); err != nil {
		w.logger.ErrorContext(ctx, "initial refresh failed", "error", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.RunOnce(ctx); err != nil {
				w.logger.ErrorContext(ctx, "scheduled refresh failed", "error", err)
			}
		}
	}
}

// HandleRefreshMessage reloads the latest snapshot when another process
// announces a completed refresh. Used by consumers that do not fetch the
// sheet themselves.
func (w *RefreshWorker) HandleRefreshMessage(ctx context.Context, msg *amqp.RefreshMessage) error {
	w.logger.InfoContext(ctx, "refresh notification received",
		"cycle_id", msg.CycleID,
		"records", msg.RecordCount)

	if err := w.store.LoadSnapshot(ctx); err != nil {
		return fmt.Errorf("load snapshot after notification: %w", err)
	}
	return nil
}
