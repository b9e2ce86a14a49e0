// Package tasks runs the scheduled background jobs: draining buffered
// view counts from Valkey into Postgres, and sweeping expired ads.
package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"khoborpress/internal/cache"
	"khoborpress/internal/store"
)

// Runner owns the cron scheduler and the job dependencies.
type Runner struct {
	cron        *cron.Cron
	posts       *store.PostStore
	ads         *store.AdStore
	viewCounter *cache.ViewCounter
}

// New creates a task runner. Call Start to begin scheduling.
func New(posts *store.PostStore, ads *store.AdStore, viewCounter *cache.ViewCounter) *Runner {
	return &Runner{
		cron:        cron.New(),
		posts:       posts,
		ads:         ads,
		viewCounter: viewCounter,
	}
}

// Start registers the jobs and starts the scheduler in its own goroutine.
func (r *Runner) Start() error {
	// View counts drain every minute so the public counters stay close to
	// real time without a Postgres write per page view.
	if _, err := r.cron.AddFunc("* * * * *", r.SyncViewCounts); err != nil {
		return err
	}

	// Expired ads are swept nightly.
	if _, err := r.cron.AddFunc("30 3 * * *", r.SweepExpiredAds); err != nil {
		return err
	}

	r.cron.Start()
	slog.Info("task scheduler started")
	return nil
}

// Stop halts the scheduler and waits for running jobs to finish.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	slog.Info("task scheduler stopped")
}

// SyncViewCounts drains pending view increments from Valkey and applies
// them to posts.view_count in one transaction.
func (r *Runner) SyncViewCounts() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	counts, err := r.viewCounter.Drain(ctx)
	if err != nil {
		slog.Error("view count drain failed", "error", err)
		return
	}
	if len(counts) == 0 {
		return
	}

	if err := r.posts.AddViewCounts(ctx, counts); err != nil {
		slog.Error("view count sync failed", "error", err, "posts", len(counts))
		// Put the batch back so the next run retries it.
		if rerr := r.viewCounter.Restore(ctx, counts); rerr != nil {
			slog.Error("view count restore failed", "error", rerr, "posts", len(counts))
		}
		return
	}
	slog.Info("view counts synced", "posts", len(counts))
}

// SweepExpiredAds deactivates ads whose run window has ended.
func (r *Runner) SweepExpiredAds() {
	n, err := r.ads.DeactivateExpired()
	if err != nil {
		slog.Error("ad sweep failed", "error", err)
		return
	}
	if n > 0 {
		slog.Info("expired ads deactivated", "count", n)
	}
}
