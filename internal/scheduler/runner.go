// Package scheduler drives the periodic check cycle: fetch the fleet list,
// subtract the ignore set, probe every remaining domain with bounded
// concurrency, feed results into the failure tracker, and hand any resulting
// alerts to the dispatcher.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/domainwatch/internal/domain"
	"github.com/hamed0406/domainwatch/internal/probe"
	"github.com/hamed0406/domainwatch/internal/source"
	"github.com/hamed0406/domainwatch/internal/store"
	"github.com/hamed0406/domainwatch/internal/tracker"
)

type Runner struct {
	Logger      *zap.Logger
	Source      source.Source
	Ignores     store.IgnoreStore
	Checker     probe.Checker
	Tracker     *tracker.Tracker
	Notify      func(ctx context.Context, text string)
	Interval    time.Duration
	Timeout     time.Duration
	Concurrency int

	// kick carries manual-restart requests. Capacity 1: a trigger during a
	// running cycle queues exactly one extra run, further triggers coalesce.
	kick chan struct{}
}

func NewRunner(
	logger *zap.Logger,
	src source.Source,
	ignores store.IgnoreStore,
	checker probe.Checker,
	tr *tracker.Tracker,
	notify func(ctx context.Context, text string),
	interval, timeout time.Duration,
	concurrency int,
) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &Runner{
		Logger:      logger,
		Source:      src,
		Ignores:     ignores,
		Checker:     checker,
		Tracker:     tr,
		Notify:      notify,
		Interval:    interval,
		Timeout:     timeout,
		Concurrency: concurrency,
		kick:        make(chan struct{}, 1),
	}
}

// Kick requests an immediate cycle. Safe from any goroutine; a request made
// while a cycle is in flight runs once after it finishes, never in parallel
// with it.
func (r *Runner) Kick() {
	select {
	case r.kick <- struct{}{}:
	default: // one already queued
	}
}

// Run executes an immediate first pass, then loops on the ticker and on
// manual triggers until ctx is cancelled. Cycles never overlap because they
// all run on this goroutine.
func (r *Runner) Run(ctx context.Context) error {
	t := time.NewTicker(r.Interval)
	defer t.Stop()

	r.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			r.Logger.Info("scheduler_stopped")
			return ctx.Err()
		case <-t.C:
			r.runOnce(ctx)
		case <-r.kick:
			r.Logger.Info("manual_cycle_triggered")
			r.runOnce(ctx)
			t.Reset(r.Interval)
		}
	}
}

func (r *Runner) runOnce(ctx context.Context) {
	start := time.Now()

	ignored, err := r.Ignores.List(ctx)
	if err != nil {
		r.Logger.Error("cycle_ignore_list_error", zap.Error(err))
		return
	}
	ignoredSet := make(map[string]struct{}, len(ignored))
	for _, h := range ignored {
		ignoredSet[h] = struct{}{}
	}

	fetched, err := r.Source.Fetch(ctx)
	if err != nil {
		// cycle aborts, tracker state untouched, retried next tick
		r.Logger.Error("cycle_fetch_error", zap.Error(err))
		return
	}

	domains := make([]string, 0, len(fetched))
	active := make(map[string]struct{}, len(fetched))
	for _, h := range fetched {
		if _, skip := ignoredSet[h]; skip {
			continue
		}
		if _, dup := active[h]; dup {
			continue
		}
		active[h] = struct{}{}
		domains = append(domains, h)
	}

	r.Logger.Info("cycle_start",
		zap.Int("fetched", len(fetched)),
		zap.Int("ignored", len(ignoredSet)),
		zap.Int("checking", len(domains)),
	)

	results := r.checkAll(ctx, domains)

	r.Tracker.Sync(active)
	for _, res := range results {
		if n := r.Tracker.Apply(res); n != nil {
			r.Logger.Warn("state_transition",
				zap.String("hostname", n.Hostname),
				zap.String("kind", string(n.Kind)),
				zap.String("reason", n.Reason),
			)
			r.Notify(ctx, n.Text())
		}
	}

	r.Logger.Info("cycle_done",
		zap.Int("checked", len(results)),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// checkAll probes all domains concurrently under a semaphore, the per-check
// timeout bounding each probe. Result order is irrelevant; the tracker keys
// by hostname.
func (r *Runner) checkAll(ctx context.Context, domains []string) []domain.CheckResult {
	sem := make(chan struct{}, r.Concurrency)
	var wg sync.WaitGroup

	results := make([]domain.CheckResult, len(domains))
	for i, h := range domains {
		i, h := i, h
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() { <-sem }()
			defer wg.Done()

			cctx, cancel := context.WithTimeout(ctx, r.Timeout)
			defer cancel()
			results[i] = r.Checker.Check(cctx, h)
		}()
	}
	wg.Wait()
	return results
}
